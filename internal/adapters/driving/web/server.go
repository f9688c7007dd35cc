// Package web serves the engine over HTTP: JSON operations for views that
// poll or post, and a datastar event stream that patches the snapshot into
// the browser after every bus event.
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/viewsync/internal/core/domain"
	"github.com/custodia-labs/viewsync/internal/logger"
)

const shutdownTimeout = 5 * time.Second

// Server is the HTTP view.
type Server struct {
	ports    *Ports
	notifier *notifier
	router   chi.Router
	limiter  *rate.Limiter
	unsub    func()
}

// NewServer creates a server and subscribes it to the engine bus.
// Call Close to unsubscribe.
func NewServer(ports *Ports, opts ...Option) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports:    ports,
		notifier: newNotifier(),
		limiter:  rate.NewLimiter(rate.Limit(DefaultWriteRate), DefaultWriteBurst),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.unsub = ports.Engine.SubscribeAll(func(_ domain.Event) {
		s.notifier.broadcast()
	})
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// NotifyGraphChanged pushes an update to every stream after a graph reload.
func (s *Server) NotifyGraphChanged() {
	s.notifier.broadcast()
}

// Close unsubscribes the server from the bus.
func (s *Server) Close() {
	if s.unsub != nil {
		s.unsub()
	}
}

// Run listens on addr and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		logger.WithFields(logger.Fields{"addr": addr}).Info("web view listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Debug("shutting down web view")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		requestLogger,
		middleware.Recoverer,
	)

	r.Get("/", s.handleIndex)
	r.Get("/events", s.handleEvents)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.throttle)

		r.Get("/state", s.handleState)
		r.Get("/graph", s.handleGraph)
		r.Get("/elements/{id}", s.handleElement)

		r.Post("/select", s.handleSelect)
		r.Post("/highlight", s.handleHighlight)
		r.Post("/hover", s.handleHover)
		r.Post("/clear", s.handleClear)
		r.Post("/layout", s.handleLayout)
		r.Post("/command", s.handleCommand)
	})
	return r
}

// requestLogger writes one debug line per request to the diagnostic log.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.WithFields(logger.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start).Round(time.Microsecond),
			"request":  middleware.GetReqID(r.Context()),
		}).Debug("http request")
	})
}
