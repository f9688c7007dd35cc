package web

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/custodia-labs/viewsync/internal/core/domain"
)

// viewSignals is the datastar signal payload patched into the page.
type viewSignals struct {
	State     domain.Snapshot `json:"state"`
	NodeCount int             `json:"nodeCount"`
}

// handleEvents is the long-lived SSE endpoint. It sends the current state
// once, then again after every engine or graph update.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := s.notifier.subscribe()
	defer s.notifier.unsubscribe(updates)

	if err := s.sendSignals(sse); err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			if err := s.sendSignals(sse); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

func (s *Server) sendSignals(sse *datastar.ServerSentEventGenerator) error {
	signals := viewSignals{State: s.ports.Engine.Snapshot()}
	if s.ports.Graph != nil {
		signals.NodeCount = len(s.ports.Graph.Graph().Nodes)
	}
	return sse.MarshalAndPatchSignals(signals)
}
