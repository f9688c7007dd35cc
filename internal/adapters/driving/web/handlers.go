package web

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/custodia-labs/viewsync/internal/core/domain"
	"github.com/custodia-labs/viewsync/internal/logger"
)

//go:embed assets/index.html
var indexHTML []byte

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

type selectRequest struct {
	ID       domain.ElementID `json:"id"`
	Source   domain.Source    `json:"source"`
	Deselect bool             `json:"deselect"`
}

type highlightRequest struct {
	IDs       []domain.ElementID        `json:"ids"`
	Category  domain.HighlightCategory  `json:"category"`
	Intensity domain.HighlightIntensity `json:"intensity"`
	Color     string                    `json:"color"`
}

type hoverRequest struct {
	ID domain.ElementID `json:"id"`
}

type layoutRequest struct {
	Action  string  `json:"action"`
	Pane    string  `json:"pane"`
	Divider float64 `json:"divider"`
}

type commandRequest struct {
	Text string `json:"text"`
}

type commandResponse struct {
	Summary string          `json:"summary"`
	State   domain.Snapshot `json:"state"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type elementResponse struct {
	Node      *domain.Node           `json:"node"`
	Neighbors []domain.ElementID     `json:"neighbors"`
	Selected  bool                   `json:"selected"`
	Highlight *domain.HighlightStyle `json:"highlight,omitempty"`
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(indexHTML); err != nil {
		logger.WithFields(logger.Fields{"error": err}).Debug("writing index failed")
	}
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.ports.Engine.Snapshot())
}

func (s *Server) handleGraph(w http.ResponseWriter, _ *http.Request) {
	graph := domain.NewGraph([]domain.Node{}, []domain.Edge{})
	if s.ports.Graph != nil {
		graph = s.ports.Graph.Graph()
	}
	writeJSON(w, http.StatusOK, graph)
}

func (s *Server) handleElement(w http.ResponseWriter, r *http.Request) {
	if s.ports.Graph == nil {
		writeError(w, fmt.Errorf("no graph loaded: %w", domain.ErrNotFound))
		return
	}

	id := domain.ElementID(chi.URLParam(r, "id"))
	node, err := s.ports.Graph.Resolve(id)
	if err != nil {
		writeError(w, err)
		return
	}

	snap := s.ports.Engine.Snapshot()
	resp := elementResponse{
		Node:      node,
		Neighbors: s.ports.Graph.Neighbors(id),
		Selected:  snap.IsSelected(id),
	}
	if style, ok := snap.Highlight(id); ok {
		resp.Highlight = &style
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.ID == "" {
		writeError(w, fmt.Errorf("%w: id is required", domain.ErrInvalidInput))
		return
	}
	if req.Source == "" {
		req.Source = domain.SourceControl
	}
	if !req.Source.IsValid() {
		writeError(w, fmt.Errorf("%w: unknown source %q", domain.ErrInvalidInput, req.Source))
		return
	}

	if req.Deselect {
		s.ports.Engine.DeselectElement(req.ID, req.Source)
	} else {
		s.ports.Engine.SelectElement(req.ID, req.Source)
	}
	writeJSON(w, http.StatusOK, s.ports.Engine.Snapshot())
}

func (s *Server) handleHighlight(w http.ResponseWriter, r *http.Request) {
	var req highlightRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if len(req.IDs) == 0 {
		writeError(w, fmt.Errorf("%w: ids are required", domain.ErrInvalidInput))
		return
	}
	if req.Category == "" {
		req.Category = domain.CategoryElement
	}
	if req.Intensity == "" {
		req.Intensity = domain.IntensitySelected
	}

	style, err := domain.NewHighlightStyle(req.Color, req.Category, req.Intensity)
	if err != nil {
		writeError(w, err)
		return
	}
	s.ports.Engine.HighlightElements(req.IDs, style)
	writeJSON(w, http.StatusOK, s.ports.Engine.Snapshot())
}

func (s *Server) handleHover(w http.ResponseWriter, r *http.Request) {
	var req hoverRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	s.ports.Engine.SetHoveredElement(req.ID)
	writeJSON(w, http.StatusOK, s.ports.Engine.Snapshot())
}

func (s *Server) handleClear(w http.ResponseWriter, _ *http.Request) {
	s.ports.Engine.ClearHighlights()
	writeJSON(w, http.StatusOK, s.ports.Engine.Snapshot())
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	engine := s.ports.Engine
	switch req.Action {
	case "divider":
		engine.SetDividerPosition(req.Divider)
	case "reset":
		engine.ResetLayout()
	case "maximize", "minimize", "restore":
		pane, ok := domain.ParsePaneID(req.Pane)
		if !ok {
			writeError(w, fmt.Errorf("%w: unknown pane %q", domain.ErrInvalidInput, req.Pane))
			return
		}
		switch req.Action {
		case "maximize":
			engine.MaximizePane(pane)
		case "minimize":
			engine.MinimizePane(pane)
		default:
			engine.RestorePane(pane)
		}
	default:
		writeError(w, fmt.Errorf("%w: unknown action %q", domain.ErrInvalidInput, req.Action))
		return
	}
	writeJSON(w, http.StatusOK, engine.Snapshot())
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	if s.ports.Command == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "command panel is disabled"})
		return
	}

	var req commandRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	summary, err := s.ports.Command.Execute(r.Context(), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, commandResponse{Summary: summary, State: s.ports.Engine.Snapshot()})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: decoding request body: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.WithFields(logger.Fields{"error": err}).Debug("writing response failed")
	}
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownCommand):
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
