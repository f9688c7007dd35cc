package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/viewsync/internal/core/domain"
	"github.com/custodia-labs/viewsync/internal/core/ports/driven"
	"github.com/custodia-labs/viewsync/internal/core/ports/driving"
)

// Ensure CommandService implements the interface.
var _ driving.CommandService = (*CommandService)(nil)

// ErrNoInterpreter is returned when no command interpreter is configured.
var ErrNoInterpreter = errors.New("no command interpreter configured")

// CommandService applies command panel input to the engine.
// It is a view like any other: every selection it makes carries the
// control source.
type CommandService struct {
	engine      driving.SyncEngine
	graph       driving.GraphService
	interpreter driven.CommandInterpreter
}

// NewCommandService creates a command service. graph may be nil, in which
// case find commands match nothing.
func NewCommandService(engine driving.SyncEngine, graph driving.GraphService, interpreter driven.CommandInterpreter) *CommandService {
	return &CommandService{
		engine:      engine,
		graph:       graph,
		interpreter: interpreter,
	}
}

// Execute interprets text and applies it.
func (s *CommandService) Execute(ctx context.Context, text string) (string, error) {
	if s.interpreter == nil {
		return "", ErrNoInterpreter
	}
	cmd, err := s.interpreter.Interpret(ctx, text)
	if err != nil {
		return "", err
	}
	return s.Apply(cmd)
}

// Apply runs an already-interpreted command.
func (s *CommandService) Apply(cmd domain.Command) (string, error) {
	switch cmd.Op {
	case domain.OpSelect:
		if len(cmd.ElementIDs) == 0 {
			return "", fmt.Errorf("%w: select needs at least one element", domain.ErrInvalidInput)
		}
		for _, id := range cmd.ElementIDs {
			s.engine.SelectElement(id, domain.SourceControl)
		}
		return fmt.Sprintf("selected %s", plural(len(cmd.ElementIDs), "element")), nil

	case domain.OpDeselect:
		if len(cmd.ElementIDs) == 0 {
			return "", fmt.Errorf("%w: deselect needs at least one element", domain.ErrInvalidInput)
		}
		for _, id := range cmd.ElementIDs {
			s.engine.DeselectElement(id, domain.SourceControl)
		}
		return fmt.Sprintf("deselected %s", plural(len(cmd.ElementIDs), "element")), nil

	case domain.OpHighlight:
		if len(cmd.ElementIDs) == 0 {
			return "", fmt.Errorf("%w: highlight needs at least one element", domain.ErrInvalidInput)
		}
		style := cmd.Style
		if style.Category == "" && style.Intensity == "" {
			style.Category, style.Intensity = domain.CategoryElement, domain.IntensitySelected
		}
		style, err := domain.NewHighlightStyle(style.Color, style.Category, style.Intensity)
		if err != nil {
			return "", err
		}
		s.engine.HighlightElements(cmd.ElementIDs, style)
		return fmt.Sprintf("highlighted %s as %s", plural(len(cmd.ElementIDs), "element"), style), nil

	case domain.OpFind:
		return s.find(cmd.Filter)

	case domain.OpClear:
		s.engine.ClearHighlights()
		return "cleared selection and highlights", nil

	case domain.OpMaximize, domain.OpMinimize, domain.OpRestore:
		return s.pane(cmd)

	case domain.OpDivider:
		s.engine.SetDividerPosition(cmd.Divider)
		return fmt.Sprintf("divider at %.2f", s.engine.Snapshot().Layout.DividerPosition), nil

	case domain.OpResetViews:
		s.engine.ResetLayout()
		return "layout reset", nil

	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownCommand, cmd.Op)
	}
}

// find highlights every node matching f with the result intensity, one
// highlight write per category.
func (s *CommandService) find(f domain.Filter) (string, error) {
	if f.IsEmpty() {
		return "", fmt.Errorf("%w: find needs a type or key=value", domain.ErrInvalidInput)
	}
	if s.graph == nil {
		return "no graph loaded", nil
	}

	ids := s.graph.Filter(f)
	if len(ids) == 0 {
		return "no matching elements", nil
	}

	groups := make(map[domain.HighlightCategory][]domain.ElementID)
	for _, id := range ids {
		cat := domain.CategoryElement
		if n, err := s.graph.Resolve(id); err == nil {
			cat = CategoryForType(n.Type)
		}
		groups[cat] = append(groups[cat], id)
	}

	cats := make([]domain.HighlightCategory, 0, len(groups))
	for c := range groups {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })

	for _, c := range cats {
		style, err := domain.NewHighlightStyle("", c, domain.IntensityResult)
		if err != nil {
			return "", err
		}
		s.engine.HighlightElements(groups[c], style)
	}
	return fmt.Sprintf("found %s", plural(len(ids), "element")), nil
}

func (s *CommandService) pane(cmd domain.Command) (string, error) {
	if !cmd.Pane.IsValid() {
		return "", fmt.Errorf("%w: unknown pane %q", domain.ErrInvalidInput, cmd.Pane)
	}
	before := s.engine.Snapshot().Layout

	switch cmd.Op {
	case domain.OpMaximize:
		s.engine.MaximizePane(cmd.Pane)
	case domain.OpMinimize:
		s.engine.MinimizePane(cmd.Pane)
	default:
		s.engine.RestorePane(cmd.Pane)
	}

	after := s.engine.Snapshot().Layout
	if cmd.Op == domain.OpMinimize && before == after && after.PaneStates.Get(cmd.Pane) != domain.PaneMinimized {
		return fmt.Sprintf("cannot minimize %s: the other pane is minimized", cmd.Pane), nil
	}
	return fmt.Sprintf("%s %s: primary=%s secondary=%s", cmd.Op, cmd.Pane,
		after.PaneStates.Primary, after.PaneStates.Secondary), nil
}

// CategoryForType maps a graph node type onto a highlight category.
func CategoryForType(nodeType string) domain.HighlightCategory {
	t := strings.ToLower(nodeType)
	switch {
	case t == "space" || t == "room" || t == "zone" || t == "storey":
		return domain.CategorySpace
	case t == "pipe" || t == "duct" || strings.HasSuffix(t, "segment"):
		return domain.CategoryPipe
	case strings.Contains(t, "system"):
		return domain.CategorySystem
	default:
		return domain.CategoryElement
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
