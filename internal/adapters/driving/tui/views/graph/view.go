// Package graph provides the node-link pane. It shows one centre node and
// its neighbours, and re-centres whenever a focus is requested.
package graph

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/viewsync/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/viewsync/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/viewsync/internal/core/domain"
	"github.com/custodia-labs/viewsync/internal/core/ports/driving"
)

// View renders the neighbourhood of the centre node.
type View struct {
	engine driving.SyncEngine
	graph  driving.GraphService
	styles *styles.Styles
	keymap *keymap.KeyMap

	center    domain.ElementID
	neighbors []domain.ElementID
	cursor    int
	snapshot  domain.Snapshot
	width     int
	height    int
}

// NewView creates the graph pane. graph may be nil.
func NewView(engine driving.SyncEngine, graph driving.GraphService, s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		engine: engine,
		graph:  graph,
		styles: s,
		keymap: km,
		width:  40,
		height: 10,
	}
	v.Refresh(engine.Snapshot())
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Focus re-centres on the last of ids. Ids missing from the graph are
// skipped.
func (v *View) Focus(ids []domain.ElementID) {
	for i := len(ids) - 1; i >= 0; i-- {
		if v.known(ids[i]) {
			v.setCenter(ids[i])
			return
		}
	}
}

// Center returns the centre node id, empty when nothing is centred.
func (v *View) Center() domain.ElementID {
	return v.center
}

// Neighbors returns the listed neighbours of the centre node.
func (v *View) Neighbors() []domain.ElementID {
	return v.neighbors
}

// Cursor returns the row under the cursor. Row 0 is the centre node.
func (v *View) Cursor() int {
	return v.cursor
}

func (v *View) known(id domain.ElementID) bool {
	if v.graph == nil {
		return false
	}
	_, err := v.graph.Resolve(id)
	return err == nil
}

func (v *View) setCenter(id domain.ElementID) {
	v.center = id
	v.neighbors = v.graph.Neighbors(id)
	v.cursor = 0
}

// Refresh records snap and drops a centre that left the graph.
func (v *View) Refresh(snap domain.Snapshot) {
	v.snapshot = snap
	if v.center == "" {
		if v.graph != nil && len(v.graph.Graph().Nodes) > 0 {
			v.setCenter(v.graph.Graph().Nodes[0].ID)
		}
		return
	}
	if !v.known(v.center) {
		v.center = ""
		v.neighbors = nil
		v.cursor = 0
		v.Refresh(snap)
		return
	}
	v.neighbors = v.graph.Neighbors(v.center)
	if v.cursor > len(v.neighbors) {
		v.cursor = len(v.neighbors)
	}
}

func (v *View) current() (domain.ElementID, bool) {
	if v.center == "" {
		return "", false
	}
	if v.cursor == 0 {
		return v.center, true
	}
	return v.neighbors[v.cursor-1], true
}

// Update handles key presses while the pane is focused.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	k := keyMsg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.cursor > 0 {
			v.cursor--
		}
		v.hoverCurrent()
	case keymap.Matches(k, v.keymap.Down):
		if v.cursor < len(v.neighbors) {
			v.cursor++
		}
		v.hoverCurrent()
	case keymap.Matches(k, v.keymap.Center):
		if id, ok := v.current(); ok && id != v.center {
			v.setCenter(id)
		}
	case keymap.Matches(k, v.keymap.Toggle):
		if id, ok := v.current(); ok {
			if v.engine.Snapshot().IsSelected(id) {
				v.engine.DeselectElement(id, domain.SourceGraph)
			} else {
				v.engine.SelectElement(id, domain.SourceGraph)
			}
		}
	}
	return v, nil
}

func (v *View) hoverCurrent() {
	if id, ok := v.current(); ok {
		v.engine.SetHoveredElement(id)
	}
}

// SetDimensions sets the pane content size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// View renders the pane.
func (v *View) View() string {
	header := v.styles.Subtitle.Render("Graph")
	if v.center == "" {
		return header + "\n" + v.styles.Muted.Render("No graph loaded")
	}

	lines := []string{header, v.renderRow(0, v.center, "")}
	if len(v.neighbors) == 0 {
		lines = append(lines, v.styles.Muted.Render("  (no neighbours)"))
	}

	visible := v.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if v.cursor > visible {
		start = v.cursor - visible
	}
	for i := start; i < len(v.neighbors) && i < start+visible; i++ {
		lines = append(lines, v.renderRow(i+1, v.neighbors[i], "├─ "))
	}
	if hidden := len(v.neighbors) - (start + visible); hidden > 0 {
		lines = append(lines, v.styles.Muted.Render(fmt.Sprintf("   … %d more", hidden)))
	}
	return strings.Join(lines, "\n")
}

func (v *View) renderRow(row int, id domain.ElementID, branch string) string {
	label := id.String()
	nodeType := ""
	if n, err := v.graph.Resolve(id); err == nil {
		label = n.Label()
		nodeType = n.Type
	}

	text := v.styles.Normal.Render(label)
	if row == 0 {
		text = v.styles.Title.Render(label)
	}
	if h, ok := v.snapshot.Highlight(id); ok {
		text = v.styles.Highlight(h).Render(label)
	}
	if v.snapshot.IsSelected(id) {
		text = v.styles.Selected.Render("● ") + text
	}
	if v.snapshot.Hovered == id {
		text = v.styles.Hovered.Render(text)
	}

	indicator := "  "
	if row == v.cursor {
		indicator = "> "
	}
	return fmt.Sprintf("%s%s%s %s", indicator, branch, text, v.styles.Muted.Render(nodeType))
}
