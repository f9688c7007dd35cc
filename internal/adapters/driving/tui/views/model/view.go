// Package model provides the element list pane that stands in for the 3D
// model view.
package model

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/viewsync/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/viewsync/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/viewsync/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/viewsync/internal/core/domain"
	"github.com/custodia-labs/viewsync/internal/core/ports/driving"
)

// View lists every graph node. Moving the cursor previews the element and
// space toggles it in the shared selection.
type View struct {
	engine driving.SyncEngine
	graph  driving.GraphService
	styles *styles.Styles
	keymap *keymap.KeyMap

	list      *list.ElementList
	filter    textinput.Model
	filtering bool
	width     int
	height    int
}

// NewView creates the model pane. graph may be nil.
func NewView(engine driving.SyncEngine, graph driving.GraphService, s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	ti := textinput.New()
	ti.Prompt = "/"
	ti.CharLimit = 64

	v := &View{
		engine: engine,
		graph:  graph,
		styles: s,
		keymap: km,
		list:   list.NewElementList(s, "Model"),
		filter: ti,
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

// Refresh rebuilds the rows from the graph and snap.
func (v *View) Refresh(snap domain.Snapshot) {
	if v.graph == nil {
		v.list.SetItems(nil)
		return
	}
	nodes := v.graph.Graph().Nodes
	items := make([]list.Item, 0, len(nodes))
	for i := range nodes {
		n := &nodes[i]
		it := list.Item{
			ID:       n.ID,
			Label:    n.Label(),
			Type:     n.Type,
			Selected: snap.IsSelected(n.ID),
			Hovered:  snap.Hovered == n.ID,
		}
		if h, ok := snap.Highlight(n.ID); ok {
			it.Highlight = &h
		}
		items = append(items, it)
	}
	v.list.SetItems(items)
}

// Update handles key presses while the pane is focused.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	if v.filtering {
		return v.updateFilter(keyMsg)
	}

	k := keyMsg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		v.list.MoveUp()
		v.hoverCurrent()
	case keymap.Matches(k, v.keymap.Down):
		v.list.MoveDown()
		v.hoverCurrent()
	case keymap.Matches(k, v.keymap.Toggle):
		v.toggleCurrent()
	case keymap.Matches(k, v.keymap.Filter):
		v.filtering = true
		v.filter.SetValue(v.list.Filter())
		return v, v.filter.Focus()
	}
	return v, nil
}

func (v *View) updateFilter(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Cancel):
		v.filtering = false
		v.filter.Blur()
		v.filter.Reset()
		v.list.SetFilter("")
		return v, nil
	case msg.Type == tea.KeyEnter:
		v.filtering = false
		v.filter.Blur()
		v.hoverCurrent()
		return v, nil
	}

	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)
	v.list.SetFilter(v.filter.Value())
	return v, cmd
}

func (v *View) hoverCurrent() {
	if it, ok := v.list.Current(); ok {
		v.engine.SetHoveredElement(it.ID)
	}
}

func (v *View) toggleCurrent() {
	it, ok := v.list.Current()
	if !ok {
		return
	}
	if v.engine.Snapshot().IsSelected(it.ID) {
		v.engine.DeselectElement(it.ID, domain.SourceModel)
		return
	}
	v.engine.SelectElement(it.ID, domain.SourceModel)
}

// Current returns the element under the cursor.
func (v *View) Current() (domain.ElementID, bool) {
	it, ok := v.list.Current()
	return it.ID, ok
}

// Filtering reports whether the filter prompt is capturing keys.
func (v *View) Filtering() bool {
	return v.filtering
}

// Len returns the number of visible rows.
func (v *View) Len() int {
	return v.list.Len()
}

// SetDimensions sets the pane content size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	listHeight := height
	if v.filtering {
		listHeight--
	}
	v.list.SetDimensions(width, listHeight)
}

// View renders the pane.
func (v *View) View() string {
	out := v.list.View()
	if v.filtering {
		out += "\n" + v.filter.View()
	}
	return out
}
