// Package detail renders the properties of the element in focus.
package detail

import (
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/viewsync/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/viewsync/internal/core/domain"
	"github.com/custodia-labs/viewsync/internal/core/ports/driving"
)

// View shows the hovered element, or the first selected one when nothing
// is hovered.
type View struct {
	graph    driving.GraphService
	styles   *styles.Styles
	snapshot domain.Snapshot
	width    int
}

// NewView creates the detail panel. graph may be nil.
func NewView(graph driving.GraphService, s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{graph: graph, styles: s, width: 40}
}

// Refresh records the state to describe.
func (v *View) Refresh(snap domain.Snapshot) {
	v.snapshot = snap
}

// Subject returns the element being described.
func (v *View) Subject() (domain.ElementID, bool) {
	if v.snapshot.Hovered != "" {
		return v.snapshot.Hovered, true
	}
	if len(v.snapshot.Selection) > 0 {
		return v.snapshot.Selection[0], true
	}
	return "", false
}

// SetWidth sets the panel width.
func (v *View) SetWidth(width int) {
	v.width = width
}

// View renders the panel as a single block.
func (v *View) View() string {
	id, ok := v.Subject()
	if !ok {
		return v.styles.Muted.Render("Nothing selected")
	}

	parts := []string{v.styles.Title.Render(id.String())}

	var node *domain.Node
	if v.graph != nil {
		node, _ = v.graph.Resolve(id)
	}
	if node == nil {
		parts = append(parts, v.styles.Muted.Render("not in graph"))
	} else {
		parts = append(parts, v.styles.Subtitle.Render(node.Type))
		keys := make([]string, 0, len(node.Properties))
		for k := range node.Properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", v.styles.Muted.Render(k), node.Properties[k]))
		}
		parts = append(parts, v.styles.Muted.Render(fmt.Sprintf("%d neighbours", len(v.graph.Neighbors(id)))))
	}

	if h, ok := v.snapshot.Highlight(id); ok {
		parts = append(parts, v.styles.Highlight(h).Render(h.String()))
	}
	if v.snapshot.IsSelected(id) {
		parts = append(parts, v.styles.Selected.Render("selected"))
	}

	return strings.Join(parts, "  ")
}
