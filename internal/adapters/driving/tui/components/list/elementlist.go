// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/custodia-labs/viewsync/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/viewsync/internal/core/domain"
)

// Item is one element row with its shared view state.
type Item struct {
	ID        domain.ElementID
	Label     string
	Type      string
	Selected  bool
	Hovered   bool
	Highlight *domain.HighlightStyle
}

// searchText is what the fuzzy filter matches against.
func (i Item) searchText() string {
	return i.Label + " " + i.ID.String() + " " + i.Type
}

// ElementList displays elements in a navigable, filterable list.
type ElementList struct {
	title   string
	items   []Item
	visible []int
	cursor  int
	filter  string
	styles  *styles.Styles
	width   int
	height  int
}

// NewElementList creates a new element list component.
func NewElementList(s *styles.Styles, title string) *ElementList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ElementList{
		title:  title,
		styles: s,
		width:  40,
		height: 10,
	}
}

// Init initialises the element list.
func (l *ElementList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *ElementList) Update(msg tea.Msg) (*ElementList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// SetItems replaces the rows. The cursor stays on the same element when it
// is still visible.
func (l *ElementList) SetItems(items []Item) {
	current, hadCurrent := l.Current()
	l.items = items
	l.applyFilter()
	if hadCurrent {
		l.SelectID(current.ID)
	}
}

// Items returns all rows, ignoring the filter.
func (l *ElementList) Items() []Item {
	return l.items
}

// SetFilter fuzzy-filters the rows by label, id and type. An empty query
// shows every row in its original order.
func (l *ElementList) SetFilter(query string) {
	l.filter = strings.TrimSpace(query)
	l.applyFilter()
	l.cursor = 0
}

// Filter returns the active filter query.
func (l *ElementList) Filter() string {
	return l.filter
}

func (l *ElementList) applyFilter() {
	l.visible = l.visible[:0]
	if l.filter == "" {
		for i := range l.items {
			l.visible = append(l.visible, i)
		}
	} else {
		texts := make([]string, len(l.items))
		for i, it := range l.items {
			texts[i] = it.searchText()
		}
		for _, m := range fuzzy.Find(l.filter, texts) {
			l.visible = append(l.visible, m.Index)
		}
	}
	l.clampCursor()
}

func (l *ElementList) clampCursor() {
	if l.cursor >= len(l.visible) {
		l.cursor = len(l.visible) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// Len returns the number of visible rows.
func (l *ElementList) Len() int {
	return len(l.visible)
}

// Current returns the row under the cursor.
func (l *ElementList) Current() (Item, bool) {
	if len(l.visible) == 0 {
		return Item{}, false
	}
	return l.items[l.visible[l.cursor]], true
}

// SelectID moves the cursor onto id. Returns false if id is not visible.
func (l *ElementList) SelectID(id domain.ElementID) bool {
	for pos, idx := range l.visible {
		if l.items[idx].ID == id {
			l.cursor = pos
			return true
		}
	}
	return false
}

// Cursor returns the cursor position among the visible rows.
func (l *ElementList) Cursor() int {
	return l.cursor
}

// MoveUp moves the cursor up one row.
func (l *ElementList) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
	}
}

// MoveDown moves the cursor down one row.
func (l *ElementList) MoveDown() {
	if l.cursor < len(l.visible)-1 {
		l.cursor++
	}
}

// SetDimensions sets the list size.
func (l *ElementList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// View renders the list.
func (l *ElementList) View() string {
	header := l.styles.Subtitle.Render(fmt.Sprintf("%s (%d)", l.title, len(l.visible)))
	if l.filter != "" {
		header += l.styles.Muted.Render(fmt.Sprintf("  /%s", l.filter))
	}
	if len(l.visible) == 0 {
		return header + "\n" + l.styles.Muted.Render("No elements")
	}

	lines := []string{header}

	visibleCount := l.height - 1
	if visibleCount < 1 {
		visibleCount = 1
	}
	start := 0
	if l.cursor >= visibleCount {
		start = l.cursor - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(l.visible) {
		end = len(l.visible)
	}

	for pos := start; pos < end; pos++ {
		lines = append(lines, l.renderItem(pos == l.cursor, l.items[l.visible[pos]]))
	}
	return strings.Join(lines, "\n")
}

func (l *ElementList) renderItem(atCursor bool, it Item) string {
	indicator := "  "
	if atCursor {
		indicator = "> "
	}
	mark := "[ ]"
	if it.Selected {
		mark = "[x]"
	}

	label := it.Label
	maxLen := l.width - 12 - len(it.Type)
	if maxLen < 8 {
		maxLen = 8
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}

	text := l.styles.Normal.Render(label)
	switch {
	case it.Highlight != nil:
		text = l.styles.Highlight(*it.Highlight).Render(label)
	case it.Selected:
		text = l.styles.Selected.Render(label)
	}
	if it.Hovered {
		text = l.styles.Hovered.Render(text)
	}

	line := fmt.Sprintf("%s%s %s %s", indicator, mark, text, l.styles.Muted.Render(it.Type))
	if atCursor {
		return l.styles.Cursor.Render(line)
	}
	return line
}
