package list

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/viewsync/internal/core/domain"
)

func sampleItems() []Item {
	return []Item{
		{ID: "room-1", Label: "Lobby", Type: "space"},
		{ID: "wall-42", Label: "North wall", Type: "wall", Selected: true},
		{ID: "wall-43", Label: "wall-43", Type: "wall"},
		{ID: "pipe-7", Label: "pipe-7", Type: "pipe"},
	}
}

func TestNewElementList(t *testing.T) {
	l := NewElementList(nil, "Model")

	require.NotNil(t, l)
	assert.Equal(t, 0, l.Len())
	_, ok := l.Current()
	assert.False(t, ok)
	assert.Nil(t, l.Init())
}

func TestElementList_Navigation(t *testing.T) {
	l := NewElementList(nil, "Model")
	l.SetItems(sampleItems())

	cur, ok := l.Current()
	require.True(t, ok)
	assert.Equal(t, domain.ElementID("room-1"), cur.ID)

	l.MoveUp()
	assert.Equal(t, 0, l.Cursor())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyDown})
	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Equal(t, 2, l.Cursor())

	for i := 0; i < 10; i++ {
		l.MoveDown()
	}
	assert.Equal(t, 3, l.Cursor())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	assert.Equal(t, 2, l.Cursor())
}

func TestElementList_SetItemsKeepsCursorOnElement(t *testing.T) {
	l := NewElementList(nil, "Model")
	l.SetItems(sampleItems())
	require.True(t, l.SelectID("wall-43"))

	reordered := sampleItems()
	reordered[0], reordered[2] = reordered[2], reordered[0]
	l.SetItems(reordered)

	cur, _ := l.Current()
	assert.Equal(t, domain.ElementID("wall-43"), cur.ID)
	assert.Equal(t, 0, l.Cursor())
}

func TestElementList_SetItemsClampsCursor(t *testing.T) {
	l := NewElementList(nil, "Model")
	l.SetItems(sampleItems())
	l.SelectID("pipe-7")

	l.SetItems(sampleItems()[:2])

	cur, ok := l.Current()
	require.True(t, ok)
	assert.Equal(t, domain.ElementID("wall-42"), cur.ID)
}

func TestElementList_FuzzyFilter(t *testing.T) {
	l := NewElementList(nil, "Model")
	l.SetItems(sampleItems())

	l.SetFilter("wall")
	assert.Equal(t, "wall", l.Filter())
	assert.Equal(t, 2, l.Len())
	for pos := 0; pos < l.Len(); pos++ {
		cur, _ := l.Current()
		assert.Equal(t, "wall", cur.Type)
		l.MoveDown()
	}

	l.SetFilter("lby")
	require.Equal(t, 1, l.Len())
	cur, _ := l.Current()
	assert.Equal(t, domain.ElementID("room-1"), cur.ID)

	l.SetFilter("zzz")
	assert.Equal(t, 0, l.Len())
	assert.False(t, l.SelectID("room-1"))

	l.SetFilter("  ")
	assert.Equal(t, 4, l.Len())
	assert.Len(t, l.Items(), 4)
}

func TestElementList_View(t *testing.T) {
	l := NewElementList(nil, "Model")
	assert.Contains(t, l.View(), "No elements")

	items := sampleItems()
	style := domain.HighlightStyle{Category: domain.CategorySpace, Intensity: domain.IntensityResult}
	items[0].Highlight = &style
	items[0].Hovered = true
	l.SetItems(items)
	l.SetDimensions(60, 10)

	view := l.View()
	assert.Contains(t, view, "Model (4)")
	assert.Contains(t, view, "Lobby")
	assert.Contains(t, view, "[x]")
	assert.Contains(t, view, "> ")

	l.SetFilter("pipe")
	assert.Contains(t, l.View(), "/pipe")
}

func TestElementList_ViewScrollsToCursor(t *testing.T) {
	l := NewElementList(nil, "Model")
	l.SetDimensions(60, 3)
	l.SetItems(sampleItems())
	l.SelectID("pipe-7")

	view := l.View()
	assert.Contains(t, view, "pipe-7")
	assert.NotContains(t, view, "Lobby")
}

func TestElementList_TruncatesLongLabels(t *testing.T) {
	l := NewElementList(nil, "Model")
	l.SetDimensions(24, 5)
	l.SetItems([]Item{{ID: "x", Label: "An extremely long element label", Type: "wall"}})

	assert.Contains(t, l.View(), "...")
}
