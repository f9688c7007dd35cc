package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/viewsync/internal/core/domain"
)

func TestFocus_String(t *testing.T) {
	tests := []struct {
		focus    Focus
		expected string
	}{
		{FocusModel, "model"},
		{FocusGraph, "graph"},
		{FocusCommand, "command"},
		{Focus(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.focus.String())
		})
	}
}

func TestFocus_Pane(t *testing.T) {
	p, ok := FocusModel.Pane()
	assert.True(t, ok)
	assert.Equal(t, domain.PanePrimary, p)

	p, ok = FocusGraph.Pane()
	assert.True(t, ok)
	assert.Equal(t, domain.PaneSecondary, p)

	_, ok = FocusCommand.Pane()
	assert.False(t, ok)
}

func TestEngineEvents_PreservesOrder(t *testing.T) {
	msg := EngineEvents{Events: []domain.Event{
		domain.SelectionChanged{ID: "1"},
		domain.FocusRequested{ID: "2"},
	}}

	assert.Equal(t, domain.EventSelectionChanged, msg.Events[0].Name())
	assert.Equal(t, domain.EventFocusRequested, msg.Events[1].Name())
}
