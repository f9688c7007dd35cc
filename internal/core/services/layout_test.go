package services

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/viewsync/internal/core/domain"
)

func assertLayoutInvariants(t *testing.T, m *LayoutMachine) {
	t.Helper()
	s := m.State()
	b := m.Bounds()
	assert.False(t, s.PaneStates.BothMinimized(), "both panes minimized: %+v", s.PaneStates)
	assert.True(t, s.PaneStates.IsValid(), "invalid pane states: %+v", s.PaneStates)
	assert.GreaterOrEqual(t, s.DividerPosition, b.Min)
	assert.LessOrEqual(t, s.DividerPosition, b.Max)
}

func TestNewLayoutMachine_Defaults(t *testing.T) {
	m := NewLayoutMachine(domain.DefaultLayoutBounds())

	assert.Equal(t, domain.DefaultLayoutState(), m.State())
}

func TestNewLayoutMachine_InvalidBoundsFallBack(t *testing.T) {
	m := NewLayoutMachine(domain.LayoutBounds{Min: 0.9, Max: 0.1})

	assert.Equal(t, domain.DefaultLayoutBounds(), m.Bounds())
}

func TestLayoutMachine_SetDividerPosition_Clamps(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"in range unchanged", 0.35, 0.35},
		{"lower bound", 0.2, 0.2},
		{"below", 0.05, 0.2},
		{"negative", -3, 0.2},
		{"above", 0.95, 0.8},
		{"positive infinity", math.Inf(1), 0.8},
		{"negative infinity", math.Inf(-1), 0.2},
		{"not a number", math.NaN(), 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewLayoutMachine(domain.DefaultLayoutBounds())
			m.SetDividerPosition(tt.in)
			assert.InDelta(t, tt.want, m.State().DividerPosition, 1e-9)
			assertLayoutInvariants(t, m)
		})
	}
}

func TestLayoutMachine_SetDividerPosition_ResetsPanes(t *testing.T) {
	m := NewLayoutMachine(domain.DefaultLayoutBounds())
	_, err := m.MaximizePane(domain.PanePrimary)
	require.NoError(t, err)

	assert.True(t, m.SetDividerPosition(0.3))
	assert.Equal(t, domain.DefaultPaneStates(), m.State().PaneStates)
}

func TestLayoutMachine_SetDividerPosition_ReportsNoChange(t *testing.T) {
	m := NewLayoutMachine(domain.DefaultLayoutBounds())
	assert.False(t, m.SetDividerPosition(0.5))
	assert.True(t, m.SetDividerPosition(0.6))
	assert.False(t, m.SetDividerPosition(0.6))
}

func TestLayoutMachine_MaximizePane(t *testing.T) {
	m := NewLayoutMachine(domain.DefaultLayoutBounds())
	m.SetDividerPosition(0.3)

	changed, err := m.MaximizePane(domain.PanePrimary)
	require.NoError(t, err)
	assert.True(t, changed)

	s := m.State()
	assert.Equal(t, domain.PaneStates{Primary: domain.PaneMaximized, Secondary: domain.PaneMinimized}, s.PaneStates)
	assert.InDelta(t, 0.3, s.PreviousDividerPosition, 1e-9)
	assertLayoutInvariants(t, m)
}

func TestLayoutMachine_MinimizeRefusedWhenOtherMinimized(t *testing.T) {
	m := NewLayoutMachine(domain.DefaultLayoutBounds())
	_, err := m.MaximizePane(domain.PanePrimary)
	require.NoError(t, err)
	before := m.State()

	changed, err := m.MinimizePane(domain.PanePrimary)

	assert.ErrorIs(t, err, errOtherPaneMinimized)
	assert.False(t, changed)
	assert.Equal(t, before, m.State())
}

func TestLayoutMachine_MinimizeNormalizesOtherPane(t *testing.T) {
	m := NewLayoutMachine(domain.DefaultLayoutBounds())
	_, err := m.MaximizePane(domain.PanePrimary)
	require.NoError(t, err)

	// Secondary is already minimized next to a maximized primary; minimizing
	// it again is allowed and leaves primary normal.
	changed, err := m.MinimizePane(domain.PaneSecondary)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.PaneStates{Primary: domain.PaneNormal, Secondary: domain.PaneMinimized}, m.State().PaneStates)
}

func TestLayoutMachine_MinimizeThenMinimizeOther(t *testing.T) {
	m := NewLayoutMachine(domain.DefaultLayoutBounds())

	_, err := m.MinimizePane(domain.PanePrimary)
	require.NoError(t, err)
	_, err = m.MinimizePane(domain.PaneSecondary)

	assert.ErrorIs(t, err, errOtherPaneMinimized)
	assert.Equal(t, domain.PaneStates{Primary: domain.PaneMinimized, Secondary: domain.PaneNormal}, m.State().PaneStates)
	assertLayoutInvariants(t, m)
}

func TestLayoutMachine_RestoreRestoresDividerAndBothPanes(t *testing.T) {
	for _, pane := range []domain.PaneID{domain.PanePrimary, domain.PaneSecondary} {
		t.Run(pane.String(), func(t *testing.T) {
			m := NewLayoutMachine(domain.DefaultLayoutBounds())
			m.SetDividerPosition(0.7)
			_, err := m.MaximizePane(domain.PaneSecondary)
			require.NoError(t, err)

			changed, err := m.RestorePane(pane)
			require.NoError(t, err)
			assert.True(t, changed)

			s := m.State()
			assert.Equal(t, domain.DefaultPaneStates(), s.PaneStates)
			assert.InDelta(t, 0.7, s.DividerPosition, 1e-9)
		})
	}
}

func TestLayoutMachine_UnknownPane(t *testing.T) {
	m := NewLayoutMachine(domain.DefaultLayoutBounds())
	before := m.State()

	for _, op := range []func(domain.PaneID) (bool, error){m.MaximizePane, m.MinimizePane, m.RestorePane} {
		changed, err := op("sidebar")
		assert.ErrorIs(t, err, errUnknownPane)
		assert.False(t, changed)
	}
	assert.Equal(t, before, m.State())
}

func TestLayoutMachine_Reset(t *testing.T) {
	m := NewLayoutMachine(domain.DefaultLayoutBounds())
	m.SetDividerPosition(0.25)
	_, _ = m.MinimizePane(domain.PaneSecondary)

	assert.True(t, m.Reset())
	assert.Equal(t, domain.DefaultLayoutState(), m.State())
	assert.False(t, m.Reset())
}

func TestLayoutMachine_Hydrate(t *testing.T) {
	m := NewLayoutMachine(domain.DefaultLayoutBounds())

	ok := m.Hydrate(domain.LayoutPreferences{
		DividerPosition: 0.95,
		PaneStates:      domain.PaneStates{Primary: domain.PaneMinimized, Secondary: domain.PaneNormal},
	})
	require.True(t, ok)
	assert.InDelta(t, 0.8, m.State().DividerPosition, 1e-9)
	assert.Equal(t, domain.PaneMinimized, m.State().PaneStates.Primary)

	ok = m.Hydrate(domain.LayoutPreferences{
		DividerPosition: 0.5,
		PaneStates:      domain.PaneStates{Primary: domain.PaneMinimized, Secondary: domain.PaneMinimized},
	})
	assert.False(t, ok)
	assert.Equal(t, domain.PaneMinimized, m.State().PaneStates.Primary)
	assert.Equal(t, domain.PaneNormal, m.State().PaneStates.Secondary)
}

func TestLayoutMachine_CustomBounds(t *testing.T) {
	m := NewLayoutMachine(domain.LayoutBounds{Min: 0.1, Max: 0.9})
	m.SetDividerPosition(0.05)
	assert.InDelta(t, 0.1, m.State().DividerPosition, 1e-9)
	m.SetDividerPosition(0.85)
	assert.InDelta(t, 0.85, m.State().DividerPosition, 1e-9)
}

func TestLayoutMachine_InvariantsHoldUnderRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	panes := []domain.PaneID{domain.PanePrimary, domain.PaneSecondary}

	for run := 0; run < 200; run++ {
		m := NewLayoutMachine(domain.DefaultLayoutBounds())
		for step := 0; step < 50; step++ {
			p := panes[rng.Intn(2)]
			switch rng.Intn(5) {
			case 0:
				_, _ = m.MaximizePane(p)
			case 1:
				_, _ = m.MinimizePane(p)
			case 2:
				_, _ = m.RestorePane(p)
			case 3:
				m.SetDividerPosition(rng.Float64()*3 - 1)
			case 4:
				m.Reset()
			}
			assertLayoutInvariants(t, m)
		}
	}
}
