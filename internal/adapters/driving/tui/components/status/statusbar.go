// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/viewsync/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/viewsync/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/viewsync/internal/core/domain"
)

// Bar displays engine state and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	snapshot domain.Snapshot
	message  string
	err      error
	command  bool
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar on exactly one line. When space runs out the
// state summary is truncated first, then the hints.
func (s *Bar) View() string {
	bar := s.styles.StatusBar
	inner := s.width - bar.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}

	left := s.renderLeft()
	right := s.renderRight()
	if lipgloss.Width(right) > inner {
		right = truncate(right, inner)
	}
	if avail := inner - lipgloss.Width(right) - 1; lipgloss.Width(left) > avail {
		left = truncate(left, avail)
	}

	padding := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return bar.Width(s.width).MaxWidth(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func truncate(str string, width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(str)
}

func (s *Bar) renderLeft() string {
	if s.err != nil {
		return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.err))
	}

	l := s.snapshot.Layout
	state := fmt.Sprintf("rev %d | %d selected | %d highlighted | divider %.2f",
		s.snapshot.Revision, len(s.snapshot.Selection), len(s.snapshot.Highlights), l.DividerPosition)
	if l.PaneStates != domain.DefaultPaneStates() {
		state += fmt.Sprintf(" | %s/%s", l.PaneStates.Primary, l.PaneStates.Secondary)
	}

	out := s.styles.Normal.Render(state)
	if s.message != "" {
		out += "  " + s.styles.Success.Render(s.message)
	}
	return out
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.command {
		bindings = s.keymap.CommandHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetSnapshot sets the engine state to summarise.
func (s *Bar) SetSnapshot(snap domain.Snapshot) {
	s.snapshot = snap
}

// SetMessage sets the result line and clears any error.
func (s *Bar) SetMessage(message string) {
	s.message = message
	s.err = nil
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetError shows err in place of the state summary until the next message.
func (s *Bar) SetError(err error) {
	s.err = err
}

// Err returns the displayed error.
func (s *Bar) Err() error {
	return s.err
}

// SetCommandMode switches the hints to the command panel bindings.
func (s *Bar) SetCommandMode(on bool) {
	s.command = on
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear drops the message and error.
func (s *Bar) Clear() {
	s.message = ""
	s.err = nil
}
