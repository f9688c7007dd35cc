// Package input provides text input components for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/viewsync/internal/adapters/driving/tui/styles"
)

// CommandInput wraps a bubbles textinput as the command panel.
type CommandInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	history   []string
	width     int
}

// NewCommandInput creates a blurred command panel input.
func NewCommandInput(s *styles.Styles) *CommandInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "select wall-42 · find type=Wall · maximize graph"
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Width = 50

	return &CommandInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the command input.
func (c *CommandInput) Init() tea.Cmd {
	return nil
}

// Update handles input messages.
func (c *CommandInput) Update(msg tea.Msg) (*CommandInput, tea.Cmd) {
	var cmd tea.Cmd
	c.textinput, cmd = c.textinput.Update(msg)
	return c, cmd
}

// View renders the command input.
func (c *CommandInput) View() string {
	label := c.styles.Prompt.Render(": ")
	if !c.textinput.Focused() {
		label = c.styles.Muted.Render(": ")
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, c.textinput.View())
}

// Submit returns the trimmed input, records it in the history and clears
// the field. Blank input returns "".
func (c *CommandInput) Submit() string {
	text := strings.TrimSpace(c.textinput.Value())
	c.textinput.Reset()
	if text != "" {
		c.history = append(c.history, text)
	}
	return text
}

// History returns submitted commands, oldest first.
func (c *CommandInput) History() []string {
	return c.history
}

// Value returns the current input value.
func (c *CommandInput) Value() string {
	return c.textinput.Value()
}

// SetValue sets the input value.
func (c *CommandInput) SetValue(value string) {
	c.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (c *CommandInput) Focus() tea.Cmd {
	return c.textinput.Focus()
}

// Blur removes focus from the input.
func (c *CommandInput) Blur() {
	c.textinput.Blur()
}

// Focused returns whether the input is focused.
func (c *CommandInput) Focused() bool {
	return c.textinput.Focused()
}

// SetWidth sets the width of the input.
func (c *CommandInput) SetWidth(width int) {
	c.width = width
	inputWidth := width - 4
	if inputWidth < 20 {
		inputWidth = 20
	}
	c.textinput.Width = inputWidth
}

// Width returns the current width.
func (c *CommandInput) Width() int {
	return c.width
}

// Reset clears the input.
func (c *CommandInput) Reset() {
	c.textinput.Reset()
}
