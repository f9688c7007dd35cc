// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help toggles the full help line.
	Help key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Toggle selects or deselects the element under the cursor.
	Toggle key.Binding

	// Center re-centres the graph pane on the element under the cursor.
	Center key.Binding

	// SwitchPane moves key focus between the model and graph panes.
	SwitchPane key.Binding

	// Filter starts fuzzy filtering in the model pane.
	Filter key.Binding

	// Command focuses the command panel.
	Command key.Binding

	// Cancel leaves the command panel or the filter.
	Cancel key.Binding

	// Clear empties the selection, highlights and hover.
	Clear key.Binding

	// Maximize maximizes the focused pane.
	Maximize key.Binding

	// Minimize minimizes the focused pane.
	Minimize key.Binding

	// Restore returns both panes to normal.
	Restore key.Binding

	// DividerLeft moves the divider towards the model pane.
	DividerLeft key.Binding

	// DividerRight moves the divider towards the graph pane.
	DividerRight key.Binding

	// Reset restores the default layout.
	Reset key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		Center: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "centre"),
		),
		SwitchPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear"),
		),
		Maximize: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "maximize"),
		),
		Minimize: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "minimize"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore"),
		),
		DividerLeft: key.NewBinding(
			key.WithKeys("<", "["),
			key.WithHelp("<", "divider left"),
		),
		DividerRight: key.NewBinding(
			key.WithKeys(">", "]"),
			key.WithHelp(">", "divider right"),
		),
		Reset: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "reset layout"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.SwitchPane, k.Command, k.Help, k.Quit}
}

// CommandHelp returns keybindings shown while the command panel is focused.
func (k *KeyMap) CommandHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		k.Cancel,
	}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Center, k.Filter},
		{k.SwitchPane, k.Maximize, k.Minimize, k.Restore, k.DividerLeft, k.DividerRight, k.Reset},
		{k.Command, k.Clear, k.Cancel, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
