package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/viewsync/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/viewsync/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/viewsync/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/viewsync/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/viewsync/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/viewsync/internal/adapters/driving/tui/views/detail"
	"github.com/custodia-labs/viewsync/internal/adapters/driving/tui/views/graph"
	"github.com/custodia-labs/viewsync/internal/adapters/driving/tui/views/model"
	"github.com/custodia-labs/viewsync/internal/core/domain"
	"github.com/custodia-labs/viewsync/internal/logger"
)

// dividerStep is how far one divider key press moves the split.
const dividerStep = 0.05

// stripWidth is the width of a minimized pane.
const stripWidth = 3

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	modelView  *model.View
	graphView  *graph.View
	detailView *detail.View
	command    *input.CommandInput
	status     *status.Bar

	// bridge carries bus events into Update.
	bridge *eventBridge
	unsub  func()

	// focus is the area receiving keys; lastPane is where the command
	// panel returns to.
	focus    messages.Focus
	lastPane messages.Focus

	snapshot domain.Snapshot
	showHelp bool

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its first window size.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
// Call Close when done to detach from the engine.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	bridge := newEventBridge()

	a := &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		keymap:     km,
		help:       help.New(),
		modelView:  model.NewView(ports.Engine, ports.Graph, s, km),
		graphView:  graph.NewView(ports.Engine, ports.Graph, s, km),
		detailView: detail.NewView(ports.Graph, s),
		command:    input.NewCommandInput(s),
		status:     status.NewBar(s, km),
		bridge:     bridge,
		focus:      messages.FocusModel,
		lastPane:   messages.FocusModel,
		width:      80,
		height:     24,
	}
	a.unsub = ports.Engine.SubscribeAll(bridge.push)
	a.refresh()
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("viewsync"),
		a.bridge.next(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.resize()
		return a, nil

	case messages.EngineEvents:
		for _, ev := range msg.Events {
			if focus, ok := ev.(domain.FocusRequested); ok {
				a.graphView.Focus(focus.NodeIDs)
			}
		}
		a.refresh()
		return a, a.bridge.next()

	case messages.GraphReloaded:
		nodes := 0
		if msg.Graph != nil {
			nodes = len(msg.Graph.Nodes)
		}
		a.status.SetMessage(fmt.Sprintf("graph reloaded: %d nodes", nodes))
		a.refresh()
		return a, nil

	case messages.CommandCompleted:
		if msg.Err != nil {
			a.status.SetError(msg.Err)
		} else {
			a.status.SetMessage(msg.Summary)
		}
		a.refresh()
		return a, nil

	case tea.KeyMsg:
		cmd := a.handleKey(msg)
		a.refresh()
		return a, cmd
	}

	return a, nil
}

// handleKey routes a key press to the command panel, the filter, a global
// binding or the focused pane, in that order.
//
//nolint:gocyclo // central key dispatch
func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	if k == "ctrl+c" {
		return tea.Quit
	}

	if a.focus == messages.FocusCommand {
		return a.handleCommandKey(msg)
	}

	var cmd tea.Cmd
	if a.focus == messages.FocusModel && a.modelView.Filtering() {
		a.modelView, cmd = a.modelView.Update(msg)
		return cmd
	}

	engine := a.ports.Engine
	km := a.keymap
	switch {
	case keymap.Matches(k, km.Quit):
		return tea.Quit
	case keymap.Matches(k, km.Help):
		a.showHelp = !a.showHelp
		a.help.ShowAll = a.showHelp
	case keymap.Matches(k, km.SwitchPane):
		a.switchPane()
	case keymap.Matches(k, km.Command):
		a.lastPane = a.focus
		a.focus = messages.FocusCommand
		a.status.SetCommandMode(true)
		return a.command.Focus()
	case keymap.Matches(k, km.Clear):
		engine.ClearHighlights()
	case keymap.Matches(k, km.Maximize):
		if p, ok := a.focus.Pane(); ok {
			engine.MaximizePane(p)
		}
	case keymap.Matches(k, km.Minimize):
		if p, ok := a.focus.Pane(); ok {
			engine.MinimizePane(p)
		}
	case keymap.Matches(k, km.Restore):
		if p, ok := a.focus.Pane(); ok {
			engine.RestorePane(p)
		}
	case keymap.Matches(k, km.DividerLeft):
		engine.SetDividerPosition(a.snapshot.Layout.DividerPosition - dividerStep)
	case keymap.Matches(k, km.DividerRight):
		engine.SetDividerPosition(a.snapshot.Layout.DividerPosition + dividerStep)
	case keymap.Matches(k, km.Reset):
		engine.ResetLayout()
	case a.focus == messages.FocusGraph:
		a.graphView, cmd = a.graphView.Update(msg)
	default:
		a.modelView, cmd = a.modelView.Update(msg)
	}
	return cmd
}

func (a *App) handleCommandKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case keymap.Matches(msg.String(), a.keymap.Cancel):
		a.leaveCommand()
		return nil
	case msg.Type == tea.KeyEnter:
		text := a.command.Submit()
		a.leaveCommand()
		if text == "" {
			return nil
		}
		return a.runCommand(text)
	}

	var cmd tea.Cmd
	a.command, cmd = a.command.Update(msg)
	return cmd
}

func (a *App) leaveCommand() {
	a.command.Blur()
	a.focus = a.lastPane
	a.status.SetCommandMode(false)
}

// runCommand executes text off the Update goroutine.
func (a *App) runCommand(text string) tea.Cmd {
	if a.ports.Command == nil {
		a.status.SetError(ErrCommandDisabled)
		return nil
	}
	svc, ctx := a.ports.Command, a.ctx
	return func() tea.Msg {
		summary, err := svc.Execute(ctx, text)
		if err != nil {
			logger.WithFields(logger.Fields{"command": text, "error": err}).Debug("command failed")
		}
		return messages.CommandCompleted{Text: text, Summary: summary, Err: err}
	}
}

// switchPane moves focus to the other pane unless it is minimized.
func (a *App) switchPane() {
	next := messages.FocusGraph
	if a.focus == messages.FocusGraph {
		next = messages.FocusModel
	}
	if p, _ := next.Pane(); a.snapshot.Layout.PaneStates.Get(p) == domain.PaneMinimized {
		return
	}
	a.focus = next
}

// refresh pulls the engine state into every view.
func (a *App) refresh() {
	a.snapshot = a.ports.Engine.Snapshot()
	a.modelView.Refresh(a.snapshot)
	a.graphView.Refresh(a.snapshot)
	a.detailView.Refresh(a.snapshot)
	a.status.SetSnapshot(a.snapshot)
	a.keepFocusVisible()
	a.resize()
}

// keepFocusVisible moves key focus off a pane that was just minimized.
func (a *App) keepFocusVisible() {
	focus := a.focus
	if focus == messages.FocusCommand {
		focus = a.lastPane
	}
	p, ok := focus.Pane()
	if !ok || a.snapshot.Layout.PaneStates.Get(p) != domain.PaneMinimized {
		return
	}
	other := messages.FocusGraph
	if focus == messages.FocusGraph {
		other = messages.FocusModel
	}
	if a.focus == messages.FocusCommand {
		a.lastPane = other
	} else {
		a.focus = other
	}
}

// paneWidths splits the terminal between the panes by the divider.
// A minimized pane collapses to a strip.
func (a *App) paneWidths() (int, int) {
	ps := a.snapshot.Layout.PaneStates
	switch {
	case ps.Primary == domain.PaneMinimized:
		return stripWidth, a.width - stripWidth
	case ps.Secondary == domain.PaneMinimized:
		return a.width - stripWidth, stripWidth
	}
	left := int(float64(a.width) * a.snapshot.Layout.DividerPosition)
	return left, a.width - left
}

func (a *App) paneHeight() int {
	// detail, command and status lines sit below the panes
	h := a.height - 3
	if a.showHelp {
		h -= 4
	}
	if h < 3 {
		h = 3
	}
	return h
}

func (a *App) resize() {
	left, right := a.paneWidths()
	h := a.paneHeight() - 2
	a.modelView.SetDimensions(left-4, h)
	a.graphView.SetDimensions(right-4, h)
	a.detailView.SetWidth(a.width)
	a.command.SetWidth(a.width)
	a.status.SetWidth(a.width)
	a.help.Width = a.width
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	left, right := a.paneWidths()
	h := a.paneHeight()
	ps := a.snapshot.Layout.PaneStates
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		a.renderPane(a.modelView.View(), "M", ps.Primary, a.focus == messages.FocusModel, left, h),
		a.renderPane(a.graphView.View(), "G", ps.Secondary, a.focus == messages.FocusGraph, right, h),
	)

	lines := []string{panes, a.detailView.View(), a.command.View(), a.status.View()}
	if a.showHelp {
		lines = append(lines, a.help.View(a.keymap))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderPane(content, short string, state domain.PaneState, focused bool, width, height int) string {
	style := a.styles.Pane
	if focused {
		style = a.styles.FocusedPane
	}
	if state == domain.PaneMinimized {
		return a.styles.Muted.Width(width).Height(height).Render(short)
	}
	// Width and Height exclude the border
	return style.Width(width - 2).Height(height - 2).MaxHeight(height).Render(content)
}

// Run starts the TUI and reloads panes whenever the graph source changes.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(a.ctx)
	defer cancel()
	a.ctx = ctx

	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(ctx))
	if a.ports.Graph != nil {
		go func() {
			err := a.ports.Graph.Watch(ctx, func(g *domain.Graph) {
				p.Send(messages.GraphReloaded{Graph: g})
			})
			if err != nil {
				logger.Warn("graph watch stopped: %v", err)
			}
		}()
	}

	_, err := p.Run()
	return err
}

// Close detaches the app from the engine.
func (a *App) Close() {
	if a.unsub != nil {
		a.unsub()
		a.unsub = nil
	}
	a.bridge.close()
}

// Focus returns the area receiving keys.
func (a *App) Focus() messages.Focus {
	return a.focus
}

// ShowingHelp reports whether the full help is displayed.
func (a *App) ShowingHelp() bool {
	return a.showHelp
}

// Status returns the status bar.
func (a *App) Status() *status.Bar {
	return a.status
}

// GraphView returns the graph pane.
func (a *App) GraphView() *graph.View {
	return a.graphView
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.resize()
}
