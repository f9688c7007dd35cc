package domain

// CommandOp is a structured operation produced from command panel text.
type CommandOp string

// Available command operations.
const (
	OpSelect     CommandOp = "select"
	OpDeselect   CommandOp = "deselect"
	OpHighlight  CommandOp = "highlight"
	OpFind       CommandOp = "find"
	OpClear      CommandOp = "clear"
	OpMaximize   CommandOp = "maximize"
	OpMinimize   CommandOp = "minimize"
	OpRestore    CommandOp = "restore"
	OpDivider    CommandOp = "divider"
	OpResetViews CommandOp = "reset"
)

// Command is the output contract of the command interpreter.
// Only the fields relevant to Op are set.
type Command struct {
	Op         CommandOp
	ElementIDs []ElementID
	Style      HighlightStyle
	Pane       PaneID
	Divider    float64
	Filter     Filter
}
