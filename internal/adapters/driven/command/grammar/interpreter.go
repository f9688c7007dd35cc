// Package grammar is a deterministic verb parser for command panel input.
//
//	select <id>...
//	deselect <id>...
//	highlight <id>... [as <category>/<intensity>] [color <token>]
//	find <type> | find <key>=<value> | find <type> <key>=<value>
//	(type=<type> is the same as <type>)
//	clear
//	maximize|minimize|restore <pane>
//	divider <ratio>|<percent>%
//	reset
//
// Verbs and keywords are case-insensitive; element ids are kept verbatim.
package grammar

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/viewsync/internal/core/domain"
	"github.com/custodia-labs/viewsync/internal/core/ports/driven"
)

// Ensure Interpreter implements the interface.
var _ driven.CommandInterpreter = (*Interpreter)(nil)

// verbAliases maps accepted spellings onto operations.
var verbAliases = map[string]domain.CommandOp{
	"select":    domain.OpSelect,
	"sel":       domain.OpSelect,
	"deselect":  domain.OpDeselect,
	"unselect":  domain.OpDeselect,
	"highlight": domain.OpHighlight,
	"hl":        domain.OpHighlight,
	"find":      domain.OpFind,
	"show":      domain.OpFind,
	"clear":     domain.OpClear,
	"maximize":  domain.OpMaximize,
	"max":       domain.OpMaximize,
	"minimize":  domain.OpMinimize,
	"min":       domain.OpMinimize,
	"restore":   domain.OpRestore,
	"divider":   domain.OpDivider,
	"split":     domain.OpDivider,
	"reset":     domain.OpResetViews,
}

// Interpreter parses command text.
type Interpreter struct{}

// New creates an interpreter.
func New() *Interpreter {
	return &Interpreter{}
}

// Interpret maps text to a command.
func (i *Interpreter) Interpret(ctx context.Context, text string) (domain.Command, error) {
	if err := ctx.Err(); err != nil {
		return domain.Command{}, err
	}

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return domain.Command{}, fmt.Errorf("%w: empty input", domain.ErrUnknownCommand)
	}

	op, ok := verbAliases[strings.ToLower(fields[0])]
	if !ok {
		return domain.Command{}, fmt.Errorf("%w: %q", domain.ErrUnknownCommand, fields[0])
	}
	args := fields[1:]

	switch op {
	case domain.OpSelect, domain.OpDeselect:
		return parseIDs(op, args)
	case domain.OpHighlight:
		return parseHighlight(args)
	case domain.OpFind:
		return parseFind(args)
	case domain.OpClear, domain.OpResetViews:
		if len(args) > 0 {
			return domain.Command{}, fmt.Errorf("%w: %s takes no arguments", domain.ErrInvalidInput, op)
		}
		return domain.Command{Op: op}, nil
	case domain.OpMaximize, domain.OpMinimize, domain.OpRestore:
		return parsePane(op, args)
	case domain.OpDivider:
		return parseDivider(args)
	}
	return domain.Command{}, fmt.Errorf("%w: %q", domain.ErrUnknownCommand, fields[0])
}

func parseIDs(op domain.CommandOp, args []string) (domain.Command, error) {
	if len(args) == 0 {
		return domain.Command{}, fmt.Errorf("%w: %s needs at least one element id", domain.ErrInvalidInput, op)
	}
	return domain.Command{Op: op, ElementIDs: toIDs(args)}, nil
}

func parseHighlight(args []string) (domain.Command, error) {
	cmd := domain.Command{Op: domain.OpHighlight}

	var ids []string
	for n := 0; n < len(args); n++ {
		switch strings.ToLower(args[n]) {
		case "as":
			if n+1 >= len(args) {
				return domain.Command{}, fmt.Errorf("%w: 'as' needs <category>/<intensity>", domain.ErrInvalidInput)
			}
			n++
			cat, intensity, found := strings.Cut(strings.ToLower(args[n]), "/")
			if !found {
				intensity = string(domain.IntensitySelected)
			}
			cmd.Style.Category = domain.HighlightCategory(cat)
			cmd.Style.Intensity = domain.HighlightIntensity(intensity)
			if !cmd.Style.IsValid() {
				return domain.Command{}, fmt.Errorf("%w: unknown style %q", domain.ErrInvalidInput, args[n])
			}
		case "color", "colour":
			if n+1 >= len(args) {
				return domain.Command{}, fmt.Errorf("%w: 'color' needs a value", domain.ErrInvalidInput)
			}
			n++
			cmd.Style.Color = args[n]
		default:
			ids = append(ids, args[n])
		}
	}

	if len(ids) == 0 {
		return domain.Command{}, fmt.Errorf("%w: highlight needs at least one element id", domain.ErrInvalidInput)
	}
	if cmd.Style.Category == "" {
		cmd.Style.Category = domain.CategoryElement
		cmd.Style.Intensity = domain.IntensitySelected
	}
	cmd.ElementIDs = toIDs(ids)
	return cmd, nil
}

func parseFind(args []string) (domain.Command, error) {
	var f domain.Filter
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if ok && strings.EqualFold(key, "type") {
			arg, ok = value, false
		}
		if ok {
			if key == "" || f.Property != "" {
				return domain.Command{}, fmt.Errorf("%w: find takes one key=value", domain.ErrInvalidInput)
			}
			f.Property, f.Value = key, value
			continue
		}
		if f.Type != "" {
			return domain.Command{}, fmt.Errorf("%w: find takes one type", domain.ErrInvalidInput)
		}
		f.Type = arg
	}
	if f.IsEmpty() {
		return domain.Command{}, fmt.Errorf("%w: find needs a type or key=value", domain.ErrInvalidInput)
	}
	return domain.Command{Op: domain.OpFind, Filter: f}, nil
}

func parsePane(op domain.CommandOp, args []string) (domain.Command, error) {
	if len(args) != 1 {
		return domain.Command{}, fmt.Errorf("%w: %s needs exactly one pane", domain.ErrInvalidInput, op)
	}
	pane, ok := domain.ParsePaneID(strings.ToLower(args[0]))
	if !ok {
		return domain.Command{}, fmt.Errorf("%w: unknown pane %q", domain.ErrInvalidInput, args[0])
	}
	return domain.Command{Op: op, Pane: pane}, nil
}

func parseDivider(args []string) (domain.Command, error) {
	if len(args) != 1 {
		return domain.Command{}, fmt.Errorf("%w: divider needs one ratio", domain.ErrInvalidInput)
	}
	raw := args[0]
	scale := 1.0
	if strings.HasSuffix(raw, "%") {
		raw = strings.TrimSuffix(raw, "%")
		scale = 100
	}
	x, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return domain.Command{}, fmt.Errorf("%w: divider %q is not a number", domain.ErrInvalidInput, args[0])
	}
	return domain.Command{Op: domain.OpDivider, Divider: x / scale}, nil
}

func toIDs(args []string) []domain.ElementID {
	ids := make([]domain.ElementID, 0, len(args))
	for _, a := range args {
		ids = append(ids, domain.ElementID(strings.TrimSuffix(a, ",")))
	}
	return ids
}
