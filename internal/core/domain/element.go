package domain

import "fmt"

// ElementID identifies a building element across every view.
// The core never checks it against a dataset; callers own existence checks.
type ElementID string

// String returns the string representation.
func (id ElementID) String() string {
	return string(id)
}

// Source records which view originated a selection.
type Source string

// Available selection sources.
const (
	// SourceModel is the 3D model view.
	SourceModel Source = "model"

	// SourceGraph is the node-link graph view.
	SourceGraph Source = "graph"

	// SourceControl is the command/control panel.
	SourceControl Source = "control"
)

// IsValid returns true if the source is recognised.
func (s Source) IsValid() bool {
	switch s {
	case SourceModel, SourceGraph, SourceControl:
		return true
	default:
		return false
	}
}

// RequestsFocus returns true if selections from this source should ask
// graph-like views to centre on the selected nodes.
// The graph view never asks itself to re-centre on its own click.
func (s Source) RequestsFocus() bool {
	return s == SourceModel
}

// String returns the string representation.
func (s Source) String() string {
	return string(s)
}

// HighlightCategory groups highlighted elements by building discipline.
type HighlightCategory string

// Available highlight categories.
const (
	CategorySpace   HighlightCategory = "space"
	CategoryElement HighlightCategory = "element"
	CategorySystem  HighlightCategory = "system"
	CategoryPipe    HighlightCategory = "pipe"
)

// IsValid returns true if the category is recognised.
func (c HighlightCategory) IsValid() bool {
	switch c {
	case CategorySpace, CategoryElement, CategorySystem, CategoryPipe:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c HighlightCategory) String() string {
	return string(c)
}

// HighlightIntensity controls how strongly a highlight is rendered.
type HighlightIntensity string

// Available highlight intensities, weakest first.
const (
	// IntensityPreview is a transient, non-committing highlight.
	IntensityPreview HighlightIntensity = "preview"

	// IntensitySelected marks an element the user picked.
	IntensitySelected HighlightIntensity = "selected"

	// IntensityResult marks an element returned by a query.
	IntensityResult HighlightIntensity = "result"
)

// IsValid returns true if the intensity is recognised.
func (i HighlightIntensity) IsValid() bool {
	switch i {
	case IntensityPreview, IntensitySelected, IntensityResult:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (i HighlightIntensity) String() string {
	return string(i)
}

// AllCategories returns all highlight categories.
func AllCategories() []HighlightCategory {
	return []HighlightCategory{CategorySpace, CategoryElement, CategorySystem, CategoryPipe}
}

// AllIntensities returns all highlight intensities.
func AllIntensities() []HighlightIntensity {
	return []HighlightIntensity{IntensityPreview, IntensitySelected, IntensityResult}
}

// highlightPalette holds one colour token per category and intensity.
// Every pair is distinct so categories stay distinguishable at each intensity.
var highlightPalette = map[HighlightCategory]map[HighlightIntensity]string{
	CategorySpace: {
		IntensityPreview:  "#bbf7d0",
		IntensitySelected: "#22c55e",
		IntensityResult:   "#15803d",
	},
	CategoryElement: {
		IntensityPreview:  "#bfdbfe",
		IntensitySelected: "#3b82f6",
		IntensityResult:   "#1d4ed8",
	},
	CategorySystem: {
		IntensityPreview:  "#fde68a",
		IntensitySelected: "#f59e0b",
		IntensityResult:   "#b45309",
	},
	CategoryPipe: {
		IntensityPreview:  "#fbcfe8",
		IntensitySelected: "#ec4899",
		IntensityResult:   "#be185d",
	},
}

// DefaultHighlightColor returns the palette colour for a category and intensity.
// Returns an empty string for unknown values.
func DefaultHighlightColor(c HighlightCategory, i HighlightIntensity) string {
	return highlightPalette[c][i]
}

// HighlightStyle is an immutable visual annotation for an element.
type HighlightStyle struct {
	// Color is the visual colour token (e.g. "#3b82f6").
	Color string `json:"color"`

	// Category is the building discipline of the element.
	Category HighlightCategory `json:"category"`

	// Intensity is how strongly the highlight is rendered.
	Intensity HighlightIntensity `json:"intensity"`
}

// NewHighlightStyle builds a validated style.
// An empty colour is filled from the default palette.
func NewHighlightStyle(color string, c HighlightCategory, i HighlightIntensity) (HighlightStyle, error) {
	s := HighlightStyle{Color: color, Category: c, Intensity: i}
	if !s.IsValid() {
		return HighlightStyle{}, fmt.Errorf("%w: highlight %s/%s", ErrInvalidInput, c, i)
	}
	return s.WithDefaults(), nil
}

// IsValid returns true if the category and intensity are recognised.
func (s HighlightStyle) IsValid() bool {
	return s.Category.IsValid() && s.Intensity.IsValid()
}

// WithDefaults returns a copy with an empty colour replaced by the palette colour.
func (s HighlightStyle) WithDefaults() HighlightStyle {
	if s.Color == "" {
		s.Color = DefaultHighlightColor(s.Category, s.Intensity)
	}
	return s
}

// String returns a compact representation such as "element/selected(#3b82f6)".
func (s HighlightStyle) String() string {
	return fmt.Sprintf("%s/%s(%s)", s.Category, s.Intensity, s.Color)
}
