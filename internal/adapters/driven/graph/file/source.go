// Package file loads the building graph from a YAML or JSON file and
// watches it for edits.
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/viewsync/internal/core/domain"
	"github.com/custodia-labs/viewsync/internal/core/ports/driven"
	"github.com/custodia-labs/viewsync/internal/debounce"
	"github.com/custodia-labs/viewsync/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.GraphSource = (*Source)(nil)

// DefaultWatchDelay coalesces the burst of events an editor save produces.
const DefaultWatchDelay = 200 * time.Millisecond

// ValidationError lists every problem found in a graph file.
type ValidationError struct {
	Path   string
	Issues []domain.GraphIssue
}

// Error implements error.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return fmt.Sprintf("%s: %d issue(s): %s", e.Path, len(e.Issues), strings.Join(parts, "; "))
}

// Unwrap makes errors.Is(err, domain.ErrInvalidGraph) hold.
func (e *ValidationError) Unwrap() error {
	return domain.ErrInvalidGraph
}

// rawNode mirrors domain.Node with free-typed properties, so numeric and
// boolean attributes in the file are accepted.
type rawNode struct {
	ID         string         `json:"id" yaml:"id"`
	Type       string         `json:"type" yaml:"type"`
	Properties map[string]any `json:"properties" yaml:"properties"`
}

type rawGraph struct {
	Nodes []rawNode     `json:"nodes" yaml:"nodes"`
	Edges []domain.Edge `json:"edges" yaml:"edges"`
}

// Option configures a Source.
type Option func(*Source)

// WithWatchDelay sets the debounce window for Watch.
func WithWatchDelay(d time.Duration) Option {
	return func(s *Source) {
		if d > 0 {
			s.delay = d
		}
	}
}

// Source reads a graph file.
type Source struct {
	path  string
	delay time.Duration
}

// NewSource creates a source for path. The file is not read until Load.
func NewSource(path string, opts ...Option) *Source {
	s := &Source{path: path, delay: DefaultWatchDelay}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the graph file path.
func (s *Source) Path() string {
	return s.path
}

// Load reads, parses and validates the graph file.
func (s *Source) Load(ctx context.Context) (*domain.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read graph: %w", err)
	}
	return Parse(s.path, data)
}

// Parse decodes graph data. Files ending in .json are decoded strictly as
// JSON; anything else goes through the YAML decoder.
func Parse(name string, data []byte) (*domain.Graph, error) {
	var raw rawGraph
	if strings.EqualFold(filepath.Ext(name), ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidGraph, name, err)
		}
	} else if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidGraph, name, err)
	}

	nodes := make([]domain.Node, 0, len(raw.Nodes))
	for _, rn := range raw.Nodes {
		nodes = append(nodes, domain.Node{
			ID:         domain.ElementID(rn.ID),
			Type:       rn.Type,
			Properties: stringProperties(rn.Properties),
		})
	}

	g := domain.NewGraph(nodes, raw.Edges)
	if issues := g.Validate(); len(issues) > 0 {
		return nil, &ValidationError{Path: name, Issues: issues}
	}
	return g, nil
}

func stringProperties(in map[string]any) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch val := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = val
		case float64:
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}

// Watch calls onChange after the file is written, created or replaced.
// The parent directory is watched so editors that save via rename are seen.
// It blocks until ctx is cancelled.
func (s *Source) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(s.path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", s.path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	d := debounce.New(s.delay)
	defer d.Cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("graph file event: %s op=%v", event.Name, event.Op)
			d.Trigger(func() {
				if ctx.Err() == nil {
					onChange()
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				d.Trigger(onChange)
				continue
			}
			logger.WithFields(logger.Fields{"path": s.path, "error": err}).Warn("graph watcher error")
		}
	}
}
