// Package logger provides the diagnostic channel for viewsync.
// Warnings are always written; debug and info messages only appear when
// verbose mode is enabled via the --verbose flag. Output goes to stderr
// unless redirected (the TUI redirects it to a log file).
package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Fields is an alias for structured log fields.
type Fields = logrus.Fields

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	base              = newBase()
)

func newBase() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&lineFormatter{})
	l.SetLevel(logrus.WarnLevel)
	return l
}

// lineFormatter renders "[LEVEL] message key=value" lines.
type lineFormatter struct{}

// Format implements logrus.Formatter.
func (f *lineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder

	level := entry.Level.String()
	if level == "warning" {
		level = "warn"
	}
	b.WriteString("[")
	b.WriteString(strings.ToUpper(level))
	b.WriteString("] ")
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}

	b.WriteString("\n")
	return []byte(b.String()), nil
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		base.SetLevel(logrus.DebugLevel)
	} else {
		base.SetLevel(logrus.WarnLevel)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	base.SetOutput(w)
}

// WithFields returns an entry that attaches structured fields to a message.
func WithFields(fields Fields) *logrus.Entry {
	return base.WithFields(fields)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	base.Debugf(format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	base.Infof(format, args...)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	base.Warnf(format, args...)
}

// Error prints an error message.
func Error(format string, args ...any) {
	base.Errorf(format, args...)
}
