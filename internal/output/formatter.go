// Package output writes a rendered view in the supported output formats.
package output

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/canadavotes/canadavotes/internal/view"
)

// ErrUnknownFormat is returned by GetFormatter for unregistered names.
var ErrUnknownFormat = errors.New("unknown format")

// Formatter writes a rendering to the given writer in a specific format.
type Formatter interface {
	// Name returns the format name (e.g., "text", "json", "html").
	Name() string

	// Format writes the rendering to w.
	Format(r *view.Rendering, w io.Writer) error
}

// Extensioner is implemented by formatters whose output is written to files.
type Extensioner interface {
	// Extension returns the file extension including the dot.
	Extension() string
}

var (
	fmtMu       sync.RWMutex
	fmtRegistry = make(map[string]Formatter)
)

// RegisterFormatter adds a formatter to the global registry.
func RegisterFormatter(f Formatter) {
	fmtMu.Lock()
	defer fmtMu.Unlock()
	fmtRegistry[f.Name()] = f
}

// GetFormatter returns the formatter with the given name, or an error if not found.
func GetFormatter(name string) (Formatter, error) {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	f, ok := fmtRegistry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownFormat, name, strings.Join(formatNames(), ", "))
	}
	return f, nil
}

// Names returns the registered format names in sorted order.
func Names() []string {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	return formatNames()
}

// Extension returns the file extension for a formatter, ".txt" by default.
func Extension(f Formatter) string {
	if e, ok := f.(Extensioner); ok {
		return e.Extension()
	}
	return ".txt"
}

func formatNames() []string {
	names := make([]string, 0, len(fmtRegistry))
	for name := range fmtRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// nilRendering guards formatters against a nil rendering.
func nilRendering(r *view.Rendering) error {
	if r == nil {
		return view.ErrNoData
	}
	return nil
}
