package templates

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Layout binds a layout name to its template. Exactly one of Path or Source
// must be set: Path points at a template file resolved by the engine loader,
// Source carries inline template content.
type Layout struct {
	Name   string
	Path   string
	Source string
}

// Registry resolves layout names for page rendering. Lookups against an
// unregistered layout fail with UnknownLayoutError.
type Registry interface {
	Register(layout Layout) error
	Get(name string) (Layout, error)
	Has(name string) bool
	Names() []string
}

var layoutNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// MemoryRegistry is the default in-process layout registry.
type MemoryRegistry struct {
	mu      sync.RWMutex
	layouts map[string]Layout
}

// NewMemoryRegistry constructs an empty layout registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{layouts: make(map[string]Layout)}
}

func (r *MemoryRegistry) Register(layout Layout) error {
	name := strings.TrimSpace(layout.Name)
	if name == "" {
		return ErrLayoutRequired
	}
	if !layoutNamePattern.MatchString(name) {
		return fmt.Errorf("%w: name %q is not a valid identifier", ErrLayoutInvalid, name)
	}
	if layout.Path == "" && layout.Source == "" {
		return fmt.Errorf("%w: layout %q needs a template path or source", ErrLayoutInvalid, name)
	}
	if layout.Path != "" && layout.Source != "" {
		return fmt.Errorf("%w: layout %q cannot carry both path and source", ErrLayoutInvalid, name)
	}
	layout.Name = name

	r.mu.Lock()
	defer r.mu.Unlock()

	r.layouts[layoutKey(name)] = layout
	return nil
}

func (r *MemoryRegistry) Get(name string) (Layout, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Layout{}, ErrLayoutRequired
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	layout, ok := r.layouts[layoutKey(trimmed)]
	if !ok {
		return Layout{}, &UnknownLayoutError{Layout: trimmed, Known: r.namesLocked()}
	}
	return layout, nil
}

func (r *MemoryRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.layouts[layoutKey(strings.TrimSpace(name))]
	return ok
}

func (r *MemoryRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.namesLocked()
}

func (r *MemoryRegistry) namesLocked() []string {
	names := make([]string, 0, len(r.layouts))
	for _, layout := range r.layouts {
		names = append(names, layout.Name)
	}
	sort.Strings(names)
	return names
}

func layoutKey(name string) string {
	return strings.ToLower(name)
}
