package templates

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrLayoutNotFound   = errors.New("templates: layout not found")
	ErrLayoutRequired   = errors.New("templates: layout name required")
	ErrLayoutInvalid    = errors.New("templates: layout definition invalid")
	ErrRendererRequired = errors.New("templates: template renderer required")
	ErrRegistryRequired = errors.New("templates: layout registry required")
)

// UnknownLayoutError reports a page referencing a layout the registry has
// never seen. The failure stays scoped to the page that referenced it.
type UnknownLayoutError struct {
	Layout string
	Known  []string
}

func (e *UnknownLayoutError) Error() string {
	if e == nil {
		return ErrLayoutNotFound.Error()
	}
	if len(e.Known) == 0 {
		return fmt.Sprintf("%s: %q", ErrLayoutNotFound.Error(), e.Layout)
	}
	return fmt.Sprintf("%s: %q (registered: %s)", ErrLayoutNotFound.Error(), e.Layout, strings.Join(e.Known, ", "))
}

func (e *UnknownLayoutError) Unwrap() error {
	return ErrLayoutNotFound
}

// RenderError wraps a template execution failure with the layout that
// produced it.
type RenderError struct {
	Layout string
	Err    error
}

func (e *RenderError) Error() string {
	if e == nil {
		return "templates: render failed"
	}
	return fmt.Sprintf("templates: render layout %q: %v", e.Layout, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
