package templates

import (
	"io/fs"
	"path"
	"strings"

	"github.com/goliatone/go-pagegen/internal/logging"
	"github.com/goliatone/go-pagegen/pkg/interfaces"
)

// LayoutRenderer resolves a layout through the registry and executes its
// template with the page context.
type LayoutRenderer struct {
	registry Registry
	renderer interfaces.TemplateRenderer
	logger   interfaces.Logger
}

// RendererOption configures the layout renderer.
type RendererOption func(*LayoutRenderer)

// WithRendererLogger attaches a logger to layout resolution.
func WithRendererLogger(logger interfaces.Logger) RendererOption {
	return func(r *LayoutRenderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewLayoutRenderer wires a registry to a template engine.
func NewLayoutRenderer(registry Registry, renderer interfaces.TemplateRenderer, opts ...RendererOption) (*LayoutRenderer, error) {
	if registry == nil {
		return nil, ErrRegistryRequired
	}
	if renderer == nil {
		return nil, ErrRendererRequired
	}
	lr := &LayoutRenderer{
		registry: registry,
		renderer: renderer,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr, nil
}

// Registry exposes the underlying layout registry.
func (r *LayoutRenderer) Registry() Registry {
	return r.registry
}

// Render looks the layout up and executes its template. Unknown layouts
// surface as UnknownLayoutError so callers can fail just the offending page.
func (r *LayoutRenderer) Render(layoutName string, data any) (string, error) {
	layout, err := r.registry.Get(layoutName)
	if err != nil {
		return "", err
	}

	var rendered string
	if layout.Source != "" {
		rendered, err = r.renderer.RenderString(layout.Source, data)
	} else {
		rendered, err = r.renderer.RenderTemplate(layout.Path, data)
	}
	if err != nil {
		return "", &RenderError{Layout: layout.Name, Err: err}
	}

	r.logger.Trace("templates.render.success", "layout", layout.Name)
	return rendered, nil
}

// RegisterLayoutsFromFS walks dir for template files and registers each file
// stem as a layout. A "post.html" file becomes the "post" layout.
func RegisterLayoutsFromFS(registry Registry, fsys fs.FS, dir, extension string) error {
	if extension == "" {
		extension = ".html"
	}
	if !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	root := dir
	if root == "" {
		root = "."
	}

	return fs.WalkDir(fsys, root, func(entryPath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), extension) {
			return nil
		}
		name := strings.TrimSuffix(entry.Name(), extension)
		relPath := entryPath
		if dir != "" && dir != "." {
			relPath = strings.TrimPrefix(entryPath, dir+"/")
		}
		return registry.Register(Layout{
			Name: name,
			Path: path.Join(path.Dir(relPath), name+extension),
		})
	})
}
