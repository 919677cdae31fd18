package generator

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goliatone/go-pagegen/internal/templates"
	gotheme "github.com/goliatone/go-theme"
)

// ThemeConfig selects the theme whose templates and assets the build uses.
type ThemeConfig struct {
	Name              string
	Path              string
	Variant           string
	CSSVariablePrefix string
	PartialFallbacks  map[string]string
}

func (c ThemeConfig) enabled() bool {
	return strings.TrimSpace(c.Path) != ""
}

type themeManifestLoader interface {
	Load(themePath string) (*gotheme.Manifest, error)
}

type fsThemeManifestLoader struct{}

func (fsThemeManifestLoader) Load(themePath string) (*gotheme.Manifest, error) {
	cleaned := filepath.Clean(strings.TrimSpace(themePath))
	if cleaned == "" {
		return nil, fmt.Errorf("theme path required")
	}
	return gotheme.LoadDir(os.DirFS(cleaned), ".")
}

// themeSelector loads the configured theme manifest once and resolves a
// selection for the build.
type themeSelector struct {
	registry *gotheme.MemoryRegistry
	loader   themeManifestLoader
	cfg      ThemeConfig

	mu       sync.Mutex
	manifest *gotheme.Manifest
}

func newThemeSelector(cfg ThemeConfig, loader themeManifestLoader) *themeSelector {
	if loader == nil {
		loader = fsThemeManifestLoader{}
	}
	return &themeSelector{
		registry: gotheme.NewRegistry(),
		loader:   loader,
		cfg:      cfg,
	}
}

func (s *themeSelector) Selection() (*gotheme.Selection, error) {
	if s == nil || !s.cfg.enabled() {
		return nil, nil
	}
	manifest, err := s.ensureManifest()
	if err != nil {
		return nil, err
	}

	selector := gotheme.Selector{
		Registry:       s.registry,
		DefaultTheme:   manifest.Name,
		DefaultVariant: strings.TrimSpace(s.cfg.Variant),
	}
	selection, err := selector.Select(manifest.Name, strings.TrimSpace(s.cfg.Variant))
	if err != nil {
		return nil, fmt.Errorf("generator: select theme %s: %w", manifest.Name, err)
	}
	return selection, nil
}

func (s *themeSelector) ensureManifest() (*gotheme.Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.manifest != nil {
		return s.manifest, nil
	}

	manifest, err := s.loader.Load(s.cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("generator: load theme manifest from %s: %w", s.cfg.Path, err)
	}

	normalized := *manifest
	if name := strings.TrimSpace(s.cfg.Name); name != "" {
		normalized.Name = name
	}
	if strings.TrimSpace(normalized.Name) == "" {
		return nil, fmt.Errorf("generator: theme name required for manifest registration")
	}
	if err := s.registry.Register(&normalized); err != nil {
		return nil, fmt.Errorf("generator: register theme manifest: %w", err)
	}
	s.manifest = &normalized
	return s.manifest, nil
}

// registerThemeLayouts feeds the selected theme's template and partials into
// the layout registry. Names already registered from the project template dir
// keep precedence.
func registerThemeLayouts(registry templates.Registry, themeFS fs.FS, selection *gotheme.Selection, fallbacks map[string]string) error {
	if registry == nil || themeFS == nil || selection == nil {
		return nil
	}

	var paths []string
	if selection.Manifest != nil {
		for key := range selection.Manifest.Templates {
			paths = append(paths, selection.Template(key, ""))
		}
		if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
			for key := range variant.Templates {
				paths = append(paths, selection.Template(key, ""))
			}
		}
		for _, partial := range selection.Partials(fallbacks) {
			paths = append(paths, partial)
		}
	}

	for _, templatePath := range paths {
		templatePath = strings.TrimPrefix(strings.TrimSpace(templatePath), "/")
		if templatePath == "" {
			continue
		}
		name := strings.TrimSuffix(path.Base(templatePath), path.Ext(templatePath))
		if name == "" || registry.Has(name) {
			continue
		}
		source, err := fs.ReadFile(themeFS, templatePath)
		if err != nil {
			return fmt.Errorf("generator: read theme template %s: %w", templatePath, err)
		}
		if err := registry.Register(templates.Layout{Name: name, Source: string(source)}); err != nil {
			return fmt.Errorf("generator: register theme layout %s: %w", name, err)
		}
	}
	return nil
}

func themeContext(selection *gotheme.Selection, cfg ThemeConfig) map[string]any {
	if selection == nil {
		return map[string]any{
			"name":     "",
			"variant":  "",
			"tokens":   map[string]string{},
			"css_vars": map[string]string{},
			"partials": map[string]string{},
		}
	}
	return map[string]any{
		"name":     selection.Theme,
		"variant":  selection.Variant,
		"tokens":   selection.Tokens(),
		"css_vars": selection.CSSVariables(cfg.CSSVariablePrefix),
		"partials": selection.Partials(cfg.PartialFallbacks),
		"asset_url": func(key string) string {
			url, _ := selection.Asset(key)
			return url
		},
		"template": selection.Template,
	}
}
