package generator

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-pagegen/internal/templates"
	gotheme "github.com/goliatone/go-theme"
)

func TestRegisterThemeLayouts(t *testing.T) {
	themeFS := fstest.MapFS{
		"templates/landing.html": contentFile(`<html><body>{{ page.title }}</body></html>`),
	}
	selection := &gotheme.Selection{
		Theme:    "aurora",
		Manifest: &gotheme.Manifest{Templates: map[string]string{"landing": "templates/landing.html"}},
	}

	registry := templates.NewMemoryRegistry()
	if err := registerThemeLayouts(registry, themeFS, selection, nil); err != nil {
		t.Fatalf("register theme layouts: %v", err)
	}

	if !registry.Has("landing") {
		t.Fatalf("expected theme template registered as layout, got %v", registry.Names())
	}
	layout, err := registry.Get("landing")
	if err != nil {
		t.Fatalf("get landing: %v", err)
	}
	if !strings.Contains(layout.Source, "{{ page.title }}") {
		t.Fatalf("expected layout source from theme file, got %q", layout.Source)
	}
}

func TestRegisterThemeLayouts_ProjectLayoutWins(t *testing.T) {
	themeFS := fstest.MapFS{
		"templates/page.html": contentFile(`<html>theme</html>`),
	}
	selection := &gotheme.Selection{Manifest: &gotheme.Manifest{Templates: map[string]string{"page": "templates/page.html"}}}

	registry := templates.NewMemoryRegistry()
	if err := registry.Register(templates.Layout{Name: "page", Source: "<html>project</html>"}); err != nil {
		t.Fatalf("register project layout: %v", err)
	}
	if err := registerThemeLayouts(registry, themeFS, selection, nil); err != nil {
		t.Fatalf("register theme layouts: %v", err)
	}

	layout, err := registry.Get("page")
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	if layout.Source != "<html>project</html>" {
		t.Fatalf("expected project layout to keep precedence, got %q", layout.Source)
	}
}

func TestRegisterThemeLayouts_MissingTemplate(t *testing.T) {
	selection := &gotheme.Selection{Manifest: &gotheme.Manifest{Templates: map[string]string{"page": "templates/absent.html"}}}

	err := registerThemeLayouts(templates.NewMemoryRegistry(), fstest.MapFS{}, selection, nil)
	if err == nil {
		t.Fatal("expected error for missing theme template")
	}
}
