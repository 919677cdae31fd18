package templates_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-pagegen/internal/templates"
)

func TestMemoryRegistry_RegisterAndGet(t *testing.T) {
	registry := templates.NewMemoryRegistry()

	if err := registry.Register(templates.Layout{Name: "post", Path: "post.html"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	layout, err := registry.Get("post")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if layout.Path != "post.html" {
		t.Fatalf("expected post.html, got %q", layout.Path)
	}

	// Layout lookups are case-insensitive, matching permalink handling.
	if _, err := registry.Get("Post"); err != nil {
		t.Fatalf("case-insensitive get: %v", err)
	}
}

func TestMemoryRegistry_UnknownLayout(t *testing.T) {
	registry := templates.NewMemoryRegistry()
	if err := registry.Register(templates.Layout{Name: "page", Path: "page.html"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := registry.Get("gallery")
	if err == nil {
		t.Fatal("expected unknown layout error")
	}
	if !errors.Is(err, templates.ErrLayoutNotFound) {
		t.Fatalf("expected ErrLayoutNotFound, got %v", err)
	}

	var unknown *templates.UnknownLayoutError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownLayoutError, got %T", err)
	}
	if unknown.Layout != "gallery" {
		t.Fatalf("expected gallery, got %q", unknown.Layout)
	}
	if len(unknown.Known) != 1 || unknown.Known[0] != "page" {
		t.Fatalf("expected known layouts [page], got %#v", unknown.Known)
	}
}

func TestMemoryRegistry_RejectsInvalidDefinitions(t *testing.T) {
	registry := templates.NewMemoryRegistry()

	cases := []struct {
		name   string
		layout templates.Layout
		want   error
	}{
		{name: "empty name", layout: templates.Layout{Path: "x.html"}, want: templates.ErrLayoutRequired},
		{name: "bad identifier", layout: templates.Layout{Name: "2col!", Path: "x.html"}, want: templates.ErrLayoutInvalid},
		{name: "no template", layout: templates.Layout{Name: "post"}, want: templates.ErrLayoutInvalid},
		{name: "both sources", layout: templates.Layout{Name: "post", Path: "x.html", Source: "{{ page.title }}"}, want: templates.ErrLayoutInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := registry.Register(tc.layout); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestMemoryRegistry_Names(t *testing.T) {
	registry := templates.NewMemoryRegistry()
	for _, name := range []string{"post", "gallery", "page"} {
		if err := registry.Register(templates.Layout{Name: name, Source: "{{ page.title }}"}); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	names := registry.Names()
	want := []string{"gallery", "page", "post"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(names))
	}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("expected %q at %d, got %q", name, i, names[i])
		}
	}
}

func TestRegisterLayoutsFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"post.html":    {Data: []byte("<article>{{ page.title }}</article>")},
		"page.html":    {Data: []byte("<main>{{ page.title }}</main>")},
		"partials.txt": {Data: []byte("ignored")},
	}

	registry := templates.NewMemoryRegistry()
	if err := templates.RegisterLayoutsFromFS(registry, fsys, "", ".html"); err != nil {
		t.Fatalf("register from fs: %v", err)
	}

	for _, name := range []string{"post", "page"} {
		if !registry.Has(name) {
			t.Fatalf("expected layout %q to be registered", name)
		}
	}
	if registry.Has("partials") {
		t.Fatal("expected non-template files to be skipped")
	}
}
