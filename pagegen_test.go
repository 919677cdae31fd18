package pagegen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func fixtureConfig(t *testing.T) Config {
	t.Helper()
	root := t.TempDir()

	contentDir := filepath.Join(root, "content")
	writeFixture(t, contentDir, "about.md", `---
layout: page
title: About
permalink: /about/
---
We build static sites.
`)
	writeFixture(t, contentDir, "posts/hello.md", `---
layout: post
title: Hello World
permalink: /posts/hello/
tags:
  - intro
  - docs
---
First **post** body.
`)

	layoutDir := filepath.Join(root, "layouts")
	writeFixture(t, layoutDir, "page.html", `<main><h1>{{ page.title }}</h1>{{ page.body_html | safe }}</main>`)
	writeFixture(t, layoutDir, "post.html", `<article><h1>{{ page.title }}</h1>{{ page.body_html | safe }}</article>`)

	cfg := DefaultConfig()
	cfg.Content.Dir = contentDir
	cfg.Templates.Dir = layoutDir
	cfg.Output.Dir = filepath.Join(root, "dist")
	cfg.Site.Name = "Fixture Site"
	cfg.Site.BaseURL = "https://example.com"
	cfg.Logging.Format = "console"
	return cfg
}

func TestModuleBuild(t *testing.T) {
	cfg := fixtureConfig(t)

	module, err := New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	result, err := module.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.PagesBuilt != 2 {
		t.Fatalf("expected 2 pages built, got %d", result.PagesBuilt)
	}

	about, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "about", "index.html"))
	if err != nil {
		t.Fatalf("read about page: %v", err)
	}
	if !strings.Contains(string(about), "<h1>About</h1>") {
		t.Fatalf("expected rendered title in %s", about)
	}

	post, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "posts", "hello", "index.html"))
	if err != nil {
		t.Fatalf("read post page: %v", err)
	}
	if !strings.Contains(string(post), "<strong>post</strong>") {
		t.Fatalf("expected markdown body in %s", post)
	}

	if _, err := os.Stat(filepath.Join(cfg.Output.Dir, "sitemap.xml")); err != nil {
		t.Fatalf("expected sitemap: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Output.Dir, "robots.txt")); err != nil {
		t.Fatalf("expected robots: %v", err)
	}

	pages, err := module.Pages().List(context.Background())
	if err != nil {
		t.Fatalf("list pages: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("expected 2 registered pages, got %d", len(pages))
	}
}

func TestModuleBuildInlineLayouts(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.Templates.Dir = ""
	cfg.Templates.Layouts = map[string]string{
		"page": `<main>{{ page.title }}</main>`,
		"post": `<article>{{ page.title }}</article>`,
	}

	module, err := New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	result, err := module.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.PagesBuilt != 2 {
		t.Fatalf("expected 2 pages built, got %d", result.PagesBuilt)
	}
}

func TestModuleClean(t *testing.T) {
	cfg := fixtureConfig(t)

	module, err := New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	if _, err := module.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := module.Clean(context.Background()); err != nil {
		t.Fatalf("clean: %v", err)
	}

	entries, err := os.ReadDir(cfg.Output.Dir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty output dir, got %d entries", len(entries))
	}
}

func TestModuleCommands(t *testing.T) {
	cfg := fixtureConfig(t)

	module, err := New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	handlers := module.Commands()
	if handlers == nil || handlers.Build == nil || handlers.Preview == nil || handlers.Clean == nil {
		t.Fatal("expected command handlers to be wired")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Content.Dir = ""
	if _, err := New(cfg); err == nil {
		t.Fatal("expected config validation failure")
	}
}
