package generator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-pagegen/internal/document"
	"github.com/goliatone/go-pagegen/internal/pages"
	"github.com/goliatone/go-pagegen/internal/templates"
)

func contentFile(body string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(body)}
}

func siteContent() fstest.MapFS {
	return fstest.MapFS{
		"about.md": contentFile(`---
layout: page
title: About
permalink: /about/
---
We build static sites.
`),
		"posts/hello.md": contentFile(`---
layout: post
title: Hello World
permalink: /posts/hello/
tags: intro
---
First **post** body.
`),
	}
}

func newTestGenerator(t *testing.T, content fstest.MapFS, cfg Config, mutate ...func(*Dependencies)) (Service, *MemoryWriter, pages.Service) {
	t.Helper()

	docs := document.NewServiceWithFS(content, document.Config{
		Pattern:   "*.md",
		Recursive: true,
	}, nil)

	registry, err := pages.NewService(pages.NewMemoryPageRepository())
	if err != nil {
		t.Fatalf("page service: %v", err)
	}

	engine, err := templates.NewEngine(templates.WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	layouts := templates.NewMemoryRegistry()
	register := func(name, source string) {
		if err := layouts.Register(templates.Layout{Name: name, Source: source}); err != nil {
			t.Fatalf("register layout %s: %v", name, err)
		}
	}
	register("page", `<main data-site="{{ site.name }}"><h1>{{ page.title }}</h1>{{ page.body_html | safe }}</main>`)
	register("post", `<article><h1>{{ page.title }}</h1>{{ page.body_html | safe }}</article>`)

	renderer, err := templates.NewLayoutRenderer(layouts, engine)
	if err != nil {
		t.Fatalf("layout renderer: %v", err)
	}

	writer := NewMemoryWriter()
	deps := Dependencies{
		Documents: docs,
		Pages:     registry,
		Layouts:   renderer,
		Writer:    writer,
	}
	for _, fn := range mutate {
		fn(&deps)
	}
	svc, err := NewService(cfg, deps)
	if err != nil {
		t.Fatalf("generator service: %v", err)
	}
	return svc, writer, registry
}

func defaultConfig() Config {
	return Config{
		ContentDir: ".",
		Pattern:    "*.md",
		Recursive:  true,
		Site: SiteConfig{
			Name:    "Test Site",
			BaseURL: "https://example.com",
		},
		GenerateSitemap: true,
		GenerateRobots:  true,
		Workers:         2,
	}
}

func TestServiceBuild(t *testing.T) {
	svc, writer, _ := newTestGenerator(t, siteContent(), defaultConfig())

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.PagesBuilt != 2 {
		t.Fatalf("expected 2 pages built, got %d", result.PagesBuilt)
	}
	if result.PagesFailed != 0 {
		t.Fatalf("expected no failures, got %d: %v", result.PagesFailed, result.Errors)
	}

	files := writer.Files()
	about, ok := files["about/index.html"]
	if !ok {
		t.Fatalf("expected about/index.html in %v", fileNames(files))
	}
	if !strings.Contains(string(about), "<h1>About</h1>") {
		t.Fatalf("expected rendered title in %s", about)
	}
	if !strings.Contains(string(about), `data-site="Test Site"`) {
		t.Fatalf("expected site context in %s", about)
	}

	post, ok := files["posts/hello/index.html"]
	if !ok {
		t.Fatalf("expected posts/hello/index.html in %v", fileNames(files))
	}
	if !strings.Contains(string(post), "<strong>post</strong>") {
		t.Fatalf("expected markdown body rendered to HTML in %s", post)
	}

	sitemap, ok := files["sitemap.xml"]
	if !ok {
		t.Fatal("expected sitemap.xml to be written")
	}
	if !strings.Contains(string(sitemap), "https://example.com/about/") {
		t.Fatalf("expected page location in sitemap:\n%s", sitemap)
	}

	robots, ok := files["robots.txt"]
	if !ok {
		t.Fatal("expected robots.txt to be written")
	}
	if !strings.Contains(string(robots), "Sitemap: https://example.com/sitemap.xml") {
		t.Fatalf("expected sitemap reference in robots:\n%s", robots)
	}

	if _, ok := files[manifestFileName]; !ok {
		t.Fatal("expected build manifest to be written")
	}
}

func TestServiceBuildPermalinkConflictIsolation(t *testing.T) {
	content := siteContent()
	content["about-copy.md"] = contentFile(`---
layout: page
title: About Copy
permalink: /about/
---
Duplicate permalink.
`)

	svc, writer, _ := newTestGenerator(t, content, defaultConfig())

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err == nil {
		t.Fatal("expected build error for duplicate permalink")
	}
	if !errors.Is(err, pages.ErrPermalinkExists) {
		t.Fatalf("expected permalink conflict, got %v", err)
	}
	if result.PagesFailed != 1 {
		t.Fatalf("expected 1 failed page, got %d", result.PagesFailed)
	}
	if result.PagesBuilt != 2 {
		t.Fatalf("expected surviving pages to build, got %d", result.PagesBuilt)
	}

	files := writer.Files()
	if _, ok := files["about/index.html"]; !ok {
		t.Fatal("expected first registration to win and render")
	}
	if _, ok := files["posts/hello/index.html"]; !ok {
		t.Fatal("expected unrelated page to render despite the conflict")
	}
}

func TestServiceBuildUnknownLayoutIsolation(t *testing.T) {
	content := siteContent()
	content["broken.md"] = contentFile(`---
layout: missing
title: Broken
permalink: /broken/
---
No layout registered for this one.
`)

	svc, writer, _ := newTestGenerator(t, content, defaultConfig())

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err == nil {
		t.Fatal("expected build error for unknown layout")
	}
	if !errors.Is(err, templates.ErrLayoutNotFound) {
		t.Fatalf("expected unknown layout error, got %v", err)
	}
	var unknown *templates.UnknownLayoutError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownLayoutError, got %v", err)
	}
	if unknown.Layout != "missing" {
		t.Fatalf("expected failing layout name, got %q", unknown.Layout)
	}
	if result.PagesFailed != 1 {
		t.Fatalf("expected 1 failed page, got %d", result.PagesFailed)
	}

	files := writer.Files()
	if _, ok := files["broken/index.html"]; ok {
		t.Fatal("expected failed page to produce no output")
	}
	if _, ok := files["about/index.html"]; !ok {
		t.Fatal("expected healthy pages to render despite the failure")
	}
}

func TestServiceBuildDryRun(t *testing.T) {
	svc, writer, _ := newTestGenerator(t, siteContent(), defaultConfig())

	result, err := svc.Build(context.Background(), BuildOptions{DryRun: true})
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if !result.DryRun {
		t.Fatal("expected dry run flag on result")
	}
	if result.PagesBuilt != 2 {
		t.Fatalf("expected 2 pages rendered, got %d", result.PagesBuilt)
	}
	if len(result.Rendered) != 2 {
		t.Fatalf("expected rendered output captured, got %d", len(result.Rendered))
	}
	if len(writer.Files()) != 0 {
		t.Fatalf("expected no files written, got %v", fileNames(writer.Files()))
	}
}

func TestServiceBuildDraftsSkipped(t *testing.T) {
	content := siteContent()
	content["draft.md"] = contentFile(`---
layout: page
title: Draft
permalink: /draft/
draft: true
---
Unpublished.
`)

	svc, writer, _ := newTestGenerator(t, content, defaultConfig())

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.PagesSkipped != 1 {
		t.Fatalf("expected draft skipped, got %d skipped", result.PagesSkipped)
	}
	if _, ok := writer.Files()["draft/index.html"]; ok {
		t.Fatal("expected draft to produce no output")
	}
}

func TestServiceBuildIncrementalSkipsUnchanged(t *testing.T) {
	cfg := defaultConfig()
	cfg.Incremental = true
	svc, writer, _ := newTestGenerator(t, siteContent(), cfg)

	first, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	if first.PagesBuilt != 2 {
		t.Fatalf("expected full first build, got %d built", first.PagesBuilt)
	}

	second, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if second.PagesBuilt != 0 {
		t.Fatalf("expected no rebuilds, got %d built", second.PagesBuilt)
	}
	if second.PagesSkipped != 2 {
		t.Fatalf("expected 2 skipped pages, got %d", second.PagesSkipped)
	}
	if _, ok := writer.Files()["sitemap.xml"]; !ok {
		t.Fatal("expected sitemap to persist across incremental builds")
	}
}

func TestServiceBuildMetadataSchema(t *testing.T) {
	content := fstest.MapFS{
		"valid.md": contentFile(`---
layout: post
title: Valid
permalink: /valid/
category: engineering
---
Body.
`),
		"invalid.md": contentFile(`---
layout: post
title: Invalid
permalink: /invalid/
---
Missing the required category.
`),
	}

	cfg := defaultConfig()
	cfg.MetadataSchemas = map[string]map[string]any{
		"post": {
			"type": "object",
			"properties": map[string]any{
				"category": map[string]any{"type": "string"},
			},
			"required": []any{"category"},
		},
	}

	svc, writer, _ := newTestGenerator(t, content, cfg)

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err == nil {
		t.Fatal("expected metadata validation failure")
	}
	if result.PagesFailed != 1 {
		t.Fatalf("expected 1 failed page, got %d", result.PagesFailed)
	}
	if result.PagesBuilt != 1 {
		t.Fatalf("expected valid page to build, got %d", result.PagesBuilt)
	}
	if _, ok := writer.Files()["valid/index.html"]; !ok {
		t.Fatal("expected valid page output")
	}
	if _, ok := writer.Files()["invalid/index.html"]; ok {
		t.Fatal("expected invalid page to produce no output")
	}
}

func TestServiceClean(t *testing.T) {
	svc, writer, _ := newTestGenerator(t, siteContent(), defaultConfig())

	if _, err := svc.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(writer.Files()) == 0 {
		t.Fatal("expected build output before clean")
	}

	if err := svc.Clean(context.Background()); err != nil {
		t.Fatalf("clean: %v", err)
	}
	if len(writer.Files()) != 0 {
		t.Fatalf("expected empty output after clean, got %v", fileNames(writer.Files()))
	}
}

func fileNames(files map[string][]byte) []string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	return names
}

func TestServiceBuildCopiesAssets(t *testing.T) {
	assets := fstest.MapFS{
		"css/site.css": contentFile("body { margin: 0 }"),
		"img/logo.svg": contentFile("<svg></svg>"),
	}

	svc, writer, _ := newTestGenerator(t, siteContent(), defaultConfig(), func(deps *Dependencies) {
		deps.Assets = assets
	})

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.AssetsCopied != 2 {
		t.Fatalf("expected 2 assets copied, got %d", result.AssetsCopied)
	}

	files := writer.Files()
	css, ok := files["css/site.css"]
	if !ok {
		t.Fatalf("expected css/site.css in %v", fileNames(files))
	}
	if string(css) != "body { margin: 0 }" {
		t.Fatalf("expected asset content to survive, got %q", css)
	}
	if _, ok := files["img/logo.svg"]; !ok {
		t.Fatalf("expected img/logo.svg in %v", fileNames(files))
	}

	manifest, err := parseManifest(files[manifestFileName])
	if err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	entry, ok := manifest.lookupAsset("css/site.css")
	if !ok {
		t.Fatal("expected css/site.css recorded in the manifest")
	}
	if entry.Output != "css/site.css" || entry.Checksum == "" {
		t.Fatalf("unexpected asset entry: %+v", entry)
	}
}

func TestServiceBuildAssetsOutputPrefix(t *testing.T) {
	cfg := defaultConfig()
	cfg.Assets.Output = "assets"

	svc, writer, _ := newTestGenerator(t, siteContent(), cfg, func(deps *Dependencies) {
		deps.Assets = fstest.MapFS{"site.css": contentFile("body{}")}
	})

	if _, err := svc.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, ok := writer.Files()["assets/site.css"]; !ok {
		t.Fatalf("expected assets/site.css in %v", fileNames(writer.Files()))
	}
}

func TestServiceBuildIncrementalSkipsAssets(t *testing.T) {
	assets := fstest.MapFS{"css/site.css": contentFile("body { margin: 0 }")}

	build := defaultConfig()
	build.Incremental = true
	svc, _, _ := newTestGenerator(t, siteContent(), build, func(deps *Dependencies) {
		deps.Assets = assets
	})

	first, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	if first.AssetsCopied != 1 {
		t.Fatalf("expected 1 asset copied, got %d", first.AssetsCopied)
	}

	second, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if second.AssetsSkipped != 1 || second.AssetsCopied != 0 {
		t.Fatalf("expected unchanged asset skipped, got copied=%d skipped=%d",
			second.AssetsCopied, second.AssetsSkipped)
	}
}
