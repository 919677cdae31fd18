package generator

import (
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-pagegen/internal/pages"
)

// SiteMetadata exposes site-wide information to templates.
type SiteMetadata struct {
	Name        string
	BaseURL     string
	Description string
	Metadata    map[string]any
}

// BuildMetadata surfaces high level build information to templates.
type BuildMetadata struct {
	GeneratedAt time.Time
	Incremental bool
	DryRun      bool
}

// RenderedPage captures the rendered HTML output for a page.
type RenderedPage struct {
	PageID    uuid.UUID
	Permalink string
	Layout    string
	Title     string
	Output    string
	HTML      string
	Hash      string
	Checksum  string
	Modified  time.Time
	Duration  time.Duration
}

// RenderDiagnostic records timing and errors for individual pages.
type RenderDiagnostic struct {
	PageID     uuid.UUID
	Permalink  string
	SourcePath string
	Layout     string
	Duration   time.Duration
	Skipped    bool
	Err        error
}

type renderOutcome struct {
	page       RenderedPage
	diagnostic RenderDiagnostic
	err        error
	skipped    bool
}

func siteContext(meta SiteMetadata) map[string]any {
	return map[string]any{
		"name":        meta.Name,
		"base_url":    meta.BaseURL,
		"description": meta.Description,
		"metadata":    meta.Metadata,
	}
}

func pageContext(page *pages.Page) map[string]any {
	if page == nil {
		return map[string]any{}
	}
	ctx := map[string]any{
		"id":        page.ID.String(),
		"layout":    page.Layout,
		"title":     page.Title,
		"permalink": page.Permalink,
		"tags":      append([]string(nil), page.Tags...),
		"summary":   page.Summary,
		"author":    page.Author,
		"draft":     page.Draft,
		"metadata":  page.Metadata,
		"body_html": string(page.BodyHTML),
	}
	if !page.Date.IsZero() {
		ctx["date"] = page.Date
	}
	if !page.LastModified.IsZero() {
		ctx["last_modified"] = page.LastModified
	}
	return ctx
}

func buildContext(meta BuildMetadata) map[string]any {
	return map[string]any{
		"generated_at": meta.GeneratedAt,
		"incremental":  meta.Incremental,
		"dry_run":      meta.DryRun,
	}
}
