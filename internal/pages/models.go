package pages

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// PageRecord is the persisted form of a registry entry. The permalink keeps
// the author's casing; the folded permalink_key column carries the
// case-insensitive uniqueness constraint the registry depends on.
type PageRecord struct {
	bun.BaseModel `bun:"table:pages,alias:pg"`

	ID           uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Permalink    string         `bun:"permalink,notnull" json:"permalink"`
	PermalinkKey string         `bun:"permalink_key,notnull,unique" json:"-"`
	Layout       string         `bun:"layout,notnull" json:"layout"`
	Title        string         `bun:"title,notnull" json:"title"`
	Tags         []string       `bun:"tags,type:jsonb" json:"tags,omitempty"`
	Summary      string         `bun:"summary" json:"summary,omitempty"`
	Author       string         `bun:"author" json:"author,omitempty"`
	Date         *time.Time     `bun:"date,nullzero" json:"date,omitempty"`
	Draft        bool           `bun:"draft,notnull,default:false" json:"draft"`
	Metadata     map[string]any `bun:"metadata,type:jsonb" json:"metadata,omitempty"`
	Body         []byte         `bun:"body" json:"body,omitempty"`
	BodyHTML     []byte         `bun:"body_html" json:"body_html,omitempty"`
	SourcePath   string         `bun:"source_path" json:"source_path,omitempty"`
	Checksum     []byte         `bun:"checksum" json:"checksum,omitempty"`
	LastModified *time.Time     `bun:"last_modified,nullzero" json:"last_modified,omitempty"`
	CreatedAt    time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

func recordFromPage(page *Page) *PageRecord {
	if page == nil {
		return nil
	}
	record := &PageRecord{
		ID:           page.ID,
		Permalink:    page.Permalink,
		PermalinkKey: permalinkKey(page.Permalink),
		Layout:       page.Layout,
		Title:        page.Title,
		Tags:         append([]string(nil), page.Tags...),
		Summary:      page.Summary,
		Author:       page.Author,
		Draft:        page.Draft,
		Metadata:     page.Metadata,
		Body:         page.Body,
		BodyHTML:     page.BodyHTML,
		SourcePath:   page.SourcePath,
		Checksum:     page.Checksum,
		CreatedAt:    page.CreatedAt,
		UpdatedAt:    page.UpdatedAt,
	}
	if !page.Date.IsZero() {
		date := page.Date
		record.Date = &date
	}
	if !page.LastModified.IsZero() {
		modified := page.LastModified
		record.LastModified = &modified
	}
	return record
}

func pageFromRecord(record *PageRecord) *Page {
	if record == nil {
		return nil
	}
	page := &Page{
		ID:         record.ID,
		Permalink:  record.Permalink,
		Layout:     record.Layout,
		Title:      record.Title,
		Tags:       append([]string(nil), record.Tags...),
		Summary:    record.Summary,
		Author:     record.Author,
		Draft:      record.Draft,
		Metadata:   record.Metadata,
		Body:       record.Body,
		BodyHTML:   record.BodyHTML,
		SourcePath: record.SourcePath,
		Checksum:   record.Checksum,
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
	}
	if record.Date != nil {
		page.Date = *record.Date
	}
	if record.LastModified != nil {
		page.LastModified = *record.LastModified
	}
	return page
}
