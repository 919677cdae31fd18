package pages

import (
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-pagegen/pkg/interfaces"
)

// Page is the registry's view of a parsed content document. Pages are
// immutable once registered; a rebuild replaces the entry wholesale.
type Page struct {
	ID           uuid.UUID
	Layout       string
	Title        string
	Permalink    string
	Tags         []string
	Summary      string
	Author       string
	Date         time.Time
	Draft        bool
	Metadata     map[string]any
	Body         []byte
	BodyHTML     []byte
	SourcePath   string
	Checksum     []byte
	LastModified time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterPageInput carries the fields required to add a page to the registry.
type RegisterPageInput struct {
	Layout       string
	Title        string
	Permalink    string
	Tags         []string
	Summary      string
	Author       string
	Date         time.Time
	Draft        bool
	Metadata     map[string]any
	Body         []byte
	BodyHTML     []byte
	SourcePath   string
	Checksum     []byte
	LastModified time.Time
}

// InputFromDocument maps a parsed document onto a registration input.
func InputFromDocument(doc *interfaces.PageDocument) RegisterPageInput {
	if doc == nil {
		return RegisterPageInput{}
	}
	return RegisterPageInput{
		Layout:       doc.Meta.Layout,
		Title:        doc.Meta.Title,
		Permalink:    doc.Meta.Permalink,
		Tags:         append([]string(nil), doc.Meta.Tags...),
		Summary:      doc.Meta.Summary,
		Author:       doc.Meta.Author,
		Date:         doc.Meta.Date,
		Draft:        doc.Meta.Draft,
		Metadata:     doc.Meta.Custom,
		Body:         doc.Body,
		BodyHTML:     doc.BodyHTML,
		SourcePath:   doc.FilePath,
		Checksum:     doc.Checksum,
		LastModified: doc.LastModified,
	}
}

func clonePage(page *Page) *Page {
	if page == nil {
		return nil
	}
	cloned := *page
	cloned.Tags = append([]string(nil), page.Tags...)
	cloned.Body = append([]byte(nil), page.Body...)
	cloned.BodyHTML = append([]byte(nil), page.BodyHTML...)
	cloned.Checksum = append([]byte(nil), page.Checksum...)
	if page.Metadata != nil {
		metadata := make(map[string]any, len(page.Metadata))
		for key, value := range page.Metadata {
			metadata[key] = value
		}
		cloned.Metadata = metadata
	}
	return &cloned
}
