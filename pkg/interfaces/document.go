package interfaces

import (
	"context"
	"time"
)

// MarkdownParser defines how raw markdown bytes are converted into HTML.
// Implementations should be reusable across documents so a single instance
// can serve an entire build without additional locking.
type MarkdownParser interface {
	// Parse converts markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// DocumentService exposes the high-level file workflows: loading front-matter
// documents from disk and converting their bodies into HTML.
type DocumentService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*PageDocument, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*PageDocument, error)
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
	RenderDocument(ctx context.Context, doc *PageDocument, opts ParseOptions) ([]byte, error)
}

// PageDocument represents a content file with parsed metadata and body. The
// struct is shared between the interfaces package and internal implementations
// so consumers can depend on a stable contract.
type PageDocument struct {
	FilePath     string
	Meta         PageMeta
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
	// Checksum stores a digest of the original file content (SHA-256) so
	// incremental builds can detect changes without re-rendering unchanged files.
	Checksum []byte
}

// PageMeta models the metadata block extracted from a content document.
// Layout, Title, and Permalink are mandatory; Tags is normalized to a string
// slice regardless of whether the source declared a scalar or a list. Extra
// keys land in Custom so templates can reach domain-specific values.
type PageMeta struct {
	Layout    string         `yaml:"layout" json:"layout"`
	Title     string         `yaml:"title" json:"title"`
	Permalink string         `yaml:"permalink" json:"permalink"`
	Tags      []string       `yaml:"tags" json:"tags"`
	Summary   string         `yaml:"summary" json:"summary"`
	Author    string         `yaml:"author" json:"author"`
	Date      time.Time      `yaml:"date" json:"date"`
	Draft     bool           `yaml:"draft" json:"draft"`
	Custom    map[string]any `yaml:",inline" json:"custom"`
	Raw       map[string]any `yaml:"-" json:"raw"`
}

// LoadOptions fine-tunes how documents are discovered and parsed from disk.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
	Parser    ParseOptions
}
