package document

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-pagegen/pkg/interfaces"
)

var delimiter = []byte("---")

// ParseFrontMatter extracts metadata and markdown body content from the
// provided source bytes. It returns the structured metadata, the body without
// delimiters, and any error encountered. The layout, title, and permalink
// keys are mandatory; tags may be declared as a scalar or a list and are
// normalized to a slice either way.
func ParseFrontMatter(source []byte) (interfaces.PageMeta, []byte, error) {
	source = stripBOM(source)
	if err := checkDelimiters(source); err != nil {
		return interfaces.PageMeta{}, nil, err
	}

	var meta metaEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.MustParse(reader, &meta)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return interfaces.PageMeta{}, nil, ErrMissingFrontMatter
		}
		return interfaces.PageMeta{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	if err := checkRequired(meta); err != nil {
		return interfaces.PageMeta{}, nil, err
	}

	return envelopeToMeta(meta), body, nil
}

// BuildDocument assembles an interfaces.PageDocument from the supplied file
// path, raw content, and modification time. BodyHTML is intentionally left
// empty so callers can render lazily.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.PageDocument, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	return &interfaces.PageDocument{
		FilePath:     path,
		Meta:         meta,
		Body:         body,
		LastModified: modified,
	}, nil
}

// stripBOM drops a leading UTF-8 byte order mark so BOM'd documents parse
// the same as plain ones.
func stripBOM(source []byte) []byte {
	return bytes.TrimPrefix(source, []byte("\uFEFF"))
}

// checkDelimiters distinguishes a missing metadata block from one that was
// opened but never closed, so authors get an actionable error either way.
func checkDelimiters(source []byte) error {
	if !bytes.HasPrefix(source, delimiter) {
		return ErrMissingFrontMatter
	}

	firstLineEnd := bytes.IndexByte(source, '\n')
	if firstLineEnd < 0 {
		return ErrMissingDelimiter
	}

	rest := source[firstLineEnd+1:]
	for len(rest) > 0 {
		lineEnd := bytes.IndexByte(rest, '\n')
		line := rest
		if lineEnd >= 0 {
			line = rest[:lineEnd]
		}
		if bytes.Equal(bytes.TrimRight(line, " \t\r"), delimiter) {
			return nil
		}
		if lineEnd < 0 {
			break
		}
		rest = rest[lineEnd+1:]
	}
	return ErrMissingDelimiter
}

func checkRequired(meta metaEnvelope) error {
	if strings.TrimSpace(meta.Layout) == "" {
		return &MissingFieldError{Field: "layout"}
	}
	if strings.TrimSpace(meta.Title) == "" {
		return &MissingFieldError{Field: "title"}
	}
	if strings.TrimSpace(meta.Permalink) == "" {
		return &MissingFieldError{Field: "permalink"}
	}
	return nil
}

// metaEnvelope leaves Tags untyped so scalar-or-list declarations both decode;
// normalizeTags flattens them at the boundary.
type metaEnvelope struct {
	Layout    string         `yaml:"layout"`
	Title     string         `yaml:"title"`
	Permalink string         `yaml:"permalink"`
	Tags      any            `yaml:"tags"`
	Summary   string         `yaml:"summary"`
	Author    string         `yaml:"author"`
	Date      time.Time      `yaml:"date"`
	Draft     bool           `yaml:"draft"`
	Custom    map[string]any `yaml:",inline"`
}

func envelopeToMeta(env metaEnvelope) interfaces.PageMeta {
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	tags := normalizeTags(env.Tags)

	raw := make(map[string]any, len(env.Custom)+8)
	for key, value := range env.Custom {
		raw[key] = value
	}

	raw["layout"] = env.Layout
	raw["title"] = env.Title
	raw["permalink"] = env.Permalink
	if len(tags) > 0 {
		raw["tags"] = append([]string(nil), tags...)
	}
	if env.Summary != "" {
		raw["summary"] = env.Summary
	}
	if env.Author != "" {
		raw["author"] = env.Author
	}
	if !env.Date.IsZero() {
		raw["date"] = env.Date
	}
	raw["draft"] = env.Draft

	return interfaces.PageMeta{
		Layout:    env.Layout,
		Title:     env.Title,
		Permalink: env.Permalink,
		Tags:      tags,
		Summary:   env.Summary,
		Author:    env.Author,
		Date:      env.Date,
		Draft:     env.Draft,
		Custom:    cloneMap(env.Custom),
		Raw:       raw,
	}
}

// normalizeTags accepts the scalar-or-list shapes YAML authors use for tags
// and always returns an ordered, de-duplicated slice.
func normalizeTags(value any) []string {
	var collected []string
	switch typed := value.(type) {
	case nil:
		return nil
	case string:
		if trimmed := strings.TrimSpace(typed); trimmed != "" {
			collected = []string{trimmed}
		}
	case []string:
		collected = typed
	case []any:
		for _, entry := range typed {
			collected = append(collected, strings.TrimSpace(fmt.Sprint(entry)))
		}
	default:
		if trimmed := strings.TrimSpace(fmt.Sprint(typed)); trimmed != "" {
			collected = []string{trimmed}
		}
	}

	out := make([]string, 0, len(collected))
	seen := map[string]struct{}{}
	for _, tag := range collected {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
