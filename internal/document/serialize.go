package document

import (
	"bytes"
	"fmt"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/goliatone/go-pagegen/pkg/interfaces"
)

// marshalKnown keeps the well-known keys in a stable order; custom keys
// inline after them.
type marshalKnown struct {
	Layout    string         `yaml:"layout"`
	Title     string         `yaml:"title"`
	Permalink string         `yaml:"permalink"`
	Tags      []string       `yaml:"tags,omitempty"`
	Summary   string         `yaml:"summary,omitempty"`
	Author    string         `yaml:"author,omitempty"`
	Date      time.Time      `yaml:"date,omitempty"`
	Draft     bool           `yaml:"draft"`
	Custom    map[string]any `yaml:",inline"`
}

// MarshalFrontMatter serializes metadata and body back into a delimited
// document. A document produced here parses back to the same metadata field
// set, so ParseFrontMatter and MarshalFrontMatter round trip.
func MarshalFrontMatter(meta interfaces.PageMeta, body []byte) ([]byte, error) {
	env := marshalKnown{
		Layout:    meta.Layout,
		Title:     meta.Title,
		Permalink: meta.Permalink,
		Tags:      append([]string(nil), meta.Tags...),
		Summary:   meta.Summary,
		Author:    meta.Author,
		Date:      meta.Date,
		Draft:     meta.Draft,
		Custom:    meta.Custom,
	}

	encoded, err := yaml.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("document: marshal frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(delimiter)
	buf.WriteByte('\n')
	buf.Write(encoded)
	buf.Write(delimiter)
	buf.WriteByte('\n')
	buf.Write(body)
	return buf.Bytes(), nil
}
