package document

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestParseFrontMatter(t *testing.T) {
	data := readFixture(t, "testdata/about.md")

	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if meta.Layout != "page" {
		t.Fatalf("Layout mismatch, got %q", meta.Layout)
	}
	if meta.Title != "About" {
		t.Fatalf("Title mismatch, got %q", meta.Title)
	}
	if meta.Permalink != "/about/" {
		t.Fatalf("Permalink mismatch, got %q", meta.Permalink)
	}
	if len(meta.Tags) != 1 || meta.Tags[0] != "about" {
		t.Fatalf("scalar tags should normalize to a single-entry slice: %#v", meta.Tags)
	}
	if meta.Raw["permalink"] != "/about/" {
		t.Fatalf("Raw permalink missing: %#v", meta.Raw)
	}
	if len(body) == 0 || !strings.Contains(string(body), "# About") {
		t.Fatalf("markdown body not returned correctly: %q", string(body))
	}
	if idx := strings.Index(string(body), "## Honors"); idx < strings.Index(string(body), "# About") {
		t.Fatalf("body section order not preserved")
	}
}

func TestParseFrontMatter_TagList(t *testing.T) {
	data := readFixture(t, "testdata/tagged.md")

	meta, _, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if len(meta.Tags) != 2 || meta.Tags[0] != "research" || meta.Tags[1] != "lab" {
		t.Fatalf("list tags should normalize and de-duplicate in order: %#v", meta.Tags)
	}
	if meta.Summary != "Collected notes from the lab" {
		t.Fatalf("Summary mismatch, got %q", meta.Summary)
	}
	if meta.Custom["published_venue"] != "Journal of Examples" {
		t.Fatalf("custom metadata missing: %#v", meta.Custom)
	}
}

func TestParseFrontMatter_MissingRequiredField(t *testing.T) {
	cases := []struct {
		name   string
		source string
		field  string
	}{
		{
			name:   "permalink",
			source: "---\nlayout: page\ntitle: About\n---\nbody\n",
			field:  "permalink",
		},
		{
			name:   "layout",
			source: "---\ntitle: About\npermalink: /about/\n---\nbody\n",
			field:  "layout",
		},
		{
			name:   "title",
			source: "---\nlayout: page\npermalink: /about/\n---\nbody\n",
			field:  "title",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseFrontMatter([]byte(tc.source))
			if err == nil {
				t.Fatalf("expected parse failure for missing %s", tc.field)
			}
			if !errors.Is(err, ErrMissingRequiredField) {
				t.Fatalf("expected ErrMissingRequiredField, got %v", err)
			}
			var missing *MissingFieldError
			if !errors.As(err, &missing) {
				t.Fatalf("expected MissingFieldError, got %T", err)
			}
			if missing.Field != tc.field {
				t.Fatalf("expected missing field %q, got %q", tc.field, missing.Field)
			}
		})
	}
}

func TestParseFrontMatter_MissingDelimiter(t *testing.T) {
	source := "---\nlayout: page\ntitle: About\npermalink: /about/\n\nbody without closing marker\n"

	_, _, err := ParseFrontMatter([]byte(source))
	if !errors.Is(err, ErrMissingDelimiter) {
		t.Fatalf("expected ErrMissingDelimiter, got %v", err)
	}
}

func TestParseFrontMatter_MissingFrontMatter(t *testing.T) {
	_, _, err := ParseFrontMatter([]byte("# Just a body\n\nNo metadata block here.\n"))
	if !errors.Is(err, ErrMissingFrontMatter) {
		t.Fatalf("expected ErrMissingFrontMatter, got %v", err)
	}
}

func TestBuildDocument(t *testing.T) {
	data := readFixture(t, "testdata/about.md")
	modified := time.Now().UTC()

	doc, err := BuildDocument("testdata/about.md", data, modified)
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}

	if doc.FilePath != "testdata/about.md" {
		t.Fatalf("expected FilePath to be set, got %q", doc.FilePath)
	}
	if doc.LastModified != modified {
		t.Fatalf("expected LastModified to equal the provided timestamp")
	}
	if len(doc.Body) == 0 {
		t.Fatalf("expected Body to contain markdown content")
	}
	if len(doc.BodyHTML) != 0 {
		t.Fatalf("expected BodyHTML to stay empty until rendered")
	}
}

func TestNormalizeTags(t *testing.T) {
	cases := []struct {
		name  string
		input any
		want  []string
	}{
		{"nil", nil, nil},
		{"scalar", "about", []string{"about"}},
		{"list", []any{"a", "b"}, []string{"a", "b"}},
		{"duplicates", []any{"a", "a", "b"}, []string{"a", "b"}},
		{"blank entries", []any{" ", "a"}, []string{"a"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := normalizeTags(tc.input)
			if len(got) != len(tc.want) {
				t.Fatalf("normalizeTags(%v) = %#v, want %#v", tc.input, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("normalizeTags(%v) = %#v, want %#v", tc.input, got, tc.want)
				}
			}
		})
	}
}

func readFixture(tb testing.TB, path string) []byte {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}

func TestParseFrontMatter_ByteOrderMark(t *testing.T) {
	source := "\uFEFF---\nlayout: page\ntitle: About\npermalink: /about/\n---\n\n# About\n"

	meta, body, err := ParseFrontMatter([]byte(source))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if meta.Layout != "page" || meta.Permalink != "/about/" {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	if !strings.Contains(string(body), "# About") {
		t.Fatalf("expected body to survive, got %q", body)
	}
}
