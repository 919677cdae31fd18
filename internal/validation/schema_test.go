package validation_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-pagegen/internal/validation"
)

func postSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"published_venue": map[string]any{"type": "string"},
			"reading_time":    map[string]any{"type": "integer"},
		},
		"required": []any{"published_venue"},
	}
}

func TestValidateMetadata(t *testing.T) {
	err := validation.ValidateMetadata(postSchema(), map[string]any{
		"published_venue": "Example Conf",
		"reading_time":    5,
	})
	if err != nil {
		t.Fatalf("expected valid metadata, got %v", err)
	}
}

func TestValidateMetadata_MissingRequired(t *testing.T) {
	err := validation.ValidateMetadata(postSchema(), map[string]any{
		"reading_time": 5,
	})
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}

	issues := validation.Issues(err)
	if len(issues) == 0 {
		t.Fatal("expected at least one issue")
	}
}

func TestValidateMetadata_WrongType(t *testing.T) {
	err := validation.ValidateMetadata(postSchema(), map[string]any{
		"published_venue": "Example Conf",
		"reading_time":    "five",
	})
	if err == nil {
		t.Fatal("expected type mismatch failure")
	}

	var metaErr *validation.MetadataValidationError
	if !errors.As(err, &metaErr) {
		t.Fatalf("expected MetadataValidationError, got %T", err)
	}
	if len(metaErr.Issues) == 0 {
		t.Fatal("expected issues to be reported")
	}
}

func TestValidateMetadata_NilSchemaAcceptsAnything(t *testing.T) {
	if err := validation.ValidateMetadata(nil, map[string]any{"anything": true}); err != nil {
		t.Fatalf("expected nil schema to accept all metadata, got %v", err)
	}
}

func TestValidateDraftMetadata_SkipsRequired(t *testing.T) {
	err := validation.ValidateDraftMetadata(postSchema(), map[string]any{
		"reading_time": 5,
	})
	if err != nil {
		t.Fatalf("expected draft metadata to skip required fields, got %v", err)
	}
}

func TestNormalizeSchema_FieldsShorthand(t *testing.T) {
	normalized := validation.NormalizeSchema(map[string]any{
		"fields": []any{
			map[string]any{"name": "venue", "type": "string", "required": true},
			"free_form",
		},
	})
	if normalized == nil {
		t.Fatal("expected normalized schema")
	}

	err := validation.ValidateMetadata(normalized, map[string]any{"free_form": 1})
	if err == nil {
		t.Fatal("expected missing required venue to fail")
	}

	if err := validation.ValidateMetadata(normalized, map[string]any{"venue": "x"}); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
}

func TestValidateSchema_RejectsBroken(t *testing.T) {
	err := validation.ValidateSchema(map[string]any{
		"type":       "object",
		"properties": map[string]any{"x": map[string]any{"type": "no-such-type"}},
	})
	if !errors.Is(err, validation.ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}
