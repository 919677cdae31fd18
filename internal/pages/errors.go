package pages

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrPageRequired       = errors.New("pages: page is required")
	ErrRepositoryRequired = errors.New("pages: page repository required")
	ErrPageNotFound       = errors.New("pages: page not found")
	ErrPermalinkExists    = errors.New("pages: permalink already registered")
	ErrPageInvalid        = errors.New("pages: page metadata invalid")
)

// PermalinkConflictError captures site-wide permalink uniqueness violations.
type PermalinkConflictError struct {
	Permalink  string
	ExistingID uuid.UUID
	SourcePath string
}

func (e *PermalinkConflictError) Error() string {
	if e == nil {
		return ErrPermalinkExists.Error()
	}
	permalink := strings.TrimSpace(e.Permalink)
	if permalink != "" {
		return fmt.Sprintf("%s: permalink=%s", ErrPermalinkExists.Error(), permalink)
	}
	return ErrPermalinkExists.Error()
}

func (e *PermalinkConflictError) Unwrap() error {
	return ErrPermalinkExists
}

// InvalidPageError aggregates the violations found while validating a page.
type InvalidPageError struct {
	Permalink  string
	Violations []Violation
}

func (e *InvalidPageError) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return ErrPageInvalid.Error()
	}
	parts := make([]string, 0, len(e.Violations))
	for _, violation := range e.Violations {
		parts = append(parts, violation.String())
	}
	return fmt.Sprintf("%s: %s", ErrPageInvalid.Error(), strings.Join(parts, "; "))
}

func (e *InvalidPageError) Unwrap() error {
	return ErrPageInvalid
}

// NotFoundError reports a missing registry entry with lookup context.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrPageNotFound.Error()
	}
	return fmt.Sprintf("%s: %s=%s", ErrPageNotFound.Error(), e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrPageNotFound
}
