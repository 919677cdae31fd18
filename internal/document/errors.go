package document

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingFrontMatter indicates the document carries no metadata block at all.
	ErrMissingFrontMatter = errors.New("document: metadata block is required")
	// ErrMissingDelimiter indicates an opening metadata marker without a closing one.
	ErrMissingDelimiter = errors.New("document: metadata block is missing its closing delimiter")
	// ErrMissingRequiredField indicates a mandatory metadata key is absent or blank.
	ErrMissingRequiredField = errors.New("document: required metadata field is missing")
)

// MissingFieldError reports which mandatory metadata field was absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	if e == nil || e.Field == "" {
		return ErrMissingRequiredField.Error()
	}
	return fmt.Sprintf("%s: %s", ErrMissingRequiredField.Error(), e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingRequiredField
}
