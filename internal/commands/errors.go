package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes let CLI and dispatcher surfaces match failures without parsing
// messages.
const (
	codeMessageRejected = "SITE_COMMAND_MESSAGE_REJECTED"
	codeRunCanceled     = "SITE_COMMAND_CANCELED"
	codeRunTimeout      = "SITE_COMMAND_TIMEOUT"
	codeRunContext      = "SITE_COMMAND_CONTEXT_ERROR"
	codeRunFailed       = "SITE_COMMAND_FAILED"
)

// wrapValidationError normalizes a message validation failure into a
// go-errors validation error. Already-wrapped errors pass through untouched
// so inner codes survive.
func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "site command message rejected").
		WithTextCode(codeMessageRejected)
}

// wrapContextError maps context termination onto command error codes so a
// timed-out build reads differently from an operator cancel.
func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "site command canceled").
			WithTextCode(codeRunCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "site command deadline exceeded").
			WithTextCode(codeRunTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "site command context error").
			WithTextCode(codeRunContext)
	}
}

// wrapExecuteError normalizes a runner failure that is neither a validation
// nor a context error.
func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "site command failed").
		WithTextCode(codeRunFailed)
}
