// ABOUTME: Error classes shown by the TUI
// ABOUTME: Validation errors block submission, service errors offer a retry

package tui

import "github.com/cockroachdb/errors"

var (
	// ErrValidation marks input the form cannot submit
	ErrValidation = errors.New("invalid input")

	// ErrService marks a failed playlist or metadata request
	ErrService = errors.New("service request failed")
)

// validationError wraps err (or a new message) as a validation failure
func validationError(msg string, err error) error {
	if err == nil {
		return errors.Mark(errors.New(msg), ErrValidation)
	}

	return errors.Mark(errors.Wrap(err, msg), ErrValidation)
}

// serviceError wraps a collaborator failure so callers can offer a retry
func serviceError(err error, format string, args ...any) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrService)
}
