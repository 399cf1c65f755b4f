package entity

import (
	"errors"
	"fmt"
)

// ValidationKind classifies a synchronous rejection raised before any simulated I/O.
type ValidationKind string

const (
	ValidationFileTooLarge    ValidationKind = "FILE_TOO_LARGE"
	ValidationUnsupportedType ValidationKind = "UNSUPPORTED_TYPE"
	ValidationEmptyField      ValidationKind = "EMPTY_FIELD"
	ValidationInvalidURL      ValidationKind = "INVALID_URL"
	ValidationMissingInput    ValidationKind = "MISSING_INPUT"
)

var (
	ErrFileTooLarge     = errors.New("file too large")
	ErrUnsupportedType  = errors.New("unsupported file type")
	ErrEmptyField       = errors.New("required field is empty")
	ErrInvalidURL       = errors.New("invalid video url")
	ErrMissingInput     = errors.New("no video selected")
	ErrSimulatedFailure = errors.New("simulated failure")
)

// ValidationError carries the notification copy the page shows for the rejection.
type ValidationError struct {
	Kind        ValidationKind
	Field       string
	Title       string
	Description string
}

func NewValidationError(kind ValidationKind, field, title, description string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Title: title, Description: description}
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed (%s) on %s: %s", e.Kind, e.Field, e.Description)
	}
	return fmt.Sprintf("validation failed (%s): %s", e.Kind, e.Description)
}

// Is lets callers match a ValidationError against the kind sentinels.
func (e *ValidationError) Is(target error) bool {
	switch e.Kind {
	case ValidationFileTooLarge:
		return target == ErrFileTooLarge
	case ValidationUnsupportedType:
		return target == ErrUnsupportedType
	case ValidationEmptyField:
		return target == ErrEmptyField
	case ValidationInvalidURL:
		return target == ErrInvalidURL
	case ValidationMissingInput:
		return target == ErrMissingInput
	}
	return false
}

// Notification converts the rejection into the destructive toast shown to the user.
func (e *ValidationError) Notification() Notification {
	return Destructive(e.Title, e.Description)
}

// SimulatedFailure is produced only by an injected fault.
type SimulatedFailure struct {
	Operation string
	Reason    string
}

func (e *SimulatedFailure) Error() string {
	return fmt.Sprintf("%s: simulated failure: %s", e.Operation, e.Reason)
}

func (e *SimulatedFailure) Unwrap() error {
	return ErrSimulatedFailure
}

// AsValidation extracts a ValidationError from err, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
