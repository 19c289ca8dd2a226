package ledger

import (
	"errors"
	"fmt"
)

// Timer misuse sentinels.
var (
	ErrAlreadyRunning = errors.New("a shift is already running")
	ErrNotRunning     = errors.New("no shift is running")
	ErrNoBreak        = errors.New("no break is open")
	ErrOnBreak        = errors.New("a break is already open")
)

// ValidationError reports missing or malformed required input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a reference to an id that does not exist.
type NotFoundError struct {
	Kind string // "worker", "project" or "entry"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
