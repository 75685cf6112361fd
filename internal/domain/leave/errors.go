package leave

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("leave request not found")
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidAction = errors.New("invalid action")
	ErrNotPending    = errors.New("leave request is not pending")
)

// ConflictError reports a decision attempted on a request that has already
// left the Pending state.
type ConflictError struct {
	Status Status
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("leave request already %s", e.Status.Lower())
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrNotPending
}

// Message is the text returned to the caller.
func (e *ConflictError) Message() string {
	return fmt.Sprintf("This leave request has already been %s.", e.Status.Lower())
}

// ValidationError carries a message that is shown to the user verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}
