package employee

import "errors"

var (
	ErrNotFound           = errors.New("employee not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrImageStoreMissing  = errors.New("image store not configured")
)

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

// Message extracts the user-facing text from a ValidationError.
func Message(err error) (string, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Message, true
	}
	return "", false
}
