package auth

import "errors"

var (
	ErrUnknownRole     = errors.New("unknown role")
	ErrSessionInvalid  = errors.New("session invalid")
	ErrSessionNotFound = errors.New("session not found")
	ErrMFAUnavailable  = errors.New("mfa requires an encryption key")
	ErrMFANotEnrolled  = errors.New("mfa setup required")
	ErrMFACodeInvalid  = errors.New("invalid mfa code")
)
