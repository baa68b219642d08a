package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials covers both unknown-email and wrong-password
	// login failures so callers cannot probe which emails are registered.
	// It also reports a missing or unknown bearer token.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound is returned for ids that do not exist within the caller's
	// ownership scope. A foreign user's id is indistinguishable from an
	// absent one.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken reports a registration attempt with an email already in use.
	ErrEmailTaken = errors.New("email already registered")

	// ErrNameTaken reports a tag or ingredient rename colliding with an
	// existing (owner, name) pair.
	ErrNameTaken = errors.New("name already in use")

	// ErrValidation reports malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")
)

// Invalid wraps ErrValidation with a field-level detail message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

