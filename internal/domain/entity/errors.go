package entity

import (
	"errors"
	"fmt"
)

// Domain error taxonomy. Callers wrap these with fmt.Errorf("%w: ...") and the
// HTTP layer maps them to status codes with errors.Is.
var (
	ErrDuplicateIdentity  = errors.New("duplicate identity")
	ErrInvalidIdentity    = errors.New("invalid identity")
	ErrTokenInvalid       = errors.New("invalid or expired token")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrNotFound           = errors.New("not found")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrForbidden          = errors.New("forbidden")
	ErrValidationFailed   = errors.New("validation failed")
	ErrInternal           = errors.New("internal server error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

// ErrDuplicateReview is returned when a user reviews the same place twice.
var ErrDuplicateReview = fmt.Errorf("%w: place already reviewed by this user", ErrDuplicateIdentity)

// Validationf builds an ErrValidationFailed with a caller-facing message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, fmt.Sprintf(format, args...))
}
