package backend

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrUnavailable        = errors.New("backend request failed")
	ErrDuplicate          = errors.New("duplicate record")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrNoSession          = errors.New("no active session")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password too weak")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrObjectExists       = errors.New("object already exists")
)

// IsTransient reports whether err is a TransientRequestFailure that may be retried.
func IsTransient(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
