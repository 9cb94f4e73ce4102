package admin

import "errors"

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrAccessDenied       = errors.New("access denied: account is not an administrator")
	ErrVerificationFailed = errors.New("admin verification failed")
	ErrGrantExists        = errors.New("admin grant already exists")
	ErrGrantNotFound      = errors.New("admin grant not found")
)
