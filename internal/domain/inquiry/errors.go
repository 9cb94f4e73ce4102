package inquiry

import "errors"

var (
	ErrNotFound      = errors.New("inquiry not found")
	ErrInvalidStatus = errors.New("invalid inquiry status")
)
