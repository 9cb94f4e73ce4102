package upload

import "errors"

var (
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")
	ErrNotImage     = errors.New("only image files are allowed")
	ErrEmptyFile    = errors.New("file is empty")
)
