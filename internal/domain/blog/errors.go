package blog

import "errors"

var (
	ErrNotFound        = errors.New("blog post not found")
	ErrSlugTaken       = errors.New("a post with this slug already exists")
	ErrInvalidSlug     = errors.New("slug must contain letters or digits")
	ErrUnknownCategory = errors.New("unknown category")
)

// ValidationError carries per-field messages for a rejected post.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "invalid blog post" }
