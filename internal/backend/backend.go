// Package backend declares the hosted collaborators the site depends on:
// authentication, tabular storage and object storage. Concrete
// implementations live in the sub-packages.
package backend

import (
	"context"
	"io"
	"time"
)

// Identity is the authenticated principal.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Session struct {
	Token     string    `json:"token"`
	Identity  Identity  `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AuthService interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string) (*Identity, error)
	SignOut(ctx context.Context, token string) error
	CurrentSession(ctx context.Context, token string) (*Session, error)
	SendPasswordReset(ctx context.Context, email, redirectURL string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// Filter narrows a Select or Count. Eq and Neq are column equality predicates.
type Filter struct {
	Eq    map[string]any
	Neq   map[string]any
	Order string
	Desc  bool
	Limit int
}

func Where(column string, value any) Filter {
	return Filter{Eq: map[string]any{column: value}}
}

type TableStore interface {
	Insert(ctx context.Context, table string, record any) error
	Update(ctx context.Context, table, id string, patch map[string]any) error
	Select(ctx context.Context, table string, f Filter, dest any) error
	Count(ctx context.Context, table string, f Filter) (int64, error)
	Delete(ctx context.Context, table, id string) error
}

type ObjectStore interface {
	Upload(ctx context.Context, bucket, path, contentType string, r io.Reader, size int64) (string, error)
	Remove(ctx context.Context, bucket, path string) error
}
