package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"consultancy/internal/backend"
)

// GrantLookup answers the two existence checks of an authorization decision.
type GrantLookup interface {
	ExistsByID(ctx context.Context, id string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type GrantRepository interface {
	GrantLookup
	Create(ctx context.Context, g *Grant) error
	DeleteByEmail(ctx context.Context, email string) error
	List(ctx context.Context) ([]Grant, error)
}

type grantRepository struct {
	store backend.TableStore
}

func NewGrantRepository(store backend.TableStore) GrantRepository {
	return &grantRepository{store: store}
}

func (r *grantRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	n, err := r.store.Count(ctx, TableAdminUsers, backend.Where("id", id))
	if err != nil {
		return false, fmt.Errorf("lookup grant by id: %w", err)
	}
	return n > 0, nil
}

func (r *grantRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := r.store.Count(ctx, TableAdminUsers, backend.Where("email", normalizeEmail(email)))
	if err != nil {
		return false, fmt.Errorf("lookup grant by email: %w", err)
	}
	return n > 0, nil
}

func (r *grantRepository) Create(ctx context.Context, g *Grant) error {
	g.Email = normalizeEmail(g.Email)
	if g.ID == "" {
		// email-only grant; the row id never matches a real account id
		g.ID = uuid.NewString()
	}
	err := r.store.Insert(ctx, TableAdminUsers, g)
	if errors.Is(err, backend.ErrDuplicate) {
		return ErrGrantExists
	}
	return err
}

func (r *grantRepository) DeleteByEmail(ctx context.Context, email string) error {
	var grants []Grant
	if err := r.store.Select(ctx, TableAdminUsers, backend.Where("email", normalizeEmail(email)), &grants); err != nil {
		return err
	}
	if len(grants) == 0 {
		return ErrGrantNotFound
	}
	for _, g := range grants {
		if err := r.store.Delete(ctx, TableAdminUsers, g.ID); err != nil && !errors.Is(err, backend.ErrNotFound) {
			return err
		}
	}
	return nil
}

func (r *grantRepository) List(ctx context.Context) ([]Grant, error) {
	var grants []Grant
	err := r.store.Select(ctx, TableAdminUsers, backend.Filter{Order: "created_at", Desc: true}, &grants)
	return grants, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
