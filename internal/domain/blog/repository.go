package blog

import (
	"context"
	"encoding/json"
	"errors"

	"consultancy/internal/backend"
)

type Repository interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id string) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context, f backend.Filter) ([]Post, error)
	Update(ctx context.Context, id string, patch map[string]any) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	store backend.TableStore
}

func NewRepository(store backend.TableStore) Repository {
	return &repository{store: store}
}

func (r *repository) Create(ctx context.Context, p *Post) error {
	err := r.store.Insert(ctx, TablePosts, p)
	if errors.Is(err, backend.ErrDuplicate) {
		return ErrSlugTaken
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id string) (*Post, error) {
	return r.first(ctx, "id", id)
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	return r.first(ctx, "slug", slug)
}

func (r *repository) first(ctx context.Context, column, value string) (*Post, error) {
	var rows []Post
	if err := r.store.Select(ctx, TablePosts, backend.Filter{
		Eq:    map[string]any{column: value},
		Limit: 1,
	}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (r *repository) List(ctx context.Context, f backend.Filter) ([]Post, error) {
	var rows []Post
	if err := r.store.Select(ctx, TablePosts, f, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Update applies patch. Map updates bypass the column serializer, so tags
// are encoded here.
func (r *repository) Update(ctx context.Context, id string, patch map[string]any) error {
	if tags, ok := patch["tags"].([]string); ok {
		raw, err := json.Marshal(tags)
		if err != nil {
			return err
		}
		patch["tags"] = string(raw)
	}
	err := r.store.Update(ctx, TablePosts, id, patch)
	switch {
	case errors.Is(err, backend.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, backend.ErrDuplicate):
		return ErrSlugTaken
	}
	return err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	err := r.store.Delete(ctx, TablePosts, id)
	if errors.Is(err, backend.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
