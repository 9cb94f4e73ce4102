package inquiry

import (
	"context"
	"errors"

	"consultancy/internal/backend"
)

type Repository interface {
	Create(ctx context.Context, i *Inquiry) error
	GetByID(ctx context.Context, id string) (*Inquiry, error)
	List(ctx context.Context, status *Status) ([]Inquiry, error)
	Update(ctx context.Context, id string, patch map[string]any) error
}

type repository struct {
	store backend.TableStore
}

func NewRepository(store backend.TableStore) Repository {
	return &repository{store: store}
}

func (r *repository) Create(ctx context.Context, i *Inquiry) error {
	return r.store.Insert(ctx, TableInquiries, i)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Inquiry, error) {
	var rows []Inquiry
	if err := r.store.Select(ctx, TableInquiries, backend.Filter{
		Eq:    map[string]any{"id": id},
		Limit: 1,
	}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// List returns inquiries newest first.
func (r *repository) List(ctx context.Context, status *Status) ([]Inquiry, error) {
	f := backend.Filter{Order: "created_at", Desc: true}
	if status != nil {
		f.Eq = map[string]any{"status": string(*status)}
	}
	var rows []Inquiry
	if err := r.store.Select(ctx, TableInquiries, f, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Update(ctx context.Context, id string, patch map[string]any) error {
	err := r.store.Update(ctx, TableInquiries, id, patch)
	if errors.Is(err, backend.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
