package appointment

import (
	"context"
	"errors"

	"consultancy/internal/backend"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id string) (*Appointment, error)
	List(ctx context.Context, status *Status) ([]Appointment, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

type repository struct {
	store backend.TableStore
}

func NewRepository(store backend.TableStore) Repository {
	return &repository{store: store}
}

func (r *repository) Create(ctx context.Context, a *Appointment) error {
	return r.store.Insert(ctx, TableAppointments, a)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	var rows []Appointment
	if err := r.store.Select(ctx, TableAppointments, backend.Filter{
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

// List returns appointments newest date first, optionally for one status.
func (r *repository) List(ctx context.Context, status *Status) ([]Appointment, error) {
	f := backend.Filter{Order: "appointment_date", Desc: true}
	if status != nil {
		f.Eq = map[string]any{"status": string(*status)}
	}
	var rows []Appointment
	if err := r.store.Select(ctx, TableAppointments, f, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	err := r.store.Update(ctx, TableAppointments, id, map[string]any{"status": string(status)})
	if errors.Is(err, backend.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
