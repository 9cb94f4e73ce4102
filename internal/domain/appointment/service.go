package appointment

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Publisher receives appointment events for live dashboards.
type Publisher interface {
	Publish(kind string, payload any)
}

type Service struct {
	repo Repository
	pub  Publisher
	log  *zap.Logger
}

func NewService(repo Repository, pub Publisher, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, pub: pub, log: log}
}

// Create persists a new appointment as pending.
func (s *Service) Create(ctx context.Context, a *Appointment) error {
	a.Status = StatusPending
	if err := s.repo.Create(ctx, a); err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	s.log.Info("appointment created",
		zap.String("id", a.ID),
		zap.String("service_id", a.ServiceID),
		zap.String("date", a.AppointmentDate),
	)
	s.publish(EventCreated, Event{Appointment: a})
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns appointments ordered by date descending. Counts cover every
// appointment regardless of the filter.
func (s *Service) List(ctx context.Context, f ListFilter) (*ListResponse, error) {
	status := strings.ToLower(strings.TrimSpace(f.Status))
	if status != "" && status != "all" && !Status(status).Valid() {
		return nil, ErrInvalidStatus
	}

	all, err := s.repo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	counts := make(map[Status]int, len(Statuses))
	for _, st := range Statuses {
		counts[st] = 0
	}
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]Appointment, 0, len(all))
	for _, a := range all {
		counts[a.Status]++
		if status != "" && status != "all" && string(a.Status) != status {
			continue
		}
		if query != "" && !matches(&a, query) {
			continue
		}
		out = append(out, a)
	}

	return &ListResponse{Appointments: out, Total: len(out), Counts: counts}, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (*Appointment, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	previous := current.Status
	current.Status = status
	s.publish(EventStatusChanged, Event{Appointment: current, Previous: previous})
	return current, nil
}

func (s *Service) publish(kind string, e Event) {
	if s.pub == nil {
		return
	}
	s.pub.Publish(kind, e)
}

func matches(a *Appointment, query string) bool {
	for _, field := range []string{a.FirstName, a.LastName, a.Email, a.ServiceName} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
