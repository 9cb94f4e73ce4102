package inquiry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Publisher receives new-inquiry notifications for live dashboards.
type Publisher interface {
	Publish(kind string, payload any)
}

type Service struct {
	repo Repository
	pub  Publisher
	log  *zap.Logger
	now  func() time.Time
}

func NewService(repo Repository, pub Publisher, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, pub: pub, log: log, now: time.Now}
}

// Submit stores a contact form message as new.
func (s *Service) Submit(ctx context.Context, req *SubmitRequest, ip, userAgent string) (*Inquiry, error) {
	i := &Inquiry{
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:           optional(req.Phone),
		ServiceInterest: optional(req.ServiceInterest),
		Message:         strings.TrimSpace(req.Message),
		Status:          StatusNew,
		Source:          "website",
		IPAddress:       optional(ip),
		UserAgent:       optional(userAgent),
	}
	if err := s.repo.Create(ctx, i); err != nil {
		return nil, fmt.Errorf("create inquiry: %w", err)
	}
	s.log.Info("inquiry received", zap.String("id", i.ID))
	if s.pub != nil {
		s.pub.Publish(EventReceived, i)
	}
	return i, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Inquiry, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns inquiries for status, or all of them for "" and "all".
func (s *Service) List(ctx context.Context, status string) (*ListResponse, error) {
	var filter *Status
	if st := Status(strings.ToLower(strings.TrimSpace(status))); st != "" && st != "all" {
		if !st.Valid() {
			return nil, ErrInvalidStatus
		}
		filter = &st
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	return &ListResponse{Inquiries: rows, Total: len(rows)}, nil
}

// UpdateStatus moves an inquiry along. The first move to contacted stamps
// contacted_at.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (*Inquiry, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	patch := map[string]any{"status": string(status), "updated_at": now}
	if status == StatusContacted && current.ContactedAt == nil {
		patch["contacted_at"] = now
	}
	if err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
