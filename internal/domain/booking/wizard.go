package booking

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"consultancy/internal/domain/appointment"
	"consultancy/internal/pkg/validator"
)

type Step int

const (
	StepSelectService Step = iota + 1
	StepSelectDateTime
	StepEnterDetails
	StepConfirmed
)

func (s Step) String() string {
	switch s {
	case StepSelectService:
		return "select_service"
	case StepSelectDateTime:
		return "select_date_time"
	case StepEnterDetails:
		return "enter_details"
	case StepConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

func (s Step) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

type Contact struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Notes     string `json:"notes"`
}

func (c Contact) trimmed() Contact {
	return Contact{
		FirstName: strings.TrimSpace(c.FirstName),
		LastName:  strings.TrimSpace(c.LastName),
		Email:     strings.TrimSpace(c.Email),
		Phone:     strings.TrimSpace(c.Phone),
		Company:   strings.TrimSpace(c.Company),
		Notes:     strings.TrimSpace(c.Notes),
	}
}

func (c Contact) validate() error {
	errs := FieldErrors{}
	if c.FirstName == "" {
		errs["first_name"] = "required"
	}
	if c.LastName == "" {
		errs["last_name"] = "required"
	}
	if c.Email == "" {
		errs["email"] = "required"
	} else if !validator.IsEmail(c.Email) {
		errs["email"] = "invalid email"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Creator persists a finished booking.
type Creator interface {
	Create(ctx context.Context, a *appointment.Appointment) error
}

type Options struct {
	Catalog *Catalog
	Creator Creator
	// Location decides what "today" is for date checks.
	Location *time.Location
	// RequireTime makes a time slot mandatory before details can be entered.
	RequireTime bool
	// Timeout bounds a single Create call; zero means no extra deadline.
	Timeout time.Duration
	Now     func() time.Time
}

// Wizard is one visitor's in-progress booking. It is safe for concurrent use;
// while a submission is awaiting the store every mutating call fails with
// ErrSubmissionInFlight.
type Wizard struct {
	mu sync.Mutex

	catalog     *Catalog
	creator     Creator
	loc         *time.Location
	requireTime bool
	timeout     time.Duration
	now         func() time.Time

	step       Step
	serviceID  string
	date       time.Time
	slot       string
	contact    Contact
	submitting bool
	confirmed  *appointment.Appointment
}

func NewWizard(opts Options) *Wizard {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Wizard{
		catalog:     opts.Catalog,
		creator:     opts.Creator,
		loc:         loc,
		requireTime: opts.RequireTime,
		timeout:     opts.Timeout,
		now:         now,
		step:        StepSelectService,
	}
}

// View is a read-only snapshot of the wizard.
type View struct {
	Step        Step                     `json:"step"`
	StepNumber  int                      `json:"step_number"`
	Service     *Service                 `json:"service"`
	Date        string                   `json:"date,omitempty"`
	Time        string                   `json:"time,omitempty"`
	Contact     Contact                  `json:"contact"`
	RequireTime bool                     `json:"require_time"`
	Submitting  bool                     `json:"submitting"`
	Appointment *appointment.Appointment `json:"appointment,omitempty"`
}

func (w *Wizard) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.viewLocked()
}

func (w *Wizard) viewLocked() View {
	v := View{
		Step:        w.step,
		StepNumber:  int(w.step),
		Time:        w.slot,
		Contact:     w.contact,
		RequireTime: w.requireTime,
		Submitting:  w.submitting,
		Appointment: w.confirmed,
	}
	if s, ok := w.catalog.Service(w.serviceID); ok {
		v.Service = &s
	}
	if !w.date.IsZero() {
		v.Date = w.date.Format(appointment.DateLayout)
	}
	return v
}

func (w *Wizard) SelectService(id string) error {
	return w.mutate(func() error {
		if _, ok := w.catalog.Service(id); !ok {
			return ErrUnknownService
		}
		w.serviceID = id
		return nil
	})
}

// SelectDate picks a calendar day (YYYY-MM-DD). Picking a different day clears the chosen time.
func (w *Wizard) SelectDate(date string) error {
	return w.mutate(func() error {
		d, err := time.ParseInLocation(appointment.DateLayout, strings.TrimSpace(date), w.loc)
		if err != nil {
			return ErrInvalidDate
		}
		if d.Before(w.today()) {
			return ErrPastDate
		}
		if !d.Equal(w.date) {
			w.slot = ""
		}
		w.date = d
		return nil
	})
}

func (w *Wizard) SelectTime(slot string) error {
	return w.mutate(func() error {
		if !w.catalog.HasSlot(slot) {
			return ErrUnknownSlot
		}
		w.slot = slot
		return nil
	})
}

func (w *Wizard) SetContact(c Contact) error {
	return w.mutate(func() error {
		w.contact = c.trimmed()
		return nil
	})
}

// Next advances one step when the current step's guard holds.
func (w *Wizard) Next() error {
	return w.mutate(func() error {
		switch w.step {
		case StepSelectService:
			if w.serviceID == "" {
				return ErrServiceRequired
			}
			w.step = StepSelectDateTime
		case StepSelectDateTime:
			if err := w.checkDateTime(); err != nil {
				return err
			}
			w.step = StepEnterDetails
		default:
			return ErrInvalidTransition
		}
		return nil
	})
}

// Back returns to the previous step keeping everything entered so far.
func (w *Wizard) Back() error {
	return w.mutate(func() error {
		switch w.step {
		case StepSelectDateTime:
			w.step = StepSelectService
		case StepEnterDetails:
			w.step = StepSelectDateTime
		default:
			return ErrInvalidTransition
		}
		return nil
	})
}

// Submit validates the details and creates exactly one appointment. The store
// call runs without holding the lock; on failure the wizard stays on the
// details step with every field intact.
func (w *Wizard) Submit(ctx context.Context) (*appointment.Appointment, error) {
	w.mu.Lock()
	if err := w.guardLocked(); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	if w.step != StepEnterDetails {
		w.mu.Unlock()
		return nil, ErrInvalidTransition
	}
	if err := w.checkDateTime(); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	if err := w.contact.validate(); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	appt := w.buildLocked()
	w.submitting = true
	w.mu.Unlock()

	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}
	err := w.creator.Create(ctx, appt)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	w.step = StepConfirmed
	w.confirmed = appt
	return appt, nil
}

// Confirmed returns the created appointment and its service once submitted.
func (w *Wizard) Confirmed() (*appointment.Appointment, Service, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepConfirmed || w.confirmed == nil {
		return nil, Service{}, ErrNotConfirmed
	}
	s, _ := w.catalog.Service(w.serviceID)
	return w.confirmed, s, nil
}

// Busy reports whether a submission is in flight.
func (w *Wizard) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitting
}

func (w *Wizard) mutate(fn func() error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.guardLocked(); err != nil {
		return err
	}
	return fn()
}

func (w *Wizard) guardLocked() error {
	if w.submitting {
		return ErrSubmissionInFlight
	}
	if w.step == StepConfirmed {
		return ErrAlreadySubmitted
	}
	return nil
}

func (w *Wizard) checkDateTime() error {
	if w.date.IsZero() {
		return ErrDateRequired
	}
	if w.date.Before(w.today()) {
		return ErrPastDate
	}
	if w.requireTime && w.slot == "" {
		return ErrTimeRequired
	}
	return nil
}

func (w *Wizard) today() time.Time {
	n := w.now().In(w.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, w.loc)
}

func (w *Wizard) buildLocked() *appointment.Appointment {
	s, _ := w.catalog.Service(w.serviceID)
	a := &appointment.Appointment{
		FirstName:       w.contact.FirstName,
		LastName:        w.contact.LastName,
		Email:           w.contact.Email,
		Phone:           optional(w.contact.Phone),
		Company:         optional(w.contact.Company),
		Notes:           optional(w.contact.Notes),
		ServiceID:       s.ID,
		ServiceName:     s.Name,
		AppointmentDate: w.date.Format(appointment.DateLayout),
		AppointmentTime: optional(w.slot),
		Status:          appointment.StatusPending,
	}
	return a
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
