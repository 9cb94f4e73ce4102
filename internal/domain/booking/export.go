package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"consultancy/internal/domain/appointment"
	"consultancy/internal/domain/calendar"
)

// Business describes who the appointment is with, for calendar exports.
type Business struct {
	Name     string
	Location string
	Domain   string
}

// CalendarEvent builds the calendar entry for a confirmed appointment. Without
// a time slot the event spans the whole day.
func CalendarEvent(a *appointment.Appointment, s Service, b Business, loc *time.Location, now time.Time) (calendar.Event, error) {
	date, err := time.ParseInLocation(appointment.DateLayout, a.AppointmentDate, loc)
	if err != nil {
		return calendar.Event{}, fmt.Errorf("appointment date: %w", err)
	}

	e := calendar.Event{
		UID:         uuid.NewString() + "@" + b.Domain,
		Title:       fmt.Sprintf("%s with %s", a.ServiceName, b.Name),
		Description: describe(a, s, b),
		Location:    b.Location,
		Reminder:    calendar.DefaultReminder,
		Stamp:       now,
	}

	if a.AppointmentTime == nil || *a.AppointmentTime == "" {
		e.AllDay = true
		e.Start = date
		e.End = date.AddDate(0, 0, 1)
		return e, nil
	}

	start, err := At(date, *a.AppointmentTime)
	if err != nil {
		return calendar.Event{}, fmt.Errorf("appointment time: %w", err)
	}
	duration := s.Duration()
	if duration <= 0 {
		duration = time.Hour
	}
	e.Start = start
	e.End = start.Add(duration)
	return e, nil
}

func describe(a *appointment.Appointment, s Service, b Business) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s appointment with %s.\n", a.ServiceName, b.Name)
	if s.Description != "" {
		sb.WriteString(s.Description + "\n")
	}
	fmt.Fprintf(&sb, "Client: %s (%s)", a.FullName(), a.Email)
	if a.Notes != nil {
		sb.WriteString("\nNotes: " + *a.Notes)
	}
	return sb.String()
}
