// Package calendar renders events as iCalendar files and as "add to
// calendar" links for Google, Outlook and Yahoo.
package calendar

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

const (
	ProdID          = "-//Consultancy//Appointment Booking//EN"
	DefaultReminder = time.Hour

	utcLayout  = "20060102T150405Z"
	dateLayout = "20060102"
)

type Event struct {
	UID         string
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	// AllDay events use Start's calendar date and span whole days up to End's date.
	AllDay bool
	// Reminder is how long before Start the single alarm fires; zero means DefaultReminder.
	Reminder time.Duration
	Stamp    time.Time
}

// Calendar builds a VCALENDAR holding one VEVENT with one VALARM.
func (e Event) Calendar() *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetProductId(ProdID)
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ics.MethodPublish)

	ev := cal.AddEvent(e.UID)
	ev.SetDtStampTime(e.stamp())
	if e.AllDay {
		start, end := e.allDaySpan()
		ev.SetAllDayStartAt(start)
		ev.SetAllDayEndAt(end)
	} else {
		ev.SetStartAt(e.Start)
		ev.SetEndAt(e.End)
	}
	ev.SetSummary(plain(e.Title))
	ev.SetDescription(plain(e.Description))
	ev.SetLocation(plain(e.Location))
	ev.SetStatus(ics.ObjectStatusConfirmed)
	ev.SetSequence(0)

	alarm := ev.AddAlarm()
	alarm.SetTrigger(trigger(e.reminder()))
	alarm.SetAction(ics.ActionDisplay)
	alarm.SetProperty(ics.ComponentPropertyDescription, plain("Reminder: "+e.Title))
	return cal
}

// WriteICS serializes the event with CRLF line endings and 75-octet folding.
func (e Event) WriteICS(w io.Writer) error {
	return e.Calendar().SerializeTo(w, ics.WithNewLineWindows)
}

func (e Event) ICS() []byte {
	var buf bytes.Buffer
	_ = e.WriteICS(&buf)
	return buf.Bytes()
}

// allDaySpan returns the first day and the exclusive end day.
func (e Event) allDaySpan() (time.Time, time.Time) {
	start := e.Start
	end := e.End
	if !end.After(start) {
		end = start.AddDate(0, 0, 1)
	}
	return start, end
}

func (e Event) reminder() time.Duration {
	if e.Reminder <= 0 {
		return DefaultReminder
	}
	return e.Reminder
}

func (e Event) stamp() time.Time {
	if e.Stamp.IsZero() {
		return time.Now()
	}
	return e.Stamp
}

// Filename derives a download name from the event title.
func Filename(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	name := b.String()
	if name == "" {
		name = "event"
	}
	return name + "_appointment.ics"
}

func trigger(d time.Duration) string {
	if d%time.Hour == 0 {
		return fmt.Sprintf("-PT%dH", int(d/time.Hour))
	}
	return fmt.Sprintf("-PT%dM", int(d/time.Minute))
}

// plain normalizes line endings so text escaping sees bare newlines only.
func plain(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
