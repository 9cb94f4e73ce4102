package calendar

import (
	"net/url"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lagos(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Africa/Lagos")
	require.NoError(t, err)
	return loc
}

func sampleEvent(t *testing.T) Event {
	start := time.Date(2030, 6, 1, 10, 0, 0, 0, lagos(t))
	return Event{
		UID:         "abc-123@example.com",
		Title:       "Business Strategy with Acme",
		Description: "Client: Ada Lovelace; notes, with commas\nsecond line",
		Location:    "123 Business Avenue, Tech City",
		Start:       start,
		End:         start.Add(time.Hour),
		Stamp:       time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestWriteICS(t *testing.T) {
	ics := string(sampleEvent(t).ICS())
	require.True(t, strings.HasSuffix(ics, "\r\n"))

	got := strings.Split(strings.TrimSuffix(ics, "\r\n"), "\r\n")
	want := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + ProdID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:abc-123@example.com",
		"DTSTAMP:20300501T120000Z",
		"DTSTART:20300601T090000Z",
		"DTEND:20300601T100000Z",
		"SUMMARY:Business Strategy with Acme",
		`DESCRIPTION:Client: Ada Lovelace\; notes\, with commas\nsecond line`,
		`LOCATION:123 Business Avenue\, Tech City`,
		"STATUS:CONFIRMED",
		"SEQUENCE:0",
		"BEGIN:VALARM",
		"TRIGGER:-PT1H",
		"ACTION:DISPLAY",
		"DESCRIPTION:Reminder: Business Strategy with Acme",
		"END:VALARM",
		"END:VEVENT",
		"END:VCALENDAR",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ICS mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, strings.Count(ics, "BEGIN:VALARM"))
}

func TestWriteICS_AllDay(t *testing.T) {
	e := sampleEvent(t)
	e.AllDay = true
	e.Start = time.Date(2030, 6, 1, 0, 0, 0, 0, lagos(t))
	e.End = e.Start
	e.Reminder = 30 * time.Minute

	ics := string(e.ICS())
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20300601\r\n")
	assert.Contains(t, ics, "DTEND;VALUE=DATE:20300602\r\n")
	assert.Contains(t, ics, "TRIGGER:-PT30M\r\n")
}

func TestWriteICS_FoldsLongLines(t *testing.T) {
	e := sampleEvent(t)
	e.Description = strings.Repeat("é", 60) + " then a few plain words to push past the limit\r\nlast line"

	ics := string(e.ICS())
	lines := strings.Split(strings.TrimSuffix(ics, "\r\n"), "\r\n")
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 75, line)
	}

	unfolded := strings.ReplaceAll(ics, "\r\n ", "")
	want := "DESCRIPTION:" + strings.Repeat("é", 60) + ` then a few plain words to push past the limit\nlast line` + "\r\n"
	assert.Contains(t, unfolded, want)
}

func TestCalendar_SingleAlarm(t *testing.T) {
	cal := sampleEvent(t).Calendar()
	events := cal.Events()
	require.Len(t, events, 1)
	assert.Len(t, events[0].Alarms(), 1)
}

func TestLinks(t *testing.T) {
	links := LinksFor(sampleEvent(t))

	g, err := url.Parse(links.Google)
	require.NoError(t, err)
	assert.Equal(t, "calendar.google.com", g.Host)
	assert.Equal(t, "TEMPLATE", g.Query().Get("action"))
	assert.Equal(t, "20300601T090000Z/20300601T100000Z", g.Query().Get("dates"))
	assert.Equal(t, "123 Business Avenue, Tech City", g.Query().Get("location"))

	o, err := url.Parse(links.Outlook)
	require.NoError(t, err)
	assert.Equal(t, "Business Strategy with Acme", o.Query().Get("subject"))
	assert.Equal(t, "2030-06-01T09:00:00Z", o.Query().Get("startdt"))
	assert.Equal(t, "2030-06-01T10:00:00Z", o.Query().Get("enddt"))

	y, err := url.Parse(links.Yahoo)
	require.NoError(t, err)
	assert.Equal(t, "20300601T090000Z", y.Query().Get("st"))
	assert.Equal(t, "0100", y.Query().Get("dur"))
	assert.Equal(t, "123 Business Avenue, Tech City", y.Query().Get("in_loc"))
}

func TestYahooDuration(t *testing.T) {
	assert.Equal(t, "0045", yahooDuration(45*time.Minute))
	assert.Equal(t, "0130", yahooDuration(90*time.Minute))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Tech_Training_with_Acme_appointment.ics", Filename("Tech Training with Acme"))
	assert.Equal(t, "event_appointment.ics", Filename(""))
}
