package calendar

import (
	"fmt"
	"net/url"
	"time"
)

type Links struct {
	Google  string `json:"google"`
	Outlook string `json:"outlook"`
	Yahoo   string `json:"yahoo"`
}

func LinksFor(e Event) Links {
	return Links{
		Google:  GoogleURL(e),
		Outlook: OutlookURL(e),
		Yahoo:   YahooURL(e),
	}
}

func GoogleURL(e Event) string {
	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", e.Title)
	if e.AllDay {
		start, end := e.allDaySpan()
		q.Set("dates", start.Format(dateLayout)+"/"+end.Format(dateLayout))
	} else {
		q.Set("dates", e.Start.UTC().Format(utcLayout)+"/"+e.End.UTC().Format(utcLayout))
	}
	q.Set("details", e.Description)
	q.Set("location", e.Location)
	return "https://calendar.google.com/calendar/render?" + q.Encode()
}

func OutlookURL(e Event) string {
	q := url.Values{}
	q.Set("path", "/calendar/action/compose")
	q.Set("rru", "addevent")
	q.Set("subject", e.Title)
	if e.AllDay {
		start, end := e.allDaySpan()
		q.Set("startdt", start.Format(time.DateOnly))
		q.Set("enddt", end.Format(time.DateOnly))
		q.Set("allday", "true")
	} else {
		q.Set("startdt", e.Start.UTC().Format(time.RFC3339))
		q.Set("enddt", e.End.UTC().Format(time.RFC3339))
	}
	q.Set("body", e.Description)
	q.Set("location", e.Location)
	return "https://outlook.live.com/calendar/0/deeplink/compose?" + q.Encode()
}

func YahooURL(e Event) string {
	q := url.Values{}
	q.Set("v", "60")
	q.Set("view", "d")
	q.Set("type", "20")
	q.Set("title", e.Title)
	if e.AllDay {
		start, _ := e.allDaySpan()
		q.Set("st", start.Format(dateLayout))
		q.Set("dur", "allday")
	} else {
		q.Set("st", e.Start.UTC().Format(utcLayout))
		q.Set("dur", yahooDuration(e.End.Sub(e.Start)))
	}
	q.Set("desc", e.Description)
	q.Set("in_loc", e.Location)
	return "https://calendar.yahoo.com/?" + q.Encode()
}

// yahooDuration renders d as HHMM.
func yahooDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	return fmt.Sprintf("%02d%02d", minutes/60, minutes%60)
}
