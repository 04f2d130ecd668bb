package calendar

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Every event lasts exactly one hour.
const eventDuration = time.Hour

type Event struct {
	Title       string
	Start       time.Time
	Description string
	Location    string
}

// Links holds the three invite representations built from one event. Google
// and the ICS blob carry UTC timestamps; the Outlook compose URL carries the
// unshifted local value. That asymmetry is what the Outlook template expects,
// keep it.
type Links struct {
	GoogleURL  string
	OutlookURL string
	ICSDataURI string
}

// BuildLinks derives the invite links for an event. now seeds the ICS UID and
// DTSTAMP so callers can pin it in tests.
func BuildLinks(ev Event, now time.Time) Links {
	end := ev.Start.Add(eventDuration)
	startUTC := formatUTC(ev.Start)
	endUTC := formatUTC(end)

	googleURL := "https://www.google.com/calendar/render?action=TEMPLATE" +
		"&text=" + escape(ev.Title) +
		"&dates=" + escape(startUTC+"/"+endUTC) +
		"&details=" + escape(ev.Description) +
		"&location=" + escape(ev.Location) +
		"&sf=true&output=xml"

	uid := fmt.Sprintf("%d@madametricote", now.UnixMilli())
	ics := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Madame Tricote//FR",
		"BEGIN:VEVENT",
		"UID:" + uid,
		"DTSTAMP:" + formatUTC(now),
		"DTSTART:" + startUTC,
		"DTEND:" + endUTC,
		"SUMMARY:" + ev.Title,
		"DESCRIPTION:" + ev.Description,
		"LOCATION:" + ev.Location,
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n")
	icsDataURI := "data:text/calendar;charset=utf8," + escape(ics)

	outlookURL := "https://outlook.live.com/owa/?path=/calendar/action/compose" +
		"&subject=" + escape(ev.Title) +
		"&startdt=" + escape(formatLocal(ev.Start)) +
		"&enddt=" + escape(formatLocal(end)) +
		"&body=" + escape(ev.Description) +
		"&location=" + escape(ev.Location)

	return Links{
		GoogleURL:  googleURL,
		OutlookURL: outlookURL,
		ICSDataURI: icsDataURI,
	}
}

// OutlookAnchor wraps the Outlook link in the HTML anchor the email template
// embeds directly.
func OutlookAnchor(outlookURL string) string {
	if outlookURL == "" {
		return ""
	}
	return fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener">Ajouter à mon calendrier Outlook</a>`, outlookURL)
}

func formatUTC(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

func formatLocal(t time.Time) string {
	return t.Format("2006-01-02T15:04:05")
}

// escape matches encodeURIComponent where it matters for these links: spaces
// become %20, not +.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
