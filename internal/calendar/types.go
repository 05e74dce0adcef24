package calendar

import (
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

// CalendarInfo is the projection of an upstream calendar list entry.
type CalendarInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// EventInput is the request payload for inserting a calendar event.
type EventInput struct {
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time

	// TimeZone is the IANA timezone qualifying Start and End. Defaults to
	// UTC when empty.
	TimeZone string

	// Attendees is the set of attendee email addresses.
	Attendees []string

	// WithMeetLink requests a generated Google Meet conference for the
	// event. The conferencing request ID is derived from Start, so repeated
	// submissions with the same start collide on one request instead of
	// minting duplicate links.
	WithMeetLink bool
}

// EventSummary is the projection of an upstream event.
type EventSummary struct {
	ID          string         `json:"id"`
	Summary     string         `json:"summary"`
	Description string         `json:"description,omitempty"`
	Location    string         `json:"location,omitempty"`
	Start       time.Time      `json:"start"`
	End         time.Time      `json:"end"`
	Status      string         `json:"status,omitempty"`
	Attendees   []AttendeeInfo `json:"attendees"`
	MeetLink    string         `json:"meetLink,omitempty"`
}

// AttendeeInfo describes one event attendee.
type AttendeeInfo struct {
	Email          string `json:"email"`
	ResponseStatus string `json:"responseStatus,omitempty"`
}

func toCalendarInfo(entry *calendar.CalendarListEntry) CalendarInfo {
	if entry == nil {
		return CalendarInfo{}
	}
	return CalendarInfo{
		ID:          entry.Id,
		Name:        entry.Summary,
		Description: entry.Description,
	}
}

func toEventSummary(event *calendar.Event) EventSummary {
	summary := EventSummary{
		Attendees: []AttendeeInfo{},
	}
	if event == nil {
		return summary
	}

	summary.ID = event.Id
	summary.Summary = event.Summary
	summary.Description = event.Description
	summary.Location = event.Location
	summary.Status = event.Status
	summary.Start = parseEventTime(event.Start)
	summary.End = parseEventTime(event.End)

	for _, att := range event.Attendees {
		summary.Attendees = append(summary.Attendees, AttendeeInfo{
			Email:          att.Email,
			ResponseStatus: att.ResponseStatus,
		})
	}

	if event.ConferenceData != nil {
		for _, ep := range event.ConferenceData.EntryPoints {
			if ep.EntryPointType == "video" {
				summary.MeetLink = ep.Uri
				break
			}
		}
	}

	return summary
}

// parseEventTime handles both timed events (DateTime) and all-day events
// (Date).
func parseEventTime(edt *calendar.EventDateTime) time.Time {
	if edt == nil {
		return time.Time{}
	}
	if edt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
			return t
		}
	}
	if edt.Date != "" {
		if t, err := time.Parse("2006-01-02", edt.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}
