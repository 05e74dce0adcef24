package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/preciouskayili/calendar-agent/internal/google"
)

const (
	// calendarPageLimit is the largest chunk the calendar-list endpoint
	// accepts per page.
	calendarPageLimit = 200

	// eventPageLimit is the largest chunk the events endpoint accepts per
	// page.
	eventPageLimit = 250
)

// UnconfiguredAccountError reports a client build for an account the
// credential store knows nothing about.
type UnconfiguredAccountError struct {
	Account string
}

func (e *UnconfiguredAccountError) Error() string {
	return fmt.Sprintf("account %q is not configured; authorize it first", e.Account)
}

// Client wraps the Google Calendar service for one account.
type Client struct {
	svc     *calendar.Service
	account string
}

// Account returns the account this client is bound to.
func (c *Client) Account() string {
	return c.account
}

// NewClientForAccount resolves the account's credential through the store and
// constructs a calendar client scoped to it. The client is built fresh per
// call; there is no pooling. Extra options are accepted so tests can point
// the client at a fake endpoint.
func NewClientForAccount(ctx context.Context, store *google.Store, account string, opts ...option.ClientOption) (*Client, error) {
	token := store.GetAccount(ctx, account)
	if token == nil {
		return nil, &UnconfiguredAccountError{Account: account}
	}

	tokenSource := store.OAuthConfig().TokenSource(ctx, token)
	clientOpts := append([]option.ClientOption{option.WithTokenSource(tokenSource)}, opts...)

	svc, err := calendar.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service for account %s: %w", account, err)
	}

	return &Client{svc: svc, account: account}, nil
}

// ListCalendars pages through the account's calendar list until maxResults
// entries are collected or the upstream runs out of pages. Each page requests
// at most min(200, remaining budget) items, so no more pages are fetched than
// the budget requires; the final page may overshoot the budget by less than
// one page size.
func (c *Client) ListCalendars(ctx context.Context, maxResults int) ([]CalendarInfo, error) {
	if maxResults <= 0 {
		return []CalendarInfo{}, nil
	}

	infos := []CalendarInfo{}
	pageToken := ""
	for {
		chunk := calendarPageLimit
		if remaining := maxResults - len(infos); remaining < chunk {
			chunk = remaining
		}

		call := c.svc.CalendarList.List().MaxResults(int64(chunk)).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		page, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list calendars: %w", err)
		}

		for _, entry := range page.Items {
			infos = append(infos, toCalendarInfo(entry))
		}
		if len(infos) >= maxResults {
			break
		}
		pageToken = page.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return infos, nil
}

// ListEvents pages through a calendar's events, ordered by start time with
// recurring series expanded to single occurrences, using the same
// budget-bounded pagination as ListCalendars with pages of at most 250.
func (c *Client) ListEvents(ctx context.Context, calendarID string, maxResults int) ([]EventSummary, error) {
	if maxResults <= 0 {
		return []EventSummary{}, nil
	}

	events := []EventSummary{}
	pageToken := ""
	for {
		chunk := eventPageLimit
		if remaining := maxResults - len(events); remaining < chunk {
			chunk = remaining
		}

		call := c.svc.Events.List(calendarID).
			MaxResults(int64(chunk)).
			SingleEvents(true).
			OrderBy("startTime").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		page, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list events: %w", err)
		}

		for _, event := range page.Items {
			events = append(events, toEventSummary(event))
		}
		if len(events) >= maxResults {
			break
		}
		pageToken = page.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return events, nil
}

// CreateCalendar creates a new calendar and returns its upstream-assigned
// identifier.
func (c *Client) CreateCalendar(ctx context.Context, displayName string) (*CalendarInfo, error) {
	created, err := c.svc.Calendars.Insert(&calendar.Calendar{Summary: displayName}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar: %w", err)
	}

	return &CalendarInfo{
		ID:          created.Id,
		Name:        created.Summary,
		Description: created.Description,
	}, nil
}

// InsertEvent inserts an event into the calendar. Start and end are
// timezone-qualified, attendees are mapped to the upstream's email-keyed
// structure, and when a Meet link is requested the conferencing request ID is
// derived deterministically from the start timestamp.
func (c *Client) InsertEvent(ctx context.Context, calendarID string, input EventInput) (*EventSummary, error) {
	timezone := input.TimeZone
	if timezone == "" {
		timezone = "UTC"
	}

	start := input.Start.Format(time.RFC3339)
	end := input.End.Format(time.RFC3339)

	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Location:    input.Location,
		Start:       &calendar.EventDateTime{DateTime: start, TimeZone: timezone},
		End:         &calendar.EventDateTime{DateTime: end, TimeZone: timezone},
		Attendees:   []*calendar.EventAttendee{},
	}
	for _, email := range input.Attendees {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: email})
	}

	call := c.svc.Events.Insert(calendarID, event).Context(ctx)
	if input.WithMeetLink {
		event.ConferenceData = &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId:             meetRequestID(start),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		}
		call = call.ConferenceDataVersion(1)
	}

	created, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}

	summary := toEventSummary(created)
	return &summary, nil
}

// meetRequestID derives the conferencing idempotency key from the event
// start timestamp: identical starts collide on the same request instead of
// creating duplicate Meet links.
func meetRequestID(start string) string {
	return "meet_" + strings.NewReplacer(":", "", "-", "").Replace(start)
}
