package calendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleStore is an EventStore backed by the Google Calendar API.
type GoogleStore struct {
	service *gcal.Service
}

// NewGoogleStore creates a Google Calendar client using the provided
// authenticated HTTP client.
func NewGoogleStore(ctx context.Context, httpClient *http.Client) (*GoogleStore, error) {
	service, err := gcal.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &GoogleStore{service: service}, nil
}

// ListEvents retrieves all events within the time window, following
// pagination. SingleEvents expands recurring events into instances so
// the delete sweep sees every occurrence.
func (c *GoogleStore) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]*gcal.Event, error) {
	var events []*gcal.Event
	pageToken := ""
	for {
		call := c.service.Events.List(calendarID).
			TimeMin(timeMin.Format(time.RFC3339)).
			TimeMax(timeMax.Format(time.RFC3339)).
			SingleEvents(true).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list events: %w", err)
		}
		events = append(events, resp.Items...)
		if resp.NextPageToken == "" {
			return events, nil
		}
		pageToken = resp.NextPageToken
	}
}

// DeleteEvent deletes a single event without sending notifications.
func (c *GoogleStore) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	err := c.service.Events.Delete(calendarID, eventID).
		SendUpdates("none").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return nil
}

// CreateAllDayEvent creates a date-only event on a single day.
func (c *GoogleStore) CreateAllDayEvent(ctx context.Context, calendarID, title string, date time.Time) error {
	_, err := c.service.Events.Insert(calendarID, buildAllDayEvent(title, date)).
		SendUpdates("none").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to create all-day event: %w", err)
	}

	return nil
}

// CreateTimedEvent creates an event with explicit start and end instants.
func (c *GoogleStore) CreateTimedEvent(ctx context.Context, calendarID, title string, start, end time.Time) error {
	_, err := c.service.Events.Insert(calendarID, buildTimedEvent(title, start, end)).
		SendUpdates("none").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to create timed event: %w", err)
	}

	return nil
}

// buildAllDayEvent constructs the API body for a one-day all-day event.
// The API's all-day end date is exclusive, hence the following day.
func buildAllDayEvent(title string, date time.Time) *gcal.Event {
	return &gcal.Event{
		Summary: title,
		Start:   &gcal.EventDateTime{Date: date.Format("2006-01-02")},
		End:     &gcal.EventDateTime{Date: date.AddDate(0, 0, 1).Format("2006-01-02")},
	}
}

func buildTimedEvent(title string, start, end time.Time) *gcal.Event {
	return &gcal.Event{
		Summary: title,
		Start:   &gcal.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:     &gcal.EventDateTime{DateTime: end.Format(time.RFC3339)},
	}
}
