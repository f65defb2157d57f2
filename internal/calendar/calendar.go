// Package calendar wraps the hosted calendar service.
package calendar

import (
	"context"
	"time"

	gcal "google.golang.org/api/calendar/v3"
)

// EventStore is the calendar surface the sync needs: enumerate a window,
// delete individual events, and create all-day or timed events. Events
// carry no identity across syncs; every run recreates them from scratch.
type EventStore interface {
	ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]*gcal.Event, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
	CreateAllDayEvent(ctx context.Context, calendarID, title string, date time.Time) error
	CreateTimedEvent(ctx context.Context, calendarID, title string, start, end time.Time) error
}
