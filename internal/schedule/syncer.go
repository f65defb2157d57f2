// Package schedule implements the sheet-to-calendar synchronization: the
// spreadsheet is the source of truth, and each sync deletes every
// calendar event in the affected date window before recreating the
// window from the sheet's current contents.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	calclient "yearcal/internal/calendar"
	"yearcal/internal/grid"
	"yearcal/internal/parse"
	"yearcal/internal/sheet"
	"yearcal/internal/ui"
)

var (
	// ErrNoCalendarID means the calendar ID configuration cell is empty.
	// Nothing has been contacted or mutated when this is returned.
	ErrNoCalendarID = errors.New("calendar ID is not configured")
	// ErrCancelled means the operator declined the confirmation prompt.
	ErrCancelled = errors.New("cancelled by user")
)

// Report summarizes one sync invocation.
type Report struct {
	Start   time.Time
	End     time.Time
	Deleted int
	Created int
	Skipped int
}

// Syncer orchestrates the delete-then-recreate protocol against the
// calendar store. Both phases are best-effort and non-transactional:
// individual deletions may fail without stopping the sweep, and a failed
// create aborts the remaining creates without rolling anything back.
type Syncer struct {
	table    sheet.TableStore
	events   calclient.EventStore
	prompter ui.Prompter
	throttle Throttle
	loc      *time.Location
}

func NewSyncer(table sheet.TableStore, events calclient.EventStore, prompter ui.Prompter, throttle Throttle, loc *time.Location) *Syncer {
	return &Syncer{
		table:    table,
		events:   events,
		prompter: prompter,
		throttle: throttle,
		loc:      loc,
	}
}

// SyncFullYear replays all twelve month slots.
func (s *Syncer) SyncFullYear(ctx context.Context) (*Report, error) {
	msg := "行事予定をGoogleカレンダーに流し込んで良いですか？\n【注意】この操作は取り消せません！\nカレンダー内の予定（4月から翌年3月）はすべて削除されます！"
	return s.run(ctx, grid.Slots(), msg, false)
}

// SyncFirstHalf replays the April–September slots.
func (s *Syncer) SyncFirstHalf(ctx context.Context) (*Report, error) {
	msg := "前期（4-9月）の行事予定をGoogleカレンダーに流し込んで良いですか？\n【注意】この操作は取り消せません！\nカレンダー内の既存の予定（4月から9月）はすべて削除されます！"
	return s.run(ctx, grid.FirstHalf(), msg, false)
}

// SyncSecondHalf replays the October–March slots.
func (s *Syncer) SyncSecondHalf(ctx context.Context) (*Report, error) {
	msg := "後期（10-3月）の行事予定をGoogleカレンダーに流し込んで良いですか？\n【注意】この操作は取り消せません！\nカレンダー内の既存の予定（10月から翌年3月）はすべて削除されます！"
	return s.run(ctx, grid.SecondHalf(), msg, false)
}

// SyncMonth replays a single slot named "4月" through "3月". This is the
// only path that applies the overnight rollover correction to inverted
// time ranges.
func (s *Syncer) SyncMonth(ctx context.Context, monthName string) (*Report, error) {
	slot, ok := grid.SlotByName(monthName)
	if !ok {
		return nil, fmt.Errorf("unknown month %q", monthName)
	}
	msg := fmt.Sprintf("%sの行事予定をGoogleカレンダーに流し込んで良いですか？\n【注意】この操作は取り消せません！\nカレンダー内の既存の予定（%s）はすべて削除されます！", slot.Name, slot.Name)
	return s.run(ctx, []grid.Slot{slot}, msg, true)
}

func (s *Syncer) run(ctx context.Context, slots []grid.Slot, confirmMsg string, correctOvernight bool) (*Report, error) {
	calendarID, err := s.calendarID(ctx)
	if err != nil {
		return nil, err
	}

	ok, err := s.prompter.Confirm(confirmMsg)
	if err != nil {
		return nil, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	if !ok {
		return nil, ErrCancelled
	}

	values, err := s.table.Read(ctx, grid.ScheduleRange)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule region: %w", err)
	}
	table := grid.Normalize(values, grid.Rows, grid.Cols)

	start, end, err := grid.DateRange(table, slots, s.loc)
	if err != nil {
		return nil, err
	}

	report := &Report{Start: start, End: end}

	// Phase 1: best-effort delete sweep of the whole window. A fetch or
	// per-event delete failure is logged and the sync still proceeds to
	// the recreate phase.
	events, err := s.events.ListEvents(ctx, calendarID, start, end)
	if err != nil {
		log.Printf("Warning: failed to list events for deletion: %v", err)
	}
	log.Printf("deleting %d events between %s and %s",
		len(events), start.Format("2006/01/02"), end.Format("2006/01/02"))
	for _, event := range events {
		if err := s.events.DeleteEvent(ctx, calendarID, event.Id); err != nil {
			log.Printf("Warning: failed to delete event %s (%s): %v", event.Id, event.Summary, err)
			continue
		}
		report.Deleted++
		s.throttle.AfterDelete()
	}

	// Phase 2: replay the sheet in scan order. Entry-level parse
	// failures are skipped; a failed create call aborts what remains.
	for _, cell := range grid.Scan(table, slots, s.loc) {
		for _, entry := range parse.Entries(cell.Text) {
			if err := s.createEntry(ctx, calendarID, cell.Date, entry, correctOvernight, report); err != nil {
				return report, err
			}
		}
	}

	return report, nil
}

func (s *Syncer) createEntry(ctx context.Context, calendarID string, date time.Time, entry parse.Entry, correctOvernight bool, report *Report) error {
	if !entry.Timed {
		if err := s.events.CreateAllDayEvent(ctx, calendarID, entry.Title, date); err != nil {
			return fmt.Errorf("failed to create all-day event %q on %s: %w",
				entry.Title, date.Format("2006/01/02"), err)
		}
		report.Created++
		s.throttle.AfterCreate()
		return nil
	}

	start, end, err := ResolveTimed(date, entry.Start, entry.End, correctOvernight)
	if err != nil {
		log.Printf("Warning: skipping entry %q on %s: %v", entry.Title, date.Format("2006/01/02"), err)
		report.Skipped++
		return nil
	}
	if err := s.events.CreateTimedEvent(ctx, calendarID, entry.Title, start, end); err != nil {
		return fmt.Errorf("failed to create event %q on %s: %w",
			entry.Title, date.Format("2006/01/02"), err)
	}
	report.Created++
	s.throttle.AfterCreate()
	return nil
}

// calendarID reads the configured calendar ID from its fixed cell.
func (s *Syncer) calendarID(ctx context.Context) (string, error) {
	values, err := s.table.Read(ctx, grid.CalendarIDCell)
	if err != nil {
		return "", fmt.Errorf("failed to read calendar ID cell: %w", err)
	}
	id := ""
	if len(values) > 0 && len(values[0]) > 0 {
		id = strings.TrimSpace(grid.CellText(values[0][0]))
	}
	if id == "" {
		return "", ErrNoCalendarID
	}
	return id, nil
}
