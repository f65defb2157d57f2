package schedule

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"yearcal/internal/grid"
	"yearcal/internal/parse"
	"yearcal/internal/sheet"
)

// Exporter renders the parsed schedule to iCalendar without touching the
// remote calendar. It runs the same scan/parse/resolve pipeline as the
// sync, so an export doubles as an offline dry run.
type Exporter struct {
	table sheet.TableStore
	loc   *time.Location
}

func NewExporter(table sheet.TableStore, loc *time.Location) *Exporter {
	return &Exporter{table: table, loc: loc}
}

// Export writes one VEVENT per schedule entry in the given slots and
// returns the number of events written. Unresolvable timed entries are
// skipped with a warning, as in the sync's month path.
func (e *Exporter) Export(ctx context.Context, slots []grid.Slot, w io.Writer) (int, error) {
	values, err := e.table.Read(ctx, grid.ScheduleRange)
	if err != nil {
		return 0, fmt.Errorf("failed to read schedule region: %w", err)
	}
	table := grid.Normalize(values, grid.Rows, grid.Cols)

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//yearcal//JP")

	count := 0
	now := time.Now()
	for _, cell := range grid.Scan(table, slots, e.loc) {
		for _, entry := range parse.Entries(cell.Text) {
			vevent, err := buildVEvent(cell.Date, entry, now)
			if err != nil {
				log.Printf("Warning: skipping entry %q on %s: %v", entry.Title, cell.Date.Format("2006/01/02"), err)
				continue
			}
			cal.Children = append(cal.Children, vevent)
			count++
		}
	}

	if count == 0 {
		return 0, grid.ErrNoValidDates
	}
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return 0, fmt.Errorf("failed to encode iCalendar: %w", err)
	}
	return count, nil
}

func buildVEvent(date time.Time, entry parse.Entry, stamp time.Time) (*ical.Component, error) {
	vevent := ical.NewComponent(ical.CompEvent)
	vevent.Props.SetText(ical.PropUID, uuid.NewString()+"@yearcal")
	vevent.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	if entry.Title != "" {
		vevent.Props.SetText(ical.PropSummary, entry.Title)
	}

	if !entry.Timed {
		dtstart := ical.NewProp(ical.PropDateTimeStart)
		dtstart.SetDate(date)
		vevent.Props.Set(dtstart)
		dtend := ical.NewProp(ical.PropDateTimeEnd)
		dtend.SetDate(date.AddDate(0, 0, 1))
		vevent.Props.Set(dtend)
		return vevent, nil
	}

	start, end, err := ResolveTimed(date, entry.Start, entry.End, true)
	if err != nil {
		return nil, err
	}
	vevent.Props.SetDateTime(ical.PropDateTimeStart, start)
	vevent.Props.SetDateTime(ical.PropDateTimeEnd, end)
	return vevent, nil
}
