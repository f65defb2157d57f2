// Package grid describes the fixed shape of the annual schedule sheet: a
// 31-row region holding twelve month slots (April through March), each a
// pair of adjacent columns with dates on the left and event text on the
// right. The slot table here feeds both the calendar sync scanner and
// the batch cell editors, so the layout lives in exactly one place.
package grid

import (
	"errors"
	"math"
	"time"
)

const (
	// Rows and Cols give the schedule region's fixed shape.
	Rows = 31
	Cols = 24

	// ScheduleRange is the schedule region: row 3, column A, 31x24.
	ScheduleRange = "A3:X33"
	// CalendarIDCell holds the target calendar's opaque ID.
	CalendarIDCell = "E1"
	// YearCell holds the academic year as a plain number.
	YearCell = "A1"
	// HolidayRange is the side table of (date, weekday, name) rows.
	HolidayRange = "AA2:AC1000"
)

// Slot identifies one month's column pair within the schedule region.
// Column offsets are 0-based relative to the region's left edge.
type Slot struct {
	Name     string
	DateCol  int
	EventCol int
}

// slots lists the twelve month slots in academic-year order. Date
// columns sit at even offsets 0,2,...,22 with the event column directly
// to the right.
var slots = [12]Slot{
	{Name: "4月", DateCol: 0, EventCol: 1},
	{Name: "5月", DateCol: 2, EventCol: 3},
	{Name: "6月", DateCol: 4, EventCol: 5},
	{Name: "7月", DateCol: 6, EventCol: 7},
	{Name: "8月", DateCol: 8, EventCol: 9},
	{Name: "9月", DateCol: 10, EventCol: 11},
	{Name: "10月", DateCol: 12, EventCol: 13},
	{Name: "11月", DateCol: 14, EventCol: 15},
	{Name: "12月", DateCol: 16, EventCol: 17},
	{Name: "1月", DateCol: 18, EventCol: 19},
	{Name: "2月", DateCol: 20, EventCol: 21},
	{Name: "3月", DateCol: 22, EventCol: 23},
}

// Slots returns all twelve month slots, April through March.
func Slots() []Slot {
	out := make([]Slot, len(slots))
	copy(out, slots[:])
	return out
}

// FirstHalf returns the April–September slots.
func FirstHalf() []Slot { return Slots()[:6] }

// SecondHalf returns the October–March slots.
func SecondHalf() []Slot { return Slots()[6:] }

// SlotByName looks a slot up by its month name, e.g. "4月".
func SlotByName(name string) (Slot, bool) {
	for _, s := range slots {
		if s.Name == name {
			return s, true
		}
	}
	return Slot{}, false
}

// ErrNoValidDates reports a scan subset without a single usable date
// cell; sync must abort before contacting the calendar service.
var ErrNoValidDates = errors.New("no valid dates found in the schedule")

// Entry is one (date, raw event text) pair produced by scanning.
type Entry struct {
	Slot Slot
	Row  int
	Date time.Time
	Text string
}

// Scan walks the given slots in order and, within each slot, rows top to
// bottom, yielding an Entry per cell whose date column holds a genuine
// date value. Cells with empty or non-date values are skipped entirely.
func Scan(table [][]any, subset []Slot, loc *time.Location) []Entry {
	var entries []Entry
	for _, slot := range subset {
		for row := 0; row < Rows && row < len(table); row++ {
			date, ok := CellDate(table[row][slot.DateCol], loc)
			if !ok {
				continue
			}
			entries = append(entries, Entry{
				Slot: slot,
				Row:  row,
				Date: date,
				Text: CellText(table[row][slot.EventCol]),
			})
		}
	}
	return entries
}

// DateRange returns the minimum and maximum dates present in the subset,
// with the end pushed to the last instant (23:59:59.999) of its day.
func DateRange(table [][]any, subset []Slot, loc *time.Location) (time.Time, time.Time, error) {
	var start, end time.Time
	for _, slot := range subset {
		for row := 0; row < Rows && row < len(table); row++ {
			date, ok := CellDate(table[row][slot.DateCol], loc)
			if !ok {
				continue
			}
			if start.IsZero() || date.Before(start) {
				start = date
			}
			if end.IsZero() || date.After(end) {
				end = date
			}
		}
	}
	if start.IsZero() {
		return time.Time{}, time.Time{}, ErrNoValidDates
	}
	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
	return start, end, nil
}

// sheetEpoch is the spreadsheet serial-number epoch (day 0).
func sheetEpoch(loc *time.Location) time.Time {
	return time.Date(1899, time.December, 30, 0, 0, 0, 0, loc)
}

// CellDate interprets a cell value as a calendar date. Date cells arrive
// from the tabular store as numeric serials (days since 1899-12-30);
// time.Time values are accepted as-is for in-memory tables. Strings and
// anything else are not dates.
func CellDate(v any, loc *time.Location) (time.Time, bool) {
	switch val := v.(type) {
	case float64:
		days := math.Floor(val)
		frac := val - days
		t := sheetEpoch(loc).AddDate(0, 0, int(days))
		if frac > 0 {
			t = t.Add(time.Duration(math.Round(frac*86400)) * time.Second)
		}
		return t, true
	case time.Time:
		return val.In(loc), true
	default:
		return time.Time{}, false
	}
}

// Serial converts a date back to its spreadsheet serial number. Editors
// use it so rewritten regions round-trip through the tabular store.
func Serial(t time.Time) float64 {
	epoch := sheetEpoch(t.Location())
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return math.Round(day.Sub(epoch).Hours() / 24)
}

// CellText renders a cell value as text; empty cells become "".
func CellText(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// Normalize pads a region read from the tabular store out to the given
// fixed shape. The remote API truncates trailing empty cells and rows.
func Normalize(values [][]any, rows, cols int) [][]any {
	out := make([][]any, rows)
	for i := 0; i < rows; i++ {
		row := make([]any, cols)
		for j := 0; j < cols; j++ {
			if i < len(values) && j < len(values[i]) {
				row[j] = values[i][j]
			} else {
				row[j] = ""
			}
		}
		out[i] = row
	}
	return out
}
