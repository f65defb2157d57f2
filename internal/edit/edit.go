// Package edit implements the batch editors that rewrite the schedule
// grid itself: inserting or removing holiday names on matching dates and
// adding or removing a recurring weekly entry. Each operation reads the
// whole region once, mutates it in memory, and writes it back once, so a
// failure before the final write leaves the sheet untouched.
package edit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"yearcal/internal/grid"
	"yearcal/internal/sheet"
)

// WeekdayLabels are the single-character Japanese weekday names,
// Sunday first, matching time.Weekday numbering.
var WeekdayLabels = []string{"日", "月", "火", "水", "木", "金", "土"}

// WeekdayByLabel resolves a label like "月" to its weekday.
func WeekdayByLabel(label string) (time.Weekday, bool) {
	for i, l := range WeekdayLabels {
		if l == label {
			return time.Weekday(i), true
		}
	}
	return 0, false
}

// Holiday is one usable row of the holiday side table. DateKey is the
// "M/d" form both sides of the comparison are reduced to.
type Holiday struct {
	DateKey string
	Name    string
}

// Editor mutates the schedule grid through the tabular store.
type Editor struct {
	table sheet.TableStore
	loc   *time.Location
}

func NewEditor(table sheet.TableStore, loc *time.Location) *Editor {
	return &Editor{table: table, loc: loc}
}

// AddHolidays appends each holiday's name to the event cell of every
// date matching its month/day, unless already present as a comma
// segment. Returns the number of appended names.
func (e *Editor) AddHolidays(ctx context.Context) (int, error) {
	if err := e.checkYear(ctx); err != nil {
		return 0, err
	}
	holidays, err := e.loadHolidays(ctx)
	if err != nil {
		return 0, err
	}

	return e.rewrite(ctx, func(table [][]any) int {
		updated := 0
		for _, slot := range grid.Slots() {
			for row := 0; row < grid.Rows; row++ {
				date, ok := grid.CellDate(table[row][slot.DateCol], e.loc)
				if !ok {
					continue
				}
				key := fmt.Sprintf("%d/%d", int(date.Month()), date.Day())
				for _, h := range holidays {
					if h.DateKey != key {
						continue
					}
					current := grid.CellText(table[row][slot.EventCol])
					if hasSegment(current, h.Name) {
						continue
					}
					table[row][slot.EventCol] = appendSegment(current, h.Name)
					updated++
				}
			}
		}
		return updated
	})
}

// RemoveHolidays drops every comma segment exactly matching a known
// holiday name. Returns the number of modified cells.
func (e *Editor) RemoveHolidays(ctx context.Context) (int, error) {
	if err := e.checkYear(ctx); err != nil {
		return 0, err
	}
	holidays, err := e.loadHolidays(ctx)
	if err != nil {
		return 0, err
	}
	names := make([]string, len(holidays))
	for i, h := range holidays {
		names[i] = h.Name
	}

	return e.rewrite(ctx, func(table [][]any) int {
		updated := 0
		for _, slot := range grid.Slots() {
			for row := 0; row < grid.Rows; row++ {
				if _, ok := grid.CellDate(table[row][slot.DateCol], e.loc); !ok {
					continue
				}
				current := grid.CellText(table[row][slot.EventCol])
				if current == "" {
					continue
				}
				next, changed := removeSegments(current, names)
				if changed {
					table[row][slot.EventCol] = next
					updated++
				}
			}
		}
		return updated
	})
}

// AddWeekly appends text to every date cell falling on the given
// weekday, unless already present as a comma segment. Returns the
// number of modified cells.
func (e *Editor) AddWeekly(ctx context.Context, weekday time.Weekday, text string) (int, error) {
	if err := e.checkYear(ctx); err != nil {
		return 0, err
	}

	return e.rewrite(ctx, func(table [][]any) int {
		updated := 0
		for _, slot := range grid.Slots() {
			for row := 0; row < grid.Rows; row++ {
				date, ok := grid.CellDate(table[row][slot.DateCol], e.loc)
				if !ok || date.Weekday() != weekday {
					continue
				}
				current := grid.CellText(table[row][slot.EventCol])
				if hasSegment(current, text) {
					continue
				}
				table[row][slot.EventCol] = appendSegment(current, text)
				updated++
			}
		}
		return updated
	})
}

// RemoveWeekly drops every comma segment exactly matching text. Returns
// the number of modified cells.
func (e *Editor) RemoveWeekly(ctx context.Context, text string) (int, error) {
	if err := e.checkYear(ctx); err != nil {
		return 0, err
	}

	return e.rewrite(ctx, func(table [][]any) int {
		updated := 0
		for _, slot := range grid.Slots() {
			for row := 0; row < grid.Rows; row++ {
				if _, ok := grid.CellDate(table[row][slot.DateCol], e.loc); !ok {
					continue
				}
				current := grid.CellText(table[row][slot.EventCol])
				if current == "" {
					continue
				}
				next, changed := removeSegments(current, []string{text})
				if changed {
					table[row][slot.EventCol] = next
					updated++
				}
			}
		}
		return updated
	})
}

// rewrite runs a mutation over the normalized region and writes the
// whole region back only when something changed.
func (e *Editor) rewrite(ctx context.Context, mutate func(table [][]any) int) (int, error) {
	values, err := e.table.Read(ctx, grid.ScheduleRange)
	if err != nil {
		return 0, fmt.Errorf("failed to read schedule region: %w", err)
	}
	table := grid.Normalize(values, grid.Rows, grid.Cols)

	updated := mutate(table)
	if updated == 0 {
		return 0, nil
	}

	if err := e.table.Write(ctx, grid.ScheduleRange, table); err != nil {
		return 0, fmt.Errorf("failed to write schedule region: %w", err)
	}
	return updated, nil
}

// checkYear verifies the year cell holds a number before any editor
// touches the grid.
func (e *Editor) checkYear(ctx context.Context) error {
	values, err := e.table.Read(ctx, grid.YearCell)
	if err != nil {
		return fmt.Errorf("failed to read year cell: %w", err)
	}
	if len(values) == 0 || len(values[0]) == 0 {
		return ErrNoYear
	}
	switch v := values[0][0].(type) {
	case float64:
		return nil
	case string:
		if _, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return nil
		}
		return ErrNoYear
	default:
		return ErrNoYear
	}
}

// loadHolidays reads the side table and keeps rows with both a date and
// a name. The date cell may be a real date value or a string such as
// "4/29(水)"; the string form is keyed on the part before the bracket.
func (e *Editor) loadHolidays(ctx context.Context) ([]Holiday, error) {
	values, err := e.table.Read(ctx, grid.HolidayRange)
	if err != nil {
		return nil, fmt.Errorf("failed to read holiday table: %w", err)
	}

	var holidays []Holiday
	for _, row := range values {
		if len(row) < 3 {
			continue
		}
		name := strings.TrimSpace(grid.CellText(row[2]))
		if name == "" {
			continue
		}
		key := ""
		if date, ok := grid.CellDate(row[0], e.loc); ok {
			key = fmt.Sprintf("%d/%d", int(date.Month()), date.Day())
		} else if s := strings.TrimSpace(grid.CellText(row[0])); s != "" {
			key, _, _ = strings.Cut(s, "(")
		}
		if key == "" {
			continue
		}
		holidays = append(holidays, Holiday{DateKey: key, Name: name})
	}
	return holidays, nil
}
