package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Timezone is the fixed zone for all date-to-instant conversions.
const Timezone = "Asia/Tokyo"

// clockLayouts are the accepted time-of-day forms after the parser's
// colon normalization.
var clockLayouts = []string{"15:04", "15:04:05"}

// ResolveTimed combines a calendar date with start/end clock strings
// into concrete instants in the date's location.
//
// When correctOvernight is set and the end precedes the start (an entry
// spanning midnight, e.g. 23:00-00:30), the end advances by exactly one
// day; if the range is still inverted afterwards the entry is rejected.
// Without the flag the instants are returned as-is even when inverted;
// only the month-specific sync path self-corrects, and the full-year and
// half-year paths leave the inversion to the calendar service.
func ResolveTimed(date time.Time, startClock, endClock string, correctOvernight bool) (time.Time, time.Time, error) {
	start, err := atClock(date, startClock)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start time %q: %w", startClock, err)
	}
	end, err := atClock(date, endClock)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end time %q: %w", endClock, err)
	}

	if correctOvernight && start.After(end) {
		end = end.AddDate(0, 0, 1)
		if start.After(end) {
			return time.Time{}, time.Time{}, fmt.Errorf("start %s is after end %s even after overnight correction",
				start.Format("15:04"), end.Format("2006-01-02 15:04"))
		}
	}

	return start, end, nil
}

func atClock(date time.Time, clock string) (time.Time, error) {
	clock = strings.TrimSpace(clock)
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, clock)
		if err != nil {
			continue
		}
		return time.Date(date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), t.Second(), 0, date.Location()), nil
	}
	return time.Time{}, fmt.Errorf("cannot parse time of day %q", clock)
}
