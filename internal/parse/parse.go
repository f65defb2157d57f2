// Package parse turns raw schedule-cell text into individual event
// entries. A cell may hold several comma-separated entries, each either a
// plain title (an all-day event) or a title with an embedded time range,
// e.g. 会議<10:00-12:00>. Input frequently uses full-width characters.
package parse

import "strings"

// timeSeparators are the accepted start/end separators inside a time
// span. ToHalfWidth leaves all three untouched, so each must be checked.
var timeSeparators = []string{"-", "ー", "−"}

// Entry is one parsed schedule entry. Start and End are clock strings
// such as "10:00"; they are only meaningful when Timed is set. The
// strings are not validated here. Resolving them against a date happens
// downstream, where a malformed value fails just that entry.
type Entry struct {
	Title string
	Timed bool
	Start string
	End   string
}

// Entries splits a raw cell value into its entries, in left-to-right
// order. Empty segments between commas are dropped.
func Entries(raw string) []Entry {
	var entries []Entry
	for _, seg := range strings.Split(raw, ",") {
		if seg == "" {
			continue
		}
		s := ToHalfWidth(seg)
		lt := strings.Index(s, "<")
		if lt < 0 {
			// No time span: the whole segment, embedded '>' and all,
			// is an all-day title.
			title := strings.TrimSpace(s)
			if title == "" {
				continue
			}
			entries = append(entries, Entry{Title: title})
			continue
		}
		entry := Entry{Title: strings.TrimSpace(s[:lt]), Timed: true}
		span := ""
		if gt := strings.Index(s[lt+1:], ">"); gt >= 0 {
			span = s[lt+1 : lt+1+gt]
		}
		entry.Start, entry.End = splitSpan(span)
		entries = append(entries, entry)
	}
	return entries
}

// splitSpan cuts a time span on the first hyphen-variant occurrence.
// With no separator the whole span becomes the start time and the end
// stays empty, which fails downstream resolution as intended.
func splitSpan(span string) (start, end string) {
	idx := -1
	width := 0
	for _, sep := range timeSeparators {
		if i := strings.Index(span, sep); i >= 0 && (idx < 0 || i < idx) {
			idx = i
			width = len(sep)
		}
	}
	if idx < 0 {
		return fixClock(span), ""
	}
	return fixClock(span[:idx]), fixClock(span[idx+width:])
}

// fixClock substitutes the first colon look-alike (：, ; or ；) with a
// plain colon. Only the first occurrence is replaced.
func fixClock(s string) string {
	idx := -1
	width := 0
	for _, alt := range []string{"：", ";", "；"} {
		if i := strings.Index(s, alt); i >= 0 && (idx < 0 || i < idx) {
			idx = i
			width = len(alt)
		}
	}
	if idx < 0 {
		return s
	}
	return s[:idx] + ":" + s[idx+width:]
}
