package edit

import (
	"errors"
	"strings"
)

// ErrNoYear means the year cell does not hold a usable number.
var ErrNoYear = errors.New("year cell is not a number")

// hasSegment reports whether any comma segment of cell, trimmed, equals
// text exactly.
func hasSegment(cell, text string) bool {
	for _, seg := range strings.Split(cell, ",") {
		if strings.TrimSpace(seg) == text {
			return true
		}
	}
	return false
}

// appendSegment appends text to a cell's comma list. A cell already
// ending in a comma gains no extra separator, so hand-entered trailing
// commas do not produce empty segments.
func appendSegment(cell, text string) string {
	if cell == "" {
		return text
	}
	if strings.HasSuffix(strings.TrimSpace(cell), ",") {
		return cell + text
	}
	return cell + "," + text
}

// removeSegments drops every segment whose trimmed form equals one of
// the given texts. Remaining segments are kept byte for byte, so a
// remove after an add restores the original cell exactly.
func removeSegments(cell string, texts []string) (string, bool) {
	segments := strings.Split(cell, ",")
	kept := segments[:0:0]
	changed := false
	for _, seg := range segments {
		trimmed := strings.TrimSpace(seg)
		matched := false
		for _, text := range texts {
			if trimmed == text && text != "" {
				matched = true
				break
			}
		}
		if matched {
			changed = true
			continue
		}
		kept = append(kept, seg)
	}
	if !changed {
		return cell, false
	}
	return strings.Join(kept, ","), true
}
