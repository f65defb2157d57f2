package parse

import "strings"

// widthOffset is the distance between the full-width forms block
// (U+FF01..) and their ASCII counterparts.
const widthOffset = 0xFEE0

// ToHalfWidth maps full-width Latin letters, digits and the four
// punctuation marks ：；＜＞ to their half-width equivalents. Everything
// else passes through unchanged, including the hyphen variants ー and −
// which the entry parser treats as time-range separators.
func ToHalfWidth(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isFullWidthTarget(r) {
			b.WriteRune(r - widthOffset)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isFullWidthTarget(r rune) bool {
	switch {
	case r >= 'Ａ' && r <= 'Ｚ':
		return true
	case r >= 'ａ' && r <= 'ｚ':
		return true
	case r >= '０' && r <= '９':
		return true
	case r == '：' || r == '；' || r == '＜' || r == '＞':
		return true
	}
	return false
}
