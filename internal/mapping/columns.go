package mapping

import "strings"

// MatchColumn finds the schema column a field column fills.
//
// Names match when they are equal after trimming, or when they are equal
// after every rune outside Latin-1 is replaced with '?'. Templates exported
// through a Latin-1 code page carry "Ürün Ad?" where the field table says
// "Ürün Adı"; both spellings address the same column.
func MatchColumn(field string, columns []string) (string, bool) {
	field = strings.TrimSpace(field)

	for _, c := range columns {
		if strings.TrimSpace(c) == field {
			return c, true
		}
	}

	folded := Latin1Fold(field)
	for _, c := range columns {
		if Latin1Fold(strings.TrimSpace(c)) == folded {
			return c, true
		}
	}

	return "", false
}

// Latin1Fold replaces every rune above U+00FF with '?'.
func Latin1Fold(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xFF {
			return '?'
		}
		return r
	}, s)
}

// CountMatches returns how many of fields match one of columns.
func CountMatches(fields, columns []string) int {
	n := 0
	for _, f := range fields {
		if _, ok := MatchColumn(f, columns); ok {
			n++
		}
	}
	return n
}
