// =============================================================================
// Marketplace Export Converter - Text/Numeric Normalizer
// =============================================================================
//
// Pure functions that coerce raw spreadsheet cell text into clean output
// values. None of them fail: unparseable input degrades to an empty cell or to
// an explicit default.
//
// =============================================================================

package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/ginjaninja78/marketplace-export-converter/internal/types"
)

// NumberKind selects how CoerceNumber builds its result.
type NumberKind int

const (
	// KindFloat keeps the parsed value as a float.
	KindFloat NumberKind = iota

	// KindInt truncates the parsed value toward zero ("20.9" -> 20).
	KindInt
)

// lineBreaks replaces every CR/LF sequence with one space.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// CleanText trims the value and replaces embedded line breaks with a single
// space. Missing cells arrive as "" and stay "".
//
// EXAMPLE:
//
//	CleanText(" a\nb\r") == "a b"
func CleanText(value string) string {
	return strings.TrimSpace(lineBreaks.Replace(strings.TrimSpace(value)))
}

// CoerceNumber parses value as a number of the given kind. Missing or
// non-numeric input yields types.Empty, which keeps "not applicable" distinct
// from zero.
func CoerceNumber(value string, kind NumberKind) types.Cell {
	f, ok := parseNumber(value)
	if !ok {
		return types.Empty
	}
	cell, ok := build(f, kind)
	if !ok {
		return types.Empty
	}
	return cell
}

// CoerceNumberOr is CoerceNumber with an explicit fallback used when parsing
// fails.
func CoerceNumberOr(value string, kind NumberKind, fallback float64) types.Cell {
	if f, ok := parseNumber(value); ok {
		if cell, ok := build(f, kind); ok {
			return cell
		}
	}
	cell, _ := build(fallback, kind)
	return cell
}

// int64 bounds as floats. 2^63 itself is out of range.
const (
	minInt = -(1 << 63)
	maxInt = 1 << 63
)

// build converts f to a cell of the given kind. An integer outside the
// int64 range is a parse failure.
func build(f float64, kind NumberKind) (types.Cell, bool) {
	if kind == KindInt {
		t := math.Trunc(f)
		if t < minInt || t >= maxInt {
			return types.Empty, false
		}
		return types.Int(int64(t)), true
	}
	return types.Float(f), true
}

// parseNumber accepts plain decimal notation (and exponents, which some
// spreadsheet tools emit for large raw values). NaN and infinities are
// rejected.
func parseNumber(value string) (float64, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
