// =============================================================================
// Marketplace Export Converter - Dimension Parser
// =============================================================================
//
// Splits a free-text size token from the "Boyut/Ebat" column into length,
// width and height.
//
// INPUT FORMS:
//   "18x20"      -> length 18,   width 20
//   "10*15*5"    -> length 10,   width 15, height 5
//   "18,5x20cm"  -> length 18.5, width 20
//   "20"         -> height 20 (a single value is a height, not a length)
//   "10x15x5xfoo"-> length 10,   width 15, height 5 (extra parts ignored)
//
// Anything that does not reduce to numbers yields three empty values. The
// parser never reports an error.
//
// =============================================================================

package dimension

import (
	"strconv"
	"strings"
)

// separator is the canonical axis separator after normalization.
const separator = "x"

// cleaner lowers the noise in a size token before splitting.
var cleaner = strings.NewReplacer(
	"cm", "",
	",", ".",
	" ", "",
	"\t", "",
	"*", separator,
	"×", separator,
)

// Dimensions holds the three axes as text, each possibly empty.
type Dimensions struct {
	Length string
	Width  string
	Height string
}

// Parse splits text into Dimensions.
func Parse(text string) Dimensions {
	clean := cleaner.Replace(strings.ToLower(strings.TrimSpace(text)))
	if clean == "" {
		return Dimensions{}
	}

	parts := strings.Split(clean, separator)
	if len(parts) > 3 {
		parts = parts[:3]
	}
	for _, p := range parts {
		if !isAxis(p) {
			return Dimensions{}
		}
	}

	switch {
	case len(parts) == 3:
		return Dimensions{Length: parts[0], Width: parts[1], Height: parts[2]}
	case len(parts) == 2:
		return Dimensions{Length: parts[0], Width: parts[1]}
	default:
		return Dimensions{Height: parts[0]}
	}
}

// isAxis accepts an empty axis ("18x") or a plain decimal number.
func isAxis(p string) bool {
	if p == "" {
		return true
	}
	for _, r := range p {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	_, err := strconv.ParseFloat(p, 64)
	return err == nil
}
