package sku

import (
	"regexp"
	"strings"
)

// variantSuffix matches a trailing "-token" made of letters, digits or
// underscores (Turkish letters included).
var variantSuffix = regexp.MustCompile(`-[\p{L}\p{N}_]+$`)

// DeriveGroup returns the variant group id of a model code by removing one
// trailing "-suffix" ("ABC-1" -> "ABC", "ABC-red" -> "ABC").
//
// It must be fed the original model code, never an Allocator result.
func DeriveGroup(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	return variantSuffix.ReplaceAllString(code, "")
}
