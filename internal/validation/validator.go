// =============================================================================
// Marketplace Export Converter - Row Filter
// =============================================================================
//
// This module decides which source rows reach the Row Mapper. A row is
// skipped when:
//   1. every cell is blank (spacer rows between product blocks)
//   2. it repeats the header (a marker column holds its own column name,
//      as happens when exports are concatenated)
//   3. the required key column (the product barcode) is blank
//
// Skips are collected, not thrown: each one records the spreadsheet row and
// the reason, so the run can report what was dropped and continue.
//
// =============================================================================

package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ginjaninja78/marketplace-export-converter/internal/types"
)

// =============================================================================
// SKIP REASONS
// =============================================================================

// Reason classifies why a row was skipped.
type Reason string

const (
	// ReasonBlankRow marks a row whose cells are all blank.
	ReasonBlankRow Reason = "blank_row"

	// ReasonHeaderRemnant marks a repeated header line inside the data.
	ReasonHeaderRemnant Reason = "header_remnant"

	// ReasonMissingKey marks a row whose required key column is blank.
	ReasonMissingKey Reason = "missing_key"
)

// Skip records one skipped row.
type Skip struct {
	// RowNumber is the 1-based spreadsheet row.
	RowNumber int

	// Reason is why the row was skipped.
	Reason Reason

	// Column is the column that triggered the skip, if any.
	Column string
}

// String renders the skip for log output.
func (s *Skip) String() string {
	if s.Column == "" {
		return fmt.Sprintf("row %d: %s", s.RowNumber, s.Reason)
	}
	return fmt.Sprintf("row %d: %s (%s)", s.RowNumber, s.Reason, s.Column)
}

// =============================================================================
// FILTER RESULT
// =============================================================================

// Result is the outcome of filtering a source table.
type Result struct {
	// Kept are the rows that continue to mapping, in source order.
	Kept []types.SourceRow

	// Skipped lists every dropped row, in source order.
	Skipped []*Skip
}

// Counts returns the number of skips per reason.
func (r *Result) Counts() map[Reason]int {
	counts := make(map[Reason]int)
	for _, s := range r.Skipped {
		counts[s.Reason]++
	}
	return counts
}

// =============================================================================
// FILTER
// =============================================================================

// Filter drops rows that must not be mapped.
type Filter struct {
	// RequiredColumn must be non-blank in every kept row.
	RequiredColumn string

	// MarkerColumns are checked for repeated header lines. Only columns
	// present in the source header take part.
	MarkerColumns []string
}

// NewFilter creates a Filter.
func NewFilter(requiredColumn string, markerColumns []string) *Filter {
	return &Filter{RequiredColumn: requiredColumn, MarkerColumns: markerColumns}
}

// Apply filters rows.
//
// PARAMETERS:
//   - rows: The source rows below the header.
//
// RETURNS:
//   - The kept rows and the skip records.
func (f *Filter) Apply(rows []types.SourceRow) *Result {
	result := &Result{Kept: make([]types.SourceRow, 0, len(rows))}

	for _, row := range rows {
		if skip := f.check(row); skip != nil {
			result.Skipped = append(result.Skipped, skip)
			continue
		}
		result.Kept = append(result.Kept, row)
	}

	return result
}

// check returns the skip record for row, or nil when the row is kept.
func (f *Filter) check(row types.SourceRow) *Skip {
	number := row.Index + 1

	if row.IsBlank() {
		return &Skip{RowNumber: number, Reason: ReasonBlankRow}
	}

	for _, column := range f.MarkerColumns {
		if value, ok := row.Get(column); ok && strings.TrimSpace(value) == column {
			return &Skip{RowNumber: number, Reason: ReasonHeaderRemnant, Column: column}
		}
	}

	if f.RequiredColumn != "" && strings.TrimSpace(row.Value(f.RequiredColumn)) == "" {
		return &Skip{RowNumber: number, Reason: ReasonMissingKey, Column: f.RequiredColumn}
	}

	return nil
}

// =============================================================================
// REPORTING
// =============================================================================

// FormatCounts renders skip counts as "blank_row=1, missing_key=2", sorted
// by reason.
func FormatCounts(counts map[Reason]int) string {
	if len(counts) == 0 {
		return "none"
	}

	reasons := make([]string, 0, len(counts))
	for reason := range counts {
		reasons = append(reasons, string(reason))
	}
	sort.Strings(reasons)

	parts := make([]string, len(reasons))
	for i, reason := range reasons {
		parts[i] = fmt.Sprintf("%s=%d", reason, counts[Reason(reason)])
	}
	return strings.Join(parts, ", ")
}
