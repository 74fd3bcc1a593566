// =============================================================================
// Marketplace Export Converter - Shared Types
// =============================================================================
//
// This package contains the data model shared by the ingestion, mapping and
// writing packages. Keeping it here avoids import cycles between:
//   - xlsxparser / csvparser (produce SourceRow and Schema)
//   - mapping                (consumes SourceRow, produces OutputRow)
//   - sheetwriter            (consumes Schema and OutputRow)
//
// =============================================================================

package types

import (
	"strconv"
	"strings"
)

// =============================================================================
// CELL
// =============================================================================

// cellKind identifies how a Cell is written to the output sheet.
type cellKind int

const (
	kindText cellKind = iota
	kindFloat
	kindInt
)

// Cell is a single output value. It is either text or a number.
//
// The empty text cell is the "not applicable" sentinel: it is written as a
// blank cell, never as "0" or "NaN". Numeric columns may therefore mix numbers
// and blanks.
type Cell struct {
	kind    cellKind
	text    string
	float   float64
	integer int64
}

// Empty is the blank cell.
var Empty = Cell{}

// Text returns a text cell.
func Text(s string) Cell {
	return Cell{kind: kindText, text: s}
}

// Float returns a floating point cell.
func Float(f float64) Cell {
	return Cell{kind: kindFloat, float: f}
}

// Int returns an integer cell.
func Int(i int64) Cell {
	return Cell{kind: kindInt, integer: i}
}

// IsEmpty reports whether the cell is the blank sentinel.
func (c Cell) IsEmpty() bool {
	return c.kind == kindText && c.text == ""
}

// IsNumber reports whether the cell holds a number.
func (c Cell) IsNumber() bool {
	return c.kind != kindText
}

// String renders the cell the way it appears in a delimiter-separated file.
// Floats use the shortest representation ("149.9", "150").
func (c Cell) String() string {
	switch c.kind {
	case kindFloat:
		return strconv.FormatFloat(c.float, 'f', -1, 64)
	case kindInt:
		return strconv.FormatInt(c.integer, 10)
	default:
		return c.text
	}
}

// Value returns the cell as a value suitable for a spreadsheet library:
// string, float64 or int64.
func (c Cell) Value() interface{} {
	switch c.kind {
	case kindFloat:
		return c.float
	case kindInt:
		return c.integer
	default:
		return c.text
	}
}

// =============================================================================
// SOURCE ROW
// =============================================================================

// SourceRow is one data row of the ingested marketplace export.
// Values are keyed by the (trimmed) header text of their column.
// A SourceRow is read-only once built.
type SourceRow struct {
	// Index is the 0-based row index in the source sheet.
	// Used for log messages only.
	Index int

	headers []string
	values  map[string]string
}

// NewSourceRow builds a SourceRow from a header line and the raw cells of a
// data line. Missing trailing cells are treated as absent. When the header
// contains the same name twice, the first column wins.
func NewSourceRow(index int, headers []string, cells []string) SourceRow {
	values := make(map[string]string, len(headers))
	ordered := make([]string, 0, len(headers))

	for i, header := range headers {
		if header == "" {
			continue
		}
		if _, dup := values[header]; dup {
			continue
		}
		ordered = append(ordered, header)
		if i < len(cells) {
			values[header] = cells[i]
		} else {
			values[header] = ""
		}
	}

	return SourceRow{Index: index, headers: ordered, values: values}
}

// Get returns the raw value of a column and whether the column exists.
func (r SourceRow) Get(column string) (string, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Value returns the raw value of a column, or "" when the column is absent.
func (r SourceRow) Value(column string) string {
	return r.values[column]
}

// Headers returns the column names in sheet order.
func (r SourceRow) Headers() []string {
	return r.headers
}

// IsBlank reports whether every cell of the row is empty or whitespace.
func (r SourceRow) IsBlank() bool {
	for _, v := range r.values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// SCHEMA
// =============================================================================

// Schema is the ordered list of target column names of one marketplace.
// Every OutputRow built from a Schema has exactly these columns.
type Schema struct {
	columns []string
	index   map[string]int
}

// NewSchema builds a Schema. Blank names are skipped and duplicates keep
// their first position.
func NewSchema(columns []string) *Schema {
	s := &Schema{index: make(map[string]int, len(columns))}
	for _, col := range columns {
		if col == "" {
			continue
		}
		if _, dup := s.index[col]; dup {
			continue
		}
		s.index[col] = len(s.columns)
		s.columns = append(s.columns, col)
	}
	return s
}

// Columns returns the column names in output order.
func (s *Schema) Columns() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

// Len returns the number of columns.
func (s *Schema) Len() int {
	return len(s.columns)
}

// Has reports whether the schema declares the column.
func (s *Schema) Has(column string) bool {
	_, ok := s.index[column]
	return ok
}

// =============================================================================
// OUTPUT ROW
// =============================================================================

// OutputRow is one transformed row. Its key set always equals its Schema:
// columns nobody set stay Empty, and columns outside the schema are rejected.
type OutputRow struct {
	schema *Schema
	cells  []Cell
}

// NewOutputRow returns a row with every schema column set to Empty.
func NewOutputRow(schema *Schema) OutputRow {
	return OutputRow{schema: schema, cells: make([]Cell, schema.Len())}
}

// Set assigns a column. It returns false when the schema has no such column.
func (r OutputRow) Set(column string, value Cell) bool {
	i, ok := r.schema.index[column]
	if !ok {
		return false
	}
	r.cells[i] = value
	return true
}

// Get returns the value of a column (Empty when unknown).
func (r OutputRow) Get(column string) Cell {
	if i, ok := r.schema.index[column]; ok {
		return r.cells[i]
	}
	return Empty
}

// Has reports whether the row's schema declares the column.
func (r OutputRow) Has(column string) bool {
	return r.schema.Has(column)
}

// Columns returns the row's column names in schema order.
func (r OutputRow) Columns() []string {
	return r.schema.Columns()
}

// Cells returns the values in schema order.
func (r OutputRow) Cells() []Cell {
	out := make([]Cell, len(r.cells))
	copy(out, r.cells)
	return out
}
