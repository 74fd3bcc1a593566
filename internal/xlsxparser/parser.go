// =============================================================================
// Marketplace Export Converter - XLSX Parser
// =============================================================================
//
// This module reads the Excel side of a conversion:
//   - the marketplace export (source workbook) as raw rows
//   - the header row inside those rows (Header Locator)
//   - the source table built from the located header
//   - an XLSX template: its column names and the rows above them
//
// SOURCE LAYOUT (typical export):
//
//   | Row | Content                                          |
//   |-----|--------------------------------------------------|
//   | 0   | "Ürünleriniz" (title)                            |
//   | 1   | (blank)                                          |
//   | 2   | Partner ID | Barkod | Model Kodu | Ürün Adı | ... |
//   | 3+  | product rows                                     |
//
// The header position varies between exports, so it is found by scanning for
// marker tokens instead of being configured as a fixed row.
//
// =============================================================================

package xlsxparser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/marketplace-export-converter/internal/types"
)

// =============================================================================
// HEADER LOCATOR
// =============================================================================

// Locator describes how the header row is recognised.
type Locator struct {
	// Markers are the column names that identify the header row.
	Markers []string

	// RequireAll accepts a row only when it carries every marker. When false,
	// a single marker is enough.
	RequireAll bool

	// MaxRows limits the scan to the first MaxRows rows. Zero scans all rows.
	MaxRows int
}

// LocateHeaderRow returns the index of the first row that matches loc.
//
// PARAMETERS:
//   - rows: Raw rows as read from the sheet.
//   - loc: The markers, match mode and scan depth.
//
// RETURNS:
//   - The 0-based header row index.
//   - An error wrapping types.ErrHeaderNotFound if no scanned row matches.
func LocateHeaderRow(rows [][]string, loc Locator) (int, error) {
	limit := len(rows)
	if loc.MaxRows > 0 && loc.MaxRows < limit {
		limit = loc.MaxRows
	}

	for i := 0; i < limit; i++ {
		if rowMatches(rows[i], loc) {
			return i, nil
		}
	}

	return -1, fmt.Errorf("%w: none of %v in the first %d rows", types.ErrHeaderNotFound, loc.Markers, limit)
}

// rowMatches reports whether a row carries the markers of loc.
func rowMatches(row []string, loc Locator) bool {
	if len(loc.Markers) == 0 {
		return false
	}

	cells := make(map[string]struct{}, len(row))
	for _, cell := range row {
		cells[strings.TrimSpace(cell)] = struct{}{}
	}

	found := 0
	for _, marker := range loc.Markers {
		if _, ok := cells[marker]; ok {
			if !loc.RequireAll {
				return true
			}
			found++
		}
	}

	return loc.RequireAll && found == len(loc.Markers)
}

// =============================================================================
// SOURCE TABLE
// =============================================================================

// Table is the source data below a located header row.
type Table struct {
	// HeaderIndex is the raw row index of the header.
	HeaderIndex int

	// Headers are the trimmed column names in sheet order.
	Headers []string

	// Rows are the data rows below the header. SourceRow.Index is the raw
	// row index, so messages can point at the spreadsheet line.
	Rows []types.SourceRow
}

// BuildTable re-reads rows with the header at headerIndex.
func BuildTable(rows [][]string, headerIndex int) *Table {
	table := &Table{HeaderIndex: headerIndex}
	if headerIndex < 0 || headerIndex >= len(rows) {
		return table
	}

	headers := make([]string, len(rows[headerIndex]))
	for i, h := range rows[headerIndex] {
		headers[i] = strings.TrimSpace(h)
	}
	table.Headers = headers

	for i := headerIndex + 1; i < len(rows); i++ {
		table.Rows = append(table.Rows, types.NewSourceRow(i, headers, rows[i]))
	}

	return table
}

// =============================================================================
// WORKBOOK READING
// =============================================================================

// ReadRawRows reads every row of a sheet without interpreting a header.
// Cell values are read raw (unformatted), so numbers keep their full
// precision and no currency or thousands formatting leaks into the data.
//
// PARAMETERS:
//   - path: The workbook path.
//   - sheet: The sheet name.
//
// RETURNS:
//   - The rows of the sheet. Trailing empty cells of a row are not returned.
//   - An error wrapping types.ErrMissingFile or types.ErrSheetNotFound, or
//     a read error.
func ReadRawRows(path, sheet string) ([][]string, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := requireSheet(f, path, sheet); err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %s: %w", sheet, err)
	}

	return rows, nil
}

// ReadSource reads a sheet, locates its header and builds the source table.
func ReadSource(path, sheet string, loc Locator) (*Table, error) {
	rows, err := ReadRawRows(path, sheet)
	if err != nil {
		return nil, err
	}

	headerIndex, err := LocateHeaderRow(rows, loc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return BuildTable(rows, headerIndex), nil
}

// =============================================================================
// TEMPLATE READING
// =============================================================================

// Template is the part of an XLSX marketplace template the converter needs.
type Template struct {
	// Sheet is the template sheet name. Output is written to a sheet with
	// the same name.
	Sheet string

	// Columns are the target column names, in template order.
	Columns []string

	// Preamble holds the rows copied verbatim above the output header.
	// Numeric cells keep their number type.
	Preamble [][]types.Cell
}

// ReadTemplate reads the column names and preamble rows of an XLSX template.
//
// PARAMETERS:
//   - path: The template workbook.
//   - sheet: The template sheet.
//   - headerRow: 0-based row holding the column names.
//   - preambleRows: How many leading rows to keep verbatim.
//
// RETURNS:
//   - The template.
//   - An error wrapping types.ErrMissingFile, types.ErrSheetNotFound or
//     types.ErrTemplateInvalid.
func ReadTemplate(path, sheet string, headerRow, preambleRows int) (*Template, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := requireSheet(f, path, sheet); err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read template rows: %w", err)
	}

	if headerRow >= len(rows) {
		return nil, fmt.Errorf("%w: %s has no row %d", types.ErrTemplateInvalid, path, headerRow+1)
	}

	var columns []string
	for _, cell := range rows[headerRow] {
		if name := strings.TrimSpace(cell); name != "" {
			columns = append(columns, name)
		}
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: header row %d of %s is empty", types.ErrTemplateInvalid, headerRow+1, path)
	}

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read template rows: %w", err)
	}

	preamble := make([][]types.Cell, 0, preambleRows)
	for i := 0; i < preambleRows; i++ {
		if i >= len(rows) {
			preamble = append(preamble, nil)
			continue
		}
		var rawRow []string
		if i < len(raw) {
			rawRow = raw[i]
		}
		row, err := preambleRow(f, sheet, i, rows[i], rawRow)
		if err != nil {
			return nil, err
		}
		preamble = append(preamble, row)
	}

	return &Template{Sheet: sheet, Columns: columns, Preamble: preamble}, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// preambleRow types the cells of one template row. A cell stored as a number
// becomes a number from its raw value; anything else keeps its displayed
// text.
func preambleRow(f *excelize.File, sheet string, index int, formatted, raw []string) ([]types.Cell, error) {
	cells := make([]types.Cell, len(formatted))
	for col, text := range formatted {
		if text == "" {
			cells[col] = types.Empty
			continue
		}
		cells[col] = types.Text(text)
		if col >= len(raw) {
			continue
		}

		name, err := excelize.CoordinatesToCellName(col+1, index+1)
		if err != nil {
			return nil, err
		}
		kind, err := f.GetCellType(sheet, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read template cell %s: %w", name, err)
		}
		if kind != excelize.CellTypeNumber && kind != excelize.CellTypeUnset {
			continue
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(raw[col]), 64); err == nil {
			cells[col] = types.Float(v)
		}
	}
	return cells, nil
}

// open opens a workbook, mapping a missing file to types.ErrMissingFile.
func open(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", types.ErrMissingFile, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return f, nil
}

// requireSheet fails with types.ErrSheetNotFound when sheet is absent.
func requireSheet(f *excelize.File, path, sheet string) error {
	for _, name := range f.GetSheetList() {
		if name == sheet {
			return nil
		}
	}
	return fmt.Errorf("%w: %q in %s (sheets: %s)", types.ErrSheetNotFound, sheet, path, strings.Join(f.GetSheetList(), ", "))
}
