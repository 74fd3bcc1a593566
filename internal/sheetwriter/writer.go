// =============================================================================
// Marketplace Export Converter - Sheet Writer Module
// =============================================================================
//
// This module renders mapped rows into the file a marketplace accepts. The
// document is built fully in memory; saving it is the caller's job, so a
// failed run never leaves a half-written file behind.
//
// XLSX LAYOUT (with a template header block of two rows):
//
//   Row 1    template row 1, copied verbatim
//   Row 2    template row 2, copied verbatim
//   Row 3    Schema columns, in order
//   Row 4..  one row per OutputRow
//
// CSV LAYOUT:
//   UTF-8 byte-order mark, header line, one line per OutputRow, using the
//   configured delimiter.
//
// Empty cells are never written, so numeric columns may mix numbers and
// blanks. Numbers are stored as numbers, text as text.
//
// =============================================================================

package sheetwriter

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/marketplace-export-converter/internal/config"
	"github.com/ginjaninja78/marketplace-export-converter/internal/types"
)

// utf8BOM marks CSV output as UTF-8 for spreadsheet tools.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// =============================================================================
// GENERATION OPTIONS
// =============================================================================

// Options controls the shape of the generated document.
type Options struct {
	// Format is config.FormatXLSX or config.FormatCSV.
	// Default: xlsx
	Format string

	// Sheet is the name of the XLSX sheet.
	// Default: "Sheet1"
	Sheet string

	// Preamble rows are written above the header, verbatim. XLSX only.
	Preamble [][]types.Cell

	// Delimiter separates CSV fields.
	// Default: ','
	Delimiter rune
}

// DefaultOptions returns the default generation options.
func DefaultOptions() Options {
	return Options{
		Format:    config.FormatXLSX,
		Sheet:     "Sheet1",
		Delimiter: ',',
	}
}

// withDefaults fills unset options.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Format == "" {
		o.Format = def.Format
	}
	if o.Sheet == "" {
		o.Sheet = def.Sheet
	}
	if o.Delimiter == 0 {
		o.Delimiter = def.Delimiter
	}
	return o
}

// =============================================================================
// GENERATION FUNCTIONS
// =============================================================================

// Generate renders rows under schema.
//
// PARAMETERS:
//   - rows: The mapped rows, in output order.
//   - schema: The output schema; it names the header line.
//   - opts: Format and layout options.
//
// RETURNS:
//   - The encoded document.
//   - An error if encoding fails or the format is unknown.
func Generate(rows []types.OutputRow, schema *types.Schema, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	switch opts.Format {
	case config.FormatXLSX:
		return generateXLSX(rows, schema, opts)
	case config.FormatCSV:
		return generateCSV(rows, schema, opts)
	default:
		return nil, fmt.Errorf("unknown output format %q", opts.Format)
	}
}

// generateXLSX builds a workbook with a single sheet.
func generateXLSX(rows []types.OutputRow, schema *types.Schema, opts Options) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), opts.Sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet %q: %w", opts.Sheet, err)
	}

	line := 1
	for _, preamble := range opts.Preamble {
		for col, cell := range preamble {
			if cell.IsEmpty() {
				continue
			}
			if err := setCell(f, opts.Sheet, col, line, cell.Value()); err != nil {
				return nil, err
			}
		}
		line++
	}

	for col, name := range schema.Columns() {
		if err := setCell(f, opts.Sheet, col, line, name); err != nil {
			return nil, err
		}
	}
	line++

	for _, row := range rows {
		for col, cell := range row.Cells() {
			if cell.IsEmpty() {
				continue
			}
			if err := setCell(f, opts.Sheet, col, line, cell.Value()); err != nil {
				return nil, err
			}
		}
		line++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// setCell writes one value at a 0-based column and 1-based row.
func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	name, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, name, value); err != nil {
		return fmt.Errorf("failed to write cell %s: %w", name, err)
	}
	return nil
}

// generateCSV writes a BOM-prefixed delimiter-separated document.
func generateCSV(rows []types.OutputRow, schema *types.Schema, opts Options) ([]byte, error) {
	var buffer bytes.Buffer
	buffer.Write(utf8BOM)

	w := csv.NewWriter(&buffer)
	w.Comma = opts.Delimiter

	if err := w.Write(schema.Columns()); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, schema.Len())
	for _, row := range rows {
		for i, cell := range row.Cells() {
			record[i] = cell.String()
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buffer.Bytes(), nil
}
