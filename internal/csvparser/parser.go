// =============================================================================
// Marketplace Export Converter - CSV Parser Module
// =============================================================================
//
// This module reads delimiter-separated files:
//   - marketplace templates (e.g. the semicolon-separated Idefix upload
//     sheet) whose first line names the target columns
//   - source exports saved as .csv instead of .xlsx
//
// ENCODINGS:
//   Marketplace templates are often saved by Excel on Windows, so the same
//   file may arrive as Latin-1, Windows-1254 or UTF-8. A template is decoded
//   with each configured encoding and the header the caller rates best wins.
//
// =============================================================================

package csvparser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/marketplace-export-converter/internal/types"
)

// utf8BOM is stripped from the start of input before decoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// =============================================================================
// OPTIONS
// =============================================================================

// Options controls how a file is read.
type Options struct {
	// Delimiter separates fields. Defaults to ','.
	Delimiter rune

	// Encoding names the file encoding. Defaults to "utf-8".
	Encoding string
}

// DelimiterFrom converts a configured delimiter ("", ";", "tab", ...) to a
// rune. An empty value yields def.
func DelimiterFrom(value string, def rune) rune {
	switch value {
	case "":
		return def
	case "\\t", "tab", "TAB":
		return '\t'
	case "semicolon":
		return ';'
	case "pipe":
		return '|'
	default:
		return []rune(value)[0]
	}
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ReadRows reads every record of a delimiter-separated file.
//
// PARAMETERS:
//   - path: The file path.
//   - opts: Delimiter and encoding.
//
// RETURNS:
//   - The raw records. Rows may have differing field counts.
//   - An error wrapping types.ErrMissingFile, or a decode/parse error.
func ReadRows(path string, opts Options) ([][]string, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return decodeRows(data, opts)
}

// Template is the column list read from a CSV template.
type Template struct {
	// Columns are the names on the first line, in order.
	Columns []string

	// Encoding is the encoding that produced the chosen header.
	Encoding string
}

// ReadTemplate decodes a CSV template with each encoding and keeps the
// header that score rates highest. Ties go to the earlier encoding, and a
// header scoring zero is never chosen. A nil score takes the first header
// that decodes.
//
// PARAMETERS:
//   - path: The template path.
//   - delimiter: The field separator.
//   - encodings: Encoding names to try, in order.
//   - score: Rates decoded column names, e.g. by counting known columns.
//
// RETURNS:
//   - The template.
//   - An error wrapping types.ErrMissingFile or types.ErrTemplateInvalid.
func ReadTemplate(path string, delimiter rune, encodings []string, score func(columns []string) int) (*Template, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	if len(encodings) == 0 {
		encodings = []string{"utf-8"}
	}

	var (
		best      *Template
		bestScore int
		attempts  []string
	)
	for _, name := range encodings {
		rows, err := decodeRows(data, Options{Delimiter: delimiter, Encoding: name})
		if err != nil {
			attempts = append(attempts, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		if len(rows) == 0 {
			attempts = append(attempts, name+": empty file")
			continue
		}

		columns := cleanHeaders(rows[0])
		if len(columns) == 0 {
			attempts = append(attempts, name+": empty header")
			continue
		}
		if score == nil {
			return &Template{Columns: columns, Encoding: name}, nil
		}

		s := score(columns)
		if s == 0 {
			attempts = append(attempts, name+": no known column")
			continue
		}
		if best == nil || s > bestScore {
			best, bestScore = &Template{Columns: columns, Encoding: name}, s
		}
	}

	if best == nil {
		return nil, fmt.Errorf("%w: %s (%s)", types.ErrTemplateInvalid, path, strings.Join(attempts, "; "))
	}
	return best, nil
}

// =============================================================================
// DECODING
// =============================================================================

// Decoder returns the text decoder for an encoding name.
//
// SUPPORTED:
//   - "utf-8", "utf8"
//   - "latin1", "latin-1", "iso-8859-1"
//   - "windows-1254", "cp1254" (Turkish)
//   - "iso-8859-9", "latin5"
func Decoder(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8.NewDecoder(), nil
	case "latin1", "latin-1", "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder(), nil
	case "windows-1254", "cp1254":
		return charmap.Windows1254.NewDecoder(), nil
	case "iso-8859-9", "latin5":
		return charmap.ISO8859_9.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}

// decodeRows decodes data and parses it as CSV.
func decodeRows(data []byte, opts Options) ([][]string, error) {
	decoder, err := Decoder(opts.Encoding)
	if err != nil {
		return nil, err
	}

	decoded, _, err := transform.Bytes(decoder, bytes.TrimPrefix(data, utf8BOM))
	if err != nil {
		return nil, fmt.Errorf("failed to decode as %s: %w", opts.Encoding, err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	configureReader(reader, opts)

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		rows = append(rows, record)
	}

	return rows, nil
}

// configureReader applies the reading options.
func configureReader(reader *csv.Reader, opts Options) {
	reader.Comma = ','
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}

	// Allow variable number of fields per row.
	reader.FieldsPerRecord = -1

	// Exports quote inconsistently.
	reader.LazyQuotes = true
}

// cleanHeaders trims header names and drops blank ones.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, 0, len(headers))
	for _, h := range headers {
		if h = strings.TrimSpace(h); h != "" {
			cleaned = append(cleaned, h)
		}
	}
	return cleaned
}

// readFile reads path, mapping a missing file to types.ErrMissingFile.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", types.ErrMissingFile, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
