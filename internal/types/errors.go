package types

import "errors"

// Fatal error categories of a conversion run. They are wrapped with context
// by the package that detects them; callers test with errors.Is.
var (
	// ErrMissingFile is returned when a required input or template file is absent.
	ErrMissingFile = errors.New("file not found")

	// ErrHeaderNotFound is returned when no scanned row carries the header markers.
	ErrHeaderNotFound = errors.New("header row not found")

	// ErrSheetNotFound is returned when a named sheet is absent from a workbook.
	ErrSheetNotFound = errors.New("sheet not found")

	// ErrTemplateInvalid is returned when a template yields no usable columns.
	ErrTemplateInvalid = errors.New("template has no usable columns")

	// ErrUnknownTarget is returned for a target name nobody registered.
	ErrUnknownTarget = errors.New("unknown target")
)
