// =============================================================================
// Marketplace Export Converter - Converter Module
// =============================================================================
//
// This module contains the conversion run. It orchestrates the pipeline for
// one marketplace target, from the source export to the written upload file.
//
// CONVERSION PIPELINE:
//   1. Read the raw source rows (XLSX sheet or CSV export)
//   2. Locate the header row and build the source table
//   3. Drop rows without a barcode, blank rows and repeated header lines
//   4. Resolve the target schema (built in, XLSX template or CSV template)
//   5. Map every kept row through the target's field table
//   6. Render the output document in memory
//   7. Write it atomically
//   8. Deliver a copy (best effort)
//
// A failure in steps 1-7 aborts the run before anything is written. Field
// level parse failures never abort; they become blanks or defaults.
//
// =============================================================================

package converter

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ginjaninja78/marketplace-export-converter/internal/config"
	"github.com/ginjaninja78/marketplace-export-converter/internal/csvparser"
	"github.com/ginjaninja78/marketplace-export-converter/internal/mapping"
	"github.com/ginjaninja78/marketplace-export-converter/internal/sheetwriter"
	"github.com/ginjaninja78/marketplace-export-converter/internal/targets"
	"github.com/ginjaninja78/marketplace-export-converter/internal/types"
	"github.com/ginjaninja78/marketplace-export-converter/internal/validation"
	"github.com/ginjaninja78/marketplace-export-converter/internal/xlsxparser"
	"github.com/ginjaninja78/marketplace-export-converter/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one conversion run.
type Result struct {
	// Target is the marketplace target name.
	Target string

	// RunID identifies the run in log lines.
	RunID string

	// Source is the export that was read.
	Source string

	// OutputFile is the written file. Empty if the run failed or was a
	// dry run.
	OutputFile string

	// DeliveredFile is the delivered copy, if any.
	DeliveredFile string

	// Success indicates whether the run completed.
	Success bool

	// Error contains the error if the run failed.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the run.
type ProcessingStats struct {
	// HeaderRow is the 0-based index of the located header row.
	HeaderRow int

	// RowsRead is the number of source rows below the header.
	RowsRead int

	// RowsWritten is the number of output rows.
	RowsWritten int

	// Skipped counts dropped rows by reason.
	Skipped map[validation.Reason]int

	// Columns is the number of output columns.
	Columns int

	// UnboundFields are field table columns the schema does not have.
	UnboundFields []string

	// TemplateEncoding is the encoding chosen for a CSV template.
	TemplateEncoding string

	// ProcessingTime is the time taken by the run.
	ProcessingTime time.Duration
}

// SkippedTotal returns the number of dropped rows.
func (s ProcessingStats) SkippedTotal() int {
	n := 0
	for _, c := range s.Skipped {
		n += c
	}
	return n
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter runs one marketplace target.
type Converter struct {
	name   string
	cfg    *config.Config
	target *config.TargetConfig
	files  *utils.FileManager
	logger *zap.Logger

	// DryRun runs the whole pipeline but skips writing and delivery.
	DryRun bool
}

// outputLayout is the resolved schema and document shape of a run.
type outputLayout struct {
	schema   *types.Schema
	sheet    string
	preamble [][]types.Cell
	encoding string
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a Converter for the named target.
//
// PARAMETERS:
//   - name: The target name.
//   - cfg: The loaded configuration.
//   - logger: The base logger. Nil disables logging.
//
// RETURNS:
//   - The converter.
//   - An error wrapping types.ErrUnknownTarget if the target is not
//     configured.
func New(name string, cfg *config.Config, logger *zap.Logger) (*Converter, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	target, ok := cfg.Targets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (configured: %s)", types.ErrUnknownTarget, name, strings.Join(cfg.TargetNames(), ", "))
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	files := utils.NewFileManager(cfg.DeliveryDir)
	files.UseTimestampSubdirs = cfg.DeliveryTimestampSubdirs

	return &Converter{
		name:   name,
		cfg:    cfg,
		target: target,
		files:  files,
		logger: logger,
	}, nil
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline.
//
// RETURNS:
//   - A Result describing the outcome. Result.Error is set on failure.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{
		Target: c.name,
		RunID:  uuid.New().String(),
		Source: c.cfg.SourcePathFor(c.name),
	}

	log := c.logger.With(
		zap.String("target", c.name),
		zap.String("run_id", result.RunID),
		zap.String("source", result.Source),
	)

	fail := func(err error) Result {
		result.Error = err
		result.Stats.ProcessingTime = time.Since(startTime)
		log.Error("Conversion failed", zap.Error(err))
		return result
	}

	log.Info("Starting conversion")

	// =========================================================================
	// STEP 1: BUILD TARGET
	// =========================================================================

	target, err := targets.Build(c.name, c.target)
	if err != nil {
		return fail(err)
	}

	// =========================================================================
	// STEP 2: READ SOURCE AND LOCATE HEADER
	// =========================================================================

	table, err := c.readSource(result.Source)
	if err != nil {
		return fail(fmt.Errorf("failed to read source: %w", err))
	}

	result.Stats.HeaderRow = table.HeaderIndex
	result.Stats.RowsRead = len(table.Rows)
	log.Debug("Located header row",
		zap.Int("header_row", table.HeaderIndex+1),
		zap.Int("rows", len(table.Rows)))

	// =========================================================================
	// STEP 3: FILTER ROWS
	// =========================================================================

	filter := validation.NewFilter(c.cfg.Source.RequiredColumn, c.target.HeaderMarkers)
	filtered := filter.Apply(table.Rows)
	result.Stats.Skipped = filtered.Counts()

	for _, skip := range filtered.Skipped {
		log.Debug("Skipped row", zap.Int("row", skip.RowNumber), zap.String("reason", string(skip.Reason)))
	}

	// =========================================================================
	// STEP 4: RESOLVE SCHEMA
	// =========================================================================

	layout, err := c.resolveLayout(target)
	if err != nil {
		return fail(fmt.Errorf("failed to read template: %w", err))
	}
	result.Stats.Columns = layout.schema.Len()
	result.Stats.TemplateEncoding = layout.encoding

	// =========================================================================
	// STEP 5: MAP ROWS
	// =========================================================================

	mapper, err := mapping.New(target.Table, layout.schema, c.target.TransformationRules)
	if err != nil {
		return fail(err)
	}

	result.Stats.UnboundFields = mapper.Unbound()
	if len(result.Stats.UnboundFields) > 0 {
		log.Warn("Fields without a matching column", zap.Strings("fields", result.Stats.UnboundFields))
	}

	rows := mapper.Map(filtered.Kept)
	result.Stats.RowsWritten = len(rows)

	// =========================================================================
	// STEP 6: RENDER DOCUMENT
	// =========================================================================

	document, err := sheetwriter.Generate(rows, layout.schema, sheetwriter.Options{
		Format:    c.target.OutputFormat,
		Sheet:     layout.sheet,
		Preamble:  layout.preamble,
		Delimiter: csvparser.DelimiterFrom(c.target.OutputDelimiter, ','),
	})
	if err != nil {
		return fail(fmt.Errorf("failed to render output: %w", err))
	}

	// =========================================================================
	// STEP 7: WRITE OUTPUT
	// =========================================================================

	outputPath := utils.GenerateOutputFileName(c.target.OutputPath, map[string]string{"target": c.name})
	log = log.With(zap.String("output", outputPath))

	if c.DryRun {
		log.Info("Dry run, output not written",
			zap.Int("rows_written", len(rows)),
			zap.String("skipped", validation.FormatCounts(result.Stats.Skipped)))
		result.Success = true
		result.Stats.ProcessingTime = time.Since(startTime)
		return result
	}

	if err := utils.WriteFileAtomic(outputPath, document); err != nil {
		return fail(fmt.Errorf("failed to write output: %w", err))
	}
	result.OutputFile = outputPath

	// =========================================================================
	// STEP 8: DELIVER
	// =========================================================================

	if delivered, err := c.files.Deliver(outputPath); err != nil {
		log.Warn("Delivery skipped", zap.Error(err))
	} else if delivered != "" {
		result.DeliveredFile = delivered
		log.Debug("Delivered output", zap.String("delivered", delivered))
	}

	// =========================================================================
	// COMPLETE
	// =========================================================================

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	log.Info("Conversion complete",
		zap.Int("rows_read", result.Stats.RowsRead),
		zap.Int("rows_written", result.Stats.RowsWritten),
		zap.String("skipped", validation.FormatCounts(result.Stats.Skipped)),
		zap.Duration("duration", result.Stats.ProcessingTime))

	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// readSource reads the export and builds the table below its header row.
// A .csv export is read as comma-separated UTF-8; anything else as a
// workbook.
func (c *Converter) readSource(path string) (*xlsxparser.Table, error) {
	var (
		rows [][]string
		err  error
	)

	if isCSV(path) {
		rows, err = csvparser.ReadRows(path, csvparser.Options{Delimiter: ',', Encoding: "utf-8"})
	} else {
		rows, err = xlsxparser.ReadRawRows(path, c.cfg.Source.Sheet)
	}
	if err != nil {
		return nil, err
	}

	headerIndex, err := xlsxparser.LocateHeaderRow(rows, xlsxparser.Locator{
		Markers:    c.target.HeaderMarkers,
		RequireAll: c.target.HeaderMatch == config.MatchAll,
		MaxRows:    c.cfg.Source.HeaderScanRows,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return xlsxparser.BuildTable(rows, headerIndex), nil
}

// resolveLayout returns the schema of the run. Built-in schemas win; else
// the template decides, by extension.
//
// TEMPLATE TYPES:
//   - .xlsx: columns at TemplateHeaderRow, PreambleRows copied verbatim,
//     output sheet named after the template sheet
//   - .csv:  columns on the first line; each configured encoding is tried
//     and the one matching most field columns is kept
func (c *Converter) resolveLayout(target *targets.Target) (*outputLayout, error) {
	if target.HasBuiltinSchema() {
		return &outputLayout{
			schema: types.NewSchema(target.Columns),
			sheet:  c.target.OutputSheet,
		}, nil
	}

	path := c.target.TemplatePath
	if path == "" {
		return nil, fmt.Errorf("%w: target %s needs template_path", types.ErrTemplateInvalid, c.name)
	}

	if isCSV(path) {
		fields := target.Table.Columns()
		tpl, err := csvparser.ReadTemplate(
			path,
			csvparser.DelimiterFrom(c.target.TemplateDelimiter, ';'),
			c.target.TemplateEncodings,
			func(columns []string) int { return mapping.CountMatches(fields, columns) },
		)
		if err != nil {
			return nil, err
		}
		c.logger.Debug("Decoded CSV template", zap.String("target", c.name), zap.String("encoding", tpl.Encoding))
		return &outputLayout{schema: types.NewSchema(tpl.Columns), encoding: tpl.Encoding}, nil
	}

	tpl, err := xlsxparser.ReadTemplate(path, c.target.TemplateSheet, c.target.TemplateHeaderRow, c.target.PreambleRows)
	if err != nil {
		return nil, err
	}

	sheet := c.target.OutputSheet
	if sheet == "" {
		sheet = tpl.Sheet
	}
	return &outputLayout{schema: types.NewSchema(tpl.Columns), sheet: sheet, preamble: tpl.Preamble}, nil
}

// isCSV reports whether path names a delimiter-separated file.
func isCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}
