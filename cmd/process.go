// =============================================================================
// Marketplace Export Converter - Process Command
// =============================================================================
//
// This file defines the 'process' command, which converts the source export
// for one or more marketplace targets.
//
// COMMAND USAGE:
//   marketconv process [target...] [flags]
//
// FLAGS:
//   --dry-run      : Run the whole pipeline but do not write output files
//   --summary-dir  : Write a processing summary file into this directory
//
// PROCESSING:
//   Targets run one after another. A failed target is reported and the
//   remaining targets still run; the command exits non-zero if any failed.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/marketplace-export-converter/internal/converter"
	"github.com/ginjaninja78/marketplace-export-converter/internal/validation"
	"github.com/ginjaninja78/marketplace-export-converter/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun runs the pipeline without writing output files.
var dryRun bool

// summaryDir receives a processing summary file when set.
var summaryDir string

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process [target...]",
	Short: "Convert the source export for marketplace targets",
	Long: `The process command reads the source export, finds its header row, drops
rows without a barcode and writes the upload file of each target.

Without arguments every configured target is processed. Errors in one target
do not stop the others.

On success:
  - The output file is written atomically to the target's output_path
  - A copy is delivered to delivery_dir when configured

On error:
  - No output file is written for that target
  - The error is reported and the command exits non-zero`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Run the pipeline without writing output files",
	)

	processCmd.Flags().StringVar(
		&summaryDir,
		"summary-dir",
		"",
		"Write a processing summary file into this directory",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess converts the export for the named targets (all when empty).
func runProcess(out io.Writer, names []string) error {
	if len(names) == 0 {
		names = cfg.TargetNames()
	}

	summary := utils.ProcessingSummary{
		StartTime: time.Now(),
		Source:    cfg.Source.Path,
	}

	fmt.Fprintln(out, "=== Marketplace Export Converter ===")
	if dryRun {
		fmt.Fprintln(out, "Dry run: no files will be written")
	}

	for _, name := range names {
		conv, err := converter.New(name, cfg, log)
		if err != nil {
			summary.Failed = append(summary.Failed, utils.FailedTargetInfo{Target: name, ErrorMessage: err.Error()})
			fmt.Fprintf(out, "  ✗ %s: %v\n", name, err)
			continue
		}
		conv.DryRun = dryRun

		result := conv.Run()
		if !result.Success {
			summary.Failed = append(summary.Failed, utils.FailedTargetInfo{Target: result.Target, ErrorMessage: result.Error.Error()})
			fmt.Fprintf(out, "  ✗ %s: %v\n", result.Target, result.Error)
			continue
		}

		summary.Succeeded = append(summary.Succeeded, utils.TargetInfo{
			Target:      result.Target,
			OutputFile:  result.OutputFile,
			RowsRead:    result.Stats.RowsRead,
			RowsWritten: result.Stats.RowsWritten,
			RowsSkipped: result.Stats.SkippedTotal(),
			ProcessTime: result.Stats.ProcessingTime,
		})
		printResult(out, result)
	}

	summary.EndTime = time.Now()

	fmt.Fprintln(out, "\n=== Processing Complete ===")
	fmt.Fprintf(out, "Targets:         %d\n", len(names))
	fmt.Fprintf(out, "Successful:      %d\n", len(summary.Succeeded))
	fmt.Fprintf(out, "Errors:          %d\n", len(summary.Failed))
	fmt.Fprintf(out, "Time elapsed:    %s\n", summary.EndTime.Sub(summary.StartTime))

	if summaryDir != "" {
		path, err := utils.WriteSummaryLog(summary, summaryDir)
		if err != nil {
			log.Warn("Failed to write summary", zap.Error(err))
		} else {
			fmt.Fprintf(out, "Summary:         %s\n", path)
		}
	}

	if len(summary.Failed) > 0 {
		return fmt.Errorf("%d of %d target(s) failed", len(summary.Failed), len(names))
	}
	return nil
}

// printResult prints one successful run.
func printResult(out io.Writer, result converter.Result) {
	dest := result.OutputFile
	if dest == "" {
		dest = "(dry run)"
	}

	fmt.Fprintf(out, "  ✓ %s -> %s (%d rows, skipped: %s)\n",
		result.Target,
		dest,
		result.Stats.RowsWritten,
		validation.FormatCounts(result.Stats.Skipped))

	if result.DeliveredFile != "" {
		fmt.Fprintf(out, "      delivered to %s\n", result.DeliveredFile)
	}
}
