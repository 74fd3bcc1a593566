// =============================================================================
// Marketplace Export Converter - File Manager Utility
// =============================================================================
//
// This module provides file utilities for the converter, including:
//   - Atomic writes of generated documents
//   - Best-effort delivery of outputs to a second directory
//   - Output file naming with placeholders
//   - Processing summary files
//
// WRITE STRATEGY:
//   - The document is written to a temporary file next to its destination
//   - The temporary file is synced and renamed into place
//   - On any failure the temporary file is removed and the destination is
//     left as it was
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles delivery of finished outputs.
type FileManager struct {
	// DeliveryDir receives a copy of every written output. Empty disables
	// delivery.
	DeliveryDir string

	// UseTimestampSubdirs creates date-based subdirectories for deliveries.
	// Example: delivery/2026/01/15/N11_Yukleme_Final.xlsx
	UseTimestampSubdirs bool
}

// NewFileManager creates a FileManager delivering into deliveryDir.
func NewFileManager(deliveryDir string) *FileManager {
	return &FileManager{DeliveryDir: deliveryDir}
}

// Enabled reports whether a delivery directory is configured.
func (fm *FileManager) Enabled() bool {
	return fm != nil && fm.DeliveryDir != ""
}

// Deliver copies a written output into the delivery directory.
//
// PARAMETERS:
//   - filePath: The output file to deliver.
//
// RETURNS:
//   - The delivered path ("" when delivery is disabled).
//   - An error if the copy fails. Callers treat this as a warning.
func (fm *FileManager) Deliver(filePath string) (string, error) {
	if !fm.Enabled() {
		return "", nil
	}

	if !fileExists(filePath) {
		return "", fmt.Errorf("nothing to deliver at %s", filePath)
	}

	target := fm.deliveryPath(filePath)
	if samePath(filePath, target) {
		return target, nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", fmt.Errorf("failed to create delivery directory: %w", err)
	}

	if err := copyFile(filePath, target); err != nil {
		return "", fmt.Errorf("failed to copy %s to delivery directory: %w", filePath, err)
	}

	return target, nil
}

// deliveryPath constructs the delivery path for a file.
func (fm *FileManager) deliveryPath(filePath string) string {
	fileName := filepath.Base(filePath)

	if fm.UseTimestampSubdirs {
		now := time.Now()
		return filepath.Join(
			fm.DeliveryDir,
			fmt.Sprintf("%d", now.Year()),
			fmt.Sprintf("%02d", now.Month()),
			fmt.Sprintf("%02d", now.Day()),
			fileName,
		)
	}

	return filepath.Join(fm.DeliveryDir, fileName)
}

// =============================================================================
// ATOMIC WRITES
// =============================================================================

// WriteFileAtomic writes data to path through a temporary file in the same
// directory, so readers see either the old file or the complete new one.
//
// PARAMETERS:
//   - path: The destination file. Its directory is created if needed.
//   - data: The complete document.
//
// RETURNS:
//   - An error if any step fails; the destination is then untouched.
func WriteFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err = os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}

	return nil
}

// EnsureDir creates dir (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName expands placeholders in an output file name.
//
// PARAMETERS:
//   - format: The file name, optionally with placeholders:
//     {uuid}      - A random UUID
//     {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//     {date}      - Current date (YYYYMMDD)
//     {time}      - Current time (HHMMSS)
//     plus any key of params, e.g. {target}.
//   - params: A map of placeholder values.
//
// RETURNS:
//   - The expanded file name. A name without placeholders is returned as is.
//
// EXAMPLE:
//
//	format: "exports/{target}_{date}.xlsx"
//	params: {"target": "n11"}
//	output: "exports/n11_20260115.xlsx"
func GenerateOutputFileName(format string, params map[string]string) string {
	if !strings.Contains(format, "{") {
		return format
	}

	now := time.Now()

	replacements := map[string]string{
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	if strings.Contains(format, "{uuid}") {
		replacements["{uuid}"] = uuid.New().String()
	}

	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	return result
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary contains summary information about a processing run.
type ProcessingSummary struct {
	StartTime time.Time
	EndTime   time.Time
	Source    string
	Succeeded []TargetInfo
	Failed    []FailedTargetInfo
}

// TargetInfo describes one successful conversion.
type TargetInfo struct {
	Target      string
	OutputFile  string
	RowsRead    int
	RowsWritten int
	RowsSkipped int
	ProcessTime time.Duration
}

// FailedTargetInfo describes one failed conversion.
type FailedTargetInfo struct {
	Target       string
	ErrorMessage string
}

// WriteSummaryLog writes a processing summary to a text file.
//
// PARAMETERS:
//   - summary: The processing summary.
//   - outputDir: The directory to write the summary file.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary ProcessingSummary, outputDir string) (string, error) {
	if err := EnsureDir(outputDir); err != nil {
		return "", err
	}

	timestamp := summary.StartTime.Format("20060102_150405")
	summaryPath := filepath.Join(outputDir, fmt.Sprintf("processing_summary_%s.txt", timestamp))

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	duration := summary.EndTime.Sub(summary.StartTime)
	fmt.Fprintf(writer, "Marketplace Export Converter - Processing Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Source:         %s\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n\n"+
		"Statistics:\n"+
		"  Targets:        %d\n"+
		"  Successful:     %d\n"+
		"  Failed:         %d\n\n",
		summary.Source,
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		duration.String(),
		len(summary.Succeeded)+len(summary.Failed),
		len(summary.Succeeded),
		len(summary.Failed))

	if len(summary.Succeeded) > 0 {
		writer.WriteString("Successful Targets:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, t := range summary.Succeeded {
			fmt.Fprintf(writer, "  Target:       %s\n", t.Target)
			fmt.Fprintf(writer, "  Output:       %s\n", t.OutputFile)
			fmt.Fprintf(writer, "  Rows:         %d read, %d written, %d skipped\n", t.RowsRead, t.RowsWritten, t.RowsSkipped)
			fmt.Fprintf(writer, "  Process Time: %s\n\n", t.ProcessTime.String())
		}
	}

	if len(summary.Failed) > 0 {
		writer.WriteString("Failed Targets:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, f := range summary.Failed {
			fmt.Fprintf(writer, "  Target: %s\n", f.Target)
			fmt.Fprintf(writer, "  Error:  %s\n\n", f.ErrorMessage)
		}
	}

	writer.WriteString("================================================================================\n" +
		"End of Summary\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}

// samePath reports whether two paths name the same location.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// fileExists checks if a regular file exists.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
