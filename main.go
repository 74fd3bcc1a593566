// =============================================================================
// Marketplace Export Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point of the marketconv CLI. It initializes the
// Cobra CLI framework and delegates command execution to the cmd package.
//
// USAGE:
//   marketconv process [target...]  - Convert the export for the given targets
//   marketconv targets              - List targets and their resolved files
//   marketconv version              - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Conversion pipeline (parsing, mapping, writing)
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/marketplace-export-converter/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
