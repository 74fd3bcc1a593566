// =============================================================================
// Marketplace Export Converter - Version Command
// =============================================================================
//
// This file defines the 'version' command, which displays the application
// version and build information.
//
// COMMAND USAGE:
//   marketconv version
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version information, set at build time:
//   go build -ldflags "-X 'github.com/ginjaninja78/marketplace-export-converter/cmd.Version=1.1.0'"

// Version is the application version.
var Version = "1.0.0"

// BuildDate is the date the application was built.
var BuildDate = "unknown"

// versionCmd represents the 'version' command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Long:  `Display the application version, build date, and Go runtime version.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Marketplace Export Converter")
		fmt.Fprintf(out, "Version:    %s\n", Version)
		fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
		fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
