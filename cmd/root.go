// =============================================================================
// Marketplace Export Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (marketconv)
//   ├── processCmd (marketconv process)
//   ├── targetsCmd (marketconv targets)
//   └── versionCmd (marketconv version)
//
// CONFIGURATION:
//   Before any subcommand runs, the root command:
//   1. Loads an optional .env file
//   2. Loads the YAML configuration (--config, MARKETCONV_CONFIG)
//   3. Builds the zap logger
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/marketplace-export-converter/internal/config"
	"github.com/ginjaninja78/marketplace-export-converter/internal/logger"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// cfg is the loaded configuration, set by loadConfig.
var cfg *config.Config

// log is the application logger, set by loadConfig.
var log = zap.NewNop()

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "marketconv",
	Short: "Marketplace Export Converter - Turn a Trendyol export into marketplace upload files",
	Long: `Marketplace Export Converter reads a Trendyol product export and writes the
bulk upload files of other marketplaces.

Supported targets:
  - hepsiburada : fills the "3D Baskı Parçalar" XLSX template
  - n11         : N11 product upload workbook
  - pazarama    : Pazarama product list workbook
  - idefix      : fills the Idefix semicolon CSV template

Example Usage:
  marketconv process                      # Convert for every target
  marketconv process n11 pazarama         # Convert for selected targets
  marketconv process --config ./my.yaml   # Use a custom configuration file
  marketconv targets                      # Show targets and their files`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}
		return loadConfig(cmd)
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	log.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to the configuration file (default is $MARKETCONV_CONFIG or "+config.DefaultConfigFile+")",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}

// loadConfig loads .env, the configuration file and the logger.
//
// A configuration file named explicitly (flag or environment) must exist;
// the default one is optional and the built-in defaults apply without it.
func loadConfig(cmd *cobra.Command) error {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	path, optional := cfgFile, false
	if path == "" {
		path = os.Getenv("MARKETCONV_CONFIG")
	}
	if path == "" {
		path, optional = config.DefaultConfigFile, true
	}

	loaded, err := config.Load(path, optional)
	if err != nil {
		return err
	}

	level := loaded.LogLevel
	if verbose {
		level = "debug"
	}

	l, err := logger.New(loaded.Env, level)
	if err != nil {
		return err
	}

	cfg, log = loaded, l
	log.Debug("Configuration loaded",
		zap.String("config", path),
		zap.String("command", cmd.Name()),
		zap.Strings("targets", cfg.TargetNames()))

	return nil
}
