// Package cmd wires the bootstrap pipeline into the adtsetup CLI.
package cmd

import (
	"fmt"
	"os"

	"adtsetup/internal/config"
	"adtsetup/internal/logging"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "adtsetup",
	Short: "Bootstrap the ADT content-editing workspace",
	Long: `adtsetup prepares everything the ADT content editor needs before it
starts: it reconciles the environment configuration against its template,
synchronizes the declared ADT repositories, lets you pick the one to work
on, projects it into the input/output workspace, and finally waits for the
editing service and triggers its one-time initialization.`,
	SilenceUsage: true,
}

// Execute runs the CLI. Fatal pipeline errors exit non-zero with the
// diagnostic cobra printed.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads the settings and builds the application logger shared by all
// commands.
func setup() (*config.Settings, *logging.AppLogger, error) {
	logger := logging.NewAppLogger()

	if config.IsFirstRun() {
		logger.Info("First run, writing default settings")
	}

	settings, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load settings: %w", err)
	}
	logger.DebugObject("settings", settings)
	return settings, logger, nil
}
