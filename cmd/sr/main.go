package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/secretreview/sr/internal/buildinfo"
	"github.com/secretreview/sr/internal/log"
)

var (
	verboseFlag bool
	debugFlag   bool
	quietFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "sr",
	Short: "Propose, review, and track environment secrets",
	Long: `sr is the command-line client for the secret review service.

Changes to an environment's variables are proposed from a local .env
file, reviewed in the dashboard, and applied on approval. sr works
with variable names and change metadata; it never prints secret
values.`,
	Version: buildinfo.Version(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
	},
}

// isTruthy reports whether an environment variable value means "on".
func isTruthy(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// determineLogLevel picks the slog level from the verbosity flags,
// then from SR_DEBUG/SR_VERBOSE/SR_QUIET. Flags win over environment;
// debug beats verbose beats quiet.
func determineLogLevel() slog.Level {
	if debugFlag {
		return slog.LevelDebug
	}
	if verboseFlag {
		return slog.LevelInfo
	}
	if quietFlag {
		return slog.LevelError
	}
	if isTruthy(os.Getenv("SR_DEBUG")) {
		return slog.LevelDebug
	}
	if isTruthy(os.Getenv("SR_VERBOSE")) {
		return slog.LevelInfo
	}
	if isTruthy(os.Getenv("SR_QUIET")) {
		return slog.LevelError
	}
	return slog.LevelWarn
}

// initLogging installs the process-wide logger. Diagnostics go to
// stderr so stdout stays parseable.
func initLogging() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: determineLogLevel(),
	})
	log.SetDefault(log.New(handler))
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Show informational messages")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Show debug output")
	rootCmd.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "Only show errors and results")

	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(proposeCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		exitWithCode(ExitUsage)
	}
}
