package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/XiaoConstantine/dspy-go/pkg/logging"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dshills/dashreview/internal/config"
)

const version = "0.1.0"

// Exit codes. Values up to MaxReviewExit report how many components need
// review.
const (
	ExitSuccess      = 0
	MaxReviewExit    = 100
	ExitUsageError   = 101
	ExitAuthError    = 102
	ExitRuntimeError = 103
)

var (
	flagDebug   bool
	flagVerbose bool
	flagEnvFile string
)

var rootCmd = &cobra.Command{
	Use:   "dashreview",
	Short: "License review request CLI",
	Long: "dashreview files license review requests for third-party content that could not be vetted automatically, " +
		"skipping content that already has an open request.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(flagEnvFile); err != nil {
			return err
		}
		setupLogging(flagDebug, flagVerbose)
		return nil
	},
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// reviewExitCode maps the number of components needing review to an exit code.
func reviewExitCode(needsReview int) int {
	if needsReview > MaxReviewExit {
		return MaxReviewExit
	}
	return needsReview
}

func setupLogging(debug, verbose bool) {
	level := logging.WARN
	switch {
	case debug:
		level = logging.DEBUG
	case verbose:
		level = logging.INFO
	}
	out := logging.NewConsoleOutput(true, logging.WithColor(isatty.IsTerminal(os.Stderr.Fd())))
	logging.SetLogger(logging.NewLogger(logging.Config{
		Severity: level,
		Outputs:  []logging.Output{out},
	}))
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print dashreview version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "dashreview version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log progress to stderr")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "Environment file to load before reading configuration")
}
