package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/XiaoConstantine/dspy-go/pkg/logging"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dshills/dashreview/internal/cache"
	"github.com/dshills/dashreview/internal/config"
	"github.com/dshills/dashreview/internal/content"
	"github.com/dshills/dashreview/internal/describe"
	"github.com/dshills/dashreview/internal/output"
	"github.com/dshills/dashreview/internal/probe"
	"github.com/dshills/dashreview/internal/review"
	"github.com/dshills/dashreview/internal/tracker"
)

// Shared tracker flags
var (
	flagTracker      string
	flagHost         string
	flagRepository   string
	flagLabel        string
	flagProbeTimeout int
	flagNoCache      bool
)

// Review flags
var (
	flagFormat          string
	flagOut             string
	flagDryRun          bool
	flagConfirm         bool
	flagContinueOnError bool
	flagProjectName     string
	flagProjectURL      string
)

func addTrackerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagTracker, "tracker", "", "Issue tracker (gitlab, github)")
	cmd.Flags().StringVar(&flagHost, "host", "", "Tracker host URL")
	cmd.Flags().StringVar(&flagRepository, "repository", "", "Repository that holds review requests")
	cmd.Flags().StringVar(&flagLabel, "label", "", "Label applied to new review requests")
	cmd.Flags().IntVar(&flagProbeTimeout, "probe-timeout", 0, "Source availability probe timeout in seconds")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Do not read or record probe results in the cache")
}

func addReviewFlags(cmd *cobra.Command) {
	addTrackerFlags(cmd)
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, markdown, json)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Search for existing requests but do not create any")
	cmd.Flags().BoolVar(&flagConfirm, "confirm", false, "Ask before creating each review request")
	cmd.Flags().BoolVar(&flagContinueOnError, "continue-on-error", false, "Keep going after a review request cannot be created")
	cmd.Flags().StringVar(&flagProjectName, "project-name", "", "Project name shown in the report header")
	cmd.Flags().StringVar(&flagProjectURL, "project-url", "", "Project URL shown in the report header")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagTracker != "" {
		m["tracker"] = flagTracker
	}
	if flagHost != "" {
		m["host"] = flagHost
	}
	if flagRepository != "" {
		m["repository"] = flagRepository
	}
	if flagLabel != "" {
		m["label"] = flagLabel
	}
	if flagProbeTimeout > 0 {
		m["probeTimeout"] = strconv.Itoa(flagProbeTimeout)
	}
	if flagNoCache {
		m["cacheEnabled"] = "false"
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagContinueOnError {
		m["onCreateFailure"] = config.OnFailureContinue
	}
	if flagProjectName != "" {
		m["projectName"] = flagProjectName
	}
	if flagProjectURL != "" {
		m["projectURL"] = flagProjectURL
	}
	return m
}

// loadConfig loads and validates the effective configuration.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(buildOverrides())
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newBuilder creates a description builder that probes artifact hosts and
// links to the tracker's search.
func newBuilder(cfg config.Config) (*describe.Builder, error) {
	c, err := cache.New(cfg.Cache.Enabled, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	prober := probe.NewHTTP(time.Duration(cfg.Probe.TimeoutSeconds)*time.Second, probe.WithCache(c))
	return describe.New(prober, tracker.NewWebSearch(cfg.Tracker)), nil
}

// errNoToken is returned for every creation attempt made without a token.
var errNoToken = errors.New("no tracker token configured (set DASH_TOKEN)")

// authWatch records whether the tracker rejected the configured credentials.
// Searches run without a token; creation is refused when noToken is set.
type authWatch struct {
	finder  review.IssueFinder
	creator review.IssueCreator
	noToken bool
	failed  bool
	refused bool
}

func (a *authWatch) Find(ctx context.Context, s content.Subject) (*tracker.Issue, error) {
	issue, err := a.finder.Find(ctx, s)
	if tracker.IsAuthError(err) {
		a.failed = true
	}
	return issue, err
}

func (a *authWatch) Create(ctx context.Context, s content.Subject) (tracker.Issue, error) {
	if a.noToken {
		a.refused = true
		return tracker.Issue{}, errNoToken
	}
	issue, err := a.creator.Create(ctx, s)
	if tracker.IsAuthError(err) {
		a.failed = true
	}
	return issue, err
}

func workflowOptions(cfg config.Config, console *Console) []review.Option {
	opts := []review.Option{
		review.WithPolicy(cfg.OnCreateFailure),
		review.WithDryRun(flagDryRun),
		review.WithProject(cfg.Project.Name, cfg.Project.URL),
		review.WithRedactToken(cfg.Tracker.Token),
	}
	if flagConfirm {
		opts = append(opts, review.WithConfirm(console.ConfirmCreate))
	}
	return opts
}

func runReview(ctx context.Context, path string, cfg config.Config) {
	logger := logging.GetLogger()

	subjects, err := content.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	flagged := content.NeedsReview(subjects)
	logger.Info(ctx, "%d of %d item(s) need review", len(flagged), len(subjects))

	console := NewConsole(os.Stderr)
	var report *review.Report
	auth := &authWatch{noToken: cfg.Tracker.Token == ""}

	if len(flagged) == 0 {
		report = review.NewWorkflow(nil, nil, workflowOptions(cfg, console)...).Run(ctx, nil)
	} else {
		builder, err := newBuilder(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}
		err = tracker.Use(ctx, cfg.Tracker, func(client tracker.Client) error {
			auth.finder = review.NewFinder(client, cfg.Tracker.Repository)
			auth.creator = review.NewCreator(client, cfg.Tracker.Repository, cfg.Tracker.Label, builder)
			wf := review.NewWorkflow(auth, auth, workflowOptions(cfg, console)...)

			console.StartSpinner("Processing review requests")
			report = wf.Run(ctx, flagged)
			console.StopSpinner()
			return nil
		})
		if err != nil && report == nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}
		if err != nil {
			logger.Warn(ctx, "%v", err)
		}
	}

	color := isatty.IsTerminal(os.Stdout.Fd()) && os.Getenv("NO_COLOR") == ""
	if err := output.WriteReport(report, cfg.Format, flagOut, output.Options{Color: color}); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	switch {
	case auth.failed:
		fmt.Fprintln(os.Stderr, "Error: the tracker rejected the configured token")
		exitCode = ExitAuthError
	case auth.refused:
		fmt.Fprintln(os.Stderr, "Error: a tracker token is required to create review requests (set DASH_TOKEN or use --dry-run)")
		exitCode = ExitAuthError
	case ctx.Err() != nil:
		exitCode = ExitRuntimeError
	default:
		exitCode = reviewExitCode(report.NeedsReview)
	}
}

var reviewCmd = &cobra.Command{
	Use:   "review <file|->",
	Short: "Request reviews for content that needs one",
	Long: "Read classified content from a JSON or YAML file (or stdin with -), find an existing open review request " +
		"for every item that is not approved, and create one where none exists.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		runReview(cmd.Context(), args[0], cfg)
		return nil
	},
}

func init() {
	addReviewFlags(reviewCmd)
}
