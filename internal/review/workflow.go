package review

import (
	"context"

	"github.com/XiaoConstantine/dspy-go/pkg/logging"
	"github.com/google/uuid"

	"github.com/dshills/dashreview/internal/config"
	"github.com/dshills/dashreview/internal/content"
	"github.com/dshills/dashreview/internal/redact"
	"github.com/dshills/dashreview/internal/tracker"
)

// IssueFinder finds the open review request for a subject.
type IssueFinder interface {
	Find(ctx context.Context, subject content.Subject) (*tracker.Issue, error)
}

// IssueCreator files a review request for a subject.
type IssueCreator interface {
	Create(ctx context.Context, subject content.Subject) (tracker.Issue, error)
}

// ConfirmFunc is asked before each creation. Returning false skips the
// subject; returning an error stops the batch.
type ConfirmFunc func(subject content.Subject) (bool, error)

// Workflow processes a batch of subjects.
type Workflow struct {
	finder  IssueFinder
	creator IssueCreator
	policy  string
	dryRun  bool
	confirm ConfirmFunc
	project *Project
	runID   string
	token   string
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithPolicy sets what happens after a failed creation: config.OnFailureHalt
// (the default) or config.OnFailureContinue.
func WithPolicy(policy string) Option {
	return func(w *Workflow) { w.policy = policy }
}

// WithDryRun searches but never creates.
func WithDryRun(dryRun bool) Option {
	return func(w *Workflow) { w.dryRun = dryRun }
}

// WithConfirm asks fn before each creation.
func WithConfirm(fn ConfirmFunc) Option {
	return func(w *Workflow) { w.confirm = fn }
}

// WithProject names the project in the report header.
func WithProject(name, url string) Option {
	return func(w *Workflow) {
		if name != "" {
			w.project = &Project{Name: name, URL: url}
		}
	}
}

// WithRunID fixes the run ID instead of generating one per run.
func WithRunID(id string) Option {
	return func(w *Workflow) { w.runID = id }
}

// WithRedactToken removes token from error text in entries and logs.
func WithRedactToken(token string) Option {
	return func(w *Workflow) { w.token = token }
}

// NewWorkflow creates a Workflow.
func NewWorkflow(finder IssueFinder, creator IssueCreator, opts ...Option) *Workflow {
	w := &Workflow{finder: finder, creator: creator, policy: config.OnFailureHalt}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run processes the subjects that need review, in order. Approved subjects
// are ignored. The returned report is never nil.
func (w *Workflow) Run(ctx context.Context, subjects []content.Subject) *Report {
	flagged := content.NeedsReview(subjects)
	report := &Report{
		RunID:       w.runID,
		Entries:     []Entry{},
		NeedsReview: len(flagged),
		DryRun:      w.dryRun,
	}
	if report.RunID == "" {
		report.RunID = uuid.NewString()
	}
	if len(flagged) == 0 {
		return report
	}
	report.Project = w.project

	logger := logging.GetLogger()
	for _, subject := range flagged {
		if err := ctx.Err(); err != nil {
			logger.Warn(ctx, "run %s cancelled: %v", report.RunID, err)
			report.Halted = true
			break
		}
		entry, halt := w.process(ctx, subject)
		report.Entries = append(report.Entries, entry)
		if halt {
			report.Halted = true
			break
		}
	}
	return report
}

// process handles one subject. halt reports whether the batch must stop.
func (w *Workflow) process(ctx context.Context, subject content.Subject) (entry Entry, halt bool) {
	logger := logging.GetLogger()
	id := subject.ID.String()
	entry = Entry{ID: id}

	if !subject.ID.IsValid() {
		logger.Debug(ctx, "skipping invalid identifier %s", id)
		entry.Outcome = OutcomeSkipped
		return entry, false
	}

	existing, err := w.finder.Find(ctx, subject)
	if err != nil {
		entry.Outcome = OutcomeSearchFailed
		entry.Error = w.scrub(err)
		logger.Warn(ctx, "search failed for %s: %s", id, entry.Error)
		return entry, false
	}
	if existing != nil {
		logger.Debug(ctx, "%s already requested at %s", id, existing.WebURL)
		entry.Outcome = OutcomeAlreadyRequested
		entry.URL = existing.WebURL
		return entry, false
	}

	if w.dryRun {
		entry.Outcome = OutcomeWouldCreate
		return entry, false
	}

	if w.confirm != nil {
		ok, err := w.confirm(subject)
		if err != nil {
			entry.Outcome = OutcomeDeclined
			entry.Error = w.scrub(err)
			return entry, true
		}
		if !ok {
			entry.Outcome = OutcomeDeclined
			return entry, false
		}
	}

	created, err := w.creator.Create(ctx, subject)
	if err != nil {
		entry.Outcome = OutcomeCreationFailed
		entry.Error = w.scrub(err)
		logger.Error(ctx, "creating review request for %s failed: %s", id, entry.Error)
		return entry, w.policy != config.OnFailureContinue
	}
	logger.Info(ctx, "created review request for %s: %s", id, created.WebURL)
	entry.Outcome = OutcomeCreated
	entry.URL = created.WebURL
	return entry, false
}

func (w *Workflow) scrub(err error) string {
	return redact.Token(err.Error(), w.token)
}

// RunWorkflow runs wf over subjects and returns the plain-text report and
// the number of subjects that needed review.
func RunWorkflow(ctx context.Context, wf *Workflow, subjects []content.Subject) (string, int) {
	report := wf.Run(ctx, subjects)
	return report.String(), report.NeedsReview
}
