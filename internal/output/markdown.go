package output

import (
	"io"

	"github.com/dshills/dashreview/internal/review"
)

// MarkdownWriter outputs a Markdown report suitable for a CI summary or a
// project comment.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *review.Report) error {
	ew := &errWriter{w: w}

	ew.printf("## License Review Requests\n\n")
	if report.NeedsReview == 0 {
		ew.printf("%s :white_check_mark:\n", review.AllVetted)
		return ew.err
	}
	if report.Project != nil && report.Project.Name != "" {
		ew.printf("Project: [%s](%s)\n\n", report.Project.Name, report.Project.URL)
	}
	if report.DryRun {
		ew.printf("*Dry run: no review requests were created.*\n\n")
	}

	ew.printf("| Outcome | Count |\n")
	ew.printf("|---------|-------|\n")
	for _, o := range outcomeOrder {
		if n := report.Count(o); n > 0 {
			ew.printf("| %s | %d |\n", o, n)
		}
	}
	ew.printf("| **Needs review** | **%d** |\n\n", report.NeedsReview)

	for _, e := range report.Entries {
		ew.printf("- %s `%s`", mdOutcomeIcon(e.Outcome), e.ID)
		if e.URL != "" {
			ew.printf(" [%s](%s)", e.Outcome, e.URL)
		} else {
			ew.printf(" %s", e.Outcome)
		}
		if e.Error != "" {
			ew.printf(": %s", e.Error)
		}
		ew.printf("\n")
	}

	if report.Halted {
		if skipped := report.NeedsReview - len(report.Entries); skipped > 0 {
			ew.printf("\n> Processing stopped early; %d subject(s) were not attempted.\n", skipped)
		} else {
			ew.printf("\n> Processing stopped early.\n")
		}
	}
	return ew.err
}

func mdOutcomeIcon(o review.Outcome) string {
	switch o {
	case review.OutcomeCreated:
		return ":new:"
	case review.OutcomeAlreadyRequested:
		return ":link:"
	case review.OutcomeSearchFailed, review.OutcomeCreationFailed:
		return ":x:"
	case review.OutcomeWouldCreate:
		return ":memo:"
	default:
		return ":warning:"
	}
}
