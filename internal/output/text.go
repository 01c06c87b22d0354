package output

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"

	"github.com/dshills/dashreview/internal/review"
)

// TextWriter outputs the plain-text report. Without colour the output is
// exactly review.Report.String.
type TextWriter struct {
	Color bool
}

func (t *TextWriter) Write(w io.Writer, report *review.Report) error {
	if !t.Color {
		_, err := io.WriteString(w, report.String())
		return err
	}

	au := aurora.NewAurora(true)
	ew := &errWriter{w: w}
	if report.NeedsReview == 0 {
		ew.println(au.Green(review.AllVetted).String())
		return ew.err
	}
	if report.Project != nil && report.Project.Name != "" {
		ew.printf("%s [%s](%s)\n\n", au.Bold("Project:"), report.Project.Name, report.Project.URL)
	}
	for _, e := range report.Entries {
		ew.println(colorize(au, e.Outcome, e.Line()))
	}
	return ew.err
}

func colorize(au aurora.Aurora, o review.Outcome, s string) string {
	switch o {
	case review.OutcomeCreated:
		return au.Green(s).String()
	case review.OutcomeAlreadyRequested:
		return au.Cyan(s).String()
	case review.OutcomeSearchFailed, review.OutcomeCreationFailed:
		return au.Red(s).String()
	case review.OutcomeSkipped, review.OutcomeDeclined, review.OutcomeWouldCreate:
		return au.Yellow(s).String()
	default:
		return s
	}
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
