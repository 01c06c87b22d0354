package output

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/dashreview/internal/review"
)

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, report *review.Report) error
}

// Options tune WriteReport.
type Options struct {
	// Color enables ANSI colour in text output written to stdout.
	Color bool
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text", "":
		return &TextWriter{}, nil
	case "markdown":
		return &MarkdownWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteReport writes the report to the specified output (file path or stdout).
func WriteReport(report *review.Report, format, outPath string, opts Options) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	var w io.Writer
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
		if tw, ok := writer.(*TextWriter); ok {
			tw.Color = opts.Color
		}
	}

	return writer.Write(w, report)
}

// outcomeOrder fixes the order outcomes are summarised in.
var outcomeOrder = []review.Outcome{
	review.OutcomeCreated,
	review.OutcomeAlreadyRequested,
	review.OutcomeWouldCreate,
	review.OutcomeDeclined,
	review.OutcomeSkipped,
	review.OutcomeSearchFailed,
	review.OutcomeCreationFailed,
}
