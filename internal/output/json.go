package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/dashreview/internal/review"
)

// JSONWriter outputs the full report as JSON.
type JSONWriter struct{}

type jsonReport struct {
	*review.Report
	Counts map[review.Outcome]int `json:"counts"`
}

func (j *JSONWriter) Write(w io.Writer, report *review.Report) error {
	out := jsonReport{Report: report, Counts: map[review.Outcome]int{}}
	for _, o := range outcomeOrder {
		if n := report.Count(o); n > 0 {
			out.Counts[o] = n
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
