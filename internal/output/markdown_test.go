package output

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/dshills/dashreview/internal/review"
)

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	return string(data), err
}

func TestMarkdownWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownWriter{}).Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	out := buf.String()

	checks := []string{
		"## License Review Requests",
		"Project: [Dash](https://example.test/dash)",
		"| already-requested | 1 |",
		"| creation-failed | 1 |",
		"| **Needs review** | **3** |",
		"- :link: `npm/npmjs/-/a/1` [already-requested](https://tracker.test/issues/7)",
		"- :x: `npm/npmjs/-/b/2` creation-failed: creating issue: tracker returned status 500",
		"1 subject(s) were not attempted",
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "| created |") {
		t.Error("outcomes with zero count should be omitted")
	}
}

func TestMarkdownWriter_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownWriter{}).Write(&buf, &review.Report{}); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !strings.Contains(buf.String(), review.AllVetted) {
		t.Errorf("output = %q", buf.String())
	}
	if strings.Contains(buf.String(), "| Outcome |") {
		t.Error("empty report should not have a summary table")
	}
}

func TestMarkdownWriter_DryRun(t *testing.T) {
	report := &review.Report{
		NeedsReview: 1,
		DryRun:      true,
		Entries:     []review.Entry{{ID: "npm/npmjs/-/a/1", Outcome: review.OutcomeWouldCreate}},
	}
	var buf bytes.Buffer
	if err := (&MarkdownWriter{}).Write(&buf, report); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !strings.Contains(buf.String(), "Dry run") {
		t.Error("dry-run report should say so")
	}
}
