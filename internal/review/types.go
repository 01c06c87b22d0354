package review

import (
	"fmt"
	"strings"
)

// Outcome is what happened to one subject during a run.
type Outcome string

const (
	OutcomeSkipped          Outcome = "skipped"
	OutcomeSearchFailed     Outcome = "search-failed"
	OutcomeAlreadyRequested Outcome = "already-requested"
	OutcomeWouldCreate      Outcome = "would-create"
	OutcomeDeclined         Outcome = "declined"
	OutcomeCreated          Outcome = "created"
	OutcomeCreationFailed   Outcome = "creation-failed"
)

// Failed reports whether the outcome is an error.
func (o Outcome) Failed() bool {
	return o == OutcomeSearchFailed || o == OutcomeCreationFailed
}

// AllVetted is printed when no content needs review.
const AllVetted = "Vetted license information was found for all content. No further investigation is required."

// Entry records the outcome for one subject.
type Entry struct {
	ID      string  `json:"id"`
	Outcome Outcome `json:"outcome"`
	URL     string  `json:"url,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// Line renders the entry the way it appears in the plain-text report.
func (e Entry) Line() string {
	switch e.Outcome {
	case OutcomeAlreadyRequested:
		return fmt.Sprintf("A review has already been requested for %s\n - %s", e.ID, e.URL)
	case OutcomeCreated:
		return fmt.Sprintf("A new review request was created for %s\n - %s", e.ID, e.URL)
	case OutcomeCreationFailed:
		return fmt.Sprintf("An error occurred while attempting to create a review request for %s", e.ID)
	case OutcomeSearchFailed:
		return fmt.Sprintf("An error occurred while searching for an existing review request for %s", e.ID)
	case OutcomeSkipped:
		return fmt.Sprintf("Skipping %s: the content identifier is not valid", e.ID)
	case OutcomeWouldCreate:
		return fmt.Sprintf("A review request would be created for %s", e.ID)
	case OutcomeDeclined:
		return fmt.Sprintf("Review request for %s was not created", e.ID)
	default:
		return e.ID
	}
}

// Project identifies the project whose content was reviewed.
type Project struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Report is the result of one workflow run.
type Report struct {
	RunID   string   `json:"runId"`
	Project *Project `json:"project,omitempty"`
	Entries []Entry  `json:"entries"`
	// NeedsReview is the number of subjects that needed review, whether or
	// not a request was filed for them.
	NeedsReview int  `json:"needsReview"`
	Halted      bool `json:"halted"`
	DryRun      bool `json:"dryRun,omitempty"`
}

// Count returns the number of entries with outcome o.
func (r *Report) Count(o Outcome) int {
	n := 0
	for _, e := range r.Entries {
		if e.Outcome == o {
			n++
		}
	}
	return n
}

// Failures returns the number of entries that ended in an error.
func (r *Report) Failures() int {
	n := 0
	for _, e := range r.Entries {
		if e.Outcome.Failed() {
			n++
		}
	}
	return n
}

// String renders the plain-text report. Every line ends with a newline.
func (r *Report) String() string {
	if r.NeedsReview == 0 {
		return AllVetted + "\n"
	}
	var sb strings.Builder
	if r.Project != nil && r.Project.Name != "" {
		fmt.Fprintf(&sb, "Project: [%s](%s)\n\n", r.Project.Name, r.Project.URL)
	}
	for _, e := range r.Entries {
		sb.WriteString(e.Line())
		sb.WriteString("\n")
	}
	return sb.String()
}
