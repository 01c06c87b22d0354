package content

import (
	"fmt"
	"strings"
)

// Status is the approval status assigned by the license classifier.
type Status string

const (
	StatusApproved   Status = "approved"
	StatusRestricted Status = "restricted"
	StatusUnknown    Status = "unknown"
)

// ParseStatus parses a status case-insensitively. An empty string is unknown.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approved":
		return StatusApproved, nil
	case "restricted":
		return StatusRestricted, nil
	case "", "unknown":
		return StatusUnknown, nil
	default:
		return StatusUnknown, fmt.Errorf("invalid status: %s", s)
	}
}

// Subject is a component paired with the evidence collected for it.
// Evidence order is collection order.
type Subject struct {
	ID       ID
	Status   Status
	Evidence []Evidence
}

// NeedsReview returns the subjects that are not approved, in input order.
func NeedsReview(subjects []Subject) []Subject {
	var out []Subject
	for _, s := range subjects {
		if s.Status != StatusApproved {
			out = append(out, s)
		}
	}
	return out
}
