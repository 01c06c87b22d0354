package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/dashreview/internal/content"
	"github.com/dshills/dashreview/internal/tracker"
)

// fakeTracker is an in-memory tracker.Client.
type fakeTracker struct {
	issues     []tracker.Issue
	searchErr  map[string]error
	createErr  map[string]error
	searches   []string
	created    []tracker.NewIssue
	repository string
	closed     bool
}

func newFakeTracker(issues ...tracker.Issue) *fakeTracker {
	return &fakeTracker{issues: issues, searchErr: map[string]error{}, createErr: map[string]error{}}
}

// SearchOpenIssues mimics a substring title search.
func (f *fakeTracker) SearchOpenIssues(_ context.Context, repository, title string) ([]tracker.Issue, error) {
	f.repository = repository
	f.searches = append(f.searches, title)
	if err := f.searchErr[title]; err != nil {
		return nil, err
	}
	var out []tracker.Issue
	for _, is := range f.issues {
		if strings.Contains(is.Title, title) && is.State == tracker.StateOpened {
			out = append(out, is)
		}
	}
	return out, nil
}

func (f *fakeTracker) CreateIssue(_ context.Context, repository string, req tracker.NewIssue) (tracker.Issue, error) {
	f.repository = repository
	if err := f.createErr[req.Title]; err != nil {
		return tracker.Issue{}, err
	}
	f.created = append(f.created, req)
	n := len(f.issues) + 1
	issue := tracker.Issue{
		Number: n,
		Title:  req.Title,
		WebURL: fmt.Sprintf("https://tracker.test/issues/%d", n),
		State:  tracker.StateOpened,
		Labels: req.Labels,
	}
	f.issues = append(f.issues, issue)
	return issue, nil
}

func (f *fakeTracker) Close() error {
	f.closed = true
	return nil
}

var errUnreachable = &tracker.TransportError{Op: "test", Err: errors.New("connection refused")}

func subject(typ, source, ns, name, version string, status content.Status) content.Subject {
	return content.Subject{
		ID:     content.ID{Type: typ, Source: source, Namespace: ns, Name: name, Version: version},
		Status: status,
	}
}
