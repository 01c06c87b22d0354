package review

import (
	"context"
	"fmt"

	"github.com/dshills/dashreview/internal/content"
	"github.com/dshills/dashreview/internal/tracker"
)

// Finder looks up existing review requests.
type Finder struct {
	client     tracker.Client
	repository string
}

// NewFinder creates a Finder that searches repository.
func NewFinder(client tracker.Client, repository string) *Finder {
	return &Finder{client: client, repository: repository}
}

// Find returns the open review request for subject, or nil when there is
// none. The tracker's search is fuzzy, so only a candidate whose title is
// exactly the identifier string counts.
func (f *Finder) Find(ctx context.Context, subject content.Subject) (*tracker.Issue, error) {
	title := subject.ID.String()
	candidates, err := f.client.SearchOpenIssues(ctx, f.repository, title)
	if err != nil {
		return nil, fmt.Errorf("searching for %s: %w", title, err)
	}
	for _, c := range candidates {
		if c.Title == title && c.State == tracker.StateOpened {
			issue := c
			return &issue, nil
		}
	}
	return nil, nil
}
