package review

import (
	"context"
	"fmt"

	"github.com/dshills/dashreview/internal/content"
	"github.com/dshills/dashreview/internal/describe"
	"github.com/dshills/dashreview/internal/tracker"
)

// DefaultLabel is applied to every new review request.
const DefaultLabel = "Review Needed"

// Creator files new review requests.
type Creator struct {
	client     tracker.Client
	repository string
	label      string
	builder    *describe.Builder
}

// NewCreator creates a Creator that files issues in repository with label.
// An empty label files issues without labels and a nil builder describes
// subjects without probing or search links.
func NewCreator(client tracker.Client, repository, label string, builder *describe.Builder) *Creator {
	if builder == nil {
		builder = describe.New(nil, nil)
	}
	return &Creator{client: client, repository: repository, label: label, builder: builder}
}

// Create files a review request for subject.
func (c *Creator) Create(ctx context.Context, subject content.Subject) (tracker.Issue, error) {
	req := tracker.NewIssue{
		Title:       subject.ID.String(),
		Description: c.builder.Build(ctx, subject),
	}
	if c.label != "" {
		req.Labels = []string{c.label}
	}
	issue, err := c.client.CreateIssue(ctx, c.repository, req)
	if err != nil {
		return tracker.Issue{}, fmt.Errorf("creating review request for %s: %w", req.Title, err)
	}
	return issue, nil
}
