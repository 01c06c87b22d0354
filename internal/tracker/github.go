package tracker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/XiaoConstantine/dspy-go/pkg/logging"
	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// GitHub files review requests as GitHub issues.
type GitHub struct {
	client  *github.Client
	httpCli *http.Client
	token   string
}

// NewGitHub creates a GitHub client. Hosts other than github.com are treated
// as GitHub Enterprise servers.
func NewGitHub(ctx context.Context, host, token string) (*GitHub, error) {
	httpCli := &http.Client{}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpCli = oauth2.NewClient(ctx, ts)
	}
	client := github.NewClient(httpCli)

	if !isPublicGitHub(host) {
		base := strings.TrimRight(host, "/") + "/"
		var err error
		client, err = client.WithEnterpriseURLs(base, base)
		if err != nil {
			return nil, fmt.Errorf("configuring GitHub Enterprise host %s: %w", host, err)
		}
	}
	return &GitHub{client: client, httpCli: httpCli, token: token}, nil
}

func isPublicGitHub(host string) bool {
	switch strings.TrimRight(host, "/") {
	case "", "https://github.com", "https://api.github.com":
		return true
	}
	return false
}

// SearchOpenIssues runs an issue search restricted to open issues of
// repository with title in the title.
func (g *GitHub) SearchOpenIssues(ctx context.Context, repository, title string) ([]Issue, error) {
	query := searchQuery(repository, title)
	opts := &github.SearchOptions{ListOptions: github.ListOptions{PerPage: 100}}

	var issues []Issue
	for n := 0; n < maxSearchPages; n++ {
		result, resp, err := g.client.Search.Issues(ctx, query, opts)
		if err != nil {
			return nil, githubError("searching issues", err, g.token)
		}
		for _, is := range result.Issues {
			issues = append(issues, fromGitHub(is))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	logging.GetLogger().Debug(ctx, "github search %q returned %d issue(s)", query, len(issues))
	return issues, nil
}

// CreateIssue opens a new issue in repository, given as owner/name.
func (g *GitHub) CreateIssue(ctx context.Context, repository string, in NewIssue) (Issue, error) {
	owner, name, ok := strings.Cut(strings.Trim(repository, "/"), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Issue{}, fmt.Errorf("github repository must be owner/name, got %q", repository)
	}

	labels := in.Labels
	if labels == nil {
		labels = []string{}
	}
	created, _, err := g.client.Issues.Create(ctx, owner, name, &github.IssueRequest{
		Title:  github.Ptr(in.Title),
		Body:   github.Ptr(in.Description),
		Labels: &labels,
	})
	if err != nil {
		return Issue{}, githubError("creating issue", err, g.token)
	}
	logging.GetLogger().Debug(ctx, "github created issue #%d in %s", created.GetNumber(), repository)
	return fromGitHub(created), nil
}

// Close releases idle connections.
func (g *GitHub) Close() error {
	g.httpCli.CloseIdleConnections()
	return nil
}

func fromGitHub(is *github.Issue) Issue {
	state := StateOpened
	if is.GetState() == "closed" {
		state = StateClosed
	}
	var labels []string
	for _, l := range is.Labels {
		labels = append(labels, l.GetName())
	}
	return Issue{
		Number: is.GetNumber(),
		Title:  is.GetTitle(),
		WebURL: is.GetHTMLURL(),
		State:  state,
		Labels: labels,
	}
}

// searchQuery builds the issue search expression. The search syntax has no
// escape for a quote inside a quoted term, so quotes are dropped.
func searchQuery(repository, title string) string {
	term := strings.ReplaceAll(title, `"`, "")
	return "repo:" + strings.Trim(repository, "/") + " is:issue is:open in:title \"" + term + "\""
}

// githubError converts go-github errors into *TransportError, keeping the
// HTTP status when the server answered.
func githubError(op string, err error, token string) error {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return &TransportError{Op: op, StatusCode: errResp.Response.StatusCode, Err: errorBody([]byte(errResp.Message), token)}
	}
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) && rateErr.Response != nil {
		return &TransportError{Op: op, StatusCode: rateErr.Response.StatusCode, Err: errorBody([]byte(rateErr.Message), token)}
	}
	return &TransportError{Op: op, Err: err}
}
