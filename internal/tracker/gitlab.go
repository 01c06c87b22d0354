package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/XiaoConstantine/dspy-go/pkg/logging"
)

const gitlabPageSize = 100

// maxSearchPages bounds pagination so a misbehaving server cannot keep a
// search going forever.
const maxSearchPages = 50

// GitLab is a minimal GitLab REST API (v4) client.
type GitLab struct {
	token   string
	apiURL  string
	httpCli *http.Client
}

// NewGitLab creates a client for the GitLab instance at host, for example
// https://gitlab.eclipse.org. An empty token sends unauthenticated requests.
func NewGitLab(host, token string) *GitLab {
	return &GitLab{
		token:   token,
		apiURL:  strings.TrimRight(host, "/") + "/api/v4",
		httpCli: &http.Client{Timeout: 60 * time.Second},
	}
}

type gitlabIssue struct {
	IID    int      `json:"iid"`
	Title  string   `json:"title"`
	WebURL string   `json:"web_url"`
	State  string   `json:"state"`
	Labels []string `json:"labels"`
}

func (i gitlabIssue) issue() Issue {
	return Issue{
		Number: i.IID,
		Title:  i.Title,
		WebURL: i.WebURL,
		State:  State(i.State),
		Labels: i.Labels,
	}
}

// SearchOpenIssues lists open issues whose title contains title, following
// the X-Next-Page header across pages.
func (c *GitLab) SearchOpenIssues(ctx context.Context, repository, title string) ([]Issue, error) {
	q := url.Values{}
	q.Set("state", "opened")
	q.Set("in", "title")
	q.Set("search", title)
	q.Set("per_page", strconv.Itoa(gitlabPageSize))

	var issues []Issue
	page := "1"
	for n := 0; page != "" && n < maxSearchPages; n++ {
		q.Set("page", page)
		endpoint := c.issuesURL(repository) + "?" + q.Encode()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		c.authorize(req)

		body, header, err := c.do(req, "searching issues")
		if err != nil {
			return nil, err
		}

		var batch []gitlabIssue
		if err := json.Unmarshal(body, &batch); err != nil {
			return nil, fmt.Errorf("parsing response: %w", err)
		}
		for _, gi := range batch {
			issues = append(issues, gi.issue())
		}
		page = strings.TrimSpace(header.Get("X-Next-Page"))
	}

	logging.GetLogger().Debug(ctx, "gitlab search %q in %s returned %d issue(s)", title, repository, len(issues))
	return issues, nil
}

type gitlabCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Labels      string `json:"labels,omitempty"`
}

// CreateIssue files a new issue in repository.
func (c *GitLab) CreateIssue(ctx context.Context, repository string, in NewIssue) (Issue, error) {
	payload, err := json.Marshal(gitlabCreateRequest{
		Title:       in.Title,
		Description: in.Description,
		Labels:      strings.Join(in.Labels, ","),
	})
	if err != nil {
		return Issue{}, fmt.Errorf("marshaling issue: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.issuesURL(repository), bytes.NewReader(payload))
	if err != nil {
		return Issue{}, fmt.Errorf("creating request: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	body, _, err := c.do(req, "creating issue")
	if err != nil {
		return Issue{}, err
	}

	var created gitlabIssue
	if err := json.Unmarshal(body, &created); err != nil {
		return Issue{}, fmt.Errorf("parsing response: %w", err)
	}
	logging.GetLogger().Debug(ctx, "gitlab created issue #%d in %s", created.IID, repository)
	return created.issue(), nil
}

// Close releases idle connections.
func (c *GitLab) Close() error {
	c.httpCli.CloseIdleConnections()
	return nil
}

// issuesURL addresses the project by its URL-encoded full path.
func (c *GitLab) issuesURL(repository string) string {
	return fmt.Sprintf("%s/projects/%s/issues", c.apiURL, url.PathEscape(strings.Trim(repository, "/")))
}

func (c *GitLab) authorize(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("PRIVATE-TOKEN", c.token)
	}
}

func (c *GitLab) do(req *http.Request, op string) ([]byte, http.Header, error) {
	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &TransportError{Op: op, Err: fmt.Errorf("reading response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: errorBody(body, c.token)}
	}
	return body, resp.Header, nil
}
