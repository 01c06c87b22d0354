package tracker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dshills/dashreview/internal/config"
	"github.com/dshills/dashreview/internal/redact"
)

// State is the lifecycle state of an issue.
type State string

const (
	StateOpened State = "opened"
	StateClosed State = "closed"
)

// Issue is a review request as the tracker reports it.
type Issue struct {
	Number int      `json:"number"`
	Title  string   `json:"title"`
	WebURL string   `json:"webUrl"`
	State  State    `json:"state"`
	Labels []string `json:"labels,omitempty"`
}

// NewIssue is the payload for creating an issue.
type NewIssue struct {
	Title       string
	Description string
	Labels      []string
}

// Client is the subset of tracker operations the review workflow needs.
type Client interface {
	// SearchOpenIssues returns open issues in repository whose title matches
	// title according to the tracker's own search. Callers must still filter
	// for exact matches.
	SearchOpenIssues(ctx context.Context, repository, title string) ([]Issue, error)
	// CreateIssue files a new issue in repository.
	CreateIssue(ctx context.Context, repository string, req NewIssue) (Issue, error)
	// Close releases connections held by the client.
	Close() error
}

// Open returns a client for the tracker selected by cfg.Kind.
func Open(ctx context.Context, cfg config.TrackerConfig) (Client, error) {
	switch cfg.Kind {
	case config.TrackerGitLab, "":
		return NewGitLab(cfg.Host, cfg.Token), nil
	case config.TrackerGitHub:
		return NewGitHub(ctx, cfg.Host, cfg.Token)
	default:
		return nil, fmt.Errorf("unknown tracker kind: %s", cfg.Kind)
	}
}

// Use opens a client, passes it to fn and closes it afterwards, whether fn
// succeeds, fails or panics. A close error is joined with fn's error.
func Use(ctx context.Context, cfg config.TrackerConfig, fn func(Client) error) (err error) {
	c, err := Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing tracker client: %w", cerr))
		}
	}()
	return fn(c)
}

// TransportError reports a failed exchange with the tracker: the request
// could not be sent, timed out, or came back with a non-2xx status.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	var msg string
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		msg = fmt.Sprintf("%s: tracker returned status %d: %v", e.Op, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		msg = fmt.Sprintf("%s: tracker returned status %d", e.Op, e.StatusCode)
	default:
		msg = fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return redact.Secrets(msg)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransportError reports whether err is, or wraps, a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsAuthError reports whether err is a transport error caused by rejected
// credentials.
func IsAuthError(err error) bool {
	var te *TransportError
	if !errors.As(err, &te) {
		return false
	}
	return te.StatusCode == http.StatusUnauthorized || te.StatusCode == http.StatusForbidden
}

// errorBody trims a response body for inclusion in an error message and
// removes token from it.
func errorBody(body []byte, token string) error {
	s := strings.TrimSpace(redact.Token(string(body), token))
	if len(s) > 512 {
		s = s[:512] + "..."
	}
	if s == "" {
		return nil
	}
	return errors.New(s)
}
