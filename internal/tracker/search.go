package tracker

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dshills/dashreview/internal/config"
	"github.com/dshills/dashreview/internal/content"
)

// WebSearch links to the tracker's web issue search for a component's name,
// across open and closed issues. Reviewers use it to find reviews of other
// versions of the same component.
type WebSearch struct {
	kind string
	base string
}

// NewWebSearch creates a search linker for the repository in cfg.
func NewWebSearch(cfg config.TrackerConfig) WebSearch {
	host := strings.TrimRight(cfg.Host, "/")
	if cfg.Kind == config.TrackerGitHub && (host == "" || host == "https://api.github.com") {
		host = "https://github.com"
	}
	repo := strings.Trim(cfg.Repository, "/")
	if host == "" || repo == "" {
		return WebSearch{}
	}
	return WebSearch{kind: cfg.Kind, base: host + "/" + repo}
}

// SearchURL returns the search link for id. ok is false when no tracker
// location is configured.
func (w WebSearch) SearchURL(id content.ID) (string, bool) {
	if w.base == "" || id.Name == "" {
		return "", false
	}
	if w.kind == config.TrackerGitHub {
		q := url.Values{"q": {fmt.Sprintf("is:issue %s", id.Name)}}
		return w.base + "/issues?" + q.Encode(), true
	}
	q := url.Values{}
	q.Set("search", id.Name)
	q.Set("state", "all")
	return w.base + "/-/issues?" + q.Encode(), true
}
