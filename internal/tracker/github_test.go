package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestGitHub(t *testing.T, server *httptest.Server, token string) *GitHub {
	t.Helper()
	g, err := NewGitHub(context.Background(), server.URL, token)
	if err != nil {
		t.Fatalf("NewGitHub error: %v", err)
	}
	return g
}

func TestGitHubSearchOpenIssues(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/search/issues" {
			t.Errorf("Path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		want := `repo:eclipse/iplab is:issue is:open in:title "npm/npmjs/-/left-pad/1.3.0"`
		if got := r.URL.Query().Get("q"); got != want {
			t.Errorf("q = %q, want %q", got, want)
		}
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `{"total_count":2,"items":[{"number":8,"title":"npm/npmjs/-/left-pad/1.3.0 (old)","html_url":"https://github.example/8","state":"open"}]}`)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/api/v3/search/issues?page=2>; rel="next"`, server.URL))
		fmt.Fprint(w, `{"total_count":2,"items":[{"number":7,"title":"npm/npmjs/-/left-pad/1.3.0","html_url":"https://github.example/7","state":"open","labels":[{"name":"Review Needed"}]}]}`)
	}))
	defer server.Close()

	issues, err := newTestGitHub(t, server, "test-token").SearchOpenIssues(context.Background(), "eclipse/iplab", "npm/npmjs/-/left-pad/1.3.0")
	if err != nil {
		t.Fatalf("SearchOpenIssues error: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("len(issues) = %d, want 2", len(issues))
	}
	first := issues[0]
	if first.Number != 7 || first.State != StateOpened || first.WebURL != "https://github.example/7" {
		t.Errorf("issue = %+v", first)
	}
	if len(first.Labels) != 1 || first.Labels[0] != "Review Needed" {
		t.Errorf("Labels = %v", first.Labels)
	}
	if issues[1].Number != 8 {
		t.Errorf("second page issue = %+v", issues[1])
	}
}

func TestGitHubSearchOpenIssues_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"Bad credentials"}`)
	}))
	defer server.Close()

	_, err := newTestGitHub(t, server, "bad").SearchOpenIssues(context.Background(), "o/r", "x")
	if !IsAuthError(err) {
		t.Fatalf("IsAuthError = false for %v", err)
	}
}

func TestGitHubSearchOpenIssues_QuotedTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		want := `repo:o/r is:issue is:open in:title "npm/npmjs/-/we\\ird/1.0.0"`
		if got := r.URL.Query().Get("q"); got != want {
			t.Errorf("q = %q, want %q", got, want)
		}
		fmt.Fprint(w, `{"total_count":0,"items":[]}`)
	}))
	defer server.Close()

	_, err := newTestGitHub(t, server, "").SearchOpenIssues(context.Background(), "o/r", `npm/npmjs/-/"we\\ird"/1.0.0`)
	if err != nil {
		t.Fatalf("SearchOpenIssues error: %v", err)
	}
}

func TestSearchQuery(t *testing.T) {
	tests := map[string]string{
		"maven/mavencentral/org.x/y/1.0": `repo:o/r is:issue is:open in:title "maven/mavencentral/org.x/y/1.0"`,
		`say "hi"`:                       `repo:o/r is:issue is:open in:title "say hi"`,
		`back\slash`:                    `repo:o/r is:issue is:open in:title "back\slash"`,
	}
	for title, want := range tests {
		if got := searchQuery("/o/r/", title); got != want {
			t.Errorf("searchQuery(%q) = %q, want %q", title, got, want)
		}
	}
}

func TestGitHubSearchOpenIssues_ErrorOmitsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"token ghTok3nABCDEFGH rejected"}`)
	}))
	defer server.Close()

	_, err := newTestGitHub(t, server, "ghTok3nABCDEFGH").SearchOpenIssues(context.Background(), "o/r", "x")
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Contains(err.Error(), "ghTok3nABCDEFGH") {
		t.Errorf("error leaks token: %v", err)
	}
}

func TestGitHubCreateIssue(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method = %q, want POST", r.Method)
		}
		if r.URL.Path != "/api/v3/repos/eclipse/iplab/issues" {
			t.Errorf("Path = %q", r.URL.Path)
		}
		var payload struct {
			Title  string   `json:"title"`
			Body   string   `json:"body"`
			Labels []string `json:"labels"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decoding payload: %v", err)
		}
		if payload.Title != "maven/mavencentral/org.example/lib/1.0" {
			t.Errorf("title = %q", payload.Title)
		}
		if payload.Body != "description" {
			t.Errorf("body = %q", payload.Body)
		}
		if len(payload.Labels) != 1 || payload.Labels[0] != "Review Needed" {
			t.Errorf("labels = %v", payload.Labels)
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"number":42,"title":"maven/mavencentral/org.example/lib/1.0","html_url":"https://github.example/42","state":"open"}`)
	}))
	defer server.Close()

	issue, err := newTestGitHub(t, server, "t").CreateIssue(context.Background(), "eclipse/iplab", NewIssue{
		Title:       "maven/mavencentral/org.example/lib/1.0",
		Description: "description",
		Labels:      []string{"Review Needed"},
	})
	if err != nil {
		t.Fatalf("CreateIssue error: %v", err)
	}
	if issue.Number != 42 || issue.WebURL != "https://github.example/42" {
		t.Errorf("issue = %+v", issue)
	}
}

func TestGitHubCreateIssue_BadRepository(t *testing.T) {
	g, err := NewGitHub(context.Background(), "https://github.com", "")
	if err != nil {
		t.Fatalf("NewGitHub error: %v", err)
	}
	for _, repo := range []string{"iplab", "a/b/c", "/iplab"} {
		if _, err := g.CreateIssue(context.Background(), repo, NewIssue{Title: "x"}); err == nil {
			t.Errorf("CreateIssue(%q): expected error", repo)
		}
	}
}

func TestGitHubCreateIssue_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"message":"Validation Failed"}`)
	}))
	defer server.Close()

	_, err := newTestGitHub(t, server, "t").CreateIssue(context.Background(), "o/r", NewIssue{Title: "x"})
	if !IsTransportError(err) {
		t.Fatalf("IsTransportError = false for %v", err)
	}
	if IsAuthError(err) {
		t.Error("422 should not be an auth error")
	}
}

func TestIsPublicGitHub(t *testing.T) {
	tests := map[string]bool{
		"":                         true,
		"https://github.com":       true,
		"https://github.com/":      true,
		"https://api.github.com":   true,
		"https://github.corp.test": false,
	}
	for host, want := range tests {
		if got := isPublicGitHub(host); got != want {
			t.Errorf("isPublicGitHub(%q) = %v, want %v", host, got, want)
		}
	}
}
