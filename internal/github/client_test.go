package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	graphql "github.com/cli/shurcooL-graphql"
	"github.com/ryo246912/gh-comment-pace/internal/models"
)

// newTestClient builds a Client backed by go-gh and pointed at server
func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("invalid server URL: %v", err)
	}
	client, err := NewClient(Options{
		Host:      u.Hostname(),
		BaseURL:   server.URL,
		Token:     "secret-token",
		UserAgent: "comment-pace-test",
		Transport: server.Client().Transport,
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestClient_GetCurrentUser(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		expected    string
		expectError bool
	}{
		{
			name:     "valid user",
			status:   http.StatusOK,
			body:     `{"login": "bob", "type": "User"}`,
			expected: "bob",
		},
		{
			name:        "bad credentials",
			status:      http.StatusUnauthorized,
			body:        `{"message": "Bad credentials"}`,
			expectError: true,
		},
		{
			name:        "unparseable body",
			status:      http.StatusOK,
			body:        `not json`,
			expectError: true,
		},
		{
			name:        "missing login",
			status:      http.StatusOK,
			body:        `{"id": 1}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/user" {
					http.NotFound(w, r)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			user, err := newTestClient(t, server).GetCurrentUser(context.Background())

			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error but got user %+v", user)
				}
				if !errors.Is(err, ErrAuthenticationFailed) {
					t.Errorf("error %v should be an authentication failure", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.Login != tt.expected {
				t.Errorf("Login = %q, want %q", user.Login, tt.expected)
			}
		})
	}
}

func TestClient_ListComments(t *testing.T) {
	target := models.PullRequestTarget{Owner: "acme", Repo: "widgets", Number: 7}

	var (
		mu      sync.Mutex
		headers []http.Header
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		headers = append(headers, r.Header.Clone())
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/repos/acme/widgets/pulls/7/comments" && r.URL.Query().Get("page") == "":
			w.Header().Set("Link", fmt.Sprintf(`<http://%s/repos/acme/widgets/pulls/7/comments?per_page=100&page=2>; rel="next"`, r.Host))
			_, _ = w.Write([]byte(`[{"user": {"login": "bob"}}, {"user": {"login": "alice"}}]`))
		case r.URL.Path == "/repos/acme/widgets/pulls/7/comments":
			_, _ = w.Write([]byte(`[{"user": {"login": "bob"}}]`))
		case r.URL.Path == "/repos/acme/widgets/pulls/7/reviews":
			_, _ = w.Write([]byte(`[{"user": {"login": "bob"}, "state": "APPROVED"}]`))
		case r.URL.Path == "/repos/acme/widgets/issues/7/comments":
			_, _ = w.Write([]byte(`[]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)

	tests := []struct {
		category models.CommentCategory
		expected int
	}{
		{category: models.ReviewComments, expected: 3},
		{category: models.Reviews, expected: 1},
		{category: models.IssueComments, expected: 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			records, err := client.ListComments(context.Background(), target, tt.category)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(records) != tt.expected {
				t.Errorf("got %d records, want %d", len(records), tt.expected)
			}
		})
	}

	mu.Lock()
	defer mu.Unlock()
	for _, h := range headers {
		if got := h.Get("Authorization"); got != "token secret-token" {
			t.Errorf("Authorization = %q, want %q", got, "token secret-token")
		}
		if got := h.Get("User-Agent"); got != "comment-pace-test" {
			t.Errorf("User-Agent = %q, want %q", got, "comment-pace-test")
		}
	}
}

func TestClient_ListComments_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
	}))
	defer server.Close()

	target := models.PullRequestTarget{Owner: "acme", Repo: "widgets", Number: 404}
	_, err := newTestClient(t, server).ListComments(context.Background(), target, models.Reviews)
	if err == nil {
		t.Fatal("expected error but got none")
	}
	status, ok := StatusCode(err)
	if !ok || status != http.StatusNotFound {
		t.Errorf("StatusCode(%v) = %d, %v; want 404, true", err, status, ok)
	}
	if !strings.Contains(err.Error(), "Reviews") {
		t.Errorf("error %q should name the category", err.Error())
	}
}

func TestCommentsPath(t *testing.T) {
	target := models.PullRequestTarget{Owner: "o", Repo: "r", Number: 12}
	tests := []struct {
		category models.CommentCategory
		expected string
	}{
		{models.ReviewComments, "repos/o/r/pulls/12/comments"},
		{models.Reviews, "repos/o/r/pulls/12/reviews"},
		{models.IssueComments, "repos/o/r/issues/12/comments"},
	}
	for _, tt := range tests {
		got, err := CommentsPath(target, tt.category)
		if err != nil {
			t.Fatalf("CommentsPath(%s) error = %v", tt.category, err)
		}
		if got != tt.expected {
			t.Errorf("CommentsPath(%s) = %q, want %q", tt.category, got, tt.expected)
		}
	}

	if _, err := CommentsPath(target, "commits"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestNewClient_APIURLOutsideHost(t *testing.T) {
	tests := []struct {
		name        string
		host        string
		baseURL     string
		expectError bool
	}{
		{name: "public API", host: "github.com", baseURL: "https://api.github.com/"},
		{name: "enterprise path", host: "ghe.example.com", baseURL: "https://ghe.example.com/api/v3/"},
		{name: "case insensitive", host: "GitHub.com", baseURL: "https://API.github.com/"},
		{name: "other domain", host: "github.com", baseURL: "http://127.0.0.1:8080/", expectError: true},
		{name: "suffix without dot", host: "github.com", baseURL: "https://evilgithub.com/", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(Options{Host: tt.host, BaseURL: tt.baseURL, Token: "tok"})
			if tt.expectError && err == nil {
				t.Error("expected error for API URL outside host")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewClient_RequiresToken(t *testing.T) {
	if _, err := NewClient(Options{Host: "github.com"}); err == nil {
		t.Error("expected error without token")
	}
}

// fakeGraphQL decodes a canned response into the query struct
type fakeGraphQL struct {
	response  string
	err       error
	name      string
	variables map[string]interface{}
}

func (f *fakeGraphQL) QueryWithContext(ctx context.Context, name string, q interface{}, variables map[string]interface{}) error {
	f.name = name
	f.variables = variables
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.response), q)
}

func TestClient_SearchCommentedPRs(t *testing.T) {
	gql := &fakeGraphQL{response: `{"search": {"nodes": [
		{"pullRequest": {"number": 12, "title": "Add widgets", "state": "OPEN", "isDraft": true, "author": {"login": "alice"}}},
		{"pullRequest": {}},
		{"pullRequest": {"number": 9, "title": "Fix build", "state": "MERGED", "author": {"login": "carol"}}}
	]}}`}
	client := NewClientWith(nil, gql, Options{})

	prs, err := client.SearchCommentedPRs(context.Background(), models.Repository{Owner: "acme", Name: "widgets"}, "bob")
	if err != nil {
		t.Fatalf("SearchCommentedPRs() error = %v", err)
	}

	if len(prs) != 2 {
		t.Fatalf("expected 2 PRs (non-PR nodes skipped), got %d", len(prs))
	}
	if prs[0].Number != 12 || prs[0].User != "alice" || !prs[0].Draft {
		t.Errorf("unexpected first PR: %+v", prs[0])
	}
	if prs[1].Number != 9 || prs[1].State != "MERGED" {
		t.Errorf("unexpected second PR: %+v", prs[1])
	}

	wantQuery := graphql.String("repo:acme/widgets is:pr commenter:bob sort:updated-desc")
	if gql.variables["query"] != wantQuery {
		t.Errorf("query = %v, want %v", gql.variables["query"], wantQuery)
	}
}

func TestClient_SearchCommentedPRs_Error(t *testing.T) {
	client := NewClientWith(nil, &fakeGraphQL{err: errors.New("boom")}, Options{})

	_, err := client.SearchCommentedPRs(context.Background(), models.Repository{Owner: "acme", Name: "widgets"}, "bob")
	if err == nil || !strings.Contains(err.Error(), "failed to search pull requests") {
		t.Errorf("expected wrapped search error, got %v", err)
	}
}
