package github

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ryo246912/gh-comment-pace/internal/models"
)

// MockClient implements GitHubClient for testing. It is safe for concurrent use.
type MockClient struct {
	// Control test behavior
	CurrentUser      models.User
	CurrentUserError error

	// Comments and CommentErrors are keyed by CommentKey(number, category)
	Comments          map[string][]json.RawMessage
	CommentErrors     map[string]error
	CommentedPRs      []models.PullRequestInfo
	CommentedPRsError error

	mu sync.Mutex

	// Track method calls
	GetCurrentUserCalled     bool
	SearchCommentedPRsCalled bool
	ListCommentsCalls        []string
	LastRepository           models.Repository
}

// CommentKey builds the lookup key of Comments and CommentErrors
func CommentKey(number int, category models.CommentCategory) string {
	return fmt.Sprintf("%d/%s", number, category)
}

// GetCurrentUser mocks the /user call
func (m *MockClient) GetCurrentUser(ctx context.Context) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCurrentUserCalled = true
	return m.CurrentUser, m.CurrentUserError
}

// ListComments mocks the paginated comment endpoints
func (m *MockClient) ListComments(ctx context.Context, target models.PullRequestTarget, category models.CommentCategory) ([]json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := CommentKey(target.Number, category)
	m.ListCommentsCalls = append(m.ListCommentsCalls, key)
	if err := m.CommentErrors[key]; err != nil {
		return nil, err
	}
	return m.Comments[key], nil
}

// SearchCommentedPRs mocks the GraphQL search
func (m *MockClient) SearchCommentedPRs(ctx context.Context, repo models.Repository, login string) ([]models.PullRequestInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SearchCommentedPRsCalled = true
	m.LastRepository = repo
	return m.CommentedPRs, m.CommentedPRsError
}

// Calls returns a copy of the recorded ListComments keys
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.ListCommentsCalls...)
}

// Reset clears all tracking data for fresh test
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCurrentUserCalled = false
	m.SearchCommentedPRsCalled = false
	m.ListCommentsCalls = nil
	m.LastRepository = models.Repository{}
}

// Helper functions for creating test data

// CommentsBy builds n comment records authored by login
func CommentsBy(login string, n int) []json.RawMessage {
	records := make([]json.RawMessage, n)
	for i := 0; i < n; i++ {
		records[i] = json.RawMessage(fmt.Sprintf(`{"id":%d,"user":{"login":%q,"type":"User"}}`, i+1, login))
	}
	return records
}

// CreateTestPRs builds count PRs numbered from 1
func CreateTestPRs(count int) []models.PullRequestInfo {
	prs := make([]models.PullRequestInfo, count)
	for i := 0; i < count; i++ {
		prs[i] = models.PullRequestInfo{
			Number:    i + 1,
			Title:     fmt.Sprintf("Test PR #%d", i+1),
			User:      fmt.Sprintf("user%d", i+1),
			State:     "OPEN",
			Draft:     i%2 == 0,
			UpdatedAt: "2023-01-01T12:00:00Z",
			CreatedAt: "2023-01-01T10:00:00Z",
		}
	}
	return prs
}

// NewAPIError builds the error the paginator returns for a failed status
func NewAPIError(status int) error {
	return &RemoteRequestFailedError{Status: status}
}
