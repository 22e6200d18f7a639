package github

import (
	"context"
	"encoding/json"

	"github.com/ryo246912/gh-comment-pace/internal/models"
)

// GitHubClient defines the interface for GitHub operations
type GitHubClient interface {
	GetCurrentUser(ctx context.Context) (models.User, error)
	ListComments(ctx context.Context, target models.PullRequestTarget, category models.CommentCategory) ([]json.RawMessage, error)
	SearchCommentedPRs(ctx context.Context, repo models.Repository, login string) ([]models.PullRequestInfo, error)
}

// Ensure Client implements GitHubClient interface
var _ GitHubClient = (*Client)(nil)
