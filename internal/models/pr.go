package models

import (
	"fmt"
	"strings"
)

// PullRequestInfo represents PR metadata
type PullRequestInfo struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	User      string `json:"user"`
	State     string `json:"state"`
	Draft     bool   `json:"draft"`
	UpdatedAt string `json:"updated_at"`
	CreatedAt string `json:"created_at"`
}

// User represents a GitHub user
type User struct {
	Login string `json:"login"`
	Type  string `json:"type"`
}

// Repository identifies a repository on a GitHub host
type Repository struct {
	Host  string `json:"host,omitempty"`
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// PullRequestTarget identifies one pull request to analyze
type PullRequestTarget struct {
	Owner  string `json:"owner"`
	Repo   string `json:"repo"`
	Number int    `json:"number"`
}

// NewPullRequestTarget builds a target, rejecting non-positive numbers and empty names
func NewPullRequestTarget(owner, repo string, number int) (PullRequestTarget, error) {
	if number <= 0 {
		return PullRequestTarget{}, fmt.Errorf("PR number must be positive: %d", number)
	}
	if strings.TrimSpace(owner) == "" || strings.TrimSpace(repo) == "" {
		return PullRequestTarget{}, fmt.Errorf("owner and repository name are required")
	}
	return PullRequestTarget{Owner: owner, Repo: repo, Number: number}, nil
}

func (t PullRequestTarget) String() string {
	return fmt.Sprintf("%s/%s#%d", t.Owner, t.Repo, t.Number)
}

// HTMLURL returns the web URL of the pull request on host
func (t PullRequestTarget) HTMLURL(host string) string {
	if host == "" {
		host = "github.com"
	}
	return fmt.Sprintf("https://%s/%s/%s/pull/%d", host, t.Owner, t.Repo, t.Number)
}
