package target

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/ryo246912/gh-comment-pace/internal/models"
)

// ParseRepository accepts "owner/repo", "host/owner/repo",
// "https://host/owner/repo[/...]" and "git@host:owner/repo.git".
// Only repositories on host are accepted.
func ParseRepository(input, host string) (models.Repository, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return models.Repository{}, NewRepositoryError(input, "empty repository")
	}

	switch {
	case strings.Contains(s, "://"):
		u, err := url.Parse(s)
		if err != nil {
			return models.Repository{}, NewRepositoryError(input, "invalid URL")
		}
		if u.Scheme != "https" && u.Scheme != "http" && u.Scheme != "ssh" {
			return models.Repository{}, NewRepositoryError(input, "unsupported URL scheme "+u.Scheme)
		}
		parts := pathParts(u.Path)
		if len(parts) < 2 {
			return models.Repository{}, NewRepositoryError(input, "expected https://"+host+"/owner/repo")
		}
		return newRepository(input, u.Hostname(), parts[0], parts[1], host)

	case strings.HasPrefix(s, "git@"):
		hostPart, path, ok := strings.Cut(strings.TrimPrefix(s, "git@"), ":")
		if !ok {
			return models.Repository{}, NewRepositoryError(input, "invalid SSH remote")
		}
		parts := pathParts(path)
		if len(parts) != 2 {
			return models.Repository{}, NewRepositoryError(input, "expected git@"+host+":owner/repo.git")
		}
		return newRepository(input, hostPart, parts[0], parts[1], host)

	default:
		parts := strings.Split(strings.Trim(s, "/"), "/")
		switch len(parts) {
		case 2:
			return newRepository(input, host, parts[0], parts[1], host)
		case 3:
			return newRepository(input, parts[0], parts[1], parts[2], host)
		default:
			return models.Repository{}, NewRepositoryError(input, "expected owner/repo or https://"+host+"/owner/repo")
		}
	}
}

// ParsePullRequestURL parses "https://host/owner/repo/pull/N[/...]"
func ParsePullRequestURL(input, host string) (models.PullRequestTarget, error) {
	u, err := url.Parse(strings.TrimSpace(input))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return models.PullRequestTarget{}, NewInvalidTargetError(input, "not a pull request URL")
	}
	if !sameHost(u.Hostname(), host) {
		return models.PullRequestTarget{}, NewInvalidTargetError(input, "only "+host+" pull requests are supported")
	}

	parts := pathParts(u.Path)
	if len(parts) < 4 || (parts[2] != "pull" && parts[2] != "pulls") {
		return models.PullRequestTarget{}, NewInvalidTargetError(input, "expected https://"+host+"/owner/repo/pull/NUMBER")
	}
	number, err := ParseNumber(parts[3])
	if err != nil {
		return models.PullRequestTarget{}, NewInvalidTargetError(input, "invalid pull request number")
	}
	t, err := models.NewPullRequestTarget(parts[0], parts[1], number)
	if err != nil {
		return models.PullRequestTarget{}, NewInvalidTargetError(input, err.Error())
	}
	return t, nil
}

// ParseNumber parses a positive PR number, optionally prefixed with '#'
func ParseNumber(input string) (int, error) {
	s := strings.TrimPrefix(strings.TrimSpace(input), "#")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, NewInvalidTargetError(input, "not a number")
	}
	if n <= 0 {
		return 0, NewInvalidTargetError(input, "PR number must be positive")
	}
	return n, nil
}

// IsURL reports whether s looks like a URL rather than a bare number
func IsURL(s string) bool {
	return strings.Contains(s, "://")
}

func newRepository(input, gotHost, owner, name, host string) (models.Repository, error) {
	if !sameHost(gotHost, host) {
		return models.Repository{}, NewRepositoryError(input, "only "+host+" repositories are supported")
	}
	name = strings.TrimSuffix(name, ".git")
	if owner == "" || name == "" {
		return models.Repository{}, NewRepositoryError(input, "owner and repository name are required")
	}
	return models.Repository{Host: strings.ToLower(host), Owner: owner, Name: name}, nil
}

func pathParts(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func sameHost(got, want string) bool {
	got = strings.TrimPrefix(strings.ToLower(got), "www.")
	want = strings.TrimPrefix(strings.ToLower(want), "www.")
	return got == want
}
