package models

import (
	"fmt"
	"strings"
)

// CommentCategory is one of the comment collections GitHub keeps for a PR
type CommentCategory string

const (
	// ReviewComments are comments attached to lines of the diff
	ReviewComments CommentCategory = "review_comments"
	// Reviews are review summaries (approve, request changes, comment)
	Reviews CommentCategory = "reviews"
	// IssueComments are conversation comments on the PR as a whole
	IssueComments CommentCategory = "issue_comments"
)

// AllCategories lists every category in report order
var AllCategories = []CommentCategory{ReviewComments, Reviews, IssueComments}

// Label returns a human readable name
func (c CommentCategory) Label() string {
	switch c {
	case ReviewComments:
		return "Review comments"
	case Reviews:
		return "Reviews"
	case IssueComments:
		return "Issue comments"
	default:
		return string(c)
	}
}

// ParseCategory accepts the canonical name or a dashed alias
func ParseCategory(s string) (CommentCategory, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for _, c := range AllCategories {
		if string(c) == normalized {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown comment category %q (valid: review_comments, reviews, issue_comments)", s)
}

// ParseCategories parses a list of category names, dropping duplicates and
// returning them in report order
func ParseCategories(names []string) ([]CommentCategory, error) {
	seen := make(map[CommentCategory]bool, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		c, err := ParseCategory(name)
		if err != nil {
			return nil, err
		}
		seen[c] = true
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("at least one comment category is required")
	}

	categories := make([]CommentCategory, 0, len(seen))
	for _, c := range AllCategories {
		if seen[c] {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

// PRCommentCounts holds the authored comment counts of a single PR
type PRCommentCounts struct {
	Target PullRequestTarget       `json:"target"`
	Counts map[CommentCategory]int `json:"counts"`
}

// Total sums the counts of every category
func (p PRCommentCounts) Total() int {
	total := 0
	for _, n := range p.Counts {
		total += n
	}
	return total
}

// Report is the final result of a run
type Report struct {
	User              string            `json:"user"`
	Host              string            `json:"host,omitempty"`
	Categories        []CommentCategory `json:"categories"`
	PullRequests      []PRCommentCounts `json:"pull_requests"`
	Subtotal          int               `json:"subtotal"`
	Additional        int               `json:"additional"`
	TotalComments     int               `json:"total_comments"`
	Minutes           int               `json:"minutes"`
	MinutesPerComment *float64          `json:"minutes_per_comment"`
}

// HasRatio reports whether a minutes-per-comment value could be computed
func (r Report) HasRatio() bool {
	return r.MinutesPerComment != nil
}
