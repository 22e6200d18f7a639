package service

import (
	"github.com/ryo246912/gh-comment-pace/internal/models"
)

// BuildReport sums the per-PR totals, adds additional and computes the
// minutes per comment when there is at least one comment
func BuildReport(user string, categories []models.CommentCategory, prs []models.PRCommentCounts, additional, minutes int) models.Report {
	subtotal := 0
	for _, pr := range prs {
		subtotal += pr.Total()
	}

	report := models.Report{
		User:          user,
		Categories:    categories,
		PullRequests:  prs,
		Subtotal:      subtotal,
		Additional:    additional,
		TotalComments: subtotal + additional,
		Minutes:       minutes,
	}
	if report.TotalComments > 0 {
		ratio := float64(minutes) / float64(report.TotalComments)
		report.MinutesPerComment = &ratio
	}
	return report
}
