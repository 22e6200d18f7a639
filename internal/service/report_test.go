package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryo246912/gh-comment-pace/internal/models"
)

func prCounts(number int, counts ...int) models.PRCommentCounts {
	pr := models.PRCommentCounts{
		Target: models.PullRequestTarget{Owner: "acme", Repo: "widgets", Number: number},
		Counts: map[models.CommentCategory]int{},
	}
	for i, n := range counts {
		pr.Counts[models.AllCategories[i]] = n
	}
	return pr
}

func TestBuildReport(t *testing.T) {
	tests := []struct {
		name       string
		prs        []models.PRCommentCounts
		additional int
		minutes    int
		wantTotal  int
		wantRatio  *float64
	}{
		{
			name:       "single PR with additional",
			prs:        []models.PRCommentCounts{prCounts(1, 2, 1, 0)},
			additional: 2,
			minutes:    50,
			wantTotal:  5,
			wantRatio:  floatPtr(10),
		},
		{
			name:      "several PRs",
			prs:       []models.PRCommentCounts{prCounts(1, 1), prCounts(2, 0, 2), prCounts(3, 0, 0, 4)},
			minutes:   60,
			wantTotal: 7,
			wantRatio: floatPtr(60.0 / 7.0),
		},
		{
			name:      "no comments means no division",
			prs:       []models.PRCommentCounts{prCounts(1, 0, 0, 0)},
			minutes:   30,
			wantTotal: 0,
		},
		{
			name:       "additional only",
			additional: 3,
			minutes:    10,
			wantTotal:  3,
			wantRatio:  floatPtr(10.0 / 3.0),
		},
		{
			name:      "zero minutes",
			prs:       []models.PRCommentCounts{prCounts(1, 4)},
			wantTotal: 4,
			wantRatio: floatPtr(0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := BuildReport("bob", models.AllCategories, tt.prs, tt.additional, tt.minutes)

			assert.Equal(t, "bob", report.User)
			assert.Equal(t, tt.wantTotal, report.TotalComments)
			assert.Equal(t, tt.wantTotal-tt.additional, report.Subtotal)
			assert.Equal(t, tt.additional, report.Additional)
			assert.Equal(t, tt.minutes, report.Minutes)

			if tt.wantRatio == nil {
				assert.False(t, report.HasRatio())
				return
			}
			require.True(t, report.HasRatio())
			assert.InDelta(t, *tt.wantRatio, *report.MinutesPerComment, 0.005)
			assert.False(t, math.IsInf(*report.MinutesPerComment, 0))
		})
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
