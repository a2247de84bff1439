package testutil

import (
	"fmt"
	"time"

	"github.com/bjulian5/ghprs/internal/model"
)

// NewPR builds a PR with one review per given submission time
func NewPR(id, title, repository string, reviewTimes ...time.Time) model.PR {
	pr := model.PR{
		ID:         id,
		Title:      title,
		Repository: repository,
	}
	for i, submittedAt := range reviewTimes {
		pr.Reviews = append(pr.Reviews, model.Review{
			ID:          fmt.Sprintf("%s-review-%d", id, i),
			Author:      model.Author{Login: "reviewer"},
			SubmittedAt: submittedAt,
		})
	}
	return pr
}

// IDs extracts PR ids, preserving order
func IDs(prs []model.PR) []string {
	ids := make([]string, 0, len(prs))
	for _, pr := range prs {
		ids = append(ids, pr.ID)
	}
	return ids
}
