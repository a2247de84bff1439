package model

import "time"

// Author is the GitHub account behind a review
type Author struct {
	Login string `json:"login" yaml:"login"`
}

// Review is a single review submission on a pull request
type Review struct {
	ID          string    `json:"id" yaml:"id"`
	Author      Author    `json:"author" yaml:"author"`
	SubmittedAt time.Time `json:"submittedAt" yaml:"submitted_at"`
}

// PR is a pull request under review, as last reported by GitHub.
// ID is the GitHub node id, which is stable across fetches and unique across repositories.
type PR struct {
	ID         string   `json:"id" yaml:"id"`
	Title      string   `json:"title" yaml:"title"`
	Repository string   `json:"repository" yaml:"repository"`
	Reviews    []Review `json:"reviews" yaml:"reviews"`
}

// HasReviews reports whether at least one review has been submitted
func (p PR) HasReviews() bool {
	return len(p.Reviews) > 0
}

// LatestReviewTime returns the most recent review submission time.
// The result is invalid when the PR has no reviews.
func (p PR) LatestReviewTime() NullTime {
	var latest NullTime
	for _, r := range p.Reviews {
		if !latest.Valid || r.SubmittedAt.After(latest.Time) {
			latest = NewNullTime(r.SubmittedAt)
		}
	}
	return latest
}

// TrackedPR is a PR plus the session-local acknowledgement flag
type TrackedPR struct {
	Acknowledged bool `json:"acknowledged"`
	PR           PR   `json:"pr"`
}
