package gh

import (
	"errors"
	"fmt"
	"time"

	"github.com/bjulian5/ghprs/internal/model"
)

var (
	// ErrCLINotFound is returned when the gh binary is not on PATH
	ErrCLINotFound = errors.New("cannot find gh CLI binary in PATH")

	// ErrNotLoggedIn is returned when gh has no authenticated account
	ErrNotLoggedIn = errors.New("not logged into gh CLI, please run 'gh auth login'")
)

// CommandError describes a gh invocation that failed or printed something unexpected
type CommandError struct {
	Operation string
	Stderr    string
	Err       error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s failed: %v (stderr: %s)", e.Operation, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// prJSON mirrors the fields requested from `gh pr list --json id,title,reviews`
type prJSON struct {
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	Reviews []reviewJSON `json:"reviews"`
}

type reviewJSON struct {
	ID     string `json:"id"`
	Author struct {
		Login string `json:"login"`
	} `json:"author"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// toPR converts a prJSON to a PR belonging to repository
func (p *prJSON) toPR(repository string) model.PR {
	pr := model.PR{
		ID:         p.ID,
		Title:      p.Title,
		Repository: repository,
	}
	for _, r := range p.Reviews {
		// Pending reviews have no submission time yet
		if r.SubmittedAt.IsZero() {
			continue
		}
		pr.Reviews = append(pr.Reviews, model.Review{
			ID:          r.ID,
			Author:      model.Author{Login: r.Author.Login},
			SubmittedAt: r.SubmittedAt,
		})
	}
	return pr
}
