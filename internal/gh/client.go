package gh

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bjulian5/ghprs/internal/model"
)

const prListFields = "id,title,reviews"

// Client provides GitHub operations via gh CLI
type Client struct {
	bin string
}

// NewClient creates a new GitHub client using the gh binary on PATH
func NewClient() *Client {
	return &Client{bin: "gh"}
}

// CheckAuth verifies that gh is installed and logged in.
// Without it no repository can be fetched, so callers treat failure as fatal for a refresh.
func (c *Client) CheckAuth(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, c.bin, "auth", "status")
	err := cmd.Run()
	if err == nil {
		return nil
	}

	if errors.Is(err, exec.ErrNotFound) {
		return ErrCLINotFound
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return ErrNotLoggedIn
	}

	return &CommandError{Operation: "gh auth status", Err: err}
}

// ListPRs lists the open PRs of repository, restricted to author when it is not empty
func (c *Client) ListPRs(ctx context.Context, repository, author string) ([]model.PR, error) {
	args := []string{"pr", "list", "--repo", repository}
	if author != "" {
		args = append(args, "--author", author)
	}
	args = append(args, "--json", prListFields)

	output, err := c.execGH(ctx, args...)
	if err != nil {
		return nil, err
	}

	var raw []prJSON
	if err := json.Unmarshal(output, &raw); err != nil {
		return nil, &CommandError{
			Operation: "gh pr list",
			Err:       fmt.Errorf("failed to parse PR list: %w", err),
		}
	}

	prs := make([]model.PR, 0, len(raw))
	for i := range raw {
		prs = append(prs, raw[i].toPR(repository))
	}
	return prs, nil
}

// execGH executes a gh CLI command and returns the output
func (c *Client) execGH(ctx context.Context, args ...string) ([]byte, error) {
	operation := "gh " + strings.Join(args[:min(2, len(args))], " ")

	cmd := exec.CommandContext(ctx, c.bin, args...)
	output, err := cmd.Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, ErrCLINotFound
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &CommandError{
				Operation: operation,
				Stderr:    strings.TrimSpace(string(exitErr.Stderr)),
				Err:       err,
			}
		}
		return nil, &CommandError{Operation: operation, Err: err}
	}
	return output, nil
}
