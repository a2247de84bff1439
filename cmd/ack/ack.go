package ack

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjulian5/ghprs/internal/common"
	"github.com/bjulian5/ghprs/internal/model"
	"github.com/bjulian5/ghprs/internal/session"
	"github.com/bjulian5/ghprs/internal/ui"
)

// Command acknowledges the latest review of a pull request
type Command struct {
	ID    string
	Index int

	// Clients (can be mocked in tests)
	Tracker session.Tracker
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:     "ack",
		Aliases: []string{"a"},
		Short:   "Acknowledge a reviewed pull request",
		Long: `Mark the reviews of a pull request as seen. It stays acknowledged until
someone submits a newer review.

Pick the pull request by GitHub id, by its index in 'ghprs fetch', or
interactively when neither is given.

Example:
  ghprs ack                      # fuzzy-pick from unacknowledged PRs
  ghprs ack --index 0
  ghprs a --id PR_kwDOAbc123`,
		Args: cobra.NoArgs,
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			var err error
			c.Tracker, err = common.InitTracker(cobraCmd.Context())
			return err
		},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return c.Run(cobraCmd.Context())
		},
	}

	command.Flags().StringVar(&c.ID, "id", "", "GitHub id of the pull request")
	command.Flags().IntVar(&c.Index, "index", common.NoIndex, "Index of the pull request as listed by 'ghprs fetch'")
	command.MarkFlagsMutuallyExclusive("id", "index")

	parent.AddCommand(command)
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
	var listed []model.PR
	if c.ID == "" {
		var err error
		listed, err = c.Tracker.Unacknowledged(ctx)
		if err != nil {
			return fmt.Errorf("failed to list unacknowledged pull requests: %w", err)
		}
		if len(listed) == 0 && c.Index == common.NoIndex {
			ui.Info("No unacknowledged pull requests")
			return nil
		}
	}

	id, err := common.ResolvePR(listed, c.ID, c.Index)
	if errors.Is(err, common.ErrNoSelection) {
		ui.Info("Nothing acknowledged")
		return nil
	}
	if err != nil {
		return err
	}

	if err := c.Tracker.Acknowledge(ctx, id); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return fmt.Errorf("pull request %s is not tracked: run 'ghprs fetch' to see what is", id)
		}
		return fmt.Errorf("failed to acknowledge %s: %w", id, err)
	}
	ui.Successf("Acknowledged %s", describe(listed, id))

	remaining, err := c.Tracker.Unacknowledged(ctx)
	if err != nil {
		return fmt.Errorf("failed to list unacknowledged pull requests: %w", err)
	}
	ui.Header("Now")
	return common.PrintPRs("Unacknowledged", remaining, false)
}

// describe names a PR by title when it was listed, otherwise by id
func describe(prs []model.PR, id string) string {
	for _, pr := range prs {
		if pr.ID == id {
			return fmt.Sprintf("%q (%s)", pr.Title, pr.Repository)
		}
	}
	return id
}
