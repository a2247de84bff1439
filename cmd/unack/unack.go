package unack

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

// Command puts an acknowledged pull request back into the unacknowledged list
type Command struct {
	ID    string
	Index int

	// Clients (can be mocked in tests)
	Tracker session.Tracker
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:     "unack",
		Aliases: []string{"ua"},
		Short:   "Unacknowledge a pull request",
		Long: `Undo an acknowledgement so the pull request shows up in 'ghprs fetch' again.

Pick the pull request by GitHub id, by its index in 'ghprs fetch-acked', or
interactively when neither is given.

Example:
  ghprs unack                    # fuzzy-pick from acknowledged PRs
  ghprs unack --index 2
  ghprs ua --id PR_kwDOAbc123`,
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
	command.Flags().IntVar(&c.Index, "index", common.NoIndex, "Index of the pull request as listed by 'ghprs fetch-acked'")
	command.MarkFlagsMutuallyExclusive("id", "index")

	parent.AddCommand(command)
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
	var listed []model.PR
	if c.ID == "" {
		var err error
		listed, err = c.Tracker.Acknowledged(ctx)
		if err != nil {
			return fmt.Errorf("failed to list acknowledged pull requests: %w", err)
		}
		if len(listed) == 0 && c.Index == common.NoIndex {
			ui.Info("No acknowledged pull requests")
			return nil
		}
	}

	id, err := common.ResolvePR(listed, c.ID, c.Index)
	if errors.Is(err, common.ErrNoSelection) {
		ui.Info("Nothing unacknowledged")
		return nil
	}
	if err != nil {
		return err
	}

	if err := c.Tracker.Unacknowledge(ctx, id); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return fmt.Errorf("pull request %s is not tracked: run 'ghprs fetch-acked' to see what is", id)
		}
		return fmt.Errorf("failed to unacknowledge %s: %w", id, err)
	}

	title := id
	for _, pr := range listed {
		if pr.ID == id {
			title = fmt.Sprintf("%q (%s)", pr.Title, pr.Repository)
		}
	}
	ui.Successf("Unacknowledged %s", title)

	remaining, err := c.Tracker.Acknowledged(ctx)
	if err != nil {
		return fmt.Errorf("failed to list acknowledged pull requests: %w", err)
	}
	ui.Header("Now")
	return common.PrintPRs("Acknowledged", remaining, true)
}
