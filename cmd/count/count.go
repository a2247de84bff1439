package count

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjulian5/ghprs/internal/common"
	"github.com/bjulian5/ghprs/internal/session"
	"github.com/bjulian5/ghprs/internal/ui"
)

// Command prints how many PRs have reviews waiting to be acknowledged
type Command struct {
	// Clients (can be mocked in tests)
	Tracker session.Tracker
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:     "count",
		Aliases: []string{"c"},
		Short:   "Count unacknowledged pull requests",
		Long: `Print the number of your pull requests with reviews you have not acknowledged yet.

Handy for shell prompts and status bars.

Example:
  ghprs count
  ghprs c --force`,
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

	parent.AddCommand(command)
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
	prs, err := c.Tracker.Unacknowledged(ctx)
	if err != nil {
		return fmt.Errorf("failed to list unacknowledged pull requests: %w", err)
	}
	ui.Print(fmt.Sprint(len(prs)))
	return nil
}
