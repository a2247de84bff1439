package fetch

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjulian5/ghprs/internal/common"
	"github.com/bjulian5/ghprs/internal/session"
)

// Command lists PRs with reviews waiting to be acknowledged
type Command struct {
	Tracker session.Tracker
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:     "fetch",
		Aliases: []string{"f"},
		Short:   "List unacknowledged pull requests",
		Long: `List your pull requests that received reviews you have not acknowledged yet,
oldest latest review first.

The # column is the index accepted by 'ghprs ack --index'.

Example:
  ghprs fetch
  ghprs f --output tree
  ghprs fetch --force --output json`,
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
	return common.PrintPRs("Unacknowledged", prs, false)
}
