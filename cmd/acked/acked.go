package acked

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjulian5/ghprs/internal/common"
	"github.com/bjulian5/ghprs/internal/session"
)

// Command lists PRs whose latest review has been acknowledged
type Command struct {
	Tracker session.Tracker
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:     "fetch-acked",
		Aliases: []string{"fa"},
		Short:   "List acknowledged pull requests",
		Long: `List your reviewed pull requests that you already acknowledged.

A pull request moves back to 'ghprs fetch' as soon as it gets a newer review.
The # column is the index accepted by 'ghprs unack --index'.

Example:
  ghprs fetch-acked
  ghprs fa --output yaml`,
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
	prs, err := c.Tracker.Acknowledged(ctx)
	if err != nil {
		return fmt.Errorf("failed to list acknowledged pull requests: %w", err)
	}
	return common.PrintPRs("Acknowledged", prs, true)
}
