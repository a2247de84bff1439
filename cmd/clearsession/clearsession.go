package clearsession

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjulian5/ghprs/internal/common"
	"github.com/bjulian5/ghprs/internal/session"
	"github.com/bjulian5/ghprs/internal/ui"
)

// Command forgets every tracked PR and acknowledgement of the session
type Command struct {
	Tracker session.Tracker
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:     "clear-session",
		Aliases: []string{"cls"},
		Short:   "Forget all acknowledgements",
		Long: `Drop every tracked pull request and acknowledgement of the session.
The next command fetches from GitHub again.

Against a server this removes the session there.

Example:
  ghprs clear-session
  ghprs cls`,
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
	if err := c.Tracker.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	ui.Success("Session cleared")
	return nil
}
