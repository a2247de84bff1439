package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bjulian5/ghprs/internal/common"
	"github.com/bjulian5/ghprs/internal/config"
	"github.com/bjulian5/ghprs/internal/server"
)

// Command runs the multi-session HTTP server
type Command struct{}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:   "serve",
		Short: "Serve sessions over HTTP",
		Long: `Run a server that tracks acknowledgements for any number of named sessions,
so several machines can share them. Point clients at it with client.server_url.

Sessions are created on first use and persisted to the configured storage
(json, sqlite or memory).

Routes:
  GET    /health
  GET    /sessions
  GET    /{session}/unacknowledged-prs
  GET    /{session}/acknowledgement
  POST   /{session}/acknowledgement/{prID}
  DELETE /{session}/acknowledgement/{prID}
  POST   /{session}/refresh
  DELETE /{session}/clear-session

Example:
  ghprs serve
  ghprs serve --addr 0.0.0.0:7192 --storage sqlite`,
		Args: cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return c.Run(cobraCmd.Context())
		},
	}

	command.Flags().String("addr", "", "Listen address (overrides server.addr)")
	command.Flags().String("storage", "", "Session storage: json, sqlite or memory (overrides server.storage)")
	_ = viper.BindPFlag("server.addr", command.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.storage", command.Flags().Lookup("storage"))

	parent.AddCommand(command)
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
	cfg, err := common.LoadConfig()
	if err != nil {
		return err
	}
	// The server fetches for its sessions even when this CLI is configured as a client
	if errs := cfg.ValidateSelection(); len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", config.ValidationErrors(errs))
	}

	logger := cfg.NewLogger(os.Stderr, true)

	persister, closeStore, err := common.NewServerPersister(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("failed to close storage", "error", err)
		}
	}()

	registry := common.NewRegistry(cfg, persister, logger)
	logger.Info("serving sessions",
		"author", cfg.Author,
		"repositories", cfg.Repositories,
		"ttl", cfg.TTL.String(),
		"storage", cfg.Server.Storage,
		"auth", cfg.Server.APIKey != "",
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg.Server.Addr, registry, cfg.Server.APIKey, logger).Run(ctx)
}
