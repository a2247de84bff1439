package common

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/bjulian5/ghprs/internal/config"
	"github.com/bjulian5/ghprs/internal/gh"
	"github.com/bjulian5/ghprs/internal/model"
	"github.com/bjulian5/ghprs/internal/remote"
	"github.com/bjulian5/ghprs/internal/session"
	"github.com/bjulian5/ghprs/internal/storage/jsonfile"
	"github.com/bjulian5/ghprs/internal/storage/sqlite"
	"github.com/bjulian5/ghprs/internal/ui"
)

// Viper keys of the root persistent flags
const (
	FlagForce   = "force"
	FlagVerbose = "verbose"
	FlagOutput  = "output"
)

// LoadConfig loads and validates the configuration initialized by the root command
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// NewCLILogger logs warnings to stderr, or everything at the configured level with --verbose
func NewCLILogger(cfg *config.Config) *slog.Logger {
	level := config.ParseLogLevel(cfg.LogLevel)
	if viper.GetBool(FlagVerbose) {
		level = slog.LevelDebug
	} else {
		level = max(level, slog.LevelWarn)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// InitTracker builds the tracker every session command runs against: the server session
// named by client.session in remote mode, otherwise a local session persisted to state_file.
// Returns an error that is suitable for use in PreRunE hooks
func InitTracker(ctx context.Context) (session.Tracker, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	tracker := NewTracker(ctx, cfg, NewCLILogger(cfg))

	if viper.GetBool(FlagForce) {
		if err := tracker.ForceNextRefresh(ctx); err != nil {
			return nil, fmt.Errorf("failed to force refresh: %w", err)
		}
	}
	return tracker, nil
}

// NewTracker builds the remote or local tracker for cfg
func NewTracker(ctx context.Context, cfg *config.Config, logger *slog.Logger) session.Tracker {
	if cfg.IsRemote() {
		return remote.NewClient(cfg.Client.ServerURL, cfg.Client.Session, cfg.Server.APIKey, cfg.Client.Timeout)
	}

	return session.Open(ctx, cfg.Client.Session, cfg.Selection(), gh.NewClient(),
		session.WithTTL(cfg.TTL),
		session.WithPersister(jsonfile.New(cfg.StateFile)),
		session.WithLogger(logger),
	)
}

// NewServerPersister opens the storage backend selected by server.storage.
// The returned persister is nil for memory storage. The close func is never nil.
func NewServerPersister(cfg *config.Config) (session.Persister, func() error, error) {
	switch cfg.Server.Storage {
	case config.StorageSQLite:
		store, err := sqlite.Open(cfg.Server.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open session database: %w", err)
		}
		return store, store.Close, nil
	case config.StorageJSON:
		return jsonfile.New(cfg.StateFile), noClose, nil
	case config.StorageMemory:
		return nil, noClose, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage %q", cfg.Server.Storage)
	}
}

// NewRegistry builds the session registry the server hosts
func NewRegistry(cfg *config.Config, persister session.Persister, logger *slog.Logger) *session.Registry {
	opts := []session.Option{
		session.WithTTL(cfg.TTL),
		session.WithLogger(logger),
	}
	if persister != nil {
		opts = append(opts, session.WithPersister(persister))
	}
	return session.NewRegistry(cfg.Selection(), gh.NewClient(), opts...)
}

// PrintPRs writes prs in the --output format
func PrintPRs(title string, prs []model.PR, acknowledged bool) error {
	switch format := viper.GetString(FlagOutput); format {
	case ui.FormatTable, "":
		ui.Print(ui.RenderPRTable(prs))
	case ui.FormatTree:
		ui.Print(ui.RenderPRTree(title, prs, acknowledged))
	default:
		if prs == nil {
			prs = []model.PR{}
		}
		return ui.Encode(ui.Out, format, prs)
	}
	return nil
}

func noClose() error { return nil }
