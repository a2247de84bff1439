package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/bjulian5/ghprs/internal/model"
)

const (
	// EnvPrefix prefixes every environment override, e.g. GHPRS_SERVER_ADDR for server.addr
	EnvPrefix = "GHPRS"

	// ConfigFileEnv points at an explicit config file
	ConfigFileEnv = "GHPRS_CONFIG_FILE"

	// DefaultSessionName is the session used when none is named
	DefaultSessionName = "default"
)

// Storage backends for server mode
const (
	StorageJSON   = "json"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config represents the complete ghprs configuration
type Config struct {
	// Author restricts tracked PRs to those opened by this GitHub login
	Author string `mapstructure:"author"`
	// Repositories are the owner/name repositories to poll
	Repositories []string `mapstructure:"repositories"`
	// TTL is how long fetched PRs are trusted before the next query refetches
	TTL time.Duration `mapstructure:"ttl"`
	// StateFile is where the local session is persisted
	StateFile string       `mapstructure:"state_file"`
	LogLevel  string       `mapstructure:"log_level"`
	Server    ServerConfig `mapstructure:"server"`
	Client    ClientConfig `mapstructure:"client"`
}

// ServerConfig controls `ghprs serve`
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	// Storage is one of json, sqlite, memory
	Storage string `mapstructure:"storage"`
	DBPath  string `mapstructure:"db_path"`
	// APIKey enables bearer authentication when set
	APIKey string `mapstructure:"api_key"`
}

// ClientConfig controls how the CLI reaches a running server
type ClientConfig struct {
	// ServerURL switches every command to remote mode when set
	ServerURL string        `mapstructure:"server_url"`
	Session   string        `mapstructure:"session"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// Default returns the configuration used when nothing is configured
func Default() *Config {
	dir := ConfigDir()
	return &Config{
		TTL:       5 * time.Minute,
		StateFile: filepath.Join(dir, "ghprs-state.json"),
		LogLevel:  "info",
		Server: ServerConfig{
			Addr:    "127.0.0.1:7192",
			Storage: StorageJSON,
			DBPath:  filepath.Join(dir, "ghprs.db"),
		},
		Client: ClientConfig{
			Session: DefaultSessionName,
			Timeout: 30 * time.Second,
		},
	}
}

// SetDefaults registers default values with v
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("author", defaults.Author)
	v.SetDefault("repositories", []string{})
	v.SetDefault("ttl", defaults.TTL.String())
	v.SetDefault("state_file", defaults.StateFile)
	v.SetDefault("log_level", defaults.LogLevel)

	v.SetDefault("server.addr", defaults.Server.Addr)
	v.SetDefault("server.storage", defaults.Server.Storage)
	v.SetDefault("server.db_path", defaults.Server.DBPath)
	v.SetDefault("server.api_key", defaults.Server.APIKey)

	v.SetDefault("client.server_url", defaults.Client.ServerURL)
	v.SetDefault("client.session", defaults.Client.Session)
	v.SetDefault("client.timeout", defaults.Client.Timeout.String())
}

// Init prepares v to read the config file and GHPRS_* environment overrides.
// An explicit cfgFile wins over GHPRS_CONFIG_FILE, which wins over the default location.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile == "" {
		cfgFile = os.Getenv(ConfigFileEnv)
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(ConfigDir())
	}

	v.AutomaticEnv()
	v.SetEnvPrefix(EnvPrefix)
	// GHPRS_SERVER_ADDR for server.addr
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// A missing default config file is fine; env and flags may carry everything
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

// Load reads the configuration from v into a Config struct and validates it
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Selection returns the PR selection criteria sessions are built with
func (c *Config) Selection() model.Selection {
	return model.Selection{
		Author:       c.Author,
		Repositories: append([]string(nil), c.Repositories...),
	}
}

// IsRemote reports whether CLI commands should talk to a server
func (c *Config) IsRemote() bool {
	return c.Client.ServerURL != ""
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ghprs")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ghprs"
	}
	return filepath.Join(home, ".config", "ghprs")
}

// ConfigFile returns the path to the default config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.toml")
}
