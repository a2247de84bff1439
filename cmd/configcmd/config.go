package configcmd

import (
	"fmt"
	"maps"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bjulian5/ghprs/internal/config"
	"github.com/bjulian5/ghprs/internal/ui"
)

const redacted = "********"

// Command groups configuration helpers
type Command struct {
	Format string
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after merging defaults, the config file and
GHPRS_* environment variables. Secrets are redacted.

Example:
  ghprs config show
  ghprs config show --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return c.Run(viper.GetViper())
		},
	}
	show.Flags().StringVar(&c.Format, "format", ui.FormatTOML, "Output format: toml or yaml")

	command.AddCommand(show)
	parent.AddCommand(command)
}

// Run prints the settings held by v
func (c *Command) Run(v *viper.Viper) error {
	if c.Format != ui.FormatTOML && c.Format != ui.FormatYAML {
		return fmt.Errorf("unsupported format %q: use toml or yaml", c.Format)
	}

	if path := v.ConfigFileUsed(); path != "" {
		ui.Print(ui.Dim("# " + path))
	} else {
		ui.Print(ui.Dim("# no config file, expected at " + config.ConfigFile()))
	}
	return ui.Encode(ui.Out, c.Format, Settings(v))
}

// Settings returns the configuration keys of v with secrets redacted
func Settings(v *viper.Viper) map[string]any {
	settings := v.AllSettings()
	for _, key := range []string{"config", "force", "verbose", "output"} {
		delete(settings, key)
	}

	if server, ok := settings["server"].(map[string]any); ok {
		server = maps.Clone(server)
		if key, _ := server["api_key"].(string); key != "" {
			server["api_key"] = redacted
		}
		settings["server"] = server
	}
	return settings
}
