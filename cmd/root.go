package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bjulian5/ghprs/cmd/ack"
	"github.com/bjulian5/ghprs/cmd/acked"
	"github.com/bjulian5/ghprs/cmd/clearsession"
	"github.com/bjulian5/ghprs/cmd/configcmd"
	"github.com/bjulian5/ghprs/cmd/count"
	"github.com/bjulian5/ghprs/cmd/fetch"
	"github.com/bjulian5/ghprs/cmd/serve"
	"github.com/bjulian5/ghprs/cmd/unack"
	"github.com/bjulian5/ghprs/internal/common"
	"github.com/bjulian5/ghprs/internal/config"
	"github.com/bjulian5/ghprs/internal/ui"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ghprs",
	Short: "Track which reviews on your pull requests you have seen",
	Long: `ghprs watches your open pull requests across repositories and tells you
which ones got reviews since you last acknowledged them.

It talks to GitHub through the gh CLI and caches results for a few minutes.
Run it locally, or share acknowledgements between machines with 'ghprs serve'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(viper.GetViper(), cfgFile); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
		if output := viper.GetString(common.FlagOutput); !ui.IsListingFormat(output) {
			return fmt.Errorf("invalid --output %q: must be one of %v", output, ui.ListingFormats())
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		ui.Error(err.Error())
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/ghprs/config.toml, or $"+config.ConfigFileEnv+")")
	flags.BoolP(common.FlagForce, "f", false, "Refresh from GitHub even if the cache is fresh")
	flags.BoolP(common.FlagVerbose, "v", false, "Log debug output to stderr")
	flags.StringP(common.FlagOutput, "o", ui.FormatTable, "Listing format: table, tree, json or yaml")

	for _, name := range []string{common.FlagForce, common.FlagVerbose, common.FlagOutput} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	// Register all commands
	commands := []Command{
		&count.Command{},
		&fetch.Command{},
		&acked.Command{},
		&ack.Command{},
		&unack.Command{},
		&clearsession.Command{},
		&serve.Command{},
		&configcmd.Command{},
	}

	for _, cmd := range commands {
		cmd.Register(rootCmd)
	}
}
