// Package cli wires the dojopool command tree: the dashboard, the four
// screen commands, and configuration management.
package cli

import (
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/SgtClickClack/DojoPool-sub003/internal/config"
	"github.com/SgtClickClack/DojoPool-sub003/internal/logging"
)

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger

// NewRootCmd creates the root cobra command for the dojopool CLI.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.Result

	cmd := &cobra.Command{
		Use:     "dojopool",
		Short:   "DojoPool terminal dashboard",
		Long:    "DojoPool: tournaments, clans, venues, and chat from your terminal",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath)
			if err != nil {
				// config init runs before the file it is about to write.
				if !(cmd.Name() == "init" && errors.Is(err, os.ErrNotExist)) {
					return err
				}
				cfg = config.Default()
			}
			if cmd.Flags().Changed("demo") {
				cfg.Gateway.Demo, _ = cmd.Flags().GetBool("demo")
			}
			config.Set(cfg)

			result, err := setupLogging(cmd, cfg)
			if err != nil {
				return err
			}
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if logResult == nil {
				return nil
			}
			return logResult.Close()
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging to stderr")
	cmd.PersistentFlags().String("config", "", "path to config file (default ~/.config/dojopool/config.yaml)")
	cmd.PersistentFlags().Bool("demo", false, "use the built-in demo gateway")

	cmd.AddCommand(
		newDashCmd(), newTournamentsCmd(), newClansCmd(),
		newVenuesCmd(), newChatCmd(), newConfigCmd(),
	)
	return cmd
}

const rootCmdExample = `  # Open the full dashboard
  dojopool dash

  # Browse tournaments interactively
  dojopool tournaments

  # Pipe the clan ladder as JSON
  dojopool clans --output json | jq '.[0]'

  # Venue directory as a table
  dojopool venues --output table

  # Join the dojo chat
  dojopool chat

  # Write a starter config file
  dojopool config init`

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(newConfigInitCmd(), newConfigShowCmd())
	return cmd
}
