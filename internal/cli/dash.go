package cli

import (
	"github.com/spf13/cobra"

	"github.com/SgtClickClack/DojoPool-sub003/internal/config"
	"github.com/SgtClickClack/DojoPool-sub003/internal/dojo"
	"github.com/SgtClickClack/DojoPool-sub003/internal/tui"
)

func newDashCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "dash",
		Short: "Open the full dashboard",
		Long:  "Open the tabbed dashboard: tournaments, clans, venues, and chat with the gateway status bar.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := config.Current()
			g, err := openGateway(ctx, cfg)
			if err != nil {
				return err
			}

			if output == "json" || resolveMode(output) != tui.OutputInteractive {
				snap, err := dojo.LoadSnapshot(ctx, g, cfg.Chat.HistoryPage)
				if err != nil {
					return err
				}
				if output == "json" {
					return writeJSON(cmd.OutOrStdout(), snap)
				}
				renderSnapshot(cmd.OutOrStdout(), snap)
				return nil
			}
			return runProgram(tui.NewDashboardModel(ctx, g))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "auto", "output mode: auto, tui, styled, table, json")
	return cmd
}
