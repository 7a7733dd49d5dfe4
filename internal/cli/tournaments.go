package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SgtClickClack/DojoPool-sub003/internal/config"
	"github.com/SgtClickClack/DojoPool-sub003/internal/tui"
)

func newTournamentsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "tournaments",
		Short: "Browse the tournament board",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			g, err := openGateway(ctx, config.Current())
			if err != nil {
				return err
			}

			if output == "json" {
				ts, err := g.Tournaments(ctx)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), ts)
			}
			if mode := resolveMode(output); mode != tui.OutputInteractive {
				ts, err := g.Tournaments(ctx)
				if err != nil {
					return err
				}
				if mode == tui.OutputStyled {
					fmt.Fprintln(cmd.OutOrStdout(), tui.RenderTournamentsSummary(ts))
				}
				return renderTournamentsTable(cmd.OutOrStdout(), ts)
			}
			return runProgram(tui.NewTournamentsModel(ctx, g.Tournaments))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "auto", "output mode: auto, tui, styled, table, json")
	return cmd
}
