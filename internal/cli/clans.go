package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SgtClickClack/DojoPool-sub003/internal/config"
	"github.com/SgtClickClack/DojoPool-sub003/internal/tui"
)

func newClansCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "clans",
		Short: "Browse the clan ladder",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			g, err := openGateway(ctx, config.Current())
			if err != nil {
				return err
			}

			if output == "json" {
				cs, err := g.Clans(ctx)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), cs)
			}
			if mode := resolveMode(output); mode != tui.OutputInteractive {
				cs, err := g.Clans(ctx)
				if err != nil {
					return err
				}
				if mode == tui.OutputStyled {
					fmt.Fprintln(cmd.OutOrStdout(), tui.RenderClansSummary(cs))
				}
				return renderClansTable(cmd.OutOrStdout(), cs)
			}
			return runProgram(tui.NewClansModel(ctx, g.Clans, g.ClanMembers))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "auto", "output mode: auto, tui, styled, table, json")
	return cmd
}
