package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SgtClickClack/DojoPool-sub003/internal/config"
	"github.com/SgtClickClack/DojoPool-sub003/internal/tui"
)

func newVenuesCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "venues",
		Short: "Browse the venue directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			g, err := openGateway(ctx, config.Current())
			if err != nil {
				return err
			}

			if output == "json" {
				vs, err := g.Venues(ctx)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), vs)
			}
			if mode := resolveMode(output); mode != tui.OutputInteractive {
				vs, err := g.Venues(ctx)
				if err != nil {
					return err
				}
				if mode == tui.OutputStyled {
					fmt.Fprintln(cmd.OutOrStdout(), tui.RenderVenuesSummary(vs))
				}
				return renderVenuesTable(cmd.OutOrStdout(), vs)
			}
			return runProgram(tui.NewVenuesModel(ctx, g.Venues))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "auto", "output mode: auto, tui, styled, table, json")
	return cmd
}
