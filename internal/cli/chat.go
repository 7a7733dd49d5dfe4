package cli

import (
	"github.com/spf13/cobra"

	"github.com/SgtClickClack/DojoPool-sub003/internal/config"
	"github.com/SgtClickClack/DojoPool-sub003/internal/tui"
)

func newChatCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Join the dojo chat",
		Long:  "Join the dojo chat. Non-interactive output prints the recent transcript instead.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := config.Current()
			g, err := openGateway(ctx, cfg)
			if err != nil {
				return err
			}

			if output == "json" || resolveMode(output) != tui.OutputInteractive {
				msgs, err := g.ChatHistory(ctx, cfg.Chat.HistoryPage)
				if err != nil {
					return err
				}
				if output == "json" {
					return writeJSON(cmd.OutOrStdout(), msgs)
				}
				renderChatTranscript(cmd.OutOrStdout(), msgs)
				return nil
			}
			return runProgram(tui.NewChatModel(ctx, g))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "auto", "output mode: auto, tui, styled, table, json")
	return cmd
}
