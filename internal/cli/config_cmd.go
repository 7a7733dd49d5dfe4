package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/SgtClickClack/DojoPool-sub003/internal/config"
)

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Root().PersistentFlags().GetString("config")
			path, err := config.Init(configPath, force)
			if err != nil {
				return err
			}
			cmd.Printf("Configuration written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  "Print the configuration after defaults, the config file, and environment overrides have been applied.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(config.Current())
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			cmd.Print(string(data))
			return nil
		},
	}
}
