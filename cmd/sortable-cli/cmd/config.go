package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"sortable/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configForce bool

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write a commented default config file",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{setupKey: setupNone},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultConfigPath
		}
		if err := config.WriteDefault(path, configForce); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", config.ExpandHome(path))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Print the effective configuration",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{setupKey: setupConfig},
	RunE: func(cmd *cobra.Command, args []string) error {
		shown := cfg
		if shown.Token != "" {
			shown.Token = "********"
		}
		data, err := json.MarshalIndent(shown, "", "  ")
		if err != nil {
			return err
		}
		if cfg.Source != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "// loaded from %s\n", cfg.Source)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
