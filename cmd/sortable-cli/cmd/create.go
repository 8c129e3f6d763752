package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sortable/internal/application/commands"
)

var addCmd = &cobra.Command{
	Use:   "add <label>...",
	Short: "Append a new entry to a scope",
	Long: `Append a new entry at the end of a scope. Its rank is one past
the current maximum.

Examples:
  sortable-cli add "Buy milk"
  sortable-cli add --scope album-7 Intro track`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := strings.Join(args, " ")

		result, err := commands.NewCreateCommand(GetStore(), scope, label).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
