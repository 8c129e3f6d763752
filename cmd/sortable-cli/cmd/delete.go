package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sortable/internal/application/commands"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an entry",
	Long: `Delete an entry from its scope.

The remaining entries keep their ranks, so the scope has a gap until
the next reorder across it.

Examples:
  sortable-cli delete 5f0c2a1e-...`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewDeleteCommand(GetStore(), scope, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
