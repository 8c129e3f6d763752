package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sortable/internal/application/commands"
	"sortable/internal/domain"
)

var (
	listPage int
	listDesc bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of a scope in rank order",
	Long: `List one page of a scope in rank order, with the bulk move
actions offered on that page.

Examples:
  sortable-cli list
  sortable-cli list --page 2 --desc
  sortable-cli list --scope album-7`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := commands.NewListCommand(GetStore(), scope, listPage, cfg.PageSize, direction(listDesc)).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "page %d/%d, %d entries\n", res.Page, res.NumPages, res.Count)
		for _, e := range res.Entries {
			fmt.Fprintf(out, "%6d  %s  %s\n", e.Rank, e.ID, e.Label)
		}
		if len(res.Actions) > 0 {
			fmt.Fprintf(out, "actions: %s\n", strings.Join(res.Actions, ", "))
		}
		return nil
	},
}

var scopesCmd = &cobra.Command{
	Use:   "scopes",
	Short: "List every scope with its entry count",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		scopes, err := commands.NewScopesCommand(GetStore()).Execute(cmd.Context())
		if err != nil {
			return err
		}

		for _, s := range scopes {
			key := s.Key
			if key == domain.TableScope {
				key = "(table)"
			}
			gaps := ""
			if !s.Dense() {
				gaps = "  (gaps)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %d entries  ranks %d-%d%s\n", key, s.Count, s.MinRank, s.MaxRank, gaps)
		}
		return nil
	},
}

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the latest rank changes of a scope",
	Long: `Show the latest rank changes of a scope, newest first.
The entry a move was requested for is marked with *.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := commands.NewHistoryCommand(store.AuditLog(), scope, historyLimit).Execute(cmd.Context())
		if err != nil {
			return err
		}

		for _, r := range records {
			marker := ""
			if r.Moved {
				marker = "  *"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %d -> %d%s\n",
				r.At.Format("2006-01-02 15:04:05"), r.ID, r.OldRank, r.NewRank, marker)
		}
		return nil
	},
}

func direction(desc bool) domain.Direction {
	if desc {
		return domain.Descending
	}
	return domain.Ascending
}

func init() {
	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "1-based page number")
	listCmd.Flags().BoolVar(&listDesc, "desc", false, "list in descending rank order")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 50, "maximum number of changes")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scopesCmd)
	rootCmd.AddCommand(historyCmd)
}
