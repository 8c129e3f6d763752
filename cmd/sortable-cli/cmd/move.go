package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"sortable/internal/application"
	"sortable/internal/application/commands"
	"sortable/internal/domain"
)

var moveCmd = &cobra.Command{
	Use:   "move <startorder> <endorder>",
	Short: "Move the entry at one rank to another",
	Long: `Move the entry at startorder to endorder. The entries in between
shift by one rank toward the vacated slot.

An endorder of 0 moves the entry first; values past the end move it last.

Examples:
  sortable-cli move 7 2     # entries 2-6 shift down to 3-7
  sortable-cli move 2 7     # entries 3-7 shift up to 2-6`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := application.ParseRank("startorder", args[0], 0)
		if err != nil {
			return err
		}
		end, err := application.ParseRank("endorder", args[1], 0)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		result, err := commands.NewMoveCommand(GetStore(), Observer(), scope, start, end).Execute(ctx)
		changed := 0
		if result != nil {
			changed = len(result.Changes)
		}
		logger.LogMove(ctx, scope, start, end, changed, err)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, result.Message)
		for _, c := range result.Changes {
			fmt.Fprintf(out, "%s  %d -> %d\n", c.ID, c.OldRank, c.NewRank)
		}
		return nil
	},
}

var (
	bulkPage   int
	bulkStep   int
	bulkAction string
	bulkDesc   bool
)

var bulkMoveCmd = &cobra.Command{
	Use:   "bulk-move <id>... --page N --to <first|last|back|forward|PAGE>",
	Short: "Move selected entries to another page",
	Long: `Move entries selected on one page to another page of the list.
Moving backward places them at the start of the target page, moving
forward at its end. Their order among themselves is kept.

Examples:
  sortable-cli bulk-move a1 b2 --page 3 --to back
  sortable-cli bulk-move a1 --page 3 --to back --step 2
  sortable-cli bulk-move a1 b2 --page 1 --to 4
  sortable-cli bulk-move a1 --page 2 --to first --desc`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest, err := parseTarget(bulkAction, bulkStep)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		bulk := commands.NewBulkMoveCommand(GetStore(), Observer(), scope, args, bulkPage, dest, direction(bulkDesc), cfg.PageSize)
		result, err := bulk.Execute(ctx)
		moved := 0
		if result != nil {
			moved = result.Moved
		}
		logger.LogBulkMove(ctx, scope, dest.String(), len(args), moved, err)
		if err != nil {
			if moved > 0 {
				return fmt.Errorf("%w (%d of %d entries were moved)", err, moved, len(args))
			}
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

// parseTarget maps the --to flag onto a destination. A number is an exact
// page; anything else is a relative target or a full action name.
func parseTarget(to string, step int) (domain.Destination, error) {
	if page, err := strconv.Atoi(to); err == nil {
		return domain.Exact(page), nil
	}
	switch to {
	case "first":
		return domain.First(), nil
	case "last":
		return domain.Last(), nil
	case "back", "previous":
		return domain.Back(step), nil
	case "forward", "next":
		return domain.Forward(step), nil
	}
	return domain.ParseDestination(to, step, 0)
}

func init() {
	bulkMoveCmd.Flags().IntVarP(&bulkPage, "page", "p", 1, "1-based page the selection is on")
	bulkMoveCmd.Flags().StringVarP(&bulkAction, "to", "t", "", "target: first, last, back, forward or a page number")
	bulkMoveCmd.Flags().IntVar(&bulkStep, "step", 1, "pages to move back or forward")
	bulkMoveCmd.Flags().BoolVar(&bulkDesc, "desc", false, "the list is in descending rank order")
	_ = bulkMoveCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(bulkMoveCmd)
}
