package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newTallyCommand(ctx *commandContext) *cobra.Command {
	var roomID string

	cmd := &cobra.Command{
		Use:   "tally",
		Short: "Show the current-period vote tally and winner of a room",
		RunE: func(cmd *cobra.Command, args []string) error {
			votes, err := ctx.voteService()
			if err != nil {
				return err
			}

			entries, err := votes.Tally(cmd.Context(), roomID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No votes this period")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for i, e := range entries {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					string(e.Media.Type),
					e.Media.ID,
					strconv.Itoa(e.Count),
				})
			}
			fmt.Fprintln(out, renderTable(tallyColumns, rows))

			winner, err := votes.Winner(cmd.Context(), roomID)
			if err != nil {
				return err
			}
			if winner == nil {
				fmt.Fprintln(out, "Winner: not decided yet")
				return nil
			}
			title := winner.Media.Key()
			if winner.Favorite != nil && winner.Favorite.Title != "" {
				title = winner.Favorite.Title
			}
			label := "leading choice"
			if winner.Tonight {
				label = "watching tonight"
			}
			fmt.Fprintf(out, "Winner: %s (%d of %d votes), %s\n", title, winner.Count, winner.Total, label)
			return nil
		},
	}

	cmd.Flags().StringVar(&roomID, "room", "", "Room id")
	_ = cmd.MarkFlagRequired("room")
	return cmd
}
