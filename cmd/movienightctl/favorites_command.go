package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/immxrtalbeast/movienight/internal/domain"
	"github.com/spf13/cobra"
)

func newFavoritesCommand(ctx *commandContext) *cobra.Command {
	var roomID string
	var roleFlag string

	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "List a room's favorites, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var role domain.Role
			if roleFlag != "" {
				parsed, err := domain.ParseRole(roleFlag)
				if err != nil {
					return err
				}
				role = parsed
			}

			favorites, err := ctx.favoriteService()
			if err != nil {
				return err
			}
			favs, err := favorites.ListFavorites(cmd.Context(), roomID, role)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(favs) == 0 {
				fmt.Fprintln(out, "No favorites")
				return nil
			}

			rows := make([][]string, 0, len(favs))
			for _, f := range favs {
				rating := "-"
				if f.Rating != nil {
					rating = strconv.FormatFloat(*f.Rating, 'f', 1, 64)
				}
				rows = append(rows, []string{
					f.Title,
					string(f.MediaType),
					f.MediaID,
					string(f.Role),
					rating,
					f.CreatedAt.Format(time.DateTime),
				})
			}
			fmt.Fprintln(out, renderTable(favoriteColumns, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&roomID, "room", "", "Room id")
	cmd.Flags().StringVar(&roleFlag, "role", "", "Only favorites added by this role")
	_ = cmd.MarkFlagRequired("room")
	return cmd
}
