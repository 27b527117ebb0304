package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/five82/issuedeck/internal/app"
)

func newFavCommand(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fav",
		Short: "Manage favorite issues",
	}
	cmd.AddCommand(newFavToggleCommand(g), newFavListCommand(g))
	return cmd
}

func newFavToggleCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <number>...",
		Short: "Add or remove issues from favorites",
		Long: `Toggle flips each issue number in turn: favorites are removed, anything
else is added. The change is saved before the next number is processed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil || id <= 0 {
					return fmt.Errorf("invalid issue number %q", arg)
				}
				ids = append(ids, id)
			}

			sess, err := app.Open(g.appOptions("fav toggle"))
			if err != nil {
				return err
			}
			defer func() { _ = sess.Close() }()

			out := cmd.OutOrStdout()
			favs := sess.Store.Favorites()
			for _, id := range ids {
				if err := sess.Store.ToggleFavorite(id); err != nil {
					return fmt.Errorf("toggle #%d: %w", id, err)
				}
				if favs.IsFavorite(id) {
					_, _ = fmt.Fprintf(out, "★ #%d\n", id)
				} else {
					_, _ = fmt.Fprintf(out, "  #%d\n", id)
				}
			}
			return nil
		},
	}
}

func newFavListCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print favorite issue numbers in the order they were added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := app.Open(g.appOptions("fav list"))
			if err != nil {
				return err
			}
			defer func() { _ = sess.Close() }()

			for _, id := range sess.Store.Favorites().IDs() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}
