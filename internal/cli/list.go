package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/five82/issuedeck/internal/app"
	"github.com/five82/issuedeck/internal/github"
)

func newListCommand(g *globalOptions) *cobra.Command {
	var (
		query     string
		favorites bool
		stateFlag string
		pages     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch pages of issues and print the filtered view",
		Long: `List loads up to --pages pages from the configured search, one after
another, then prints the issues that pass the title filter, the state filter,
and the favorites-only switch.

A failed page (for example a rate limit) stops loading; whatever was loaded
before it is still printed and the failure is reported on stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if pages < 1 {
				return fmt.Errorf("--pages must be at least 1")
			}
			st, err := parseStateFlag(stateFlag)
			if err != nil {
				return err
			}

			sess, err := app.Open(g.appOptions("list"))
			if err != nil {
				return err
			}
			defer func() { _ = sess.Close() }()

			store := sess.Store
			store.SetQuery(query)
			store.SetFavoritesOnly(favorites)
			store.SetStateFilter(st)

			loaded, loadErr := app.LoadPages(cmd.Context(), store, pages)
			snap := store.Snapshot()

			out := cmd.OutOrStdout()
			if len(snap.View) > 0 {
				_, _ = fmt.Fprintln(out, renderIssueTable(snap.View))
			}
			errOut := cmd.ErrOrStderr()
			_, _ = fmt.Fprintf(errOut, "%d shown, %d loaded of %d (%d pages)\n",
				len(snap.View), snap.Accumulated, snap.TotalCount, loaded)
			if loadErr != nil {
				_, _ = fmt.Fprintf(errOut, "loading stopped: %v\n", loadErr)
				if snap.RateLimited {
					_, _ = fmt.Fprintln(errOut, "rate limited: try again later")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "case-insensitive title filter")
	cmd.Flags().BoolVarP(&favorites, "favorites", "f", false, "show favorites only")
	cmd.Flags().StringVar(&stateFlag, "state", "", "issue state filter: open or closed")
	cmd.Flags().IntVarP(&pages, "pages", "p", 1, "number of pages to load")
	return cmd
}

func parseStateFlag(raw string) (github.IssueState, error) {
	switch st := github.ParseState(raw); st {
	case "", github.StateOpen, github.StateClosed:
		return st, nil
	default:
		return "", fmt.Errorf("invalid --state %q (want open or closed)", raw)
	}
}

func renderIssueTable(issues []github.Issue) string {
	rows := make([][]string, 0, len(issues))
	for _, issue := range issues {
		star := ""
		if issue.Favorite {
			star = "★"
		}
		created := "-"
		if !issue.CreatedAt.IsZero() {
			created = issue.CreatedAt.Format("2006-01-02")
		}
		rows = append(rows, []string{
			star,
			fmt.Sprintf("#%d", issue.Number),
			string(issue.Kind()),
			created,
			strings.TrimSpace(issue.Title),
		})
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderHeader(false).
		Headers("", "#", "STATE", "CREATED", "TITLE").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}
