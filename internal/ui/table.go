package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/issuedeck/internal/github"
)

// Column widths for the issue table.
const (
	colStar    = 2
	colNumber  = 8
	colState   = 8
	colCreated = 10
	minTitle   = 12

	// header, filter box (3), column header, footer
	chromeHeight = 6
)

// tableHeight returns the number of issue rows that fit on screen.
func (m Model) tableHeight() int {
	return m.height - chromeHeight
}

// renderTable renders the column header and the visible slice of the view.
func (m Model) renderTable() string {
	styles := m.theme.Styles()
	height := max(m.tableHeight(), 1)
	titleWidth := max(m.width-colStar-colNumber-colState-colCreated-6, minTitle)

	var b strings.Builder
	header := padRight("", colStar) + " " +
		padRight("#", colNumber) + " " +
		padRight("STATE", colState) + " " +
		padRight("CREATED", colCreated) + " " +
		"TITLE"
	b.WriteString(styles.MutedText.Bold(true).Render(header))

	if len(m.snapshot.View) == 0 {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render(m.emptyMessage()))
		for i := 1; i < height; i++ {
			b.WriteString("\n")
		}
		return b.String()
	}

	end := min(m.offset+height, len(m.snapshot.View))
	now := time.Now()
	rendered := 0
	for i := m.offset; i < end; i++ {
		b.WriteString("\n")
		b.WriteString(m.renderRow(m.snapshot.View[i], i == m.selectedRow, titleWidth, now))
		rendered++
	}
	for ; rendered < height; rendered++ {
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderRow(issue github.Issue, selected bool, titleWidth int, now time.Time) string {
	styles := m.theme.Styles()

	star := " "
	if issue.Favorite {
		star = "★"
	}
	number := fmt.Sprintf("#%d", issue.Number)
	kind := string(issue.Kind())
	created := formatAge(issue.CreatedAt, now)
	title := truncate(issue.Title, titleWidth)

	if selected {
		line := padRight(star, colStar) + " " +
			padRight(number, colNumber) + " " +
			padRight(kind, colState) + " " +
			padRight(created, colCreated) + " " +
			padRight(title, titleWidth)
		return styles.Selected.Width(m.width).Render(line)
	}

	return styles.Star.Render(padRight(star, colStar)) + " " +
		styles.AccentText.Render(padRight(number, colNumber)) + " " +
		styles.StatusStyle(kind).Render(kind) + strings.Repeat(" ", max(colState-len(kind)-2, 0)) + " " +
		styles.MutedText.Render(padRight(created, colCreated)) + " " +
		styles.Text.Render(title)
}

func (m Model) emptyMessage() string {
	snap := m.snapshot
	switch {
	case snap.Loading && snap.Accumulated == 0:
		return "Fetching first page..."
	case snap.Accumulated == 0 && snap.RateLimited:
		return "No issues loaded. Press m to retry."
	case snap.Filter.FavoritesOnly && snap.Favorites == 0:
		return "No favorites yet. Press F to show all issues."
	case snap.Filter.Active():
		return "No issues match the current filter."
	default:
		return "No issues."
	}
}

// formatAge renders created as a compact age ("3d", "5h") relative to now.
func formatAge(created, now time.Time) string {
	if created.IsZero() {
		return "-"
	}
	d := now.Sub(created)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 365*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return created.Format("2006-01-02")
	}
}
