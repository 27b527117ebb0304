package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// truncate trims value and cuts it to limit terminal cells, marking the cut
// with "...". A non-positive limit disables truncation.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || ansi.StringWidth(value) <= limit {
		return value
	}
	if limit <= 3 {
		return ansi.Truncate(value, limit, "")
	}
	return ansi.Truncate(value, limit, "...")
}

// padRight pads s with spaces to width terminal cells.
func padRight(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
