package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay from the full key map.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	titles := []string{"Navigation", "Issues", "General"}
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)

	groups := m.keys.FullHelp()
	for i, group := range groups {
		b.WriteString(styles.AccentText.Bold(true).Render(titles[i]))
		b.WriteString("\n")
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(styles.Text.Render(h.Desc))
			b.WriteString("\n")
		}
		if i < len(groups)-1 {
			b.WriteString("\n")
		}
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(40)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
