package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// bar assembles a single-line status bar whose background stays solid.
// lipgloss resets attributes after every rendered segment, so each word and
// each gap is painted with the bar color explicitly.
type bar struct {
	bg    lipgloss.Color
	parts []string
}

func newBar(color string) *bar {
	return &bar{bg: lipgloss.Color(color)}
}

// add appends text rendered with style on the bar background. Empty text is
// skipped.
func (b *bar) add(text string, style lipgloss.Style) *bar {
	if text == "" {
		return b
	}
	styled := style.Background(b.bg)
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = styled.Render(w)
		}
	}
	b.parts = append(b.parts, strings.Join(words, b.gap(1)))
	return b
}

// gap returns n spaces painted with the bar color.
func (b *bar) gap(n int) string {
	return lipgloss.NewStyle().Background(b.bg).Render(strings.Repeat(" ", n))
}

func (b *bar) empty() bool {
	return len(b.parts) == 0
}

// join renders all parts separated by sepWidth painted spaces.
func (b *bar) join(sepWidth int) string {
	return strings.Join(b.parts, b.gap(sepWidth))
}
