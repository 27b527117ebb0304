package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the resolved colors the views draw with.
type Theme struct {
	Name string

	Background    string
	Surface       string // header and footer bars
	SelectionBg   string
	SelectionText string
	Border        string
	BorderFocus   string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
	Star    string

	// StatusColors maps a normalized issue state to its badge color.
	StatusColors map[string]string
}

// Styles are the lipgloss styles built from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header           lipgloss.Style
	Footer           lipgloss.Style
	Logo             lipgloss.Style
	Selected         lipgloss.Style
	Star             lipgloss.Style
	FilterBox        lipgloss.Style
	FilterBoxFocused lipgloss.Style

	badgeText    string
	badgeDefault string
	badges       map[string]string
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func fill(bg, color string) lipgloss.Style {
	return fg(color).Background(lipgloss.Color(bg)).Padding(0, 1)
}

func bordered(border string) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1)
}

// Styles builds the style set for t.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header:           fill(t.Surface, t.Text),
		Footer:           fill(t.Surface, t.Muted),
		Logo:             fg(t.Warning).Bold(true),
		Selected:         fg(t.SelectionText).Background(lipgloss.Color(t.SelectionBg)),
		Star:             fg(t.Star).Bold(true),
		FilterBox:        bordered(t.Border),
		FilterBoxFocused: bordered(t.BorderFocus),

		badgeText:    t.Background,
		badgeDefault: t.Muted,
		badges:       t.StatusColors,
	}
}

// StatusStyle returns the badge style for an issue state. Unknown states use
// the muted color.
func (s Styles) StatusStyle(status string) lipgloss.Style {
	color, ok := s.badges[strings.ToLower(strings.TrimSpace(status))]
	if !ok || color == "" {
		color = s.badgeDefault
	}
	return fill(color, s.badgeText)
}

// palette is the small set of base colors a theme is derived from.
type palette struct {
	bg, surface, selection, border string
	fg, dim, faint                 string
	blue, green, yellow, red, cyan string
	purple                         string
}

func (p palette) theme(name string) Theme {
	return Theme{
		Name:          name,
		Background:    p.bg,
		Surface:       p.surface,
		SelectionBg:   p.selection,
		SelectionText: p.fg,
		Border:        p.border,
		BorderFocus:   p.blue,
		Text:          p.fg,
		Muted:         p.dim,
		Faint:         p.faint,
		Accent:        p.blue,
		Success:       p.green,
		Warning:       p.yellow,
		Danger:        p.red,
		Info:          p.cyan,
		Star:          p.yellow,
		StatusColors: map[string]string{
			"open":   p.green,
			"closed": p.purple,
			"other":  p.faint,
		},
	}
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

var themes = map[string]Theme{
	// https://github.com/EdenEast/nightfox.nvim
	"Nightfox": palette{
		bg: "#131a24", surface: "#192330", selection: "#2b3b51", border: "#39506d",
		fg: "#cdcecf", dim: "#738091", faint: "#71839b",
		blue: "#719cd6", green: "#81b29a", yellow: "#dbc074", red: "#c94f6d", cyan: "#63cdcf",
		purple: "#9d79d6",
	}.theme("Nightfox"),

	// https://github.com/rebelot/kanagawa.nvim
	"Kanagawa": palette{
		bg: "#16161D", surface: "#1F1F28", selection: "#2D4F67", border: "#54546D",
		fg: "#DCD7BA", dim: "#C8C093", faint: "#727169",
		blue: "#7E9CD8", green: "#98BB6C", yellow: "#E6C384", red: "#E46876", cyan: "#7FB4CA",
		purple: "#957FB8",
	}.theme("Kanagawa"),

	// Tailwind slate with sky accents
	"Slate": palette{
		bg: "#020617", surface: "#0f172a", selection: "#0284c7", border: "#334155",
		fg: "#f1f5f9", dim: "#94a3b8", faint: "#64748b",
		blue: "#38bdf8", green: "#22c55e", yellow: "#f59e0b", red: "#ef4444", cyan: "#06b6d4",
		purple: "#a855f7",
	}.theme("Slate"),
}

// GetTheme looks a theme up by name, ignoring case. Unknown names get
// Nightfox.
func GetTheme(name string) Theme {
	for _, known := range themeOrder {
		if strings.EqualFold(known, strings.TrimSpace(name)) {
			return themes[known]
		}
	}
	return themes[themeOrder[0]]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if strings.EqualFold(name, strings.TrimSpace(current)) {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames lists the available themes in cycle order.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}
