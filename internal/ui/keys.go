package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding

	// Engine events
	LoadMore       key.Binding
	ToggleFavorite key.Binding
	FavoritesOnly  key.Binding
	CycleState     key.Binding
	Filter         key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Filter input
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),

		LoadMore: key.NewBinding(
			key.WithKeys("m", "n"),
			key.WithHelp("m", "Load more"),
		),
		ToggleFavorite: key.NewBinding(
			key.WithKeys("f", " "),
			key.WithHelp("f/space", "Toggle favorite"),
		),
		FavoritesOnly: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "Favorites only"),
		),
		CycleState: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Cycle state filter"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Filter titles"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("ctrl+u", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("ctrl+d", "Page down"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Apply filter"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Clear filter"),
		),
	}
}

// ShortHelp implements help.KeyMap for the footer line.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.LoadMore, k.ToggleFavorite, k.FavoritesOnly, k.Filter, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.LoadMore, k.ToggleFavorite, k.FavoritesOnly, k.CycleState, k.Filter},
		{k.Confirm, k.Cancel, k.CycleTheme, k.Help, k.Quit},
	}
}
