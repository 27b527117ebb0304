// Package ui implements the issuedeck terminal interface with Bubble Tea.
//
// The UI is a thin event router over state.Store. Key presses become the
// engine's input events and every render reads the latest state.Snapshot:
//
//	m, f/space   → load-more, favorite-toggled(selected)
//	F            → display-mode-toggled
//	/ + typing   → text-filter-changed(value), applied on every keystroke
//	s            → cycle the open/closed state filter
//	T            → cycle theme
//
// # Loading
//
// Load-more runs in two halves. Update calls Store.BeginLoad synchronously so
// the loading flag is visible in the same frame, then returns a tea.Cmd that
// performs Store.Fetch on Bubble Tea's command goroutine. The result comes
// back as a loadedMsg and is applied with Store.CompleteLoad. A second
// load-more while one is pending cancels the first; its late loadedMsg is
// discarded by the store.
//
// # Preferences
//
// Theme changes and the favorites-only mode are written to prefs.toml as they
// happen, so the next session starts where this one ended.
//
// # Layout
//
//	issuedeck  repo:angular/components  12 shown · 50/1834 loaded  ★ 3
//	╭──────────────────────────────────────────────╮
//	│ / fix                                        │
//	╰──────────────────────────────────────────────╯
//	   #       STATE    CREATED    TITLE
//	★  #2931   open     3d         Fix overlay focus trap
//	...
//	loaded 50 new issues  m load more • f/space toggle favorite • ...
package ui
