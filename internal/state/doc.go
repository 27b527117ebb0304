// Package state is the issuedeck engine: it owns the fetch controller, the
// favorites store, and the active filter, and publishes a derived Snapshot
// after every input event.
//
// # Overview
//
// The UI never reads the accumulated issue list directly. It forwards four
// kinds of events into the Store and renders whatever Snapshot comes back:
//
//	load-more              → BeginLoad / Fetch / CompleteLoad (or LoadMore)
//	text-filter-changed(v) → SetQuery(v)
//	favorite-toggled(id)   → ToggleFavorite(id)
//	display-mode-toggled   → ToggleFavoritesOnly()
//
// # Event Ordering
//
// Every event runs to completion under the store's write lock and ends with a
// fresh derivation, so a Snapshot is never half-updated:
//
//	CompleteLoad(success):
//	  1. fetch.Controller appends the page (dedup, page++)
//	  2. favorites.Reconcile stamps every accumulated issue
//	  3. view.Derive recomputes the visible subset
//
//	ToggleFavorite:
//	  1. favorites.Store flips membership and persists
//	  2. favorites.Reconcile stamps every accumulated issue
//	  3. view.Derive recomputes the visible subset
//
// The network call (Fetch) runs outside the lock, typically in a bubbletea
// command goroutine. Responses for superseded requests are discarded by the
// controller's generation check and leave the Snapshot untouched.
//
// # Snapshot Ownership
//
// Snapshot returns the View slice cloned, so callers can hold on to it while
// newer events arrive. Issue values contain no shared pointers.
//
// # Errors
//
// Snapshot.RateLimited is the user-visible fetch failure indicator.
// Snapshot.LastError carries the most recent fetch or favorites-write error
// for the status line; it is cleared by the next successful page.
package state
