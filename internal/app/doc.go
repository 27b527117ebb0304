// Package app is the composition root for issuedeck.
//
// Open wires the pieces together in this order:
//
//  1. config.Load reads ~/.config/issuedeck/config.toml (or --config)
//  2. logging.Init opens the JSON log file; failures fall back to a discard logger
//  3. prefs.Load restores the theme and the favorites-only display mode
//  4. kv.Open opens the favorites backend (file or sqlite)
//  5. github.NewClient builds the search client with optional request spacing
//  6. favorites.Load, fetch.New and state.New assemble the engine
//
// Run opens a Session and hands its state.Store to the TUI. The CLI
// subcommands open a Session themselves and drive the store directly;
// LoadPages is their equivalent of pressing load-more repeatedly.
//
// Fatal errors (returned from Open):
//   - invalid or unreadable config
//   - favorites backend that cannot be opened
//   - malformed API URL
//
// Everything after startup degrades instead of failing: fetch errors set the
// rate-limited flag and favorites write errors surface in the snapshot.
package app
