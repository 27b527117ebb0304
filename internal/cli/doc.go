// Package cli defines the issuedeck command tree.
//
// The root command opens the terminal UI. Subcommands drive the same engine
// without a terminal: list loads pages and prints the filtered view, fav
// edits the persisted favorites, logs prints the tail of the log file, and
// config prints the effective configuration.
package cli
