// Package view derives the displayed subset of accumulated issues.
package view

import (
	"strings"

	"github.com/five82/issuedeck/internal/favorites"
	"github.com/five82/issuedeck/internal/github"
)

// Filter is the user-controlled part of the view.
type Filter struct {
	Query         string            // case-insensitive title substring, matched as typed; "" matches all
	FavoritesOnly bool              // keep only favorited issues
	State         github.IssueState // empty matches any state
}

// Active reports whether the filter hides anything.
func (f Filter) Active() bool {
	return f.Query != "" || f.FavoritesOnly || f.State != ""
}

// Derive returns the issues that pass f, in their original order. When favs
// is non-nil each returned issue's Favorite flag is stamped from it first;
// with a nil set the flags already on the input are trusted. The input slice
// is never modified.
func Derive(issues []github.Issue, f Filter, favs favorites.Set) []github.Issue {
	query := strings.ToLower(f.Query)

	out := make([]github.Issue, 0, len(issues))
	for _, issue := range issues {
		if favs != nil {
			issue.Favorite = favs.Contains(issue.Number)
		}
		if query != "" && !strings.Contains(strings.ToLower(issue.Title), query) {
			continue
		}
		if f.FavoritesOnly && !issue.Favorite {
			continue
		}
		if f.State != "" && issue.Kind() != f.State {
			continue
		}
		out = append(out, issue)
	}
	return out
}
