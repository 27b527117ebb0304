package github

import (
	"strings"
	"time"
)

// SearchResult mirrors the payload returned by /search/issues.
type SearchResult struct {
	TotalCount int     `json:"total_count"`
	Items      []Issue `json:"items"`
}

// Issue describes one search hit in transport-friendly form.
type Issue struct {
	Number    int64     `json:"number"`
	Title     string    `json:"title"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	HTMLURL   string    `json:"html_url"`

	// Favorite is derived locally from the favorites store and is never
	// read from or written to the wire.
	Favorite bool `json:"-"`
}

// IssueState is the normalized lifecycle state of an issue.
type IssueState string

const (
	StateOpen   IssueState = "open"
	StateClosed IssueState = "closed"
	StateOther  IssueState = "other"
)

// ParseState normalizes a raw state string. Unknown values map to StateOther
// and the empty string maps to "" so callers can use it as "any".
func ParseState(raw string) IssueState {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return ""
	case "open":
		return StateOpen
	case "closed":
		return StateClosed
	default:
		return StateOther
	}
}

// Kind returns the normalized state of the issue.
func (i Issue) Kind() IssueState {
	if s := ParseState(i.State); s != "" {
		return s
	}
	return StateOther
}
