package ui

import (
	"fmt"
	"strings"

	"github.com/five82/issuedeck/internal/github"
)

// renderHeader renders the status bar: title, counts, and engine flags.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	snap := m.snapshot

	b := newBar(m.theme.Surface).add("issuedeck", styles.Logo)
	if title := strings.TrimSpace(m.title); title != "" {
		b.add(truncate(title, 40), styles.AccentText)
	}

	counts := fmt.Sprintf("%d shown", len(snap.View))
	if snap.TotalCount > 0 {
		counts += fmt.Sprintf(" · %d/%d loaded", snap.Accumulated, snap.TotalCount)
	} else {
		counts += fmt.Sprintf(" · %d loaded", snap.Accumulated)
	}
	b.add(counts, styles.Text)
	b.add(fmt.Sprintf("★ %d", snap.Favorites), styles.Star)

	if snap.Loading {
		b.add(m.spinner.View()+" loading", styles.InfoText)
	}
	if snap.RateLimited {
		b.add("RATE LIMITED", styles.DangerText)
	}
	if snap.Filter.FavoritesOnly {
		b.add("FAVORITES", styles.WarningText.Bold(true))
	}
	b.add(stateFilterLabel(snap.Filter.State), styles.SuccessText)
	if !snap.HasMore() && snap.Accumulated > 0 {
		b.add("end of results", styles.FaintText)
	}

	return styles.Header.Width(m.width).Render(b.join(2))
}

// renderFilter renders the title filter box.
func (m Model) renderFilter() string {
	styles := m.theme.Styles()
	box := styles.FilterBox
	if m.filtering {
		box = styles.FilterBoxFocused
	}
	width := max(m.width-2, 10)
	if !m.filtering && m.filter.Value() == "" {
		return box.Width(width).Render(styles.FaintText.Render("/ to filter titles"))
	}
	return box.Width(width).Render(m.filter.View())
}

// renderFooter renders either the latest notice or error and the key hints.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	b := newBar(m.theme.Surface)

	switch {
	case m.snapshot.LastError != nil:
		b.add(truncate(m.snapshot.LastError.Error(), 60), styles.DangerText)
	case m.snapshot.RateLimited:
		b.add("request failed, press m to retry", styles.WarningText)
	case m.notice != "":
		b.add(m.notice, styles.MutedText)
	}

	hints := m.help.ShortHelpView(m.keys.ShortHelp())
	if b.empty() {
		return styles.Footer.Width(m.width).Render(hints)
	}
	return styles.Footer.Width(m.width).Render(b.join(2) + b.gap(2) + hints)
}

func stateFilterLabel(st github.IssueState) string {
	switch st {
	case github.StateOpen:
		return "OPEN"
	case github.StateClosed:
		return "CLOSED"
	case github.StateOther:
		return "OTHER"
	default:
		return ""
	}
}
