// Package logtail reads the tail of issuedeck's log file and renders its JSON
// lines for a terminal.
//
// Read keeps a ring buffer of maxLines entries, so memory stays proportional
// to the requested tail rather than the file size. Lines come back in
// chronological order.
//
//	lines, err := logtail.Read(logger.Path(), 200)
//	for _, line := range logtail.FormatLines(lines, true) {
//		fmt.Println(line)
//	}
//
// Format decodes the JSON written by internal/logging into
//
//	2026-03-01 10:00:00 WARN search failed page=3 rate_limited=true
//
// with the level colored via lipgloss. Lines that are not JSON objects are
// printed unchanged.
package logtail
