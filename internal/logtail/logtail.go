package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Read returns at most maxLines from the end of the file at path.
// A non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one decoded JSON log line.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
	Fields  map[string]any
}

// Parse decodes a JSON log line. ok is false for anything that is not a JSON
// object.
func Parse(line string) (Entry, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return Entry{}, false
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return Entry{}, false
	}

	var e Entry
	if ts, ok := raw["time"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			e.Time = parsed
		}
	}
	e.Level, _ = raw["level"].(string)
	e.Message, _ = raw["msg"].(string)
	delete(raw, "time")
	delete(raw, "level")
	delete(raw, "msg")
	if len(raw) > 0 {
		e.Fields = raw
	}
	return e, true
}

var (
	timeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	fieldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87AFFF"))
	levelStyle = map[string]lipgloss.Style{
		"DEBUG": lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true),
		"INFO":  lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")).Bold(true),
		"WARN":  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		"ERROR": lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	}
)

// Format renders a log line for a terminal. JSON lines become
// "time LEVEL message key=value ..." with fields sorted by key; anything else
// is returned unchanged.
func Format(line string, color bool) string {
	e, ok := Parse(line)
	if !ok {
		return line
	}

	render := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	parts := make([]string, 0, 3+len(e.Fields))
	if !e.Time.IsZero() {
		parts = append(parts, render(timeStyle, e.Time.In(time.Local).Format("2006-01-02 15:04:05")))
	}
	level := strings.ToUpper(strings.TrimSpace(e.Level))
	if level == "" {
		level = "INFO"
	}
	parts = append(parts, render(levelStyle[level], level))
	if msg := strings.TrimSpace(e.Message); msg != "" {
		parts = append(parts, msg)
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, render(fieldStyle, k+"=")+fmt.Sprint(e.Fields[k]))
	}
	return strings.Join(parts, " ")
}

// FormatLines applies Format to every line.
func FormatLines(lines []string, color bool) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Format(line, color)
	}
	return out
}
