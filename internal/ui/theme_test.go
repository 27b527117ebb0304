package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Nightfox" || names[1] != "Kanagawa" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v", names)
	}
}

func TestNextTheme(t *testing.T) {
	cases := []struct {
		current string
		want    string
	}{
		{"Nightfox", "Kanagawa"},
		{"kanagawa", "Slate"},
		{"Slate", "Nightfox"},
		{"Unknown", "Nightfox"},
		{"", "Nightfox"},
	}
	for _, tc := range cases {
		if got := NextTheme(tc.current); got != tc.want {
			t.Fatalf("NextTheme(%q) = %q, want %q", tc.current, got, tc.want)
		}
	}
}

func TestGetTheme(t *testing.T) {
	if got := GetTheme("slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(slate).Name = %q, want Slate", got)
	}
	if got := GetTheme("Dracula").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Dracula).Name = %q, want Nightfox fallback", got)
	}
}

func TestThemesDefineIssueStates(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, state := range []string{"open", "closed", "other"} {
			if th.StatusColors[state] == "" {
				t.Errorf("%s: missing color for %q", name, state)
			}
		}
		if th.Star == "" {
			t.Errorf("%s: missing star color", name)
		}
	}
}
