// Package prefs persists UI preferences that survive restarts: the color
// theme and whether the issue list shows favorites only.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/issuedeck/internal/config"
)

// Prefs holds user preferences for issuedeck.
type Prefs struct {
	Theme         string `toml:"theme"`
	FavoritesOnly bool   `toml:"favorites_only"`
}

const (
	defaultPrefsPath = "~/.config/issuedeck/prefs.toml"
	defaultTheme     = "Nightfox"
)

// Defaults returns the preferences used when nothing is saved.
func Defaults() Prefs {
	return Prefs{Theme: defaultTheme}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from path, or DefaultPath when path is empty.
// A missing or corrupt file yields Defaults and no error; an unreadable one
// yields Defaults and the read error.
func Load(path string) (Prefs, error) {
	resolved, err := resolve(path)
	if err != nil {
		return Defaults(), err
	}

	data, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Defaults(), nil
	case err != nil:
		return Defaults(), fmt.Errorf("read prefs: %w", err)
	}

	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return Defaults(), nil
	}
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	return p, nil
}

// Save writes p to path (DefaultPath when empty), replacing the previous file
// in one rename so a crash never leaves it half written.
func Save(path string, p Prefs) error {
	resolved, err := resolve(path)
	if err != nil {
		return err
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	return writeFileAtomic(resolved, data)
}

func resolve(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	resolved, err := config.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("resolve prefs path: %w", err)
	}
	return resolved, nil
}

func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write prefs: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}
