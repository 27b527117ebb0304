package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config captures everything issuedeck reads from its config file.
type Config struct {
	APIURL           string
	Query            string
	Sort             string
	Order            string
	PageSize         int
	FavoritesBackend string
	FavoritesPath    string
	LogLevel         string
	LogPath          string
	RequestInterval  time.Duration
}

const (
	defaultConfigPath   = "~/.config/issuedeck/config.toml"
	defaultDataDir      = "~/.local/share/issuedeck"
	defaultAPIURL       = "https://api.github.com"
	defaultQuery        = "repo:angular/components"
	defaultSort         = "created"
	defaultOrder        = "desc"
	defaultPageSize     = 50
	maxPageSize         = 100
	defaultBackend      = "file"
	defaultLogLevel     = "info"
	envAPIURL           = "ISSUEDECK_API_URL"
	envQuery            = "ISSUEDECK_QUERY"
	envFavoritesBackend = "ISSUEDECK_FAVORITES_BACKEND"
)

var (
	validSorts    = map[string]bool{"created": true, "updated": true, "comments": true}
	validOrders   = map[string]bool{"asc": true, "desc": true}
	validBackends = map[string]bool{"file": true, "sqlite": true}
)

// fileConfig is the on-disk shape shared by the TOML and YAML variants.
type fileConfig struct {
	APIURL            string `toml:"api_url" yaml:"api_url"`
	Query             string `toml:"query" yaml:"query"`
	Sort              string `toml:"sort" yaml:"sort"`
	Order             string `toml:"order" yaml:"order"`
	PageSize          int    `toml:"page_size" yaml:"page_size"`
	FavoritesBackend  string `toml:"favorites_backend" yaml:"favorites_backend"`
	FavoritesPath     string `toml:"favorites_path" yaml:"favorites_path"`
	LogLevel          string `toml:"log_level" yaml:"log_level"`
	LogPath           string `toml:"log_path" yaml:"log_path"`
	RequestIntervalMS int    `toml:"request_interval_ms" yaml:"request_interval_ms"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	cfg, _ := normalize(fileConfig{})
	return cfg
}

// Load locates and parses the config, falling back to defaults when missing.
// Files ending in .yaml or .yml are parsed as YAML, everything else as TOML.
// Environment overrides are applied last.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw fileConfig
	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := decode(resolved, bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&raw)
	return normalize(raw)
}

func decode(path string, data []byte, raw *fileConfig) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, raw)
	default:
		return toml.Unmarshal(data, raw)
	}
}

func applyEnv(raw *fileConfig) {
	if v := strings.TrimSpace(os.Getenv(envAPIURL)); v != "" {
		raw.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envQuery)); v != "" {
		raw.Query = v
	}
	if v := strings.TrimSpace(os.Getenv(envFavoritesBackend)); v != "" {
		raw.FavoritesBackend = v
	}
}

func normalize(raw fileConfig) (Config, error) {
	cfg := Config{
		APIURL:           orDefault(raw.APIURL, defaultAPIURL),
		Query:            orDefault(raw.Query, defaultQuery),
		Sort:             strings.ToLower(orDefault(raw.Sort, defaultSort)),
		Order:            strings.ToLower(orDefault(raw.Order, defaultOrder)),
		PageSize:         raw.PageSize,
		FavoritesBackend: strings.ToLower(orDefault(raw.FavoritesBackend, defaultBackend)),
		LogLevel:         strings.ToLower(orDefault(raw.LogLevel, defaultLogLevel)),
	}

	if !validSorts[cfg.Sort] {
		return Config{}, fmt.Errorf("invalid sort %q (want created, updated or comments)", cfg.Sort)
	}
	if !validOrders[cfg.Order] {
		return Config{}, fmt.Errorf("invalid order %q (want asc or desc)", cfg.Order)
	}
	if !validBackends[cfg.FavoritesBackend] {
		return Config{}, fmt.Errorf("invalid favorites_backend %q (want file or sqlite)", cfg.FavoritesBackend)
	}

	switch {
	case cfg.PageSize <= 0:
		cfg.PageSize = defaultPageSize
	case cfg.PageSize > maxPageSize:
		cfg.PageSize = maxPageSize
	}
	if raw.RequestIntervalMS > 0 {
		cfg.RequestInterval = time.Duration(raw.RequestIntervalMS) * time.Millisecond
	}

	favName := "favorites.json"
	if cfg.FavoritesBackend == "sqlite" {
		favName = "favorites.db"
	}
	cfg.FavoritesPath = mustExpand(orDefault(raw.FavoritesPath, defaultDataDir+"/"+favName))
	cfg.LogPath = mustExpand(orDefault(raw.LogPath, defaultDataDir+"/issuedeck.log"))
	return cfg, nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

// Encode renders the effective configuration as TOML.
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(fileConfig{
		APIURL:            c.APIURL,
		Query:             c.Query,
		Sort:              c.Sort,
		Order:             c.Order,
		PageSize:          c.PageSize,
		FavoritesBackend:  c.FavoritesBackend,
		FavoritesPath:     c.FavoritesPath,
		LogLevel:          c.LogLevel,
		LogPath:           c.LogPath,
		RequestIntervalMS: int(c.RequestInterval / time.Millisecond),
	})
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath trims path, expands a leading ~ to the home directory, and
// makes the result absolute.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
