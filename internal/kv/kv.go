// Package kv provides small durable key-value stores for issuedeck state.
// Values are opaque strings; callers choose their own serialization.
package kv

import (
	"fmt"
	"strings"

	"github.com/five82/issuedeck/internal/config"
)

// Store is a durable string key-value store. Get reports ok=false for
// missing keys. Set is synchronous: when it returns nil the value is durable.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open creates the store for backend at path, creating parent directories.
func Open(backend, path string) (Store, error) {
	resolved, err := config.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve kv path: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return NewFileStore(resolved)
	case BackendSQLite:
		return NewSQLiteStore(resolved)
	default:
		return nil, fmt.Errorf("unknown kv backend %q", backend)
	}
}
