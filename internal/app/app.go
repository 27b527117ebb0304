package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/five82/issuedeck/internal/config"
	"github.com/five82/issuedeck/internal/favorites"
	"github.com/five82/issuedeck/internal/fetch"
	"github.com/five82/issuedeck/internal/github"
	"github.com/five82/issuedeck/internal/kv"
	"github.com/five82/issuedeck/internal/logging"
	"github.com/five82/issuedeck/internal/prefs"
	"github.com/five82/issuedeck/internal/state"
	"github.com/five82/issuedeck/internal/ui"
	"github.com/five82/issuedeck/internal/view"
)

// Options configure an issuedeck session.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/issuedeck/prefs.toml
	Command    string // recorded in the log
}

// Session holds everything a command needs to drive the engine.
type Session struct {
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	Log       *logging.Logger
	Store     *state.Store

	kv kv.Store
}

// Open loads configuration, opens the favorites backend, and builds the
// engine. Callers must Close the session.
func Open(opts Options) (*Session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, logErr := logging.Init(logging.Config{
		Path:    cfg.LogPath,
		Level:   cfg.LogLevel,
		Command: opts.Command,
	})
	if logErr != nil {
		logger = logging.Discard()
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("prefs unavailable, using defaults", "err", err)
	}

	backing, err := kv.Open(cfg.FavoritesBackend, cfg.FavoritesPath)
	if err != nil {
		_ = logger.Close()
		return nil, fmt.Errorf("open favorites: %w", err)
	}

	client, err := github.NewClient(cfg.APIURL, github.WithRequestInterval(cfg.RequestInterval))
	if err != nil {
		_ = backing.Close()
		_ = logger.Close()
		return nil, fmt.Errorf("init github client: %w", err)
	}

	favs := favorites.Load(backing, logger)
	fetcher := fetch.New(client, fetch.Options{
		Qualifier: cfg.Query,
		Sort:      cfg.Sort,
		Order:     cfg.Order,
		PageSize:  cfg.PageSize,
		Logger:    logger,
	})
	store := state.New(fetcher, favs, view.Filter{FavoritesOnly: userPrefs.FavoritesOnly}, logger)

	logger.Info("session opened",
		"query", cfg.Query,
		"backend", cfg.FavoritesBackend,
		"favorites", favs.Snapshot().Len(),
	)

	return &Session{
		Config:    cfg,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		Log:       logger,
		Store:     store,
		kv:        backing,
	}, nil
}

// Close releases the favorites backend and the log file.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	return errors.Join(s.kv.Close(), s.Log.Close())
}

// Run boots the issuedeck TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Command == "" {
		opts.Command = "tui"
	}
	sess, err := Open(opts)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()

	return ui.Run(ui.Options{
		Context:   ctx,
		Store:     sess.Store,
		Logger:    sess.Log,
		Title:     sess.Config.Query,
		Prefs:     sess.Prefs,
		PrefsPath: sess.PrefsPath,
	})
}
