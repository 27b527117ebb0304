package state

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/five82/issuedeck/internal/favorites"
	"github.com/five82/issuedeck/internal/fetch"
	"github.com/five82/issuedeck/internal/github"
	"github.com/five82/issuedeck/internal/logging"
	"github.com/five82/issuedeck/internal/view"
)

// errSaveFavorites marks LastError values that came from a favorites write.
var errSaveFavorites = errors.New("save favorites")

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	View        []github.Issue
	Accumulated int
	Page        int // next page to request
	TotalCount  int
	Loading     bool
	RateLimited bool
	Filter      view.Filter
	Favorites   int
	LastError   error
	LastUpdated time.Time
}

// HasMore reports whether the server advertised more results than accumulated.
func (s Snapshot) HasMore() bool {
	return s.Page == 1 || s.Accumulated < s.TotalCount
}

// Store wires the fetch controller, the favorites store, and the filter
// together and keeps the derived view current after every input event.
type Store struct {
	mu       sync.RWMutex
	fetcher  *fetch.Controller
	favs     *favorites.Store
	filter   view.Filter
	snapshot Snapshot
	log      *logging.Logger
}

// New builds a Store. The initial view is derived immediately.
func New(fetcher *fetch.Controller, favs *favorites.Store, filter view.Filter, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Store{fetcher: fetcher, favs: favs, filter: filter, log: logger}
	s.refreshLocked()
	return s
}

// LoadMore fetches the next page synchronously.
func (s *Store) LoadMore(ctx context.Context) []github.Issue {
	reqCtx, req := s.BeginLoad(ctx)
	res, err := s.Fetch(reqCtx, req)
	added, _ := s.CompleteLoad(req, res, err)
	return added
}

// BeginLoad starts a page request, superseding any pending one, and publishes
// the loading state.
func (s *Store) BeginLoad(ctx context.Context) (context.Context, fetch.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reqCtx, req := s.fetcher.Begin(ctx)
	s.log.Debug("load more", "page", req.Query.Page, "generation", req.Generation)
	s.refreshLocked()
	return reqCtx, req
}

// Fetch performs the network part of req without holding the store lock.
func (s *Store) Fetch(ctx context.Context, req fetch.Request) (github.SearchResult, error) {
	return s.fetcher.Fetch(ctx, req)
}

// CompleteLoad applies a finished request. Successful pages are reconciled
// against favorites before the view is re-derived. It returns the appended
// issues and false when the request had been superseded.
func (s *Store) CompleteLoad(req fetch.Request, res github.SearchResult, err error) ([]github.Issue, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added, ok := s.fetcher.Complete(req, res, err)
	if !ok {
		return nil, false
	}
	if err == nil {
		s.reconcileLocked()
		s.favs.Reconcile(added)
		s.snapshot.LastError = nil
	} else {
		s.snapshot.LastError = err
	}
	s.refreshLocked()
	return added, true
}

// SetQuery replaces the free-text filter.
func (s *Store) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.filter.Query == query {
		return
	}
	s.filter.Query = query
	s.refreshLocked()
}

// ToggleFavoritesOnly flips the display mode.
func (s *Store) ToggleFavoritesOnly() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.FavoritesOnly = !s.filter.FavoritesOnly
	s.refreshLocked()
	return s.filter.FavoritesOnly
}

// SetFavoritesOnly sets the display mode.
func (s *Store) SetFavoritesOnly(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.FavoritesOnly = on
	s.refreshLocked()
}

// SetStateFilter restricts the view to one issue state; "" shows all.
func (s *Store) SetStateFilter(st github.IssueState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.State = st
	s.refreshLocked()
}

// ToggleFavorite flips id's membership, reconciles every accumulated issue,
// and re-derives the view. A persistence failure is logged and recorded in
// the snapshot; the in-memory toggle stands. The next successful write clears
// it.
func (s *Store) ToggleFavorite(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.favs.Toggle(id)
	if err != nil {
		s.log.Error("favorites write failed", "id", id, "err", err)
		s.snapshot.LastError = fmt.Errorf("%w: %w", errSaveFavorites, err)
	} else {
		s.log.Info("favorite toggled", "id", id, "favorite", s.favs.IsFavorite(id))
		// A fetch error stays until the next page succeeds.
		if errors.Is(s.snapshot.LastError, errSaveFavorites) {
			s.snapshot.LastError = nil
		}
	}
	s.reconcileLocked()
	s.refreshLocked()
	return err
}

// Favorites returns the favorites store.
func (s *Store) Favorites() *favorites.Store {
	return s.favs
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.View = cloneIssues(s.snapshot.View)
	return snap
}

func (s *Store) reconcileLocked() {
	s.fetcher.Mutate(s.favs.Reconcile)
}

// refreshLocked re-derives the view and republishes cursor state.
func (s *Store) refreshLocked() {
	cursor := s.fetcher.Cursor()
	issues := s.fetcher.Issues()
	favs := s.favs.Snapshot()

	s.snapshot.View = view.Derive(issues, s.filter, favs)
	s.snapshot.Accumulated = len(issues)
	s.snapshot.Page = cursor.Page
	s.snapshot.TotalCount = cursor.TotalCount
	s.snapshot.Loading = cursor.Loading
	s.snapshot.RateLimited = cursor.RateLimited
	s.snapshot.Filter = s.filter
	s.snapshot.Favorites = favs.Len()
	s.snapshot.LastUpdated = time.Now()
}

func cloneIssues(items []github.Issue) []github.Issue {
	if items == nil {
		return []github.Issue{}
	}
	dup := make([]github.Issue, len(items))
	copy(dup, items)
	return dup
}
