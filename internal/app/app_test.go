package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/issuedeck/internal/prefs"
)

// searchServer serves total issues numbered 1..total, per_page at a time.
// Pages listed in limited answer with a GitHub-style rate-limit response.
func searchServer(t *testing.T, total int, limited map[int]bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/issues" {
			http.NotFound(w, r)
			return
		}
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
		if limited[page] {
			w.Header().Set("X-RateLimit-Remaining", "0")
			http.Error(w, `{"message":"API rate limit exceeded"}`, http.StatusForbidden)
			return
		}
		items := []map[string]any{}
		for n := (page-1)*perPage + 1; n <= page*perPage && n <= total; n++ {
			items = append(items, map[string]any{
				"number":     n,
				"title":      fmt.Sprintf("Issue %d", n),
				"state":      "open",
				"created_at": "2026-01-02T03:04:05Z",
				"html_url":   fmt.Sprintf("https://github.com/a/b/issues/%d", n),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"total_count": total, "items": items})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeSessionConfig(t *testing.T, apiURL, backend string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("ISSUEDECK_API_URL", "")
	t.Setenv("ISSUEDECK_QUERY", "")
	t.Setenv("ISSUEDECK_FAVORITES_BACKEND", "")

	ext := "json"
	if backend == "sqlite" {
		ext = "db"
	}
	cfgPath := filepath.Join(dir, "config.toml")
	body := fmt.Sprintf(`
api_url = %q
query = "repo:a/b"
page_size = 2
favorites_backend = %q
favorites_path = %q
log_path = %q
log_level = "debug"
`, apiURL, backend, filepath.Join(dir, "favorites."+ext), filepath.Join(dir, "issuedeck.log"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o600))
	return cfgPath, filepath.Join(dir, "prefs.toml")
}

func TestOpen_LoadsPagesAndPersistsFavorites(t *testing.T) {
	for _, backend := range []string{"file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			srv := searchServer(t, 5, nil)
			cfgPath, prefsPath := writeSessionConfig(t, srv.URL, backend)

			sess, err := Open(Options{ConfigPath: cfgPath, PrefsPath: prefsPath, Command: "test"})
			require.NoError(t, err)

			loaded, err := LoadPages(context.Background(), sess.Store, 10)
			require.NoError(t, err)
			assert.Equal(t, 3, loaded, "stops once the total count is reached")

			snap := sess.Store.Snapshot()
			assert.Equal(t, 5, snap.Accumulated)
			assert.Equal(t, 5, snap.TotalCount)
			assert.False(t, snap.HasMore())

			require.NoError(t, sess.Store.ToggleFavorite(4))
			require.NoError(t, sess.Close())

			reopened, err := Open(Options{ConfigPath: cfgPath, PrefsPath: prefsPath})
			require.NoError(t, err)
			defer func() { _ = reopened.Close() }()
			assert.Equal(t, []int64{4}, reopened.Store.Favorites().IDs())

			_, err = LoadPages(context.Background(), reopened.Store, 2)
			require.NoError(t, err)
			view := reopened.Store.Snapshot().View
			require.Len(t, view, 4)
			assert.True(t, view[3].Favorite)
		})
	}
}

func TestLoadPages_StopsAtRateLimitedPage(t *testing.T) {
	srv := searchServer(t, 10, map[int]bool{2: true})
	cfgPath, prefsPath := writeSessionConfig(t, srv.URL, "file")

	sess, err := Open(Options{ConfigPath: cfgPath, PrefsPath: prefsPath})
	require.NoError(t, err)
	defer func() { _ = sess.Close() }()

	loaded, err := LoadPages(context.Background(), sess.Store, 5)
	require.Error(t, err)
	assert.Equal(t, 1, loaded)
	assert.Contains(t, err.Error(), "page 2")

	snap := sess.Store.Snapshot()
	assert.True(t, snap.RateLimited)
	assert.Equal(t, 2, snap.Accumulated)
	assert.Equal(t, 2, snap.Page)
}

func TestLoadPages_CancelledContext(t *testing.T) {
	srv := searchServer(t, 10, nil)
	cfgPath, prefsPath := writeSessionConfig(t, srv.URL, "file")

	sess, err := Open(Options{ConfigPath: cfgPath, PrefsPath: prefsPath})
	require.NoError(t, err)
	defer func() { _ = sess.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	loaded, err := LoadPages(ctx, sess.Store, 3)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, loaded)
}

func TestOpen_AppliesSavedDisplayMode(t *testing.T) {
	srv := searchServer(t, 2, nil)
	cfgPath, prefsPath := writeSessionConfig(t, srv.URL, "file")
	require.NoError(t, prefs.Save(prefsPath, prefs.Prefs{Theme: "Slate", FavoritesOnly: true}))

	sess, err := Open(Options{ConfigPath: cfgPath, PrefsPath: prefsPath})
	require.NoError(t, err)
	defer func() { _ = sess.Close() }()

	assert.Equal(t, "Slate", sess.Prefs.Theme)
	assert.True(t, sess.Store.Snapshot().Filter.FavoritesOnly)

	_, err = LoadPages(context.Background(), sess.Store, 1)
	require.NoError(t, err)
	assert.Empty(t, sess.Store.Snapshot().View, "no favorites yet")
}

func TestOpen_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`sort = "stars"`), 0o600))

	_, err := Open(Options{ConfigPath: cfgPath})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}
