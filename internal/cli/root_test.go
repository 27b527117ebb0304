package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/issuedeck/internal/app"
)

// searchServer serves total issues numbered 1..total. Even issues are closed.
// Pages listed in limited answer with a rate-limit response.
func searchServer(t *testing.T, total int, limited map[int]bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
		if limited[page] {
			w.Header().Set("X-RateLimit-Remaining", "0")
			http.Error(w, `{"message":"API rate limit exceeded"}`, http.StatusForbidden)
			return
		}
		items := []map[string]any{}
		for n := (page-1)*perPage + 1; n <= page*perPage && n <= total; n++ {
			state := "open"
			if n%2 == 0 {
				state = "closed"
			}
			items = append(items, map[string]any{
				"number":     n,
				"title":      fmt.Sprintf("Issue %d", n),
				"state":      state,
				"created_at": "2026-01-02T03:04:05Z",
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"total_count": total, "items": items})
	}))
	t.Cleanup(srv.Close)
	return srv
}

type testEnv struct {
	dir        string
	configPath string
	prefsPath  string
	logPath    string
}

func newTestEnv(t *testing.T, apiURL string) testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("ISSUEDECK_API_URL", "")
	t.Setenv("ISSUEDECK_QUERY", "")
	t.Setenv("ISSUEDECK_FAVORITES_BACKEND", "")

	env := testEnv{
		dir:        dir,
		configPath: filepath.Join(dir, "config.toml"),
		prefsPath:  filepath.Join(dir, "prefs.toml"),
		logPath:    filepath.Join(dir, "issuedeck.log"),
	}
	body := fmt.Sprintf(`
api_url = %q
query = "repo:a/b"
page_size = 2
favorites_path = %q
log_path = %q
`, apiURL, filepath.Join(dir, "favorites.json"), env.logPath)
	require.NoError(t, os.WriteFile(env.configPath, []byte(body), 0o600))
	return env
}

// execute runs the root command with the env's config and returns stdout and
// stderr.
func (e testEnv) execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCommand("test-version")
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", e.configPath, "--prefs", e.prefsPath}, args...))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestNewRootCommand_NoArgs_LaunchesTUI(t *testing.T) {
	originalFunc := runTUIFunc
	defer func() {
		runTUIFunc = originalFunc
	}()

	var got app.Options
	called := false
	runTUIFunc = func(_ context.Context, opts app.Options) error {
		called = true
		got = opts
		return nil
	}

	root := NewRootCommand("test-version")
	root.SetArgs([]string{"--config", "/tmp/c.toml", "--prefs", "/tmp/p.toml"})
	err := root.Execute()

	assert.NoError(t, err)
	assert.True(t, called, "runTUIFunc should be called when no subcommand is given")
	assert.Equal(t, "/tmp/c.toml", got.ConfigPath)
	assert.Equal(t, "/tmp/p.toml", got.PrefsPath)
	assert.Equal(t, "tui", got.Command)
}

func TestNewRootCommand_WithHelp_ShowsHelp(t *testing.T) {
	originalFunc := runTUIFunc
	defer func() {
		runTUIFunc = originalFunc
	}()

	called := false
	runTUIFunc = func(context.Context, app.Options) error {
		called = true
		return nil
	}

	root := NewRootCommand("test-version")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--help"})

	assert.NoError(t, root.Execute())
	assert.False(t, called)
	assert.Contains(t, out.String(), "issuedeck")
	assert.Contains(t, out.String(), "list")
	assert.Contains(t, out.String(), "fav")
}

func TestNewRootCommand_Version(t *testing.T) {
	root := NewRootCommand("1.2.3")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "1.2.3")
}

func TestNewRootCommand_RejectsArgs(t *testing.T) {
	root := NewRootCommand("test-version")
	root.SetArgs([]string{"unknown"})
	assert.Error(t, root.Execute())
}

func TestListCommand_PrintsLoadedPages(t *testing.T) {
	srv := searchServer(t, 5, nil)
	env := newTestEnv(t, srv.URL)

	stdout, stderr, err := env.execute(t, "list", "--pages", "2")
	require.NoError(t, err)

	for _, want := range []string{"#1", "#2", "#3", "#4", "Issue 4"} {
		assert.Contains(t, stdout, want)
	}
	assert.NotContains(t, stdout, "#5")
	assert.Contains(t, stderr, "4 shown, 4 loaded of 5 (2 pages)")
}

func TestListCommand_StopsAtRateLimit(t *testing.T) {
	srv := searchServer(t, 6, map[int]bool{2: true})
	env := newTestEnv(t, srv.URL)

	stdout, stderr, err := env.execute(t, "list", "--pages", "3")
	require.NoError(t, err)

	assert.Contains(t, stdout, "#2")
	assert.NotContains(t, stdout, "#3")
	assert.Contains(t, stderr, "loading stopped")
	assert.Contains(t, stderr, "rate limited")
}

func TestListCommand_Filters(t *testing.T) {
	srv := searchServer(t, 4, nil)
	env := newTestEnv(t, srv.URL)

	stdout, _, err := env.execute(t, "list", "--pages", "2", "--state", "closed")
	require.NoError(t, err)
	assert.Contains(t, stdout, "#2")
	assert.Contains(t, stdout, "#4")
	assert.NotContains(t, stdout, "#1")

	stdout, stderr, err := env.execute(t, "list", "--pages", "2", "--query", "ISSUE 3")
	require.NoError(t, err)
	assert.Contains(t, stdout, "#3")
	assert.Contains(t, stderr, "1 shown")
}

func TestListCommand_FavoritesOnly(t *testing.T) {
	srv := searchServer(t, 4, nil)
	env := newTestEnv(t, srv.URL)

	_, _, err := env.execute(t, "fav", "toggle", "3")
	require.NoError(t, err)

	stdout, stderr, err := env.execute(t, "list", "--pages", "2", "--favorites")
	require.NoError(t, err)
	assert.Contains(t, stdout, "★")
	assert.Contains(t, stdout, "#3")
	assert.Contains(t, stderr, "1 shown, 4 loaded")
}

func TestListCommand_InvalidFlags(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:1")

	_, _, err := env.execute(t, "list", "--state", "merged")
	assert.ErrorContains(t, err, "invalid --state")

	_, _, err = env.execute(t, "list", "--pages", "0")
	assert.ErrorContains(t, err, "--pages")
}

func TestFavCommands_ToggleAndList(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:1")

	stdout, _, err := env.execute(t, "fav", "toggle", "7", "3", "9")
	require.NoError(t, err)
	assert.Equal(t, "★ #7\n★ #3\n★ #9\n", stdout)

	stdout, _, err = env.execute(t, "fav", "toggle", "3")
	require.NoError(t, err)
	assert.Equal(t, "  #3\n", stdout)

	stdout, _, err = env.execute(t, "fav", "list")
	require.NoError(t, err)
	assert.Equal(t, []string{"7", "9"}, strings.Fields(stdout))
}

func TestFavToggle_RejectsBadNumbers(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:1")

	for _, arg := range []string{"abc", "0", "-4"} {
		_, _, err := env.execute(t, "fav", "toggle", "--", arg)
		assert.ErrorContains(t, err, "invalid issue number", arg)
	}

	_, _, err := env.execute(t, "fav", "toggle")
	assert.Error(t, err)
}

func TestLogsCommand(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:1")
	lines := []string{
		`{"time":"2026-03-01T10:00:00Z","level":"info","msg":"first"}`,
		`{"time":"2026-03-01T10:00:01Z","level":"warn","msg":"second","page":2}`,
	}
	require.NoError(t, os.WriteFile(env.logPath, []byte(strings.Join(lines, "\n")+"\n"), 0o600))

	stdout, _, err := env.execute(t, "logs", "--raw", "-n", "1")
	require.NoError(t, err)
	assert.Equal(t, lines[1]+"\n", stdout)

	stdout, _, err = env.execute(t, "logs")
	require.NoError(t, err)
	assert.Contains(t, stdout, "first")
	assert.Contains(t, stdout, "second")
	assert.Contains(t, stdout, "page=2")
	assert.NotContains(t, stdout, `"msg"`)
}

func TestLogsCommand_MissingFile(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:1")

	stdout, _, err := env.execute(t, "logs")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestConfigCommand_PrintsEffectiveConfig(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:1")
	t.Setenv("ISSUEDECK_QUERY", "repo:c/d is:open")

	stdout, _, err := env.execute(t, "config")
	require.NoError(t, err)
	assert.Regexp(t, `api_url = ['"]http://127\.0\.0\.1:1['"]`, stdout)
	assert.Regexp(t, `query = ['"]repo:c/d is:open['"]`, stdout)
	assert.Contains(t, stdout, "page_size = 2")
}

func TestConfigCommand_InvalidConfig(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:1")
	require.NoError(t, os.WriteFile(env.configPath, []byte("page_size = ["), 0o600))

	_, _, err := env.execute(t, "config")
	assert.ErrorContains(t, err, "load config")
}
