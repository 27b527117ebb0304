// Package ui provides the Bubble Tea TUI for issuedeck.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/issuedeck/internal/fetch"
	"github.com/five82/issuedeck/internal/github"
	"github.com/five82/issuedeck/internal/logging"
	"github.com/five82/issuedeck/internal/prefs"
	"github.com/five82/issuedeck/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Logger    *logging.Logger
	Title     string // search qualifier shown in the header
	Prefs     prefs.Prefs
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	log       *logging.Logger
	title     string
	prefs     prefs.Prefs
	prefsPath string

	// Widgets
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	filter  textinput.Model

	// UI state
	theme     Theme
	width     int
	height    int
	ready     bool
	showHelp  bool
	filtering bool

	// Data state
	snapshot    state.Snapshot
	selectedRow int
	offset      int
	notice      string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	input := textinput.New()
	input.Placeholder = "filter titles"
	input.Prompt = "/ "
	input.CharLimit = 120

	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		log:       logger,
		title:     opts.Title,
		prefs:     opts.Prefs,
		prefsPath: prefsPath,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		filter:    input,
		theme:     GetTheme(opts.Prefs.Theme),
	}
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
		m.filter.SetValue(m.snapshot.Filter.Query)
	}
	return m
}

// Init implements tea.Model. The first page is requested immediately.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg { return loadMoreMsg{} })
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.filter.Width = max(msg.Width-8, 10)
		m.ready = true
		m.clampSelection()
		return m, nil

	case loadMoreMsg:
		cmd := m.beginLoad()
		return m, cmd

	case loadedMsg:
		m.completeLoad(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.LoadMore):
		cmd := m.beginLoad()
		return m, cmd

	case key.Matches(msg, m.keys.ToggleFavorite):
		m.toggleSelectedFavorite()
		return m, nil

	case key.Matches(msg, m.keys.FavoritesOnly):
		if m.store == nil {
			return m, nil
		}
		m.prefs.FavoritesOnly = m.store.ToggleFavoritesOnly()
		m.savePrefs()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.CycleState):
		if m.store == nil {
			return m, nil
		}
		m.store.SetStateFilter(nextStateFilter(m.snapshot.Filter.State))
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		cmd := m.filter.Focus()
		return m, cmd
	}

	return m.handleNavigationKey(msg)
}

// handleFilterKey routes keys to the filter input. Every edit is forwarded to
// the store so the view narrows as the user types.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Confirm):
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyQuery()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyQuery()
	return m, cmd
}

func (m Model) handleNavigationKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.snapshot.View)
	if count == 0 {
		return m, nil
	}
	page := max(m.tableHeight(), 1)

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < count-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = count - 1
	case key.Matches(msg, m.keys.PageDown):
		m.selectedRow = min(m.selectedRow+page, count-1)
	case key.Matches(msg, m.keys.PageUp):
		m.selectedRow = max(m.selectedRow-page, 0)
	}
	m.clampSelection()
	return m, nil
}

// beginLoad publishes the loading state and returns the command that performs
// the fetch off the update loop. A pending request is superseded.
func (m *Model) beginLoad() tea.Cmd {
	if m.store == nil {
		return nil
	}
	reqCtx, req := m.store.BeginLoad(m.ctx)
	m.notice = ""
	m.refresh()
	return fetchCmd(reqCtx, m.store, req)
}

func (m *Model) completeLoad(msg loadedMsg) {
	if m.store == nil {
		return
	}
	added, ok := m.store.CompleteLoad(msg.req, msg.res, msg.err)
	if !ok {
		return
	}
	m.refresh()
	if msg.err == nil {
		m.notice = fmt.Sprintf("loaded %d new issues", len(added))
	}
}

func (m *Model) toggleSelectedFavorite() {
	issue, ok := m.selectedIssue()
	if !ok || m.store == nil {
		return
	}
	// Write failures surface through snapshot.LastError.
	if err := m.store.ToggleFavorite(issue.Number); err != nil {
		m.notice = ""
	} else {
		verb := "unfavorited"
		if !issue.Favorite {
			verb = "favorited"
		}
		m.notice = fmt.Sprintf("%s #%d", verb, issue.Number)
	}
	m.refresh()
}

func (m *Model) applyQuery() {
	if m.store == nil {
		return
	}
	m.store.SetQuery(m.filter.Value())
	m.refresh()
}

func (m *Model) savePrefs() {
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.log.Warn("save prefs failed", "path", m.prefsPath, "err", err)
	}
}

// refresh pulls the latest snapshot from the store.
func (m *Model) refresh() {
	if m.store == nil {
		return
	}
	m.snapshot = m.store.Snapshot()
	m.clampSelection()
}

// clampSelection keeps the cursor inside the view and scrolls the table so
// the selected row stays visible.
func (m *Model) clampSelection() {
	count := len(m.snapshot.View)
	if m.selectedRow >= count {
		m.selectedRow = count - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
	height := max(m.tableHeight(), 1)
	if m.selectedRow < m.offset {
		m.offset = m.selectedRow
	}
	if m.selectedRow >= m.offset+height {
		m.offset = m.selectedRow - height + 1
	}
	if m.offset > max(count-height, 0) {
		m.offset = max(count-height, 0)
	}
}

func (m Model) selectedIssue() (github.Issue, bool) {
	if m.selectedRow < 0 || m.selectedRow >= len(m.snapshot.View) {
		return github.Issue{}, false
	}
	return m.snapshot.View[m.selectedRow], true
}

// nextStateFilter cycles any -> open -> closed -> any.
func nextStateFilter(current github.IssueState) github.IssueState {
	switch current {
	case "":
		return github.StateOpen
	case github.StateOpen:
		return github.StateClosed
	default:
		return ""
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderFilter())
	b.WriteString("\n")
	b.WriteString(m.renderTable())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// Messages

type loadMoreMsg struct{}

type loadedMsg struct {
	req fetch.Request
	res github.SearchResult
	err error
}

// Commands

func fetchCmd(ctx context.Context, store *state.Store, req fetch.Request) tea.Cmd {
	return func() tea.Msg {
		res, err := store.Fetch(ctx, req)
		return loadedMsg{req: req, res: res, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("ui requires a data store")
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if err != nil && m.ctx.Err() != nil {
		return nil
	}
	return err
}
