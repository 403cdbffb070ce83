package tui

import (
	"time"

	"loupe/internal/config"
	"loupe/internal/logview"
	"loupe/internal/prefs"
	"loupe/internal/store"
	"loupe/internal/watch"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewMode represents the current view
type ViewMode int

const (
	ViewSessions ViewMode = iota // Session picker
	ViewLogs                     // Sidebar plus content pane
)

// Options configures a new Model.
type Options struct {
	Root      string // log tree to watch; falls back to config, then "."
	Config    *config.Config
	PrefsPath string // defaults to the standard prefs location
}

// Model represents the application state
type Model struct {
	// Core state
	cfg       *config.Config
	store     *store.Store
	watcher   *watch.Watcher
	state     *logview.State
	prefs     *prefs.Prefs
	prefsPath string

	viewMode    ViewMode
	sessionOpen bool // a session has been entered and is being watched
	restorePins bool // apply saved pins on the next log listing

	sessions    []store.Session
	hasRootLogs bool

	// UI components
	sessionList list.Model
	logList     list.Model
	content     viewport.Model
	filterInput textinput.Model
	filtering   bool

	// Delegates (stored to update width)
	sessionDelegate *sessionDelegate
	logDelegate     *logDelegate

	// Rendered lines of the active log, post filter
	rendered    []logview.Line
	renderedLog string

	// Display toggles, persisted in prefs
	showLineNumbers bool
	wrapLines       bool
	followTail      bool

	// Content reads underway, keyed by log name in the current session.
	// dirty marks logs that changed again while their read was in flight.
	inflight map[string]bool
	dirty    map[string]bool

	status string // transient footer notice

	// UI dimensions
	width  int
	height int

	// Error state
	err error
}

// NewModel creates a new Model with initialized state
func NewModel(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Global()
	}
	ApplyTheme(cfg.Theme)

	root := opts.Root
	if root == "" {
		root = cfg.LogDir
	}
	if root == "" {
		root = "."
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	seed := prefs.Prefs{
		ShowLineNumbers: cfg.ShowLineNumbers,
		WrapLines:       cfg.WrapLines,
		FollowTail:      cfg.FollowTail,
	}
	pr, err := prefs.Load(prefsPath, seed)
	if err != nil {
		pr = &seed
		pr.Pins = make(map[string][]string)
	}

	watcher, watchErr := watch.NewWatcher(cfg.Debounce())

	sessionDel := newSessionDelegate()
	logDel := newLogDelegate()

	m := Model{
		cfg:             cfg,
		store:           store.New(root),
		watcher:         watcher,
		state:           logview.NewState(),
		prefs:           pr,
		prefsPath:       prefsPath,
		viewMode:        ViewSessions,
		sessionDelegate: sessionDel,
		logDelegate:     logDel,
		showLineNumbers: pr.ShowLineNumbers,
		wrapLines:       pr.WrapLines,
		followTail:      pr.FollowTail,
		inflight:        make(map[string]bool),
		dirty:           make(map[string]bool),
		err:             watchErr,
	}

	// Initialize list components with delegates
	m.sessionList = list.New([]list.Item{}, sessionDel, 0, 0)
	m.sessionList.SetShowTitle(false)
	m.sessionList.SetShowHelp(false)
	m.sessionList.SetShowStatusBar(false)
	m.sessionList.SetFilteringEnabled(false)
	m.sessionList.DisableQuitKeybindings()

	m.logList = list.New([]list.Item{}, logDel, 0, 0)
	m.logList.SetShowTitle(false)
	m.logList.SetShowHelp(false)
	m.logList.SetShowStatusBar(false)
	m.logList.SetFilteringEnabled(false)
	m.logList.DisableQuitKeybindings()

	m.content = viewport.New(0, 0)

	m.filterInput = textinput.New()
	m.filterInput.Prompt = "/"
	m.filterInput.Placeholder = "substring filter"

	if watcher != nil {
		watcher.Start()
	}

	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.loadSessionsCmd(),
		m.tickCmd(),
	}
	if m.watcher != nil {
		cmds = append(cmds, m.waitWatchCmd())
	}
	return tea.Batch(cmds...)
}

// Message types
type (
	sessionsMsg struct {
		sessions []store.Session
		rootLogs bool
	}
	sessionLogsMsg struct {
		session string
		names   []string
		err     error
	}
	logContentMsg struct {
		session string
		name    string
		content string
		ok      bool
	}
	filesChangedMsg   []string        // debounced batch of changed filenames
	listingRefreshMsg struct{}        // slower window fired, re-sync listings
	watchResetMsg     struct{}        // watch torn down, re-sync everything
	watchErrMsg       struct{ error } // transient watcher trouble
	tickMsg           time.Time
	errMsg            struct{ error } // General error
)

// loadSessionsCmd lists the root's session directories
func (m Model) loadSessionsCmd() tea.Cmd {
	return func() tea.Msg {
		sessions, rootLogs, err := m.store.ListSessions()
		if err != nil {
			return errMsg{err}
		}
		return sessionsMsg{sessions: sessions, rootLogs: rootLogs}
	}
}

// loadLogsCmd lists the logs of one session
func (m Model) loadLogsCmd(session string) tea.Cmd {
	return func() tea.Msg {
		names, err := m.store.ListLogs(session)
		return sessionLogsMsg{session: session, names: names, err: err}
	}
}

// loadContentCmd reads one log's content off the update loop
func (m Model) loadContentCmd(session, name string) tea.Cmd {
	return func() tea.Msg {
		content, ok := m.store.ReadLog(session, name)
		return logContentMsg{session: session, name: name, content: content, ok: ok}
	}
}

// waitWatchCmd waits for the next watcher delivery. Re-armed after every
// message it produces, so exactly one receiver is outstanding.
func (m Model) waitWatchCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case batch := <-m.watcher.Batches():
			return filesChangedMsg(batch)
		case <-m.watcher.Refreshes():
			return listingRefreshMsg{}
		case <-m.watcher.Resets:
			return watchResetMsg{}
		case err := <-m.watcher.Errors:
			return watchErrMsg{err}
		}
	}
}

// tickCmd returns a command that ticks every 30 seconds to refresh timestamps
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(30*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// updateSessionList rebuilds the session list items
func (m Model) updateSessionList() Model {
	items := make([]list.Item, 0, len(m.sessions)+1)
	if m.hasRootLogs {
		items = append(items, sessionItem{isRoot: true})
	}
	for _, s := range m.sessions {
		items = append(items, sessionItem{name: s.Name, modTime: s.ModTime})
	}
	m.sessionList.SetItems(items)
	return m
}

// updateLogList rebuilds the sidebar from the registry's visual order
// and keeps the cursor on the active log.
func (m Model) updateLogList() Model {
	order := m.state.VisualOrder()
	items := make([]list.Item, len(order))
	for i, name := range order {
		items[i] = logItem{name: name, pinned: m.state.IsPinned(name)}
	}
	m.logList.SetItems(items)
	return m.syncLogCursor()
}

// syncLogCursor moves the sidebar cursor to the active log.
func (m Model) syncLogCursor() Model {
	for i, name := range m.state.VisualOrder() {
		if name == m.state.Active {
			m.logList.Select(i)
			break
		}
	}
	return m
}

// updateListSizes updates component dimensions based on terminal size
func (m Model) updateListSizes() Model {
	// Reserve space for header (2), filter line (1), help (2)
	bodyHeight := m.height - 5
	if bodyHeight < 5 {
		bodyHeight = 5
	}

	listWidth := m.width - 4
	if listWidth < 20 {
		listWidth = 20
	}
	m.sessionDelegate.SetWidth(listWidth)
	m.sessionList.SetSize(listWidth, bodyHeight)

	sidebar := m.sidebarWidth()
	m.logDelegate.SetWidth(sidebar)
	m.logList.SetSize(sidebar, bodyHeight)

	m.content.Width = m.contentWidth()
	m.content.Height = bodyHeight

	m.filterInput.Width = m.contentWidth() - 20

	return m.refreshContent()
}

// sidebarWidth is the log list's column width.
func (m Model) sidebarWidth() int {
	w := m.width / 4
	if w < 18 {
		w = 18
	}
	if w > 32 {
		w = 32
	}
	return w
}

// contentWidth is the viewport's column width.
func (m Model) contentWidth() int {
	w := m.width - m.sidebarWidth() - 3
	if w < 20 {
		w = 20
	}
	return w
}

// requestContent schedules a read for one log, keeping at most one read
// in flight per log. Changes landing mid-read mark the log dirty and
// re-read once the stale result returns.
func (m Model) requestContent(name string) (Model, tea.Cmd) {
	if m.inflight[name] {
		m.dirty[name] = true
		return m, nil
	}
	m.inflight[name] = true
	return m, m.loadContentCmd(m.state.Session, name)
}
