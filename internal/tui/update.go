package tui

import (
	"loupe/internal/severity"
	"loupe/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.updateListSizes(), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case sessionsMsg:
		return m.handleSessions(msg)

	case sessionLogsMsg:
		return m.handleSessionLogs(msg)

	case logContentMsg:
		return m.handleLogContent(msg)

	case filesChangedMsg:
		return m.handleFilesChanged(msg)

	case listingRefreshMsg:
		return m.handleListingRefresh()

	case watchResetMsg:
		return m.handleWatchReset()

	case watchErrMsg:
		m.status = "watch: " + msg.Error()
		return m, m.waitWatchCmd()

	case tickMsg:
		return m, m.tickCmd()

	case errMsg:
		m.err = msg.error
		return m, nil
	}

	return m, nil
}

// handleKey dispatches key presses by mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch m.viewMode {
	case ViewSessions:
		return m.handleSessionsKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	}
	return m, nil
}

// handleSessionsKey handles the session picker.
func (m Model) handleSessionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "r":
		m.err = nil
		m.status = ""
		return m, m.loadSessionsCmd()

	case "enter":
		item, ok := m.sessionList.SelectedItem().(sessionItem)
		if !ok {
			return m, nil
		}
		return m.enterSession(item.name)

	default:
		var cmd tea.Cmd
		m.sessionList, cmd = m.sessionList.Update(msg)
		return m, cmd
	}
}

// handleLogsKey handles the main log view.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc", "s":
		m.viewMode = ViewSessions
		return m, m.loadSessionsCmd()

	case "/":
		m.filtering = true
		m.filterInput.Focus()
		return m, nil

	case "1", "2", "3", "4", "5", "6":
		return m.toggleSeverity(severityForKey(msg.String())), nil

	case "tab":
		return m.activateLog(m.state.NextLog())

	case "shift+tab":
		return m.activateLog(m.state.PrevLog())

	case "]":
		return m.cycleSession(1)

	case "[":
		return m.cycleSession(-1)

	case "p":
		return m.togglePin(), nil

	case "n":
		m.showLineNumbers = !m.showLineNumbers
		m.prefs.ShowLineNumbers = m.showLineNumbers
		m = m.savePrefs()
		return m.refreshContent(), nil

	case "w":
		m.wrapLines = !m.wrapLines
		m.prefs.WrapLines = m.wrapLines
		m = m.savePrefs()
		return m.refreshContent(), nil

	case "f":
		m.followTail = !m.followTail
		m.prefs.FollowTail = m.followTail
		m = m.savePrefs()
		if m.followTail {
			m.content.GotoBottom()
		}
		return m, nil

	case "r":
		m.status = ""
		var cmds []tea.Cmd
		cmds = append(cmds, m.loadLogsCmd(m.state.Session))
		if name := m.state.Active; name != "" {
			var cmd tea.Cmd
			m, cmd = m.requestContent(name)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case "g", "home":
		m.content.GotoTop()
		return m, nil

	case "G", "end":
		m.content.GotoBottom()
		return m, nil

	default:
		var cmd tea.Cmd
		m.content, cmd = m.content.Update(msg)
		return m, cmd
	}
}

// handleFilterKey routes keys to the query input while it has focus. The
// query applies as it is typed; enter keeps it, esc clears it.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.filterInput.Blur()
		return m, nil

	case "esc":
		m.filtering = false
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		if name := m.state.Active; name != "" {
			m.state.FilterFor(name).Query = ""
		}
		return m.reapplyFilter(), nil

	default:
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		if name := m.state.Active; name != "" {
			f := m.state.FilterFor(name)
			if f.Query != m.filterInput.Value() {
				f.Query = m.filterInput.Value()
				m = m.reapplyFilter()
			}
		}
		return m, cmd
	}
}

// severityForKey maps the number row to severity toggles.
func severityForKey(key string) severity.Tag {
	switch key {
	case "1":
		return severity.Error
	case "2":
		return severity.Warn
	case "3":
		return severity.Info
	case "4":
		return severity.Debug
	case "5":
		return severity.Trace
	default:
		return severity.Verbose
	}
}

// toggleSeverity flips one severity on the active log's filter.
func (m Model) toggleSeverity(tag severity.Tag) Model {
	name := m.state.Active
	if name == "" {
		return m
	}
	m.state.FilterFor(name).Toggle(tag)
	return m.reapplyFilter()
}

// togglePin pins or unpins the active log and persists the new order.
func (m Model) togglePin() Model {
	name := m.state.Active
	if name == "" {
		return m
	}
	m.state.TogglePin(name)
	m.prefs.SetPins(m.state.Session, m.state.Pinned)
	m = m.savePrefs()
	return m.updateLogList()
}

// savePrefs writes prefs to disk, noting failure in the footer.
func (m Model) savePrefs() Model {
	if err := m.prefs.Save(m.prefsPath); err != nil {
		m.status = "prefs not saved: " + err.Error()
	}
	return m
}

// enterSession switches to a session and aims the watcher at it.
func (m Model) enterSession(session string) (Model, tea.Cmd) {
	m.state.SetSession(session)
	m.restorePins = true
	m.sessionOpen = true
	m.inflight = make(map[string]bool)
	m.dirty = make(map[string]bool)
	m.rendered = nil
	m.renderedLog = ""
	m.content.SetContent("")
	m.filtering = false
	m.filterInput.SetValue("")
	m.viewMode = ViewLogs
	m.status = ""

	if m.watcher != nil {
		if err := m.watcher.Watch(m.store.Dir(session)); err != nil {
			// Vanished between listing and selection.
			m.sessionOpen = false
			m.viewMode = ViewSessions
			return m, m.loadSessionsCmd()
		}
	}

	return m, m.loadLogsCmd(session)
}

// cycleSession moves to the next or previous session in picker order.
func (m Model) cycleSession(delta int) (Model, tea.Cmd) {
	names := make([]string, 0, len(m.sessions)+1)
	if m.hasRootLogs {
		names = append(names, store.RootSession)
	}
	for _, s := range m.sessions {
		names = append(names, s.Name)
	}
	if len(names) == 0 {
		return m, nil
	}

	idx := 0
	for i, name := range names {
		if name == m.state.Session {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(names)) % len(names)
	if names[idx] == m.state.Session {
		return m, nil
	}
	return m.enterSession(names[idx])
}

// handleSessions applies a fresh session listing.
func (m Model) handleSessions(msg sessionsMsg) (tea.Model, tea.Cmd) {
	m.sessions = msg.sessions
	m.hasRootLogs = msg.rootLogs
	m.err = nil
	m = m.updateSessionList()

	// The open session disappearing sends us back to the picker; the
	// watcher's reset path handles the rest.
	if m.sessionOpen && !m.sessionListed(m.state.Session) {
		m.sessionOpen = false
		m.viewMode = ViewSessions
		m.state.Reset()
		m.rendered = nil
		m.renderedLog = ""
		m.content.SetContent("")
	}

	return m, nil
}

// sessionListed reports whether a session name is in the current listing.
func (m Model) sessionListed(session string) bool {
	if session == store.RootSession {
		return m.hasRootLogs
	}
	for _, s := range m.sessions {
		if s.Name == session {
			return true
		}
	}
	return false
}

// handleSessionLogs applies a fresh log listing for the open session.
func (m Model) handleSessionLogs(msg sessionLogsMsg) (tea.Model, tea.Cmd) {
	if msg.session != m.state.Session {
		return m, nil // stale listing from a previous session
	}
	if msg.err != nil {
		// The session directory went away under us.
		m.sessionOpen = false
		m.viewMode = ViewSessions
		return m, m.loadSessionsCmd()
	}

	wasActive := m.state.Active
	added := m.state.SetLogs(msg.names)
	if m.restorePins {
		m.state.RestorePins(m.prefs.PinsFor(msg.session))
		m.restorePins = false
	}
	m = m.updateLogList()

	var cmds []tea.Cmd
	for _, name := range added {
		var cmd tea.Cmd
		m, cmd = m.requestContent(name)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if m.state.Active != wasActive {
		if m.state.Active == "" {
			m.rendered = nil
			m.renderedLog = ""
			m.content.SetContent("")
		} else {
			var cmd tea.Cmd
			m, cmd = m.activateLog(m.state.Active)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// handleLogContent folds a finished read into view state.
func (m Model) handleLogContent(msg logContentMsg) (tea.Model, tea.Cmd) {
	if msg.session != m.state.Session || !m.state.Contains(msg.name) {
		return m, nil // log no longer registered, drop
	}

	delete(m.inflight, msg.name)

	var cmds []tea.Cmd
	if m.dirty[msg.name] {
		// Changed again while this read ran; go around once more.
		delete(m.dirty, msg.name)
		m.inflight[msg.name] = true
		cmds = append(cmds, m.loadContentCmd(msg.session, msg.name))
	}

	if !msg.ok {
		// Unreadable or freshly deleted; the listing pass reconciles.
		cmds = append(cmds, m.loadLogsCmd(msg.session))
		return m, tea.Batch(cmds...)
	}

	instr := m.state.Sync(msg.name, msg.content)
	if msg.name == m.state.Active {
		m = m.applyInstruction(msg.name, instr)
	}

	return m, tea.Batch(cmds...)
}

// handleFilesChanged re-reads the registered logs named in a batch.
func (m Model) handleFilesChanged(names []string) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.waitWatchCmd()}
	for _, name := range names {
		if !m.state.Contains(name) {
			continue // new arrivals wait for the listing refresh
		}
		var cmd tea.Cmd
		m, cmd = m.requestContent(name)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

// handleListingRefresh re-syncs directory listings after the slow window.
func (m Model) handleListingRefresh() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.waitWatchCmd(), m.loadSessionsCmd()}
	if m.sessionOpen {
		cmds = append(cmds, m.loadLogsCmd(m.state.Session))
	}
	return m, tea.Batch(cmds...)
}

// handleWatchReset re-establishes the watch and re-syncs from disk.
func (m Model) handleWatchReset() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.waitWatchCmd(), m.loadSessionsCmd()}

	if m.sessionOpen && m.watcher != nil {
		if err := m.watcher.Watch(m.store.Dir(m.state.Session)); err != nil {
			// The session directory is gone; drop all cached state.
			m.sessionOpen = false
			m.viewMode = ViewSessions
			m.state.Reset()
			m.rendered = nil
			m.renderedLog = ""
			m.content.SetContent("")
			return m, tea.Batch(cmds...)
		}
		cmds = append(cmds, m.loadLogsCmd(m.state.Session))
	}

	return m, tea.Batch(cmds...)
}
