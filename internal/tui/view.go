package tui

import (
	"fmt"
	"strings"

	"loupe/internal/logview"
	"loupe/internal/severity"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI based on the model state
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) +
			"\n" + helpStyle.Render("r:retry | q:quit")
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.viewMode {
	case ViewSessions:
		b.WriteString("\n")
		if len(m.sessions) == 0 && !m.hasRootLogs {
			b.WriteString(placeholderStyle.Render("No sessions found"))
		} else {
			b.WriteString(m.sessionList.View())
		}
	case ViewLogs:
		b.WriteString(m.renderFilterLine())
		b.WriteString("\n")
		b.WriteString(m.renderLogsBody())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

// renderHeader renders the top header bar
func (m Model) renderHeader() string {
	title := titleStyle.Render("loupe")

	var status string
	if m.viewMode == ViewLogs {
		status = statusStyle.Render(fmt.Sprintf("%s | %d logs", m.sessionLabel(), len(m.state.All)))
	} else {
		status = statusStyle.Render(fmt.Sprintf("%d sessions", len(m.sessions)))
	}

	notice := ""
	if m.status != "" {
		notice = noticeStyle.Render(" " + m.status)
	}

	// Calculate spacing
	leftPart := lipgloss.Width(title)
	rightPart := lipgloss.Width(status) + lipgloss.Width(notice)
	spacing := m.width - leftPart - rightPart - 4
	if spacing < 1 {
		spacing = 1
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		title,
		strings.Repeat(" ", spacing),
		status,
		notice,
	)
}

// sessionLabel names the open session for display.
func (m Model) sessionLabel() string {
	if m.state.Session == "" {
		return "(root logs)"
	}
	return m.state.Session
}

// renderFilterLine shows the live query input, or a summary of the
// active log's filter, plus the severity toggle badges and the
// visible/total count while anything is filtered out.
func (m Model) renderFilterLine() string {
	badges := m.renderSeverityBadges()
	counts := m.renderFilterCounts()

	if m.filtering {
		return m.filterInput.View() + "  " + badges + counts
	}

	name := m.state.Active
	if name == "" {
		return badges
	}
	if q := m.state.FilterFor(name).Query; q != "" {
		return filterLineStyle.Render("/"+q) + "  " + badges + counts
	}
	return badges + counts
}

// renderFilterCounts shows how many lines survive the active filter.
func (m Model) renderFilterCounts() string {
	name := m.state.Active
	if name == "" {
		return ""
	}
	f := m.state.FilterFor(name)
	raw, ok := m.state.Content(name)
	if !ok || (f.Query == "" && f.AllEnabled()) {
		return ""
	}
	total := strings.Count(raw, "\n") + 1
	return mutedStyle.Render(fmt.Sprintf("  %d/%d", len(m.rendered), total))
}

// renderSeverityBadges shows the six severity toggles, dimming the
// disabled ones.
func (m Model) renderSeverityBadges() string {
	var f *logview.Filter
	if name := m.state.Active; name != "" {
		f = m.state.FilterFor(name)
	}

	badges := []struct {
		tag   severity.Tag
		label string
	}{
		{severity.Error, "1:err"},
		{severity.Warn, "2:warn"},
		{severity.Info, "3:info"},
		{severity.Debug, "4:debug"},
		{severity.Trace, "5:trace"},
		{severity.Verbose, "6:verb"},
	}

	parts := make([]string, len(badges))
	for i, badge := range badges {
		if f == nil || f.Enabled[badge.tag] {
			parts[i] = styleForSeverity(badge.tag).Render(badge.label)
		} else {
			parts[i] = badgeOffStyle.Render(badge.label)
		}
	}
	return strings.Join(parts, " ")
}

// renderLogsBody renders the sidebar next to the content pane.
func (m Model) renderLogsBody() string {
	sidebar := sidebarStyle.Render(m.logList.View())

	var pane string
	name := m.state.Active
	raw, loaded := "", false
	if name != "" {
		raw, loaded = m.state.Content(name)
	}

	switch {
	case len(m.state.All) == 0:
		pane = placeholderStyle.Render("No logs in this session")
	case !loaded:
		pane = placeholderStyle.Render("Loading...")
	case raw == "":
		pane = placeholderStyle.Render("No content yet")
	case len(m.rendered) == 0:
		pane = placeholderStyle.Render("No log lines match the filter")
	default:
		pane = m.content.View()
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", pane)
}

// renderHelp renders the help footer
func (m Model) renderHelp() string {
	var help []string

	switch {
	case m.filtering:
		help = []string{
			"type to filter",
			"enter:keep",
			"esc:clear",
		}
	case m.viewMode == ViewSessions:
		help = []string{
			"j/k:navigate",
			"enter:open",
			"r:refresh",
			"q:quit",
		}
	default:
		help = []string{
			"tab:next log",
			"[/]:sessions",
			"p:pin",
			"/:filter",
			"1-6:severity",
			"n:numbers",
			"w:wrap",
			"f:follow",
			"esc:back",
			"q:quit",
		}
	}

	return helpStyle.Render(strings.Join(help, " | "))
}

// max returns the larger of two ints
func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
