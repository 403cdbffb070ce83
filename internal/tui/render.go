package tui

import (
	"fmt"
	"strconv"
	"strings"

	"loupe/internal/logview"
	"loupe/internal/severity"

	tea "github.com/charmbracelet/bubbletea"
)

// activateLog makes name the viewed log: cursor, query input, and the
// rendered cache all move to it. Content not cached yet is requested.
func (m Model) activateLog(name string) (Model, tea.Cmd) {
	if name == "" || !m.state.SetActive(name) {
		return m, nil
	}
	m = m.syncLogCursor()
	m.filterInput.SetValue(m.state.FilterFor(name).Query)

	raw, ok := m.state.Content(name)
	if !ok {
		m.rendered = nil
		m.renderedLog = name
		m.content.SetContent("")
		if m.inflight[name] {
			// A read is already coming; don't flag it dirty.
			return m, nil
		}
		return m.requestContent(name)
	}
	return m.renderFull(name, raw), nil
}

// reapplyFilter rebuilds the rendered cache for the active log from its
// cached content, after a query or severity change.
func (m Model) reapplyFilter() Model {
	name := m.state.Active
	if name == "" {
		return m
	}
	raw, ok := m.state.Content(name)
	if !ok {
		return m
	}
	return m.renderFull(name, raw)
}

// renderFull filters raw content from line one and replaces the cache.
func (m Model) renderFull(name, raw string) Model {
	f := m.state.FilterFor(name)
	res := f.Apply(strings.Split(raw, "\n"), 1, severity.None)
	m.rendered = res.Lines
	m.renderedLog = name
	return m.refreshContent()
}

// applyInstruction folds a sync decision into the rendered cache. For an
// append, the carried severity comes from the cache's last line, then
// cached lines from the append start onward are dropped so the
// re-delivered boundary line lands exactly once.
func (m Model) applyInstruction(name string, instr logview.Instruction) Model {
	if instr.Unchanged {
		return m
	}

	if m.renderedLog != name {
		// The cache shows another log; rebuild from the stored snapshot.
		raw, ok := m.state.Content(name)
		if !ok {
			return m
		}
		return m.renderFull(name, raw)
	}

	f := m.state.FilterFor(name)
	if instr.Full {
		res := f.Apply(instr.Lines, instr.Start, severity.None)
		m.rendered = res.Lines
		return m.refreshContent()
	}

	carry := severity.None
	if n := len(m.rendered); n > 0 {
		carry = m.rendered[n-1].Severity
	}

	keep := m.rendered
	for len(keep) > 0 && keep[len(keep)-1].Number >= instr.Start {
		keep = keep[:len(keep)-1]
	}

	res := f.Apply(instr.Lines, instr.Start, carry)
	m.rendered = append(keep, res.Lines...)
	return m.refreshContent()
}

// refreshContent pushes the rendered cache into the viewport.
func (m Model) refreshContent() Model {
	m.content.SetContent(m.renderLines())
	if m.followTail {
		m.content.GotoBottom()
	}
	return m
}

// renderLines turns the rendered cache into styled viewport text.
func (m Model) renderLines() string {
	if len(m.rendered) == 0 {
		return ""
	}

	gutterW := 0
	if m.showLineNumbers {
		gutterW = len(strconv.Itoa(m.rendered[len(m.rendered)-1].Number))
	}
	avail := m.contentWidth() - gutterW
	if gutterW > 0 {
		avail-- // space between gutter and text
	}
	if avail < 10 {
		avail = 10
	}

	var b strings.Builder
	for i, line := range m.rendered {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(m.renderLine(line, gutterW, avail))
	}
	return b.String()
}

// renderLine formats one line with its gutter and severity color,
// wrapping or truncating to the available width.
func (m Model) renderLine(line logview.Line, gutterW, avail int) string {
	st := styleForSeverity(line.Severity)

	var prefix, cont string
	if gutterW > 0 {
		prefix = gutterStyle.Render(fmt.Sprintf("%*d", gutterW, line.Number)) + " "
		cont = strings.Repeat(" ", gutterW+1)
	}

	if !m.wrapLines {
		return prefix + st.Render(truncate(line.Text, avail))
	}

	wrapped := strings.Split(st.Width(avail).Render(line.Text), "\n")
	for i := 1; i < len(wrapped); i++ {
		wrapped[i] = cont + wrapped[i]
	}
	return prefix + strings.Join(wrapped, "\n")
}
