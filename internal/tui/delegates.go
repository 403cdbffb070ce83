package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// ============================================================================
// Session Item
// ============================================================================

// sessionItem wraps one session directory for the list component. The
// root pseudo-session has an empty name.
type sessionItem struct {
	name    string
	modTime time.Time
	isRoot  bool
}

func (i sessionItem) FilterValue() string { return i.name }

func (i sessionItem) Title() string {
	if i.isRoot {
		return "(root logs)"
	}
	return i.name
}

func (i sessionItem) Description() string {
	if i.isRoot {
		return "files in the watched directory itself"
	}
	return formatTimeAgo(i.modTime)
}

// sessionDelegate renders session items
type sessionDelegate struct {
	width int
}

func newSessionDelegate() *sessionDelegate {
	return &sessionDelegate{}
}

func (d *sessionDelegate) SetWidth(w int) { d.width = w }

func (d *sessionDelegate) Height() int                             { return 2 }
func (d *sessionDelegate) Spacing() int                            { return 1 }
func (d *sessionDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d *sessionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(sessionItem)
	if !ok {
		return
	}

	nameStyle := normalItemStyle
	if index == m.Index() {
		nameStyle = selectedItemStyle
	}

	name := nameStyle.Render(truncate(i.Title(), max(10, d.width-4)))
	desc := mutedStyle.Render("  " + i.Description())

	fmt.Fprintf(w, "  %s\n%s", name, desc)
}

// ============================================================================
// Log Item
// ============================================================================

// logItem wraps one log filename for the sidebar list.
type logItem struct {
	name   string
	pinned bool
}

func (i logItem) FilterValue() string { return i.name }
func (i logItem) Title() string       { return i.name }
func (i logItem) Description() string { return "" }

// logDelegate renders sidebar entries on a single line with a pin mark.
type logDelegate struct {
	width int
}

func newLogDelegate() *logDelegate {
	return &logDelegate{}
}

func (d *logDelegate) SetWidth(w int) { d.width = w }

func (d *logDelegate) Height() int                             { return 1 }
func (d *logDelegate) Spacing() int                            { return 0 }
func (d *logDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d *logDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(logItem)
	if !ok {
		return
	}

	mark := "  "
	if i.pinned {
		mark = pinMarkStyle.Render("* ")
	}

	style := normalItemStyle
	if index == m.Index() {
		style = selectedItemStyle
	}

	fmt.Fprintf(w, "%s%s", mark, style.Render(truncate(i.name, max(8, d.width-3))))
}

// ============================================================================
// Helper Functions
// ============================================================================

// formatTimeAgo returns a human-readable relative time string
func formatTimeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case d < 24*time.Hour:
		hours := int(d.Hours())
		if hours == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hours)
	default:
		return t.Format("Jan 2")
	}
}

// truncate shortens a string to max length with ellipsis
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
