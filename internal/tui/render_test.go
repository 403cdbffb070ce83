package tui

import (
	"strings"
	"testing"

	"loupe/internal/severity"
	"loupe/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func TestApplyInstructionCarriesSeverity(t *testing.T) {
	m, root := testModel(t)
	mkSession(t, root, "svc")
	m = openSession(t, m, "svc", []string{"a.log"})

	m = deliver(t, m, logContentMsg{session: "svc", name: "a.log", content: "| ERROR | boom\n", ok: true})
	if len(m.rendered) != 2 || m.rendered[1].Severity != severity.Error {
		t.Fatalf("trailing line should inherit Error, got %+v", m.rendered)
	}

	// The appended continuation has no token of its own. It must pick up
	// the severity carried across the append boundary.
	m = deliver(t, m, logContentMsg{session: "svc", name: "a.log", content: "| ERROR | boom\ncontinued\n", ok: true})

	if len(m.rendered) != 3 {
		t.Fatalf("rendered %d lines, want 3", len(m.rendered))
	}
	if m.rendered[1].Text != "continued" || m.rendered[1].Severity != severity.Error {
		t.Errorf("rendered[1] = %+v, want continued with inherited Error", m.rendered[1])
	}
}

func TestApplyInstructionBoundaryOnce(t *testing.T) {
	m, root := testModel(t)
	mkSession(t, root, "svc")
	m = openSession(t, m, "svc", []string{"a.log"})

	// First read catches the writer mid-line.
	m = deliver(t, m, logContentMsg{session: "svc", name: "a.log", content: "A\nB par", ok: true})
	// The next read re-delivers the completed boundary line.
	m = deliver(t, m, logContentMsg{session: "svc", name: "a.log", content: "A\nB partial done\nC\n", ok: true})

	seen := 0
	for _, line := range m.rendered {
		if strings.HasPrefix(line.Text, "B par") {
			seen++
			if line.Text != "B partial done" {
				t.Errorf("boundary line text = %q, want the completed line", line.Text)
			}
		}
		if line.Number == 2 && line.Text != "B partial done" {
			t.Errorf("line 2 = %q, stale partial should be replaced", line.Text)
		}
	}
	if seen != 1 {
		t.Errorf("boundary line rendered %d times, want exactly once", seen)
	}
}

func TestActivateCachedLogSkipsRead(t *testing.T) {
	m, root := testModel(t)
	mkSession(t, root, "svc")
	m = openSession(t, m, "svc", []string{"a.log", "b.log"})

	m = deliver(t, m, logContentMsg{session: "svc", name: "a.log", content: "from a\n", ok: true})
	m = deliver(t, m, logContentMsg{session: "svc", name: "b.log", content: "from b\n", ok: true})

	if m.renderedLog != "a.log" {
		t.Fatalf("renderedLog = %q, want the active log", m.renderedLog)
	}

	m = deliver(t, m, tea.KeyMsg{Type: tea.KeyTab})

	if m.renderedLog != "b.log" {
		t.Fatalf("renderedLog = %q after tab, want b.log", m.renderedLog)
	}
	if m.rendered[0].Text != "from b" {
		t.Errorf("rendered[0] = %+v, want b's content", m.rendered[0])
	}
	if m.inflight["b.log"] {
		t.Error("cached content should render without issuing a read")
	}
}

func TestRenderLinesGutter(t *testing.T) {
	m, root := testModel(t)
	mkSession(t, root, "svc")
	m = openSession(t, m, "svc", []string{"a.log"})
	m = deliver(t, m, logContentMsg{session: "svc", name: "a.log", content: "one\ntwo\n", ok: true})

	rows := strings.Split(store.StripANSI(m.renderLines()), "\n")
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0] != "1 one" {
		t.Errorf("rows[0] = %q, want gutter then text", rows[0])
	}
	if !strings.HasPrefix(rows[2], "3") {
		t.Errorf("rows[2] = %q, want line number 3", rows[2])
	}

	m.showLineNumbers = false
	rows = strings.Split(store.StripANSI(m.renderLines()), "\n")
	if rows[0] != "one" {
		t.Errorf("rows[0] = %q, want bare text with numbers off", rows[0])
	}
}

func TestRenderLineTruncates(t *testing.T) {
	m, root := testModel(t)
	mkSession(t, root, "svc")
	m = openSession(t, m, "svc", []string{"a.log"})

	long := strings.Repeat("x", 200)
	m = deliver(t, m, logContentMsg{session: "svc", name: "a.log", content: long + "\n", ok: true})

	rows := strings.Split(store.StripANSI(m.renderLines()), "\n")
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want one per line with wrapping off", len(rows))
	}
	if !strings.HasSuffix(rows[0], "...") {
		t.Errorf("long line should truncate with an ellipsis, got %q", rows[0])
	}
	if len(rows[0]) >= 100 {
		t.Errorf("row length %d, want it cut to the pane width", len(rows[0]))
	}
}

func TestRenderLineWraps(t *testing.T) {
	m, root := testModel(t)
	mkSession(t, root, "svc")
	m = openSession(t, m, "svc", []string{"a.log"})
	m.wrapLines = true

	long := strings.Repeat("x", 200)
	m = deliver(t, m, logContentMsg{session: "svc", name: "a.log", content: long + "\n", ok: true})

	rows := strings.Split(store.StripANSI(m.renderLines()), "\n")
	if len(rows) <= 2 {
		t.Fatalf("got %d rows, want the long line spread over several", len(rows))
	}
	// Continuation rows align under the text, past the gutter.
	if !strings.HasPrefix(rows[1], "  ") {
		t.Errorf("rows[1] = %q, want continuation indent", rows[1])
	}
	if strings.Contains(strings.TrimLeft(rows[1], " "), "...") {
		t.Error("wrapped lines should not truncate")
	}
}
