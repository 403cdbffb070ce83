package logview

import (
	"testing"

	"loupe/internal/severity"
)

func TestFilterApplyInheritance(t *testing.T) {
	lines := []string{
		"| ERROR | write failed",
		"  at disk.go:42",
		"  at main.go:10",
		"[INFO] retrying",
		"done",
	}

	f := NewFilter()
	res := f.Apply(lines, 1, severity.None)
	if len(res.Lines) != 5 {
		t.Fatalf("all-enabled filter kept %d lines, want 5", len(res.Lines))
	}

	wantSev := []severity.Tag{severity.Error, severity.Error, severity.Error, severity.Info, severity.Info}
	for i, line := range res.Lines {
		if line.Severity != wantSev[i] {
			t.Errorf("line %d severity = %v, want %v", i+1, line.Severity, wantSev[i])
		}
		if line.Number != i+1 {
			t.Errorf("line %d number = %d, want %d", i+1, line.Number, i+1)
		}
	}

	f.Toggle(severity.Error)
	res = f.Apply(lines, 1, severity.None)
	var got []string
	for _, line := range res.Lines {
		got = append(got, line.Text)
	}
	want := []string{"[INFO] retrying", "done"}
	if len(got) != len(want) {
		t.Fatalf("error-disabled filter kept %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFilterApplyCarry(t *testing.T) {
	lines := []string{"  at frame.go:12", "[WARN] slow"}

	f := NewFilter()
	res := f.Apply(lines, 5, severity.Error)
	if len(res.Lines) != 2 {
		t.Fatalf("kept %d lines, want 2", len(res.Lines))
	}
	if res.Lines[0].Severity != severity.Error {
		t.Errorf("carried severity = %v, want %v", res.Lines[0].Severity, severity.Error)
	}
	if res.Lines[0].Number != 5 || res.Lines[1].Number != 6 {
		t.Errorf("numbers = %d, %d, want 5, 6", res.Lines[0].Number, res.Lines[1].Number)
	}

	f.Toggle(severity.Error)
	res = f.Apply(lines, 5, severity.Error)
	if len(res.Lines) != 1 || res.Lines[0].Text != "[WARN] slow" {
		t.Errorf("error-disabled carry kept %v, want only the warn line", res.Lines)
	}
}

func TestFilterApplyUnclassifiedNeverSeverityFiltered(t *testing.T) {
	lines := []string{"starting up", "reading config"}

	f := NewFilter()
	for _, tag := range severity.All {
		f.Toggle(tag)
	}

	res := f.Apply(lines, 1, severity.None)
	if len(res.Lines) != 2 {
		t.Errorf("unclassified lines kept = %d, want 2 with every severity disabled", len(res.Lines))
	}
}

func TestFilterApplyQuery(t *testing.T) {
	lines := []string{
		"[INFO] connection opened",
		"[INFO] Connection closed",
		"[ERROR] timeout",
	}

	f := NewFilter()
	f.Query = "CONNECTION"
	res := f.Apply(lines, 1, severity.None)
	if len(res.Lines) != 2 {
		t.Fatalf("query kept %d lines, want 2", len(res.Lines))
	}
	if res.Lines[0].Number != 1 || res.Lines[1].Number != 2 {
		t.Errorf("query kept numbers %d, %d, want 1, 2", res.Lines[0].Number, res.Lines[1].Number)
	}

	f.Toggle(severity.Info)
	res = f.Apply(lines, 1, severity.None)
	if len(res.Lines) != 0 {
		t.Errorf("query+severity kept %d lines, want 0", len(res.Lines))
	}
	if !res.NoMatches() {
		t.Error("NoMatches() = false, want true")
	}
}

func TestFilterResultEmptyVsNoMatches(t *testing.T) {
	f := NewFilter()

	res := f.Apply(nil, 1, severity.None)
	if !res.Empty() || res.NoMatches() {
		t.Errorf("nil input: Empty=%v NoMatches=%v, want true false", res.Empty(), res.NoMatches())
	}

	f.Query = "nope"
	res = f.Apply([]string{"something"}, 1, severity.None)
	if res.Empty() || !res.NoMatches() {
		t.Errorf("filtered input: Empty=%v NoMatches=%v, want false true", res.Empty(), res.NoMatches())
	}
	if res.Total != 1 {
		t.Errorf("Total = %d, want 1", res.Total)
	}
}

func TestFilterApplyPure(t *testing.T) {
	lines := []string{"[ERROR] boom", "  detail", "[INFO] fine"}

	f := NewFilter()
	f.Query = "o"
	f.Toggle(severity.Info)

	first := f.Apply(lines, 1, severity.None)
	second := f.Apply(lines, 1, severity.None)

	if len(first.Lines) != len(second.Lines) || first.Total != second.Total {
		t.Fatalf("repeated Apply diverged: %+v then %+v", first, second)
	}
	for i := range first.Lines {
		if first.Lines[i] != second.Lines[i] {
			t.Errorf("line %d diverged: %+v then %+v", i, first.Lines[i], second.Lines[i])
		}
	}
}

func TestFilterDefaults(t *testing.T) {
	f := NewFilter()
	if !f.AllEnabled() {
		t.Error("new filter has severities disabled")
	}
	f.Toggle(severity.Debug)
	if f.AllEnabled() {
		t.Error("AllEnabled() = true after disabling debug")
	}
	f.Toggle(severity.Debug)
	if !f.AllEnabled() {
		t.Error("AllEnabled() = false after re-enabling debug")
	}
}
