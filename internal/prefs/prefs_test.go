package prefs

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadMissingKeepsSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")

	p, err := Load(path, Prefs{ShowLineNumbers: true, FollowTail: true})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !p.ShowLineNumbers || !p.FollowTail || p.WrapLines {
		t.Errorf("missing file should keep seed toggles, got %+v", p)
	}
	if p.Pins == nil {
		t.Error("Pins map should be initialized")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")

	p := &Prefs{WrapLines: true, Pins: make(map[string][]string)}
	p.SetPins("svc", []string{"b.log", "a.log"})
	p.SetPins("", []string{"loose.log"})

	if err := p.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path, Prefs{ShowLineNumbers: true})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !got.WrapLines {
		t.Error("WrapLines did not round-trip")
	}
	if got.ShowLineNumbers {
		t.Error("saved false should override the seed's true")
	}
	if want := []string{"b.log", "a.log"}; !reflect.DeepEqual(got.PinsFor("svc"), want) {
		t.Errorf("PinsFor(svc) = %v, want %v", got.PinsFor("svc"), want)
	}
	if want := []string{"loose.log"}; !reflect.DeepEqual(got.PinsFor(""), want) {
		t.Errorf("PinsFor(root) = %v, want %v", got.PinsFor(""), want)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("wrap_lines = true\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(path, Prefs{ShowLineNumbers: true, FollowTail: true})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !p.WrapLines {
		t.Error("wrap_lines from file not applied")
	}
	if !p.ShowLineNumbers || !p.FollowTail {
		t.Error("keys absent from file should keep their seeds")
	}
}

func TestSetPins(t *testing.T) {
	p := &Prefs{Pins: make(map[string][]string)}

	names := []string{"a.log"}
	p.SetPins("svc", names)
	names[0] = "mutated.log"
	if p.PinsFor("svc")[0] != "a.log" {
		t.Error("SetPins should copy its input")
	}

	p.SetPins("svc", nil)
	if _, ok := p.Pins["svc"]; ok {
		t.Error("empty pin list should remove the entry")
	}
}

func TestLoadBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("= not toml"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(path, Prefs{}); err == nil {
		t.Error("Load() on malformed toml should error")
	}
}
