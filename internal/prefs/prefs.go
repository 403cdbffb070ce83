// Package prefs persists small bits of UI state between runs: display
// toggles and the pinned logs of each session.
package prefs

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// rootKey stands in for the root session's empty name on disk.
const rootKey = "."

// Prefs is the on-disk preference file.
type Prefs struct {
	// Display toggles, seeded from config and updated as the user flips them
	ShowLineNumbers bool `toml:"show_line_numbers"`
	WrapLines       bool `toml:"wrap_lines"`
	FollowTail      bool `toml:"follow_tail"`

	// Pins maps a session name to its pinned logs, in pin order
	Pins map[string][]string `toml:"pins"`
}

// DefaultPath returns where the preference file lives.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "loupe", "prefs.toml")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "loupe", "prefs.toml")
}

// Load reads prefs from path on top of seed values for the display
// toggles. A missing file keeps the seeds; keys absent from the file do
// too.
func Load(path string, seed Prefs) (*Prefs, error) {
	p := seed
	if p.Pins == nil {
		p.Pins = make(map[string][]string)
	}

	data, err := os.ReadFile(filepath.Clean(path)) //nolint:gosec // prefs path from known locations
	if err != nil {
		if os.IsNotExist(err) {
			return &p, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if p.Pins == nil {
		p.Pins = make(map[string][]string)
	}

	return &p, nil
}

// Save writes prefs to path, creating the directory if needed.
func (p *Prefs) Save(path string) error {
	data, err := toml.Marshal(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Clean(path), data, 0644) //nolint:gosec // prefs are not sensitive
}

// PinsFor returns the saved pin order for a session.
func (p *Prefs) PinsFor(session string) []string {
	return p.Pins[pinKey(session)]
}

// SetPins records a session's pin order, dropping the entry when empty.
func (p *Prefs) SetPins(session string, names []string) {
	key := pinKey(session)
	if len(names) == 0 {
		delete(p.Pins, key)
		return
	}
	p.Pins[key] = append([]string(nil), names...)
}

// pinKey maps the root session's empty name to a storable key.
func pinKey(session string) string {
	if session == "" {
		return rootKey
	}
	return session
}
