package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	// Theme is the color theme to use (mocha, macchiato, frappe, latte)
	Theme string `yaml:"theme"`

	// LogDir is the directory tree to watch; empty means the current directory
	LogDir string `yaml:"log_dir"`

	// LogPatterns is a comma-separated list of filename globs (* and ?)
	// deciding which files count as logs
	LogPatterns string `yaml:"log_patterns"`

	// DebounceMs is the quiet window in milliseconds before file change
	// events are delivered as a batch
	DebounceMs int `yaml:"debounce_ms"`

	// ShowLineNumbers renders a line number gutter in the content pane
	ShowLineNumbers bool `yaml:"show_line_numbers"`

	// WrapLines soft-wraps long lines instead of truncating them
	WrapLines bool `yaml:"wrap_lines"`

	// FollowTail keeps the viewport pinned to the bottom as content grows
	FollowTail bool `yaml:"follow_tail"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Theme:           "mocha",
		LogPatterns:     "*.log, *.txt",
		DebounceMs:      150,
		ShowLineNumbers: true,
		WrapLines:       false,
		FollowTail:      true,
	}
}

// Load reads the config from a YAML file, falling back to defaults
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath) //nolint:gosec // config path from known locations
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDefaultPath attempts to load config from standard locations
func LoadFromDefaultPath() (*Config, error) {
	// Check in order: current dir, ~/.config/loupe/, XDG_CONFIG_HOME
	paths := []string{
		"config.yaml",
		filepath.Join(os.Getenv("HOME"), ".config", "loupe", "config.yaml"),
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "loupe", "config.yaml"))
	}

	for _, path := range paths {
		cleanPath := filepath.Clean(path)
		if _, err := os.Stat(cleanPath); err == nil { //nolint:gosec // config path from known locations
			return Load(cleanPath)
		}
	}

	return DefaultConfig(), nil
}

// Debounce returns the change-batching quiet window as a duration
func (c *Config) Debounce() time.Duration {
	if c.DebounceMs <= 0 {
		return 150 * time.Millisecond
	}
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// Patterns returns the individual filename globs from LogPatterns
func (c *Config) Patterns() []string {
	var out []string
	for _, p := range strings.Split(c.LogPatterns, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// MatchesLog returns true if name matches any configured glob. An empty
// pattern list matches nothing.
func (c *Config) MatchesLog(name string) bool {
	for _, pat := range c.Patterns() {
		if matchGlob(strings.ToLower(pat), strings.ToLower(name)) {
			return true
		}
	}
	return false
}

// matchGlob checks a whole filename against one glob. * matches any run
// of characters including none, ? matches exactly one.
func matchGlob(pattern, name string) bool {
	p, n := 0, 0
	star, mark := -1, 0

	for n < len(name) {
		switch {
		case p < len(pattern) && (pattern[p] == '?' || pattern[p] == name[n]):
			p++
			n++
		case p < len(pattern) && pattern[p] == '*':
			// Remember the star so a failed tail can retry one
			// character further along.
			star, mark = p, n
			p++
		case star >= 0:
			p = star + 1
			mark++
			n = mark
		default:
			return false
		}
	}

	for p < len(pattern) && pattern[p] == '*' {
		p++
	}
	return p == len(pattern)
}

// global config instance
var globalConfig *Config

// Global returns the global config instance, loading it if necessary
func Global() *Config {
	if globalConfig == nil {
		cfg, err := LoadFromDefaultPath()
		if err != nil {
			cfg = DefaultConfig()
		}
		globalConfig = cfg
	}
	return globalConfig
}

// SetGlobal sets the global config instance (useful for testing)
func SetGlobal(cfg *Config) {
	globalConfig = cfg
}
