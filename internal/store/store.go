// Package store reads the watched log tree: one level of session
// directories with log files inside, plus loose logs at the root.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"loupe/internal/config"
)

// RootSession names the pseudo-session for logs sitting directly in the
// root directory.
const RootSession = ""

// Session is one subdirectory of the root.
type Session struct {
	Name    string
	ModTime time.Time
}

// Store lists and reads logs under a root directory.
type Store struct {
	Root string
}

// New returns a store over root.
func New(root string) *Store {
	return &Store{Root: root}
}

// Dir returns the directory a session's logs live in.
func (s *Store) Dir(session string) string {
	if session == RootSession {
		return s.Root
	}
	return filepath.Join(s.Root, session)
}

// ListSessions returns the root's subdirectories sorted newest-first by
// modification time, and whether any loose logs live at the root itself.
func (s *Store) ListSessions() ([]Session, bool, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", s.Root, err)
	}

	cfg := config.Global()
	var sessions []Session
	rootLogs := false

	for _, entry := range entries {
		if entry.IsDir() {
			info, err := entry.Info()
			if err != nil {
				continue
			}
			sessions = append(sessions, Session{Name: entry.Name(), ModTime: info.ModTime()})
			continue
		}
		if cfg.MatchesLog(entry.Name()) {
			rootLogs = true
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].ModTime.Equal(sessions[j].ModTime) {
			return sessions[i].Name < sessions[j].Name
		}
		return sessions[i].ModTime.After(sessions[j].ModTime)
	})

	return sessions, rootLogs, nil
}

// ListLogs returns the filenames in a session that match the configured
// patterns, sorted by name.
func (s *Store) ListLogs(session string) ([]string, error) {
	dir := s.Dir(session)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	cfg := config.Global()
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !cfg.MatchesLog(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	return names, nil
}

// ReadLog returns a log's sanitized content. Missing or unreadable files
// report ok=false; the next listing pass catches actual deletions.
func (s *Store) ReadLog(session, name string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(s.Dir(session), name)) //nolint:gosec // paths come from our own directory listing
	if err != nil {
		return "", false
	}
	return Sanitize(string(data)), true
}
