// Package logview owns the view-side log state: per-log filters, content
// snapshots, and the registry of known logs for the current session.
package logview

// Key identifies a log across sessions. The root session (files directly
// in the base directory) is the empty string.
type Key struct {
	Session string
	Log     string
}

// State is the single owned state struct behind the view: the current
// session's registry (All/Pinned/Active) plus per-log filters and content
// snapshots keyed by session and log name. Everything here runs on the
// view's update loop, so there is no locking.
type State struct {
	Session string
	All     []string // authoritative existence list, sorted by name
	Pinned  []string // user order, subset of All
	Active  string   // empty or a member of All

	filters  map[Key]*Filter
	contents map[Key]ContentState
}

// NewState returns an empty State ready for SetSession/SetLogs.
func NewState() *State {
	return &State{
		filters:  make(map[Key]*Filter),
		contents: make(map[Key]ContentState),
	}
}

// SetSession switches to a different session. The registry resets and
// repopulates from the next SetLogs; filters and content cached for other
// sessions stay keyed and are reconciled when their session is revisited.
func (s *State) SetSession(session string) {
	s.Session = session
	s.All = nil
	s.Pinned = nil
	s.Active = ""
}

// Reset drops everything including cross-session caches. Used when the
// watched tree disappears out from under us.
func (s *State) Reset() {
	s.Session = ""
	s.All = nil
	s.Pinned = nil
	s.Active = ""
	s.filters = make(map[Key]*Filter)
	s.contents = make(map[Key]ContentState)
}

// FilterFor returns the filter for a log in the current session, creating
// it with defaults (all severities enabled, no query) on first use.
func (s *State) FilterFor(name string) *Filter {
	key := Key{Session: s.Session, Log: name}
	f, ok := s.filters[key]
	if !ok {
		f = NewFilter()
		s.filters[key] = f
	}
	return f
}

// HasFilter reports whether a filter already exists for name without
// creating one.
func (s *State) HasFilter(name string) bool {
	_, ok := s.filters[Key{Session: s.Session, Log: name}]
	return ok
}

// Contains reports whether name is currently registered.
func (s *State) Contains(name string) bool {
	for _, n := range s.All {
		if n == name {
			return true
		}
	}
	return false
}
