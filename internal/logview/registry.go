package logview

// SetLogs replaces the authoritative log list for the current session.
// Logs that disappeared lose their filter and content state and leave the
// pinned list; the active log is reassigned to the first entry when it
// vanished or was never set. The returned slice holds the names not
// previously registered, so the caller fetches content only for genuinely
// new logs.
func (s *State) SetLogs(names []string) (added []string) {
	now := make(map[string]bool, len(names))
	for _, n := range names {
		now[n] = true
	}

	for _, n := range names {
		if !s.Contains(n) {
			added = append(added, n)
		}
	}

	for _, n := range s.All {
		if !now[n] {
			delete(s.filters, Key{Session: s.Session, Log: n})
			delete(s.contents, Key{Session: s.Session, Log: n})
		}
	}

	pinned := s.Pinned[:0]
	for _, n := range s.Pinned {
		if now[n] {
			pinned = append(pinned, n)
		}
	}
	s.Pinned = pinned

	s.All = append([]string(nil), names...)

	if s.Active == "" || !now[s.Active] {
		s.Active = ""
		if len(s.All) > 0 {
			s.Active = s.All[0]
		}
	}

	return added
}

// TogglePin appends name to the pinned list or removes it, preserving the
// relative order of the others. Unregistered names are ignored.
func (s *State) TogglePin(name string) {
	if !s.Contains(name) {
		return
	}
	for i, n := range s.Pinned {
		if n == name {
			s.Pinned = append(s.Pinned[:i], s.Pinned[i+1:]...)
			return
		}
	}
	s.Pinned = append(s.Pinned, name)
}

// IsPinned reports whether name is currently pinned.
func (s *State) IsPinned(name string) bool {
	for _, n := range s.Pinned {
		if n == name {
			return true
		}
	}
	return false
}

// RestorePins replaces the pinned list with names, dropping duplicates
// and anything no longer registered. Used when reopening a session whose
// pins were persisted.
func (s *State) RestorePins(names []string) {
	s.Pinned = nil
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] || !s.Contains(n) {
			continue
		}
		seen[n] = true
		s.Pinned = append(s.Pinned, n)
	}
}

// VisualOrder returns pinned logs first, in the order they were pinned,
// then the rest of the registry in its sorted order. The sidebar and
// next/previous navigation both follow this order.
func (s *State) VisualOrder() []string {
	pinned := make(map[string]bool, len(s.Pinned))
	order := make([]string, 0, len(s.All))
	for _, n := range s.Pinned {
		if s.Contains(n) {
			pinned[n] = true
			order = append(order, n)
		}
	}
	for _, n := range s.All {
		if !pinned[n] {
			order = append(order, n)
		}
	}
	return order
}

// SetActive selects name if it is registered.
func (s *State) SetActive(name string) bool {
	if !s.Contains(name) {
		return false
	}
	s.Active = name
	return true
}

// NextLog advances the active log through the visual order, wrapping.
func (s *State) NextLog() string { return s.step(1) }

// PrevLog moves the active log backwards through the visual order,
// wrapping.
func (s *State) PrevLog() string { return s.step(-1) }

func (s *State) step(delta int) string {
	order := s.VisualOrder()
	if len(order) == 0 {
		return s.Active
	}
	idx := 0
	for i, n := range order {
		if n == s.Active {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(order)) % len(order)
	s.Active = order[idx]
	return s.Active
}
