package logview

import "strings"

// ContentState is the last content seen for a log and its line count.
// Line count uses a raw newline split, so content ending in a newline
// carries a trailing empty line.
type ContentState struct {
	Raw       string
	LineCount int
}

// Instruction tells the view how to bring a log's rendering up to date
// after new content arrives.
type Instruction struct {
	Full      bool     // rebuild the rendering from scratch
	Unchanged bool     // content identical, nothing to do
	Lines     []string // lines to render
	Start     int      // 1-based line number of Lines[0]
}

// Sync records newContent for a log in the current session and decides
// between a full render and an incremental append. Content is appendable
// when the previous content is a strict prefix and the line count grew;
// the append region then begins at the old final line, which may have
// been a partial write and is re-delivered now that it is complete.
// Truncated, rewritten, or first-seen content falls back to a full
// render. The snapshot updates for every log, visible or not, so a later
// switch to a background log appends instead of re-rendering.
func (s *State) Sync(name, newContent string) Instruction {
	key := Key{Session: s.Session, Log: name}
	prev := s.contents[key]

	lines := strings.Split(newContent, "\n")
	s.contents[key] = ContentState{Raw: newContent, LineCount: len(lines)}

	if prev.Raw != "" && newContent == prev.Raw {
		return Instruction{Unchanged: true}
	}

	isAppend := prev.Raw != "" &&
		strings.HasPrefix(newContent, prev.Raw) &&
		len(lines) > prev.LineCount

	if isAppend {
		return Instruction{Lines: lines[prev.LineCount-1:], Start: prev.LineCount}
	}

	return Instruction{Full: true, Lines: lines, Start: 1}
}

// Content returns the cached raw content for a log in the current
// session.
func (s *State) Content(name string) (string, bool) {
	cs, ok := s.contents[Key{Session: s.Session, Log: name}]
	return cs.Raw, ok
}
