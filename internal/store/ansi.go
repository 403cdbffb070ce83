package store

import (
	"regexp"
	"strings"
)

// csiSeq matches a complete ANSI CSI sequence: ESC [ then parameter,
// intermediate, and final bytes.
var csiSeq = regexp.MustCompile(`\x1b\[[0-9:;<=>?]*[ -/]*[@-~]`)

// StripANSI removes CSI escape sequences (colors, cursor movement) from s.
func StripANSI(s string) string {
	if !strings.Contains(s, "\x1b") {
		return s
	}
	return csiSeq.ReplaceAllString(s, "")
}

// Sanitize prepares raw file content for display: escape sequences and
// carriage returns are removed so only plain text and newlines remain.
// Sanitizing preserves prefixes across appended writes, which keeps
// append detection working on sanitized snapshots.
func Sanitize(s string) string {
	s = StripANSI(s)
	if strings.Contains(s, "\r") {
		s = strings.ReplaceAll(s, "\r", "")
	}
	return s
}
