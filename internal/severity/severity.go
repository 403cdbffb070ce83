// Package severity classifies log lines into coarse severity tags.
package severity

import (
	"regexp"
	"strings"
)

// Tag is the severity classification of a log line
type Tag int

const (
	None Tag = iota // No recognizable severity token
	Error
	Warn
	Info
	Debug
	Trace
	Verbose
)

// All lists the filterable tags in display order (None is not filterable)
var All = []Tag{Error, Warn, Info, Debug, Trace, Verbose}

// String returns the lowercase canonical name of the tag
func (t Tag) String() string {
	switch t {
	case Error:
		return "error"
	case Warn:
		return "warn"
	case Info:
		return "info"
	case Debug:
		return "debug"
	case Trace:
		return "trace"
	case Verbose:
		return "verbose"
	default:
		return "none"
	}
}

// aliases maps every recognized level keyword to its tag
var aliases = map[string]Tag{
	"error":     Error,
	"err":       Error,
	"fatal":     Error,
	"critical":  Error,
	"exception": Error,
	"warn":      Warn,
	"warning":   Warn,
	"info":      Info,
	"debug":     Debug,
	"dbg":       Debug,
	"trace":     Trace,
	"trc":       Trace,
	"verbose":   Verbose,
	"verb":      Verbose,
	"vrb":       Verbose,
}

const keywords = `error|err|fatal|critical|exception|warning|warn|info|debug|dbg|trace|trc|verbose|verb|vrb`

// A keyword only classifies when delimited, so prose mentioning a level
// name ("ERROR occurred") stays unclassified.
var (
	pipeToken    = regexp.MustCompile(`(?i)\|\s*(` + keywords + `)\s*\|`)
	bracketToken = regexp.MustCompile(`(?i)\[\s*(` + keywords + `)\s*\]`)
)

// Classify returns the severity tag of a single log line.
// Pipe-delimited tokens take priority over bracketed ones; within each
// shape the leftmost token wins. Lines with no delimited keyword, or an
// unclosed delimiter, classify as None.
func Classify(line string) Tag {
	if m := pipeToken.FindStringSubmatch(line); m != nil {
		return aliases[strings.ToLower(m[1])]
	}
	if m := bracketToken.FindStringSubmatch(line); m != nil {
		return aliases[strings.ToLower(m[1])]
	}
	return None
}
