package logview

import (
	"strings"

	"loupe/internal/severity"
)

// Filter holds one log's view filter: a case-insensitive substring query
// and the set of enabled severities.
type Filter struct {
	Query   string
	Enabled map[severity.Tag]bool
}

// NewFilter returns a filter with every severity enabled and no query.
func NewFilter() *Filter {
	enabled := make(map[severity.Tag]bool, len(severity.All))
	for _, tag := range severity.All {
		enabled[tag] = true
	}
	return &Filter{Enabled: enabled}
}

// Toggle flips one severity in the enabled set.
func (f *Filter) Toggle(tag severity.Tag) {
	f.Enabled[tag] = !f.Enabled[tag]
}

// AllEnabled reports whether no severity is currently excluded.
func (f *Filter) AllEnabled() bool {
	for _, tag := range severity.All {
		if !f.Enabled[tag] {
			return false
		}
	}
	return true
}

// Line is one classified, filter-surviving log line.
type Line struct {
	Number   int // 1-based position in the full document
	Text     string
	Severity severity.Tag
}

// Result is the outcome of applying a filter to a run of lines. Total
// counts the input so an empty document and a fully filtered-out one stay
// distinguishable.
type Result struct {
	Lines []Line
	Total int
}

// Empty reports that there was no input at all.
func (r Result) Empty() bool { return r.Total == 0 }

// NoMatches reports that input existed but the filter excluded all of it.
func (r Result) NoMatches() bool { return r.Total > 0 && len(r.Lines) == 0 }

// Apply classifies and filters lines, numbering them from start. carry
// seeds the severity inherited by leading continuation lines; pass
// severity.None for a full render. A line without its own token inherits,
// and is reported with, the last seen severity, so stack traces and other
// multi-line messages filter and color as a unit. Lines that never see a
// severity are only subject to the query. Apply does not mutate the
// filter.
func (f *Filter) Apply(lines []string, start int, carry severity.Tag) Result {
	res := Result{Total: len(lines)}
	query := strings.ToLower(f.Query)
	last := carry

	for i, text := range lines {
		sev := severity.Classify(text)
		if sev == severity.None {
			sev = last
		} else {
			last = sev
		}
		if sev != severity.None && !f.Enabled[sev] {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(text), query) {
			continue
		}
		res.Lines = append(res.Lines, Line{Number: start + i, Text: text, Severity: sev})
	}

	return res
}
