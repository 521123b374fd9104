// Package matcher selects line ids with glob and regex patterns, as given to
// the --lines flag. A pattern without metacharacters matches one id exactly.
package matcher

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// PatternType represents the type of pattern matching to use.
type PatternType int

const (
	// Glob uses shell-style glob patterns (*, ?, []).
	Glob PatternType = iota
	// Regex uses regular expressions, anchored to the whole id.
	Regex
	// Auto detects the pattern type.
	Auto
)

// String returns a string representation of the PatternType.
func (pt PatternType) String() string {
	switch pt {
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	case Auto:
		return "auto"
	default:
		return "unknown"
	}
}

// Pattern is one compiled line-id pattern.
type Pattern struct {
	raw      string
	kind     PatternType
	compiled *regexp.Regexp
}

// Compile prepares a single pattern. Matching is case-insensitive because
// line ids are hand-typed on the command line.
func Compile(kind PatternType, raw string) (*Pattern, error) {
	if kind == Auto {
		kind = detectPatternType(raw)
	}

	p := &Pattern{raw: raw, kind: kind}
	switch kind {
	case Glob:
		if _, err := filepath.Match(strings.ToLower(raw), ""); err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", raw, err)
		}
	case Regex:
		expr := strings.TrimSuffix(strings.TrimPrefix(raw, "^"), "$")
		compiled, err := regexp.Compile("(?i)^(?:" + expr + ")$")
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", raw, err)
		}
		p.compiled = compiled
	default:
		return nil, fmt.Errorf("unsupported pattern type: %v", kind)
	}
	return p, nil
}

// Match reports whether id matches the pattern.
func (p *Pattern) Match(id string) bool {
	if p.kind == Regex {
		return p.compiled.MatchString(id)
	}
	matched, _ := filepath.Match(strings.ToLower(p.raw), strings.ToLower(id))
	return matched
}

// String returns the pattern as written.
func (p *Pattern) String() string {
	return p.raw
}

// Type returns the pattern type in use.
func (p *Pattern) Type() PatternType {
	return p.kind
}

// Filter matches an id when any of its patterns does. An empty filter
// matches everything.
type Filter struct {
	patterns []*Pattern
}

// NewFilter compiles patterns. Each entry may itself be a comma-separated
// list; blank entries are ignored.
func NewFilter(patterns ...string) (*Filter, error) {
	f := &Filter{}
	for _, entry := range patterns {
		for _, raw := range strings.Split(entry, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			p, err := Compile(Auto, raw)
			if err != nil {
				return nil, err
			}
			f.patterns = append(f.patterns, p)
		}
	}
	return f, nil
}

// Empty reports whether the filter has no patterns.
func (f *Filter) Empty() bool {
	return f == nil || len(f.patterns) == 0
}

// Match reports whether id is selected.
func (f *Filter) Match(id string) bool {
	if f.Empty() {
		return true
	}
	for _, p := range f.patterns {
		if p.Match(id) {
			return true
		}
	}
	return false
}

// Select returns the selected ids, keeping their order.
func (f *Filter) Select(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if f.Match(id) {
			out = append(out, id)
		}
	}
	return out
}

// Unused returns the patterns that match none of ids, which usually means
// a typo on the command line.
func (f *Filter) Unused(ids []string) []string {
	if f.Empty() {
		return nil
	}
	var out []string
	for _, p := range f.patterns {
		hit := false
		for _, id := range ids {
			if p.Match(id) {
				hit = true
				break
			}
		}
		if !hit {
			out = append(out, p.raw)
		}
	}
	return out
}

// Patterns returns the patterns as written.
func (f *Filter) Patterns() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.patterns))
	for i, p := range f.patterns {
		out[i] = p.raw
	}
	return out
}

// detectPatternType attempts to detect if a pattern is glob or regex.
func detectPatternType(pattern string) PatternType {
	regexIndicators := []string{
		"^", "$", "\\d", "\\w", "\\s", "(?", "{", "}", "+", "|", "(", ")", ".*",
	}
	for _, indicator := range regexIndicators {
		if strings.Contains(pattern, indicator) {
			return Regex
		}
	}
	return Glob
}
