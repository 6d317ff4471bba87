package document

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind classifies a section line.
type Kind int

const (
	KindHeading Kind = iota
	KindRule
	KindPattern
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindRule:
		return "rule"
	case KindPattern:
		return "pattern"
	default:
		return "unknown"
	}
}

// PatternPrefix marks a selector that matches lines by regular expression.
const PatternPrefix = "re:"

// Selector matches a class of section lines. Supported forms are h1 to h6,
// hr and re:<regexp>.
type Selector struct {
	raw     string
	kind    Kind
	level   int
	pattern *regexp.Regexp
}

// ParseSelector validates and compiles a selector string.
func ParseSelector(raw string) (Selector, error) {
	s := strings.TrimSpace(raw)
	switch {
	case s == "hr":
		return Selector{raw: s, kind: KindRule}, nil
	case len(s) == 2 && s[0] == 'h':
		level, err := strconv.Atoi(s[1:])
		if err != nil || level < 1 || level > 6 {
			return Selector{}, fmt.Errorf("selector %q: heading level must be h1 to h6", raw)
		}
		return Selector{raw: s, kind: KindHeading, level: level}, nil
	case strings.HasPrefix(s, PatternPrefix):
		expr := strings.TrimPrefix(s, PatternPrefix)
		if expr == "" {
			return Selector{}, fmt.Errorf("selector %q: empty pattern", raw)
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return Selector{}, fmt.Errorf("selector %q: %w", raw, err)
		}
		return Selector{raw: s, kind: KindPattern, pattern: re}, nil
	default:
		return Selector{}, fmt.Errorf("unknown selector %q", raw)
	}
}

func (s Selector) String() string { return s.raw }

// matches reports whether the structural section sec belongs to s.
func (s Selector) matches(sec Section) bool {
	switch s.kind {
	case KindHeading:
		return sec.Kind == KindHeading && sec.Level == s.level
	case KindRule:
		return sec.Kind == KindRule
	default:
		return false
	}
}
