package filter

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Matcher holds a set of compiled glob patterns with find -path semantics:
// unlike filepath.Match, "*" and "?" cross directory separators.
type Matcher struct {
	patterns []*regexp.Regexp
}

// NewMatcher compiles the given patterns into a reusable matcher.
func NewMatcher(patterns []string) (*Matcher, error) {
	matcher := &Matcher{patterns: make([]*regexp.Regexp, len(patterns))}

	for idx, pattern := range patterns {
		re, err := compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}

		matcher.patterns[idx] = re
	}

	return matcher, nil
}

// MatchAny reports whether path matches any of the compiled patterns.
func (m *Matcher) MatchAny(path string) bool {
	for _, re := range m.patterns {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

var cache sync.Map //nolint:gochecknoglobals // compiled patterns are reused across commands

// compile converts a glob pattern to a cached, compiled regexp.
func compile(pattern string) (*regexp.Regexp, error) {
	if v, ok := cache.Load(pattern); ok {
		return v.(*regexp.Regexp), nil //nolint:errcheck,forcetypeassert // type is guaranteed by cache.Store below
	}

	expr, err := globToRegexp(pattern)
	if err != nil {
		return nil, err
	}

	compiled, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}

	cache.Store(pattern, compiled)

	return compiled, nil
}

// globToRegexp converts a glob pattern to an anchored regex string.
// "*" becomes ".*", "?" becomes ".", "[...]" passes through (with "!"
// negation mapped to "^"), and "\" escapes the next character.
func globToRegexp(pattern string) (string, error) {
	var buf strings.Builder

	buf.WriteString("^")

	for pos := 0; pos < len(pattern); {
		switch pattern[pos] {
		case '*':
			buf.WriteString(".*")
			pos++

		case '?':
			buf.WriteString(".")
			pos++

		case '[':
			end, err := closingBracket(pattern, pos)
			if err != nil {
				return "", err
			}

			class := pattern[pos : end+1]
			if len(class) > 2 && class[1] == '!' {
				class = "[^" + class[2:]
			}

			buf.WriteString(class)
			pos = end + 1

		case '\\':
			if pos+1 >= len(pattern) {
				return "", fmt.Errorf("trailing backslash in pattern %q", pattern)
			}

			buf.WriteString(regexp.QuoteMeta(string(pattern[pos+1])))
			pos += 2

		default:
			buf.WriteString(regexp.QuoteMeta(string(pattern[pos])))
			pos++
		}
	}

	buf.WriteString("$")

	return buf.String(), nil
}

// closingBracket finds the index of the "]" ending a character class that
// starts at pos. A "!" or "]" directly after the opening bracket is literal.
func closingBracket(pattern string, pos int) (int, error) {
	idx := pos + 1

	if idx < len(pattern) && pattern[idx] == '!' {
		idx++
	}

	if idx < len(pattern) && pattern[idx] == ']' {
		idx++
	}

	for ; idx < len(pattern); idx++ {
		if pattern[idx] == ']' {
			return idx, nil
		}
	}

	return 0, fmt.Errorf("unclosed character class in pattern %q", pattern)
}
