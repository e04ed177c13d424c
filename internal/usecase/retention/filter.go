package retention

import (
	"fmt"
	"regexp"

	"github.com/bnema/registry-cli/internal/domain"
)

// TagFilter keeps names matched by at least one pattern.
// A filter without patterns keeps everything.
type TagFilter struct {
	patterns []*regexp.Regexp
}

// NewTagFilter compiles patterns up front so a bad expression is reported
// before any registry call.
func NewTagFilter(patterns []string) (*TagFilter, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", domain.ErrInvalidPattern, p, err)
		}
		compiled = append(compiled, re)
	}
	return &TagFilter{patterns: compiled}, nil
}

// Filter returns the names matched anywhere by any pattern, preserving order.
func (f *TagFilter) Filter(names []string) []string {
	if f == nil || len(f.patterns) == 0 {
		return names
	}

	matched := make([]string, 0, len(names))
	for _, name := range names {
		if f.matches(name) {
			matched = append(matched, name)
		}
	}
	return matched
}

func (f *TagFilter) matches(name string) bool {
	for _, re := range f.patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// Filter applies patterns to names in one call.
func Filter(names, patterns []string) ([]string, error) {
	f, err := NewTagFilter(patterns)
	if err != nil {
		return nil, err
	}
	return f.Filter(names), nil
}
