package rules

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// Pattern is a compiled, unanchored regular expression
type Pattern struct {
	expr string
	re   *regexp2.Regexp
}

// CompilePattern compiles expr. Matching is a search: the pattern may match
// anywhere in the input unless it carries its own anchors.
func CompilePattern(expr string, ignoreCase bool) (*Pattern, error) {
	opts := regexp2.None
	if ignoreCase {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", expr, err)
	}
	return &Pattern{expr: expr, re: re}, nil
}

// MustCompilePattern is like CompilePattern but panics on error
func MustCompilePattern(expr string, ignoreCase bool) *Pattern {
	p, err := CompilePattern(expr, ignoreCase)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether the pattern matches anywhere in s
func (p *Pattern) Match(s string) bool {
	// regexp2 only errors on match timeout, which is never configured here
	ok, err := p.re.MatchString(s)
	return err == nil && ok
}

func (p *Pattern) String() string {
	return p.expr
}

func compileAll(exprs []string, ignoreCase bool) ([]*Pattern, error) {
	patterns := make([]*Pattern, 0, len(exprs))
	for _, expr := range exprs {
		p, err := CompilePattern(expr, ignoreCase)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}
