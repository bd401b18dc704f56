// Package trailingwhitespace flags lines ending in whitespace.
package trailingwhitespace

import (
	"iter"
	"strings"
	"unicode"

	"github.com/jeduden/ahklint/internal/lint"
	"github.com/jeduden/ahklint/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

// Rule checks that no line ends with spaces, tabs or other Unicode space.
type Rule struct{}

// Name implements rule.Rule.
func (r *Rule) Name() string { return "trailing_whitespace" }

// Description implements rule.Describer.
func (r *Rule) Description() string { return "Lines must not end with whitespace." }

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) iter.Seq[lint.Diagnostic] {
	return func(yield func(lint.Diagnostic) bool) {
		for i, line := range f.Lines {
			if strings.TrimRightFunc(line, unicode.IsSpace) == line {
				continue
			}
			d := lint.Diagnostic{
				File:    f.Path,
				Line:    i + 1,
				Rule:    r.Name(),
				Message: "trailing whitespace",
			}
			if !yield(d) {
				return
			}
		}
	}
}
