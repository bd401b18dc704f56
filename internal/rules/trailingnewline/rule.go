// Package trailingnewline checks that a non-empty script ends with a newline.
package trailingnewline

import (
	"iter"

	"github.com/jeduden/ahklint/internal/lint"
	"github.com/jeduden/ahklint/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

// Rule reports non-empty files that do not end in a line terminator.
// An empty file has no lines and is never reported.
type Rule struct{}

// Name implements rule.Rule.
func (r *Rule) Name() string { return "trailing_newline" }

// Description implements rule.Describer.
func (r *Rule) Description() string { return "Non-empty script must end with a newline." }

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) iter.Seq[lint.Diagnostic] {
	return func(yield func(lint.Diagnostic) bool) {
		if f.Text == "" || f.HasTrailingNewline() {
			return
		}
		yield(lint.Diagnostic{
			File:    f.Path,
			Rule:    r.Name(),
			Message: "missing trailing newline",
		})
	}
}
