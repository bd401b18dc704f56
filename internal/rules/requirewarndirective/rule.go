// Package requirewarndirective checks that a script enables #Warn.
package requirewarndirective

import (
	"iter"
	"regexp"
	"strings"

	"github.com/jeduden/ahklint/internal/lint"
	"github.com/jeduden/ahklint/internal/rule"
)

var directive = regexp.MustCompile(`(?i)^#Warn\b`)

func init() {
	rule.Register(&Rule{})
}

// Rule reports scripts without any #Warn directive.
type Rule struct{}

// Name implements rule.Rule.
func (r *Rule) Name() string { return "require_warn_directive" }

// Description implements rule.Describer.
func (r *Rule) Description() string { return "Script must enable warnings with #Warn." }

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) iter.Seq[lint.Diagnostic] {
	return func(yield func(lint.Diagnostic) bool) {
		for _, line := range f.Lines {
			if directive.MatchString(strings.TrimSpace(line)) {
				return
			}
		}
		yield(lint.Diagnostic{
			File:    f.Path,
			Rule:    r.Name(),
			Message: "missing #Warn directive",
		})
	}
}
