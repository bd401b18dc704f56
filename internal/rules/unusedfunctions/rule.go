// Package unusedfunctions warns about functions that are defined but never
// called within the same script.
package unusedfunctions

import (
	"fmt"
	"iter"
	"regexp"
	"strings"

	"github.com/jeduden/ahklint/internal/lint"
	"github.com/jeduden/ahklint/internal/rule"
)

// funcDef matches a one-line function header such as `MyFunc(param) {`.
var funcDef = regexp.MustCompile(`^\s*([A-Za-z_]\w*)\s*\([^)]*\)\s*\{`)

// Control-flow statements share the header shape but are not definitions.
var keywords = map[string]bool{
	"if":     true,
	"while":  true,
	"for":    true,
	"loop":   true,
	"switch": true,
	"catch":  true,
	"until":  true,
	"return": true,
	"throw":  true,
}

func init() {
	rule.Register(&Rule{})
}

// Rule reports functions whose name is followed by "(" only once in the
// comment-stripped source, i.e. at their own definition.
//
// Lines such as `if (x) {` or `while (n > 0) {` have the same shape as a
// function header; headers named after a control-flow keyword are not
// treated as definitions.
type Rule struct{}

// Name implements rule.Rule.
func (r *Rule) Name() string { return "unused_functions" }

// Description implements rule.Describer.
func (r *Rule) Description() string {
	return "Functions defined in a script should be called somewhere in the same script. " +
		"Control-flow headers such as `if (x) {` are not definitions."
}

type definition struct {
	name string
	line int
}

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) iter.Seq[lint.Diagnostic] {
	return func(yield func(lint.Diagnostic) bool) {
		var defined []definition
		for i, line := range f.Lines {
			m := funcDef.FindStringSubmatch(line)
			if m == nil || keywords[strings.ToLower(m[1])] {
				continue
			}
			defined = append(defined, definition{name: m[1], line: i + 1})
		}
		if len(defined) == 0 {
			return
		}

		body := stripComments(f.Lines)
		for _, def := range defined {
			call := regexp.MustCompile(`\b` + regexp.QuoteMeta(def.name) + `\s*\(`)
			if len(call.FindAllStringIndex(body, 2)) > 1 {
				continue
			}
			d := lint.Diagnostic{
				File:    f.Path,
				Line:    def.line,
				Rule:    r.Name(),
				Message: fmt.Sprintf("function '%s' defined but not used", def.name),
			}
			if !yield(d) {
				return
			}
		}
	}
}

// stripComments drops everything from the first ';' on each line.
func stripComments(lines []string) string {
	cleaned := make([]string, len(lines))
	for i, line := range lines {
		code, _, _ := strings.Cut(line, ";")
		cleaned[i] = code
	}
	return strings.Join(cleaned, "\n")
}
