// Package requiresingleinstance checks that a script declares
// "#SingleInstance Force" so a second launch replaces the running copy.
package requiresingleinstance

import (
	"fmt"
	"iter"
	"regexp"
	"strings"

	"github.com/jeduden/ahklint/internal/lint"
	"github.com/jeduden/ahklint/internal/rule"
)

const defaultMode = "Force"

var directive = regexp.MustCompile(`(?i)^#SingleInstance\b`)

var defaultModePattern = compileMode(defaultMode)

func init() {
	rule.Register(&Rule{})
}

// Rule checks the first #SingleInstance directive in the file.
type Rule struct {
	mode        string
	modePattern *regexp.Regexp
}

// Name implements rule.Rule.
func (r *Rule) Name() string { return "require_single_instance" }

// Description implements rule.Describer.
func (r *Rule) Description() string {
	return "Script must declare #SingleInstance with the expected mode (Force by default)."
}

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) iter.Seq[lint.Diagnostic] {
	return func(yield func(lint.Diagnostic) bool) {
		for _, line := range f.Lines {
			stripped := strings.TrimSpace(line)
			if !directive.MatchString(stripped) {
				continue
			}
			if !r.pattern().MatchString(stripped) {
				yield(lint.Diagnostic{
					File:    f.Path,
					Rule:    r.Name(),
					Message: fmt.Sprintf("#SingleInstance should use '%s'", r.modeName()),
				})
			}
			return
		}
		yield(lint.Diagnostic{
			File:    f.Path,
			Rule:    r.Name(),
			Message: "missing #SingleInstance directive",
		})
	}
}

func (r *Rule) pattern() *regexp.Regexp {
	if r.modePattern != nil {
		return r.modePattern
	}
	return defaultModePattern
}

func (r *Rule) modeName() string {
	if r.mode == "" {
		return defaultMode
	}
	return r.mode
}

func compileMode(mode string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^#SingleInstance\s+` + regexp.QuoteMeta(mode) + `\b`)
}

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	mode := defaultMode
	for k, v := range settings {
		switch k {
		case "mode":
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("require_single_instance: mode must be a string, got %T", v)
			}
			switch strings.ToLower(s) {
			case "force", "ignore", "prompt", "off":
				mode = s
			default:
				return fmt.Errorf("require_single_instance: mode must be Force, Ignore, Prompt or Off, got %q", s)
			}
		default:
			return fmt.Errorf("require_single_instance: unknown setting %q", k)
		}
	}
	r.mode = mode
	r.modePattern = compileMode(mode)
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{"mode": defaultMode}
}

var (
	_ rule.Configurable = (*Rule)(nil)
	_ rule.Describer    = (*Rule)(nil)
)
