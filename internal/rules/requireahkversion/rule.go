// Package requireahkversion checks that a script opens with a
// "#Requires AutoHotkey v2" directive.
package requireahkversion

import (
	"fmt"
	"iter"
	"regexp"
	"strings"

	"github.com/jeduden/ahklint/internal/lint"
	"github.com/jeduden/ahklint/internal/rule"
)

const defaultVersion = "v2"

func init() {
	rule.Register(&Rule{})
}

// Rule checks the #Requires directive on the first line.
type Rule struct {
	// pattern is nil until settings are applied; defaultPattern is used then.
	pattern *regexp.Regexp
}

var defaultPattern = compile(defaultVersion)

// Name implements rule.Rule.
func (r *Rule) Name() string { return "require_ahk_version" }

// Description implements rule.Describer.
func (r *Rule) Description() string {
	return "First line must be a #Requires AutoHotkey directive for the expected version."
}

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) iter.Seq[lint.Diagnostic] {
	return func(yield func(lint.Diagnostic) bool) {
		first := ""
		if len(f.Lines) > 0 {
			first = strings.TrimLeft(f.Lines[0], "\ufeff")
		}
		if r.regexp().MatchString(first) {
			return
		}
		yield(lint.Diagnostic{
			File:    f.Path,
			Rule:    r.Name(),
			Message: "missing or incorrect #Requires directive on first line",
		})
	}
}

func (r *Rule) regexp() *regexp.Regexp {
	if r.pattern != nil {
		return r.pattern
	}
	return defaultPattern
}

func compile(version string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^#Requires\s+AutoHotkey\s+` + regexp.QuoteMeta(version))
}

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	version := defaultVersion
	for k, v := range settings {
		switch k {
		case "version":
			s, ok := v.(string)
			if !ok || strings.TrimSpace(s) == "" {
				return fmt.Errorf("require_ahk_version: version must be a non-empty string, got %v", v)
			}
			version = strings.TrimSpace(s)
		default:
			return fmt.Errorf("require_ahk_version: unknown setting %q", k)
		}
	}
	r.pattern = compile(version)
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{"version": defaultVersion}
}

var (
	_ rule.Configurable = (*Rule)(nil)
	_ rule.Describer    = (*Rule)(nil)
)
