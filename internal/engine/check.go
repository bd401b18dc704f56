package engine

import (
	"fmt"

	"github.com/jeduden/ahklint/internal/config"
	"github.com/jeduden/ahklint/internal/lint"
	"github.com/jeduden/ahklint/internal/rule"
)

// ConfigureRule clones a rule and applies settings from cfg if the rule
// implements Configurable and cfg has settings. Returns the configured
// rule (or the original if no settings apply) and any error from
// ApplySettings. An empty settings mapping counts as no settings.
func ConfigureRule(rl rule.Rule, cfg config.RuleCfg) (rule.Rule, error) {
	if len(cfg.Settings) == 0 {
		return rl, nil
	}
	if _, ok := rl.(rule.Configurable); !ok {
		return nil, fmt.Errorf("rule %s has no settings", rl.Name())
	}
	clone := rule.CloneRule(rl)
	if c, ok := clone.(rule.Configurable); ok {
		if err := c.ApplySettings(cfg.Settings); err != nil {
			return nil, fmt.Errorf("applying settings for %s: %w", rl.Name(), err)
		}
	}
	return clone, nil
}

// CheckRules runs rules against f in order, skipping rules the effective
// configuration disables. Every diagnostic is passed to emit as soon as the
// rule yields it and is also returned. Rules whose settings fail to apply
// are skipped and reported as errors.
func CheckRules(f *lint.File, rules []rule.Rule, effective map[string]config.RuleCfg, emit func(lint.Diagnostic)) ([]lint.Diagnostic, []error) {
	var diags []lint.Diagnostic
	var errs []error

	for _, rl := range rules {
		cfg, ok := effective[rl.Name()]
		if !ok {
			cfg = config.RuleCfg{Enabled: true}
		}
		if !cfg.Enabled {
			continue
		}

		checkRule, err := ConfigureRule(rl, cfg)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		for d := range checkRule.Check(f) {
			if emit != nil {
				emit(d)
			}
			diags = append(diags, d)
		}
	}

	return diags, errs
}
