package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultScripts is the scripts directory, relative to the project root,
// that is linted when neither the config nor the command line names one.
const DefaultScripts = "scripts"

// Config is the top-level configuration.
type Config struct {
	Scripts   string             `yaml:"scripts,omitempty"`
	Include   []string           `yaml:"include,omitempty"`
	Ignore    []string           `yaml:"ignore,omitempty"`
	Jobs      int                `yaml:"jobs,omitempty"`
	Rules     map[string]RuleCfg `yaml:"rules,omitempty"`
	Overrides []Override         `yaml:"overrides,omitempty"`
}

// Override applies rule settings to files matching glob patterns.
type Override struct {
	Files []string           `yaml:"files"`
	Rules map[string]RuleCfg `yaml:"rules"`
}

// RuleCfg is a YAML union: can be bool (enable/disable) or map[string]any (settings).
type RuleCfg struct {
	Enabled  bool
	Settings map[string]any
}

// UnmarshalYAML implements custom YAML unmarshalling for RuleCfg.
// It handles three forms:
//   - false -> Enabled=false, Settings=nil
//   - true  -> Enabled=true,  Settings=nil
//   - {key: val, ...} -> Enabled=true, Settings={key: val, ...}
func (r *RuleCfg) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var b bool
		if err := value.Decode(&b); err != nil {
			return fmt.Errorf("line %d: rule config must be a bool or a mapping: %w", value.Line, err)
		}
		r.Enabled = b
		r.Settings = nil
		return nil
	}

	if value.Kind == yaml.MappingNode {
		var m map[string]any
		if err := value.Decode(&m); err != nil {
			return fmt.Errorf("invalid rule config: %w", err)
		}
		r.Enabled = true
		r.Settings = m
		return nil
	}

	return fmt.Errorf("line %d: rule config must be a bool or a mapping", value.Line)
}

// MarshalYAML writes the bool form when there are no settings, so a
// generated config round-trips through UnmarshalYAML.
func (r RuleCfg) MarshalYAML() (any, error) {
	if r.Enabled && len(r.Settings) > 0 {
		return r.Settings, nil
	}
	return r.Enabled, nil
}
