package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"github.com/jeduden/ahklint/internal/discovery"
	"github.com/jeduden/ahklint/internal/rule"
)

// FileName is the config file looked up by Discover.
const FileName = ".ahklint.yml"

// Load reads and parses a config file at the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %q: %w", path, err)
	}

	return &cfg, nil
}

// Discover walks up the directory tree from startDir looking for a
// .ahklint.yml config file. It stops searching when it encounters a .git
// directory (the repository root) or reaches the filesystem root.
// Returns the path to the config file, or "" if none was found.
func Discover(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Defaults returns a Config with all registered rules enabled with default
// settings, the default scripts directory and include patterns.
func Defaults() *Config {
	names := rule.Names()
	rules := make(map[string]RuleCfg, len(names))
	for _, name := range names {
		rules[name] = RuleCfg{Enabled: true}
	}
	return &Config{
		Scripts: DefaultScripts,
		Include: append([]string(nil), discovery.DefaultPatterns...),
		Rules:   rules,
	}
}

// DumpDefaults is like Defaults but also fills in the DefaultSettings of
// Configurable rules. It is consumed by `ahklint init`.
func DumpDefaults() *Config {
	cfg := Defaults()
	for _, r := range rule.All() {
		if c, ok := r.(rule.Configurable); ok {
			cfg.Rules[r.Name()] = RuleCfg{Enabled: true, Settings: c.DefaultSettings()}
		}
	}
	return cfg
}

// Validate checks that every rule the config mentions is registered and
// that every glob compiles.
func Validate(cfg *Config) error {
	var unknown []string
	check := func(rules map[string]RuleCfg) {
		for name := range rules {
			if rule.ByName(name) == nil {
				unknown = append(unknown, name)
			}
		}
	}
	check(cfg.Rules)
	for i, o := range cfg.Overrides {
		check(o.Rules)
		if len(o.Files) == 0 {
			return fmt.Errorf("overrides[%d]: files must not be empty", i)
		}
		for _, p := range o.Files {
			if _, err := glob.Compile(p); err != nil {
				return fmt.Errorf("overrides[%d]: invalid pattern %q: %w", i, p, err)
			}
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("config references unknown rules: %s", strings.Join(unknown, ", "))
	}
	if cfg.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", cfg.Jobs)
	}
	return nil
}
