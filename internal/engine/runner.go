package engine

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jeduden/ahklint/internal/config"
	"github.com/jeduden/ahklint/internal/lint"
	vlog "github.com/jeduden/ahklint/internal/log"
	"github.com/jeduden/ahklint/internal/rule"
)

// Runner drives the linting pipeline: for each file it reads and decodes
// the script, determines the effective rule configuration, runs the
// selected rules in order and collects diagnostics.
type Runner struct {
	Config *config.Config
	Rules  []rule.Rule
	// Root is the directory display paths are relative to.
	Root string
	// Jobs is the number of files checked concurrently. Values below 2
	// run sequentially and stream diagnostics as rules yield them.
	Jobs   int
	Logger *vlog.Logger
}

// Result holds the output of a lint run.
type Result struct {
	Diagnostics []lint.Diagnostic
	Errors      []error
}

// Success reports whether the run found no violations and hit no errors.
func (r *Result) Success() bool {
	return len(r.Diagnostics) == 0 && len(r.Errors) == 0
}

type fileResult struct {
	diags []lint.Diagnostic
	errs  []error
}

// Validate applies every configured rule setting once, top level and
// overrides, so bad settings surface before any file is read.
func (r *Runner) Validate() error {
	cfgs := []map[string]config.RuleCfg{r.config().Rules}
	for _, o := range r.config().Overrides {
		cfgs = append(cfgs, o.Rules)
	}
	for _, rl := range r.Rules {
		for _, m := range cfgs {
			cfg, ok := m[rl.Name()]
			if !ok || !cfg.Enabled {
				continue
			}
			if _, err := ConfigureRule(rl, cfg); err != nil {
				return err
			}
		}
	}
	return nil
}

// Run lints the files at paths in the given order. emit, if not nil,
// receives every diagnostic in output order: file order, then rule order,
// then each rule's own order. The output is the same for every Jobs value.
func (r *Runner) Run(ctx context.Context, paths []string, emit func(lint.Diagnostic)) *Result {
	r.Logger.Printf("rules: %s", strings.Join(ruleNames(r.Rules), ", "))
	if r.Jobs > 1 && len(paths) > 1 {
		return r.runParallel(ctx, paths, emit)
	}

	res := &Result{}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			res.Errors = append(res.Errors, err)
			break
		}
		fr := r.checkPath(path, emit)
		res.Diagnostics = append(res.Diagnostics, fr.diags...)
		res.Errors = append(res.Errors, fr.errs...)
	}
	return res
}

// runParallel checks files concurrently and emits after all of them are
// done, in path order.
func (r *Runner) runParallel(ctx context.Context, paths []string, emit func(lint.Diagnostic)) *Result {
	results := make([]fileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(r.Jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.checkPath(path, nil)
			return nil
		})
	}
	waitErr := g.Wait()

	res := &Result{}
	for _, fr := range results {
		for _, d := range fr.diags {
			if emit != nil {
				emit(d)
			}
		}
		res.Diagnostics = append(res.Diagnostics, fr.diags...)
		res.Errors = append(res.Errors, fr.errs...)
	}
	if waitErr != nil {
		res.Errors = append(res.Errors, waitErr)
	}
	return res
}

// RunSource lints in-memory text reported under path.
func (r *Runner) RunSource(path, text string, emit func(lint.Diagnostic)) *Result {
	f := lint.NewFile("", path, text)
	fr := r.checkFile(f, emit)
	return &Result{Diagnostics: fr.diags, Errors: fr.errs}
}

func (r *Runner) checkPath(path string, emit func(lint.Diagnostic)) fileResult {
	f, err := lint.ReadFile(r.Root, path)
	if err != nil {
		return fileResult{errs: []error{err}}
	}
	return r.checkFile(f, emit)
}

func (r *Runner) checkFile(f *lint.File, emit func(lint.Diagnostic)) fileResult {
	r.Logger.Printf("file: %s", f.Path)
	effective := config.Effective(r.config(), f.Path)
	diags, errs := CheckRules(f, r.Rules, effective, emit)
	return fileResult{diags: diags, errs: errs}
}

func (r *Runner) config() *config.Config {
	if r.Config == nil {
		return &config.Config{}
	}
	return r.Config
}

func ruleNames(rules []rule.Rule) []string {
	names := make([]string, len(rules))
	for i, rl := range rules {
		names[i] = rl.Name()
	}
	return names
}
