package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/jeduden/ahklint/internal/config"
	"github.com/jeduden/ahklint/internal/discovery"
	"github.com/jeduden/ahklint/internal/engine"
	"github.com/jeduden/ahklint/internal/lint"
	vlog "github.com/jeduden/ahklint/internal/log"
	"github.com/jeduden/ahklint/internal/output"
	"github.com/jeduden/ahklint/internal/rule"
	"github.com/jeduden/ahklint/internal/rules"
	"github.com/jeduden/ahklint/internal/selection"

	// Import all rule packages so their init() functions register rules.
	_ "github.com/jeduden/ahklint/internal/rules/requireahkversion"
	_ "github.com/jeduden/ahklint/internal/rules/requiresingleinstance"
	_ "github.com/jeduden/ahklint/internal/rules/requirewarndirective"
	_ "github.com/jeduden/ahklint/internal/rules/trailingnewline"
	_ "github.com/jeduden/ahklint/internal/rules/trailingwhitespace"
	_ "github.com/jeduden/ahklint/internal/rules/unusedfunctions"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

const usageText = `Usage: ahklint [command] [flags]

Commands:
  check     Lint AutoHotkey scripts (default)
  rules     List available rules, or show one rule
  init      Generate a default .ahklint.yml config file
  version   Print version and exit

Global flags:
  -h, --help      Show this help

Run 'ahklint <command> --help' for more information on a command.
`

// app carries the standard streams so commands can be run in-process.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	// No arguments or only flags: lint with defaults.
	if len(args) == 0 || (strings.HasPrefix(args[0], "-") && args[0] != "--help" && args[0] != "-h") {
		return a.runCheck(args)
	}

	switch args[0] {
	case "--help", "-h", "help":
		fmt.Fprint(stderr, usageText)
		return output.ExitOK
	case "check":
		return a.runCheck(args[1:])
	case "rules":
		return a.runRules(args[1:])
	case "init":
		return a.runInit(args[1:])
	case "version":
		a.printVersion()
		return output.ExitOK
	default:
		fmt.Fprintf(stderr, "ahklint: unknown command %q\n\n%s", args[0], usageText)
		return output.ExitConfigError
	}
}

func (a *app) printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Fprintf(a.stdout, "ahklint %s\n", version)
}

// checkOptions holds the parsed flags of the check command.
type checkOptions struct {
	rules      []string
	ruleFile   string
	root       string
	scripts    string
	configPath string
	format     string
	jobs       int
	noColor    bool
	quiet      bool
	verbose    bool
}

// runCheck implements the "check" command: lint every script under the
// scripts directory, or stdin when the only argument is "-".
func (a *app) runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	var opts checkOptions

	fs.StringArrayVarP(&opts.rules, "rules", "r", nil, "Rule to apply (repeatable, comma-separated)")
	fs.StringVar(&opts.ruleFile, "rule-file", "", "File listing rule names, one per line")
	fs.StringVar(&opts.root, "root", "", "Project root (default: directory of the config file, else current directory)")
	fs.StringVar(&opts.scripts, "scripts", "", "Scripts directory relative to the root (default \"scripts\")")
	fs.StringVarP(&opts.configPath, "config", "c", "", "Override config file path")
	fs.StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")
	fs.IntVarP(&opts.jobs, "jobs", "j", 0, "Number of files checked in parallel (default from config, else 1)")
	fs.BoolVar(&opts.noColor, "no-color", false, "Disable ANSI colors")
	fs.BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress diagnostic output; only set the exit code")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "Show config, rules, and files on stderr")

	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: ahklint check [flags] [-]\n\n"+
			"Lint AutoHotkey v2 scripts.\n\n"+
			"Without --rules or --rule-file every available rule runs.\n"+
			"Names from --rule-file come first, then --rules; duplicates are dropped.\n"+
			"Pass - to lint stdin instead of the scripts directory.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return output.ExitOK
		}
		return output.ExitConfigError
	}

	if opts.format != "text" && opts.format != "json" {
		fmt.Fprintf(a.stderr, "ahklint: unknown format %q\n", opts.format)
		return output.ExitConfigError
	}
	if opts.jobs < 0 {
		fmt.Fprintf(a.stderr, "ahklint: --jobs must not be negative\n")
		return output.ExitConfigError
	}

	useStdin := false
	switch {
	case fs.NArg() == 1 && fs.Arg(0) == "-":
		useStdin = true
	case fs.NArg() > 0:
		fmt.Fprintf(a.stderr, "ahklint: unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return output.ExitConfigError
	}

	if opts.quiet {
		opts.verbose = false
	}
	logger := &vlog.Logger{Enabled: opts.verbose, W: a.stderr}

	cfg, root, err := loadConfig(opts.configPath, opts.root, logger)
	if err != nil {
		fmt.Fprintf(a.stderr, "ahklint: %v\n", err)
		return output.ExitConfigError
	}

	selected, err := selectRules(opts)
	if err != nil {
		fmt.Fprintln(a.stderr, errorText(err))
		return output.ExitConfigError
	}

	jobs := opts.jobs
	if jobs == 0 {
		jobs = cfg.Jobs
	}
	runner := &engine.Runner{
		Config: cfg,
		Rules:  selected,
		Root:   root,
		Jobs:   jobs,
		Logger: logger,
	}
	if err := runner.Validate(); err != nil {
		fmt.Fprintf(a.stderr, "ahklint: %v\n", err)
		return output.ExitConfigError
	}

	text := &output.TextFormatter{Color: !opts.noColor && !color.NoColor}
	// The first write error stops streaming and fails the run.
	var writeErr error
	emit := func(d lint.Diagnostic) {
		if opts.quiet || opts.format != "text" || writeErr != nil {
			return
		}
		writeErr = text.Write(a.stdout, d)
	}

	var result *engine.Result
	if useStdin {
		result = a.checkStdin(runner, emit)
	} else {
		scripts := opts.scripts
		if scripts == "" {
			scripts = cfg.Scripts
		}
		files, err := discovery.Discover(discovery.Options{
			Patterns: cfg.Include,
			Ignore:   cfg.Ignore,
			BaseDir:  filepath.Join(root, scripts),
			Root:     root,
		})
		if err != nil {
			fmt.Fprintf(a.stderr, "ahklint: %v\n", err)
			return output.ExitConfigError
		}
		logger.Printf("scripts: %s (%d files)", filepath.Join(root, scripts), len(files))
		result = runner.Run(context.Background(), files, emit)
	}

	if !opts.quiet && opts.format == "json" {
		if err := (&output.JSONFormatter{}).Format(a.stdout, result.Diagnostics); err != nil {
			fmt.Fprintf(a.stderr, "ahklint: error writing output: %v\n", err)
			return output.ExitConfigError
		}
	}

	for _, e := range result.Errors {
		fmt.Fprintf(a.stderr, "ahklint: %v\n", e)
	}
	if writeErr != nil {
		fmt.Fprintf(a.stderr, "ahklint: error writing output: %v\n", writeErr)
		return output.ExitConfigError
	}

	return output.ExitCode(result.Diagnostics, result.Errors)
}

func (a *app) checkStdin(runner *engine.Runner, emit func(lint.Diagnostic)) *engine.Result {
	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return &engine.Result{Errors: []error{fmt.Errorf("reading stdin: %w", err)}}
	}
	text, err := lint.Decode(data)
	if err != nil {
		return &engine.Result{Errors: []error{fmt.Errorf("reading stdin: %w", err)}}
	}
	return runner.RunSource("<stdin>", text, emit)
}

// selectRules resolves the rule selection and loads the rules. Loading is
// all or nothing.
func selectRules(opts checkOptions) ([]rule.Rule, error) {
	var fromFile []string
	if opts.ruleFile != "" {
		names, err := selection.ReadRuleFile(opts.ruleFile)
		if err != nil {
			return nil, err
		}
		fromFile = names
	}
	names := selection.Resolve(fromFile, selection.SplitArgs(opts.rules), rule.Names)
	return rule.Load(names)
}

// errorText renders a selection error. Unknown rules are reported without
// the program prefix so the message reads "Unknown rule: name".
func errorText(err error) string {
	var unknown *rule.UnknownRuleError
	if errors.As(err, &unknown) {
		return unknown.Error()
	}
	return "ahklint: " + err.Error()
}

// loadConfig loads configuration from configPath, or discovers it starting
// at root (or the working directory). It returns the merged config and the
// project root: root if given, else the config file's directory, else the
// working directory.
func loadConfig(configPath, root string, logger *vlog.Logger) (*config.Config, string, error) {
	defaults := config.Defaults()

	startDir := root
	if startDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("getting working directory: %w", err)
		}
		startDir = cwd
	}

	if configPath == "" {
		discovered, err := config.Discover(startDir)
		if err != nil {
			return nil, "", err
		}
		configPath = discovered
	}

	var loaded *config.Config
	if configPath != "" {
		var err error
		if loaded, err = config.Load(configPath); err != nil {
			return nil, "", err
		}
		logger.Printf("config: %s", configPath)
		if root == "" {
			root = filepath.Dir(configPath)
		}
	} else {
		logger.Printf("config: none")
	}
	if root == "" {
		root = startDir
	}

	cfg := config.Merge(defaults, loaded)
	if err := config.Validate(cfg); err != nil {
		return nil, "", err
	}
	return cfg, root, nil
}

// runRules implements the "rules" command.
func (a *app) runRules(args []string) int {
	fs := flag.NewFlagSet("rules", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: ahklint rules [name]\n\n"+
			"List available rules, or show the settings of one rule.\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return output.ExitOK
		}
		return output.ExitConfigError
	}

	switch fs.NArg() {
	case 0:
		rules.WriteTable(a.stdout, rules.ListRules())
		return output.ExitOK
	case 1:
		info, err := rules.LookupRule(fs.Arg(0))
		if err != nil {
			fmt.Fprintln(a.stderr, errorText(err))
			return output.ExitConfigError
		}
		rules.WriteTable(a.stdout, []rules.RuleInfo{info})
		return output.ExitOK
	default:
		fmt.Fprintf(a.stderr, "ahklint: rules takes at most one argument\n")
		return output.ExitConfigError
	}
}

// runInit implements the "init" command: generate .ahklint.yml.
func (a *app) runInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	var dir string
	fs.StringVar(&dir, "dir", ".", "Directory to write the config file to")
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: ahklint init [--dir DIR]\n\n"+
			"Generate a default %s config file.\n", config.FileName)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return output.ExitOK
		}
		return output.ExitConfigError
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(a.stderr, "ahklint: init takes no arguments\n")
		return output.ExitConfigError
	}

	configFile := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(configFile); err == nil {
		fmt.Fprintf(a.stderr, "ahklint: %s already exists\n", configFile)
		return output.ExitConfigError
	}

	data, err := yaml.Marshal(config.DumpDefaults())
	if err != nil {
		fmt.Fprintf(a.stderr, "ahklint: marshalling config: %v\n", err)
		return output.ExitConfigError
	}

	if err := os.WriteFile(configFile, data, 0o644); err != nil {
		fmt.Fprintf(a.stderr, "ahklint: writing %s: %v\n", configFile, err)
		return output.ExitConfigError
	}

	fmt.Fprintf(a.stderr, "ahklint: created %s\n", configFile)
	return output.ExitOK
}
