package main_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all e2e tests.
	// go test runs from the package directory (cmd/ahklint/),
	// so "go build ." builds the main package in this directory.
	tmp, err := os.MkdirTemp("", "ahklint-e2e-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create temp dir: %v\n", err)
		os.Exit(1)
	}

	binaryPath = filepath.Join(tmp, "ahklint")
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build binary: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	_ = os.RemoveAll(tmp)
	os.Exit(code)
}

const cleanScript = "#Requires AutoHotkey v2.0\n#SingleInstance Force\n#Warn\n\nGreet() {\n    MsgBox(\"hi\")\n}\n\nGreet()\n"

// runBinary runs the ahklint binary in dir with the given args and optional
// stdin. It returns stdout, stderr, and the exit code.
func runBinary(t *testing.T, dir, stdin string, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	err := cmd.Run()
	exitCode = 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("unexpected error running binary: %v", err)
		}
	}

	return outBuf.String(), errBuf.String(), exitCode
}

// newProject creates a project directory with a .git marker, so config
// discovery stops there, and an empty scripts directory.
func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, sub := range []string{".git", "scripts"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// writeFixture creates a file with the given content under dir.
func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
	return path
}

func TestE2E_EmptyScriptsDir_ExitsZero(t *testing.T) {
	dir := newProject(t)

	stdout, _, exitCode := runBinary(t, dir, "")
	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if stdout != "" {
		t.Errorf("expected no output, got %q", stdout)
	}
}

func TestE2E_MissingScriptsDir_ExitsTwo(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	_, stderr, exitCode := runBinary(t, dir, "")
	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !strings.Contains(stderr, "ahklint:") {
		t.Errorf("expected an error on stderr, got: %s", stderr)
	}
}

func TestE2E_CleanFile_ExitsZero(t *testing.T) {
	dir := newProject(t)
	writeFixture(t, dir, "scripts/clean.ahk", cleanScript)

	stdout, _, exitCode := runBinary(t, dir, "", "--no-color")
	if exitCode != 0 {
		t.Errorf("expected exit code 0 for clean file, got %d\n%s", exitCode, stdout)
	}
}

func TestE2E_Violations_ExitsOne(t *testing.T) {
	dir := newProject(t)
	writeFixture(t, dir, "scripts/a.ahk", "x := 1\n")

	stdout, _, exitCode := runBinary(t, dir, "", "--no-color")
	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	want := "scripts/a.ahk: missing or incorrect #Requires directive on first line\n" +
		"scripts/a.ahk: missing #SingleInstance directive\n" +
		"scripts/a.ahk: missing #Warn directive\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestE2E_SelectedRule(t *testing.T) {
	dir := newProject(t)
	writeFixture(t, dir, "scripts/a.ahk", "x := 1\n")

	stdout, _, exitCode := runBinary(t, dir, "", "--no-color", "--scripts", ".", "--root", "scripts", "-r", "require_ahk_version")
	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if want := "a.ahk: missing or incorrect #Requires directive on first line\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}

	stdout, _, exitCode = runBinary(t, dir, "", "--no-color", "--scripts", ".", "--root", "scripts", "-r", "trailing_whitespace")
	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if stdout != "" {
		t.Errorf("expected no diagnostics, got %q", stdout)
	}
}

func TestE2E_UnknownRule_ExitsTwo(t *testing.T) {
	dir := newProject(t)
	writeFixture(t, dir, "scripts/a.ahk", "x := 1\n")

	stdout, stderr, exitCode := runBinary(t, dir, "", "-r", "trailing_whitespace,no_such_rule")
	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if stdout != "" {
		t.Errorf("expected no diagnostics, got %q", stdout)
	}
	if !strings.Contains(stderr, "Unknown rule: no_such_rule") {
		t.Errorf("expected unknown rule message, got: %s", stderr)
	}
}

func TestE2E_JSONFormat(t *testing.T) {
	dir := newProject(t)
	writeFixture(t, dir, "scripts/dirty.ahk", cleanScript+"x := 1   \n")

	stdout, _, exitCode := runBinary(t, dir, "", "--format", "json")
	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}

	var diagnostics []map[string]any
	if err := json.Unmarshal([]byte(stdout), &diagnostics); err != nil {
		t.Fatalf("stdout is not valid JSON: %v\nstdout: %s", err, stdout)
	}
	if len(diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(diagnostics), diagnostics)
	}

	d := diagnostics[0]
	for _, field := range []string{"file", "line", "rule", "message"} {
		if _, ok := d[field]; !ok {
			t.Errorf("JSON diagnostic missing required field %q", field)
		}
	}
	if d["file"] != "scripts/dirty.ahk" {
		t.Errorf("file = %v, want scripts/dirty.ahk", d["file"])
	}
	if d["rule"] != "trailing_whitespace" {
		t.Errorf("rule = %v, want trailing_whitespace", d["rule"])
	}
	if d["line"] != float64(10) {
		t.Errorf("line = %v, want 10", d["line"])
	}
}

func TestE2E_CustomConfig(t *testing.T) {
	dir := newProject(t)
	writeFixture(t, dir, "scripts/a.ahk", "x := 1\n")
	writeFixture(t, dir, ".ahklint.yml", "rules:\n  require_single_instance: false\n  require_warn_directive: false\n  require_ahk_version:\n    version: \"v1\"\n")

	stdout, _, exitCode := runBinary(t, dir, "", "--no-color")
	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if want := "scripts/a.ahk: missing or incorrect #Requires directive on first line\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestE2E_InvalidConfig_ExitsTwo(t *testing.T) {
	dir := newProject(t)
	writeFixture(t, dir, ".ahklint.yml", "rules:\n  no_such_rule: true\n")

	_, stderr, exitCode := runBinary(t, dir, "")
	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !strings.Contains(stderr, "no_such_rule") {
		t.Errorf("expected error to name the rule, got: %s", stderr)
	}
}

func TestE2E_Version(t *testing.T) {
	stdout, _, exitCode := runBinary(t, t.TempDir(), "", "version")
	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !strings.HasPrefix(stdout, "ahklint ") {
		t.Errorf("expected version output to start with 'ahklint ', got: %s", stdout)
	}
}

func TestE2E_Stdin_Violations(t *testing.T) {
	stdout, _, exitCode := runBinary(t, newProject(t), "x := 1 \n", "check", "--no-color", "-r", "trailing_whitespace", "-")
	if exitCode != 1 {
		t.Errorf("expected exit code 1 for stdin with violations, got %d", exitCode)
	}
	if want := "<stdin>:1: trailing whitespace\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestE2E_Stdin_Clean(t *testing.T) {
	_, _, exitCode := runBinary(t, newProject(t), cleanScript, "check", "-")
	if exitCode != 0 {
		t.Errorf("expected exit code 0 for clean stdin, got %d", exitCode)
	}
}
