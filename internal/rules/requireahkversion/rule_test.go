package requireahkversion

import (
	"testing"

	"github.com/jeduden/ahklint/internal/lint"
	"github.com/jeduden/ahklint/internal/rule"
)

func check(t *testing.T, r *Rule, src string) []lint.Diagnostic {
	t.Helper()
	return rule.Collect(r, lint.NewFile("", "a.ahk", src))
}

func TestCheck_Missing(t *testing.T) {
	diags := check(t, &Rule{}, "x := 1\n")
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	want := "a.ahk: missing or incorrect #Requires directive on first line"
	if got := diags[0].String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if diags[0].Rule != "require_ahk_version" {
		t.Errorf("expected rule name require_ahk_version, got %s", diags[0].Rule)
	}
}

func TestCheck_Present(t *testing.T) {
	for _, src := range []string{
		"#Requires AutoHotkey v2.0\nx := 1\n",
		"#requires   autohotkey   V2\n",
		"\ufeff#Requires AutoHotkey v2.0\n",
	} {
		if diags := check(t, &Rule{}, src); len(diags) != 0 {
			t.Errorf("%q: expected 0 diagnostics, got %d", src, len(diags))
		}
	}
}

func TestCheck_NotOnFirstLine(t *testing.T) {
	diags := check(t, &Rule{}, "; header\n#Requires AutoHotkey v2.0\n")
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
}

func TestCheck_WrongVersion(t *testing.T) {
	diags := check(t, &Rule{}, "#Requires AutoHotkey v1.1\n")
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
}

func TestCheck_EmptyFile(t *testing.T) {
	diags := check(t, &Rule{}, "")
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic for empty file, got %d", len(diags))
	}
}

func TestApplySettings_Version(t *testing.T) {
	r := &Rule{}
	if err := r.ApplySettings(map[string]any{"version": "v2.1"}); err != nil {
		t.Fatal(err)
	}
	if diags := check(t, r, "#Requires AutoHotkey v2.0\n"); len(diags) != 1 {
		t.Errorf("expected v2.0 to fail a v2.1 requirement, got %d diagnostics", len(diags))
	}
	if diags := check(t, r, "#Requires AutoHotkey v2.1-alpha\n"); len(diags) != 0 {
		t.Errorf("expected v2.1-alpha to pass, got %d diagnostics", len(diags))
	}
}

func TestApplySettings_Invalid(t *testing.T) {
	r := &Rule{}
	if err := r.ApplySettings(map[string]any{"version": 2}); err == nil {
		t.Error("expected error for non-string version")
	}
	if err := r.ApplySettings(map[string]any{"bogus": true}); err == nil {
		t.Error("expected error for unknown setting")
	}
}
