package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONFormatter_FieldNamesAndValues(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Format(&buf, sample); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %s", err, buf.String())
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result))
	}

	if _, ok := result[0]["line"]; ok {
		t.Error("file-level diagnostic should omit line")
	}
	if result[0]["rule"] != "require_ahk_version" {
		t.Errorf("unexpected rule %v", result[0]["rule"])
	}
	if result[1]["line"] != float64(3) {
		t.Errorf("expected line 3, got %v", result[1]["line"])
	}
	if result[1]["file"] != "scripts/a.ahk" || result[1]["message"] != "trailing whitespace" {
		t.Errorf("unexpected item %v", result[1])
	}
}

func TestJSONFormatter_EmptyArray(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Format(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("expected [], got %q", got)
	}
}
