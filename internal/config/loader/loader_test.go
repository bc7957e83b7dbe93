package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestTOMLLoader(t *testing.T) {
	path := writeFile(t, "defaults.toml", `
[tooltip]
placement = "bottom"
delay = 100
noFade = true

[popover]
triggers = "click"
`)

	raw, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tooltip, ok := raw["tooltip"].(map[string]any)
	if !ok {
		t.Fatalf("tooltip section missing: %v", raw)
	}
	if tooltip["placement"] != "bottom" {
		t.Errorf("placement = %v", tooltip["placement"])
	}
}

func TestJSONLoader(t *testing.T) {
	path := writeFile(t, "defaults.json", `{
  "tooltip": {"placement": "left", "delay": {"show": 100, "hide": 50}},
  "popover": {"triggers": ["click", "blur"]}
}`)

	raw, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	tooltip := raw["tooltip"].(map[string]any)
	if tooltip["placement"] != "left" {
		t.Errorf("placement = %v", tooltip["placement"])
	}
	if _, ok := tooltip["delay"].(map[string]any); !ok {
		t.Errorf("delay should decode as a map, got %T", tooltip["delay"])
	}
}

func TestDefaults(t *testing.T) {
	path := writeFile(t, "defaults.toml", `
[tooltip]
placement = "bottom"
interval = 250

notATable = "ignored"
`)

	defaults, err := Defaults(path)
	if err != nil {
		t.Fatalf("Defaults failed: %v", err)
	}

	props, ok := defaults["tooltip"]
	if !ok {
		t.Fatal("tooltip defaults missing")
	}
	if props.Placement != "bottom" {
		t.Errorf("Placement = %q", props.Placement)
	}
	if props.Interval != 250*time.Millisecond {
		t.Errorf("Interval = %v", props.Interval)
	}
	if _, ok := defaults["notATable"]; ok {
		t.Error("non-table sections should be skipped")
	}
}

func TestMissingFileIsNotAnError(t *testing.T) {
	raw, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if raw != nil {
		t.Errorf("raw = %v, want nil", raw)
	}

	defaults, err := Defaults(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Defaults on missing file: %v", err)
	}
	if len(defaults) != 0 {
		t.Errorf("defaults = %v, want empty", defaults)
	}
}

func TestParseErrors(t *testing.T) {
	badTOML := writeFile(t, "bad.toml", "placement = ???")
	if _, err := Load(badTOML); err == nil {
		t.Error("expected TOML parse error")
	} else {
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("expected *ParseError, got %T", err)
		}
	}

	badJSON := writeFile(t, "bad.json", "{not json")
	if _, err := Load(badJSON); err == nil {
		t.Error("expected JSON parse error")
	}

	arrayJSON := writeFile(t, "array.json", "[1, 2, 3]")
	if _, err := Load(arrayJSON); err == nil {
		t.Error("expected error for non-object JSON document")
	}
}
