package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Output.Format != "tree" {
		t.Errorf("expected default format 'tree', got %q", cfg.Output.Format)
	}
	if cfg.Output.Color != "auto" {
		t.Errorf("expected default color 'auto', got %q", cfg.Output.Color)
	}
	if !cfg.Diagnostics.Hints || !cfg.Diagnostics.Snippet {
		t.Error("expected hints and snippets on by default")
	}
	if cfg.Watch.Debounce != 100*time.Millisecond {
		t.Errorf("expected debounce 100ms, got %s", cfg.Watch.Debounce)
	}
	if diff := cmp.Diff([]string{".brn"}, cfg.Watch.Extensions); diff != "" {
		t.Errorf("extensions mismatch (-want +got):\n%s", diff)
	}
	if cfg.REPL.Prompt != ">> " {
		t.Errorf("expected prompt '>> ', got %q", cfg.REPL.Prompt)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

// a partial document keeps the defaults it does not mention
func TestPartialYAML(t *testing.T) {
	yamlData := `
output:
  format: json
watch:
  debounce: 250ms
`
	cfg := Defaults()
	if err := yaml.Unmarshal([]byte(yamlData), cfg); err != nil {
		t.Fatalf("Failed to parse config: %v", err)
	}

	if cfg.Output.Format != "json" {
		t.Errorf("format = %q", cfg.Output.Format)
	}
	if cfg.Output.Color != "auto" {
		t.Errorf("color lost its default: %q", cfg.Output.Color)
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("debounce = %s", cfg.Watch.Debounce)
	}
	if len(cfg.Watch.Extensions) != 1 {
		t.Errorf("extensions lost their default: %v", cfg.Watch.Extensions)
	}
}

func TestWatchesFile(t *testing.T) {
	cfg := Defaults()
	cfg.Watch.Extensions = []string{".brn", ".brine"}

	tests := []struct {
		path     string
		expected bool
	}{
		{"main.brn", true},
		{"dir/lib.BRN", true},
		{"x.brine", true},
		{"notes.txt", false},
		{"brn", false},
	}
	for _, tt := range tests {
		if got := cfg.WatchesFile(tt.path); got != tt.expected {
			t.Errorf("WatchesFile(%q) = %v, want %v", tt.path, got, tt.expected)
		}
	}
}

func TestDiagnosticOptions(t *testing.T) {
	cfg := Defaults()
	cfg.Diagnostics.Max = 5
	cfg.Diagnostics.Hints = false

	opts := cfg.DiagnosticOptions(true)
	if !opts.Color || opts.Hints || !opts.Snippet || opts.Max != 5 {
		t.Errorf("unexpected options: %+v", opts)
	}
}

func TestWarnings(t *testing.T) {
	cfg := Defaults()
	if w := Warnings(cfg); len(w) != 0 {
		t.Errorf("defaults should have no warnings, got %v", w)
	}

	cfg.Diagnostics.Hints = false
	cfg.Diagnostics.Snippet = false
	cfg.Watch.Debounce = time.Millisecond
	if w := Warnings(cfg); len(w) != 2 {
		t.Errorf("expected 2 warnings, got %v", w)
	}
}
