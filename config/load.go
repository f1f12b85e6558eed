package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/sambeau/brine/pkg/brine/format"
)

// Load reads configuration from a file with ENV interpolation.
// If configPath is empty, it searches default locations and falls back to
// Defaults when none exists.
func Load(configPath string, getenv func(string) string) (*Config, error) {
	cfg, _, err := LoadWithPath(configPath, getenv)
	return cfg, err
}

// LoadWithPath reads configuration and returns both the config and the
// resolved path, which is empty when the defaults were used.
func LoadWithPath(configPath string, getenv func(string) string) (*Config, string, error) {
	path, err := resolveConfigPath(configPath, getenv)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return Defaults(), "", nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read config: %w", err)
	}
	data = interpolateEnv(data, getenv)

	cfg := Defaults()
	if err := decode(path, data, cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.BaseDir = filepath.Dir(absPath)
	if cfg.REPL.History != "" && !filepath.IsAbs(cfg.REPL.History) {
		cfg.REPL.History = filepath.Join(cfg.BaseDir, cfg.REPL.History)
	}

	if err := Validate(cfg); err != nil {
		return nil, "", err
	}
	return cfg, absPath, nil
}

// decode picks the decoder from the file extension: .toml files are TOML,
// anything else is YAML.
func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err := toml.Decode(string(data), cfg)
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// resolveConfigPath finds the config file to use.
// Search order: explicit path > BRINE_CONFIG env > ./brine.yaml > ./brine.toml
// > ~/.config/brine/brine.yaml. An empty result means no file was found.
func resolveConfigPath(explicit string, getenv func(string) string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	if envPath := getenv("BRINE_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("BRINE_CONFIG file not found: %s", envPath)
		}
		return envPath, nil
	}

	for _, name := range []string{"brine.yaml", "brine.toml"} {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		xdgPath := filepath.Join(home, ".config", "brine", "brine.yaml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath, nil
		}
	}

	return "", nil
}

// envPattern matches ${VAR} or ${VAR:-default}
var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// interpolateEnv replaces ${VAR} and ${VAR:-default} patterns with environment values.
func interpolateEnv(data []byte, getenv func(string) string) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		parts := envPattern.FindSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		value := getenv(string(parts[1]))
		if value == "" && len(parts) >= 3 && len(parts[2]) > 0 {
			value = string(parts[2])
		}
		return []byte(value)
	})
}

// Validate checks the configuration and reports every problem at once.
func Validate(cfg *Config) error {
	var errs []string

	if _, err := format.ParseFormat(cfg.Output.Format); err != nil {
		errs = append(errs, "output.format: "+err.Error())
	}
	if _, err := format.ParseColorMode(cfg.Output.Color); err != nil {
		errs = append(errs, "output.color: "+err.Error())
	}

	if cfg.Diagnostics.Max < 0 {
		errs = append(errs, fmt.Sprintf("diagnostics.max: %d (must be 0 or more)", cfg.Diagnostics.Max))
	}

	if cfg.Watch.Debounce < 0 {
		errs = append(errs, fmt.Sprintf("watch.debounce: %s (must not be negative)", cfg.Watch.Debounce))
	}
	if len(cfg.Watch.Extensions) == 0 {
		errs = append(errs, "watch.extensions: at least one extension is required")
	}
	for i, ext := range cfg.Watch.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Sprintf("watch.extensions[%d]: %q must start with '.'", i, ext))
		}
	}

	if cfg.REPL.Prompt == "" {
		errs = append(errs, "repl.prompt: must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Warnings returns non-fatal configuration issues worth reporting.
func Warnings(cfg *Config) []string {
	var warnings []string
	if !cfg.Diagnostics.Hints && !cfg.Diagnostics.Snippet {
		warnings = append(warnings, "diagnostics: hints and snippets are both off - errors show only their location and message")
	}
	if cfg.Watch.Debounce > 0 && cfg.Watch.Debounce < 10*time.Millisecond {
		warnings = append(warnings, fmt.Sprintf("watch.debounce: %s is very short - editors that save in several steps may trigger repeated parses", cfg.Watch.Debounce))
	}
	return warnings
}

// WatchesFile reports whether path has one of the watched extensions.
func (c *Config) WatchesFile(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.Watch.Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// DiagnosticOptions converts the diagnostics and colour settings for
// output going to a terminal decided by useColor.
func (c *Config) DiagnosticOptions(useColor bool) format.DiagnosticOptions {
	return format.DiagnosticOptions{
		Color:   useColor,
		Hints:   c.Diagnostics.Hints,
		Snippet: c.Diagnostics.Snippet,
		Max:     c.Diagnostics.Max,
	}
}
