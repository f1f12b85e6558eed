package config

import "time"

// Config represents the complete Brine tool configuration
type Config struct {
	BaseDir     string            `yaml:"-" toml:"-"` // Directory containing the config file, for resolving relative paths
	Output      OutputConfig      `yaml:"output" toml:"output"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics" toml:"diagnostics"`
	Watch       WatchConfig       `yaml:"watch" toml:"watch"`
	REPL        REPLConfig        `yaml:"repl" toml:"repl"`
}

// OutputConfig holds settings for printing parse results
type OutputConfig struct {
	Format string `yaml:"format" toml:"format"` // tree, inline, source, yaml, json or spew
	Color  string `yaml:"color" toml:"color"`   // auto, always or never
}

// DiagnosticsConfig holds settings for printing errors
type DiagnosticsConfig struct {
	Max     int  `yaml:"max" toml:"max"` // 0 = unlimited
	Hints   bool `yaml:"hints" toml:"hints"`
	Snippet bool `yaml:"snippet" toml:"snippet"` // quote the source line under each error
}

// WatchConfig holds settings for the watch command
type WatchConfig struct {
	Debounce   time.Duration `yaml:"debounce" toml:"debounce"`
	Extensions []string      `yaml:"extensions" toml:"extensions"` // files considered when watching a directory
}

// REPLConfig holds settings for the interactive loop
type REPLConfig struct {
	Prompt  string `yaml:"prompt" toml:"prompt"`
	History string `yaml:"history" toml:"history"` // empty: $TMPDIR/.brine_history
}

// Defaults returns a Config with sensible defaults
func Defaults() *Config {
	return &Config{
		Output: OutputConfig{
			Format: "tree",
			Color:  "auto",
		},
		Diagnostics: DiagnosticsConfig{
			Max:     0,
			Hints:   true,
			Snippet: true,
		},
		Watch: WatchConfig{
			Debounce:   100 * time.Millisecond,
			Extensions: []string{".brn"},
		},
		REPL: REPLConfig{
			Prompt: ">> ",
		},
	}
}
