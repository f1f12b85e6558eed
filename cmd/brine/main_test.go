package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

type result struct {
	stdout string
	stderr string
	err    error
}

// brineCLI runs the command in-process with an empty environment and a
// home directory that has no configuration.
func brineCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr, func(string) string { return "" })
	return result{stdout.String(), stderr.String(), err}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunVersionFlag(t *testing.T) {
	r := brineCLI(t, "", "--version")
	if r.err != nil {
		t.Fatalf("unexpected error: %v", r.err)
	}
	if r.stdout != "brine version dev (unknown)\n" {
		t.Errorf("got %q", r.stdout)
	}
}

func TestVersionCommand(t *testing.T) {
	r := brineCLI(t, "", "version")
	if r.err != nil {
		t.Fatalf("unexpected error: %v", r.err)
	}
	if !strings.HasPrefix(r.stdout, "brine version dev\n  commit: unknown\n") {
		t.Errorf("got %q", r.stdout)
	}
}

func TestRunHelp(t *testing.T) {
	r := brineCLI(t, "", "--help")
	if r.err != nil {
		t.Fatalf("unexpected error: %v", r.err)
	}
	for _, want := range []string{"brine reads Brine source", "--config", "--verbose", "parse", "watch"} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("help is missing %q:\n%s", want, r.stdout)
		}
	}
}

func TestRunInvalidFlag(t *testing.T) {
	r := brineCLI(t, "", "parse", "--invalid-flag")
	if r.err == nil {
		t.Fatal("expected error for invalid flag")
	}
	var stderr bytes.Buffer
	if code := exitCode(r.err, &stderr); code != 2 {
		t.Errorf("exit code = %d", code)
	}
	if !strings.HasPrefix(stderr.String(), "error: ") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunMissingConfig(t *testing.T) {
	r := brineCLI(t, "", "--config", "/nonexistent/brine.yaml", "parse")
	if r.err == nil || !strings.Contains(r.err.Error(), "config file not found") {
		t.Errorf("expected 'config file not found' error, got %v", r.err)
	}
}

func TestExitCode(t *testing.T) {
	var stderr bytes.Buffer
	if code := exitCode(nil, &stderr); code != 0 {
		t.Errorf("nil: %d", code)
	}
	if code := exitCode(errSyntax, &stderr); code != 1 {
		t.Errorf("syntax: %d", code)
	}
	if stderr.Len() != 0 {
		t.Errorf("syntax errors are printed by the command, got %q", stderr.String())
	}
	if code := exitCode(errors.New("boom"), &stderr); code != 2 {
		t.Errorf("other: %d", code)
	}
}

func TestParseStdin(t *testing.T) {
	tests := []struct {
		format   string
		expected string
	}{
		{"inline", "let x = (1 + 2);\n"},
		{"source", "let x = 1 + 2;\n"},
		{"tree", "Program\n  LetStatement x\n    BinaryExpression Add\n      IntLiteral 1\n      IntLiteral 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			r := brineCLI(t, "let x = 1+2;", "parse", "--format", tt.format)
			if r.err != nil {
				t.Fatalf("unexpected error: %v (stderr %q)", r.err, r.stderr)
			}
			if r.stdout != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, r.stdout)
			}
		})
	}
}

func TestFmtList(t *testing.T) {
	path := writeTemp(t, "list.brn", "let xs = [1,[2]];")
	r := brineCLI(t, "", "fmt", path)
	if r.err != nil {
		t.Fatalf("unexpected error: %v (stderr %q)", r.err, r.stderr)
	}
	if r.stdout != "let xs = [1, [2]];\n" {
		t.Errorf("got %q", r.stdout)
	}
}

func TestParseJSONFile(t *testing.T) {
	path := writeTemp(t, "main.brn", "enum E { A }")
	r := brineCLI(t, "", "parse", "-f", "json", path)
	if r.err != nil {
		t.Fatalf("unexpected error: %v", r.err)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(r.stdout), &doc); err != nil {
		t.Fatalf("not JSON: %v\n%s", err, r.stdout)
	}
	if doc["kind"] != "Program" {
		t.Errorf("kind = %v", doc["kind"])
	}
}

func TestParseErrors(t *testing.T) {
	r := brineCLI(t, "let = 1; let y = 2;", "--color", "never", "parse", "-f", "inline")
	if !errors.Is(r.err, errSyntax) {
		t.Fatalf("expected errSyntax, got %v", r.err)
	}
	if !strings.HasPrefix(r.stderr, "<stdin>:1:5: error[PARSE-0001]: ") {
		t.Errorf("stderr = %q", r.stderr)
	}
	if strings.Contains(r.stderr, "\x1b[") {
		t.Errorf("colour should be off: %q", r.stderr)
	}
	// recovered statements are still printed
	if r.stdout != "let y = 2;\n" {
		t.Errorf("stdout = %q", r.stdout)
	}
}

func TestParseMultipleFiles(t *testing.T) {
	a := writeTemp(t, "a.brn", "1;")
	b := writeTemp(t, "b.brn", "2;")
	r := brineCLI(t, "", "parse", "-f", "inline", a, b)
	if r.err != nil {
		t.Fatalf("unexpected error: %v", r.err)
	}
	want := "# " + a + "\n1;\n# " + b + "\n2;\n"
	if r.stdout != want {
		t.Errorf("expected %q, got %q", want, r.stdout)
	}
}

func TestParseBadInput(t *testing.T) {
	r := brineCLI(t, "", "parse", "-f", "xml")
	if r.err == nil || !strings.Contains(r.err.Error(), "unknown format") {
		t.Errorf("format: %v", r.err)
	}

	r = brineCLI(t, "", "parse", filepath.Join(t.TempDir(), "missing.brn"))
	if r.err == nil || errors.Is(r.err, errSyntax) {
		t.Errorf("missing file: %v", r.err)
	}
}

func TestCheck(t *testing.T) {
	good := writeTemp(t, "good.brn", "fn main() -> void {}")
	bad := writeTemp(t, "bad.brn", "1\n")

	r := brineCLI(t, "", "check", good)
	if r.err != nil || r.stdout != "" || r.stderr != "" {
		t.Errorf("clean file: %+v", r)
	}

	r = brineCLI(t, "", "--color", "never", "check", good, bad)
	if !errors.Is(r.err, errSyntax) {
		t.Fatalf("expected errSyntax, got %v", r.err)
	}
	if !strings.HasPrefix(r.stderr, bad+":1:1: error[PARSE-0004]") {
		t.Errorf("stderr = %q", r.stderr)
	}
	if !strings.Contains(r.stderr, "hint: ") {
		t.Errorf("hints are on by default: %q", r.stderr)
	}
}

func TestCheckJSON(t *testing.T) {
	r := brineCLI(t, "let = 1;\n@", "check", "--json")
	if !errors.Is(r.err, errSyntax) {
		t.Fatalf("expected errSyntax, got %v", r.err)
	}
	lines := strings.Split(strings.TrimSpace(r.stdout), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", r.stdout)
	}

	var codes []string
	for _, line := range lines {
		var d struct {
			Code string `json:"code"`
			File string `json:"file"`
			Line int    `json:"line"`
		}
		if err := json.Unmarshal([]byte(line), &d); err != nil {
			t.Fatalf("bad JSON %q: %v", line, err)
		}
		if d.File != "<stdin>" || d.Line == 0 {
			t.Errorf("diagnostic = %+v", d)
		}
		codes = append(codes, d.Code)
	}
	// lexer diagnostics come first
	if codes[0] != "LEX-0001" || codes[1] != "PARSE-0001" {
		t.Errorf("codes = %v", codes)
	}
}

func TestTokens(t *testing.T) {
	r := brineCLI(t, "x |>= 1", "tokens")
	if r.err != nil {
		t.Fatalf("unexpected error: %v", r.err)
	}
	lines := strings.Split(strings.TrimSuffix(r.stdout, "\n"), "\n")
	var kinds []string
	for _, line := range lines {
		kinds = append(kinds, strings.Fields(line)[1])
	}
	want := []string{"IDENT", "PIPE_GT", "ASSIGN", "LITERAL", "EOF"}
	if strings.Join(kinds, " ") != strings.Join(want, " ") {
		t.Errorf("kinds = %v, want %v", kinds, want)
	}

	r = brineCLI(t, "a @ b", "--color", "never", "tokens")
	if !errors.Is(r.err, errSyntax) {
		t.Fatalf("expected errSyntax, got %v", r.err)
	}
	if !strings.HasPrefix(r.stderr, "<stdin>:1:3: error[LEX-0001]") {
		t.Errorf("stderr = %q", r.stderr)
	}
}

func TestFmt(t *testing.T) {
	r := brineCLI(t, "let x=1;", "fmt")
	if r.err != nil || r.stdout != "let x = 1;\n" {
		t.Errorf("stdin: %+v", r)
	}

	path := writeTemp(t, "x.brn", "let x=1;")

	r = brineCLI(t, "", "fmt", "-l", path)
	if r.err != nil || r.stdout != path+"\n" {
		t.Errorf("-l: %+v", r)
	}

	r = brineCLI(t, "", "fmt", "-d", path)
	want := "diff " + path + "\n-1: let x=1;\n+1: let x = 1;\n"
	if r.err != nil || r.stdout != want {
		t.Errorf("-d: expected %q, got %+v", want, r)
	}

	r = brineCLI(t, "", "fmt", "-w", path)
	if r.err != nil || r.stdout != "" {
		t.Errorf("-w: %+v", r)
	}
	content, _ := os.ReadFile(path)
	if string(content) != "let x = 1;\n" {
		t.Errorf("file = %q", content)
	}

	// already formatted
	r = brineCLI(t, "", "fmt", "-l", path)
	if r.err != nil || r.stdout != "" {
		t.Errorf("-l after -w: %+v", r)
	}

	r = brineCLI(t, "", "fmt", "-w", "-l", path)
	if r.err == nil {
		t.Errorf("-w and -l should conflict")
	}
}

func TestFmtLeavesBrokenFilesAlone(t *testing.T) {
	path := writeTemp(t, "broken.brn", "let x =1")
	r := brineCLI(t, "", "fmt", "-w", path)
	if !errors.Is(r.err, errSyntax) {
		t.Fatalf("expected errSyntax, got %v", r.err)
	}
	content, _ := os.ReadFile(path)
	if string(content) != "let x =1" {
		t.Errorf("file was rewritten: %q", content)
	}
}

func TestRepl(t *testing.T) {
	r := brineCLI(t, "let x = 1;\n:format source\nfn f() -> i32 {\n1\n}\nexit\n", "repl", "-f", "inline")
	if r.err != nil {
		t.Fatalf("unexpected error: %v", r.err)
	}
	want := "let x = 1;\nFormat: source\nfn f() -> i32 { 1 }\n"
	if r.stdout != want {
		t.Errorf("expected %q, got %q", want, r.stdout)
	}
}

func TestConfigFile(t *testing.T) {
	cfg := writeTemp(t, "brine.yaml", "output:\n  format: inline\n  color: never\ndiagnostics:\n  hints: false\n  snippet: false\n")

	r := brineCLI(t, "-1;", "--config", cfg, "parse")
	if r.err != nil || r.stdout != "(-1);\n" {
		t.Errorf("config format: %+v", r)
	}

	// only the message line is left, and a warning about it
	r = brineCLI(t, "1", "--config", cfg, "check")
	if !errors.Is(r.err, errSyntax) {
		t.Fatalf("expected errSyntax, got %v", r.err)
	}
	lines := strings.Split(strings.TrimSpace(r.stderr), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "warning: diagnostics") || !strings.Contains(lines[1], "error[PARSE-0004]") {
		t.Errorf("stderr = %q", r.stderr)
	}
}

func TestBadColorFlag(t *testing.T) {
	r := brineCLI(t, "", "--color", "sometimes", "check")
	if r.err == nil || !strings.Contains(r.err.Error(), "output.color") {
		t.Errorf("err = %v", r.err)
	}
}

func TestVerbose(t *testing.T) {
	r := brineCLI(t, "1;", "-v", "check")
	if r.err != nil {
		t.Fatalf("unexpected error: %v", r.err)
	}
	if !strings.Contains(r.stderr, "parsed <stdin>: 3 tokens, 1 statements, 0 errors in ") {
		t.Errorf("stderr = %q", r.stderr)
	}
	if !strings.Contains(r.stderr, "<stdin>: ok\n") {
		t.Errorf("stderr = %q", r.stderr)
	}
}

// syncBuffer is a bytes.Buffer safe for the watcher goroutine to write
// while the test reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestWatch(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "main.brn")
	if err := os.WriteFile(path, []byte("let x = 1;"), 0644); err != nil {
		t.Fatal(err)
	}
	// not a watched extension
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("@@@"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stdout, stderr syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, []string{"--color", "never", "watch", "--debounce", "20ms", dir}, strings.NewReader(""), &stdout, &stderr, func(string) string { return "" })
	}()

	waitFor(t, "initial check", func() bool { return strings.Contains(stdout.String(), path+": ok") })

	if err := os.WriteFile(path, []byte("let x = ;"), 0644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "diagnostic after change", func() bool { return strings.Contains(stderr.String(), "error[PARSE-0003]") })

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watch returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
	if strings.Contains(stdout.String()+stderr.String(), "notes.txt") {
		t.Errorf("unwatched file was checked")
	}
}

func TestWatcherDebounce(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	a := &app{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}, getenv: func(string) string { return "" }}
	if err := a.setup(nil, nil); err != nil {
		t.Fatal(err)
	}

	w, err := a.newWatcher(30 * time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	for range 5 {
		w.schedule("a.brn")
	}
	w.schedule("b.brn")

	got := map[string]int{}
	timeout := time.After(2 * time.Second)
	for len(got) < 2 {
		select {
		case path := <-w.ready:
			got[path]++
		case <-timeout:
			t.Fatalf("timed out, got %v", got)
		}
	}
	select {
	case path := <-w.ready:
		t.Errorf("extra check for %s", path)
	case <-time.After(100 * time.Millisecond):
	}
	if got["a.brn"] != 1 || got["b.brn"] != 1 {
		t.Errorf("checks = %v", got)
	}
}

func TestWatcherStaleTimerKeepsNewer(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	a := &app{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}, getenv: func(string) string { return "" }}
	if err := a.setup(nil, nil); err != nil {
		t.Fatal(err)
	}

	w, err := a.newWatcher(time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	// the timer fires while the lock is held and waits for it; meanwhile a
	// second change replaces its entry
	w.schedule("a.brn")
	w.mu.Lock()
	time.Sleep(50 * time.Millisecond)
	newer := time.NewTimer(time.Hour)
	defer newer.Stop()
	w.timers["a.brn"] = newer
	w.mu.Unlock()

	select {
	case <-w.ready:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the first check")
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timers["a.brn"] != newer {
		t.Errorf("a fired timer removed the entry of the one that replaced it")
	}
}

func TestWatcherWanted(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	a := &app{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}, getenv: func(string) string { return "" }}
	if err := a.setup(nil, nil); err != nil {
		t.Fatal(err)
	}

	w, err := a.newWatcher(time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	root := filepath.Join("src", "app")
	w.dirs = []string{root}

	tests := []struct {
		path     string
		expected bool
	}{
		{filepath.Join(root, "main.brn"), true},
		{filepath.Join(root, "..draft.brn"), true},
		{filepath.Join(root, "lib", "util.brn"), true},
		{filepath.Join(root, "notes.txt"), false},
		{filepath.Join("src", "other.brn"), false},
		{filepath.Join("src", "app2", "x.brn"), false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := w.wanted(tt.path); got != tt.expected {
				t.Errorf("wanted(%q) = %v, expected %v", tt.path, got, tt.expected)
			}
		})
	}
}
