// Command brine parses Brine source files.
//
//	brine parse [--format tree|inline|source|yaml|json|spew] [file...]
//	brine check file...
//	brine tokens [file]
//	brine fmt [-w|-l|-d] file...
//	brine repl
//	brine watch [path...]
//	brine version
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Version information, set at build time via -ldflags
var (
	Version = "dev"     // -X main.Version=$(git describe --tags --always)
	Commit  = "unknown" // -X main.Commit=$(git rev-parse --short HEAD)
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv)
	stop()
	os.Exit(exitCode(err, os.Stderr))
}

// run is the main entry point, designed for testability (Mat Ryer pattern)
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) error {
	root := newRootCmd(&app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		getenv: getenv,
	})
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// errSyntax reports that input was read but had diagnostics, which have
// already been printed.
var errSyntax = errors.New("syntax errors")

// exitCode maps run's result to a process status: 0 success, 1 syntax
// errors, 2 anything else (bad flags, unreadable files, config problems).
func exitCode(err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errSyntax):
		return 1
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return 2
}
