package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sambeau/brine/pkg/brine/format"
)

type fmtOptions struct {
	write bool
	list  bool
	diff  bool
}

func newFmtCmd(a *app) *cobra.Command {
	var opts fmtOptions

	cmd := &cobra.Command{
		Use:   "fmt [file...]",
		Short: "Format Brine source files",
		Long: `Fmt reprints each file in canonical form. Files with syntax errors are
reported and left alone.`,
		Example: `  brine fmt script.brn       Print formatted output to stdout
  brine fmt -w script.brn    Format file in place
  brine fmt -l *.brn         List files that need formatting
  brine fmt -d script.brn    Show what would change`,
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := false
			for _, file := range inputs(args) {
				if err := a.formatFile(file, opts); err != nil {
					if !errors.Is(err, errSyntax) {
						return err
					}
					failed = true
				}
			}
			if failed {
				return errSyntax
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "write result to source file instead of stdout")
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "list files whose formatting differs")
	cmd.Flags().BoolVarP(&opts.diff, "diff", "d", false, "display diffs instead of rewriting files")
	cmd.MarkFlagsMutuallyExclusive("write", "list", "diff")
	return cmd
}

// formatFile formats a single Brine file
func (a *app) formatFile(filename string, opts fmtOptions) error {
	u, err := a.parse(filename)
	if err != nil {
		return err
	}
	if err := a.report(u); err != nil {
		return err
	}

	formatted := format.Source(u.Program)
	changed := formatted != u.Source

	switch {
	case opts.list:
		if changed {
			fmt.Fprintln(a.stdout, u.Name)
		}
	case opts.diff:
		if changed {
			showDiff(a.stdout, u.Name, u.Source, formatted)
		}
	case opts.write && filename != "-":
		if changed {
			if err := os.WriteFile(filename, []byte(formatted), 0644); err != nil {
				return fmt.Errorf("writing file: %w", err)
			}
			a.logger.LogLine("formatted", filename)
		}
	default:
		_, err := io.WriteString(a.stdout, formatted)
		return err
	}
	return nil
}

// showDiff displays a simple line-by-line diff between original and
// formatted content
func showDiff(w io.Writer, filename, original, formatted string) {
	fmt.Fprintf(w, "diff %s\n", filename)

	origLines := strings.Split(original, "\n")
	fmtLines := strings.Split(formatted, "\n")

	for i := range max(len(origLines), len(fmtLines)) {
		origLine := ""
		fmtLine := ""
		if i < len(origLines) {
			origLine = origLines[i]
		}
		if i < len(fmtLines) {
			fmtLine = fmtLines[i]
		}

		if origLine != fmtLine {
			if origLine != "" {
				fmt.Fprintf(w, "-%d: %s\n", i+1, origLine)
			}
			if fmtLine != "" {
				fmt.Fprintf(w, "+%d: %s\n", i+1, fmtLine)
			}
		}
	}
}
