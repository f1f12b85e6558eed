package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Report syntax errors without printing the tree",
		Long: `Check parses each file and reports its diagnostics. It prints nothing for
clean input and exits with status 1 if any file has errors.

With --json each diagnostic is written to stdout as one JSON object per line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := false
			for _, file := range inputs(args) {
				u, err := a.parse(file)
				if err != nil {
					return err
				}
				if !u.HasErrors() {
					a.logger.LogLine(u.Name + ": ok")
					continue
				}
				failed = true

				if !asJSON {
					if err := a.diagnostics(a.stderr).Print(a.stderr, u.Source, u.Errors); err != nil {
						return err
					}
					continue
				}
				for _, e := range u.Errors {
					b, err := e.ToJSON()
					if err != nil {
						return err
					}
					fmt.Fprintf(a.stdout, "%s\n", b)
				}
			}
			if failed {
				return errSyntax
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "write diagnostics to stdout as JSON lines")
	return cmd
}
