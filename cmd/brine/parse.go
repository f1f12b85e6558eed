package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sambeau/brine/pkg/brine/format"
)

func newParseCmd(a *app) *cobra.Command {
	var formatName string

	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Print the syntax tree of each file",
		Long: `Parse prints the syntax tree of each file, or of standard input when no
file (or "-") is given. Diagnostics go to stderr; whatever could be parsed
is still printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := formatName
			if name == "" {
				name = a.cfg.Output.Format
			}
			f, err := format.ParseFormat(name)
			if err != nil {
				return err
			}

			files := inputs(args)
			failed := false
			for _, file := range files {
				u, err := a.parse(file)
				if err != nil {
					return err
				}
				if len(files) > 1 {
					fmt.Fprintf(a.stdout, "# %s\n", u.Name)
				}
				if err := a.report(u); err != nil {
					if !errors.Is(err, errSyntax) {
						return err
					}
					failed = true
				}
				if err := format.Render(a.stdout, f, u.Program); err != nil {
					return err
				}
			}
			if failed {
				return errSyntax
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "", "output format: tree, inline, source, yaml, json or spew (default from config)")
	return cmd
}
