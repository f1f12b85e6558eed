package main

import (
	"github.com/spf13/cobra"

	"github.com/sambeau/brine/pkg/brine/format"
	"github.com/sambeau/brine/pkg/brine/repl"
)

func newReplCmd(a *app) *cobra.Command {
	var formatName string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse input interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := formatName
			if name == "" {
				name = a.cfg.Output.Format
			}
			f, err := format.ParseFormat(name)
			if err != nil {
				return err
			}

			return repl.Start(a.stdin, a.stdout, repl.Options{
				Prompt:      a.cfg.REPL.Prompt,
				History:     a.cfg.REPL.History,
				Format:      f,
				Diagnostics: a.diagnosticOptions(a.stdout),
				Version:     Version,
			})
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "", "output format (default from config)")
	return cmd
}
