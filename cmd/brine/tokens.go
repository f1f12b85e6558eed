package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sambeau/brine/pkg/brine/errors"
	"github.com/sambeau/brine/pkg/brine/format"
	"github.com/sambeau/brine/pkg/brine/lexer"
)

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "List the tokens of a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := inputs(args)[0]

			var src []byte
			var err error
			if name == "-" {
				src, err = io.ReadAll(a.stdin)
				name = "<stdin>"
			} else {
				src, err = os.ReadFile(name)
			}
			if err != nil {
				return fmt.Errorf("reading %s: %w", name, err)
			}

			toks, errs := lexer.Tokenize(string(src))
			a.logger.LogLine(fmt.Sprintf("tokenized %s: %d tokens", name, len(toks)))
			if _, err := io.WriteString(a.stdout, format.Tokens(string(src), toks)); err != nil {
				return err
			}

			if len(errs) == 0 {
				return nil
			}
			stamped := make([]*errors.BrineError, len(errs))
			for i, e := range errs {
				stamped[i] = e.WithSource(string(src)).WithFile(name)
			}
			if err := a.diagnostics(a.stderr).Print(a.stderr, string(src), stamped); err != nil {
				return err
			}
			return errSyntax
		},
	}
}
