package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(a.stdout, "brine version %s\n", Version)
			fmt.Fprintf(a.stdout, "  commit: %s\n", Commit)
			fmt.Fprintf(a.stdout, "  go:     %s\n", runtime.Version())
			return nil
		},
	}
}
