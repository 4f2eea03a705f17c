// Command soulc is the soul compiler's CLI: lex + parse + compile a
// source file, optionally printing the AST and/or IR along the way.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is stamped by the release process; left as a plain default here
// since this module has no build pipeline wiring a value in via -ldflags.
var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "soulc",
		Short: "Compiler for the soul language",
	}

	root.AddCommand(newCompileCmd())
	root.AddCommand(newVersionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the soulc version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}
