package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "atnviz",
	Short: "Drive an ATN image's lexer and parser simulators against a text file",
	Long: `atnviz loads a precompiled ATN image and exercises its runtime
against a plain text input:
- lex tokenizes the input and prints the resulting token stream.
- parse drives adaptive prediction at a single decision and prints the
  predicted alternative sequence along with any ambiguity or
  context-sensitivity reports.

It does not parse grammar source and does not generate code; it only
consumes an already-serialized ATN.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
