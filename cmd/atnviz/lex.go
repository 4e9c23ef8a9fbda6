package main

import (
	"fmt"
	"os"

	"github.com/nihei9/atnpredict/atn"
	"github.com/nihei9/atnpredict/lexer"
	"github.com/spf13/cobra"
)

var lexFlags = struct {
	mode *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "lex <atn-file> <input-file>",
		Short:   "Tokenize a text file against an ATN image",
		Example: `  atnviz lex grammar.atn src.txt`,
		Args:    cobra.ExactArgs(2),
		RunE:    runLex,
	}
	lexFlags.mode = cmd.Flags().Int("mode", 0, "lex mode to start in")
	rootCmd.AddCommand(cmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	a, err := loadATN(args[0])
	if err != nil {
		return err
	}
	if a.GrammarType != atn.GrammarLexer {
		return fmt.Errorf("%s is not a lexer ATN", args[0])
	}

	src, err := readInput(args[1])
	if err != nil {
		return err
	}

	sim := lexer.NewSimulator(a, nil)
	input := lexer.NewRuneStream(src)

	for {
		startIndex := input.Index()
		m, err := sim.Match(input, *lexFlags.mode)
		if err != nil {
			row, col := rowCol(src, startIndex)
			return fmt.Errorf("token recognition error at %v:%v: %w", row+1, col+1, err)
		}
		if m.TokenType == atn.EOF {
			fmt.Fprintln(os.Stdout, "<eof>")
			return nil
		}

		text := input.GetText(startIndex, input.Index()-1)
		row, col := rowCol(src, startIndex)
		fmt.Fprintf(os.Stdout, "%4v:%-4v type=%-4v rule=%-4v %q\n", row+1, col+1, m.TokenType, m.Rule, text)
	}
}
