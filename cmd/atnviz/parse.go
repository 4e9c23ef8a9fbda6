package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nihei9/atnpredict/atn"
	"github.com/nihei9/atnpredict/parser"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	decision *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <atn-file> <input-file>",
		Short:   "Drive adaptive prediction at one decision against a synthetic token source",
		Example: `  atnviz parse grammar.atn tokens.txt --decision 0`,
		Args:    cobra.ExactArgs(2),
		RunE:    runParse,
	}
	parseFlags.decision = cmd.Flags().Int("decision", 0, "decision number to predict at")
	rootCmd.AddCommand(cmd)
}

// syntheticTokenSource turns a whitespace-separated list of token type
// numbers into a TokenSource: atnviz has no grammar to lex the input
// file's text against, so the input file is itself the token sequence,
// one vocabulary symbol per field. It reports EOF forever once
// exhausted, as a real token source would after the end of input.
type syntheticTokenSource struct {
	types []int
	index int
}

func newSyntheticTokenSource(fields []string) (*syntheticTokenSource, error) {
	types := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("token %v (%q) is not an integer token type: %w", i, f, err)
		}
		types[i] = n
	}
	return &syntheticTokenSource{types: types}, nil
}

func (s *syntheticTokenSource) NextToken() (*parser.Token, error) {
	if s.index >= len(s.types) {
		return &parser.Token{Type: atn.EOF}, nil
	}
	t := s.types[s.index]
	s.index++
	return &parser.Token{Type: t, Text: strconv.Itoa(t)}, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	a, err := loadATN(args[0])
	if err != nil {
		return err
	}
	if a.GrammarType != atn.GrammarParser {
		return fmt.Errorf("%s is not a parser ATN", args[0])
	}
	if *parseFlags.decision < 0 || *parseFlags.decision >= len(a.DecisionToState) {
		return fmt.Errorf("decision %v is out of range [0, %v)", *parseFlags.decision, len(a.DecisionToState))
	}

	raw, err := readInput(args[1])
	if err != nil {
		return err
	}
	source, err := newSyntheticTokenSource(strings.Fields(string(raw)))
	if err != nil {
		return err
	}

	sim := parser.NewSimulator(a, nil)
	var ambiguities []parser.AmbiguityEvent
	var ctxSens []parser.ContextSensitivityEvent
	sim.OnAmbiguity = func(e parser.AmbiguityEvent) { ambiguities = append(ambiguities, e) }
	sim.OnContextSensitivity = func(e parser.ContextSensitivityEvent) { ctxSens = append(ctxSens, e) }

	stream := parser.NewBufferedTokenStream(source)
	decision := *parseFlags.decision

	var alts []int
	for stream.LA(1) != atn.EOF {
		alt, err := sim.AdaptivePredict(stream, decision, nil, 0)
		if err != nil {
			return fmt.Errorf("prediction failed at token %v: %w", stream.Index(), err)
		}
		alts = append(alts, alt)
		if err := stream.Consume(); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stdout, "alts:")
	for _, alt := range alts {
		fmt.Fprintf(os.Stdout, " %v", alt)
	}
	fmt.Fprintln(os.Stdout)

	for _, e := range ambiguities {
		fmt.Fprintf(os.Stdout, "ambiguity: decision %v, tokens [%v, %v], alts %v, exact=%v\n", e.Decision, e.StartIndex, e.StopIndex, e.Alts, e.ExactMatch)
	}
	for _, e := range ctxSens {
		fmt.Fprintf(os.Stdout, "context sensitivity: decision %v, tokens [%v, %v]\n", e.Decision, e.StartIndex, e.StopIndex)
	}

	d := sim.Cache.Get(a, decision)
	fmt.Fprintf(os.Stdout, "dfa states: %v\n", d.Len())

	return nil
}
