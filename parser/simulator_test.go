package parser

import (
	"testing"

	"github.com/nihei9/atnpredict/atn"
)

// sliceTokenStream is a minimal TokenStream over a fixed slice of token
// types, for driving AdaptivePredict without a real lexer.
type sliceTokenStream struct {
	tokens []int
	index  int
}

func newSliceTokenStream(tokens []int) *sliceTokenStream {
	return &sliceTokenStream{tokens: tokens}
}

func (s *sliceTokenStream) LA(k int) int {
	i := s.index + k - 1
	if i < 0 || i >= len(s.tokens) {
		return atn.EOF
	}
	return s.tokens[i]
}

func (s *sliceTokenStream) LT(k int) *Token    { return nil }
func (s *sliceTokenStream) Index() int         { return s.index }
func (s *sliceTokenStream) Mark() int          { return s.index }
func (s *sliceTokenStream) Release(marker int) {}
func (s *sliceTokenStream) Seek(index int)     { s.index = index }
func (s *sliceTokenStream) Consume() error     { s.index++; return nil }
func (s *sliceTokenStream) Size() int          { return len(s.tokens) }

// buildAmbiguousPrefixATN wires a one-decision, one-rule parser ATN whose
// two alternatives share a first token but diverge on the second: alt 1
// is the single token A (token type 1), alt 2 is the two-token sequence
// A B (token types 1, 2).
func buildAmbiguousPrefixATN() *atn.ATN {
	d0 := &atn.State{StateNumber: 0, RuleIndex: 0, Kind: atn.StateBlockStart}
	altStart1 := &atn.State{StateNumber: 1, RuleIndex: 0}
	mid1 := &atn.State{StateNumber: 2, RuleIndex: 0}
	altStart2 := &atn.State{StateNumber: 3, RuleIndex: 0}
	mid2a := &atn.State{StateNumber: 4, RuleIndex: 0}
	mid2b := &atn.State{StateNumber: 5, RuleIndex: 0}
	blockEnd := &atn.State{StateNumber: 6, RuleIndex: 0, Kind: atn.StateBlockEnd}
	ruleStop := &atn.State{StateNumber: 7, RuleIndex: 0, Kind: atn.StateRuleStop}

	d0.AddTransition(atn.NewEpsilonTransition(altStart1))
	d0.AddTransition(atn.NewEpsilonTransition(altStart2))

	altStart1.AddTransition(atn.NewAtomTransition(mid1, 1))
	mid1.AddTransition(atn.NewEpsilonTransition(blockEnd))

	altStart2.AddTransition(atn.NewAtomTransition(mid2a, 1))
	mid2a.AddTransition(atn.NewAtomTransition(mid2b, 2))
	mid2b.AddTransition(atn.NewEpsilonTransition(blockEnd))

	blockEnd.AddTransition(atn.NewEpsilonTransition(ruleStop))

	d0.EndState = blockEnd
	blockEnd.StartState = d0

	states := []*atn.State{d0, altStart1, mid1, altStart2, mid2a, mid2b, blockEnd, ruleStop}

	return &atn.ATN{
		GrammarType:      atn.GrammarParser,
		MaxTokenType:     2,
		States:           states,
		RuleToStartState: []*atn.State{d0},
		RuleToStopState:  []*atn.State{ruleStop},
		DecisionToState:  []*atn.State{d0},
		StateToDecision:  map[int]int{0: 0},
	}
}

func TestAdaptivePredictDivergesOnSecondToken(t *testing.T) {
	a := buildAmbiguousPrefixATN()
	sim := NewSimulator(a, nil)

	input := newSliceTokenStream([]int{1, 2})
	alt, err := sim.AdaptivePredict(input, 0, nil, 0)
	if err != nil {
		t.Fatalf("AdaptivePredict returned error: %v", err)
	}
	if alt != 2 {
		t.Fatalf("alt = %d, want 2 (A B matches the longer alternative)", alt)
	}
	if input.Index() != 0 {
		t.Fatalf("input left at %d, want 0 (prediction must not consume)", input.Index())
	}
}

func TestAdaptivePredictShorterAltWinsWhenLongerDoesNotMatch(t *testing.T) {
	a := buildAmbiguousPrefixATN()
	sim := NewSimulator(a, nil)

	input := newSliceTokenStream([]int{1, 1})
	alt, err := sim.AdaptivePredict(input, 0, nil, 0)
	if err != nil {
		t.Fatalf("AdaptivePredict returned error: %v", err)
	}
	if alt != 1 {
		t.Fatalf("alt = %d, want 1 (only the single-token alternative matches A A)", alt)
	}
}

func TestAdaptivePredictNoViableAlt(t *testing.T) {
	a := buildAmbiguousPrefixATN()
	sim := NewSimulator(a, nil)

	input := newSliceTokenStream([]int{99})
	_, err := sim.AdaptivePredict(input, 0, nil, 0)
	if err == nil {
		t.Fatal("expected a no-viable-alternative error")
	}
}

func TestAdaptivePredictReusesDFAAcrossCalls(t *testing.T) {
	a := buildAmbiguousPrefixATN()
	sim := NewSimulator(a, nil)

	if _, err := sim.AdaptivePredict(newSliceTokenStream([]int{1, 2}), 0, nil, 0); err != nil {
		t.Fatalf("first predict failed: %v", err)
	}
	if _, err := sim.AdaptivePredict(newSliceTokenStream([]int{1, 1}), 0, nil, 0); err != nil {
		t.Fatalf("second predict failed: %v", err)
	}

	d := sim.Cache.Get(a, 0)
	if d.GetParserStartState(0) == nil {
		t.Fatal("expected a cached DFA start state after predicting")
	}
}
