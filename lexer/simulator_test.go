package lexer

import (
	"testing"

	"github.com/nihei9/atnpredict/atn"
)

// buildTestATN wires a two-rule lexer ATN: rule 0 matches "a" (token
// type 10), rule 1 matches "ab" (token type 20). The mode decision
// enters both rule starts directly, mirroring how a real lexer ATN's
// TOKENS_START state fans out to its rules.
func buildTestATN() *atn.ATN {
	modeStart := &atn.State{StateNumber: 0, Kind: atn.StateTokensStart}

	ruleAStart := &atn.State{StateNumber: 1, RuleIndex: 0, Kind: atn.StateRuleStart}
	ruleAMid := &atn.State{StateNumber: 2, RuleIndex: 0}
	ruleAStop := &atn.State{StateNumber: 3, RuleIndex: 0, Kind: atn.StateRuleStop}

	ruleABStart := &atn.State{StateNumber: 4, RuleIndex: 1, Kind: atn.StateRuleStart}
	ruleABMid1 := &atn.State{StateNumber: 5, RuleIndex: 1}
	ruleABMid2 := &atn.State{StateNumber: 6, RuleIndex: 1}
	ruleABStop := &atn.State{StateNumber: 7, RuleIndex: 1, Kind: atn.StateRuleStop}

	modeStart.AddTransition(atn.NewRuleTransition(ruleAStart, 0, 0, modeStart))
	modeStart.AddTransition(atn.NewRuleTransition(ruleABStart, 1, 0, modeStart))

	ruleAStart.AddTransition(atn.NewAtomTransition(ruleAMid, 'a'))
	ruleAMid.AddTransition(atn.NewEpsilonTransition(ruleAStop))

	ruleABStart.AddTransition(atn.NewAtomTransition(ruleABMid1, 'a'))
	ruleABMid1.AddTransition(atn.NewAtomTransition(ruleABMid2, 'b'))
	ruleABMid2.AddTransition(atn.NewEpsilonTransition(ruleABStop))

	states := []*atn.State{modeStart, ruleAStart, ruleAMid, ruleAStop, ruleABStart, ruleABMid1, ruleABMid2, ruleABStop}

	a := &atn.ATN{
		GrammarType:      atn.GrammarLexer,
		MaxTokenType:     127,
		States:           states,
		RuleToStartState: []*atn.State{ruleAStart, ruleABStart},
		RuleToStopState:  []*atn.State{ruleAStop, ruleABStop},
		RuleToTokenType:  []int{10, 20},
		ModeToStartState: []*atn.State{modeStart},
	}
	return a
}

func TestSimulatorLongestMatchPrefersLongerRule(t *testing.T) {
	a := buildTestATN()
	sim := NewSimulator(a, nil)

	m, err := sim.Match(NewRuneStreamFromString("ab"), 0)
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if m.TokenType != 20 {
		t.Fatalf("TokenType = %d, want 20 (longest match AB)", m.TokenType)
	}
}

func TestSimulatorMatchesShorterRuleWhenLongerFails(t *testing.T) {
	a := buildTestATN()
	sim := NewSimulator(a, nil)

	input := NewRuneStreamFromString("ac")
	m, err := sim.Match(input, 0)
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if m.TokenType != 10 {
		t.Fatalf("TokenType = %d, want 10 (rule A)", m.TokenType)
	}
	if input.Index() != 1 {
		t.Fatalf("input left at %d, want 1 (consumed only 'a')", input.Index())
	}
}

func TestSimulatorNoViableAlt(t *testing.T) {
	a := buildTestATN()
	sim := NewSimulator(a, nil)

	_, err := sim.Match(NewRuneStreamFromString("xyz"), 0)
	if err == nil {
		t.Fatal("expected a no-viable-alternative error")
	}
}

func TestSimulatorReusesDFAAcrossCalls(t *testing.T) {
	a := buildTestATN()
	sim := NewSimulator(a, nil)

	input := NewRuneStreamFromString("aa")
	if _, err := sim.Match(input, 0); err != nil {
		t.Fatalf("first match failed: %v", err)
	}
	if _, err := sim.Match(input, 0); err != nil {
		t.Fatalf("second match failed: %v", err)
	}

	d := sim.dfaFor(0)
	s0 := d.GetParserStartState(0)
	if s0 == nil {
		t.Fatal("expected a cached DFA start state after matching")
	}
}

func TestSimulatorEOFAtStart(t *testing.T) {
	a := buildTestATN()
	sim := NewSimulator(a, nil)

	m, err := sim.Match(NewRuneStreamFromString(""), 0)
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if m.TokenType != atn.EOF {
		t.Fatalf("TokenType = %d, want EOF", m.TokenType)
	}
}
