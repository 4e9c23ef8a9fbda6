package parser

import (
	"testing"

	"github.com/nihei9/atnpredict/atn"
	"github.com/nihei9/atnpredict/atn/config"
	"github.com/nihei9/atnpredict/atn/gss"
)

// buildShortAltCallsSubruleATN wires a two-alt decision in rule 0 where
// alt 1 calls rule 1 (a single INT, then returns) and alt 2 matches INT
// INT directly. Both alts match the first INT; only alt 2 survives a
// second.
func buildShortAltCallsSubruleATN() (a *atn.ATN, d0 *atn.State) {
	ruleStart1 := &atn.State{StateNumber: 0, RuleIndex: 1}
	ruleStop1 := &atn.State{StateNumber: 1, RuleIndex: 1, Kind: atn.StateRuleStop}
	ruleStart1.AddTransition(atn.NewAtomTransition(ruleStop1, 1))

	d0State := &atn.State{StateNumber: 2, RuleIndex: 0}
	altStart1 := &atn.State{StateNumber: 3, RuleIndex: 0}
	follow1 := &atn.State{StateNumber: 4, RuleIndex: 0}
	mainRuleStop0 := &atn.State{StateNumber: 5, RuleIndex: 0, Kind: atn.StateRuleStop}
	altStart2 := &atn.State{StateNumber: 6, RuleIndex: 0}
	mid2a := &atn.State{StateNumber: 7, RuleIndex: 0}
	mid2b := &atn.State{StateNumber: 8, RuleIndex: 0}

	d0State.AddTransition(atn.NewEpsilonTransition(altStart1))
	d0State.AddTransition(atn.NewEpsilonTransition(altStart2))

	altStart1.AddTransition(atn.NewRuleTransition(ruleStart1, 1, 0, follow1))
	follow1.AddTransition(atn.NewEpsilonTransition(mainRuleStop0))

	altStart2.AddTransition(atn.NewAtomTransition(mid2a, 1))
	mid2a.AddTransition(atn.NewAtomTransition(mid2b, 1))

	states := []*atn.State{
		ruleStart1, ruleStop1,
		d0State, altStart1, follow1, mainRuleStop0, altStart2, mid2a, mid2b,
	}
	a = &atn.ATN{
		GrammarType:      atn.GrammarParser,
		MaxTokenType:     1,
		States:           states,
		RuleToStartState: []*atn.State{d0State, ruleStart1},
		RuleToStopState:  []*atn.State{mainRuleStop0, ruleStop1},
		DecisionToState:  []*atn.State{d0State},
		StateToDecision:  map[int]int{2: 0},
	}
	return a, d0State
}

// TestReachDropsFinishedAltsRuleStopInPureSLL grounds the skippedStop
// gate: once alt 1 has already popped all the way back out to its own
// rule's RULE_STOP after one token, consuming a second token in pure
// SLL (not full context, not EOF) must drop that finished alt rather
// than resurrect it as a live candidate.
func TestReachDropsFinishedAltsRuleStopInPureSLL(t *testing.T) {
	a, d0 := buildShortAltCallsSubruleATN()
	cctx := &closureCtx{a: a, busy: map[busyKey]bool{}}

	closed0 := config.NewSet(a, false)
	for i, alt := range []int{1, 2} {
		target := d0.Transitions[i].Target()
		if err := closure(cctx, config.New(target, alt, gss.Empty), closed0, 0); err != nil {
			t.Fatalf("closure returned error: %v", err)
		}
	}

	afterFirst, err := reach(cctx, closed0, 1, false, 0)
	if err != nil {
		t.Fatalf("reach (first token) returned error: %v", err)
	}

	foundFinishedAlt1 := false
	for _, cfg := range afterFirst.Configs() {
		if cfg.State.Kind == atn.StateRuleStop && cfg.Alt == 1 {
			foundFinishedAlt1 = true
		}
	}
	if !foundFinishedAlt1 {
		t.Fatal("expected alt 1 to have already popped back out to the main rule's RULE_STOP after one token")
	}

	afterSecond, err := reach(cctx, afterFirst, 1, false, 0)
	if err != nil {
		t.Fatalf("reach (second token) returned error: %v", err)
	}

	cfgs := afterSecond.Configs()
	if len(cfgs) != 1 {
		t.Fatalf("len(cfgs) = %d, want 1: alt 1's finished RULE_STOP must be dropped, not resurrected", len(cfgs))
	}
	if cfgs[0].Alt != 2 {
		t.Fatalf("surviving alt = %d, want 2", cfgs[0].Alt)
	}
	for _, cfg := range cfgs {
		if cfg.State.Kind == atn.StateRuleStop {
			t.Fatal("a finished alt's RULE_STOP must not reappear in pure SLL on a non-EOF token")
		}
	}
}
