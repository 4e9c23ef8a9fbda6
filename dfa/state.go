// Package dfa implements the per-decision DFA of §3/§4.6: states
// memoizing a readonly ATNConfigSet, the edges connecting them, and the
// two-lock cache that lets many goroutines share one decision's DFA
// concurrently.
package dfa

import (
	"math"

	"github.com/nihei9/atnpredict/atn/config"
	"github.com/nihei9/atnpredict/atn/semctx"
)

// PredicateAlt pairs a semantic predicate with the alternative it gates,
// §3's "predicates (ordered list of (pred, alt) pairs when multiple preds
// gate acceptance)".
type PredicateAlt struct {
	Pred semctx.Context
	Alt  int
}

// State is a DFAState (§3).
type State struct {
	StateNumber int
	Configs     *config.Set
	Edges       map[int]*State

	IsAcceptState bool
	Prediction    int
	Predicates    []PredicateAlt

	// Rule is lexer-only: the rule index that produced Prediction, set
	// alongside it when a RULE_STOP config marks this state as an
	// accept state.
	Rule int

	RequiresFullContext bool

	// LexerActionExecutor is set only on DFAStates built by the lexer
	// simulator; typed any here so the dfa package does not import lexer.
	LexerActionExecutor any

	// SuppressEdge is lexer-only: set when this state's closure contained
	// a semantic predicate, per §4.5's "suppressing the edge from s0 if
	// the initial closure contained a semantic predicate" -- the edge
	// leaving such a state must be recomputed on every visit rather than
	// cached, since a predicate's outcome can depend on lexer state the
	// DFA does not capture.
	SuppressEdge bool
}

// NewState wraps configs (not yet readonly; AddDFAState marks it so).
func NewState(configs *config.Set) *State {
	return &State{Configs: configs}
}

// Error is the distinguished ERROR DFAState sentinel (§4.6: "stateNumber
// = INT_MAX; it must not be inserted into any DFA").
var Error = &State{StateNumber: math.MaxInt32}

// configsEqual reports whether two DFAStates should be considered the
// same entry, per §3's "DFAState... deduplicated by configs equality":
// same set of (state, alt, semanticContext, context) entries regardless
// of order.
func configsEqual(a, b *config.Set) bool {
	if a == b {
		return true
	}
	if a.Len() != b.Len() {
		return false
	}
	ac, bc := a.Configs(), b.Configs()
	seen := make([]bool, len(bc))
	for _, x := range ac {
		found := false
		for j, y := range bc {
			if seen[j] {
				continue
			}
			if x.State.StateNumber == y.State.StateNumber &&
				x.Alt == y.Alt &&
				x.SemanticContext.Equals(y.SemanticContext) &&
				x.Context.Equals(y.Context) {
				seen[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
