package parser

import (
	"github.com/nihei9/atnpredict/atn"
	"github.com/nihei9/atnpredict/atn/gss"
)

// canDropLoopEntryEdge implements the loop-entry pruning: at a
// STAR_LOOP_ENTRY that decides among a left-recursive rule's
// alternatives, the loop-back edge (the decision's first transition) can
// be skipped when every return address in ctxStack is guaranteed to come
// straight back here (or to the associated star block's end) without
// passing through any other decision -- so re-entering the loop from
// that address can never discover a new alternative.
func canDropLoopEntryEdge(a *atn.ATN, p *atn.State, ctxStack *gss.Context) bool {
	if !p.IsPrecedenceDecision || ctxStack == nil || ctxStack.IsEmpty() || ctxStack.HasEmptyPath() {
		return false
	}
	n := ctxStack.Size()
	for i := 0; i < n; i++ {
		rs := ctxStack.GetReturnState(i)
		returnState := a.States[rs]
		if returnState.RuleIndex != p.RuleIndex {
			return false
		}
	}
	if len(p.Transitions) == 0 {
		return false
	}
	decisionStart := p.Transitions[0].Target()
	var blockEnd *atn.State
	if decisionStart != nil {
		blockEnd = decisionStart.EndState
	}

	for i := 0; i < n; i++ {
		rs := ctxStack.GetReturnState(i)
		returnState := a.States[rs]
		if len(returnState.Transitions) != 1 || !returnState.Transitions[0].IsEpsilon() {
			return false
		}
		target := returnState.Transitions[0].Target()
		switch {
		case returnState.Kind == atn.StateBlockEnd && target == p:
		case returnState == blockEnd:
		case target == blockEnd:
		// target is itself a block-end whose own single epsilon edge
		// chains back to p, as in a nested alternative's block closing
		// before the outer loop entry does.
		case target.Kind == atn.StateBlockEnd && len(target.Transitions) == 1 && target.Transitions[0].IsEpsilon() && target.Transitions[0].Target() == p:
		default:
			return false
		}
	}
	return true
}
