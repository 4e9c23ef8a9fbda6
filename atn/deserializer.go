package atn

import (
	"github.com/nihei9/atnpredict/collection"
	"github.com/nihei9/atnpredict/errs"
)

// SerializedVersion is the wire-format version this deserializer accepts
// (§6 field 1). Deserialize rejects any other version with an
// UnsupportedOperation, per §4.7.
const SerializedVersion = 4

// transitionKind mirrors the wire encoding of §6 field 10's `type`.
type transitionKind int

const (
	transEpsilon transitionKind = iota + 1
	transRange
	transRule
	transPredicate
	transAtom
	transAction
	transSet
	transNotSet
	transWildcard
	transPrecedence
)

const invalidW = 0xFFFF

// word16ToIndex decodes the §6 "0xFFFF means invalid index" convention.
func word16ToIndex(w int) int {
	if w == invalidW {
		return InvalidIndex
	}
	return w
}

// reader walks a flat slice of 16-bit code units, as the wire format is
// defined (§6: "array of 16-bit unsigned code units").
type reader struct {
	data []int
	pos  int
}

func (r *reader) next() int {
	v := r.data[r.pos]
	r.pos++
	return v
}

// Deserialize builds an ATN from a wire image per §6. data holds one int
// per 16-bit code unit (already widened so callers don't have to reason
// about sign extension); a caller reading a literal uint16 stream should
// widen each unit with int(w) before calling this.
func Deserialize(data []int) (*ATN, error) {
	r := &reader{data: data}

	version := r.next()
	if version != SerializedVersion {
		return nil, errs.NewUnsupportedOperation("unsupported ATN serialized version: %v", version)
	}

	a := &ATN{
		GrammarType:     GrammarType(r.next()),
		StateToDecision: map[int]int{},
	}
	a.MaxTokenType = r.next()

	if err := readStates(r, a); err != nil {
		return nil, err
	}
	if err := readNonGreedyStates(r, a); err != nil {
		return nil, err
	}
	if err := readPrecedenceStates(r, a); err != nil {
		return nil, err
	}
	if err := readRules(r, a); err != nil {
		return nil, err
	}
	if err := readModes(r, a); err != nil {
		return nil, err
	}

	sets16, err := readSetTable(r, false)
	if err != nil {
		return nil, err
	}
	sets32, err := readSetTable(r, true)
	if err != nil {
		return nil, err
	}
	sets := append(sets16, sets32...)

	if err := readEdges(r, a, sets); err != nil {
		return nil, err
	}
	if err := readDecisions(r, a); err != nil {
		return nil, err
	}
	if a.GrammarType == GrammarLexer {
		if err := readLexerActions(r, a); err != nil {
			return nil, err
		}
	}

	markPrecedenceDecisions(a)

	return a, nil
}

func readStates(r *reader, a *ATN) error {
	nstates := r.next()
	a.States = make([]*State, nstates)
	loopBackFor := map[int]int{}
	endStateFor := map[int]int{}

	for i := 0; i < nstates; i++ {
		kindWord := r.next()
		if StateKind(kindWord) == StateInvalid {
			a.States[i] = nil
			continue
		}
		s := &State{StateNumber: i, Kind: StateKind(kindWord)}
		ruleIndex := word16ToIndex(r.next())
		s.RuleIndex = ruleIndex

		switch s.Kind {
		case StateLoopEnd:
			loopBackFor[i] = r.next()
		case StateBlockStart, StatePlusBlockStart, StateStarBlockStart:
			endStateFor[i] = r.next()
		}
		a.States[i] = s
	}

	for state, loopBack := range loopBackFor {
		a.States[state].LoopBackState = a.States[loopBack]
	}
	for state, end := range endStateFor {
		a.States[state].EndState = a.States[end]
		a.States[end].StartState = a.States[state]
	}
	return nil
}

func readNonGreedyStates(r *reader, a *ATN) error {
	n := r.next()
	for i := 0; i < n; i++ {
		st := r.next()
		if s := a.States[st]; s != nil {
			s.NonGreedy = true
		}
	}
	return nil
}

func readPrecedenceStates(r *reader, a *ATN) error {
	n := r.next()
	a.leftRecursiveRules = make(map[int]bool, n)
	for i := 0; i < n; i++ {
		st := r.next()
		if s := a.States[st]; s != nil {
			a.leftRecursiveRules[s.RuleIndex] = true
		}
	}
	return nil
}

func readRules(r *reader, a *ATN) error {
	nrules := r.next()
	a.RuleToStartState = make([]*State, nrules)
	for i := 0; i < nrules; i++ {
		start := r.next()
		a.RuleToStartState[i] = a.States[start]
		if a.GrammarType == GrammarLexer {
			if a.RuleToTokenType == nil {
				a.RuleToTokenType = make([]int, nrules)
			}
			a.RuleToTokenType[i] = word16ToIndex(r.next())
		}
	}

	a.RuleToStopState = make([]*State, nrules)
	for _, s := range a.States {
		if s != nil && s.Kind == StateRuleStop {
			a.RuleToStopState[s.RuleIndex] = s
		}
	}
	return nil
}

func readModes(r *reader, a *ATN) error {
	n := r.next()
	a.ModeToStartState = make([]*State, n)
	for i := 0; i < n; i++ {
		a.ModeToStartState[i] = a.States[r.next()]
	}
	return nil
}

func readSetTable(r *reader, wide bool) ([]*collection.IntervalSet, error) {
	n := r.next()
	sets := make([]*collection.IntervalSet, n)
	for i := 0; i < n; i++ {
		nintervals := r.next()
		containsEOF := r.next() != 0
		ivs := make([]collection.Interval, 0, nintervals+1)
		if containsEOF {
			ivs = append(ivs, collection.Interval{Start: EOF, Stop: EOF})
		}
		for j := 0; j < nintervals; j++ {
			lo := r.next()
			hi := r.next()
			ivs = append(ivs, collection.Interval{Start: lo, Stop: hi})
		}
		sets[i] = collection.NewIntervalSetFromPairs(ivs)
	}
	return sets, nil
}

func readEdges(r *reader, a *ATN, sets []*collection.IntervalSet) error {
	nedges := r.next()
	for i := 0; i < nedges; i++ {
		src := r.next()
		trg := r.next()
		kind := transitionKind(r.next())
		arg1 := r.next()
		arg2 := r.next()
		arg3 := r.next()

		target := a.States[trg]
		var t Transition
		switch kind {
		case transEpsilon:
			t = NewEpsilonTransition(target)
		case transRange:
			lo, hi := arg1, arg2
			if arg3 != 0 {
				lo = EOF
			}
			t = NewRangeTransition(target, lo, hi)
		case transRule:
			// Per §6 field 10: `arg1` is the callee start state, `arg2`
			// the callee rule index, `arg3` the precedence; `trg` (the
			// wire's generic target field) carries the follow state.
			t = NewRuleTransition(a.States[arg1], arg2, arg3, target)
		case transPredicate:
			t = NewPredicateTransition(target, arg1, arg2, arg3 != 0)
		case transAtom:
			sym := arg1
			if arg3 != 0 {
				sym = EOF
			}
			t = NewAtomTransition(target, sym)
		case transAction:
			t = NewActionTransition(target, arg1, word16ToIndex(arg2), arg3 != 0)
		case transSet:
			t = NewSetTransition(target, sets[arg1])
		case transNotSet:
			t = NewNotSetTransition(target, sets[arg1])
		case transWildcard:
			t = NewWildcardTransition(target)
		case transPrecedence:
			t = NewPrecedenceTransition(target, arg1)
		default:
			return errs.NewIllegalState("unknown transition type %v on edge %v->%v", kind, src, trg)
		}
		a.States[src].AddTransition(t)
	}

	// §6 step 11: for every RULE transition, add an EPSILON from the
	// callee's RULE_STOP back to the follow state.
	for _, s := range a.States {
		if s == nil {
			continue
		}
		for _, t := range s.Transitions {
			rt, ok := t.(*RuleTransition)
			if !ok {
				continue
			}
			stop := a.RuleToStopState[rt.RuleIndex]
			ep := NewEpsilonTransition(rt.FollowState)
			if rt.Precedence == 0 && a.IsLeftRecursiveRule(rt.RuleIndex) {
				ep.OutermostPrecedenceReturn = rt.RuleIndex
			} else {
				ep.OutermostPrecedenceReturn = InvalidIndex
			}
			stop.AddTransition(ep)
		}
	}
	return nil
}

func readDecisions(r *reader, a *ATN) error {
	n := r.next()
	a.DecisionToState = make([]*State, n)
	for i := 0; i < n; i++ {
		st := r.next()
		a.DecisionToState[i] = a.States[st]
		a.StateToDecision[st] = i
	}
	return nil
}

func readLexerActions(r *reader, a *ATN) error {
	n := r.next()
	a.LexerActions = make([]LexerAction, n)
	for i := 0; i < n; i++ {
		kind := r.next()
		d1 := word16ToIndex(r.next())
		d2 := word16ToIndex(r.next())
		switch kind {
		case 0:
			a.LexerActions[i] = &ChannelAction{Channel: d1}
		case 1:
			a.LexerActions[i] = &CustomAction{RuleIndex: d1, ActionIndex: d2}
		case 2:
			a.LexerActions[i] = &ModeAction{Mode: d1}
		case 3:
			a.LexerActions[i] = &MoreAction{}
		case 4:
			a.LexerActions[i] = &PopModeAction{}
		case 5:
			a.LexerActions[i] = &PushModeAction{Mode: d1}
		case 6:
			a.LexerActions[i] = &SkipAction{}
		case 7:
			a.LexerActions[i] = &SetTypeAction{TokenType: d1}
		default:
			return errs.NewIllegalState("unknown lexer action type %v", kind)
		}
	}
	return nil
}

// markPrecedenceDecisions implements §6's post-load step: a
// STAR_LOOP_ENTRY is a precedence decision iff its rule is left-recursive
// and the entry's last transition targets a LOOP_END whose sole outgoing
// transition reaches a RULE_STOP.
func markPrecedenceDecisions(a *ATN) {
	for _, s := range a.States {
		if s == nil || s.Kind != StateStarLoopEntry {
			continue
		}
		if len(s.Transitions) == 0 {
			continue
		}
		last := s.Transitions[len(s.Transitions)-1]
		loopEnd := last.Target()
		if loopEnd == nil || loopEnd.Kind != StateLoopEnd {
			continue
		}
		if len(loopEnd.Transitions) != 1 {
			continue
		}
		if loopEnd.Transitions[0].Target().Kind != StateRuleStop {
			continue
		}
		if a.IsLeftRecursiveRule(s.RuleIndex) {
			s.IsPrecedenceDecision = true
		}
	}
}
