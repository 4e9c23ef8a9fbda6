package atn

import "github.com/nihei9/atnpredict/collection"

// Transition is the tagged-union family of §3: EPSILON, RULE, PREDICATE,
// PRECEDENCE, and ACTION are epsilon (no input consumed); ATOM, RANGE, SET,
// NOT_SET, and WILDCARD consume one symbol. Modeled as an interface with a
// closed set of concrete types rather than a single struct with a kind tag,
// per the Open Question decision in DESIGN.md.
type Transition interface {
	// Target is the state this transition leads to.
	Target() *State
	// IsEpsilon reports whether the transition consumes no input.
	IsEpsilon() bool
	// Matches reports whether the transition consumes symbol v, given the
	// vocabulary bounds the caller is matching within (the full vocabulary
	// for a parser, [MIN_CHAR, MAX_CHAR] for a lexer).
	Matches(v, minVocab, maxVocab int) bool
}

type baseTransition struct {
	target *State
}

func (t *baseTransition) Target() *State { return t.target }

// EpsilonTransition is a plain epsilon edge, optionally marking the
// outermost-precedence return point a RULE_STOP epsilon represents
// (§4.3's "when the rule we returned from is the left-recursive start
// rule..."; §6 step 11).
type EpsilonTransition struct {
	baseTransition
	OutermostPrecedenceReturn int // rule index, or InvalidIndex
}

func NewEpsilonTransition(target *State) *EpsilonTransition {
	return &EpsilonTransition{baseTransition{target}, InvalidIndex}
}

func (t *EpsilonTransition) IsEpsilon() bool { return true }
func (t *EpsilonTransition) Matches(v, minV, maxV int) bool { return false }

// RuleTransition represents a call into another rule: it pushes
// FollowState onto the prediction-context stack and targets the callee's
// RULE_START.
type RuleTransition struct {
	baseTransition
	RuleIndex   int
	Precedence  int
	FollowState *State
}

func NewRuleTransition(ruleStart *State, ruleIndex, precedence int, followState *State) *RuleTransition {
	return &RuleTransition{baseTransition{ruleStart}, ruleIndex, precedence, followState}
}

func (t *RuleTransition) IsEpsilon() bool { return true }
func (t *RuleTransition) Matches(v, minV, maxV int) bool { return false }

// PredicateTransition gates closure on a user semantic predicate
// sempred(ctx, Rule, PredIndex). CtxDependent marks predicates that need
// the caller's outer context rather than a null context (§4.4).
type PredicateTransition struct {
	baseTransition
	Rule         int
	PredIndex    int
	CtxDependent bool
}

func NewPredicateTransition(target *State, rule, predIndex int, ctxDependent bool) *PredicateTransition {
	return &PredicateTransition{baseTransition{target}, rule, predIndex, ctxDependent}
}

func (t *PredicateTransition) IsEpsilon() bool { return true }
func (t *PredicateTransition) Matches(v, minV, maxV int) bool { return false }

// PrecedenceTransition gates closure on precpred(ctx, Precedence); it
// appears only at the start of a left-recursive rule's alternatives.
type PrecedenceTransition struct {
	baseTransition
	Precedence int
}

func NewPrecedenceTransition(target *State, precedence int) *PrecedenceTransition {
	return &PrecedenceTransition{baseTransition{target}, precedence}
}

func (t *PrecedenceTransition) IsEpsilon() bool { return true }
func (t *PrecedenceTransition) Matches(v, minV, maxV int) bool { return false }

// ActionTransition marks a lexer/parser action; during prediction actions
// are never evaluated (§4.3), only collected (lexer, into a
// LexerActionExecutor).
type ActionTransition struct {
	baseTransition
	Rule         int
	ActionIndex  int // InvalidIndex if none
	CtxDependent bool
}

func NewActionTransition(target *State, rule, actionIndex int, ctxDependent bool) *ActionTransition {
	return &ActionTransition{baseTransition{target}, rule, actionIndex, ctxDependent}
}

func (t *ActionTransition) IsEpsilon() bool { return true }
func (t *ActionTransition) Matches(v, minV, maxV int) bool { return false }

// AtomTransition matches exactly one symbol.
type AtomTransition struct {
	baseTransition
	Symbol int
}

func NewAtomTransition(target *State, symbol int) *AtomTransition {
	return &AtomTransition{baseTransition{target}, symbol}
}

func (t *AtomTransition) IsEpsilon() bool { return false }
func (t *AtomTransition) Matches(v, minV, maxV int) bool {
	return v == t.Symbol
}

// RangeTransition matches a closed [Lo, Hi] range of symbols.
type RangeTransition struct {
	baseTransition
	Lo, Hi int
}

func NewRangeTransition(target *State, lo, hi int) *RangeTransition {
	return &RangeTransition{baseTransition{target}, lo, hi}
}

func (t *RangeTransition) IsEpsilon() bool { return false }
func (t *RangeTransition) Matches(v, minV, maxV int) bool {
	return v >= t.Lo && v <= t.Hi
}

// SetTransition matches membership in an IntervalSet.
type SetTransition struct {
	baseTransition
	Set *collection.IntervalSet
}

func NewSetTransition(target *State, set *collection.IntervalSet) *SetTransition {
	return &SetTransition{baseTransition{target}, set}
}

func (t *SetTransition) IsEpsilon() bool { return false }
func (t *SetTransition) Matches(v, minV, maxV int) bool {
	return t.Set.Contains(v)
}

// NotSetTransition matches non-membership in an IntervalSet, within
// [minVocab, maxVocab].
type NotSetTransition struct {
	baseTransition
	Set *collection.IntervalSet
}

func NewNotSetTransition(target *State, set *collection.IntervalSet) *NotSetTransition {
	return &NotSetTransition{baseTransition{target}, set}
}

func (t *NotSetTransition) IsEpsilon() bool { return false }
func (t *NotSetTransition) Matches(v, minV, maxV int) bool {
	if v < minV || v > maxV {
		return false
	}
	return !t.Set.Contains(v)
}

// WildcardTransition matches any symbol within [minVocab, maxVocab].
type WildcardTransition struct {
	baseTransition
}

func NewWildcardTransition(target *State) *WildcardTransition {
	return &WildcardTransition{baseTransition{target}}
}

func (t *WildcardTransition) IsEpsilon() bool { return false }
func (t *WildcardTransition) Matches(v, minV, maxV int) bool {
	return v >= minV && v <= maxV
}

var (
	_ Transition = &EpsilonTransition{}
	_ Transition = &RuleTransition{}
	_ Transition = &PredicateTransition{}
	_ Transition = &PrecedenceTransition{}
	_ Transition = &ActionTransition{}
	_ Transition = &AtomTransition{}
	_ Transition = &RangeTransition{}
	_ Transition = &SetTransition{}
	_ Transition = &NotSetTransition{}
	_ Transition = &WildcardTransition{}
)
