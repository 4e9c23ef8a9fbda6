package atn

import "os"

// EOF is the sentinel symbol value for end-of-input, used by both the
// parser (token type) and lexer (character) simulators.
const EOF = -1

// DisableLoopOptimization turns off the closure's loop-entry pruning for
// left-recursive rules (§4.3), for A/B correctness testing against the
// unoptimized closure. Read once at package init, since it is a
// debugging toggle rather than a per-call option.
var DisableLoopOptimization = os.Getenv("ATNPREDICT_DISABLE_LOOP_OPTIMIZATION") != ""

// GrammarType distinguishes a lexer ATN image from a parser ATN image
// (§6 wire field 2).
type GrammarType int

const (
	GrammarLexer GrammarType = iota
	GrammarParser
)

// ATN is the directed multigraph of §3: states, their outgoing
// transitions, and the per-rule/per-decision/per-mode indices needed to
// enter it. It is immutable after Deserialize returns, except for the
// per-state lazy cache (§5) and the DFA cache a caller may attach
// alongside it (dfa.Cache; the ATN package itself holds no DFA state).
type ATN struct {
	GrammarType  GrammarType
	MaxTokenType int

	States []*State

	RuleToStartState []*State
	RuleToStopState  []*State

	// RuleToTokenType maps a lexer rule index to the token type it
	// produces. Lexer-only.
	RuleToTokenType []int

	// ModeToStartState maps a lex mode index to its TOKENS_START state.
	// Lexer-only.
	ModeToStartState []*State

	// DecisionToState is ordered; its index is the decision number a
	// DFA/Cache is keyed by.
	DecisionToState []*State

	// StateToDecision is the inverse of DecisionToState, by state number.
	StateToDecision map[int]int

	LexerActions []LexerAction

	// leftRecursiveRules is the set of rule indices the wire format (§6
	// field 6) marks as left-recursive rule starts. It drives both the
	// RULE_STOP epsilon's OutermostPrecedenceReturn (§6 step 11) and the
	// STAR_LOOP_ENTRY.IsPrecedenceDecision post-load marking.
	leftRecursiveRules map[int]bool
}

// IsLeftRecursiveRule reports whether ruleIndex was marked left-recursive
// on the wire (§6 field 6).
func (a *ATN) IsLeftRecursiveRule(ruleIndex int) bool {
	return a.leftRecursiveRules[ruleIndex]
}

// IsNonGreedyState reports whether s was marked non-greedy on the wire
// (§6 field 5).
func (a *ATN) IsNonGreedyState(s *State) bool {
	return s != nil && s.NonGreedy
}

// DecisionCount returns the number of decisions in the ATN.
func (a *ATN) DecisionCount() int {
	return len(a.DecisionToState)
}

// DecisionState returns the ATN state a decision's DFA is rooted at.
func (a *ATN) DecisionState(decision int) *State {
	return a.DecisionToState[decision]
}

// NextTokensWithinRule returns the set of symbols that can immediately
// follow state s without leaving its rule, computing it once and caching
// it per §5. The compute function is supplied by the caller (parser or
// lexer simulator) since what counts as "the vocabulary" differs between
// them.
func (s *State) NextTokensWithinRule(compute func() any) any {
	return s.cachedNextTokenWithinRule(compute)
}
