package lexer

import (
	"sync"
	"unicode"

	"github.com/nihei9/atnpredict/atn"
	"github.com/nihei9/atnpredict/atn/config"
	"github.com/nihei9/atnpredict/atn/gss"
	"github.com/nihei9/atnpredict/dfa"
	"github.com/nihei9/atnpredict/errs"
)

// Simulator drives the longest-match DFA loop of §4.5 over a lexer ATN.
// One DFA is kept per lex mode, lazily built, mirroring the parser
// simulator's per-decision DFA cache.
type Simulator struct {
	ATN       *atn.ATN
	Evaluator Evaluator

	mu        sync.Mutex
	dfaByMode []*dfa.DFA
}

// NewSimulator returns a Simulator over a. ev may be nil if the grammar
// has no lexer predicates.
func NewSimulator(a *atn.ATN, ev Evaluator) *Simulator {
	return &Simulator{ATN: a, Evaluator: ev, dfaByMode: make([]*dfa.DFA, len(a.ModeToStartState))}
}

func (s *Simulator) dfaFor(mode int) *dfa.DFA {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dfaByMode[mode] == nil {
		s.dfaByMode[mode] = dfa.New(mode, s.ATN.ModeToStartState[mode], false)
	}
	return s.dfaByMode[mode]
}

// Match is §4.5's longest-match loop. It returns the matched token's
// type, the rule that produced it, the action executor to replay on
// accept, and the stop index (inclusive) of the match. mode selects
// which lex mode's DFA to run.
type Match struct {
	TokenType int
	Rule      int
	StopIndex int
	Executor  *ActionExecutor
}

// Match runs the DFA loop from input's current index, per §4.5.
func (s *Simulator) Match(input CharStream, mode int) (*Match, error) {
	d := s.dfaFor(mode)
	startIndex := input.Index()

	s0 := d.GetParserStartState(0)
	if s0 == nil {
		computed, err := s.computeStartState(d, mode, startIndex)
		if err != nil {
			return nil, err
		}
		s0 = d.AddDFAState(computed)
		d.SetParserStartState(s0)
	}

	var prevAccept *Match
	var prevAcceptIndex int

	cur := s0
	for {
		if cur.IsAcceptState {
			m, ok := acceptMatch(cur)
			if ok {
				prevAccept = m
				prevAcceptIndex = input.Index()
			}
		}

		t := input.LA(1)
		target, shouldCache := s.getExistingOrComputeTarget(d, cur, t, startIndex)
		if target == dfa.Error || target == nil {
			break
		}
		if t != atn.EOF {
			input.Consume()
		}
		if shouldCache {
			d.AddDFAEdgeForChar(cur, t, target)
		}
		cur = target
		if cur.IsAcceptState {
			m, ok := acceptMatch(cur)
			if ok {
				prevAccept = m
				prevAcceptIndex = input.Index()
			}
		}
		if t == atn.EOF {
			break
		}
	}

	if prevAccept != nil {
		input.Seek(prevAcceptIndex)
		prevAccept.StopIndex = prevAcceptIndex - 1
		return prevAccept, nil
	}
	if startIndex == input.Index() && input.LA(1) == atn.EOF {
		return &Match{TokenType: atn.EOF, StopIndex: startIndex}, nil
	}
	return nil, &errs.LexerNoViableAlt{StartIndex: startIndex}
}

// acceptMatch resolves a token type for a DFA state reached during the
// loop. Accept states gated by a semantic predicate (st.Predicates) are a
// rarer lexer feature than an unconditional accept; this simulator
// resolves only the unconditional case, per the Open Question decision in
// DESIGN.md.
func acceptMatch(s *dfa.State) (*Match, bool) {
	if !s.IsAcceptState {
		return nil, false
	}
	var exec *ActionExecutor
	if s.LexerActionExecutor != nil {
		exec, _ = s.LexerActionExecutor.(*ActionExecutor)
	}
	return &Match{TokenType: s.Prediction, Rule: s.Rule, Executor: exec}, true
}

func (s *Simulator) getExistingOrComputeTarget(d *dfa.DFA, from *dfa.State, t, startIndex int) (*dfa.State, bool) {
	if !from.SuppressEdge {
		if existing := d.GetExistingTargetStateForChar(from, t); existing != nil {
			return existing, false
		}
	}
	computed, err := s.computeTargetState(d, from, t, startIndex)
	if err != nil || computed == nil {
		return dfa.Error, false
	}
	installed := d.AddDFAState(computed)
	return installed, !from.SuppressEdge
}

// computeStartState builds s0 from the mode's TOKENS_START decision.
// Like the real lexer simulator, it enters each alternative's target
// directly with an EMPTY context rather than running the mode state's
// own RuleTransitions through closure: the mode decision is not itself a
// rule invocation, so nothing should be pushed onto the context stack
// for it, and only nested rule references get that treatment.
func (s *Simulator) computeStartState(d *dfa.DFA, mode, startIndex int) (*dfa.State, error) {
	cs := config.NewOrderedSet(s.ATN, false)
	ctx := &closureCtx{a: s.ATN, ev: s.Evaluator, busy: map[busyKey]bool{}, startIdx: startIndex}
	start := s.ATN.ModeToStartState[mode]
	for i, t := range start.Transitions {
		cfg := config.New(t.Target(), i+1, gss.Empty)
		if err := closure(ctx, cfg, nil, cs); err != nil {
			return nil, err
		}
	}
	st := dfa.NewState(cs)
	st.SuppressEdge = cs.HasSemanticContext
	return st, nil
}

func (s *Simulator) computeTargetState(d *dfa.DFA, from *dfa.State, t, startIndex int) (*dfa.State, error) {
	reachSet := config.NewOrderedSet(s.ATN, false)
	for _, cfg := range from.Configs.Configs() {
		for _, tr := range cfg.State.Transitions {
			if tr.IsEpsilon() {
				continue
			}
			if tr.Matches(t, dfa.MinChar, unicode.MaxRune) {
				next := config.New(tr.Target(), cfg.Alt, cfg.Context)
				next.SemanticContext = cfg.SemanticContext
				next.LexerActionExecutor = cfg.LexerActionExecutor
				if _, err := reachSet.Add(next); err != nil {
					return nil, err
				}
			}
		}
	}
	if reachSet.IsEmpty() {
		return nil, nil
	}

	closed := config.NewOrderedSet(s.ATN, false)
	ctx := &closureCtx{a: s.ATN, ev: s.Evaluator, busy: map[busyKey]bool{}, startIdx: startIndex}
	for _, cfg := range reachSet.Configs() {
		var exec *ActionExecutor
		if cfg.LexerActionExecutor != nil {
			exec, _ = cfg.LexerActionExecutor.(*ActionExecutor)
		}
		if err := closure(ctx, cfg, exec, closed); err != nil {
			return nil, err
		}
	}

	st := dfa.NewState(closed)
	markAccept(s.ATN, st)
	return st, nil
}

// markAccept implements §4.5's "accept DFA state": when the closed
// config set contains a RULE_STOP, the first such config's rule decides
// the token type and its path's action executor is captured. Predicate
// transitions gating a rule are already discharged during closure (the
// lexer evaluates sempred eagerly, unlike the parser's deferred
// semantic-context tree), so every RULE_STOP surviving into the closed
// set is unconditionally acceptable.
func markAccept(a *atn.ATN, st *dfa.State) {
	for _, cfg := range st.Configs.Configs() {
		if cfg.State.Kind != atn.StateRuleStop {
			continue
		}
		st.IsAcceptState = true
		st.Prediction = a.RuleToTokenType[cfg.State.RuleIndex]
		st.Rule = cfg.State.RuleIndex
		st.LexerActionExecutor = cfg.LexerActionExecutor
		return
	}
}
