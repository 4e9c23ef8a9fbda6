package parser

import (
	"github.com/nihei9/atnpredict/atn"
	"github.com/nihei9/atnpredict/atn/config"
	"github.com/nihei9/atnpredict/atn/gss"
	"github.com/nihei9/atnpredict/atn/semctx"
	"github.com/nihei9/atnpredict/collection"
	"github.com/nihei9/atnpredict/dfa"
	"github.com/nihei9/atnpredict/errs"
)

// PredictionMode selects how aggressively AdaptivePredict falls back to
// full-context LL prediction.
type PredictionMode int

const (
	ModeSLL PredictionMode = iota
	ModeLL
	ModeLLExactAmbigDetection
)

// AmbiguityEvent and ContextSensitivityEvent are the payloads handed to
// Simulator's listener hooks, which simply record "reporting" --
// rendering or recovering from either is out of scope.
type AmbiguityEvent struct {
	Decision   int
	StartIndex int
	StopIndex  int
	Alts       []int
	ExactMatch bool
}

type ContextSensitivityEvent struct {
	Decision   int
	StartIndex int
	StopIndex  int
}

// Simulator drives the adaptive SLL/LL(*) prediction algorithm over a
// parser ATN.
type Simulator struct {
	ATN       *atn.ATN
	Evaluator semctx.Evaluator
	Cache     *dfa.Cache
	Mode      PredictionMode

	OnAmbiguity             func(AmbiguityEvent)
	OnContextSensitivity    func(ContextSensitivityEvent)
	OnAttemptingFullContext func(decision, startIndex, stopIndex int)
}

// NewSimulator returns a Simulator over a, backed by its own DFA cache.
func NewSimulator(a *atn.ATN, ev semctx.Evaluator) *Simulator {
	return &Simulator{ATN: a, Evaluator: ev, Cache: dfa.NewCache(a)}
}

func (s *Simulator) closureCtx(outerCtx semctx.RuleContext, fullCtx bool) *closureCtx {
	return &closureCtx{
		a:                 s.ATN,
		ev:                s.Evaluator,
		outerContext:      outerCtx,
		fullCtx:           fullCtx,
		collectPredicates: true,
		busy:              map[busyKey]bool{},
	}
}

// AdaptivePredict predicts the
// alternative to take at decision, given input positioned at the
// decision's first token. outerCtx is the caller's rule-context frame,
// consulted for context-dependent predicates and (if it implements
// gss.RuleContext) for building a precise full-context start state;
// precedence is the current left-recursive precedence level, consulted
// only when the decision's DFA is a precedence DFA.
func (s *Simulator) AdaptivePredict(input TokenStream, decision int, outerCtx semctx.RuleContext, precedence int) (int, error) {
	d := s.Cache.Get(s.ATN, decision)
	startIndex := input.Index()
	mark := input.Mark()
	defer input.Release(mark)

	s0 := d.GetParserStartState(precedence)
	if s0 == nil {
		var err error
		s0, err = s.installStartState(d, outerCtx, precedence)
		if err != nil {
			return 0, err
		}
	}

	alt, err := s.execATN(d, s0, input, startIndex, outerCtx)
	input.Seek(startIndex)
	return alt, err
}

func (s *Simulator) installStartState(d *dfa.DFA, outerCtx semctx.RuleContext, precedence int) (*dfa.State, error) {
	initial, err := s.computeStartState(d, outerCtx, false)
	if err != nil {
		return nil, err
	}
	if d.IsPrecedenceDFA {
		filtered, err := applyPrecedenceFilter(s.closureCtx(outerCtx, false), initial)
		if err != nil {
			return nil, err
		}
		installed := d.AddDFAState(dfa.NewState(filtered))
		d.SetPrecedenceStartState(precedence, installed)
		return installed, nil
	}
	installed := d.AddDFAState(dfa.NewState(initial))
	d.SetParserStartState(installed)
	return installed, nil
}

// computeStartState builds the decision's initial config set, entering
// each alternative directly (as the lexer's mode decision does, per
// lexer.Simulator.computeStartState) rather than pushing a call frame for
// the decision itself.
func (s *Simulator) computeStartState(d *dfa.DFA, outerCtx semctx.RuleContext, fullCtx bool) (*config.Set, error) {
	cs := config.NewSet(s.ATN, fullCtx)
	cctx := s.closureCtx(outerCtx, fullCtx)

	initCtx := gss.Empty
	if fullCtx {
		if rc, ok := outerCtx.(gss.RuleContext); ok {
			initCtx = gss.FromRuleContext(s.ATN, rc)
		}
	}

	p := d.ATNStartState
	for i, t := range p.Transitions {
		cfg := config.New(t.Target(), i+1, initCtx)
		if err := closure(cctx, cfg, cs, 0); err != nil {
			return nil, err
		}
	}
	return cs, nil
}

func (s *Simulator) execATN(d *dfa.DFA, s0 *dfa.State, input TokenStream, startIndex int, outerCtx semctx.RuleContext) (int, error) {
	prev := s0
	t := input.LA(1)
	for {
		target, err := s.getExistingOrComputeTarget(d, prev, t, outerCtx, false)
		if err != nil {
			return 0, err
		}

		if target == dfa.Error {
			if alt := s.getSynValidOrSemInvalidAlt(outerCtx, prev.Configs); alt != 0 {
				return alt, nil
			}
			return 0, &errs.NoViableAlt{
				StartTokenIndex: startIndex,
				OffendingToken:  t,
				DeadEndConfigs:  prev.Configs,
				OuterContext:    outerCtx,
			}
		}

		if target.RequiresFullContext && s.Mode != ModeSLL {
			if len(target.Predicates) > 0 {
				if alt, ok := s.evaluatePredicates(target.Predicates, outerCtx); ok {
					return alt, nil
				}
			}
			if s.OnAttemptingFullContext != nil {
				s.OnAttemptingFullContext(d.Decision, startIndex, input.Index())
			}
			return s.execATNWithFullContext(d, prev, input, startIndex, outerCtx)
		}

		if target.IsAcceptState {
			if len(target.Predicates) == 0 {
				return target.Prediction, nil
			}
			if alt, ok := s.evaluatePredicates(target.Predicates, outerCtx); ok {
				return alt, nil
			}
			return 0, &errs.NoViableAlt{
				StartTokenIndex: startIndex,
				OffendingToken:  t,
				DeadEndConfigs:  target.Configs,
				OuterContext:    outerCtx,
			}
		}

		if t != atn.EOF {
			if err := input.Consume(); err != nil {
				return 0, err
			}
		}
		prev = target
		t = input.LA(1)
	}
}

func (s *Simulator) getExistingOrComputeTarget(d *dfa.DFA, from *dfa.State, t int, outerCtx semctx.RuleContext, fullCtx bool) (*dfa.State, error) {
	if existing := d.GetExistingTargetState(from, t); existing != nil {
		return existing, nil
	}
	computed, err := s.computeTargetState(d, from, t, outerCtx, fullCtx)
	if err != nil {
		return nil, err
	}
	if computed == nil {
		d.AddDFAEdge(from, t, dfa.Error)
		return dfa.Error, nil
	}
	installed := d.AddDFAState(computed)
	d.AddDFAEdge(from, t, installed)
	return installed, nil
}

func (s *Simulator) computeTargetState(d *dfa.DFA, from *dfa.State, t int, outerCtx semctx.RuleContext, fullCtx bool) (*dfa.State, error) {
	cctx := s.closureCtx(outerCtx, fullCtx)
	reached, err := reach(cctx, from.Configs, t, fullCtx, d.ATNStartState.RuleIndex)
	if err != nil {
		return nil, err
	}
	if reached == nil || reached.IsEmpty() {
		return nil, nil
	}

	st := dfa.NewState(reached)
	cfgs := reached.Configs()

	switch {
	case getUniqueAlt(reached) != 0:
		st.IsAcceptState = true
		st.Prediction = getUniqueAlt(reached)
	case !fullCtx && hasSLLConflictTerminatingPrediction(cfgs):
		st.RequiresFullContext = true
		st.IsAcceptState = true
		st.Prediction = conflictingAlts(cfgs).Min()
	}

	if reached.HasSemanticContext {
		alts := conflictingOrUniqueAlts(cfgs, st)
		if preds := predicatesForAlts(cfgs, alts); len(preds) > 0 {
			st.Predicates = preds
			st.Prediction = 0
		}
	}
	return st, nil
}

func conflictingOrUniqueAlts(cfgs []*config.Config, st *dfa.State) *collection.AltSet {
	if st.RequiresFullContext {
		return conflictingAlts(cfgs)
	}
	out := collection.NewAltSet()
	for _, cfg := range cfgs {
		out.Add(cfg.Alt)
	}
	return out
}

func predicatesForAlts(cfgs []*config.Config, alts *collection.AltSet) []dfa.PredicateAlt {
	combined := map[int]semctx.Context{}
	sawNone := map[int]bool{}
	for _, cfg := range cfgs {
		if !alts.Contains(cfg.Alt) {
			continue
		}
		if cfg.SemanticContext == semctx.None {
			sawNone[cfg.Alt] = true
			continue
		}
		if existing, ok := combined[cfg.Alt]; ok {
			combined[cfg.Alt] = semctx.Or(existing, cfg.SemanticContext)
		} else {
			combined[cfg.Alt] = cfg.SemanticContext
		}
	}
	var out []dfa.PredicateAlt
	for _, alt := range alts.Alts() {
		if sawNone[alt] {
			out = append(out, dfa.PredicateAlt{Pred: semctx.None, Alt: alt})
			continue
		}
		if pred, ok := combined[alt]; ok {
			out = append(out, dfa.PredicateAlt{Pred: pred, Alt: alt})
		}
	}
	return out
}

// evaluatePredicates discharges a DFAState's predicate list against the
// current outer context. Zero passing predicates means no viable alt;
// more than one passing means an ambiguity the caller (real ANTLR's
// "report ambiguity, return min ambiguous alt") resolves by taking the
// smallest alt.
func (s *Simulator) evaluatePredicates(preds []dfa.PredicateAlt, outerCtx semctx.RuleContext) (int, bool) {
	var passing []int
	for _, p := range preds {
		if p.Pred == semctx.None {
			passing = append(passing, p.Alt)
			continue
		}
		if s.Evaluator != nil && p.Pred.Eval(s.Evaluator, outerCtx) {
			passing = append(passing, p.Alt)
		}
	}
	switch len(passing) {
	case 0:
		return 0, false
	case 1:
		return passing[0], true
	default:
		min := passing[0]
		for _, a := range passing[1:] {
			if a < min {
				min = a
			}
		}
		return min, true
	}
}

// getSynValidOrSemInvalidAlt implements a recovery lookup on a dead end:
// only configs that finished the decision's entry rule count (a RULE_STOP
// config whose context has an empty path, or one that reached into the
// outer context). The smallest such alt whose semantic context holds is
// returned; failing that, the smallest such alt whose predicate failed;
// 0 if no config finished the rule.
func (s *Simulator) getSynValidOrSemInvalidAlt(outerCtx semctx.RuleContext, configs *config.Set) int {
	viable := collection.NewAltSet()
	invalid := collection.NewAltSet()
	for _, cfg := range configs.Configs() {
		if cfg.ReachesIntoOuterContext() == 0 &&
			!(cfg.State.Kind == atn.StateRuleStop && cfg.Context != nil && cfg.Context.HasEmptyPath()) {
			continue
		}
		if cfg.SemanticContext == semctx.None {
			viable.Add(cfg.Alt)
			continue
		}
		if s.Evaluator != nil && cfg.SemanticContext.Eval(s.Evaluator, outerCtx) {
			viable.Add(cfg.Alt)
		} else {
			invalid.Add(cfg.Alt)
		}
	}
	if viable.Count() > 0 {
		return viable.Min()
	}
	return invalid.Min()
}

// execATNWithFullContext implements the full-LL fallback: re-run
// closure/reach with fullCtx=true until reach resolves to one alt, or (in
// LL_EXACT_AMBIG_DETECTION mode) every subset agrees it is the same
// ambiguity.
func (s *Simulator) execATNWithFullContext(d *dfa.DFA, prev *dfa.State, input TokenStream, startIndex int, outerCtx semctx.RuleContext) (int, error) {
	fullCtxSet, err := s.computeStartState(d, outerCtx, true)
	if err != nil {
		return 0, err
	}

	t := input.LA(1)
	reachSet := fullCtxSet
	for {
		cctx := s.closureCtx(outerCtx, true)
		next, err := reach(cctx, reachSet, t, true, d.ATNStartState.RuleIndex)
		if err != nil {
			return 0, err
		}
		if next == nil || next.IsEmpty() {
			if alt := s.getSynValidOrSemInvalidAlt(outerCtx, reachSet); alt != 0 {
				return alt, nil
			}
			return 0, &errs.NoViableAlt{
				StartTokenIndex: startIndex,
				OffendingToken:  t,
				DeadEndConfigs:  reachSet,
				OuterContext:    outerCtx,
			}
		}
		reachSet = next
		cfgs := reachSet.Configs()

		if alt := getUniqueAlt(reachSet); alt != 0 {
			if s.OnContextSensitivity != nil {
				s.OnContextSensitivity(ContextSensitivityEvent{Decision: d.Decision, StartIndex: startIndex, StopIndex: input.Index()})
			}
			return alt, nil
		}

		if alt := resolvesToJustOneViableAlt(cfgs); alt != 0 {
			if s.Mode != ModeLLExactAmbigDetection {
				return alt, nil
			}
		}
		buckets := getConflictingAltSubsets(cfgs)
		if allBucketsConflictAndEqual(buckets) {
			alts := conflictingAlts(cfgs)
			if s.OnAmbiguity != nil {
				s.OnAmbiguity(AmbiguityEvent{Decision: d.Decision, StartIndex: startIndex, StopIndex: input.Index(), Alts: alts.Alts(), ExactMatch: true})
			}
			return alts.Min(), nil
		}
		if alt := resolvesToJustOneViableAlt(cfgs); alt != 0 {
			return alt, nil
		}

		if t != atn.EOF {
			if err := input.Consume(); err != nil {
				return 0, err
			}
		}
		t = input.LA(1)
	}
}

func allBucketsConflictAndEqual(buckets map[altSetKey]*collection.AltSet) bool {
	var first *collection.AltSet
	for _, alts := range buckets {
		if alts.Count() < 2 {
			return false
		}
		if first == nil {
			first = alts
			continue
		}
		if !sameAlts(first, alts) {
			return false
		}
	}
	return first != nil
}

func sameAlts(a, b *collection.AltSet) bool {
	aa, bb := a.Alts(), b.Alts()
	if len(aa) != len(bb) {
		return false
	}
	for i := range aa {
		if aa[i] != bb[i] {
			return false
		}
	}
	return true
}
