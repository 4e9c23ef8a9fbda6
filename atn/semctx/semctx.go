// Package semctx implements the SemanticContext predicate algebra of §3
// and §4.3-§4.4: the tagged tree attached to an ATNConfig recording which
// semantic predicates must hold for that config's alternative to be
// viable, and the evaluator that discharges it against user-supplied
// sempred/precpred callbacks.
package semctx

import "math"

// Context is the tagged-union family: Predicate, PrecedencePredicate,
// AndContext, OrContext. Modeled as an interface with a closed set of
// concrete types, the same choice made for atn.Transition.
type Context interface {
	// Eval discharges the predicate tree against ev, given the rule
	// context outerCtx in effect at evaluation time.
	Eval(ev Evaluator, outerCtx RuleContext) bool
	Equals(other Context) bool
	Hash() uint32
}

// Evaluator is the collaborator interface of §3's "user callbacks":
// sempred and precpred.
type Evaluator interface {
	Sempred(ctx RuleContext, rule, predIndex int) bool
	Precpred(ctx RuleContext, precedence int) bool
}

// RuleContext is the minimal caller-context view a predicate evaluation
// needs to hand back to the user callback. A nil RuleContext means
// "evaluate with a null context" (§4.3: non-context-dependent predicates).
type RuleContext interface{}

// None is the distinguished predicate meaning "true": rule=math.MaxInt32,
// predIndex=math.MaxInt32 (§3: "rule=∞, pred=∞").
var None Context = &Predicate{Rule: math.MaxInt32, PredIndex: math.MaxInt32}

// Predicate is PREDICATE(rule, predIndex, ctxDependent).
type Predicate struct {
	Rule         int
	PredIndex    int
	CtxDependent bool
}

func NewPredicate(rule, predIndex int, ctxDependent bool) Context {
	return &Predicate{Rule: rule, PredIndex: predIndex, CtxDependent: ctxDependent}
}

func (p *Predicate) Eval(ev Evaluator, outerCtx RuleContext) bool {
	if p == None {
		return true
	}
	var ctx RuleContext
	if p.CtxDependent {
		ctx = outerCtx
	}
	return ev.Sempred(ctx, p.Rule, p.PredIndex)
}

func (p *Predicate) Equals(other Context) bool {
	o, ok := other.(*Predicate)
	return ok && o.Rule == p.Rule && o.PredIndex == p.PredIndex && o.CtxDependent == p.CtxDependent
}

func (p *Predicate) Hash() uint32 {
	return uint32(p.Rule)*31 + uint32(p.PredIndex)*7 + boolHash(p.CtxDependent)
}

// PrecedencePredicate is PRECEDENCE_PREDICATE(p): true iff the parser's
// precpred(ctx, p) accepts the current precedence level.
type PrecedencePredicate struct {
	Precedence int
}

func NewPrecedencePredicate(precedence int) Context {
	return &PrecedencePredicate{Precedence: precedence}
}

func (p *PrecedencePredicate) Eval(ev Evaluator, outerCtx RuleContext) bool {
	return ev.Precpred(outerCtx, p.Precedence)
}

func (p *PrecedencePredicate) Equals(other Context) bool {
	o, ok := other.(*PrecedencePredicate)
	return ok && o.Precedence == p.Precedence
}

func (p *PrecedencePredicate) Hash() uint32 {
	return uint32(p.Precedence)*131 + 1
}

// AndContext is a normalized conjunction of >= 2 operands, none of which
// is itself an AndContext (flattened) or a duplicate.
type AndContext struct {
	Operands []Context
}

func (a *AndContext) Eval(ev Evaluator, outerCtx RuleContext) bool {
	for _, op := range a.Operands {
		if !op.Eval(ev, outerCtx) {
			return false
		}
	}
	return true
}

func (a *AndContext) Equals(other Context) bool {
	o, ok := other.(*AndContext)
	if !ok || len(o.Operands) != len(a.Operands) {
		return false
	}
	for i, op := range a.Operands {
		if !op.Equals(o.Operands[i]) {
			return false
		}
	}
	return true
}

func (a *AndContext) Hash() uint32 {
	var h uint32 = 17
	for _, op := range a.Operands {
		h = h*37 + op.Hash()
	}
	return h
}

// OrContext is a normalized disjunction of >= 2 operands, none of which is
// itself an OrContext (flattened) or a duplicate.
type OrContext struct {
	Operands []Context
}

func (o *OrContext) Eval(ev Evaluator, outerCtx RuleContext) bool {
	for _, op := range o.Operands {
		if op.Eval(ev, outerCtx) {
			return true
		}
	}
	return false
}

func (o *OrContext) Equals(other Context) bool {
	p, ok := other.(*OrContext)
	if !ok || len(p.Operands) != len(o.Operands) {
		return false
	}
	for i, op := range o.Operands {
		if !op.Equals(p.Operands[i]) {
			return false
		}
	}
	return true
}

func (o *OrContext) Hash() uint32 {
	var h uint32 = 19
	for _, op := range o.Operands {
		h = h*41 + op.Hash()
	}
	return h
}

func boolHash(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

var (
	_ Context = &Predicate{}
	_ Context = &PrecedencePredicate{}
	_ Context = &AndContext{}
	_ Context = &OrContext{}
)
