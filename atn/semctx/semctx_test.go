package semctx

import "testing"

type fakeEvaluator struct {
	sempredResult map[[2]int]bool
	precpredMin   int
	sempredCtx    RuleContext
}

func (f *fakeEvaluator) Sempred(ctx RuleContext, rule, predIndex int) bool {
	f.sempredCtx = ctx
	return f.sempredResult[[2]int{rule, predIndex}]
}

func (f *fakeEvaluator) Precpred(ctx RuleContext, precedence int) bool {
	return precedence >= f.precpredMin
}

func TestNoneEvaluatesTrue(t *testing.T) {
	ev := &fakeEvaluator{}
	if !None.Eval(ev, nil) {
		t.Fatal("NONE must always evaluate true")
	}
}

func TestAndIdentityIsNone(t *testing.T) {
	p := NewPredicate(1, 2, false)
	if got := And(None, p); !got.Equals(p) {
		t.Fatalf("And(NONE, p) = %v, want p", got)
	}
	if got := And(p, None); !got.Equals(p) {
		t.Fatalf("And(p, NONE) = %v, want p", got)
	}
}

func TestOrAbsorbsNone(t *testing.T) {
	p := NewPredicate(1, 2, false)
	if got := Or(None, p); got != None {
		t.Fatalf("Or(NONE, p) = %v, want NONE", got)
	}
}

func TestAndFlattensAndDeduplicates(t *testing.T) {
	p1 := NewPredicate(1, 1, false)
	p2 := NewPredicate(1, 2, false)
	nested := And(p1, p2)
	got := And(nested, p1)
	and, ok := got.(*AndContext)
	if !ok {
		t.Fatalf("got %T, want *AndContext", got)
	}
	if len(and.Operands) != 2 {
		t.Fatalf("Operands = %v, want 2 deduplicated operands", and.Operands)
	}
}

func TestAndReducesPrecedenceChainToMinimum(t *testing.T) {
	p5 := NewPrecedencePredicate(5)
	p9 := NewPrecedencePredicate(9)
	got := And(p5, p9)
	pp, ok := got.(*PrecedencePredicate)
	if !ok {
		t.Fatalf("got %T, want *PrecedencePredicate", got)
	}
	if pp.Precedence != 5 {
		t.Fatalf("Precedence = %d, want 5 (minimum)", pp.Precedence)
	}
}

func TestOrReducesPrecedenceChainToMaximum(t *testing.T) {
	p5 := NewPrecedencePredicate(5)
	p9 := NewPrecedencePredicate(9)
	got := Or(p5, p9)
	pp, ok := got.(*PrecedencePredicate)
	if !ok {
		t.Fatalf("got %T, want *PrecedencePredicate", got)
	}
	if pp.Precedence != 9 {
		t.Fatalf("Precedence = %d, want 9 (maximum)", pp.Precedence)
	}
}

func TestPredicateCtxDependentReceivesOuterContext(t *testing.T) {
	ev := &fakeEvaluator{sempredResult: map[[2]int]bool{{3, 4}: true}}
	p := NewPredicate(3, 4, true)
	if !p.Eval(ev, "outer-ctx") {
		t.Fatal("expected sempred to report true")
	}
	if ev.sempredCtx != "outer-ctx" {
		t.Fatalf("sempred received ctx %v, want the outer context", ev.sempredCtx)
	}
}

func TestAndEvalShortCircuitsOnFirstFalse(t *testing.T) {
	ev := &fakeEvaluator{sempredResult: map[[2]int]bool{{1, 1}: false, {1, 2}: true}}
	p1 := NewPredicate(1, 1, false)
	p2 := NewPredicate(1, 2, false)
	got := And(p1, p2)
	if got.Eval(ev, nil) {
		t.Fatal("AND with a false operand must evaluate false")
	}
}

func TestOrEvalTrueIfAnyOperandTrue(t *testing.T) {
	ev := &fakeEvaluator{sempredResult: map[[2]int]bool{{1, 1}: false, {1, 2}: true}}
	p1 := NewPredicate(1, 1, false)
	p2 := NewPredicate(1, 2, false)
	got := Or(p1, p2)
	if !got.Eval(ev, nil) {
		t.Fatal("OR with a true operand must evaluate true")
	}
}
