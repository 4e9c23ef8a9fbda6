package parser

import (
	"testing"

	"github.com/nihei9/atnpredict/atn"
	"github.com/nihei9/atnpredict/atn/config"
	"github.com/nihei9/atnpredict/atn/gss"
	"github.com/nihei9/atnpredict/atn/semctx"
)

type fakePredicateEvaluator struct {
	precpredResult bool
}

func (e *fakePredicateEvaluator) Sempred(ctx semctx.RuleContext, rule, predIndex int) bool {
	return true
}

func (e *fakePredicateEvaluator) Precpred(ctx semctx.RuleContext, precedence int) bool {
	return e.precpredResult
}

func TestApplyPrecedenceFilterDropsRedundantLowerAlts(t *testing.T) {
	stateX := &atn.State{StateNumber: 10}
	stateY := &atn.State{StateNumber: 11}

	ev := &fakePredicateEvaluator{precpredResult: true}
	cctx := &closureCtx{ev: ev}

	s0 := config.NewSet(nil, false)

	alt1 := config.New(stateX, 1, gss.Empty)
	alt1.SemanticContext = semctx.NewPrecedencePredicate(2)
	s0.Add(alt1)

	alt2 := config.New(stateX, 2, gss.Empty)
	s0.Add(alt2)

	alt3 := config.New(stateY, 3, gss.Empty)
	s0.Add(alt3)

	alt4 := config.New(stateX, 4, gss.Empty)
	alt4.SetPrecedenceFilterSuppressed(true)
	s0.Add(alt4)

	out, err := applyPrecedenceFilter(cctx, s0)
	if err != nil {
		t.Fatalf("applyPrecedenceFilter returned error: %v", err)
	}

	survived := map[int]bool{}
	for _, cfg := range out.Configs() {
		survived[cfg.Alt] = true
	}

	if !survived[1] {
		t.Error("alt 1 should survive: it discharged its predicate and established the claim on stateX")
	}
	if survived[2] {
		t.Error("alt 2 should be dropped: it is redundant with alt 1's claim on the same (state, context)")
	}
	if !survived[3] {
		t.Error("alt 3 should survive: it sits on a different state than alt 1's claim")
	}
	if !survived[4] {
		t.Error("alt 4 should survive: its suppressed flag exempts it from the filter")
	}
}

func TestApplyPrecedenceFilterDropsAlt1OnFailedPredicate(t *testing.T) {
	stateX := &atn.State{StateNumber: 20}

	ev := &fakePredicateEvaluator{precpredResult: false}
	cctx := &closureCtx{ev: ev}

	s0 := config.NewSet(nil, false)

	alt1 := config.New(stateX, 1, gss.Empty)
	alt1.SemanticContext = semctx.NewPrecedencePredicate(5)
	s0.Add(alt1)

	out, err := applyPrecedenceFilter(cctx, s0)
	if err != nil {
		t.Fatalf("applyPrecedenceFilter returned error: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("out.Len() = %d, want 0: alt 1's predicate failed so nothing should survive", out.Len())
	}
}
