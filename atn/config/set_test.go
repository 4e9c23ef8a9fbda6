package config

import (
	"testing"

	"github.com/nihei9/atnpredict/atn"
	"github.com/nihei9/atnpredict/atn/gss"
)

func testState(n int) *atn.State {
	return &atn.State{StateNumber: n, Kind: atn.StateBasic}
}

func TestAddInsertsNewEntry(t *testing.T) {
	a := &atn.ATN{}
	s := NewSet(a, false)
	cfg := New(testState(1), 1, gss.Empty)

	changed, err := s.Add(cfg)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if !changed {
		t.Fatal("Add of a new config must report changed=true")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

func TestAddMergesContextsOnCollision(t *testing.T) {
	a := &atn.ATN{}
	s := NewSet(a, false)

	cfg1 := New(testState(1), 1, gss.NewSingleton(nil, 5))
	cfg2 := New(testState(1), 1, gss.NewSingleton(nil, 7))

	if _, err := s.Add(cfg1); err != nil {
		t.Fatal(err)
	}
	changed, err := s.Add(cfg2)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("a context-widening merge must report changed=true")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (same state/alt/semanticContext must dedup)", s.Len())
	}
	merged := s.Configs()[0]
	if merged.Context.Size() != 2 {
		t.Fatalf("merged context size = %d, want 2", merged.Context.Size())
	}
}

func TestAddFailsOnReadonlySet(t *testing.T) {
	a := &atn.ATN{}
	s := NewSet(a, false)
	s.SetReadonly()

	if _, err := s.Add(New(testState(1), 1, gss.Empty)); err == nil {
		t.Fatal("Add on a readonly set must fail")
	}
}

func TestDipsIntoOuterContextFlag(t *testing.T) {
	a := &atn.ATN{}
	s := NewSet(a, false)
	cfg := New(testState(1), 1, gss.Empty)
	cfg.SetReachesIntoOuterContext(1)

	if _, err := s.Add(cfg); err != nil {
		t.Fatal(err)
	}
	if !s.DipsIntoOuterContext {
		t.Fatal("DipsIntoOuterContext must be set once any config reaches into the outer context")
	}
}

func TestAltsCollectsDistinctAlternatives(t *testing.T) {
	a := &atn.ATN{}
	s := NewSet(a, false)
	if _, err := s.Add(New(testState(1), 1, gss.Empty)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Add(New(testState(2), 2, gss.Empty)); err != nil {
		t.Fatal(err)
	}
	alts := s.Alts()
	if alts.Count() != 2 {
		t.Fatalf("Alts().Count() = %d, want 2", alts.Count())
	}
}
