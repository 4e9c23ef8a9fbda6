package gss

import "testing"

func TestMergeIdentical(t *testing.T) {
	a := NewSingleton(Empty, 5)
	b := NewSingleton(Empty, 5)
	if got := Merge(a, b, false); !got.Equals(a) {
		t.Fatalf("Merge(a, a') = %v, want equal to %v", got, a)
	}
}

func TestMergeSingletonsDistinctReturnStates(t *testing.T) {
	a := NewSingleton(nil, 5)
	b := NewSingleton(nil, 7)
	got := Merge(a, b, false)
	if got.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", got.Size())
	}
	if got.GetReturnState(0) != 5 || got.GetReturnState(1) != 7 {
		t.Fatalf("return states = %v, want [5 7]", got.ReturnStates)
	}
}

func TestMergeRootWildcardAbsorbs(t *testing.T) {
	x := NewSingleton(nil, 9)
	if got := Merge(Empty, x, true); got != Empty {
		t.Fatalf("Merge(EMPTY, x, wildcard=true) = %v, want EMPTY", got)
	}
	if got := Merge(x, Empty, true); got != Empty {
		t.Fatalf("Merge(x, EMPTY, wildcard=true) = %v, want EMPTY", got)
	}
}

func TestMergeRootNonWildcardComposes(t *testing.T) {
	x := NewSingleton(nil, 9)
	got := Merge(Empty, x, false)
	if got.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", got.Size())
	}
	if got.GetReturnState(1) != EmptyReturnState {
		t.Fatalf("EMPTY tail not last: %v", got.ReturnStates)
	}
}

func TestMergeSharedParentSameReturnState(t *testing.T) {
	parent := NewSingleton(nil, 1)
	a := NewSingleton(parent, 3)
	b := NewSingleton(parent, 3)
	got := Merge(a, b, false)
	if got != a {
		t.Fatalf("Merge did not return a verbatim when parents and return states are equal")
	}
}

func TestMergeArraySubsumedByOther(t *testing.T) {
	a := NewArray([]*Context{nil, nil}, []int{3, 5})
	b := NewArray([]*Context{nil}, []int{3})
	got := Merge(a, b, false)
	if got != a {
		t.Fatalf("Merge did not return a verbatim when b's pair is already present in a")
	}
}

func TestHasEmptyPath(t *testing.T) {
	if !Empty.HasEmptyPath() {
		t.Fatal("EMPTY must have an empty path")
	}
	composed := NewArray([]*Context{nil, nil}, []int{3, EmptyReturnState})
	if !composed.HasEmptyPath() {
		t.Fatal("context with EMPTY tail must report HasEmptyPath")
	}
	noEmpty := NewSingleton(nil, 3)
	if noEmpty.HasEmptyPath() {
		t.Fatal("context without EMPTY tail must not report HasEmptyPath")
	}
}

func TestHashEqualForStructurallyEqualContexts(t *testing.T) {
	a := NewSingleton(NewSingleton(nil, 1), 2)
	b := NewSingleton(NewSingleton(nil, 1), 2)
	if a == b {
		t.Fatal("test contexts must not be pointer-identical")
	}
	if a.Hash() != b.Hash() {
		t.Fatalf("structurally equal contexts hashed differently: %d vs %d", a.Hash(), b.Hash())
	}
	if !a.Equals(b) {
		t.Fatal("structurally equal contexts must compare Equals")
	}
}

func TestInternReturnsSharedPointerOnHit(t *testing.T) {
	cache := NewCache(16)
	a := NewSingleton(NewSingleton(nil, 1), 2)
	b := NewSingleton(NewSingleton(nil, 1), 2)

	got1 := Intern(cache, a)
	got2 := Intern(cache, b)
	if got1 != got2 {
		t.Fatal("second intern of a structurally equal context must return the first's pointer")
	}
}
