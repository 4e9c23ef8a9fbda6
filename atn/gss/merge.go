package gss

// Merge unifies a and b so that every concrete stack represented by
// either input is represented in the result, without duplication
// (§4.1). rootIsWildcard selects SLL merge semantics (true: EMPTY
// absorbs, like `*`) versus LL semantics (false: EMPTY composes with
// real stacks, emitting arrays that carry the `$` bottom explicitly).
func Merge(a, b *Context, rootIsWildcard bool) *Context {
	if a == b || a.Equals(b) {
		return a
	}
	if a.Size() == 1 && b.Size() == 1 {
		return mergeSingletons(a, b, rootIsWildcard)
	}
	if rootIsWildcard {
		if a.IsEmpty() {
			return a
		}
		if b.IsEmpty() {
			return b
		}
	}
	return mergeArrays(a, b, rootIsWildcard)
}

// mergeSingletons implements the SINGLETON ⊕ SINGLETON bullet of §4.1.
func mergeSingletons(a, b *Context, rootIsWildcard bool) *Context {
	if root := mergeRoot(a, b, rootIsWildcard); root != nil {
		return root
	}
	if a.ReturnStates[0] == b.ReturnStates[0] {
		parent := Merge(a.Parents[0], b.Parents[0], rootIsWildcard)
		if parent == a.Parents[0] {
			return a
		}
		if parent == b.Parents[0] {
			return b
		}
		return NewSingleton(parent, a.ReturnStates[0])
	}

	var sharedParent *Context
	if a.Parents[0] != nil && a.Parents[0].Equals(b.Parents[0]) {
		sharedParent = a.Parents[0]
	}
	if sharedParent != nil {
		parents := []*Context{sharedParent, sharedParent}
		returnStates := []int{a.ReturnStates[0], b.ReturnStates[0]}
		sortPairs(parents, returnStates)
		return NewArray(parents, returnStates)
	}
	parents := []*Context{a.Parents[0], b.Parents[0]}
	returnStates := []int{a.ReturnStates[0], b.ReturnStates[0]}
	sortPairs(parents, returnStates)
	return NewArray(parents, returnStates)
}

// mergeRoot implements §4.1's mergeRoot; it returns nil on a miss (neither
// side is EMPTY, in the non-wildcard case).
func mergeRoot(a, b *Context, rootIsWildcard bool) *Context {
	if rootIsWildcard {
		if a == Empty {
			return a
		}
		if b == Empty {
			return b
		}
		return nil
	}
	if a == Empty && b == Empty {
		return Empty
	}
	if a == Empty {
		return NewArray([]*Context{b.Parents[0], nil}, []int{b.ReturnStates[0], EmptyReturnState})
	}
	if b == Empty {
		return NewArray([]*Context{a.Parents[0], nil}, []int{a.ReturnStates[0], EmptyReturnState})
	}
	return nil
}

// mergeArrays implements the ARRAY ⊕ ARRAY bullet of §4.1. Singletons are
// already one-element arrays in this representation, so no promotion step
// is needed beyond treating a and b uniformly as sorted pair lists.
func mergeArrays(a, b *Context, rootIsWildcard bool) *Context {
	var parents []*Context
	var returnStates []int

	i, j := 0, 0
	for i < a.Size() && j < b.Size() {
		pa, ra := a.Parents[i], a.ReturnStates[i]
		pb, rb := b.Parents[j], b.ReturnStates[j]
		switch {
		case ra == rb:
			var merged *Context
			switch {
			case ra == EmptyReturnState && pa == nil && pb == nil:
				merged = nil
			case pa.Equals(pb):
				merged = pa
			default:
				merged = Merge(pa, pb, rootIsWildcard)
			}
			parents = append(parents, merged)
			returnStates = append(returnStates, ra)
			i++
			j++
		case ra < rb:
			parents = append(parents, pa)
			returnStates = append(returnStates, ra)
			i++
		default:
			parents = append(parents, pb)
			returnStates = append(returnStates, rb)
			j++
		}
	}
	for ; i < a.Size(); i++ {
		parents = append(parents, a.Parents[i])
		returnStates = append(returnStates, a.ReturnStates[i])
	}
	for ; j < b.Size(); j++ {
		parents = append(parents, b.Parents[j])
		returnStates = append(returnStates, b.ReturnStates[j])
	}

	merged := NewArray(parents, returnStates)
	if merged.Equals(a) {
		return a
	}
	if merged.Equals(b) {
		return b
	}
	return merged
}

// sortPairs sorts (parents[i], returnStates[i]) pairs ascending by return
// state; both of its call sites in mergeSingletons pass exactly two pairs,
// so an insertion sort is all that's needed.
func sortPairs(parents []*Context, returnStates []int) {
	for i := 1; i < len(returnStates); i++ {
		for j := i; j > 0 && returnStates[j-1] > returnStates[j]; j-- {
			returnStates[j-1], returnStates[j] = returnStates[j], returnStates[j-1]
			parents[j-1], parents[j] = parents[j], parents[j-1]
		}
	}
}
