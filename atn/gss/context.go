// Package gss implements the prediction-context graph-structured stack of
// §4.1: a DAG of call-stack frames shared by every ATNConfig that has
// taken the same sequence of rule invocations, and the merge algebra that
// keeps that DAG from blowing up into one node per concrete stack.
package gss

import (
	"math"

	"github.com/nihei9/atnpredict/atn"
	"github.com/nihei9/atnpredict/collection"
)

// EmptyReturnState is the sentinel return-state value marking the bottom
// of a call stack (§4.1: "a sentinel stack bottom").
const EmptyReturnState = math.MaxInt32

// Context is a PredictionContext (§4.1): a SINGLETON is represented as a
// one-element Context, an ARRAY as an n-element one, sorted ascending by
// ReturnStates so EmptyReturnState (if present) always sits last. EMPTY is
// the unique one-element Context whose Parents[0] is nil.
//
// Equality and hashing are structural over the full DAG, so two Contexts
// built independently from equal call chains compare equal even when they
// are not the same pointer; Merge relies on this to detect "a == b" and
// return the input verbatim.
type Context struct {
	Parents      []*Context
	ReturnStates []int

	hash    uint32
	hashSet bool
}

// Empty is the unique EMPTY PredictionContext: a sentinel stack bottom.
var Empty = &Context{Parents: []*Context{nil}, ReturnStates: []int{EmptyReturnState}}

// NewSingleton returns a one-frame Context, or Empty if parent is nil and
// returnState is EmptyReturnState.
func NewSingleton(parent *Context, returnState int) *Context {
	if parent == nil && returnState == EmptyReturnState {
		return Empty
	}
	return &Context{Parents: []*Context{parent}, ReturnStates: []int{returnState}}
}

// NewArray returns a Context over n>=1 (parent, return state) pairs. The
// caller must supply them already sorted ascending by return state.
func NewArray(parents []*Context, returnStates []int) *Context {
	if len(returnStates) == 1 {
		return NewSingleton(parents[0], returnStates[0])
	}
	return &Context{Parents: parents, ReturnStates: returnStates}
}

// Size returns the number of (parent, return state) pairs in c.
func (c *Context) Size() int { return len(c.ReturnStates) }

// IsEmpty reports whether c is the unique EMPTY context.
func (c *Context) IsEmpty() bool { return c == Empty }

// GetParent returns the i'th frame's parent (nil for the EMPTY frame).
func (c *Context) GetParent(i int) *Context { return c.Parents[i] }

// GetReturnState returns the i'th frame's return state.
func (c *Context) GetReturnState(i int) int { return c.ReturnStates[i] }

// HasEmptyPath reports whether c's last pair is the EMPTY tail (§4.1:
// "invariant: EMPTY tail is always last").
func (c *Context) HasEmptyPath() bool {
	n := len(c.ReturnStates)
	return n > 0 && c.ReturnStates[n-1] == EmptyReturnState
}

// Equals reports structural equality between c and other.
func (c *Context) Equals(other *Context) bool {
	if c == other {
		return true
	}
	if c == nil || other == nil {
		return false
	}
	if len(c.ReturnStates) != len(other.ReturnStates) {
		return false
	}
	for i := range c.ReturnStates {
		if c.ReturnStates[i] != other.ReturnStates[i] {
			return false
		}
		if !c.Parents[i].Equals(other.Parents[i]) {
			return false
		}
	}
	return true
}

// Hash returns a structural hash over the full DAG, computed once and
// cached (contexts are immutable after construction).
func (c *Context) Hash() uint32 {
	if c == nil {
		return 0
	}
	if c.hashSet {
		return c.hash
	}
	h := collection.NewHasher()
	for i := range c.ReturnStates {
		h.WriteHash(c.Parents[i].Hash())
		h.WriteInt(c.ReturnStates[i])
	}
	c.hash = h.Sum32()
	c.hashSet = true
	return c.hash
}

// RuleContext is the minimal view of a parser caller-chain frame that
// FromRuleContext needs: the ATN state that invoked the current rule, and
// the link to the enclosing frame (nil at the outermost context).
type RuleContext interface {
	GetInvokingState() int
	GetParent() RuleContext
}

// FromRuleContext walks ctx's caller chain upward, turning each invoking
// state into a SINGLETON whose return state is the follow state of that
// invoking state's first (and only) transition, which must be a
// RuleTransition (§4.1). A nil ctx, or the outermost frame, becomes EMPTY.
func FromRuleContext(a *atn.ATN, ctx RuleContext) *Context {
	if ctx == nil || ctx.GetParent() == nil {
		return Empty
	}
	parent := FromRuleContext(a, ctx.GetParent())
	state := a.States[ctx.GetInvokingState()]
	if len(state.Transitions) == 0 {
		return Empty
	}
	rt, ok := state.Transitions[0].(*atn.RuleTransition)
	if !ok {
		return Empty
	}
	return NewSingleton(parent, rt.FollowState.StateNumber)
}
