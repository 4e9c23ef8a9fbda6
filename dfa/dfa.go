package dfa

import (
	"sync"

	"github.com/nihei9/atnpredict/atn"
)

// DFA is one per decision (§3). IsPrecedenceDFA marks a DFA rooted at a
// left-recursive rule's decision: such a DFA never uses s0 as its real
// start state; instead s0.Edges[p] maps a precedence p to that
// precedence's start state (§3).
type DFA struct {
	Decision        int
	ATNStartState   *atn.State
	IsPrecedenceDFA bool

	statesMu sync.RWMutex
	edgesMu  sync.RWMutex

	states    map[uint32][]*State
	nextState int
	s0        *State
}

// New returns an empty DFA for decision, rooted at startState.
func New(decision int, startState *atn.State, isPrecedenceDFA bool) *DFA {
	return &DFA{
		Decision:        decision,
		ATNStartState:   startState,
		IsPrecedenceDFA: isPrecedenceDFA,
		states:          make(map[uint32][]*State),
	}
}

// configsHash is an order-independent structural hash over a config
// set's entries, used only to bucket AddDFAState's dedup lookup --
// exact equality is always decided by configsEqual.
func configsHash(s *State) uint32 {
	var h uint32
	for _, c := range s.Configs.Configs() {
		h ^= c.Hash() ^ c.Context.Hash()
	}
	return h
}

// AddDFAState implements §4.6's addDFAState: insert proposed keyed by
// configs equality, or return the existing entry if a duplicate is
// already present. On insert, proposed's configs are marked readonly and
// it is assigned the next state number.
func (d *DFA) AddDFAState(proposed *State) *State {
	d.statesMu.Lock()
	defer d.statesMu.Unlock()

	key := configsHash(proposed)
	for _, existing := range d.states[key] {
		if configsEqual(existing.Configs, proposed.Configs) {
			return existing
		}
	}

	proposed.StateNumber = d.nextState
	d.nextState++
	proposed.Configs.SetReadonly()
	d.states[key] = append(d.states[key], proposed)
	return proposed
}

// Len returns the number of states this DFA has accumulated so far.
func (d *DFA) Len() int {
	d.statesMu.RLock()
	defer d.statesMu.RUnlock()
	return d.nextState
}

// AddDFAEdge implements §4.6's addDFAEdge: from.Edges[symbol] = to.
func (d *DFA) AddDFAEdge(from *State, symbol int, to *State) {
	d.edgesMu.Lock()
	defer d.edgesMu.Unlock()
	if from.Edges == nil {
		from.Edges = map[int]*State{}
	}
	from.Edges[symbol] = to
}

// GetExistingTargetState implements §4.6's getExistingTargetState for the
// parser (symbol is a token type, unmapped).
func (d *DFA) GetExistingTargetState(from *State, symbol int) *State {
	d.edgesMu.RLock()
	defer d.edgesMu.RUnlock()
	return from.Edges[symbol]
}

// MinChar and MaxDFAEdge bound the lexer's character-to-edge-index
// translation (§4.6: "translates character t into t - MIN_CHAR... returns
// nothing if t > MAX_DFA_EDGE").
const (
	MinChar    = 0
	MaxDFAEdge = 0xFFFF
)

// GetExistingTargetStateForChar implements the lexer variant of
// getExistingTargetState: it translates t into an edge index and refuses
// to look past MaxDFAEdge.
func (d *DFA) GetExistingTargetStateForChar(from *State, t int) *State {
	idx := t - MinChar
	if idx < 0 || idx > MaxDFAEdge {
		return nil
	}
	return d.GetExistingTargetState(from, idx)
}

// AddDFAEdgeForChar is the lexer-keyed counterpart to AddDFAEdge.
func (d *DFA) AddDFAEdgeForChar(from *State, t int, to *State) {
	d.AddDFAEdge(from, t-MinChar, to)
}

// GetParserStartState implements §4.6's getParserStartState. For a
// precedence DFA it reads states-read-then-edge-read to look up the
// per-precedence start; otherwise it returns s0 directly.
func (d *DFA) GetParserStartState(precedence int) *State {
	d.statesMu.RLock()
	s0 := d.s0
	d.statesMu.RUnlock()

	if !d.IsPrecedenceDFA {
		return s0
	}
	if s0 == nil {
		return nil
	}
	d.edgesMu.RLock()
	defer d.edgesMu.RUnlock()
	return s0.Edges[precedence]
}

// SetParserStartState installs start as d.s0 (non-precedence DFA). For a
// precedence DFA, use SetPrecedenceStartState instead.
func (d *DFA) SetParserStartState(start *State) {
	d.statesMu.Lock()
	defer d.statesMu.Unlock()
	d.s0 = start
}

// SetPrecedenceStartState installs start as the entry point for
// precedence, on a precedence DFA's dummy s0 (§4.6: "explicitly protected
// by the edge-lock").
func (d *DFA) SetPrecedenceStartState(precedence int, start *State) {
	d.statesMu.Lock()
	if d.s0 == nil {
		d.s0 = &State{Edges: map[int]*State{}}
	}
	s0 := d.s0
	d.statesMu.Unlock()

	d.edgesMu.Lock()
	defer d.edgesMu.Unlock()
	if s0.Edges == nil {
		s0.Edges = map[int]*State{}
	}
	s0.Edges[precedence] = start
}
