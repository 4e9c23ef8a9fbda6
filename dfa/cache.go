package dfa

import (
	"sync"

	"github.com/nihei9/atnpredict/atn"
)

// Cache holds one DFA per decision, lazily created on first use. It is
// the top-level object a parser or lexer simulator holds alongside an
// ATN; the ATN package itself holds no DFA state (§4.6 is additive to the
// immutable ATN graph).
type Cache struct {
	mu            sync.Mutex
	decisionToDFA []*DFA
}

// NewCache returns an empty cache sized for the ATN's decisions.
func NewCache(a *atn.ATN) *Cache {
	return &Cache{decisionToDFA: make([]*DFA, a.DecisionCount())}
}

// Get returns the DFA for decision, creating it (rooted at the ATN's
// decision state) on first access.
func (c *Cache) Get(a *atn.ATN, decision int) *DFA {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.decisionToDFA[decision] == nil {
		start := a.DecisionState(decision)
		c.decisionToDFA[decision] = New(decision, start, start.IsPrecedenceDecision)
	}
	return c.decisionToDFA[decision]
}

// Reset discards every decision's DFA, forcing recomputation on next
// access.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.decisionToDFA {
		c.decisionToDFA[i] = nil
	}
}
