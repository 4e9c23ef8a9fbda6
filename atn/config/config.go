// Package config implements ATNConfig and ATNConfigSet, §3 and §4.2: the
// quadruple a closure step produces, and the insertion-order-preserving
// set the parser and lexer simulators accumulate them into at each
// decision.
package config

import (
	"math"

	"github.com/nihei9/atnpredict/atn"
	"github.com/nihei9/atnpredict/atn/gss"
	"github.com/nihei9/atnpredict/atn/semctx"
	"github.com/nihei9/atnpredict/collection"
)

// reachesIntoOuterContextSuppressedBit is the top bit of the packed
// reachesIntoOuterContext counter, used as the precedenceFilterSuppressed
// flag (§3: "the counter's top bit is the precedenceFilterSuppressed
// flag").
const reachesIntoOuterContextSuppressedBit int32 = math.MinInt32
const reachesIntoOuterContextMask = ^reachesIntoOuterContextSuppressedBit

// Config is ATNConfig: the quadruple (state, alt, context, semantic
// context) plus the packed outer-context counter, and (lexer only) a
// LexerActionExecutor.
type Config struct {
	State           *atn.State
	Alt             int
	Context         *gss.Context
	SemanticContext semctx.Context

	reachesIntoOuterContext int32

	// LexerActionExecutor is set only by the lexer simulator.
	LexerActionExecutor any
}

// New builds a Config with SemanticContext defaulted to NONE.
func New(state *atn.State, alt int, ctx *gss.Context) *Config {
	return &Config{State: state, Alt: alt, Context: ctx, SemanticContext: semctx.None}
}

// ReachesIntoOuterContext returns how many closure steps this config has
// walked outside the decision's entry rule.
func (c *Config) ReachesIntoOuterContext() int {
	return int(c.reachesIntoOuterContext & reachesIntoOuterContextMask)
}

// SetReachesIntoOuterContext sets the counter, preserving the suppression
// bit.
func (c *Config) SetReachesIntoOuterContext(n int) {
	bit := c.reachesIntoOuterContext & reachesIntoOuterContextSuppressedBit
	c.reachesIntoOuterContext = int32(n)&reachesIntoOuterContextMask | bit
}

// PrecedenceFilterSuppressed reports the packed flag (§3).
func (c *Config) PrecedenceFilterSuppressed() bool {
	return c.reachesIntoOuterContext&reachesIntoOuterContextSuppressedBit != 0
}

// SetPrecedenceFilterSuppressed sets or clears the packed flag.
func (c *Config) SetPrecedenceFilterSuppressed(v bool) {
	if v {
		c.reachesIntoOuterContext |= reachesIntoOuterContextSuppressedBit
	} else {
		c.reachesIntoOuterContext &^= reachesIntoOuterContextSuppressedBit
	}
}

// hasPassedThroughNonGreedyDecision reports whether state is a decision
// state the ATN marked non-greedy (§3, derived from state kind).
func hasPassedThroughNonGreedyDecision(a *atn.ATN, s *atn.State) bool {
	return a.IsNonGreedyState(s)
}

// Equals implements the full ATNConfig equality contract of §3: state
// number, alt, context, semantic context, the suppression flag, the
// executor, and hasPassedThroughNonGreedyDecision must all match.
func (c *Config) Equals(a *atn.ATN, other *Config) bool {
	if c == other {
		return true
	}
	if c.State.StateNumber != other.State.StateNumber {
		return false
	}
	if c.Alt != other.Alt {
		return false
	}
	if !c.Context.Equals(other.Context) {
		return false
	}
	if !c.SemanticContext.Equals(other.SemanticContext) {
		return false
	}
	if c.PrecedenceFilterSuppressed() != other.PrecedenceFilterSuppressed() {
		return false
	}
	if c.LexerActionExecutor != other.LexerActionExecutor {
		return false
	}
	return hasPassedThroughNonGreedyDecision(a, c.State) == hasPassedThroughNonGreedyDecision(a, other.State)
}

// Hash returns a structural hash matching Equals' fields, excluding the
// suppression flag and non-greedy derivation (which do not affect the
// dedup key used by ATNConfigSet, per §4.2).
func (c *Config) Hash() uint32 {
	h := collection.NewHasher()
	h.WriteInt(c.State.StateNumber)
	h.WriteInt(c.Alt)
	h.WriteHash(c.Context.Hash())
	h.WriteHash(c.SemanticContext.Hash())
	return h.Sum32()
}

// dedupKey is the (state, alt, semanticContext) triple §4.2 keys
// non-ordered sets by.
type dedupKey struct {
	state int
	alt   int
	sem   uint32
}

func (c *Config) key() dedupKey {
	return dedupKey{state: c.State.StateNumber, alt: c.Alt, sem: c.SemanticContext.Hash()}
}
