package config

import (
	"github.com/nihei9/atnpredict/atn"
	"github.com/nihei9/atnpredict/atn/gss"
	"github.com/nihei9/atnpredict/atn/semctx"
	"github.com/nihei9/atnpredict/collection"
	"github.com/nihei9/atnpredict/errs"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Set is ATNConfigSet, §3 and §4.2: an insertion-order-preserving set of
// Configs, backed by an ordered map so iteration order matches insertion
// order without a separate slice to keep in sync. Dedup key is
// (state, alt, semanticContext) unless Ordered is true, in which case the
// full config participates in the key (used by the lexer's start-state
// computation, per §4.2).
type Set struct {
	ATN     *atn.ATN
	Ordered bool
	FullCtx bool

	entries *orderedmap.OrderedMap[dedupKey, *Config]

	HasSemanticContext   bool
	DipsIntoOuterContext bool
	UniqueAlt            int
	ConflictingAlts      *collection.AltSet
	Readonly             bool
}

func NewSet(a *atn.ATN, fullCtx bool) *Set {
	return &Set{
		ATN:     a,
		FullCtx: fullCtx,
		entries: orderedmap.New[dedupKey, *Config](),
	}
}

// NewOrderedSet returns a Set keyed by the full config rather than the
// (state, alt, semanticContext) triple, per §4.2's "used by the lexer
// start-state computation".
func NewOrderedSet(a *atn.ATN, fullCtx bool) *Set {
	s := NewSet(a, fullCtx)
	s.Ordered = true
	return s
}

func (s *Set) key(cfg *Config) dedupKey {
	k := cfg.key()
	if s.Ordered {
		k.sem = cfg.Hash() ^ cfg.Context.Hash()
	}
	return k
}

// Add implements §4.2's ATNConfigSet.add. It returns whether the set
// changed (always true on insert; true on an existing entry's context
// widening, outer-context counter increase, or newly-suppressed flag).
func (s *Set) Add(cfg *Config) (bool, error) {
	if s.Readonly {
		return false, errs.NewIllegalState("cannot add to a readonly ATNConfigSet")
	}

	if cfg.SemanticContext != semctx.None {
		s.HasSemanticContext = true
	}
	if cfg.ReachesIntoOuterContext() > 0 {
		s.DipsIntoOuterContext = true
	}

	key := s.key(cfg)
	if existing, ok := s.entries.Get(key); ok {
		merged := gss.Merge(existing.Context, cfg.Context, !s.FullCtx)
		changed := merged != existing.Context
		existing.Context = merged
		if cfg.ReachesIntoOuterContext() > existing.ReachesIntoOuterContext() {
			existing.SetReachesIntoOuterContext(cfg.ReachesIntoOuterContext())
			changed = true
		}
		if cfg.PrecedenceFilterSuppressed() && !existing.PrecedenceFilterSuppressed() {
			existing.SetPrecedenceFilterSuppressed(true)
			changed = true
		}
		return changed, nil
	}

	s.entries.Set(key, cfg)
	return true, nil
}

// Len returns the number of distinct entries.
func (s *Set) Len() int { return s.entries.Len() }

// IsEmpty reports whether the set has no entries.
func (s *Set) IsEmpty() bool { return s.entries.Len() == 0 }

// Configs returns the set's entries in insertion order.
func (s *Set) Configs() []*Config {
	out := make([]*Config, 0, s.entries.Len())
	for pair := s.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// SetReadonly marks the set readonly; subsequent Add calls fail (§4.2).
func (s *Set) SetReadonly() { s.Readonly = true }

// Alts returns the distinct Alt values present.
func (s *Set) Alts() *collection.AltSet {
	alts := collection.NewAltSet()
	for pair := s.entries.Oldest(); pair != nil; pair = pair.Next() {
		alts.Add(pair.Value.Alt)
	}
	return alts
}
