package parser

import (
	"github.com/nihei9/atnpredict/atn/config"
	"github.com/nihei9/atnpredict/collection"
)

// getUniqueAlt returns the single alt every config in s shares, or 0 if
// s is empty or its configs disagree.
func getUniqueAlt(s *config.Set) int {
	alt := 0
	for _, cfg := range s.Configs() {
		if alt == 0 {
			alt = cfg.Alt
		} else if alt != cfg.Alt {
			return 0
		}
	}
	return alt
}

// altSetKey groups configs by (state, context) for conflict detection,
// hashing the context structurally so two configs that reached the same
// ATN state via equal (but not pointer-identical) call stacks land in
// the same bucket.
type altSetKey struct {
	state int
	ctx   uint32
}

// getConflictingAltSubsets partitions configs by (state, context) and
// returns the AltSet present in each bucket.
func getConflictingAltSubsets(configs []*config.Config) map[altSetKey]*collection.AltSet {
	buckets := map[altSetKey]*collection.AltSet{}
	for _, cfg := range configs {
		key := altSetKey{state: cfg.State.StateNumber, ctx: cfg.Context.Hash()}
		alts, ok := buckets[key]
		if !ok {
			alts = collection.NewAltSet()
			buckets[key] = alts
		}
		alts.Add(cfg.Alt)
	}
	return buckets
}

// hasSLLConflictTerminatingPrediction implements the SLL conflict
// heuristic: some (state, context) bucket has more than one alt, and no
// bucket has exactly one -- i.e. no state unambiguously commits reach to
// a single alternative, so SLL cannot resolve the decision on its own.
func hasSLLConflictTerminatingPrediction(configs []*config.Config) bool {
	buckets := getConflictingAltSubsets(configs)
	hasConflict := false
	hasUnique := false
	for _, alts := range buckets {
		switch alts.Count() {
		case 1:
			hasUnique = true
		default:
			if alts.Count() > 1 {
				hasConflict = true
			}
		}
	}
	return hasConflict && !hasUnique
}

// conflictingAlts collects the union of every bucket with more than one
// alt, for recording on a DFAState that requires full context.
func conflictingAlts(configs []*config.Config) *collection.AltSet {
	out := collection.NewAltSet()
	for _, alts := range getConflictingAltSubsets(configs) {
		if alts.Count() > 1 {
			out.Union(alts)
		}
	}
	return out
}

// resolvesToJustOneViableAlt reports whether, across the alt subsets
// reach partitions into, only one alt survives once alts that appear
// together with a smaller alt in the same subset (ambiguous) are
// discarded -- the non-exact full-context termination rule: the
// minimal alt of each conflicting bucket wins, and if every bucket agrees
// on the same minimal alt, prediction can stop there.
func resolvesToJustOneViableAlt(configs []*config.Config) int {
	buckets := getConflictingAltSubsets(configs)
	viable := 0
	for _, alts := range buckets {
		min := alts.Min()
		if viable == 0 {
			viable = min
		} else if viable != min {
			return 0
		}
	}
	return viable
}
