package collection

import bbbitset "github.com/bits-and-blooms/bitset"

// AltSet is a dense set of alternative numbers. The conflict-detection
// heuristics in §4.4 build one per ATN state while partitioning a
// configuration set by (state, context), so it needs to support cheap
// union and cardinality checks; a sparse map of alts would work but a
// bitset is both faster and what ANTLR-derived runtimes use for this.
type AltSet struct {
	bits *bbbitset.BitSet
}

// NewAltSet returns an empty set.
func NewAltSet() *AltSet {
	return &AltSet{bits: bbbitset.New(0)}
}

// Add inserts alt (alts are 1-based; alt 0 is never used).
func (s *AltSet) Add(alt int) {
	s.bits.Set(uint(alt))
}

// Contains reports whether alt is a member.
func (s *AltSet) Contains(alt int) bool {
	return s.bits.Test(uint(alt))
}

// Count returns the number of member alts.
func (s *AltSet) Count() int {
	return int(s.bits.Count())
}

// Alts returns the member alts in ascending order.
func (s *AltSet) Alts() []int {
	alts := make([]int, 0, s.bits.Count())
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		alts = append(alts, int(i))
	}
	return alts
}

// Min returns the smallest member alt, or 0 if the set is empty.
func (s *AltSet) Min() int {
	i, ok := s.bits.NextSet(0)
	if !ok {
		return 0
	}
	return int(i)
}

// Union merges other into s.
func (s *AltSet) Union(other *AltSet) {
	s.bits = s.bits.Union(other.bits)
}

// Clone returns an independent copy.
func (s *AltSet) Clone() *AltSet {
	return &AltSet{bits: s.bits.Clone()}
}
