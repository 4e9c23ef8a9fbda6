// Package collection holds the dense symbol/alt set and structural-hash
// utilities shared by the ATN, prediction-context, and configuration-set
// packages: IntervalSet, BitSet, and a Murmur3-based structural hash.
package collection

import (
	"fmt"
	"sort"
	"strings"
)

// Interval is an inclusive [Start, Stop] range of symbol values (token
// types or characters). A RANGE or SET transition matches by testing
// membership in one or more intervals.
type Interval struct {
	Start int
	Stop  int
}

// IntervalSet is a sorted, non-overlapping, non-adjacent list of intervals.
// It backs the SET/NOT_SET transition payloads (§3) and the vocabulary
// bounds the reach step tests a symbol against.
type IntervalSet struct {
	intervals []Interval
}

// NewIntervalSet returns an empty set.
func NewIntervalSet() *IntervalSet {
	return &IntervalSet{}
}

// NewIntervalSetWithRange returns a set containing exactly [start, stop].
func NewIntervalSetWithRange(start, stop int) *IntervalSet {
	s := &IntervalSet{}
	s.AddRange(start, stop)
	return s
}

// AddOne adds a single value.
func (s *IntervalSet) AddOne(v int) {
	s.AddRange(v, v)
}

// AddRange adds [start, stop], merging with any overlapping or adjacent
// intervals already present.
func (s *IntervalSet) AddRange(start, stop int) {
	if stop < start {
		start, stop = stop, start
	}

	merged := make([]Interval, 0, len(s.intervals)+1)
	inserted := false
	for _, iv := range s.intervals {
		if inserted || iv.Stop+1 < start {
			merged = append(merged, iv)
			continue
		}
		if iv.Start > stop+1 {
			merged = append(merged, Interval{start, stop})
			merged = append(merged, iv)
			inserted = true
			continue
		}
		// Overlaps or touches [start, stop]; fold it in and keep scanning
		// since later intervals may also now be touched.
		if iv.Start < start {
			start = iv.Start
		}
		if iv.Stop > stop {
			stop = iv.Stop
		}
	}
	if !inserted {
		merged = append(merged, Interval{start, stop})
	}
	s.intervals = merged
}

// AddSet unions another set's intervals into this one.
func (s *IntervalSet) AddSet(other *IntervalSet) {
	if other == nil {
		return
	}
	for _, iv := range other.intervals {
		s.AddRange(iv.Start, iv.Stop)
	}
}

// Contains reports whether v falls within any interval.
func (s *IntervalSet) Contains(v int) bool {
	lo, hi := 0, len(s.intervals)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		iv := s.intervals[mid]
		switch {
		case v < iv.Start:
			hi = mid - 1
		case v > iv.Stop:
			lo = mid + 1
		default:
			return true
		}
	}
	return false
}

// Intervals returns the underlying sorted, disjoint intervals. The caller
// must not mutate the result.
func (s *IntervalSet) Intervals() []Interval {
	return s.intervals
}

// Len returns the number of discrete values the set contains.
func (s *IntervalSet) Len() int {
	n := 0
	for _, iv := range s.intervals {
		n += iv.Stop - iv.Start + 1
	}
	return n
}

// IsEmpty reports whether the set has no intervals.
func (s *IntervalSet) IsEmpty() bool {
	return len(s.intervals) == 0
}

// Complement returns the values in [minVal, maxVal] that are not in s,
// used by NOT_SET transitions.
func (s *IntervalSet) Complement(minVal, maxVal int) *IntervalSet {
	comp := NewIntervalSet()
	next := minVal
	for _, iv := range s.intervals {
		if iv.Start > next {
			comp.AddRange(next, iv.Start-1)
		}
		if iv.Stop+1 > next {
			next = iv.Stop + 1
		}
	}
	if next <= maxVal {
		comp.AddRange(next, maxVal)
	}
	return comp
}

// Equals reports structural equality.
func (s *IntervalSet) Equals(other *IntervalSet) bool {
	if other == nil {
		return s == nil || len(s.intervals) == 0
	}
	if len(s.intervals) != len(other.intervals) {
		return false
	}
	for i, iv := range s.intervals {
		if iv != other.intervals[i] {
			return false
		}
	}
	return true
}

// String renders the set the way ANTLR-style tools print vocabularies,
// e.g. "{1..3, 7}".
func (s *IntervalSet) String() string {
	parts := make([]string, 0, len(s.intervals))
	for _, iv := range s.intervals {
		if iv.Start == iv.Stop {
			parts = append(parts, strconvItoa(iv.Start))
		} else {
			parts = append(parts, fmt.Sprintf("%v..%v", iv.Start, iv.Stop))
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func strconvItoa(v int) string {
	return fmt.Sprintf("%d", v)
}

// NewIntervalSetFromPairs builds a set from an unordered list of ranges,
// as the ATN deserializer decodes them off the wire (§6 set tables).
// The ranges are sorted by start, then folded in one at a time with
// AddRange.
func NewIntervalSetFromPairs(ivs []Interval) *IntervalSet {
	sorted := make([]Interval, len(ivs))
	copy(sorted, ivs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	s := NewIntervalSet()
	for _, iv := range sorted {
		s.AddRange(iv.Start, iv.Stop)
	}
	return s
}
