package collection

import (
	"encoding/binary"

	"github.com/twmb/murmur3"
)

// Hasher accumulates the structural fields of a value (a PredictionContext
// node, an ATNConfig, a DFAState's config set, ...) into a single Murmur3
// digest. Every family that needs "structural hashing, not identity"
// (§3: "Equality and hashing are structural over the full DAG") builds its
// hash this way so that two independently constructed but equal values
// hash identically, which the intern table (internal/interning) and the
// DFA state dedup (dfa.Cache) both depend on.
type Hasher struct {
	buf []byte
}

// NewHasher returns an empty accumulator.
func NewHasher() *Hasher {
	return &Hasher{buf: make([]byte, 0, 64)}
}

// WriteInt mixes a single int (e.g. a state number, a return state, an alt)
// into the digest.
func (h *Hasher) WriteInt(v int) *Hasher {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	h.buf = append(h.buf, b[:]...)
	return h
}

// WriteBool mixes a single bool into the digest.
func (h *Hasher) WriteBool(v bool) *Hasher {
	if v {
		h.buf = append(h.buf, 1)
	} else {
		h.buf = append(h.buf, 0)
	}
	return h
}

// WriteHash mixes an already-computed hash of a child value (e.g. a parent
// PredictionContext) into the digest, so structural hashing composes over
// a DAG without re-hashing shared subgraphs from scratch.
func (h *Hasher) WriteHash(v uint32) *Hasher {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	h.buf = append(h.buf, b[:]...)
	return h
}

// WriteString mixes a string into the digest.
func (h *Hasher) WriteString(v string) *Hasher {
	h.buf = append(h.buf, v...)
	h.buf = append(h.buf, 0)
	return h
}

// Sum32 finalizes and returns the Murmur3 32-bit digest of everything
// written so far.
func (h *Hasher) Sum32() uint32 {
	return murmur3.Sum32(h.buf)
}
