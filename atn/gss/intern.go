package gss

import "github.com/nihei9/atnpredict/internal/interning"

// Cache is a structural-hash intern table specialized to Context. Merge
// and FromRuleContext do not consult it; only contexts a caller passes to
// Intern are interned.
type Cache = interning.Cache[*Context]

// NewCache returns a Context intern table bounded to capacity entries.
func NewCache(capacity int) *Cache {
	return interning.New[*Context](capacity)
}

// Intern looks c up in cache by structural hash, returning the
// previously-interned value on a hit (maximizing pointer sharing so
// Merge's identity fast path fires later) or storing and returning c on a
// miss. A nil cache is a no-op, so callers that don't want interning can
// pass one through freely.
func Intern(cache *Cache, c *Context) *Context {
	if cache == nil || c == nil {
		return c
	}
	interned, _ := cache.GetOrStore(c.Hash(), c)
	return interned
}
