// Package vclock provides a small vector clock used by the fraud and
// transaction checkers to record the causal progress of per-order checks.
//
// Each service owns one entry in the clock, keyed by its own service id.
// Entries only move forward: a local event increments the owning service's
// own entry by one; no service ever decrements or rewrites another
// service's entry. It is a per-service causal log, not a merged,
// cross-service happens-before relation.
package vclock

import "maps"

// Clock is a mapping from service id to a monotonically non-decreasing
// counter. The zero value is an empty clock; use New to seed an entry.
type Clock map[string]int64

// New returns a clock with a single entry {service: 1}, the value InitOrder
// assigns on creation of per-order state.
func New(service string) Clock {
	return Clock{service: 1}
}

// Increment returns a copy of c with service's entry incremented by one.
// Increment never mutates c; callers hold their own copy under their own
// per-service mutex, so returning a fresh map keeps that discipline explicit.
func (c Clock) Increment(service string) Clock {
	next := maps.Clone(c)
	if next == nil {
		next = Clock{}
	}
	next[service]++
	return next
}

// Dominates reports whether c is componentwise >= other: for every key in
// other, c holds a value at least as large. A clock with no entry for a key
// present in other is treated as 0 for that key.
func (c Clock) Dominates(other Clock) bool {
	for k, v := range other {
		if c[k] < v {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of c.
func (c Clock) Clone() Clock {
	return maps.Clone(c)
}
