package core

import "strings"

// StoreKey is an ordered, fixed-arity sequence of opaque string segments
// identifying a single artifact within a store (e.g. suite name, run id,
// batch fingerprint). The arity must exactly match the positional slot count
// of the owning store's path template or path resolution fails with
// ErrArityMismatch.
//
// Segments are opaque to the key itself; separator and emptiness rules are
// enforced where the key meets a backing medium (see the template package).
type StoreKey []string

// NewStoreKey builds a StoreKey from the given segments.
func NewStoreKey(segments ...string) StoreKey {
	return StoreKey(segments)
}

// Arity returns the number of segments.
func (k StoreKey) Arity() int { return len(k) }

// String renders the key for log and error messages. It is not a storage
// path; physical paths are produced by a store's template.
func (k StoreKey) String() string {
	return strings.Join(k, "/")
}

// Equal reports whether two keys have identical segments in order.
func (k StoreKey) Equal(other StoreKey) bool {
	if len(k) != len(other) {
		return false
	}
	for i, s := range k {
		if other[i] != s {
			return false
		}
	}
	return true
}
