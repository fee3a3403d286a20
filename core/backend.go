package core

import (
	"context"
	"iter"
)

// Backend is the raw byte-storage capability a Store delegates to. Paths are
// forward-slash separated and relative to the backend root; they are produced
// by the owning store's path template, never by callers directly.
//
// Contract shared by all implementations:
//   - Put replaces any existing content at path atomically: a concurrent Get
//     observes either the previous value or the new one, never a partial write.
//   - Get on a path that was never written returns ErrNotFound, not a
//     generic i/o error.
//   - Delete is idempotent: removing an absent path is not an error.
//   - List is lazy, finite and restartable; each range over the returned
//     sequence reflects the backend state at that point.
//   - Medium failures are surfaced wrapped in ErrIO and are not retried
//     internally; retry policy belongs to the caller.
//
// Implementations must be safe for concurrent use.
type Backend interface {
	// Put writes data at path, creating any intermediate structure the
	// medium requires and replacing existing content atomically.
	Put(ctx context.Context, path string, data []byte) error

	// Get returns the full content stored at path or ErrNotFound.
	Get(ctx context.Context, path string) ([]byte, error)

	// Exists reports whether path holds content.
	Exists(ctx context.Context, path string) (bool, error)

	// List yields every stored path beginning with prefix. Iteration errors
	// are yielded in the second position; a non-nil error terminates the
	// sequence.
	List(ctx context.Context, prefix string) iter.Seq2[string, error]

	// Delete removes the content at path if present.
	Delete(ctx context.Context, path string) error
}
