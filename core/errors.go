package core

import "errors"

// Sentinel errors shared by every layer. Callers discriminate with
// errors.Is; concrete layers wrap these with contextual detail via
// fmt.Errorf("...: %w", ...).
//
// The taxonomy separates configuration-shape errors (ErrUnknownStore,
// ErrDuplicateStore, ErrArityMismatch), which are fatal at bind time, from
// per-operation errors (ErrNotFound, ErrIO, ErrSerialization, ...), which
// are returned to the immediate caller and never retried by the store layer.
var (
	// ErrArityMismatch is returned when a StoreKey's length does not match
	// the number of positional slots in the target store's path template.
	ErrArityMismatch = errors.New("key arity does not match template arity")

	// ErrInvalidSegment is returned when a key segment is empty or contains
	// a path separator character.
	ErrInvalidSegment = errors.New("invalid key segment")

	// ErrUnknownStore is returned when a store name was never registered.
	// This is a configuration error and is fatal at the point of first use.
	ErrUnknownStore = errors.New("unknown store")

	// ErrDuplicateStore is returned when two stores are registered under the
	// same name.
	ErrDuplicateStore = errors.New("duplicate store")

	// ErrNotFound signals absence of an artifact. It is deliberately
	// distinct from every other kind so callers can tell "absent" apart
	// from "corrupt or unreachable".
	ErrNotFound = errors.New("artifact not found")

	// ErrAlreadyExists is returned by append-only stores when a save would
	// overwrite an existing artifact under a colliding key.
	ErrAlreadyExists = errors.New("artifact already exists")

	// ErrSerialization is returned when a document cannot be encoded by the
	// store's codec.
	ErrSerialization = errors.New("document serialization failed")

	// ErrDeserialization is returned when stored bytes do not parse under
	// the store's codec.
	ErrDeserialization = errors.New("document deserialization failed")

	// ErrIO wraps failures of the backing medium (permissions, disk full,
	// request timeouts). Retry policy is the caller's responsibility.
	ErrIO = errors.New("backend i/o failure")
)
