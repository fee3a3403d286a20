// Package store provides the typed, codec-aware facade over raw byte
// backends plus the process-wide registry that resolves stores by name.
//
// A Store owns exactly one core.Backend and one path template. Every write
// is a full-document overwrite at the key's rendered path; reads return the
// full document or core.ErrNotFound, never a partial document. Stores
// configured append-only refuse to clobber an existing artifact and fail
// with core.ErrAlreadyExists instead.
//
// The Registry is built once at startup and read-only afterwards, so it is
// safely shared across concurrent validation runs without locking.
package store
