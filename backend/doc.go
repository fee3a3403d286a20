// Package backend contains concrete implementations of core.Backend.
//
// The canonical Backend interface lives in the core package to avoid
// dependency cycles and keep domain contracts central. Implementation
// packages like this one (filesystem, in-memory, embedded KV; the s3
// subpackage for object stores) provide byte-storage media that can be
// swapped without touching calling code.
//
// Callers should depend on core.Backend rather than concrete types so they
// can substitute alternative persistence layers in tests or production.
package backend
