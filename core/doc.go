// Package core provides the foundational domain types, interfaces and error
// taxonomy used by expectstore. It defines the core abstractions for:
//
//   - StoreKey (fixed-arity tuple identifying an artifact within a store)
//   - Backend (raw byte persistence: filesystem, object store, embedded KV, memory)
//   - ValidationResult (the immutable outcome of a validation run)
//   - The sentinel error set shared by every layer
//
// The package intentionally keeps implementation concerns (persistence,
// operator orchestration, concrete backends) out of scope, exposing small
// interfaces so alternative backends and actions can be added without
// introducing dependency cycles. Callers should depend on the interfaces
// defined here rather than concrete types so they can substitute
// implementations in tests or production.
package core
