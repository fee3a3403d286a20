package store

import (
	"fmt"
	"sort"

	"github.com/hupe1980/expectstore/core"
)

// Registry is the process-wide name-to-Store mapping. It is populated once
// during startup wiring and read-only for the remainder of the process
// lifetime, so it may be shared across concurrent validation runs without
// locking. There is deliberately no ambient global instance; construct one
// and pass it by reference into every component that resolves stores.
//
// The registry exclusively owns its Store instances, and each Store
// exclusively owns its backend.
type Registry struct {
	stores map[string]*Store
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{stores: make(map[string]*Store)}
}

// Register adds a store under its name. Registration happens only during
// initialization, before the registry is shared; registering two stores
// under one name fails with core.ErrDuplicateStore.
func (r *Registry) Register(s *Store) error {
	if _, ok := r.stores[s.Name()]; ok {
		return fmt.Errorf("registry: %q: %w", s.Name(), core.ErrDuplicateStore)
	}
	r.stores[s.Name()] = s
	return nil
}

// Resolve returns the store registered under name. An unregistered name
// fails with core.ErrUnknownStore; this is a configuration error and must be
// treated as fatal at the point of first use, never silently defaulted.
func (r *Registry) Resolve(name string) (*Store, error) {
	s, ok := r.stores[name]
	if !ok {
		return nil, fmt.Errorf("registry: %q: %w", name, core.ErrUnknownStore)
	}
	return s, nil
}

// Names returns the registered store names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.stores))
	for name := range r.stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered stores.
func (r *Registry) Len() int { return len(r.stores) }
