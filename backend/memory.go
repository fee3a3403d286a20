package backend

import (
	"context"
	"fmt"
	"iter"
	"sort"
	"strings"
	"sync"

	"github.com/hupe1980/expectstore/core"
)

// Memory is a trivial in-process core.Backend implementation useful for
// tests, ephemeral evaluation-parameter stores and single-process
// prototypes. It keeps all artifacts in a map guarded by an RWMutex. Data is
// copied on put / get to avoid accidental external mutation of internal
// buffers.
//
// Contents live for the process lifetime only; there is no persistence
// across restarts.
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string][]byte)}
}

// Put stores (or overwrites) the bytes at path. The input slice is copied
// before storage, so the swap is atomic from any reader's perspective.
func (m *Memory) Put(_ context.Context, path string, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[path] = cp
	return nil
}

// Get returns a copy of the stored bytes or core.ErrNotFound.
func (m *Memory) Get(_ context.Context, path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[path]
	if !ok {
		return nil, fmt.Errorf("memory get %s: %w", path, core.ErrNotFound)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// Exists reports whether path holds content.
func (m *Memory) Exists(_ context.Context, path string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[path]
	return ok, nil
}

// List yields stored paths beginning with prefix in lexical order. Each
// range takes a fresh snapshot, so the sequence is restartable.
func (m *Memory) List(_ context.Context, prefix string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		m.mu.RLock()
		paths := make([]string, 0, len(m.objects))
		for p := range m.objects {
			if strings.HasPrefix(p, prefix) {
				paths = append(paths, p)
			}
		}
		m.mu.RUnlock()
		sort.Strings(paths)
		for _, p := range paths {
			if !yield(p, nil) {
				return
			}
		}
	}
}

// Delete removes the content at path if present.
func (m *Memory) Delete(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, path)
	return nil
}

// Compile-time interface check.
var _ core.Backend = (*Memory)(nil)
