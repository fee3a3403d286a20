package testutil

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"github.com/hupe1980/expectstore/core"
)

// RecordingBackend wraps another core.Backend and counts writes, so tests
// can verify whether a store was touched (e.g. that a fail-fast pipeline
// left a later store unwritten).
type RecordingBackend struct {
	core.Backend

	mu   sync.Mutex
	puts []string
}

// NewRecordingBackend wraps inner with write recording.
func NewRecordingBackend(inner core.Backend) *RecordingBackend {
	return &RecordingBackend{Backend: inner}
}

// Put records the path and delegates to the wrapped backend.
func (r *RecordingBackend) Put(ctx context.Context, path string, data []byte) error {
	r.mu.Lock()
	r.puts = append(r.puts, path)
	r.mu.Unlock()
	return r.Backend.Put(ctx, path, data)
}

// Puts returns the recorded write paths in order.
func (r *RecordingBackend) Puts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make([]string, len(r.puts))
	copy(cp, r.puts)
	return cp
}

// FailingBackend rejects every operation with core.ErrIO, simulating an
// unreachable backing medium.
type FailingBackend struct{}

func (FailingBackend) Put(context.Context, string, []byte) error {
	return fmt.Errorf("failing backend: %w", core.ErrIO)
}

func (FailingBackend) Get(context.Context, string) ([]byte, error) {
	return nil, fmt.Errorf("failing backend: %w", core.ErrIO)
}

func (FailingBackend) Exists(context.Context, string) (bool, error) {
	return false, fmt.Errorf("failing backend: %w", core.ErrIO)
}

func (FailingBackend) List(context.Context, string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		yield("", fmt.Errorf("failing backend: %w", core.ErrIO))
	}
}

func (FailingBackend) Delete(context.Context, string) error {
	return fmt.Errorf("failing backend: %w", core.ErrIO)
}

// Compile-time interface checks.
var (
	_ core.Backend = (*RecordingBackend)(nil)
	_ core.Backend = FailingBackend{}
)
