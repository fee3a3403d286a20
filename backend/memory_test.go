package backend

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/expectstore/core"
)

func TestMemoryPutGetIsolation(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	data := []byte("hello")
	require.NoError(t, m.Put(ctx, "a", data))

	// mutate original slice
	data[0] = 'H'
	out, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))

	// mutate returned slice
	out[0] = 'x'
	out2, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out2))
}

func TestMemoryGetMissingIsNotFound(t *testing.T) {
	m := NewMemory()
	_, err := m.Get(context.Background(), "missing")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestMemoryListPrefix(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, "run7/params.json", []byte("1")))
	require.NoError(t, m.Put(ctx, "run8/params.json", []byte("2")))

	var paths []string
	for p, err := range m.List(ctx, "run7") {
		require.NoError(t, err)
		paths = append(paths, p)
	}
	assert.Equal(t, []string{"run7/params.json"}, paths)
}

func TestMemoryConcurrency(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			path := fmt.Sprintf("p%d", i%10)
			if err := m.Put(ctx, path, []byte("data")); err != nil {
				t.Errorf("put err: %v", err)
			}
			for range m.List(ctx, "") {
			}
		}()
	}
	wg.Wait()

	var n int
	for _, err := range m.List(ctx, "") {
		require.NoError(t, err)
		n++
	}
	assert.Equal(t, 10, n)
}
