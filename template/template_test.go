package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/expectstore/core"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		arity   int
		wantErr bool
	}{
		{name: "simple", raw: "{0}/{1}.json", arity: 2},
		{name: "reordered slots", raw: "{4}/{0}/{1}/{2}/{3}.json", arity: 5},
		{name: "literal prefix", raw: "validations/{0}/{1}/{2}.json", arity: 3},
		{name: "empty", raw: "", wantErr: true},
		{name: "no placeholders", raw: "static.json", wantErr: true},
		{name: "unterminated", raw: "{0}/{1.json", wantErr: true},
		{name: "non numeric", raw: "{zero}.json", wantErr: true},
		{name: "gap in indices", raw: "{0}/{2}.json", wantErr: true},
		{name: "repeated index", raw: "{0}/{0}.json", wantErr: true},
		{name: "adjacent placeholders", raw: "{0}{1}.json", wantErr: true},
		{name: "separator without slash", raw: "{0}-{1}.json", wantErr: true},
		{name: "dot separator", raw: "runs/{0}.{1}.json", wantErr: true},
		{name: "slash inside wider separator", raw: "{0}/batch-{1}.json", arity: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Parse(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.arity, tmpl.Arity())
		})
	}
}

func TestRenderReorderedSlots(t *testing.T) {
	tmpl := MustParse("{4}/{0}/{1}/{2}/{3}.json")
	key := core.NewStoreKey("suite1", "run7", "batchabc", "result", "profiling")

	path, err := tmpl.Render(key)
	require.NoError(t, err)
	assert.Equal(t, "profiling/suite1/run7/batchabc/result.json", path)
}

func TestRenderDeterministic(t *testing.T) {
	tmpl := MustParse("validations/{0}/{1}/{2}.json")
	key := core.NewStoreKey("suite", "run", "batch")

	first, err := tmpl.Render(key)
	require.NoError(t, err)
	for range 10 {
		again, err := tmpl.Render(key)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRenderInjective(t *testing.T) {
	tmpl := MustParse("{0}/{1}.json")
	keys := []core.StoreKey{
		core.NewStoreKey("a", "b"),
		core.NewStoreKey("a", "bb"),
		core.NewStoreKey("aa", "b"),
		core.NewStoreKey("b", "a"),
		core.NewStoreKey("a-b", "c"),
		core.NewStoreKey("a", "b-c"),
	}
	seen := map[string]core.StoreKey{}
	for _, key := range keys {
		path, err := tmpl.Render(key)
		require.NoError(t, err)
		prev, dup := seen[path]
		require.False(t, dup, "keys %v and %v rendered the same path %q", prev, key, path)
		seen[path] = key
	}
}

func TestRenderArityMismatch(t *testing.T) {
	tmpl := MustParse("{0}/{1}/{2}.json")

	_, err := tmpl.Render(core.NewStoreKey("only", "two"))
	require.ErrorIs(t, err, core.ErrArityMismatch)

	_, err = tmpl.Render(core.NewStoreKey("one", "two", "three", "four"))
	require.ErrorIs(t, err, core.ErrArityMismatch)
}

func TestRenderInvalidSegment(t *testing.T) {
	tmpl := MustParse("{0}/{1}.json")

	_, err := tmpl.Render(core.NewStoreKey("ok", ""))
	require.ErrorIs(t, err, core.ErrInvalidSegment)

	_, err = tmpl.Render(core.NewStoreKey("a/b", "ok"))
	require.ErrorIs(t, err, core.ErrInvalidSegment)

	_, err = tmpl.Render(core.NewStoreKey(`a\b`, "ok"))
	require.ErrorIs(t, err, core.ErrInvalidSegment)
}
