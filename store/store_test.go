package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/expectstore/backend"
	"github.com/hupe1980/expectstore/core"
	"github.com/hupe1980/expectstore/template"
)

type suiteDoc struct {
	Name         string   `json:"name" msgpack:"name"`
	Expectations []string `json:"expectations" msgpack:"expectations"`
}

func newTestStore(t *testing.T, optFns ...func(*Options)) *Store {
	t.Helper()
	s, err := New("expectations_store", backend.NewMemory(), template.MustParse("{0}/{1}.json"), optFns...)
	require.NoError(t, err)
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := core.NewStoreKey("suite1", "warning")

	in := suiteDoc{Name: "suite1.warning", Expectations: []string{"row_count", "not_null"}}
	require.NoError(t, s.Save(ctx, key, in))

	var out suiteDoc
	require.NoError(t, s.Load(ctx, key, &out))
	assert.Equal(t, in, out)

	ok, err := s.Has(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStoreLoadMissingIsNotFound(t *testing.T) {
	s := newTestStore(t)

	var out suiteDoc
	err := s.Load(context.Background(), core.NewStoreKey("nope", "nope"), &out)
	require.ErrorIs(t, err, core.ErrNotFound)
	assert.NotErrorIs(t, err, core.ErrDeserialization)
}

func TestStoreCorruptionIsNotAbsence(t *testing.T) {
	be := backend.NewMemory()
	s, err := New("expectations_store", be, template.MustParse("{0}/{1}.json"))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, be.Put(ctx, "suite1/warning.json", []byte("not json{")))

	var out suiteDoc
	err = s.Load(ctx, core.NewStoreKey("suite1", "warning"), &out)
	require.ErrorIs(t, err, core.ErrDeserialization)
	assert.NotErrorIs(t, err, core.ErrNotFound)
}

func TestStoreOverwriteIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := core.NewStoreKey("suite1", "warning")

	require.NoError(t, s.Save(ctx, key, suiteDoc{Name: "v1"}))
	require.NoError(t, s.Save(ctx, key, suiteDoc{Name: "v2"}))
	require.NoError(t, s.Save(ctx, key, suiteDoc{Name: "v3"}))

	var out suiteDoc
	require.NoError(t, s.Load(ctx, key, &out))
	assert.Equal(t, "v3", out.Name)
}

func TestStoreAppendOnlyCollision(t *testing.T) {
	s := newTestStore(t, func(o *Options) { o.Policy = PolicyAppendOnly })
	ctx := context.Background()
	key := core.NewStoreKey("suite1", "run7")

	require.NoError(t, s.Save(ctx, key, suiteDoc{Name: "first"}))

	err := s.Save(ctx, key, suiteDoc{Name: "second"})
	require.ErrorIs(t, err, core.ErrAlreadyExists)

	// First write must survive untouched.
	var out suiteDoc
	require.NoError(t, s.Load(ctx, key, &out))
	assert.Equal(t, "first", out.Name)
}

func TestStoreArityMismatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.Save(ctx, core.NewStoreKey("only-one"), suiteDoc{})
	require.ErrorIs(t, err, core.ErrArityMismatch)

	var out suiteDoc
	err = s.Load(ctx, core.NewStoreKey("a", "b", "c"), &out)
	require.ErrorIs(t, err, core.ErrArityMismatch)
}

func TestStoreSerializationError(t *testing.T) {
	s := newTestStore(t)

	// Channels are not representable in JSON.
	err := s.Save(context.Background(), core.NewStoreKey("suite1", "bad"), make(chan int))
	require.ErrorIs(t, err, core.ErrSerialization)
}

func TestStoreMsgpackCodec(t *testing.T) {
	s, err := New("evaluation_parameter_store", backend.NewMemory(), template.MustParse("{0}.msgpack"),
		func(o *Options) { o.Codec = MsgpackCodec{} })
	require.NoError(t, err)
	ctx := context.Background()
	key := core.NewStoreKey("run7")

	in := suiteDoc{Name: "params", Expectations: []string{"a", "b"}}
	require.NoError(t, s.Save(ctx, key, in))

	var out suiteDoc
	require.NoError(t, s.Load(ctx, key, &out))
	assert.Equal(t, in, out)
}

func TestStoreListAndLoadPath(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, core.NewStoreKey("suite1", "warning"), suiteDoc{Name: "w"}))
	require.NoError(t, s.Save(ctx, core.NewStoreKey("suite1", "failure"), suiteDoc{Name: "f"}))

	var names []string
	for path, err := range s.List(ctx, "suite1/") {
		require.NoError(t, err)
		var doc suiteDoc
		require.NoError(t, s.LoadPath(ctx, path, &doc))
		names = append(names, doc.Name)
	}
	assert.ElementsMatch(t, []string{"w", "f"}, names)
}

func TestCodecByName(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{name: "", want: "json", ok: true},
		{name: "json", want: "json", ok: true},
		{name: "msgpack", want: "msgpack", ok: true},
		{name: "xml", ok: false},
	}
	for _, tt := range tests {
		c, ok := CodecByName(tt.name)
		require.Equal(t, tt.ok, ok, "codec %q", tt.name)
		if ok {
			assert.Equal(t, tt.want, c.Name())
		}
	}
}
