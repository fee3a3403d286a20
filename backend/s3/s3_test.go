package s3

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/expectstore/core"
)

// apiError implements smithy.APIError for test assertions.
type apiError struct {
	code string
	msg  string
}

func (e *apiError) Error() string                 { return e.msg }
func (e *apiError) ErrorCode() string             { return e.code }
func (e *apiError) ErrorMessage() string          { return e.msg }
func (e *apiError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

var (
	errNoSuchKey = &apiError{code: "NoSuchKey", msg: "no such key"}
	errMissing   = &apiError{code: "NotFound", msg: "not found"}
)

// mockClient is a thread-safe in-memory S3 double.
type mockClient struct {
	mu      sync.Mutex
	objects map[string][]byte

	// Optional hooks to inject errors.
	getErr  error
	putErr  error
	listErr error
}

func newMockClient() *mockClient {
	return &mockClient{objects: make(map[string][]byte)}
}

func (m *mockClient) GetObject(_ context.Context, in *awss3.GetObjectInput, _ ...func(*awss3.Options)) (*awss3.GetObjectOutput, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[*in.Key]
	if !ok {
		return nil, errNoSuchKey
	}
	return &awss3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (m *mockClient) PutObject(_ context.Context, in *awss3.PutObjectInput, _ ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	if m.putErr != nil {
		return nil, m.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[*in.Key] = data
	return &awss3.PutObjectOutput{}, nil
}

func (m *mockClient) DeleteObject(_ context.Context, in *awss3.DeleteObjectInput, _ ...func(*awss3.Options)) (*awss3.DeleteObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, *in.Key)
	return &awss3.DeleteObjectOutput{}, nil
}

func (m *mockClient) HeadObject(_ context.Context, in *awss3.HeadObjectInput, _ ...func(*awss3.Options)) (*awss3.HeadObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[*in.Key]; !ok {
		return nil, errMissing
	}
	return &awss3.HeadObjectOutput{}, nil
}

func (m *mockClient) ListObjectsV2(_ context.Context, in *awss3.ListObjectsV2Input, _ ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.objects {
		if in.Prefix == nil || strings.HasPrefix(k, *in.Prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := &awss3.ListObjectsV2Output{}
	for _, k := range keys {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	return out, nil
}

func newTestBackend(t *testing.T) (*Backend, *mockClient) {
	t.Helper()
	mock := newMockClient()
	return New(mock, "test-bucket", "data"), mock
}

func TestS3PutGet(t *testing.T) {
	b, mock := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Put(ctx, "suite1/run7.json", []byte(`{"ok":true}`)))
	assert.Contains(t, mock.objects, "data/suite1/run7.json")

	data, err := b.Get(ctx, "suite1/run7.json")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(data))
}

func TestS3GetMissingIsNotFound(t *testing.T) {
	b, _ := newTestBackend(t)

	_, err := b.Get(context.Background(), "never/written.json")
	require.ErrorIs(t, err, core.ErrNotFound)
	assert.NotErrorIs(t, err, core.ErrIO)
}

func TestS3GetTransportErrorIsIO(t *testing.T) {
	b, mock := newTestBackend(t)
	mock.getErr = &apiError{code: "SlowDown", msg: "throttled"}

	_, err := b.Get(context.Background(), "a.json")
	require.ErrorIs(t, err, core.ErrIO)
	assert.NotErrorIs(t, err, core.ErrNotFound)
}

func TestS3Exists(t *testing.T) {
	b, _ := newTestBackend(t)
	ctx := context.Background()

	ok, err := b.Exists(ctx, "a.json")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Put(ctx, "a.json", []byte("x")))
	ok, err = b.Exists(ctx, "a.json")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestS3ListStripsPrefix(t *testing.T) {
	b, _ := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Put(ctx, "validations/a.json", []byte("1")))
	require.NoError(t, b.Put(ctx, "validations/b.json", []byte("2")))
	require.NoError(t, b.Put(ctx, "expectations/a.json", []byte("3")))

	var paths []string
	for p, err := range b.List(ctx, "validations/") {
		require.NoError(t, err)
		paths = append(paths, p)
	}
	assert.Equal(t, []string{"validations/a.json", "validations/b.json"}, paths)
}

func TestS3ListErrorIsIO(t *testing.T) {
	b, mock := newTestBackend(t)
	mock.listErr = &apiError{code: "AccessDenied", msg: "denied"}

	for _, err := range b.List(context.Background(), "") {
		require.ErrorIs(t, err, core.ErrIO)
	}
}

func TestS3DeleteIdempotent(t *testing.T) {
	b, _ := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Put(ctx, "a.json", []byte("x")))
	require.NoError(t, b.Delete(ctx, "a.json"))
	require.NoError(t, b.Delete(ctx, "a.json"))
}
