// Package s3 provides a core.Backend implementation backed by Amazon S3 or
// any S3-compatible object store (MinIO, R2, etc.).
//
// Storage paths are mapped to object keys under a configured bucket and
// optional prefix. The caller is responsible for configuring the [s3.Client]
// with appropriate credentials, region and endpoint; this package keeps its
// dependency surface narrow by accepting any type that satisfies [Client].
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/hupe1980/expectstore/core"
)

// Client abstracts the S3 API operations used by [Backend]. The [s3.Client]
// type satisfies this interface.
type Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Backend implements core.Backend on an S3 bucket. S3's per-key read/write
// consistency supplies the atomic-overwrite guarantee: a GetObject racing a
// PutObject on the same key observes either the old or the new object,
// never a mix.
type Backend struct {
	client Client
	bucket string
	prefix string
}

// New creates an S3-backed storage medium.
//
// The client should be pre-configured (credentials, region, endpoint).
// Prefix is prepended to all object keys; pass "" for no prefix.
func New(client Client, bucket, prefix string) *Backend {
	return &Backend{client: client, bucket: bucket, prefix: prefix}
}

// key builds the full S3 object key for the given storage path.
func (b *Backend) key(path string) string {
	if b.prefix == "" {
		return path
	}
	return b.prefix + "/" + path
}

// Put uploads data via PutObject, replacing any existing object.
func (b *Backend) Put(ctx context.Context, path string, data []byte) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key(path)),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w: %w", path, core.ErrIO, err)
	}
	return nil
}

// Get downloads the object at path or returns core.ErrNotFound for a
// missing key.
func (b *Backend) Get(ctx context.Context, path string) ([]byte, error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key(path)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("s3 get %s: %w", path, core.ErrNotFound)
		}
		return nil, fmt.Errorf("s3 get %s: %w: %w", path, core.ErrIO, err)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 get %s: %w: %w", path, core.ErrIO, err)
	}
	return data, nil
}

// Exists checks whether the object exists via HeadObject.
func (b *Backend) Exists(ctx context.Context, path string) (bool, error) {
	_, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key(path)),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("s3 exists %s: %w: %w", path, core.ErrIO, err)
	}
	return true, nil
}

// List yields object paths beginning with prefix, paginating through
// ListObjectsV2 lazily. Paths are relative to the backend's configured key
// prefix. Each range restarts pagination from the first page.
func (b *Backend) List(ctx context.Context, prefix string) iter.Seq2[string, error] {
	full := b.key(prefix)
	strip := 0
	if b.prefix != "" {
		strip = len(b.prefix) + 1
	}
	return func(yield func(string, error) bool) {
		var token *string
		for {
			out, err := b.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
				Bucket:            aws.String(b.bucket),
				Prefix:            aws.String(full),
				ContinuationToken: token,
			})
			if err != nil {
				yield("", fmt.Errorf("s3 list %s: %w: %w", prefix, core.ErrIO, err))
				return
			}
			for _, obj := range out.Contents {
				key := aws.ToString(obj.Key)
				if len(key) < strip {
					continue
				}
				if !yield(key[strip:], nil) {
					return
				}
			}
			if out.IsTruncated == nil || !*out.IsTruncated {
				return
			}
			token = out.NextContinuationToken
		}
	}
}

// Delete removes the object via DeleteObject. S3 DeleteObject is already
// idempotent (returns success for missing keys).
func (b *Backend) Delete(ctx context.Context, path string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key(path)),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w: %w", path, core.ErrIO, err)
	}
	return nil
}

// isNotFound reports whether err indicates the S3 object does not exist.
func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}

// Compile-time interface check.
var _ core.Backend = (*Backend)(nil)
