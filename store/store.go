package store

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/hupe1980/expectstore/core"
	"github.com/hupe1980/expectstore/logging"
	"github.com/hupe1980/expectstore/template"
)

// WritePolicy controls how a store treats a save to a key that already holds
// an artifact.
type WritePolicy int

const (
	// PolicyOverwrite replaces existing content; repeated saves are
	// idempotent. Used for expectation suites and evaluation parameters.
	PolicyOverwrite WritePolicy = iota

	// PolicyAppendOnly refuses to clobber: a save to an occupied key fails
	// with core.ErrAlreadyExists. Used for validation results, which must
	// never silently lose a prior run's outcome under a colliding key.
	PolicyAppendOnly
)

// String returns the configuration name of the policy.
func (p WritePolicy) String() string {
	if p == PolicyAppendOnly {
		return "append"
	}
	return "overwrite"
}

// Options configures optional Store behavior.
type Options struct {
	// Codec serializes documents; defaults to JSONCodec.
	Codec Codec

	// Policy selects overwrite vs append-only writes; defaults to overwrite.
	Policy WritePolicy

	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Store is a typed facade over a core.Backend. It renders core.StoreKey
// tuples into backend paths through its template, serializes documents
// through its codec, and enforces its write policy. A Store owns its backend
// exclusively; it is immutable after construction and safe for concurrent
// use.
type Store struct {
	name    string
	backend core.Backend
	tmpl    *template.Template
	codec   Codec
	policy  WritePolicy
	logger  logging.Logger
}

// New constructs a Store. The template is already parsed, so arity and shape
// misconfiguration has necessarily been caught before this point; New only
// validates presence of its collaborators.
func New(name string, backend core.Backend, tmpl *template.Template, optFns ...func(*Options)) (*Store, error) {
	if name == "" {
		return nil, errors.New("store: name must not be empty")
	}
	if backend == nil {
		return nil, fmt.Errorf("store %s: backend must not be nil", name)
	}
	if tmpl == nil {
		return nil, fmt.Errorf("store %s: template must not be nil", name)
	}

	opts := Options{Codec: JSONCodec{}, Policy: PolicyOverwrite, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Store{
		name:    name,
		backend: backend,
		tmpl:    tmpl,
		codec:   opts.Codec,
		policy:  opts.Policy,
		logger:  opts.Logger,
	}, nil
}

// Name returns the registry name of the store.
func (s *Store) Name() string { return s.name }

// Arity returns the key tuple length the store expects.
func (s *Store) Arity() int { return s.tmpl.Arity() }

// Policy returns the store's write policy.
func (s *Store) Policy() WritePolicy { return s.policy }

// Path renders the backend path for key without touching the backend.
// Exposed so downstream consumers can reason about the persisted layout.
func (s *Store) Path(key core.StoreKey) (string, error) {
	return s.tmpl.Render(key)
}

// Save serializes doc and writes it at the key's rendered path as a full
// document overwrite. Under PolicyAppendOnly an occupied key fails with
// core.ErrAlreadyExists and nothing is written.
func (s *Store) Save(ctx context.Context, key core.StoreKey, doc any) error {
	path, err := s.tmpl.Render(key)
	if err != nil {
		return fmt.Errorf("store %s: %w", s.name, err)
	}

	if s.policy == PolicyAppendOnly {
		exists, err := s.backend.Exists(ctx, path)
		if err != nil {
			return fmt.Errorf("store %s: %w", s.name, err)
		}
		if exists {
			return fmt.Errorf("store %s: key %q: %w", s.name, key, core.ErrAlreadyExists)
		}
	}

	data, err := s.codec.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store %s: key %q: %w: %w", s.name, key, core.ErrSerialization, err)
	}

	if err := s.backend.Put(ctx, path, data); err != nil {
		s.logger.Error("store write failed", "store", s.name, "path", path, "error", err)
		return fmt.Errorf("store %s: %w", s.name, err)
	}
	s.logger.Debug("store write completed", "store", s.name, "path", path, "bytes", len(data))
	return nil
}

// Load reads the document at key into out. Absence surfaces as
// core.ErrNotFound; bytes that do not parse under the codec surface as
// core.ErrDeserialization, so callers can tell corruption from absence.
func (s *Store) Load(ctx context.Context, key core.StoreKey, out any) error {
	path, err := s.tmpl.Render(key)
	if err != nil {
		return fmt.Errorf("store %s: %w", s.name, err)
	}

	data, err := s.backend.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("store %s: %w", s.name, err)
	}

	if err := s.codec.Unmarshal(data, out); err != nil {
		return fmt.Errorf("store %s: key %q: %w: %w", s.name, key, core.ErrDeserialization, err)
	}
	return nil
}

// Has reports whether an artifact exists at key.
func (s *Store) Has(ctx context.Context, key core.StoreKey) (bool, error) {
	path, err := s.tmpl.Render(key)
	if err != nil {
		return false, fmt.Errorf("store %s: %w", s.name, err)
	}
	exists, err := s.backend.Exists(ctx, path)
	if err != nil {
		return false, fmt.Errorf("store %s: %w", s.name, err)
	}
	return exists, nil
}

// List yields the backend paths of stored artifacts beginning with prefix.
// Downstream consumers (site builders) enumerate artifacts this way and rely
// on the template layout being stable.
func (s *Store) List(ctx context.Context, prefix string) iter.Seq2[string, error] {
	return s.backend.List(ctx, prefix)
}

// LoadPath reads and decodes the document at a backend path previously
// obtained from List. It shares Load's error contract.
func (s *Store) LoadPath(ctx context.Context, path string, out any) error {
	data, err := s.backend.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("store %s: %w", s.name, err)
	}
	if err := s.codec.Unmarshal(data, out); err != nil {
		return fmt.Errorf("store %s: path %q: %w: %w", s.name, path, core.ErrDeserialization, err)
	}
	return nil
}
