package backend

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/hupe1980/expectstore/core"
)

// Badger implements core.Backend on an embedded BadgerDB v4 database.
// Storage paths map directly to badger keys. Badger's transactional writes
// give the atomic-overwrite guarantee for free: a concurrent Get sees the
// previous value until the write transaction commits.
type Badger struct {
	db *badger.DB
}

// BadgerOptions configures the BadgerDB backend.
type BadgerOptions struct {
	// Dir is the directory for BadgerDB data files. Required unless
	// InMemory is set.
	Dir string

	// InMemory runs BadgerDB in memory-only mode (no disk persistence).
	// Useful for testing with a real badger engine.
	InMemory bool

	// Logger sets the badger logger. If nil, a quiet logger that only
	// reports warnings and errors is used.
	Logger badger.Logger
}

// NewBadger opens (or creates) a BadgerDB-backed storage medium. The caller
// owns the returned backend and must Close it to release the database lock.
func NewBadger(opts BadgerOptions) (*Badger, error) {
	if !opts.InMemory && opts.Dir == "" {
		return nil, errors.New("backend: BadgerOptions.Dir is required for on-disk mode")
	}
	dbOpts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		dbOpts = dbOpts.WithInMemory(true)
	}
	if opts.Logger != nil {
		dbOpts = dbOpts.WithLogger(opts.Logger)
	} else {
		dbOpts = dbOpts.WithLogger(quietBadgerLogger{})
	}
	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("badger open: %w: %w", core.ErrIO, err)
	}
	return &Badger{db: db}, nil
}

// Put stores data at path inside a single write transaction.
func (b *Badger) Put(_ context.Context, path string, data []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(path), data)
	})
	if err != nil {
		return fmt.Errorf("badger put %s: %w: %w", path, core.ErrIO, err)
	}
	return nil
}

// Get returns the content stored at path or core.ErrNotFound.
func (b *Badger) Get(_ context.Context, path string) ([]byte, error) {
	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(path))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("badger get %s: %w", path, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("badger get %s: %w: %w", path, core.ErrIO, err)
	}
	return val, nil
}

// Exists reports whether path holds content.
func (b *Badger) Exists(_ context.Context, path string) (bool, error) {
	err := b.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(path))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("badger exists %s: %w: %w", path, core.ErrIO, err)
	}
	return true, nil
}

// List yields stored paths beginning with prefix using a badger prefix
// iterator. Each range opens a fresh read transaction, so the sequence is
// restartable.
func (b *Badger) List(_ context.Context, prefix string) iter.Seq2[string, error] {
	prefixBytes := []byte(prefix)
	return func(yield func(string, error) bool) {
		err := b.db.View(func(txn *badger.Txn) error {
			iterOpts := badger.DefaultIteratorOptions
			iterOpts.PrefetchValues = false
			iterOpts.Prefix = prefixBytes
			it := txn.NewIterator(iterOpts)
			defer it.Close()

			for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
				key := it.Item().KeyCopy(nil)
				if !yield(string(key), nil) {
					return nil
				}
			}
			return nil
		})
		if err != nil {
			yield("", fmt.Errorf("badger list %s: %w: %w", prefix, core.ErrIO, err))
		}
	}
}

// Delete removes the content at path. Deleting an absent path is not an
// error.
func (b *Badger) Delete(_ context.Context, path string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(path))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("badger delete %s: %w: %w", path, core.ErrIO, err)
	}
	return nil
}

// Close releases the underlying database. The backend must not be used
// afterwards.
func (b *Badger) Close() error {
	return b.db.Close()
}

// quietBadgerLogger suppresses badger's debug and info output.
type quietBadgerLogger struct{}

func (quietBadgerLogger) Errorf(f string, v ...interface{})   { log.Printf("[badger] ERROR: "+f, v...) }
func (quietBadgerLogger) Warningf(f string, v ...interface{}) { log.Printf("[badger] WARN: "+f, v...) }
func (quietBadgerLogger) Infof(string, ...interface{})        {}
func (quietBadgerLogger) Debugf(string, ...interface{})       {}

// Compile-time interface check.
var _ core.Backend = (*Badger)(nil)
