package backend

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hupe1980/expectstore/core"
)

// Filesystem implements core.Backend on top of the local filesystem. All
// paths are resolved relative to the configured root directory and parent
// directories are created on write.
//
// Put writes to a temporary file in the destination directory and renames it
// into place, so a concurrent Get never observes a half-written artifact.
type Filesystem struct {
	root string
}

// NewFilesystem creates a Filesystem backend rooted at dir. The directory is
// created (with parents) if it does not already exist.
func NewFilesystem(dir string) (*Filesystem, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("filesystem backend: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("filesystem backend: %w: %w", core.ErrIO, err)
	}
	return &Filesystem{root: abs}, nil
}

// Root returns the absolute base directory.
func (f *Filesystem) Root() string { return f.root }

// resolve turns a storage path into an absolute filesystem path.
func (f *Filesystem) resolve(path string) string {
	return filepath.Join(f.root, filepath.FromSlash(path))
}

// Put writes data at path, creating parent directories as needed. The write
// lands in a temp file first and is renamed over the destination.
func (f *Filesystem) Put(_ context.Context, path string, data []byte) error {
	full := f.resolve(path)
	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("filesystem put %s: %w: %w", path, core.ErrIO, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(full)+".tmp*")
	if err != nil {
		return fmt.Errorf("filesystem put %s: %w: %w", path, core.ErrIO, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("filesystem put %s: %w: %w", path, core.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("filesystem put %s: %w: %w", path, core.ErrIO, err)
	}
	if err := os.Rename(tmpName, full); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("filesystem put %s: %w: %w", path, core.ErrIO, err)
	}
	return nil
}

// Get returns the content stored at path or core.ErrNotFound.
func (f *Filesystem) Get(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(f.resolve(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("filesystem get %s: %w", path, core.ErrNotFound)
		}
		return nil, fmt.Errorf("filesystem get %s: %w: %w", path, core.ErrIO, err)
	}
	return data, nil
}

// Exists reports whether path holds content.
func (f *Filesystem) Exists(_ context.Context, path string) (bool, error) {
	info, err := os.Stat(f.resolve(path))
	if err == nil {
		return !info.IsDir(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("filesystem exists %s: %w: %w", path, core.ErrIO, err)
}

// List yields every stored path under the root beginning with prefix, in
// slash form relative to the root. The walk starts at the deepest directory
// the prefix pins down, so unrelated subtrees are never scanned. Each range
// re-walks the tree, so the sequence is restartable and reflects current
// state.
func (f *Filesystem) List(ctx context.Context, prefix string) iter.Seq2[string, error] {
	start := f.root
	if dir := path.Dir(prefix); dir != "." && dir != "/" {
		start = filepath.Join(f.root, filepath.FromSlash(dir))
	}
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(start, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return nil
				}
				return err
			}
			if d.IsDir() {
				return ctx.Err()
			}
			rel, err := filepath.Rel(f.root, p)
			if err != nil {
				return err
			}
			slashed := filepath.ToSlash(rel)
			if !strings.HasPrefix(slashed, prefix) {
				return nil
			}
			if !yield(slashed, nil) {
				return fs.SkipAll
			}
			return ctx.Err()
		})
		if err != nil && !errors.Is(err, fs.SkipAll) {
			yield("", fmt.Errorf("filesystem list %s: %w: %w", prefix, core.ErrIO, err))
		}
	}
}

// Delete removes the content at path. Deleting an absent path is not an
// error.
func (f *Filesystem) Delete(_ context.Context, path string) error {
	err := os.Remove(f.resolve(path))
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("filesystem delete %s: %w: %w", path, core.ErrIO, err)
}

// Compile-time interface check.
var _ core.Backend = (*Filesystem)(nil)
