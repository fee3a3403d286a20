// Package template implements the path template engine that maps a
// core.StoreKey onto a backing-medium path. Templates use positional
// placeholders ("{0}" … "{N-1}") interleaved with literal text, typically
// ending in a file extension:
//
//	validations/{0}/{1}/{2}.json
//
// Templates are parsed eagerly at store construction so malformed or
// arity-inconsistent configuration fails at bind time, not on first write.
// Rendering is a pure function of the template and the key: identical inputs
// always yield identical paths, and within one template no two distinct keys
// map to the same path. Downstream tooling (site builders, documentation
// renderers) depends on this layout being stable.
package template

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/expectstore/core"
)

// piece is one parsed unit of a template: either a literal run or a
// placeholder referencing a key segment by index.
type piece struct {
	literal string
	index   int // valid when placeholder
	isSlot  bool
}

// Template is a parsed, validated path template. It is immutable and safe
// for concurrent use.
type Template struct {
	raw    string
	pieces []piece
	arity  int
}

// Parse validates and compiles a raw template string.
//
// Rules enforced at parse time:
//   - every "{" opens a placeholder of the form {N} with decimal N
//   - placeholder indices cover exactly 0..N-1, each used once
//   - the literal between two placeholders must contain a "/". Segments may
//     not contain path separators, so the slash pins the boundary between
//     rendered segments; a separator the segments themselves could contain
//     (or no separator at all) would let distinct keys render to the same
//     path.
func Parse(raw string) (*Template, error) {
	if raw == "" {
		return nil, fmt.Errorf("template: empty template")
	}

	t := &Template{raw: raw}
	seen := map[int]bool{}
	sawSlot := false
	sep := ""

	rest := raw
	for len(rest) > 0 {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			t.pieces = append(t.pieces, piece{literal: rest})
			break
		}
		if open > 0 {
			t.pieces = append(t.pieces, piece{literal: rest[:open]})
			sep += rest[:open]
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			return nil, fmt.Errorf("template: unterminated placeholder in %q", raw)
		}
		idxText := rest[open+1 : open+closing]
		idx, err := strconv.Atoi(idxText)
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("template: bad placeholder {%s} in %q", idxText, raw)
		}
		if seen[idx] {
			return nil, fmt.Errorf("template: placeholder {%d} repeated in %q", idx, raw)
		}
		if sawSlot {
			if sep == "" {
				return nil, fmt.Errorf("template: adjacent placeholders in %q", raw)
			}
			if !strings.ContainsRune(sep, '/') {
				return nil, fmt.Errorf("template: placeholders in %q separated by %q; separator must contain a %q", raw, sep, "/")
			}
		}
		seen[idx] = true
		t.pieces = append(t.pieces, piece{index: idx, isSlot: true})
		sawSlot = true
		sep = ""
		rest = rest[open+closing+1:]
	}

	t.arity = len(seen)
	for i := range t.arity {
		if !seen[i] {
			return nil, fmt.Errorf("template: placeholder indices in %q are not contiguous from 0", raw)
		}
	}
	if t.arity == 0 {
		return nil, fmt.Errorf("template: no placeholders in %q", raw)
	}
	return t, nil
}

// MustParse is a Parse that panics on error, for templates fixed at compile
// time.
func MustParse(raw string) *Template {
	t, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// Arity returns the number of key segments the template consumes.
func (t *Template) Arity() int { return t.arity }

// String returns the raw template text.
func (t *Template) String() string { return t.raw }

// Render produces the backing-medium-relative path for key. It fails with
// core.ErrArityMismatch when the key length differs from the template arity
// and with core.ErrInvalidSegment when a segment is empty or contains a path
// separator. Render has no side effects.
func (t *Template) Render(key core.StoreKey) (string, error) {
	if key.Arity() != t.arity {
		return "", fmt.Errorf("template %q wants %d segments, key %q has %d: %w",
			t.raw, t.arity, key, key.Arity(), core.ErrArityMismatch)
	}

	var b strings.Builder
	for _, p := range t.pieces {
		if !p.isSlot {
			b.WriteString(p.literal)
			continue
		}
		seg := key[p.index]
		if err := checkSegment(seg); err != nil {
			return "", fmt.Errorf("template %q segment %d: %w", t.raw, p.index, err)
		}
		b.WriteString(seg)
	}
	return b.String(), nil
}

// checkSegment rejects segments that would escape or restructure the
// rendered path.
func checkSegment(seg string) error {
	if seg == "" {
		return fmt.Errorf("empty segment: %w", core.ErrInvalidSegment)
	}
	if strings.ContainsAny(seg, `/\`) {
		return fmt.Errorf("segment %q contains a path separator: %w", seg, core.ErrInvalidSegment)
	}
	return nil
}
