// Package sitebuilder assembles a manifest of persisted validation
// artifacts for downstream documentation rendering. It is a strictly
// read-only consumer of the store registry: it enumerates artifacts through
// List and reads them through LoadPath, relying on each store's path
// template being stable. It never writes.
//
// HTML rendering itself lives outside this module; the manifest is the
// hand-off point.
package sitebuilder

import (
	"context"
	"fmt"

	"github.com/hupe1980/expectstore/logging"
	"github.com/hupe1980/expectstore/store"
)

// Page is one artifact entry in a site manifest.
type Page struct {
	// Store is the registry name of the source store.
	Store string `json:"store"`

	// Path is the artifact's backend path, exactly as templated.
	Path string `json:"path"`

	// Document is the decoded artifact.
	Document map[string]any `json:"document"`
}

// Manifest enumerates every artifact a documentation site would render.
type Manifest struct {
	Pages []Page `json:"pages"`
}

// Options configures optional SiteBuilder behavior.
type Options struct {
	// Prefix narrows enumeration to artifacts under a path prefix.
	Prefix string

	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// SiteBuilder walks configured source stores and collects their artifacts.
type SiteBuilder struct {
	registry     *store.Registry
	sourceStores []string
	prefix       string
	logger       logging.Logger
}

// New creates a SiteBuilder over the named source stores. Every name must
// resolve in the registry; a dangling name fails here, at bind time.
func New(reg *store.Registry, sourceStores []string, optFns ...func(*Options)) (*SiteBuilder, error) {
	if reg == nil {
		return nil, fmt.Errorf("sitebuilder: registry must not be nil")
	}
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	for _, name := range sourceStores {
		if _, err := reg.Resolve(name); err != nil {
			return nil, fmt.Errorf("sitebuilder: %w", err)
		}
	}
	return &SiteBuilder{
		registry:     reg,
		sourceStores: sourceStores,
		prefix:       opts.Prefix,
		logger:       opts.Logger,
	}, nil
}

// Build enumerates each source store and loads every artifact into the
// returned manifest. Artifacts that fail to decode abort the build; a
// documentation site must not silently render a partial artifact set.
func (sb *SiteBuilder) Build(ctx context.Context) (*Manifest, error) {
	manifest := &Manifest{}
	for _, name := range sb.sourceStores {
		src, err := sb.registry.Resolve(name)
		if err != nil {
			return nil, fmt.Errorf("sitebuilder: %w", err)
		}
		for path, err := range src.List(ctx, sb.prefix) {
			if err != nil {
				return nil, fmt.Errorf("sitebuilder: store %s: %w", name, err)
			}
			var doc map[string]any
			if err := src.LoadPath(ctx, path, &doc); err != nil {
				return nil, fmt.Errorf("sitebuilder: %w", err)
			}
			manifest.Pages = append(manifest.Pages, Page{Store: name, Path: path, Document: doc})
		}
		sb.logger.Debug("site source enumerated", "store", name, "pages", len(manifest.Pages))
	}
	return manifest, nil
}
