// Copyright 2026 Greation Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package library abstracts the source of illustration listings. A
// Provider hides whether the listing comes from a fixture, a document in
// blob storage, or an external catalog service behind an adapter.
package library

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/greation/sermonkit/blob"
	"github.com/greation/sermonkit/cache"
	"github.com/greation/sermonkit/core"
)

// Provider lists the illustrations available in a source library.
type Provider interface {
	List(ctx context.Context) ([]core.IllustrationRecord, error)
}

// StaticProvider serves a fixed listing. Used in tests and for small
// hand-curated libraries.
type StaticProvider struct {
	Records []core.IllustrationRecord
}

var _ Provider = (*StaticProvider)(nil)

// List returns a copy of the fixed listing.
func (p *StaticProvider) List(_ context.Context) ([]core.IllustrationRecord, error) {
	out := make([]core.IllustrationRecord, len(p.Records))
	copy(out, p.Records)
	return out, nil
}

// BlobProvider reads the listing as a JSON array from a blob backend.
// The same document format works from local disk and from S3.
type BlobProvider struct {
	backend blob.Backend
	key     string
}

var _ Provider = (*BlobProvider)(nil)

// NewBlobProvider creates a provider reading the listing under key.
func NewBlobProvider(backend blob.Backend, key string) (*BlobProvider, error) {
	if backend == nil {
		return nil, ErrBackendRequired
	}
	if key == "" {
		return nil, ErrKeyRequired
	}
	return &BlobProvider{backend: backend, key: key}, nil
}

// List fetches and decodes the listing document.
func (p *BlobProvider) List(ctx context.Context) ([]core.IllustrationRecord, error) {
	data, err := p.backend.Fetch(ctx, p.key)
	if err != nil {
		return nil, fmt.Errorf("fetch listing: %w", err)
	}

	var records []core.IllustrationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}
	return records, nil
}

// CachedProvider wraps a Provider with an expiring cache so repeated
// listings within the TTL window skip the upstream call. Cache failures
// degrade to the inner provider, never to an error.
type CachedProvider struct {
	inner  Provider
	cache  *cache.Cache
	key    string
	logger *slog.Logger
}

var _ Provider = (*CachedProvider)(nil)

// NewCachedProvider wraps inner with the given cache. Listings are
// stored under key.
func NewCachedProvider(inner Provider, listingCache *cache.Cache, key string) (*CachedProvider, error) {
	if inner == nil {
		return nil, ErrProviderRequired
	}
	if listingCache == nil {
		return nil, ErrCacheRequired
	}
	if key == "" {
		return nil, ErrKeyRequired
	}
	return &CachedProvider{
		inner:  inner,
		cache:  listingCache,
		key:    key,
		logger: slog.Default().With("component", "library"),
	}, nil
}

// List returns the cached listing when fresh, otherwise consults the
// inner provider and refreshes the cache.
func (p *CachedProvider) List(ctx context.Context) ([]core.IllustrationRecord, error) {
	if data, err := p.cache.Get(p.key); err == nil {
		var records []core.IllustrationRecord
		if err := json.Unmarshal(data, &records); err == nil {
			p.logger.Debug("serving listing from cache", "records", len(records))
			return records, nil
		}
		p.logger.Warn("cached listing is corrupt, refetching")
	}

	records, err := p.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(records); err == nil {
		if err := p.cache.Set(p.key, data); err != nil {
			p.logger.Warn("failed to cache listing", "err", err)
		}
	}
	return records, nil
}

// Invalidate evicts the cached listing so the next List hits the source.
func (p *CachedProvider) Invalidate() error {
	return p.cache.Delete(p.key)
}
