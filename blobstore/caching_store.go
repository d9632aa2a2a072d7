package blobstore

import (
	"context"

	"github.com/hupe1980/sparsegrid/internal/cache"
)

// CachingStore keeps the content of recently opened blobs in an LRU in
// front of another store. Writes and deletes go through and invalidate the
// cached copy.
type CachingStore struct {
	inner BlobStore
	cache *cache.LRU
}

// NewCachingStore wraps inner with c.
func NewCachingStore(inner BlobStore, c *cache.LRU) *CachingStore {
	return &CachingStore{inner: inner, cache: c}
}

// Open serves the blob from the cache, reading it whole from the inner
// store on a miss.
func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	if data, ok := s.cache.Get(name); ok {
		return &memoryBlob{data: data}, nil
	}

	data, err := ReadAll(ctx, s.inner, name)
	if err != nil {
		return nil, err
	}
	s.cache.Set(name, data)
	return &memoryBlob{data: data}, nil
}

func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.cache.Delete(name)
	return s.inner.Put(ctx, name, data)
}

func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.cache.Delete(name)
	return s.inner.Delete(ctx, name)
}

func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}
