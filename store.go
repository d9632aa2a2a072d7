package sparsegrid

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/sparsegrid/blobstore"
	"github.com/hupe1980/sparsegrid/grid"
	"github.com/hupe1980/sparsegrid/persistence"
)

// Store saves and loads grids by name in a blob store. A Store is safe for
// concurrent use as long as the underlying BlobStore is.
type Store struct {
	blobs blobstore.BlobStore
	opts  options
}

// NewStore creates a Store on top of blobs.
func NewStore(blobs blobstore.BlobStore, optFns ...Option) *Store {
	return &Store{blobs: blobs, opts: applyOptions(optFns)}
}

// Save encodes g and stores it under name, replacing any previous grid.
func (s *Store) Save(ctx context.Context, name string, g *grid.Grid) (err error) {
	start := time.Now()
	size := 0
	defer func() {
		s.opts.logger.LogSave(ctx, name, size, time.Since(start), err)
		s.opts.metricsCollector.RecordSave(size, time.Since(start), err)
	}()

	data, err := persistence.Marshal(g,
		persistence.WithCodec(s.opts.codec),
		persistence.WithCompression(s.opts.compression),
	)
	if err != nil {
		return err
	}
	size = len(data)

	if err := s.opts.controller.WaitIO(ctx, size); err != nil {
		return err
	}
	return translateError(s.blobs.Put(ctx, name, data))
}

// Load reads and decodes the grid stored under name. It returns an error
// wrapping ErrNotFound if there is none and ErrInvalidGrid if the stored
// bytes are not a grid.
func (s *Store) Load(ctx context.Context, name string) (g *grid.Grid, err error) {
	start := time.Now()
	var size int64
	defer func() {
		s.opts.logger.LogLoad(ctx, name, int(size), time.Since(start), err)
		s.opts.metricsCollector.RecordLoad(int(size), time.Since(start), err)
	}()

	b, err := s.blobs.Open(ctx, name)
	if err != nil {
		return nil, translateError(err)
	}
	defer b.Close()

	size = b.Size()
	if err := s.opts.controller.ReserveMemory(size); err != nil {
		return nil, translateError(err)
	}
	defer s.opts.controller.ReleaseMemory(size)

	if err := s.opts.controller.WaitIO(ctx, int(size)); err != nil {
		return nil, err
	}

	var data []byte
	if m, ok := b.(blobstore.Mappable); ok {
		if data, err = m.Bytes(); err != nil {
			return nil, translateError(err)
		}
	} else {
		data = make([]byte, size)
		n, err := b.ReadAt(ctx, data, 0)
		if err != nil && err != io.EOF {
			return nil, translateError(err)
		}
		if int64(n) != size {
			return nil, fmt.Errorf("%w: short read of %q", ErrInvalidGrid, name)
		}
	}

	g, err = persistence.Unmarshal(data)
	if err != nil {
		return nil, translateError(err)
	}
	return g, nil
}

// List returns the sorted names of the grids starting with prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	names, err := s.blobs.List(ctx, prefix)
	return names, translateError(err)
}

// Delete removes the grid stored under name. Deleting a missing grid is not
// an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	return translateError(s.blobs.Delete(ctx, name))
}

// Merge loads the grids named by sources, merges them in order into the
// first one and stores the sum under target.
func (s *Store) Merge(ctx context.Context, target string, sources ...string) (err error) {
	defer func() { s.opts.logger.LogMerge(ctx, target, sources, err) }()

	if len(sources) == 0 {
		return fmt.Errorf("%w: nothing to merge", ErrInvalidGrid)
	}

	g, err := s.Load(ctx, sources[0])
	if err != nil {
		return err
	}
	for _, name := range sources[1:] {
		other, err := s.Load(ctx, name)
		if err != nil {
			return err
		}
		if err := g.Merge(other); err != nil {
			return translateError(fmt.Errorf("merging %q: %w", name, err))
		}
	}

	return s.Save(ctx, target, g)
}

// Optimize loads the grid stored under name, optimizes it and stores it back.
func (s *Store) Optimize(ctx context.Context, name string) error {
	g, err := s.Load(ctx, name)
	if err != nil {
		return err
	}

	before := g.NonEmpty().GetCardinality()
	g.Optimize()
	s.opts.logger.LogOptimize(ctx, name, before, g.NonEmpty().GetCardinality())

	return s.Save(ctx, name, g)
}
