package persistence

import (
	"io"

	"github.com/hupe1980/sparsegrid/grid"
	"github.com/hupe1980/sparsegrid/internal/fs"
	"github.com/hupe1980/sparsegrid/internal/mmap"
)

// SaveToFile atomically replaces filename with the encoding of g.
func SaveToFile(filename string, g *grid.Grid, opts ...Option) error {
	return saveToFile(fs.Default, filename, g, opts...)
}

func saveToFile(fsys fs.FileSystem, filename string, g *grid.Grid, opts ...Option) error {
	return fs.WriteFile(fsys, filename, 0o644, func(w io.Writer) error {
		return Encode(w, g, opts...)
	})
}

// LoadFromFile decodes the grid stored in filename.
func LoadFromFile(filename string) (*grid.Grid, error) {
	m, err := mmap.Open(filename)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	_ = m.Advise(mmap.AccessSequential)
	return Unmarshal(m.Bytes())
}
