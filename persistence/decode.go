package persistence

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/sparsegrid/codec"
	"github.com/hupe1980/sparsegrid/grid"
	"github.com/hupe1980/sparsegrid/internal/conv"
	"github.com/hupe1980/sparsegrid/interp"
	"github.com/hupe1980/sparsegrid/packed"
	"github.com/hupe1980/sparsegrid/subgrid"
)

// Decode reads a grid written by Encode, or by a version 1 writer.
func Decode(r io.Reader) (*grid.Grid, error) {
	cr := NewChecksumReader(r)

	var header FileHeader
	if err := binary.Read(cr, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", ErrCorrupt, err)
	}
	if header.Magic != MagicNumber {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, header.Magic)
	}
	if header.Version != Version && header.Version != LegacyVersion {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidVersion, header.Version)
	}

	name := make([]byte, header.CodecLen)
	if _, err := io.ReadFull(cr, name); err != nil {
		return nil, fmt.Errorf("%w: reading codec name: %w", ErrCorrupt, err)
	}
	c, ok := codec.ByName(string(name))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}

	storedLen, err := conv.Uint64ToInt(header.StoredLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	bodyLen, err := conv.Uint64ToInt(header.BodyLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	stored, err := io.ReadAll(io.LimitReader(cr, int64(storedLen)))
	if err != nil {
		return nil, err
	}
	if len(stored) != storedLen {
		return nil, fmt.Errorf("%w: truncated body", ErrCorrupt)
	}

	if err := cr.VerifyTrailer(); err != nil {
		return nil, err
	}

	body, err := decompress(stored, header.Compression, bodyLen)
	if err != nil {
		return nil, err
	}

	d := &decoder{data: body}
	g, bm, err := decodeMeta(d, c)
	if err != nil {
		return nil, err
	}

	decodeCell := decodeSubgrid
	if header.Version == LegacyVersion {
		decodeCell = decodeLegacySubgrid
	}

	it := bm.Iterator()
	for it.HasNext() {
		i := it.Next()
		cell, ok := g.CellAt(int(i))
		if !ok {
			return nil, fmt.Errorf("%w: cell %d outside the grid", ErrCorrupt, i)
		}

		sg := decodeCell(d, c)
		if d.err != nil {
			return nil, d.err
		}
		if err := g.SetSubgrid(cell.Order, cell.Bin, cell.Channel, sg); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
	}

	if !d.done() {
		if d.err != nil {
			return nil, d.err
		}
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(d.data)-d.off)
	}

	return g, nil
}

// Unmarshal decodes a grid from data.
func Unmarshal(data []byte) (*grid.Grid, error) {
	return Decode(bytes.NewReader(data))
}

func decodeMeta(d *decoder, c codec.Codec) (*grid.Grid, *roaring.Bitmap, error) {
	data := d.bytes()
	if d.err != nil {
		return nil, nil, d.err
	}

	var meta gridMeta
	if err := c.Unmarshal(data, &meta); err != nil {
		return nil, nil, fmt.Errorf("%w: grid description: %w", ErrCorrupt, err)
	}

	g, err := grid.New(meta.Orders, meta.Channels, meta.Bins, meta.Interps, meta.Convolutions)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	for k, v := range meta.Metadata {
		g.SetMetadata(k, v)
	}

	bm := roaring.New()
	data = d.bytes()
	if d.err != nil {
		return nil, nil, d.err
	}
	if err := bm.UnmarshalBinary(data); err != nil {
		return nil, nil, fmt.Errorf("%w: cell bitmap: %w", ErrCorrupt, err)
	}

	return g, bm, nil
}

func decodeSubgrid(d *decoder, c codec.Codec) subgrid.Subgrid {
	switch tag := d.tag(); tag {
	case tagInterp:
		var interps []interp.Interp
		data := d.bytes()
		if d.err != nil {
			return nil
		}
		if err := c.Unmarshal(data, &interps); err != nil {
			d.fail("interpolations: %v", err)
			return nil
		}
		static := d.floats()
		array := decodeArray(d)
		if d.err != nil {
			return nil
		}

		sg, err := subgrid.RestoreInterp(interps, array, static)
		if err != nil {
			d.fail("%v", err)
			return nil
		}
		return sg

	case tagImport:
		rank := d.int(1)
		nodes := make([][]float64, rank)
		for i := range nodes {
			nodes[i] = d.floats()
		}
		array := decodeArray(d)
		if d.err != nil {
			return nil
		}
		if !shapeMatches(array.Shape(), nodes) {
			d.fail("node axes don't match the array shape %v", array.Shape())
			return nil
		}
		return subgrid.NewImport(array, nodes)

	default:
		d.fail("unknown subgrid tag %d", tag)
		return nil
	}
}

func decodeArray(d *decoder) *packed.Array {
	data := d.bytes()
	if d.err != nil {
		return nil
	}

	var array packed.Array
	if err := array.UnmarshalBinary(data); err != nil {
		d.fail("%v", err)
		return nil
	}
	return &array
}

func shapeMatches(shape []int, nodes [][]float64) bool {
	if len(shape) != len(nodes) {
		return false
	}
	for i, axis := range nodes {
		if len(axis) != shape[i] {
			return false
		}
	}
	return true
}
