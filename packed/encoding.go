package packed

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrCorrupt is returned when a binary encoding of an Array is inconsistent.
var ErrCorrupt = errors.New("packed: corrupt encoding")

// MarshalBinary implements encoding.BinaryMarshaler.
//
// Layout (all integers as uvarint): ndim, shape..., nruns, (start, length)...,
// followed by the entries as little-endian float64 bits.
func (a *Array) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, 16+len(a.shape)*2+len(a.startIndices)*4+len(a.entries)*8)

	buf = binary.AppendUvarint(buf, uint64(len(a.shape)))
	for _, d := range a.shape {
		buf = binary.AppendUvarint(buf, uint64(d))
	}

	buf = binary.AppendUvarint(buf, uint64(len(a.startIndices)))
	for i, start := range a.startIndices {
		buf = binary.AppendUvarint(buf, uint64(start))
		buf = binary.AppendUvarint(buf, uint64(a.lengths[i]))
	}

	for _, v := range a.entries {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}

	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The runs are
// validated: they must be ascending, non-overlapping and inside the shape.
func (a *Array) UnmarshalBinary(data []byte) error {
	r := &uvarintReader{data: data}

	ndim := r.next()
	if r.err != nil || ndim > 64 {
		return fmt.Errorf("%w: invalid dimension count", ErrCorrupt)
	}

	shape := make([]int, ndim)
	size := uint64(1)
	for i := range shape {
		d := r.next()
		if r.err != nil || d > math.MaxInt32 {
			return fmt.Errorf("%w: invalid extent", ErrCorrupt)
		}
		shape[i] = int(d)
		size *= d
		if size > math.MaxInt64/2 {
			return fmt.Errorf("%w: shape %v too large", ErrCorrupt, shape)
		}
	}

	nruns := r.next()
	// Each run needs at least two varint bytes.
	if r.err != nil || nruns > size || nruns > uint64(len(data)-r.pos)/2 {
		return fmt.Errorf("%w: invalid run count", ErrCorrupt)
	}

	startIndices := make([]int, nruns)
	lengths := make([]int, nruns)
	total := uint64(0)
	end := uint64(0)
	for i := range startIndices {
		start := r.next()
		length := r.next()
		if r.err != nil {
			return fmt.Errorf("%w: truncated run table", ErrCorrupt)
		}
		if length == 0 || (i > 0 && start < end) || start+length > size {
			return fmt.Errorf("%w: run %d [%d, %d) is invalid", ErrCorrupt, i, start, start+length)
		}
		startIndices[i] = int(start)
		lengths[i] = int(length)
		total += length
		end = start + length
	}

	rest := data[r.pos:]
	if uint64(len(rest)) != total*8 {
		return fmt.Errorf("%w: expected %d entries, found %d bytes", ErrCorrupt, total, len(rest))
	}

	entries := make([]float64, total)
	for i := range entries {
		entries[i] = math.Float64frombits(binary.LittleEndian.Uint64(rest[i*8:]))
	}

	a.shape = shape
	a.startIndices = startIndices
	a.lengths = lengths
	a.entries = entries

	return nil
}

type uvarintReader struct {
	data []byte
	pos  int
	err  error
}

func (r *uvarintReader) next() uint64 {
	if r.err != nil {
		return 0
	}
	v, n := binary.Uvarint(r.data[r.pos:])
	if n <= 0 {
		r.err = ErrCorrupt
		return 0
	}
	r.pos += n
	return v
}
