package persistence

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/hupe1980/sparsegrid/internal/conv"
)

// encoder appends uvarint-framed values to a buffer.
type encoder struct {
	buf bytes.Buffer
	tmp [binary.MaxVarintLen64]byte
}

func (e *encoder) uvarint(v uint64) {
	n := binary.PutUvarint(e.tmp[:], v)
	e.buf.Write(e.tmp[:n])
}

func (e *encoder) int(v int) { e.uvarint(uint64(v)) }

func (e *encoder) tag(b byte) { e.buf.WriteByte(b) }

func (e *encoder) bytes(p []byte) {
	e.int(len(p))
	e.buf.Write(p)
}

func (e *encoder) floats(v []float64) {
	e.int(len(v))
	for _, f := range v {
		binary.LittleEndian.PutUint64(e.tmp[:8], math.Float64bits(f))
		e.buf.Write(e.tmp[:8])
	}
}

// decoder reads values written by encoder. The first error sticks and
// turns every later read into a no-op.
type decoder struct {
	data []byte
	off  int
	err  error
}

func (d *decoder) fail(format string, args ...any) {
	if d.err == nil {
		d.err = fmt.Errorf("%w: "+format, append([]any{ErrCorrupt}, args...)...)
	}
}

func (d *decoder) uvarint() uint64 {
	if d.err != nil {
		return 0
	}
	v, n := binary.Uvarint(d.data[d.off:])
	if n <= 0 {
		d.fail("bad varint at offset %d", d.off)
		return 0
	}
	d.off += n
	return v
}

// int reads a length or index, which must not exceed the remaining data
// when it counts elements of at least size bytes.
func (d *decoder) int(size int) int {
	v := d.uvarint()
	n, err := conv.Uint64ToInt(v)
	if err != nil {
		d.fail("%v", err)
		return 0
	}
	if size > 0 && n > (len(d.data)-d.off)/size {
		d.fail("length %d exceeds remaining %d bytes", n, len(d.data)-d.off)
		return 0
	}
	return n
}

func (d *decoder) tag() byte {
	if d.err != nil {
		return 0
	}
	if d.off >= len(d.data) {
		d.fail("unexpected end of body")
		return 0
	}
	b := d.data[d.off]
	d.off++
	return b
}

func (d *decoder) bytes() []byte {
	n := d.int(1)
	if d.err != nil {
		return nil
	}
	p := d.data[d.off : d.off+n]
	d.off += n
	return p
}

func (d *decoder) floats() []float64 {
	n := d.int(8)
	if d.err != nil {
		return nil
	}
	v := make([]float64, n)
	for i := range v {
		v[i] = math.Float64frombits(binary.LittleEndian.Uint64(d.data[d.off:]))
		d.off += 8
	}
	return v
}

func (d *decoder) done() bool { return d.err == nil && d.off == len(d.data) }
