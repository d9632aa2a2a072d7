package persistence

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hupe1980/sparsegrid/boc"
	"github.com/hupe1980/sparsegrid/codec"
	"github.com/hupe1980/sparsegrid/convolution"
	"github.com/hupe1980/sparsegrid/grid"
	"github.com/hupe1980/sparsegrid/internal/conv"
	"github.com/hupe1980/sparsegrid/interp"
	"github.com/hupe1980/sparsegrid/subgrid"
)

// Option configures Encode.
type Option func(*options)

type options struct {
	codec       codec.Codec
	compression Compression
}

// WithCodec sets the codec of the grid description. Decoding requires a
// codec known to codec.ByName.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithCompression sets the body compression. The default is LZ4.
func WithCompression(c Compression) Option {
	return func(o *options) { o.compression = c }
}

// gridMeta is the codec-encoded description of a grid.
type gridMeta struct {
	Orders       []boc.Order        `json:"orders"`
	Channels     []boc.Channel      `json:"channels"`
	Bins         boc.Bins           `json:"bins"`
	Interps      []interp.Interp    `json:"interps"`
	Convolutions []convolution.Conv `json:"convolutions"`
	Metadata     map[string]string  `json:"metadata,omitempty"`
}

// Encode writes g to w.
func Encode(w io.Writer, g *grid.Grid, opts ...Option) error {
	o := options{codec: codec.Default, compression: CompressionLZ4}
	for _, fn := range opts {
		fn(&o)
	}

	name := o.codec.Name()
	if _, err := conv.IntToUint8(len(name)); err != nil {
		return fmt.Errorf("persistence: codec name %q: %w", name, err)
	}

	body, err := encodeBody(g, o.codec)
	if err != nil {
		return err
	}

	stored, comp, err := compress(body, o.compression)
	if err != nil {
		return err
	}

	return writeContainer(w, Version, comp, name, len(body), stored)
}

// Marshal returns the encoding of g.
func Marshal(g *grid.Grid, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, g, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeContainer(w io.Writer, version uint32, comp Compression, codecName string, bodyLen int, stored []byte) error {
	cw := NewChecksumWriter(w)

	header := FileHeader{
		Magic:       MagicNumber,
		Version:     version,
		Compression: comp,
		CodecLen:    uint8(len(codecName)),
		BodyLen:     uint64(bodyLen),
		StoredLen:   uint64(len(stored)),
	}
	if err := binary.Write(cw, binary.LittleEndian, &header); err != nil {
		return err
	}
	if _, err := io.WriteString(cw, codecName); err != nil {
		return err
	}
	if _, err := cw.Write(stored); err != nil {
		return err
	}

	return cw.WriteTrailer()
}

func encodeMeta(e *encoder, g *grid.Grid, c codec.Codec) error {
	meta, err := c.Marshal(gridMeta{
		Orders:       g.Orders(),
		Channels:     g.Channels(),
		Bins:         g.Bins(),
		Interps:      g.Interps(),
		Convolutions: g.Convolutions(),
		Metadata:     g.Metadata(),
	})
	if err != nil {
		return fmt.Errorf("persistence: encoding grid description: %w", err)
	}
	e.bytes(meta)

	bm, err := g.NonEmpty().ToBytes()
	if err != nil {
		return err
	}
	e.bytes(bm)

	return nil
}

func encodeBody(g *grid.Grid, c codec.Codec) ([]byte, error) {
	var e encoder
	if err := encodeMeta(&e, g, c); err != nil {
		return nil, err
	}

	// cells are visited in the ascending order of the bitmap
	for cell, sg := range g.Cells() {
		if sg.IsEmpty() {
			continue
		}
		if err := encodeSubgrid(&e, sg, c); err != nil {
			return nil, fmt.Errorf("persistence: subgrid %+v: %w", cell, err)
		}
	}

	return e.buf.Bytes(), nil
}

func encodeSubgrid(e *encoder, sg subgrid.Subgrid, c codec.Codec) error {
	var array interface{ MarshalBinary() ([]byte, error) }

	switch s := sg.(type) {
	case *subgrid.InterpSubgrid:
		interps, err := c.Marshal(s.Interps())
		if err != nil {
			return err
		}
		e.tag(tagInterp)
		e.bytes(interps)
		e.floats(s.StaticNodes())
		array = s.Array()

	case *subgrid.ImportSubgrid:
		nodes := s.NodeValues()
		e.tag(tagImport)
		e.int(len(nodes))
		for _, axis := range nodes {
			e.floats(axis)
		}
		array = s.Array()

	default:
		return fmt.Errorf("can't encode a %s subgrid", sg.Kind())
	}

	data, err := array.MarshalBinary()
	if err != nil {
		return err
	}
	e.bytes(data)
	return nil
}
