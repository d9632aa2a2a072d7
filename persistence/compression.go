package persistence

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// compress returns the stored form of body. Incompressible LZ4 input is
// stored uncompressed and reported through the returned Compression.
func compress(body []byte, c Compression) ([]byte, Compression, error) {
	switch c {
	case CompressionNone:
		return body, CompressionNone, nil

	case CompressionLZ4:
		out := make([]byte, lz4.CompressBlockBound(len(body)))
		n, err := lz4.CompressBlock(body, out, nil)
		if err != nil {
			return nil, 0, err
		}
		if n == 0 {
			return body, CompressionNone, nil
		}
		return out[:n], CompressionLZ4, nil

	case CompressionZSTD:
		enc := getZstdEncoder()
		defer zstdEncoderPool.Put(enc)
		return enc.EncodeAll(body, nil), CompressionZSTD, nil

	default:
		return nil, 0, fmt.Errorf("persistence: unknown compression %d", c)
	}
}

// maxCompressionRatio bounds the declared body length of a compressed
// container relative to its stored length. LZ4 cannot exceed 255:1.
const maxCompressionRatio = 255

// decompress restores a body of bodyLen bytes.
func decompress(stored []byte, c Compression, bodyLen int) ([]byte, error) {
	if bodyLen < 0 {
		return nil, fmt.Errorf("%w: negative body length", ErrCorrupt)
	}
	switch c {
	case CompressionNone:
		if len(stored) != bodyLen {
			return nil, fmt.Errorf("%w: body of %d bytes, expected %d", ErrCorrupt, len(stored), bodyLen)
		}
		return stored, nil

	case CompressionLZ4:
		if uint64(bodyLen) > uint64(len(stored))*maxCompressionRatio+16 {
			return nil, fmt.Errorf("%w: body of %d bytes cannot come from %d stored", ErrCorrupt, bodyLen, len(stored))
		}
		body := make([]byte, bodyLen)
		n, err := lz4.UncompressBlock(stored, body)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if n != bodyLen {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return body, nil

	case CompressionZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)

		// The declared length only sizes the initial buffer up to a bound;
		// DecodeAll grows it for highly compressible bodies.
		capacity := min(uint64(bodyLen), uint64(len(stored))*maxCompressionRatio+16)
		body, err := dec.DecodeAll(stored, make([]byte, 0, capacity))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if len(body) != bodyLen {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return body, nil

	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrCorrupt, c)
	}
}
