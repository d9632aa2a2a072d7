package persistence

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// MagicNumber identifies grid containers (ASCII: "SPG1").
	MagicNumber = 0x53504731

	// Version is the current container format version.
	Version = 2

	// LegacyVersion is the version with dense subgrid blocks.
	LegacyVersion = 1
)

var (
	ErrInvalidMagic   = errors.New("persistence: invalid magic number")
	ErrInvalidVersion = errors.New("persistence: unsupported version")
	ErrUnknownCodec   = errors.New("persistence: unknown codec")
	ErrCorrupt        = errors.New("persistence: corrupt container")
)

// Compression selects how the body of a container is compressed.
type Compression uint8

const (
	// CompressionNone stores the body as is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression.
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses zstd, trading speed for a better ratio.
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// ParseCompression parses the string form of a Compression.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(s) {
	case "none", "":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("persistence: unknown compression %q", s)
	}
}

// FileHeader is the 32-byte header at the start of every container.
type FileHeader struct {
	Magic       uint32 // 0x53504731 ("SPG1")
	Version     uint32 // Container format version
	Compression Compression
	CodecLen    uint8 // Length of the codec name following the header
	Padding     [2]byte
	BodyLen     uint64 // Uncompressed body length
	StoredLen   uint64 // Body length as stored
	Reserved    [4]byte
}

// cell kind tags
const (
	tagInterp byte = 1
	tagImport byte = 2
)
