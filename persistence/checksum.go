package persistence

import (
	"encoding/binary"
	"fmt"
	"hash"
	"io"

	ihash "github.com/hupe1980/sparsegrid/internal/hash"
)

// A container ends with the CRC32C of everything before it, stored little
// endian. It detects accidental corruption only.

// ChecksumWriter hashes everything written through it.
type ChecksumWriter struct {
	w   io.Writer
	crc hash.Hash32
}

// NewChecksumWriter returns a ChecksumWriter writing to w.
func NewChecksumWriter(w io.Writer) *ChecksumWriter {
	return &ChecksumWriter{w: w, crc: ihash.NewCRC32C()}
}

func (cw *ChecksumWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	_, _ = cw.crc.Write(p[:n])
	return n, err
}

// Sum returns the checksum of the bytes written so far.
func (cw *ChecksumWriter) Sum() uint32 { return cw.crc.Sum32() }

// WriteTrailer appends the checksum to the underlying writer. It is not
// part of the checksum itself.
func (cw *ChecksumWriter) WriteTrailer() error {
	return binary.Write(cw.w, binary.LittleEndian, cw.Sum())
}

// ChecksumReader hashes everything read through it.
type ChecksumReader struct {
	r   io.Reader
	crc hash.Hash32
}

// NewChecksumReader returns a ChecksumReader reading from r.
func NewChecksumReader(r io.Reader) *ChecksumReader {
	return &ChecksumReader{r: r, crc: ihash.NewCRC32C()}
}

func (cr *ChecksumReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	_, _ = cr.crc.Write(p[:n])
	return n, err
}

// Sum returns the checksum of the bytes read so far.
func (cr *ChecksumReader) Sum() uint32 { return cr.crc.Sum32() }

// Verify compares the checksum of the bytes read so far with expected.
func (cr *ChecksumReader) Verify(expected uint32) error {
	if actual := cr.Sum(); actual != expected {
		return &ChecksumMismatchError{Expected: expected, Actual: actual}
	}
	return nil
}

// VerifyTrailer reads the trailer written by ChecksumWriter.WriteTrailer
// from the underlying reader and verifies it.
func (cr *ChecksumReader) VerifyTrailer() error {
	var expected uint32
	if err := binary.Read(cr.r, binary.LittleEndian, &expected); err != nil {
		return fmt.Errorf("%w: missing checksum: %w", ErrCorrupt, err)
	}
	return cr.Verify(expected)
}

// ChecksumMismatchError reports a container whose trailer does not match
// its content.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("persistence: checksum mismatch: stored 0x%08x, computed 0x%08x", e.Expected, e.Actual)
}
