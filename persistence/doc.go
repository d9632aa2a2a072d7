// Package persistence provides the binary container format of grids.
//
// A container starts with a fixed-size header (magic "SPG1", format version,
// compression, length of the codec name) followed by the codec name and the
// possibly compressed body. A CRC32 of everything before it ends the
// container.
//
// The body holds the grid description encoded with the named codec, a
// roaring bitmap of the populated cells and, per populated cell, its kind
// tag, its node axes or interpolations and the encoded PackedArray.
//
// Version 1 containers stored dense blocks per cell; they are upgraded into
// import subgrids when decoded.
package persistence
