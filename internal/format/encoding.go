package format

import (
	"encoding/binary"
	"math"
)

// Binary encoding utilities for big-endian values.
//
// FITS stores all data units in big-endian byte order regardless of host
// architecture. Go's encoding/binary is already well optimized, so these
// are thin named wrappers that keep offsets readable at call sites.

// PutI16 writes an int16 at the offset in big-endian format.
func PutI16(b []byte, off int, v int16) {
	binary.BigEndian.PutUint16(b[off:off+2], uint16(v))
}

// PutI32 writes an int32 at the offset in big-endian format.
func PutI32(b []byte, off int, v int32) {
	binary.BigEndian.PutUint32(b[off:off+4], uint32(v))
}

// PutF32 writes a float32 at the offset in big-endian format.
func PutF32(b []byte, off int, v float32) {
	binary.BigEndian.PutUint32(b[off:off+4], math.Float32bits(v))
}

// PutF64 writes a float64 at the offset in big-endian format.
func PutF64(b []byte, off int, v float64) {
	binary.BigEndian.PutUint64(b[off:off+8], math.Float64bits(v))
}

// ReadI16 reads an int16 from the offset in big-endian format.
func ReadI16(b []byte, off int) int16 {
	return int16(binary.BigEndian.Uint16(b[off : off+2]))
}

// ReadI32 reads an int32 from the offset in big-endian format.
func ReadI32(b []byte, off int) int32 {
	return int32(binary.BigEndian.Uint32(b[off : off+4]))
}

// ReadF32 reads a float32 from the offset in big-endian format.
func ReadF32(b []byte, off int) float32 {
	return math.Float32frombits(binary.BigEndian.Uint32(b[off : off+4]))
}

// ReadF64 reads a float64 from the offset in big-endian format.
func ReadF64(b []byte, off int) float64 {
	return math.Float64frombits(binary.BigEndian.Uint64(b[off : off+8]))
}
