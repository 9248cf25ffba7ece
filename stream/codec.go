package stream

import (
	"encoding/binary"
	"math"
)

// The format package persists all fixed-width fields in little-endian byte
// order (spec §6); these helpers centralize that encoding so format.go
// never touches encoding/binary directly.

// PutU8 appends a single byte to dst.
func PutU8(dst []byte, v uint8) []byte { return append(dst, v) }

// PutU32 appends a little-endian uint32 to dst.
func PutU32(dst []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(dst, buf[:]...)
}

// PutU64 appends a little-endian uint64 to dst.
func PutU64(dst []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(dst, buf[:]...)
}

// PutI32 appends a little-endian int32 to dst.
func PutI32(dst []byte, v int32) []byte { return PutU32(dst, uint32(v)) }

// PutF32 appends a little-endian IEEE-754 float32 to dst.
func PutF32(dst []byte, v float32) []byte { return PutU32(dst, math.Float32bits(v)) }

// GetU8 reads a single byte from src.
func GetU8(src []byte) uint8 { return src[0] }

// GetU32 reads a little-endian uint32 from src.
func GetU32(src []byte) uint32 { return binary.LittleEndian.Uint32(src) }

// GetU64 reads a little-endian uint64 from src.
func GetU64(src []byte) uint64 { return binary.LittleEndian.Uint64(src) }

// GetI32 reads a little-endian int32 from src.
func GetI32(src []byte) int32 { return int32(GetU32(src)) }

// GetF32 reads a little-endian IEEE-754 float32 from src.
func GetF32(src []byte) float32 { return math.Float32frombits(GetU32(src)) }

// ReadU32 reads a little-endian uint32 from in.
func ReadU32(in Input) (uint32, error) {
	var buf [4]byte
	if err := in.ReadFull(buf[:]); err != nil {
		return 0, err
	}
	return GetU32(buf[:]), nil
}

// ReadU64 reads a little-endian uint64 from in.
func ReadU64(in Input) (uint64, error) {
	var buf [8]byte
	if err := in.ReadFull(buf[:]); err != nil {
		return 0, err
	}
	return GetU64(buf[:]), nil
}

// ReadI32 reads a little-endian int32 from in.
func ReadI32(in Input) (int32, error) {
	u, err := ReadU32(in)
	return int32(u), err
}

// ReadF32 reads a little-endian IEEE-754 float32 from in.
func ReadF32(in Input) (float32, error) {
	u, err := ReadU32(in)
	return math.Float32frombits(u), err
}

// ReadU8 reads a single byte from in.
func ReadU8(in Input) (uint8, error) {
	var buf [1]byte
	if err := in.ReadFull(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// WriteU32 writes v to out in little-endian order.
func WriteU32(out Output, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return out.Write(buf[:])
}

// WriteU64 writes v to out in little-endian order.
func WriteU64(out Output, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return out.Write(buf[:])
}

// WriteI32 writes v to out in little-endian order.
func WriteI32(out Output, v int32) error { return WriteU32(out, uint32(v)) }

// WriteF32 writes v to out in little-endian order.
func WriteF32(out Output, v float32) error { return WriteU32(out, math.Float32bits(v)) }

// WriteU8 writes a single byte to out.
func WriteU8(out Output, v uint8) error { return out.Write([]byte{v}) }
