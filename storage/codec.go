package storage

import (
	"encoding/binary"
	"math"
)

// Width returns the on-disk byte width of one scalar of kind k (spec §6).
func Width(k Kind) int {
	if k == KindFloat32 {
		return 4
	}
	return 1
}

// KindOf reports the Kind matching type parameter S, by type-switching on
// its zero value. It is the one place a generic function parameterized
// over S needs to recover a runtime Kind value, e.g. for the on-disk
// storage-type byte or a tolerance-band lookup.
func KindOf[S Scalar]() Kind {
	var zero S
	switch any(zero).(type) {
	case F32:
		return KindFloat32
	case F8:
		return KindFloat8
	case E4M3:
		return KindE4M3
	default:
		panic("storage: KindOf: unknown scalar type")
	}
}

// EncodeRaw appends v's on-disk representation to dst: 4 bytes little-endian
// IEEE-754 for Float32, a single raw byte for Float8 and E4M3.
func EncodeRaw[S Scalar](dst []byte, v S) []byte {
	switch x := any(v).(type) {
	case F32:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(x)))
		return append(dst, buf[:]...)
	case F8:
		return append(dst, byte(int8(x)))
	case E4M3:
		return append(dst, byte(x))
	default:
		panic("storage: EncodeRaw: unknown scalar type")
	}
}

// DecodeRaw reads one scalar from the front of src, which must hold at
// least Width(kind) bytes for S's kind.
func DecodeRaw[S Scalar](src []byte) S {
	var zero S
	switch any(zero).(type) {
	case F32:
		bits := binary.LittleEndian.Uint32(src)
		return any(F32(math.Float32frombits(bits))).(S)
	case F8:
		return any(F8(int8(src[0]))).(S)
	case E4M3:
		return any(E4M3(src[0])).(S)
	default:
		panic("storage: DecodeRaw: unknown scalar type")
	}
}
