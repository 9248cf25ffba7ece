// Package storage implements Voyager's storage data-type system: the three
// scalar encodings a vector may be quantized to before it enters the graph
// (spec §2 component B, §3). Each type exposes construction from fp32 (with
// clipping/error semantics) and conversion back to fp32, plus the scale
// factor applied during that round trip.
package storage

import (
	verrors "github.com/spotify/voyager/errors"
)

// Kind identifies a storage scalar encoding. Values match the on-disk
// storage-type enum in spec §6.
type Kind uint8

const (
	KindFloat8  Kind = 0x10
	KindFloat32 Kind = 0x20
	KindE4M3    Kind = 0x30
)

func (k Kind) String() string {
	switch k {
	case KindFloat8:
		return "Float8"
	case KindFloat32:
		return "Float32"
	case KindE4M3:
		return "E4M3"
	default:
		return "Unknown"
	}
}

// Scalar is implemented by every storage scalar type. ToFloat32 reverses
// quantization, including the type's scale factor.
type Scalar interface {
	ToFloat32() float32
}

// Quantizer converts a dequantized fp32 value into a storage scalar,
// clipping or failing out-of-range per the concrete type's rules (spec §4.B).
type Quantizer[S Scalar] func(x float32) (S, error)

// ScaleOf returns the rational scale factor num/den applied by Kind during
// conversion (spec §4.B): 1/127 for Float8, 1/1 for Float32 and E4M3 (E4M3
// carries its own exponent so no external scale is needed).
func ScaleOf(k Kind) (num, den float64) {
	switch k {
	case KindFloat8:
		return 1, 127
	default:
		return 1, 1
	}
}

// outOfRange is used by both Float8 and E4M3 construction to report a precise
// out-of-range error without depending on each other.
func outOfRange(op verrors.Op, x float32, lo, hi float64) error {
	return verrors.ValueOutOfRange(op, x, lo, hi)
}
