package storage

import (
	"math"

	verrors "github.com/spotify/voyager/errors"
)

// E4M3 is the 8-bit floating-point storage scalar packed as
// sign:1 | exponent:4 | mantissa:3 (spec §3, §4.B). Representable magnitudes
// run from the smallest subnormal 2⁻⁹ up to 448; the single codepoint
// exponent=15, mantissa=7 (both signs) is reserved for NaN.
type E4M3 uint8

const (
	e4m3Bias     = 7
	e4m3MaxValue = 448.0
	e4m3Epsilon  = e4m3MaxValue * 1e-6
)

const e4m3Op = verrors.Op("storage.NewE4M3")

// e4m3Table is the 256-entry precomputed decode table keyed by the raw byte,
// built once at init per spec §4.B so ToFloat32 is a single lookup.
var e4m3Table [256]float32

func init() {
	for b := 0; b < 256; b++ {
		e4m3Table[b] = decodeE4M3(byte(b))
	}
}

func decodeE4M3(b byte) float32 {
	sign := b&0x80 != 0
	exp := int(b>>3) & 0x0f
	mant := int(b & 0x07)

	var mag float64
	switch {
	case exp == 15 && mant == 7:
		return float32(math.NaN())
	case exp == 0:
		// Subnormal: value = mantissa * 2^(1-bias-3).
		mag = float64(mant) * math.Ldexp(1, 1-e4m3Bias-3)
	default:
		// Normal: (1 + mantissa/8) * 2^(exp-bias).
		mag = (1 + float64(mant)/8) * math.Ldexp(1, exp-e4m3Bias)
	}
	if sign {
		mag = -mag
	}
	return float32(mag)
}

// ToFloat32 implements Scalar via table lookup.
func (e E4M3) ToFloat32() float32 {
	return e4m3Table[byte(e)]
}

func packE4M3(sign bool, exp, mant int) E4M3 {
	b := byte(exp<<3) | byte(mant)
	if sign {
		b |= 0x80
	}
	return E4M3(b)
}

// NewE4M3 encodes x into the E4M3 format with round-to-nearest-even,
// denormalizing magnitudes below the smallest normal value 2⁻⁶ (the
// smallest nonzero result is 2⁻⁹) and failing magnitudes above 448 or
// whose rounding would overflow the exponent field (spec §4.B).
func NewE4M3(x float32) (E4M3, error) {
	if math.IsNaN(float64(x)) {
		return packE4M3(math.Signbit(float64(x)), 15, 7), nil
	}
	if math.IsInf(float64(x), 0) {
		return packE4M3(math.Signbit(float64(x)), 15, 7), nil
	}
	if x == 0 {
		return packE4M3(math.Signbit(float64(x)), 0, 0), nil
	}

	sign := x < 0
	abs := math.Abs(float64(x))
	if abs > e4m3MaxValue+e4m3Epsilon {
		return 0, outOfRange(e4m3Op, x, -e4m3MaxValue, e4m3MaxValue)
	}

	frac, exp2 := math.Frexp(abs) // abs == frac * 2^exp2, frac in [0.5, 1)
	eUnbiased := exp2 - 1         // abs in [2^eUnbiased, 2^(eUnbiased+1))
	normalizedFrac := frac*2 - 1  // in [0, 1)

	if eUnbiased < 1-e4m3Bias {
		// Subnormal range: value = mantissa * 2^(1-bias-3).
		step := math.Ldexp(1, 1-e4m3Bias-3)
		m := math.RoundToEven(abs / step)
		if m > 7 {
			// Rounds up into the smallest normal value.
			return packE4M3(sign, 1, 0), nil
		}
		return packE4M3(sign, 0, int(m)), nil
	}

	m := math.RoundToEven(normalizedFrac * 8)
	if m >= 8 {
		m = 0
		eUnbiased++
	}
	eBiased := eUnbiased + e4m3Bias
	if eBiased > 15 || (eBiased == 15 && int(m) == 7) {
		return 0, outOfRange(e4m3Op, x, -e4m3MaxValue, e4m3MaxValue)
	}
	return packE4M3(sign, eBiased, int(m)), nil
}
