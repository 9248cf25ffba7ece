package storage

import (
	"math"

	verrors "github.com/spotify/voyager/errors"
)

// F8 is the signed fixed-point storage scalar with scale 1/127 (spec §3,
// §4.B): F8(x) = round(x * 127), nominal legal range [-1, 1]. Reversible
// within quantization error (at most 1/127 per component).
type F8 int8

const (
	float8Scale = 127.0
	// float8LegalHi is the magnitude one quantization step beyond 1.0 — the
	// largest input clamp_and_round tolerates before erroring, since it still
	// rounds (then clamps) to the maximum representable code. This keeps the
	// symmetric code range [-127, 127] rather than spilling into int8's
	// asymmetric native minimum (-128), so encode/decode stay exact mirror
	// images of each other.
	float8LegalHi = 1.0 + 1.0/float8Scale
	float8Epsilon = 1e-6 // float rounding slack on the legal-range boundary check
)

const float8Op = verrors.Op("storage.NewF8")

// ToFloat32 implements Scalar.
func (f F8) ToFloat32() float32 {
	return float32(f) / float8Scale
}

// NewF8 quantizes x to the fixed-point Float8 encoding via clamp_and_round
// (spec §4.B). Inputs within one quantization step of [-1, 1] are accepted
// and clamped to the nearest representable code; inputs further out fail
// with a domain error naming the legal bounds.
func NewF8(x float32) (F8, error) {
	if math.Abs(float64(x)) > float8LegalHi+float8Epsilon {
		return 0, outOfRange(float8Op, x, -1, 1)
	}
	rounded := math.RoundToEven(float64(x) * float8Scale)
	switch {
	case rounded > 127:
		rounded = 127
	case rounded < -127:
		rounded = -127
	}
	return F8(int8(rounded)), nil
}
