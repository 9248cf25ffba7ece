package voyager

import (
	"math"

	"github.com/spotify/voyager/storage"
)

// cosineEpsilon is the denominator floor for cosine normalization (spec
// §4.F): dividing by ‖x‖+ε instead of ‖x‖ keeps a zero vector finite.
const cosineEpsilon = 1e-30

// norm returns the Euclidean length of x.
func norm(x []float32) float64 {
	var sumSq float64
	for _, v := range x {
		sumSq += float64(v) * float64(v)
	}
	return math.Sqrt(sumSq)
}

// normalizeCosine divides x by its length (spec §4.F), in place, and
// returns x for chaining.
func normalizeCosine(x []float32) []float32 {
	scale := float32(1 / (norm(x) + cosineEpsilon))
	for i, v := range x {
		x[i] = v * scale
	}
	return x
}

// quantizerFor returns the Quantizer matching type parameter S, mirroring
// storage.KindOf's type-switch-on-zero-value pattern so every place that
// needs to recover type-specific behavior from S does it the same way.
func quantizerFor[S storage.Scalar]() storage.Quantizer[S] {
	var zero S
	switch any(zero).(type) {
	case storage.F32:
		return func(x float32) (S, error) {
			v, err := storage.NewF32(x)
			return any(v).(S), err
		}
	case storage.F8:
		return func(x float32) (S, error) {
			v, err := storage.NewF8(x)
			return any(v).(S), err
		}
	case storage.E4M3:
		return func(x float32) (S, error) {
			v, err := storage.NewE4M3(x)
			return any(v).(S), err
		}
	default:
		panic("voyager: quantizerFor: unknown scalar type")
	}
}
