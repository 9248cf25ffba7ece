package kernel

import (
	verrors "github.com/spotify/voyager/errors"
	"github.com/spotify/voyager/storage"
)

// ToleranceFor returns the non-negativity clamp tolerance band for kind
// (spec §3, §9 Open Question): floating-point noise can push a distance
// slightly below zero; anything within the band is clamped to 0, anything
// further negative signals a broken invariant. fp32 gets a tight band;
// E4M3's low precision earns a much wider one, per the spec's own
// instruction to preserve that asymmetry.
func ToleranceFor(kind storage.Kind) float32 {
	switch kind {
	case storage.KindFloat32:
		return 1e-5
	case storage.KindE4M3:
		return 0.14
	case storage.KindFloat8:
		return 0.05
	default:
		return 1e-5
	}
}

// ClampNonNegative enforces the guarantee that distances returned to
// callers are >= 0 (spec §3, §4.C) for spaces where the underlying
// distance is mathematically non-negative: Euclidean (a squared norm) and
// Cosine (1 minus a cosine similarity in [-1, 1], so in [0, 2]). Small
// negatives within the tolerance band are floating-point noise and are
// clamped to 0; larger negatives signal a broken invariant and are
// reported as corruption so the caller can annotate it with the offending
// label.
//
// InnerProduct distance (1 - Σa·b) has no lower bound — a large dot
// product legitimately produces a large negative distance, and the
// order-preserving transform (spec §4.F) relies on exactly that to rank
// by norm. The guard is a no-op for InnerProduct: its output is returned
// unclamped and unchecked.
func ClampNonNegative(op verrors.Op, space Space, kind storage.Kind, d float32) (float32, error) {
	if space == InnerProduct {
		return d, nil
	}
	if d >= 0 {
		return d, nil
	}
	tol := ToleranceFor(kind)
	if d >= -tol {
		return 0, nil
	}
	return 0, verrors.Corruption(op, "distance %.6f is below the %s tolerance band (-%.6f)", d, kind, tol)
}
