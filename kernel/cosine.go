package kernel

import (
	"math"

	"github.com/spotify/voyager/storage"
)

// CosineDistance computes 1 - (a·b)/(‖a‖·‖b‖) (spec §4.C). The façade
// normalizes vectors to unit length before they reach storage, which makes
// this reduce to InnerProductDistance in practice; we compute the full
// formula here rather than assume that invariant, so the kernel stays
// correct even if a caller passes an unnormalized vector directly.
func CosineDistance[S storage.Scalar](a, b []S) float32 {
	var dot, na, nb float64
	n := len(a)
	for i := 0; i < n; i++ {
		av := float64(a[i].ToFloat32())
		bv := float64(b[i].ToFloat32())
		dot += av * bv
		na += av * av
		nb += bv * bv
	}
	denom := math.Sqrt(na) * math.Sqrt(nb)
	if denom == 0 {
		return 1
	}
	return float32(1 - dot/denom)
}

func cosineWide[S storage.Scalar](_ unroll) Func[S] {
	return CosineDistance[S]
}
