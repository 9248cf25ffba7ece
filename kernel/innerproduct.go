package kernel

import "github.com/spotify/voyager/storage"

// InnerProductDistance computes 1 - Σ a[i]·b[i] (spec §4.C). When the
// façade's order-preserving transform is enabled, a and b already carry the
// extra augmenting coordinate, so no further adjustment is needed here.
func InnerProductDistance[S storage.Scalar](a, b []S) float32 {
	return 1 - sumProduct(a, b, unroll4)
}

func innerProductWide[S storage.Scalar](width unroll) Func[S] {
	return func(a, b []S) float32 {
		return 1 - sumProduct(a, b, width)
	}
}
