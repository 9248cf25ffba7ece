package kernel

import "github.com/spotify/voyager/storage"

// Euclidean2 computes the squared L2 distance Σ(a[i]-b[i])² (spec §4.C). a
// and b must have equal length; callers validate dimensionality upstream.
func Euclidean2[S storage.Scalar](a, b []S) float32 {
	return sumSquaredDiff(a, b, unroll4)
}

func euclidean2Wide[S storage.Scalar](width unroll) Func[S] {
	return func(a, b []S) float32 {
		return sumSquaredDiff(a, b, width)
	}
}
