package kernel

import "github.com/spotify/voyager/storage"

// Func is a specialized distance function bound to a fixed (space, storage
// kind, dimensionality) combination (spec §4.C).
type Func[S storage.Scalar] func(a, b []S) float32

// Build selects the distance function for space, specialized for storage
// kind kind over vectors of dimensionality dim. Selection happens once, at
// space construction (spec §4.C "Specialization"), not per call — Build is
// meant to be called from the façade's constructor and the resulting Func
// stored on the graph.
func Build[S storage.Scalar](space Space, kind storage.Kind, dim int) Func[S] {
	width := unroll4
	if kind == storage.KindFloat32 {
		width = simdWidth(dim)
	}
	switch space {
	case InnerProduct:
		return innerProductWide[S](width)
	case Cosine:
		return cosineWide[S](width)
	default:
		return euclidean2Wide[S](width)
	}
}
