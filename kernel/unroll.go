package kernel

import "github.com/spotify/voyager/storage"

// unroll is the number of lanes processed per loop iteration. Spec §4.C
// specifies a kernel table keyed by (D' mod K) for K in {128, 64, 32, 16, 8,
// 4}; we keep the three unroll widths that matter for a scalar Go
// implementation (16/8/4) plus a tail of 1. For fp32, every width is gated
// behind the CPU's actual SIMD support (spec's AVX-512/AVX/SSE table; with
// none of them the fp32 path uses width 1) so it only unrolls as wide as
// the hardware can plausibly vectorize; other storage kinds always use 4.
type unroll int

const (
	unroll16 unroll = 16
	unroll8  unroll = 8
	unroll4  unroll = 4
	unroll1  unroll = 1
)

func sumSquaredDiff[S storage.Scalar](a, b []S, width unroll) float32 {
	n := len(a)
	var sum float32
	i := 0
	switch width {
	case unroll16:
		for ; i+16 <= n; i += 16 {
			for j := 0; j < 16; j++ {
				d := a[i+j].ToFloat32() - b[i+j].ToFloat32()
				sum += d * d
			}
		}
	case unroll8:
		for ; i+8 <= n; i += 8 {
			for j := 0; j < 8; j++ {
				d := a[i+j].ToFloat32() - b[i+j].ToFloat32()
				sum += d * d
			}
		}
	case unroll4:
		for ; i+4 <= n; i += 4 {
			d0 := a[i].ToFloat32() - b[i].ToFloat32()
			d1 := a[i+1].ToFloat32() - b[i+1].ToFloat32()
			d2 := a[i+2].ToFloat32() - b[i+2].ToFloat32()
			d3 := a[i+3].ToFloat32() - b[i+3].ToFloat32()
			sum += d0*d0 + d1*d1 + d2*d2 + d3*d3
		}
	}
	for ; i < n; i++ {
		d := a[i].ToFloat32() - b[i].ToFloat32()
		sum += d * d
	}
	return sum
}

func sumProduct[S storage.Scalar](a, b []S, width unroll) float32 {
	n := len(a)
	var sum float32
	i := 0
	switch width {
	case unroll16:
		for ; i+16 <= n; i += 16 {
			for j := 0; j < 16; j++ {
				sum += a[i+j].ToFloat32() * b[i+j].ToFloat32()
			}
		}
	case unroll8:
		for ; i+8 <= n; i += 8 {
			for j := 0; j < 8; j++ {
				sum += a[i+j].ToFloat32() * b[i+j].ToFloat32()
			}
		}
	case unroll4:
		for ; i+4 <= n; i += 4 {
			sum += a[i].ToFloat32()*b[i].ToFloat32() +
				a[i+1].ToFloat32()*b[i+1].ToFloat32() +
				a[i+2].ToFloat32()*b[i+2].ToFloat32() +
				a[i+3].ToFloat32()*b[i+3].ToFloat32()
		}
	}
	for ; i < n; i++ {
		sum += a[i].ToFloat32() * b[i].ToFloat32()
	}
	return sum
}
