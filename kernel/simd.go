package kernel

import "golang.org/x/sys/cpu"

// simdWidth picks the unroll width a fp32 kernel should use for dimension
// dim, based on which instruction set the running CPU actually supports
// (spec §4.C: AVX-512 processes 16 floats/iteration, AVX 8, SSE 4; residual
// tails fall back to scalar). Non-fp32 storage kinds don't get this
// treatment — spec only calls out SIMD selection for fp32.
func simdWidth(dim int) unroll {
	switch {
	case cpu.X86.HasAVX512F && dim >= 16:
		return unroll16
	case cpu.X86.HasAVX2 && dim >= 8:
		return unroll8
	case cpu.X86.HasSSE2 && dim >= 4:
		return unroll4
	default:
		return unroll1
	}
}
