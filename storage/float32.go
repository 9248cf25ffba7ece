package storage

// F32 is the fp32 storage scalar: no quantization, scale 1/1.
type F32 float32

// ToFloat32 implements Scalar.
func (f F32) ToFloat32() float32 { return float32(f) }

// NewF32 constructs an F32. It never fails; fp32 storage is unconstrained.
func NewF32(x float32) (F32, error) {
	return F32(x), nil
}
