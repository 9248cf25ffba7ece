package storage

import (
	"math"
	"testing"

	verrors "github.com/spotify/voyager/errors"
)

func TestF8RoundTrip(t *testing.T) {
	for _, x := range []float32{0, 1, -1, 0.5, -0.5, 0.251968} {
		q, err := NewF8(x)
		if err != nil {
			t.Fatalf("NewF8(%v): %v", x, err)
		}
		got := q.ToFloat32()
		if math.Abs(float64(got-x)) > 1.0/127.0+1e-6 {
			t.Errorf("NewF8(%v).ToFloat32() = %v, want within 1/127", x, got)
		}
	}
}

func TestF8Boundary(t *testing.T) {
	if _, err := NewF8(1.00787402); err != nil {
		t.Errorf("NewF8(1.00787402) should pass, got %v", err)
	}
	if _, err := NewF8(1.01); err == nil {
		t.Errorf("NewF8(1.01) should fail")
	} else if !verrors.KindIs(err, verrors.KindValueOutOfRange) {
		t.Errorf("NewF8(1.01) error kind = %v, want ValueOutOfRange", err)
	}
}

func TestE4M3Boundary(t *testing.T) {
	if _, err := NewE4M3(448.0); err != nil {
		t.Errorf("NewE4M3(448.0) should pass, got %v", err)
	}
	if _, err := NewE4M3(449.0); err == nil {
		t.Errorf("NewE4M3(449.0) should fail")
	}
}

func TestE4M3RoundTripAllCodepoints(t *testing.T) {
	for b := 0; b < 256; b++ {
		v := E4M3(b).ToFloat32()
		if math.IsNaN(float64(v)) {
			continue // NaN != NaN, nothing to round-trip
		}
		q, err := NewE4M3(v)
		if err != nil {
			if v == 0 {
				t.Errorf("NewE4M3(0) unexpectedly failed: %v", err)
			}
			continue
		}
		if q.ToFloat32() != v {
			t.Errorf("round trip for codepoint %d: got %v, want %v", b, q.ToFloat32(), v)
		}
	}
}

func TestE4M3SubnormalAndZero(t *testing.T) {
	small := float32(1.0 / 512.0) // 2^-9, the smallest subnormal magnitude
	q, err := NewE4M3(small)
	if err != nil {
		t.Fatalf("NewE4M3(2^-9): %v", err)
	}
	if q.ToFloat32() == 0 {
		t.Errorf("NewE4M3(2^-9) should not flush to zero")
	}

	zero, err := NewE4M3(0)
	if err != nil {
		t.Fatalf("NewE4M3(0): %v", err)
	}
	if zero.ToFloat32() != 0 {
		t.Errorf("NewE4M3(0).ToFloat32() = %v, want 0", zero.ToFloat32())
	}

	negZero, err := NewE4M3(float32(math.Copysign(0, -1)))
	if err != nil {
		t.Fatalf("NewE4M3(-0): %v", err)
	}
	if negZero.ToFloat32() != 0 {
		t.Errorf("NewE4M3(-0).ToFloat32() = %v, want 0", negZero.ToFloat32())
	}
}

func TestE4M3NaN(t *testing.T) {
	q, err := NewE4M3(float32(math.NaN()))
	if err != nil {
		t.Fatalf("NewE4M3(NaN): %v", err)
	}
	if !math.IsNaN(float64(q.ToFloat32())) {
		t.Errorf("NewE4M3(NaN).ToFloat32() should be NaN")
	}
	if exp := int(byte(q)>>3) & 0x0f; exp != 15 {
		t.Errorf("NaN exponent field = %d, want 15", exp)
	}
}

func TestF32Passthrough(t *testing.T) {
	q, err := NewF32(3.14)
	if err != nil {
		t.Fatalf("NewF32: %v", err)
	}
	if q.ToFloat32() != 3.14 {
		t.Errorf("NewF32(3.14).ToFloat32() = %v, want 3.14", q.ToFloat32())
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindFloat8:  "Float8",
		KindFloat32: "Float32",
		KindE4M3:    "E4M3",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
