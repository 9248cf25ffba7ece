package voyager

import (
	"math"
	"testing"

	verrors "github.com/spotify/voyager/errors"
	"github.com/spotify/voyager/kernel"
	"github.com/spotify/voyager/storage"
	"github.com/spotify/voyager/stream"
)

func u64(v uint64) *uint64 { return &v }

// S1: Euclidean fp32, exact match at distance 0.
func TestEuclideanExactMatch(t *testing.T) {
	idx, err := New[storage.F32](Config{Space: kernel.Euclidean, Dimensions: 2, MaxElements: 8})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := idx.AddItem([]float32{1, 2}, u64(7)); err != nil {
		t.Fatalf("AddItem(7): %v", err)
	}
	if _, err := idx.AddItem([]float32{2, 3}, u64(42)); err != nil {
		t.Fatalf("AddItem(42): %v", err)
	}

	results, err := idx.Query([]float32{1, 2}, 1, 10)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if results[0].Label != 7 {
		t.Errorf("Query label = %d, want 7", results[0].Label)
	}
	if results[0].Distance != 0 {
		t.Errorf("Query distance = %v, want 0", results[0].Distance)
	}
}

// S2: Cosine normalization cancels scale.
func TestCosineNormalizationCancelsScale(t *testing.T) {
	idx, err := New[storage.F32](Config{Space: kernel.Cosine, Dimensions: 3, MaxElements: 8})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := idx.AddItem([]float32{1, 0, 0}, u64(1)); err != nil {
		t.Fatalf("AddItem(1): %v", err)
	}
	if _, err := idx.AddItem([]float32{0, 1, 0}, u64(2)); err != nil {
		t.Fatalf("AddItem(2): %v", err)
	}

	results, err := idx.Query([]float32{2, 0, 0}, 1, 10)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if results[0].Label != 1 {
		t.Errorf("Query label = %d, want 1", results[0].Label)
	}
	if math.Abs(float64(results[0].Distance)) > 1e-5 {
		t.Errorf("Query distance = %v, want ~0", results[0].Distance)
	}
}

// S3: InnerProduct with the order-preserving transform.
func TestInnerProductTransformOrdersByNorm(t *testing.T) {
	idx, err := New[storage.F32](Config{
		Space:                          kernel.InnerProduct,
		Dimensions:                     2,
		MaxElements:                    8,
		EnableOrderPreservingTransform: true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := idx.AddItem([]float32{3, 4}, u64(1)); err != nil { // norm 5
		t.Fatalf("AddItem(1): %v", err)
	}
	if _, err := idx.AddItem([]float32{1, 1}, u64(2)); err != nil { // norm sqrt(2)
		t.Fatalf("AddItem(2): %v", err)
	}

	if got, want := idx.MaxNorm(), float32(5); math.Abs(float64(got-want)) > 1e-4 {
		t.Errorf("MaxNorm = %v, want %v", got, want)
	}

	results, err := idx.Query([]float32{3, 4}, 2, 10)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if results[0].Label != 1 {
		t.Errorf("first result label = %d, want 1", results[0].Label)
	}
}

// S4: Float8 round trip via GetVector, within 1/127 absolute error.
func TestFloat8GetVectorRoundTrip(t *testing.T) {
	idx, err := New[storage.F8](Config{Space: kernel.Euclidean, Dimensions: 4, MaxElements: 8})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	want := []float32{1.0, -1.0, 0.5, -0.5}
	if _, err := idx.AddItem(want, u64(0)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	got, err := idx.GetVector(0)
	if err != nil {
		t.Fatalf("GetVector: %v", err)
	}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1.0/127.0+1e-6 {
			t.Errorf("component %d = %v, want ~%v", i, got[i], want[i])
		}
	}
}

// S5: save/load round trip preserves query results.
func TestSaveLoadRoundTrip(t *testing.T) {
	idx, err := New[storage.F32](Config{
		Space: kernel.Euclidean, Dimensions: 8, Seed: 1, MaxElements: 128,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 100; i++ {
		v := make([]float32, 8)
		for d := range v {
			v[d] = float32(i*8 + d)
		}
		if _, err := idx.AddItem(v, u64(uint64(i))); err != nil {
			t.Fatalf("AddItem(%d): %v", i, err)
		}
	}

	out := stream.NewMemoryOutput()
	if err := idx.Save(out); err != nil {
		t.Fatalf("Save: %v", err)
	}

	in := stream.NewMemoryInput(out.Bytes())
	reloaded, err := Load[storage.F32](in)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for i := 0; i < 100; i++ {
		v := make([]float32, 8)
		for d := range v {
			v[d] = float32(i*8 + d)
		}
		want, err := idx.Query(v, 1, 10)
		if err != nil {
			t.Fatalf("Query(original, %d): %v", i, err)
		}
		got, err := reloaded.Query(v, 1, 10)
		if err != nil {
			t.Fatalf("Query(reloaded, %d): %v", i, err)
		}
		if got[0].Label != want[0].Label || got[0].Distance != want[0].Distance {
			t.Errorf("query %d: reloaded = %+v, original = %+v", i, got[0], want[0])
		}
	}
}

// S6: 8 threads concurrently inserting disjoint labels into an index
// starting at max_elements=1.
func TestConcurrentAddItemsDisjointLabels(t *testing.T) {
	idx, err := New[storage.F32](Config{Space: kernel.Euclidean, Dimensions: 4, MaxElements: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	const threads = 8
	const perThread = 1000
	done := make(chan error, threads)
	for th := 0; th < threads; th++ {
		go func(th int) {
			for i := 0; i < perThread; i++ {
				label := uint64(th*perThread + i)
				v := []float32{float32(label), float32(label + 1), float32(label + 2), float32(label + 3)}
				if _, err := idx.AddItem(v, &label); err != nil {
					done <- err
					return
				}
			}
			done <- nil
		}(th)
	}
	for i := 0; i < threads; i++ {
		if err := <-done; err != nil {
			t.Fatalf("AddItem: %v", err)
		}
	}

	if got, want := idx.NumElements(), uint32(threads*perThread); got != want {
		t.Fatalf("NumElements = %d, want %d", got, want)
	}

	for th := 0; th < threads; th++ {
		for i := 0; i < perThread; i += 137 { // sample, not exhaustive
			label := uint64(th*perThread + i)
			v := []float32{float32(label), float32(label + 1), float32(label + 2), float32(label + 3)}
			results, err := idx.Query(v, 1, 10)
			if err != nil {
				t.Fatalf("Query(%d): %v", label, err)
			}
			if results[0].Label != label {
				t.Errorf("Query(%d) = %d, want self", label, results[0].Label)
			}
		}
	}
}

func TestQueryEfTooSmall(t *testing.T) {
	idx, err := New[storage.F32](Config{Space: kernel.Euclidean, Dimensions: 2, MaxElements: 4})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := idx.AddItem([]float32{1, 1}, u64(1)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := idx.Query([]float32{1, 1}, 5, 2); !verrors.KindIs(err, verrors.KindEfTooSmall) {
		t.Errorf("Query(k=5, ef=2): expected EfTooSmall, got %v", err)
	}
}

func TestAddItemDimensionMismatch(t *testing.T) {
	idx, err := New[storage.F32](Config{Space: kernel.Euclidean, Dimensions: 3, MaxElements: 4})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := idx.AddItem([]float32{1, 2}, nil); !verrors.KindIs(err, verrors.KindDimensionMismatch) {
		t.Errorf("AddItem with wrong dim: expected DimensionMismatch, got %v", err)
	}
}

func TestResizeRejectsShrink(t *testing.T) {
	idx, err := New[storage.F32](Config{Space: kernel.Euclidean, Dimensions: 2, MaxElements: 8})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := idx.AddItem([]float32{1, 1}, nil); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := idx.Resize(0); !verrors.KindIs(err, verrors.KindIndexCannotBeShrunk) {
		t.Errorf("Resize(0): expected IndexCannotBeShrunk, got %v", err)
	}
}

func TestAddItemsAutoAssignsSequentialLabels(t *testing.T) {
	idx, err := New[storage.F32](Config{Space: kernel.Euclidean, Dimensions: 2, MaxElements: 4})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	matrix := [][]float32{{0, 0}, {1, 1}, {2, 2}}
	labels, err := idx.AddItems(matrix, nil, 1)
	if err != nil {
		t.Fatalf("AddItems: %v", err)
	}
	for i, l := range labels {
		if l != uint64(i) {
			t.Errorf("labels[%d] = %d, want %d", i, l, i)
		}
	}
}

func TestAddItemsGrowsPastInitialCapacity(t *testing.T) {
	idx, err := New[storage.F32](Config{Space: kernel.Euclidean, Dimensions: 2, MaxElements: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	matrix := make([][]float32, 50)
	for i := range matrix {
		matrix[i] = []float32{float32(i), float32(i)}
	}
	if _, err := idx.AddItems(matrix, nil, 4); err != nil {
		t.Fatalf("AddItems: %v", err)
	}
	if idx.NumElements() != 50 {
		t.Fatalf("NumElements = %d, want 50", idx.NumElements())
	}
}
