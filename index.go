package voyager

import (
	"math"
	"sync/atomic"

	verrors "github.com/spotify/voyager/errors"
	"github.com/spotify/voyager/hnsw"
	"github.com/spotify/voyager/kernel"
	"github.com/spotify/voyager/storage"
)

// Result is one entry of a query result, in ascending distance order.
type Result = hnsw.Result

// Index binds a distance space and storage scalar type S to an HNSW graph
// (spec §4.F). It is the only type most callers of this package need.
type Index[S storage.Scalar] struct {
	cfg       Config
	kind      storage.Kind
	dist      kernel.Func[S]
	quantize  storage.Quantizer[S]
	graph     *hnsw.Graph[S]
	maxNorm   atomic.Uint32 // float32 bits, updated via compare-and-swap
	nextLabel atomic.Uint64
}

// New constructs an empty Index over vectors of cfg.Dimensions, for storage
// scalar type S.
func New[S storage.Scalar](cfg Config) (*Index[S], error) {
	if cfg.Dimensions <= 0 {
		return nil, verrors.New("voyager.New", verrors.KindDimensionMismatch, "Dimensions must be positive, got %d", cfg.Dimensions)
	}
	cfg.setDefaults()

	kind := storage.KindOf[S]()
	storageDims := cfg.storageDimensions()
	dist := kernel.Build[S](cfg.Space, kind, storageDims)

	hcfg := hnsw.Config{
		M:              cfg.M,
		EfConstruction: cfg.EfConstruction,
		Ef:             cfg.Ef,
		Seed:           cfg.Seed,
		MaxElements:    cfg.MaxElements,
	}
	graph := hnsw.NewGraph[S](hcfg, dist, cfg.Space, kind, storageDims)

	idx := &Index[S]{
		cfg:      cfg,
		kind:     kind,
		dist:     dist,
		quantize: quantizerFor[S](),
		graph:    graph,
	}
	return idx, nil
}

// Dimensions returns D, the caller-facing vector width.
func (idx *Index[S]) Dimensions() int { return idx.cfg.Dimensions }

// StorageDimensions returns D', the width vectors actually carry in the
// graph (D, plus one when the order-preserving transform is active).
func (idx *Index[S]) StorageDimensions() int { return idx.cfg.storageDimensions() }

// Space returns the index's distance metric.
func (idx *Index[S]) Space() kernel.Space { return idx.cfg.Space }

// StorageKind returns the on-disk storage scalar kind.
func (idx *Index[S]) StorageKind() storage.Kind { return idx.kind }

// M returns the configured per-layer out-degree target.
func (idx *Index[S]) M() int { return idx.graph.Config().M }

// EfConstruction returns the candidate-set size used while inserting.
func (idx *Index[S]) EfConstruction() int { return idx.graph.Config().EfConstruction }

// Ef returns the default search frontier size.
func (idx *Index[S]) Ef() int { return idx.graph.Config().Ef }

// NumElements returns the current element count.
func (idx *Index[S]) NumElements() uint32 { return idx.graph.NumElements() }

// MaxElements returns the current capacity.
func (idx *Index[S]) MaxElements() uint32 { return idx.graph.MaxElements() }

// UseOrderPreservingTransform reports whether the InnerProduct Euclidean
// transform is active for this index.
func (idx *Index[S]) UseOrderPreservingTransform() bool {
	return idx.cfg.Space == kernel.InnerProduct && idx.cfg.EnableOrderPreservingTransform
}

// MaxNorm returns the largest input vector norm observed so far (spec
// §4.F, §5): readers always see a value >= every previously observed norm.
func (idx *Index[S]) MaxNorm() float32 {
	return math.Float32frombits(idx.maxNorm.Load())
}

// Resize grows the graph's capacity to at least newSize (spec §4.F
// "ReserveSlots"): an explicit pre-resize primitive distinct from the
// implicit retry-on-full growth AddItem/AddItems perform.
func (idx *Index[S]) Resize(newSize uint32) error {
	return idx.graph.Resize(newSize)
}

// MarkDeleted tombstones label: it stops being returned from Query, but
// remains a transit node for searches through it.
func (idx *Index[S]) MarkDeleted(label uint64) error {
	return idx.graph.MarkDeleted(label)
}

// UnmarkDeleted clears label's tombstone.
func (idx *Index[S]) UnmarkDeleted(label uint64) error {
	return idx.graph.UnmarkDeleted(label)
}

// GetVector returns the stored, dequantized vector for label. For Cosine
// indices this is the normalized vector, not the caller's original input
// (spec §4.F "Output path" — this divergence is intentional and
// documented here, not silently different). For InnerProduct indices with
// the order-preserving transform active, the returned vector carries the
// extra augmenting coordinate.
func (idx *Index[S]) GetVector(label uint64) ([]float32, error) {
	quantized, err := idx.graph.GetVector(label)
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(quantized))
	for i, v := range quantized {
		out[i] = v.ToFloat32()
	}
	return out, nil
}

// encode runs the input path (spec §4.F): dimensionality check, cosine
// normalization, the order-preserving transform, and quantization. When
// updateMaxNorm is true (insertion), it advances max_norm via
// compare-and-swap before computing the augmenting coordinate; queries
// pass false and only read the current value.
func (idx *Index[S]) encode(op verrors.Op, vec []float32, updateMaxNorm bool) ([]S, error) {
	if len(vec) != idx.cfg.Dimensions {
		return nil, verrors.DimensionMismatch(op, len(vec), idx.cfg.Dimensions)
	}
	work := append([]float32(nil), vec...)

	if idx.cfg.Space == kernel.Cosine {
		work = normalizeCosine(work)
	}

	if idx.UseOrderPreservingTransform() {
		work = idx.appendTransformCoordinate(work, updateMaxNorm)
	}

	out := make([]S, len(work))
	for i, x := range work {
		v, err := idx.quantize(x)
		if err != nil {
			return nil, verrors.Wrap(op, verrors.KindValueOutOfRange, err, "component %d", i)
		}
		out[i] = v
	}
	return out, nil
}

// appendTransformCoordinate appends sqrt(max_norm² - ‖x‖²) (or 0, if ‖x‖ is
// at or beyond max_norm) to x, converting maximum-inner-product search
// into nearest-neighbor search (spec §4.F, citing the Euclidean-transform
// paper for inner-product spaces).
func (idx *Index[S]) appendTransformCoordinate(x []float32, updateMaxNorm bool) []float32 {
	n := norm(x)

	var maxN float32
	if updateMaxNorm {
		maxN = idx.advanceMaxNorm(float32(n))
	} else {
		maxN = idx.MaxNorm()
	}

	var extra float32
	if float64(maxN) > n {
		extra = float32(math.Sqrt(float64(maxN)*float64(maxN) - n*n))
	}
	return append(x, extra)
}

// advanceMaxNorm compare-and-swaps max_norm up to at least n, and returns
// the resulting value (spec §5 "max_norm is updated by a compare-exchange
// loop").
func (idx *Index[S]) advanceMaxNorm(n float32) float32 {
	for {
		old := idx.maxNorm.Load()
		oldF := math.Float32frombits(old)
		if n <= oldF {
			return oldF
		}
		if idx.maxNorm.CompareAndSwap(old, math.Float32bits(n)) {
			return n
		}
	}
}
