// Package hnsw implements the multi-layer Hierarchical Navigable Small
// World graph at the core of an index (spec §4.E): entry point, per-layer
// neighbor lists, concurrent insertion with neighbor-heuristic pruning,
// bounded best-first search, tombstone deletion, and online grow-only
// resize.
package hnsw

import (
	"math"
	"math/rand"
	"sync"
	"sync/atomic"

	verrors "github.com/spotify/voyager/errors"
	"github.com/spotify/voyager/kernel"
	"github.com/spotify/voyager/storage"
	"github.com/spotify/voyager/visited"
)

// Result is one entry of a search result: a label and its distance to the
// query, in ascending distance order (spec §4.E "search").
type Result struct {
	Label    uint64
	Distance float32
}

// Graph is a concurrent HNSW index over storage vectors of scalar type S.
// It knows nothing about quantization, cosine normalization, or the
// order-preserving transform — those live in the façade (package voyager);
// Graph only ever sees already-encoded storage vectors (spec §4.E, §9
// "Polymorphism over storage type").
type Graph[S storage.Scalar] struct {
	cfg   Config
	dist  kernel.Func[S]
	space kernel.Space // selects whether the non-negativity guard applies
	kind  storage.Kind // used only to select the non-negativity tolerance band
	dim   int          // D', the per-element storage vector width

	// resizeMu excludes every other operation during a resize, and is
	// held for read by insert/search/delete so they can run concurrently
	// with each other (spec §5).
	resizeMu    sync.RWMutex
	maxElements uint32
	numElements atomic.Uint32

	entryMu    sync.Mutex
	entrySlot  int32 // -1 when the graph is empty
	entryLevel int32

	labelMu     sync.Mutex
	labelToSlot map[uint64]uint32

	slotLocks []sync.Mutex // fine-grained, indexed by slot; grown on resize

	vectors   [][]S
	neighbors [][][]uint32 // neighbors[slot][layer]
	topLevel  []int32
	labels    []uint64
	deleted   []int32 // accessed via atomic; 0 = live, 1 = tombstoned

	pool *visited.Pool

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewGraph constructs an empty graph with the given configuration, using
// dist as the kernel for vectors of dim storage scalars. space selects
// whether the non-negativity guard (kernel.ClampNonNegative) applies to
// distances returned by this graph's searches.
func NewGraph[S storage.Scalar](cfg Config, dist kernel.Func[S], space kernel.Space, kind storage.Kind, dim int) *Graph[S] {
	cfg.setDefaults()
	g := &Graph[S]{
		cfg:         cfg,
		dist:        dist,
		space:       space,
		kind:        kind,
		dim:         dim,
		maxElements: cfg.MaxElements,
		entrySlot:   -1,
		labelToSlot: make(map[uint64]uint32, cfg.MaxElements),
		slotLocks:   make([]sync.Mutex, cfg.MaxElements),
		vectors:     make([][]S, cfg.MaxElements),
		neighbors:   make([][][]uint32, cfg.MaxElements),
		topLevel:    make([]int32, cfg.MaxElements),
		labels:      make([]uint64, cfg.MaxElements),
		deleted:     make([]int32, cfg.MaxElements),
		pool:        visited.NewPool(cfg.MaxElements),
		rng:         rand.New(rand.NewSource(int64(cfg.Seed))),
	}
	return g
}

// NumElements returns the current element count.
func (g *Graph[S]) NumElements() uint32 { return g.numElements.Load() }

// MaxElements returns the current capacity.
func (g *Graph[S]) MaxElements() uint32 {
	g.resizeMu.RLock()
	defer g.resizeMu.RUnlock()
	return g.maxElements
}

// Resize grows the element arena, neighbor lists, and visited-list pool to
// newSize. It serializes against every insert, search, and delete (spec
// §4.E "Resize").
func (g *Graph[S]) Resize(newSize uint32) error {
	g.resizeMu.Lock()
	defer g.resizeMu.Unlock()

	if newSize < g.numElements.Load() {
		return verrors.IndexCannotBeShrunk("hnsw.Resize", newSize, g.numElements.Load())
	}
	if newSize <= g.maxElements {
		return nil
	}

	grownVectors := make([][]S, newSize)
	copy(grownVectors, g.vectors)
	g.vectors = grownVectors

	grownNeighbors := make([][][]uint32, newSize)
	copy(grownNeighbors, g.neighbors)
	g.neighbors = grownNeighbors

	grownTop := make([]int32, newSize)
	copy(grownTop, g.topLevel)
	g.topLevel = grownTop

	grownLabels := make([]uint64, newSize)
	copy(grownLabels, g.labels)
	g.labels = grownLabels

	grownDeleted := make([]int32, newSize)
	copy(grownDeleted, g.deleted)
	g.deleted = grownDeleted

	grownLocks := make([]sync.Mutex, newSize)
	g.slotLocks = grownLocks // existing locks are uncontended during resize

	g.maxElements = newSize
	g.pool.Resize(newSize)
	return nil
}

func (g *Graph[S]) isDeleted(slot uint32) bool {
	return atomic.LoadInt32(&g.deleted[slot]) != 0
}

func atomicClear(flag *int32) { atomic.StoreInt32(flag, 0) }
func atomicSet(flag *int32)   { atomic.StoreInt32(flag, 1) }

func (g *Graph[S]) distTo(slot uint32, query []S) float32 {
	return g.dist(g.vectors[slot], query)
}

func (g *Graph[S]) distBetween(a, b uint32) float32 {
	return g.dist(g.vectors[a], g.vectors[b])
}

// randomLevel draws a layer assignment from the geometric distribution
// floor(-ln(U)/ln(M)) (spec §3).
func (g *Graph[S]) randomLevel() int32 {
	g.rngMu.Lock()
	u := g.rng.Float64()
	g.rngMu.Unlock()
	for u <= 0 {
		g.rngMu.Lock()
		u = g.rng.Float64()
		g.rngMu.Unlock()
	}
	lvl := int32(-math.Log(u) * g.cfg.levelMult())
	return lvl
}
