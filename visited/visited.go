// Package visited implements the lock-guarded pool of versioned visit
// markers shared by every query against a graph (spec §4.D). Reusing
// markers instead of allocating a fresh bitset per query keeps the hot path
// allocation-free; the pool itself is the only shared mutable structure
// touched by every query, so its critical section is kept as short as
// possible — a single slice pop or push (spec §5 "Shared resource policy").
package visited

import "sync"

// List is a single reusable visit marker, sized to the graph's current
// capacity. visited(i) holds as long as list.marks[i] == list.version; Reset
// bumps the version instead of clearing the backing array, except on the
// rare occasion the counter wraps.
type List struct {
	marks   []uint16
	version uint16
}

// Reset begins a new search against the list, invalidating every previous
// mark in O(1) by advancing the version counter. On the 1-in-65536
// occurrence of the counter wrapping to 0, the backing array is zeroed and
// the version restarts at 1 so that a zero mark never reads as visited.
func (l *List) Reset() {
	l.version++
	if l.version != 0 {
		return
	}
	for i := range l.marks {
		l.marks[i] = 0
	}
	l.version = 1
}

// Visit marks slot i as visited in the current search.
func (l *List) Visit(i uint32) {
	l.marks[i] = l.version
}

// Visited reports whether slot i has been marked in the current search.
func (l *List) Visited(i uint32) bool {
	return l.marks[i] == l.version
}

// grow extends the backing array to size if it is currently smaller,
// zero-filling the new region so old versions there read as unvisited.
func (l *List) grow(size uint32) {
	if uint32(len(l.marks)) >= size {
		return
	}
	grown := make([]uint16, size)
	copy(grown, l.marks)
	l.marks = grown
}

// Pool hands out Lists sized to the graph's element capacity, reusing
// returned Lists across queries (spec §4.D). Pool grows on demand and
// never shrinks, mirroring the graph's own grow-only resize discipline.
type Pool struct {
	mu   sync.Mutex
	free []*List
	size uint32
}

// NewPool returns an empty pool sized for size elements.
func NewPool(size uint32) *Pool {
	return &Pool{size: size}
}

// Acquire pops a List from the pool, or allocates a new one if the pool is
// empty. The critical section holds only long enough to pop a handle or
// decide to allocate.
func (p *Pool) Acquire() *List {
	p.mu.Lock()
	n := len(p.free)
	if n == 0 {
		size := p.size
		p.mu.Unlock()
		return &List{marks: make([]uint16, size), version: 1}
	}
	l := p.free[n-1]
	p.free = p.free[:n-1]
	p.mu.Unlock()
	l.grow(p.sizeSnapshot())
	l.Reset()
	return l
}

// Release returns a List to the pool for reuse by a future query.
func (p *Pool) Release(l *List) {
	p.mu.Lock()
	p.free = append(p.free, l)
	p.mu.Unlock()
}

// Resize grows the size every future-acquired (and currently pooled) List
// will be sized to. It never shrinks, matching the graph's own resize
// contract (spec §4.D, §4.E "resize").
func (p *Pool) Resize(newSize uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if newSize <= p.size {
		return
	}
	p.size = newSize
	for _, l := range p.free {
		l.grow(newSize)
	}
}

func (p *Pool) sizeSnapshot() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.size
}
