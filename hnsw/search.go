package hnsw

import (
	"container/heap"
	"sort"

	verrors "github.com/spotify/voyager/errors"
	"github.com/spotify/voyager/kernel"
)

// greedySearchLayer descends from ep along layer using 1-nearest-neighbor
// steps only, returning the closest slot found (spec §4.E step 4, and
// "Search algorithm" step 1).
func (g *Graph[S]) greedySearchLayer(query []S, ep uint32, layer int32) uint32 {
	cur := ep
	curDist := g.distTo(cur, query)
	for {
		improved := false
		g.forEachNeighbor(cur, layer, func(n uint32) {
			d := g.distTo(n, query)
			if d < curDist {
				curDist = d
				cur = n
				improved = true
			}
		})
		if !improved {
			return cur
		}
	}
}

// searchLayer runs the bounded best-first beam search (spec §4.E step 5,
// and "Search algorithm" step 2). Tombstoned slots are still explored as
// transit nodes but excluded from the results heap when excludeDeleted is
// set, matching the "traversed but not returned" rule for the result layer.
func (g *Graph[S]) searchLayer(query []S, eps []uint32, ef int, layer int32, excludeDeleted bool) []distItem {
	vl := g.pool.Acquire()
	defer g.pool.Release(vl)

	var candidates minDistHeap
	var results maxDistHeap

	for _, ep := range eps {
		d := g.distTo(ep, query)
		vl.Visit(ep)
		heap.Push(&candidates, distItem{ep, d})
		if !excludeDeleted || !g.isDeleted(ep) {
			heap.Push(&results, distItem{ep, d})
		}
	}

	for candidates.Len() > 0 {
		c := candidates[0]
		if results.Len() >= ef && c.dist > results[0].dist {
			break
		}
		heap.Pop(&candidates)

		g.forEachNeighbor(c.slot, layer, func(n uint32) {
			if vl.Visited(n) {
				return
			}
			vl.Visit(n)
			d := g.distTo(n, query)
			if results.Len() < ef || d < results[0].dist {
				heap.Push(&candidates, distItem{n, d})
				if !excludeDeleted || !g.isDeleted(n) {
					heap.Push(&results, distItem{n, d})
					if results.Len() > ef {
						heap.Pop(&results)
					}
				}
			}
		})
	}

	out := make([]distItem, len(results))
	copy(out, results)
	sort.Slice(out, func(i, j int) bool { return out[i].dist < out[j].dist })
	return out
}

// Search returns the k closest non-deleted labels to query in ascending
// distance order (spec §4.E "search"), or a NotEnoughElements error when
// the search finds fewer than k. ef overrides the default frontier size and
// must satisfy ef >= k.
func (g *Graph[S]) Search(query []S, k int, ef int) ([]Result, error) {
	if ef < k {
		return nil, verrors.EfTooSmall("hnsw.Search", ef, k)
	}

	g.resizeMu.RLock()
	defer g.resizeMu.RUnlock()

	g.entryMu.Lock()
	epSlot := g.entrySlot
	epLevel := g.entryLevel
	g.entryMu.Unlock()

	if epSlot < 0 {
		return nil, verrors.NotEnoughElements("hnsw.Search", k, 0)
	}

	cur := uint32(epSlot)
	for layer := epLevel; layer >= 1; layer-- {
		cur = g.greedySearchLayer(query, cur, layer)
	}

	candidates := g.searchLayer(query, []uint32{cur}, ef, 0, true)
	if len(candidates) < k {
		return nil, verrors.NotEnoughElements("hnsw.Search", k, len(candidates))
	}

	results := make([]Result, k)
	for i := 0; i < k; i++ {
		slot := candidates[i].slot
		d, err := kernel.ClampNonNegative("hnsw.Search", g.space, g.kind, candidates[i].dist)
		if err != nil {
			if ve, ok := err.(*verrors.Error); ok {
				return nil, ve.WithLabel(g.labels[slot])
			}
			return nil, err
		}
		results[i] = Result{Label: g.labels[slot], Distance: d}
	}
	return results, nil
}

// forEachNeighbor invokes fn for every neighbor of slot at layer. Readers
// never take the per-slot lock: the single writer per slot publishes the
// neighbor-list length before its contents (spec §5), so a concurrent
// insert is observed either not at all or in full for any given neighbor.
func (g *Graph[S]) forEachNeighbor(slot uint32, layer int32, fn func(uint32)) {
	lists := g.neighbors[slot]
	if int(layer) >= len(lists) {
		return
	}
	for _, n := range lists[layer] {
		fn(n)
	}
}
