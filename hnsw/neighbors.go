package hnsw

// selectNeighborsHeuristic implements the "extend" diversity heuristic
// (spec §4.E step 6): candidates must already be sorted by ascending
// distance to the query. A candidate is kept only if it is not closer to
// any already-kept neighbor than it is to the query itself — this avoids
// clustering all edges toward one region and preserves long-range
// shortcuts that a naive "keep the m closest" selection would prune away.
func (g *Graph[S]) selectNeighborsHeuristic(candidates []distItem, m int) []uint32 {
	selected := make([]distItem, 0, m)
	for _, c := range candidates {
		if len(selected) >= m {
			break
		}
		keep := true
		for _, s := range selected {
			if g.distBetween(c.slot, s.slot) < c.dist {
				keep = false
				break
			}
		}
		if keep {
			selected = append(selected, c)
		}
	}
	out := make([]uint32, len(selected))
	for i, s := range selected {
		out[i] = s.slot
	}
	return out
}

// neighborsAsDistItems converts slot's current neighbor list at layer,
// plus extra, into distItems relative to slot, for re-running the
// heuristic when a back-edge overflows the cap.
func (g *Graph[S]) neighborsAsDistItems(slot uint32, layer int32, extra uint32) []distItem {
	var existing []uint32
	if int(layer) < len(g.neighbors[slot]) {
		existing = g.neighbors[slot][layer]
	}
	items := make([]distItem, 0, len(existing)+1)
	seenExtra := false
	for _, n := range existing {
		if n == extra {
			seenExtra = true
		}
		items = append(items, distItem{slot: n, dist: g.distBetween(slot, n)})
	}
	if !seenExtra {
		items = append(items, distItem{slot: extra, dist: g.distBetween(slot, extra)})
	}
	sortDistItems(items)
	return items
}

func sortDistItems(items []distItem) {
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && items[j].dist < items[j-1].dist; j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
}

// setNeighbors ensures slot's neighbor-list slice has an entry for layer,
// then installs ids as that layer's neighbor list. The length write is the
// publication point readers rely on (spec §5): callers must hold slot's
// per-slot lock.
func (g *Graph[S]) setNeighbors(slot uint32, layer int32, ids []uint32) {
	lists := g.neighbors[slot]
	for int32(len(lists)) <= layer {
		lists = append(lists, nil)
	}
	lists[layer] = ids
	g.neighbors[slot] = lists
}

// addBackEdge adds a reverse edge from neighbor to slot at layer, re-running
// the heuristic over neighbor's full neighborhood if the cap is now
// exceeded (spec §4.E step 7).
func (g *Graph[S]) addBackEdge(neighbor, slot uint32, layer int32) {
	g.slotLocks[neighbor].Lock()
	defer g.slotLocks[neighbor].Unlock()

	maxConns := g.cfg.maxConns(layer)
	var cur []uint32
	if int(layer) < len(g.neighbors[neighbor]) {
		cur = g.neighbors[neighbor][layer]
	}
	if len(cur) < maxConns {
		g.setNeighbors(neighbor, layer, append(append([]uint32{}, cur...), slot))
		return
	}

	items := g.neighborsAsDistItems(neighbor, layer, slot)
	pruned := g.selectNeighborsHeuristic(items, maxConns)
	g.setNeighbors(neighbor, layer, pruned)
}
