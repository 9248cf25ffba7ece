package hnsw

import (
	verrors "github.com/spotify/voyager/errors"
)

// Insert adds vec under label, or overwrites the existing element if label
// is already present (spec §4.E "Insertion algorithm").
func (g *Graph[S]) Insert(vec []S, label uint64) error {
	g.resizeMu.RLock()
	defer g.resizeMu.RUnlock()

	g.labelMu.Lock()
	slot, exists := g.labelToSlot[label]
	if !exists {
		n := g.numElements.Load()
		if n >= g.maxElements {
			g.labelMu.Unlock()
			return verrors.IndexFull("hnsw.Insert", g.maxElements)
		}
		slot = n
		g.labelToSlot[label] = slot
		g.numElements.Store(n + 1)
		g.labels[slot] = label
	}
	g.labelMu.Unlock()

	g.slotLocks[slot].Lock()
	g.vectors[slot] = append([]S(nil), vec...)
	atomicClear(&g.deleted[slot])
	g.slotLocks[slot].Unlock()

	level := g.randomLevel()

	g.entryMu.Lock()
	epSlot := g.entrySlot
	epLevel := g.entryLevel
	if epSlot < 0 {
		g.entrySlot = int32(slot)
		g.entryLevel = level
		g.entryMu.Unlock()
		g.slotLocks[slot].Lock()
		g.topLevel[slot] = level
		g.slotLocks[slot].Unlock()
		return nil
	}
	g.entryMu.Unlock()

	cur := uint32(epSlot)
	for layer := epLevel; layer > level; layer-- {
		cur = g.greedySearchLayer(vec, cur, layer)
	}

	top := epLevel
	if level < top {
		top = level
	}
	for layer := top; layer >= 0; layer-- {
		candidates := g.searchLayer(vec, []uint32{cur}, g.cfg.EfConstruction, layer, false)
		maxConns := g.cfg.maxConns(layer)
		selected := g.selectNeighborsHeuristic(candidates, maxConns)

		g.slotLocks[slot].Lock()
		g.setNeighbors(slot, layer, append([]uint32(nil), selected...))
		g.slotLocks[slot].Unlock()

		for _, n := range selected {
			g.addBackEdge(n, slot, layer)
		}

		if len(candidates) > 0 {
			cur = candidates[0].slot
		}
	}

	g.slotLocks[slot].Lock()
	g.topLevel[slot] = level
	g.slotLocks[slot].Unlock()

	if level > epLevel {
		g.entryMu.Lock()
		if level > g.entryLevel {
			g.entrySlot = int32(slot)
			g.entryLevel = level
		}
		g.entryMu.Unlock()
	}

	return nil
}
