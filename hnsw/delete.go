package hnsw

import verrors "github.com/spotify/voyager/errors"

// MarkDeleted tombstones label: the element remains a transit node for
// searches through it, but is never returned as a result (spec §4.E
// "Deletion"). Edges are never removed.
func (g *Graph[S]) MarkDeleted(label uint64) error {
	g.resizeMu.RLock()
	defer g.resizeMu.RUnlock()

	g.labelMu.Lock()
	slot, ok := g.labelToSlot[label]
	g.labelMu.Unlock()
	if !ok {
		return verrors.UnknownLabel("hnsw.MarkDeleted", label)
	}
	atomicSet(&g.deleted[slot])
	return nil
}

// UnmarkDeleted clears label's tombstone.
func (g *Graph[S]) UnmarkDeleted(label uint64) error {
	g.resizeMu.RLock()
	defer g.resizeMu.RUnlock()

	g.labelMu.Lock()
	slot, ok := g.labelToSlot[label]
	g.labelMu.Unlock()
	if !ok {
		return verrors.UnknownLabel("hnsw.UnmarkDeleted", label)
	}
	atomicClear(&g.deleted[slot])
	return nil
}

// GetVector returns the stored (quantized) vector for label.
func (g *Graph[S]) GetVector(label uint64) ([]S, error) {
	g.resizeMu.RLock()
	defer g.resizeMu.RUnlock()

	g.labelMu.Lock()
	slot, ok := g.labelToSlot[label]
	g.labelMu.Unlock()
	if !ok {
		return nil, verrors.UnknownLabel("hnsw.GetVector", label)
	}
	g.slotLocks[slot].Lock()
	defer g.slotLocks[slot].Unlock()
	out := make([]S, len(g.vectors[slot]))
	copy(out, g.vectors[slot])
	return out, nil
}
