package hnsw

// This file exposes the raw per-slot accessors and mutators the format
// package needs to serialize and reconstruct a graph (spec §4.G, §6). They
// are not meant for general use by façade callers — Search/Insert/GetVector
// above are the public surface for query-time use.

// Config returns a copy of the graph's configuration.
func (g *Graph[S]) Config() Config { return g.cfg }

// Dim returns the per-element storage vector width D'.
func (g *Graph[S]) Dim() int { return g.dim }

// EntryPoint returns the current entry-point slot (-1 if empty) and level.
func (g *Graph[S]) EntryPoint() (slot int32, level int32) {
	g.entryMu.Lock()
	defer g.entryMu.Unlock()
	return g.entrySlot, g.entryLevel
}

// SlotLabel returns the label stored at slot.
func (g *Graph[S]) SlotLabel(slot uint32) uint64 { return g.labels[slot] }

// SlotVector returns the storage vector stored at slot. The returned slice
// aliases internal state and must not be mutated by the caller.
func (g *Graph[S]) SlotVector(slot uint32) []S { return g.vectors[slot] }

// SlotDeleted reports whether slot's tombstone bit is set.
func (g *Graph[S]) SlotDeleted(slot uint32) bool { return g.isDeleted(slot) }

// SlotTopLevel returns the highest layer slot participates in.
func (g *Graph[S]) SlotTopLevel(slot uint32) int32 { return g.topLevel[slot] }

// SlotNeighbors returns slot's neighbor list at layer. The returned slice
// aliases internal state and must not be mutated by the caller.
func (g *Graph[S]) SlotNeighbors(slot uint32, layer int32) []uint32 {
	if int(layer) >= len(g.neighbors[slot]) {
		return nil
	}
	return g.neighbors[slot][layer]
}

// LoadElement installs a fully-formed element at slot during reconstruction
// from a serialized graph. Callers must install slots in increasing order
// and then call FinalizeLoad once every slot up to numElements is set.
func (g *Graph[S]) LoadElement(slot uint32, vec []S, label uint64, deleted bool, topLevel int32) {
	g.vectors[slot] = vec
	g.labels[slot] = label
	g.topLevel[slot] = topLevel
	if deleted {
		atomicSet(&g.deleted[slot])
	} else {
		atomicClear(&g.deleted[slot])
	}
}

// LoadNeighbors installs slot's neighbor list at layer during
// reconstruction.
func (g *Graph[S]) LoadNeighbors(slot uint32, layer int32, neighbors []uint32) {
	g.setNeighbors(slot, layer, neighbors)
}

// FinalizeLoad completes reconstruction: it sets the element count and
// entry point, and rebuilds the label-to-slot map from the installed
// elements. Must be called after every slot in [0, numElements) has been
// populated via LoadElement/LoadNeighbors.
func (g *Graph[S]) FinalizeLoad(numElements uint32, entrySlot int32, entryLevel int32) {
	g.numElements.Store(numElements)
	g.entryMu.Lock()
	g.entrySlot = entrySlot
	g.entryLevel = entryLevel
	g.entryMu.Unlock()

	g.labelMu.Lock()
	g.labelToSlot = make(map[uint64]uint32, numElements)
	for slot := uint32(0); slot < numElements; slot++ {
		g.labelToSlot[g.labels[slot]] = slot
	}
	g.labelMu.Unlock()
}
