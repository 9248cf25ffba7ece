package format

import (
	"github.com/spotify/voyager/hnsw"
	"github.com/spotify/voyager/kernel"
	"github.com/spotify/voyager/storage"
	"github.com/spotify/voyager/stream"
)

// graphHeader mirrors the fixed-order HNSW body fields (spec §6 "HNSW
// body"). size_data_per_element additionally reserves one byte per element
// for the tombstone flag, a deliberate divergence from the original
// byte-for-byte layout (see DESIGN.md): the spec's own §4.G and §6 field
// lists disagree on whether a deletions flag is present at all, and
// preserving deletions across save/load is a hard functional requirement
// (spec §8 property 6), so this package always round-trips it explicitly.
// The header likewise carries one extra u64, deletedOffset, which is
// written last, after cur_element_count.
type graphHeader struct {
	offsetLevel0        uint64
	maxElements         uint64
	numElements         uint64
	sizeDataPerElement  uint64
	labelOffset         uint64
	vectorOffset        uint64
	deletedOffset       uint64
	m                   uint64
	mMax0               uint64
	efConstruction      uint64
	mult                float64
	ef                  uint64
	curElementCount     uint64
}

// WriteGraphBody serializes g's full graph state: the fixed-order header,
// the per-element fixed-size data blocks, then each element's higher-layer
// neighbor lists (spec §6).
func WriteGraphBody[S storage.Scalar](out stream.Output, g *hnsw.Graph[S]) error {
	cfg := g.Config()
	dim := vectorDim(g)
	width := storage.Width(storage.KindOf[S]())

	vectorOffset := uint64(4 + cfg.M0()*4)
	labelOffset := vectorOffset + uint64(dim*width)
	deletedOffset := labelOffset + 8
	sizeDataPerElement := deletedOffset + 1

	hdr := graphHeader{
		offsetLevel0:       0,
		maxElements:        uint64(g.MaxElements()),
		numElements:        uint64(g.NumElements()),
		sizeDataPerElement: sizeDataPerElement,
		labelOffset:        labelOffset,
		vectorOffset:       vectorOffset,
		deletedOffset:      deletedOffset,
		m:                  uint64(cfg.M),
		mMax0:              uint64(cfg.M0()),
		efConstruction:     uint64(cfg.EfConstruction),
		mult:               cfg.Mult(),
		ef:                 uint64(cfg.Ef),
		curElementCount:    uint64(g.NumElements()),
	}
	if err := writeGraphHeader(out, hdr); err != nil {
		return err
	}

	numElements := g.NumElements()
	for slot := uint32(0); slot < numElements; slot++ {
		if err := writeElementData(out, g, slot, cfg.M0(), dim, width); err != nil {
			return err
		}
	}
	for slot := uint32(0); slot < numElements; slot++ {
		if err := writeElementLevels(out, g, slot); err != nil {
			return err
		}
	}
	return nil
}

func writeGraphHeader(out stream.Output, h graphHeader) error {
	fields := []uint64{
		h.offsetLevel0, h.maxElements, h.numElements, h.sizeDataPerElement,
		h.labelOffset, h.vectorOffset, h.m, h.mMax0, h.efConstruction,
	}
	for _, f := range fields {
		if err := stream.WriteU64(out, f); err != nil {
			return err
		}
	}
	if err := stream.WriteU64(out, doubleBits(h.mult)); err != nil {
		return err
	}
	if err := stream.WriteU64(out, h.ef); err != nil {
		return err
	}
	if err := stream.WriteU64(out, h.curElementCount); err != nil {
		return err
	}
	return stream.WriteU64(out, h.deletedOffset)
}

func writeElementData[S storage.Scalar](out stream.Output, g *hnsw.Graph[S], slot uint32, m0, dim, width int) error {
	neighbors := g.SlotNeighbors(slot, 0)
	if err := stream.WriteU32(out, uint32(len(neighbors))); err != nil {
		return err
	}
	buf := make([]byte, 0, m0*4)
	for i := 0; i < m0; i++ {
		var id uint32
		if i < len(neighbors) {
			id = neighbors[i]
		}
		buf = stream.PutU32(buf, id)
	}
	if err := out.Write(buf); err != nil {
		return err
	}

	vec := g.SlotVector(slot)
	vecBuf := make([]byte, 0, dim*width)
	for _, s := range vec {
		vecBuf = storage.EncodeRaw(vecBuf, s)
	}
	if err := out.Write(vecBuf); err != nil {
		return err
	}

	if err := stream.WriteU64(out, g.SlotLabel(slot)); err != nil {
		return err
	}
	return stream.WriteU8(out, boolToU8(g.SlotDeleted(slot)))
}

func writeElementLevels[S storage.Scalar](out stream.Output, g *hnsw.Graph[S], slot uint32) error {
	level := g.SlotTopLevel(slot)
	if err := stream.WriteI32(out, level); err != nil {
		return err
	}
	for l := int32(1); l <= level; l++ {
		neighbors := g.SlotNeighbors(slot, l)
		if err := stream.WriteU32(out, uint32(len(neighbors))); err != nil {
			return err
		}
		buf := make([]byte, 0, len(neighbors)*4)
		for _, n := range neighbors {
			buf = stream.PutU32(buf, n)
		}
		if err := out.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// ReadGraphBody reconstructs a graph from a stream previously written by
// WriteGraphBody. dist, space, and kind parameterize the distance kernel,
// non-negativity guard, and tolerance band, mirroring the façade's own
// space/storage binding (spec §9 "Polymorphism over storage type": the
// façade picks the concrete graph type, this function just fills it in).
func ReadGraphBody[S storage.Scalar](in stream.Input, space kernel.Space, kind storage.Kind, dim int, dist kernel.Func[S]) (*hnsw.Graph[S], error) {
	hdr, err := readGraphHeader(in)
	if err != nil {
		return nil, err
	}

	cfg := hnsw.Config{
		M:              int(hdr.m),
		EfConstruction: int(hdr.efConstruction),
		Ef:             int(hdr.ef),
		MaxElements:    uint32(hdr.maxElements),
	}
	g := hnsw.NewGraph[S](cfg, dist, space, kind, dim)

	width := storage.Width(storage.KindOf[S]())
	numElements := uint32(hdr.numElements)

	type pendingElement struct {
		neighborCount uint32
		neighbors0    []uint32
		vec           []S
		label         uint64
		deleted       bool
	}
	pending := make([]pendingElement, numElements)

	for slot := uint32(0); slot < numElements; slot++ {
		count, err := stream.ReadU32(in)
		if err != nil {
			return nil, err
		}
		raw := make([]byte, int(hdr.mMax0)*4)
		if err := in.ReadFull(raw); err != nil {
			return nil, err
		}
		neighbors0 := make([]uint32, count)
		for i := range neighbors0 {
			neighbors0[i] = stream.GetU32(raw[i*4:])
		}

		vecBuf := make([]byte, dim*width)
		if err := in.ReadFull(vecBuf); err != nil {
			return nil, err
		}
		vec := make([]S, dim)
		for i := range vec {
			vec[i] = storage.DecodeRaw[S](vecBuf[i*width:])
		}

		label, err := stream.ReadU64(in)
		if err != nil {
			return nil, err
		}
		deletedByte, err := stream.ReadU8(in)
		if err != nil {
			return nil, err
		}

		pending[slot] = pendingElement{neighborCount: count, neighbors0: neighbors0, vec: vec, label: label, deleted: deletedByte != 0}
	}

	var entrySlot int32 = -1
	var entryLevel int32 = -1

	for slot := uint32(0); slot < numElements; slot++ {
		level, err := stream.ReadI32(in)
		if err != nil {
			return nil, err
		}
		p := pending[slot]
		g.LoadElement(slot, p.vec, p.label, p.deleted, level)
		g.LoadNeighbors(slot, 0, p.neighbors0)
		for l := int32(1); l <= level; l++ {
			count, err := stream.ReadU32(in)
			if err != nil {
				return nil, err
			}
			raw := make([]byte, int(count)*4)
			if err := in.ReadFull(raw); err != nil {
				return nil, err
			}
			neighbors := make([]uint32, count)
			for i := range neighbors {
				neighbors[i] = stream.GetU32(raw[i*4:])
			}
			g.LoadNeighbors(slot, l, neighbors)
		}
		if level > entryLevel {
			entryLevel = level
			entrySlot = int32(slot)
		}
	}

	g.FinalizeLoad(numElements, entrySlot, entryLevel)
	return g, nil
}

func readGraphHeader(in stream.Input) (graphHeader, error) {
	var h graphHeader
	vals := make([]uint64, 9)
	for i := range vals {
		v, err := stream.ReadU64(in)
		if err != nil {
			return h, err
		}
		vals[i] = v
	}
	h.offsetLevel0, h.maxElements, h.numElements, h.sizeDataPerElement = vals[0], vals[1], vals[2], vals[3]
	h.labelOffset, h.vectorOffset, h.m, h.mMax0, h.efConstruction = vals[4], vals[5], vals[6], vals[7], vals[8]

	multBits, err := stream.ReadU64(in)
	if err != nil {
		return h, err
	}
	h.mult = doubleFromBits(multBits)

	if h.ef, err = stream.ReadU64(in); err != nil {
		return h, err
	}
	if h.curElementCount, err = stream.ReadU64(in); err != nil {
		return h, err
	}
	if h.deletedOffset, err = stream.ReadU64(in); err != nil {
		return h, err
	}
	return h, nil
}
