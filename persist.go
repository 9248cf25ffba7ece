package voyager

import (
	"math"

	verrors "github.com/spotify/voyager/errors"
	"github.com/spotify/voyager/format"
	"github.com/spotify/voyager/kernel"
	"github.com/spotify/voyager/storage"
	"github.com/spotify/voyager/stream"
)

// Save writes the index to out in the current versioned format (spec
// §4.G, §6).
func (idx *Index[S]) Save(out stream.Output) error {
	meta := format.Metadata{
		NumDimensions:               int32(idx.cfg.storageDimensions()),
		Space:                       idx.cfg.Space,
		Storage:                     idx.kind,
		MaxNorm:                     idx.MaxNorm(),
		UseOrderPreservingTransform: idx.UseOrderPreservingTransform(),
	}
	if err := format.WriteHeader(out); err != nil {
		return err
	}
	if err := format.WriteMetadata(out, meta); err != nil {
		return err
	}
	return format.WriteGraphBody(out, idx.graph)
}

// Load reads an index previously written by Save. Loading a legacy V0
// file (spec §4.G, §9 Open Question) is not supported: V0 carries no
// label block, so a load from it could never round-trip through a
// subsequent Save with the same labels, and is reported as
// KindUnsupportedVersion instead of silently losing labels.
func Load[S storage.Scalar](in stream.Input) (*Index[S], error) {
	const op = verrors.Op("voyager.Load")

	isCurrent, err := format.Probe(in)
	if err != nil {
		return nil, err
	}
	if !isCurrent {
		return nil, verrors.UnsupportedVersion(op, 0)
	}
	if _, err := format.ReadVersion(in); err != nil {
		return nil, err
	}
	meta, err := format.ReadMetadata(in)
	if err != nil {
		return nil, err
	}

	wantKind := storage.KindOf[S]()
	if meta.Storage != wantKind {
		return nil, verrors.New(op, verrors.KindDimensionMismatch,
			"file storage kind %s does not match requested type %s", meta.Storage, wantKind)
	}

	dist := kernel.Build[S](meta.Space, meta.Storage, int(meta.NumDimensions))
	graph, err := format.ReadGraphBody[S](in, meta.Space, meta.Storage, int(meta.NumDimensions), dist)
	if err != nil {
		return nil, err
	}

	dims := int(meta.NumDimensions)
	if meta.Space == kernel.InnerProduct && meta.UseOrderPreservingTransform {
		dims--
	}

	gcfg := graph.Config()
	idx := &Index[S]{
		cfg: Config{
			Space:                          meta.Space,
			Dimensions:                     dims,
			M:                              gcfg.M,
			EfConstruction:                 gcfg.EfConstruction,
			Ef:                             gcfg.Ef,
			Seed:                           gcfg.Seed,
			MaxElements:                    graph.MaxElements(),
			EnableOrderPreservingTransform: meta.UseOrderPreservingTransform,
		},
		kind:     meta.Storage,
		dist:     dist,
		quantize: quantizerFor[S](),
		graph:    graph,
	}
	idx.maxNorm.Store(math.Float32bits(meta.MaxNorm))
	idx.nextLabel.Store(uint64(graph.NumElements()))
	return idx, nil
}
