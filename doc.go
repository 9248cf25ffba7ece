// Package voyager implements an in-memory approximate-nearest-neighbor
// vector index over a Hierarchical Navigable Small World graph.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	voyager/          Root package: the typed Index façade
//	├── hnsw/         The multi-layer graph: insert, search, resize, delete
//	├── kernel/       Distance functions, specialized per space/storage/width
//	├── storage/      The three vector scalar encodings: Float32, Float8, E4M3
//	├── format/       Versioned on-disk layout, including legacy V0 detection
//	├── stream/       Input/Output abstractions over memory, files, and hosts
//	├── visited/      Pooled, versioned visited-node bitsets for search
//	└── errors/       Structured error type shared across every package
//
// An Index[S] binds a distance space (Euclidean, InnerProduct, or Cosine), a
// storage scalar type S, and a dimensionality to an hnsw.Graph[S]. It owns
// everything the graph does not know about:
//
//   - input path: dimensionality validation, cosine normalization, the
//     inner-product order-preserving transform, and quantization into S;
//   - output path: dequantization, including the documented divergence for
//     cosine-space indices (GetVector returns the normalized vector, not
//     the caller's original);
//   - batch operations: AddItems/QueryBatch fan out over a worker pool, falling
//     back to single-threaded execution for small batches;
//   - retry-on-full: growing the index and retrying insertion when a batch
//     fills it mid-flight;
//   - persistence: Save/Load wrap package format's versioned wire layout.
//
// # Quick Start
//
//	idx, err := voyager.New[storage.F32](voyager.Config{
//	    Space:      kernel.Cosine,
//	    Dimensions: 128,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	label, err := idx.AddItem(vector, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	results, err := idx.Query(query, 10, 0)
//	fmt.Println(results[0].Label, results[0].Distance)
//
// # Thread Safety
//
// Index is safe for concurrent use: AddItem/AddItems/Query/QueryBatch,
// GetVector, MarkDeleted/UnmarkDeleted, and Resize may all be called
// concurrently from multiple goroutines. Save/Load are not safe to run
// concurrently with mutating operations on the same Index.
package voyager
