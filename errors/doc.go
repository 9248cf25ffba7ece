// Package errors provides the structured error type shared by every Voyager
// core package.
//
// Errors are categorized by Kind (spec §7's error taxonomy) and carry the Op
// that produced them plus, where relevant, the offending label. Construct
// errors with the convenience constructors:
//
//	err := errors.DimensionMismatch("hnsw.Insert", len(v), g.dim)
//	err := errors.Corruption("hnsw.Search", "distance %.6f below tolerance", d).WithLabel(label)
//
// IndexFull and IndexCannotBeShrunk are not failures from the caller's
// perspective during normal batch insertion: the façade in package voyager
// catches them with errors.KindIs and retries after growing the index (spec
// §4.F, §9).
package errors
