package voyager

import "github.com/spotify/voyager/kernel"

// Config parameterizes Index construction (spec §4.F, §6 "construct").
// Storage type is selected via the type parameter passed to New, not a
// field here.
type Config struct {
	// Space is the distance metric: Euclidean, InnerProduct, or Cosine.
	Space kernel.Space

	// Dimensions is D, the caller-facing vector width. It excludes the
	// extra coordinate the order-preserving transform appends internally.
	Dimensions int

	// M is the target per-layer out-degree (hnsw.Config.M).
	M int

	// EfConstruction is the candidate-set size used while inserting.
	EfConstruction int

	// Ef is the default search frontier size; Query(ef=0) uses this.
	Ef int

	// Seed drives level assignment, for reproducible construction.
	Seed uint64

	// MaxElements is the initial capacity. Resize, or the façade's
	// retry-on-full path, grows it as needed.
	MaxElements uint32

	// EnableOrderPreservingTransform activates the Euclidean transform
	// for InnerProduct space (spec §4.F): it is ignored for Euclidean and
	// Cosine spaces, where distance order is already preserved without it.
	EnableOrderPreservingTransform bool
}

func (c *Config) setDefaults() {
	if c.MaxElements == 0 {
		c.MaxElements = 1
	}
}

// storageDimensions returns D', the dimensionality vectors actually carry
// once stored: D, plus one extra coordinate when the order-preserving
// transform is active.
func (c Config) storageDimensions() int {
	if c.Space == kernel.InnerProduct && c.EnableOrderPreservingTransform {
		return c.Dimensions + 1
	}
	return c.Dimensions
}
