package hnsw

import "math"

// Config parameterizes a graph's topology and default search behavior
// (spec §4.E, §6 "construct"). The zero value is completed by setDefaults.
type Config struct {
	// M is the target out-degree per node at layers >= 1; layer 0 allows
	// M0 = 2*M (spec GLOSSARY).
	M int

	// EfConstruction is the candidate-set size used while inserting
	// (spec §4.E step 5).
	EfConstruction int

	// Ef is the default search frontier size; callers may override it
	// per query as long as ef >= k (spec §4.E "search").
	Ef int

	// Seed drives the level-assignment RNG, making graph construction
	// reproducible for a fixed insertion order (spec §8 S5).
	Seed uint64

	// MaxElements is the initial element-array capacity. Resize grows it.
	MaxElements uint32
}

func (c *Config) setDefaults() {
	if c.M < 2 {
		c.M = 16
	}
	if c.EfConstruction <= 0 {
		c.EfConstruction = 200
	}
	if c.Ef <= 0 {
		c.Ef = 10
	}
	if c.MaxElements == 0 {
		c.MaxElements = 1
	}
}

// maxConns returns the neighbor-list cap at layer.
func (c *Config) maxConns(layer int32) int {
	if layer == 0 {
		return 2 * c.M
	}
	return c.M
}

// levelMult is the 1/ln(M) parameter of the geometric level distribution
// (spec §3 "Layer assignment").
func (c *Config) levelMult() float64 {
	return 1.0 / math.Log(float64(c.M))
}

// M0 returns the layer-0 neighbor cap, 2*M (spec GLOSSARY).
func (c Config) M0() int { return 2 * c.M }

// Mult returns the exported form of levelMult, persisted on disk as the
// "mult" metadata field (spec §6).
func (c Config) Mult() float64 { return c.levelMult() }
