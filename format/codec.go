package format

import (
	"math"

	"github.com/spotify/voyager/hnsw"
	"github.com/spotify/voyager/storage"
)

func vectorDim[S storage.Scalar](g *hnsw.Graph[S]) int { return g.Dim() }

func doubleBits(f float64) uint64 { return math.Float64bits(f) }

func doubleFromBits(b uint64) float64 { return math.Float64frombits(b) }
