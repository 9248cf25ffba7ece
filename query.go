package voyager

import verrors "github.com/spotify/voyager/errors"

// Query runs a single nearest-neighbor search for vec, returning the k
// closest non-deleted elements in ascending distance order. ef <= 0 uses
// the index's configured default.
func (idx *Index[S]) Query(vec []float32, k int, ef int) ([]Result, error) {
	const op = verrors.Op("voyager.Query")

	if ef <= 0 {
		ef = idx.graph.Config().Ef
	}
	encoded, err := idx.encode(op, vec, false)
	if err != nil {
		return nil, err
	}
	return idx.graph.Search(encoded, k, ef)
}

// QueryBatch runs Query for every row of matrix, fanning out across a
// worker pool the same way AddItems does (spec §4.F "Batch operations").
// Results are returned in the same order as matrix; if any row fails, the
// first such error by row index is returned alongside the partial results.
func (idx *Index[S]) QueryBatch(matrix [][]float32, k int, numThreads int, ef int) ([][]Result, error) {
	numThreads = resolveThreadCount(numThreads)
	results := make([][]Result, len(matrix))
	errs := make([]error, len(matrix))

	work := func(i int) {
		results[i], errs[i] = idx.Query(matrix[i], k, ef)
	}

	if len(matrix) <= minBatchPerThread*numThreads {
		for i := range matrix {
			work(i)
		}
	} else {
		runParallel(len(matrix), numThreads, work)
	}

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
