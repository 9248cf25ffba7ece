package voyager

import (
	"runtime"
	"sync"

	verrors "github.com/spotify/voyager/errors"
	"go.uber.org/multierr"
)

// minBatchPerThread is the spec §4.F threshold below which a batch runs
// single-threaded rather than pay worker-pool overhead: batches of size
// <= 4*numThreads.
const minBatchPerThread = 4

// AddItem encodes vec and inserts it under label. If label is nil, the
// next sequential auto-assigned label is used.
func (idx *Index[S]) AddItem(vec []float32, label *uint64) (uint64, error) {
	const op = verrors.Op("voyager.AddItem")

	l := idx.resolveLabel(label)
	encoded, err := idx.encode(op, vec, true)
	if err != nil {
		return 0, err
	}
	if err := idx.insertWithRetry(op, encoded, l); err != nil {
		return 0, err
	}
	return l, nil
}

func (idx *Index[S]) resolveLabel(label *uint64) uint64 {
	if label != nil {
		return *label
	}
	return idx.nextLabel.Add(1) - 1
}

// insertWithRetry inserts encoded under label, growing the graph and
// retrying when it is full or another goroutine resized it out from under
// this one (spec §4.F "Retry-on-full").
func (idx *Index[S]) insertWithRetry(op verrors.Op, encoded []S, label uint64) error {
	for {
		err := idx.graph.Insert(encoded, label)
		if err == nil {
			return nil
		}
		switch {
		case verrors.KindIs(err, verrors.KindIndexFull):
			idx.growAtLeast(idx.graph.NumElements() + 1)
		case verrors.KindIs(err, verrors.KindIndexCannotBeShrunk):
			// Another goroutine resized between our full-check and our
			// resize call; the index is already big enough now.
		default:
			return err
		}
	}
}

// growAtLeast doubles the graph's capacity, or grows to atLeast,
// whichever is larger, and ignores the error: the only failure mode,
// shrinking, cannot happen here because atLeast is derived from the
// current element count.
func (idx *Index[S]) growAtLeast(atLeast uint32) {
	target := idx.graph.MaxElements() * 2
	if target < atLeast {
		target = atLeast
	}
	if target == 0 {
		target = atLeast
	}
	if err := idx.graph.Resize(target); err != nil {
		Logger().Sugar().Debugw("resize during retry-on-full failed", "error", err)
	}
}

// AddItems encodes and inserts matrix in bulk, returning one label per row
// in the same order. If ids is nil, labels are auto-assigned sequentially.
// numThreads <= 0 defaults to GOMAXPROCS; batches of size <=
// 4*numThreads run single-threaded (spec §4.F "Batch operations").
func (idx *Index[S]) AddItems(matrix [][]float32, ids []uint64, numThreads int) ([]uint64, error) {
	const op = verrors.Op("voyager.AddItems")

	if len(ids) > 0 && len(ids) != len(matrix) {
		return nil, verrors.LabelMismatch(op, len(ids), len(matrix))
	}

	labels := make([]uint64, len(matrix))
	for i := range matrix {
		if len(ids) > 0 {
			labels[i] = ids[i]
		} else {
			labels[i] = idx.resolveLabel(nil)
		}
	}

	// Pre-grow once for the whole batch, rather than one row at a time,
	// to avoid a resize per worker collision (spec §4.F "resize to
	// accommodate at least the current batch").
	idx.growAtLeast(idx.graph.NumElements() + uint32(len(matrix)))

	numThreads = resolveThreadCount(numThreads)
	errs := make([]error, len(matrix))

	work := func(i int) {
		encoded, err := idx.encode(op, matrix[i], true)
		if err != nil {
			errs[i] = err
			return
		}
		errs[i] = idx.insertWithRetry(op, encoded, labels[i])
	}

	if len(matrix) <= minBatchPerThread*numThreads {
		for i := range matrix {
			work(i)
		}
	} else {
		runParallel(len(matrix), numThreads, work)
	}

	var combined error
	for _, err := range errs {
		combined = multierr.Append(combined, err)
	}
	if combined != nil {
		return labels, combined
	}
	return labels, nil
}

func resolveThreadCount(numThreads int) int {
	if numThreads <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return numThreads
}

// runParallel partitions [0, n) into numThreads contiguous chunks and runs
// fn(i) for every i, numThreads goroutines at a time (see DESIGN.md for why
// this is a plain WaitGroup-per-chunk pool rather than errgroup).
func runParallel(n, numThreads int, fn func(i int)) {
	if numThreads > n {
		numThreads = n
	}
	chunk := (n + numThreads - 1) / numThreads

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}
