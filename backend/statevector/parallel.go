package statevector

import "golang.org/x/sync/errgroup"

// parallelThreshold is the statevector size below which kernels run on the
// calling goroutine; chunking overhead dominates for small pools.
const parallelThreshold = 1 << 14

// forEachChunk runs work over the amplitude index space, split across the
// engine's workers for large statevectors.
func (e *Engine) forEachChunk(work func(start, end uint64)) {
	n := uint64(len(e.amps))
	if e.nbWorkers <= 1 || n < parallelThreshold {
		work(0, n)
		return
	}

	var g errgroup.Group
	chunk := (n + uint64(e.nbWorkers) - 1) / uint64(e.nbWorkers)
	for start := uint64(0); start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		start := start
		g.Go(func() error {
			work(start, end)
			return nil
		})
	}
	_ = g.Wait() // kernels never fail
}
