package qsim

import (
	"runtime"
	"sync"
)

/*
dispatcher partitions a linear basis-index space across a fixed set of
workers and blocks until every partition has completed. Every public
engine operation is one synchronous fan-out/fan-in over the whole
amplitude vector; nothing here is asynchronous or cancellable.

Callers must choose the index-to-memory mapping so that distinct indices
never write overlapping amplitudes. Ranges below the sequential
threshold run inline on the calling goroutine.
*/
type dispatcher struct {
	workers   int
	threshold uint64
}

func newDispatcher(workers int, threshold uint64) *dispatcher {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if threshold == 0 {
		threshold = 1 << 12
	}
	return &dispatcher{workers: workers, threshold: threshold}
}

// run invokes fn exactly once for every index in [0, n), in no
// particular order across workers.
func (d *dispatcher) run(n uint64, fn func(i uint64)) {
	if n == 0 {
		return
	}
	if n <= d.threshold || d.workers == 1 {
		for i := uint64(0); i < n; i++ {
			fn(i)
		}
		return
	}

	chunk := (n + uint64(d.workers) - 1) / uint64(d.workers)
	var wg sync.WaitGroup
	for begin := uint64(0); begin < n; begin += chunk {
		end := begin + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(begin, end uint64) {
			defer wg.Done()
			for i := begin; i < end; i++ {
				fn(i)
			}
		}(begin, end)
	}
	wg.Wait()
}

// runStrided is run with chunk boundaries aligned to multiples of
// stride, so a logical block of stride consecutive indices is never
// torn across two workers. Used by the permutation passes, whose
// rearrangement stays inside windows of a known power-of-two size.
func (d *dispatcher) runStrided(n, stride uint64, fn func(i uint64)) {
	if stride == 0 || stride >= n {
		d.run(n, fn)
		return
	}
	if n <= d.threshold || d.workers == 1 {
		for i := uint64(0); i < n; i++ {
			fn(i)
		}
		return
	}

	blocks := n / stride
	blocksPerChunk := (blocks + uint64(d.workers) - 1) / uint64(d.workers)
	chunk := blocksPerChunk * stride
	var wg sync.WaitGroup
	for begin := uint64(0); begin < n; begin += chunk {
		end := begin + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(begin, end uint64) {
			defer wg.Done()
			for i := begin; i < end; i++ {
				fn(i)
			}
		}(begin, end)
	}
	wg.Wait()
}

// expandMask maps a compact counter onto the full index space while
// holding every bit position named in qPowersSorted at zero. The powers
// must be sorted ascending; each round splices a zero bit into the
// counter at the next masked position.
func expandMask(lcv uint64, qPowersSorted []uint64) uint64 {
	iHigh := lcv
	i := uint64(0)
	for _, p := range qPowersSorted {
		iLow := iHigh & (p - 1)
		i |= iLow
		iHigh = (iHigh ^ iLow) << 1
	}
	return i | iHigh
}

// runMasked invokes fn once for every index in [0, n) whose bits at the
// positions in qPowersSorted are all zero. fn receives the expanded
// index, not the compact counter.
func (d *dispatcher) runMasked(n uint64, qPowersSorted []uint64, fn func(i uint64)) {
	count := n >> uint(len(qPowersSorted))
	d.run(count, func(lcv uint64) {
		fn(expandMask(lcv, qPowersSorted))
	})
}

// runSkip is runMasked for a single skipped bit position.
func (d *dispatcher) runSkip(n, skipPower uint64, fn func(i uint64)) {
	d.runMasked(n, []uint64{skipPower}, fn)
}

// reduceSum invokes fn for every index in [0, n) and returns the sum of
// the partial results. Partials are combined in chunk order, so the
// floating-point result is deterministic for a given worker count.
func (d *dispatcher) reduceSum(n uint64, fn func(i uint64) float64) float64 {
	if n == 0 {
		return 0
	}
	if n <= d.threshold || d.workers == 1 {
		sum := 0.0
		for i := uint64(0); i < n; i++ {
			sum += fn(i)
		}
		return sum
	}

	chunk := (n + uint64(d.workers) - 1) / uint64(d.workers)
	numChunks := int((n + chunk - 1) / chunk)
	partials := make([]float64, numChunks)
	var wg sync.WaitGroup
	for c := 0; c < numChunks; c++ {
		begin := uint64(c) * chunk
		end := begin + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(c int, begin, end uint64) {
			defer wg.Done()
			sum := 0.0
			for i := begin; i < end; i++ {
				sum += fn(i)
			}
			partials[c] = sum
		}(c, begin, end)
	}
	wg.Wait()

	sum := 0.0
	for _, p := range partials {
		sum += p
	}
	return sum
}

// reduceSumMasked is reduceSum over the masked enumeration, letting a
// gate pass accumulate the vector norm while it mutates.
func (d *dispatcher) reduceSumMasked(n uint64, qPowersSorted []uint64, fn func(i uint64) float64) float64 {
	count := n >> uint(len(qPowersSorted))
	return d.reduceSum(count, func(lcv uint64) float64 {
		return fn(expandMask(lcv, qPowersSorted))
	})
}
