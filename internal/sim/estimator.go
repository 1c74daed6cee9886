package sim

import (
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/banshee-data/coverage.report/internal/grid"
	"github.com/banshee-data/coverage.report/internal/monitoring"
)

// DefaultSimulations is the number of placement trials per estimate.
const DefaultSimulations = 100000

// epsilon guards divisions and logarithms at the endpoints. Machine
// epsilon for float64.
const epsilon = 1.0 / (1 << 52)

// Estimator runs independent placement trials in parallel and
// accumulates per-cell coverage frequencies. The zero value is usable
// and picks defaults for every field.
type Estimator struct {
	// Simulations is the trial count. <= 0 means DefaultSimulations.
	Simulations int
	// Workers sizes the worker pool. <= 0 means runtime.NumCPU().
	Workers int
	// Seed derives the per-worker PRNG streams. 0 means a time-based
	// seed; runs are not reproducible either way, since trials are
	// claimed dynamically across workers.
	Seed int64
}

// Probabilities estimates, for every cell of mask, the probability that
// the cell is covered by at least one rectangle in a successful trial.
// Trials in which not all rectangles could be placed contribute nothing.
// When no trial succeeds the result is all zeros.
func (e *Estimator) Probabilities(mask grid.Grid[bool], rects []grid.Rect) grid.Grid[float64] {
	sims := e.Simulations
	if sims <= 0 {
		sims = DefaultSimulations
	}
	workers := e.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	seed := e.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Place the largest rectangles first: late dead-ends become rarer,
	// which raises the success rate and lowers variance for a fixed
	// trial count. The sort is stable so equal-area rectangles keep
	// their input order.
	sorted := make([]grid.Rect, len(rects))
	copy(sorted, rects)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Area() > sorted[j].Area()
	})

	rows, cols := mask.Rows(), mask.Cols()
	hits := grid.New(rows, cols, 0)
	successes := 0

	var (
		mu   sync.Mutex
		next atomic.Int64
		wg   sync.WaitGroup
	)
	start := time.Now()
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed + int64(worker)))
			localHits := grid.New(rows, cols, 0)
			localSuccesses := 0

			// Workers claim trial indices from a shared counter, so an
			// unlucky worker never stalls the join.
			for next.Add(1) <= int64(sims) {
				localRects := make([]grid.Rect, len(sorted))
				copy(localRects, sorted)
				labels, ok := placeAll(mask.Clone(), localRects, rng)
				if !ok {
					continue
				}
				localSuccesses++
				for y := 0; y < rows; y++ {
					for x := 0; x < cols; x++ {
						p := grid.Position{X: x, Y: y}
						if labels.At(p) > 0 {
							localHits.Set(p, localHits.At(p)+1)
						}
					}
				}
			}

			mu.Lock()
			defer mu.Unlock()
			successes += localSuccesses
			for y := 0; y < rows; y++ {
				for x := 0; x < cols; x++ {
					p := grid.Position{X: x, Y: y}
					hits.Set(p, hits.At(p)+localHits.At(p))
				}
			}
		}(w)
	}
	wg.Wait()

	monitoring.Logf("estimate: %d/%d trials placed all %d rectangles (%.1f%%) in %v",
		successes, sims, len(rects),
		100*float64(successes)/float64(sims), time.Since(start).Round(time.Millisecond))

	counts := grid.Map(hits, func(h int) float64 { return float64(h) })
	return grid.Scale(counts, 1/(float64(successes)+epsilon))
}

// Entropy maps a probability grid to its per-cell binary entropy,
// clamped to [0,1]. Cells at probability 0 or 1 come out (numerically)
// zero; 0.5 comes out 1.
func Entropy(probabilities grid.Grid[float64]) grid.Grid[float64] {
	return grid.Map(probabilities, func(p float64) float64 {
		h := -p*math.Log2(p+epsilon) - (1-p)*math.Log2(1-p+epsilon)
		return math.Min(1, math.Max(0, h))
	})
}
