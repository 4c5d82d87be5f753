// Package dispatch fans a run's region pairs out across a bounded pool
// of goroutines, running the alignment kernel on each, and aborts every
// sibling still in flight as soon as one pair fails.
//
// The semaphore-bounded goroutine-per-item shape follows
// ConcurrentSmithWatermanBatch (see DESIGN.md for the source file): a
// buffered channel caps concurrency, a sync.WaitGroup joins the pool,
// and each worker writes into its own pair rather than a shared slot,
// so no separate result-collection step is needed. Every worker shares
// the run's static model tables by reference, so fanning out adds no
// per-worker table rebuild cost.
package dispatch

import (
	"context"
	"runtime"
	"sync"

	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/align"
	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/epierr"
	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/model"
	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/params"
	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/region"
)

// Run aligns every pair in pairs against m, using up to workers
// goroutines at once (workers <= 0 means runtime.GOMAXPROCS(0)).
//
// Each pair gets its own model.Pair built from its average length
// before alignment. Pairs are mutated in place, so the caller's slice
// already holds results in input order once Run returns.
//
// The first worker to fail cancels every pair not yet started; Run
// returns that failure wrapped in epierr.WorkerFailure. Pairs already
// in flight when cancellation happens still finish (the kernel itself
// is not preemptible mid-row), but none still queued are started.
func Run(m *model.Model, p *params.Params, pairs []*region.RegionPair, workers int, opts align.Options) error {
	if len(pairs) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(pairs) {
		workers = len(pairs)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, pair := range pairs {
		select {
		case <-ctx.Done():
			continue
		default:
		}

		wg.Add(1)
		sem <- struct{}{}

		go func(pr *region.RegionPair) {
			defer wg.Done()
			defer func() { <-sem }()

			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := alignOne(m, p, pr, opts); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = &epierr.WorkerFailure{Name: pr.Name, Err: err}
					cancel()
				}
				mu.Unlock()
			}
		}(pair)
	}

	wg.Wait()
	return firstErr
}

func alignOne(m *model.Model, p *params.Params, pair *region.RegionPair, opts align.Options) error {
	nbar := float64(pair.S1.Len()+pair.S2.Len()) / 2
	pm, err := m.PairFor(nbar, p)
	if err != nil {
		return err
	}
	return align.Run(pm, pair, opts)
}
