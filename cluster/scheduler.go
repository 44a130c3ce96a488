package cluster

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

// jobRequest is one unit handed from a per-trie dispatcher goroutine to
// the shared worker pool.
type jobRequest struct {
	mt   *MtTrie
	job  Job
	ws   *workerState
	done chan error
}

// RunSchedule dispatches every job in the plan to completion, following
// spec.md §4.6's re-architecture (see SPEC_FULL.md §4.6): one lightweight
// dispatcher goroutine per trie walks that trie's job list strictly in
// order (reproducing the single-BUSY-flag per-trie exclusivity and the
// build-before-query guarantee for free), while a fixed pool of
// opts.ThreadMax workers drains a shared, unbuffered job channel — the
// channel's zero buffer is the "active < thrmax" gate the original
// implements with a condition variable. The channel+pool idiom itself
// follows fusion/gene_db.go's reqCh/sync.WaitGroup producer-consumer
// pattern.
func RunSchedule(ctx context.Context, plan *Plan, opts Opts, emit *Emitter) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	reqCh := make(chan jobRequest)

	var pool sync.WaitGroup
	for w := 0; w < opts.ThreadMax; w++ {
		pool.Add(1)
		go func() {
			defer pool.Done()
			for req := range reqCh {
				req.done <- runJob(plan, req.mt, req.job, req.ws, emit)
			}
		}()
	}

	errCh := make(chan error, plan.N)
	var dispatch sync.WaitGroup
	for _, mt := range plan.Tries {
		dispatch.Add(1)
		go func(mt *MtTrie) {
			defer dispatch.Done()
			ws := newWorkerState(plan.Height, plan.Tau, opts.HitCapacity)
			for _, job := range mt.Jobs {
				select {
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				default:
				}
				done := make(chan error, 1)
				reqCh <- jobRequest{mt: mt, job: job, ws: ws, done: done}
				if err := <-done; err != nil {
					errCh <- err
					cancel()
					return
				}
				atomic.AddInt64(&plan.JobsDone, 1)
			}
		}(mt)
	}

	dispatch.Wait()
	close(reqCh)
	pool.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return errors.Wrap(err, "cluster: worker failed")
		}
	}
	return nil
}
