package cluster

import (
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"

	"github.com/justlife/starcode/seq"
	"github.com/justlife/starcode/trie"
)

// workerState is the per-trie state carried across consecutive jobs of the
// same trie by its dispatcher goroutine: the search cache and the last
// successfully searched query, both needed to compute the start/trail
// locality hints. Since only one goroutine ever drives a given trie's
// jobs (see plan's per-trie exclusivity note), this needs no locking.
type workerState struct {
	cache     *trie.SearchCache
	tower     *trie.Tower
	lastQuery *seq.Seq
}

func newWorkerState(height, tau, hitCapacity int) *workerState {
	return &workerState{
		cache: trie.NewSearchCache(height),
		tower: trie.NewTower(tau, hitCapacity),
	}
}

// runJob executes one (build?, query) job: do_query from spec.md §4.7.
func runJob(plan *Plan, mt *MtTrie, job Job, ws *workerState, emit *Emitter) error {
	for idx := job.Range.Lo; idx < job.Range.Hi; idx++ {
		q := plan.Seqs[idx]
		doSearch := mt.Filter.Search(q.Seq)

		var slot *interface{}
		if job.Build {
			mt.Filter.Insert(q.Seq)
			var err error
			slot, err = mt.Trie.InsertWithoutAlloc(q.Seq)
			if err != nil {
				return errors.Wrap(err, "cluster: build-job insert failed")
			}
		}

		if doSearch {
			trail := 0
			if idx+1 < job.Range.Hi {
				trail = trie.SharedPrefix(q.Seq, plan.Seqs[idx+1].Seq)
			}
			start := 0
			if ws.lastQuery != nil {
				start = trie.SharedPrefix(q.Seq, ws.lastQuery.Seq)
			}

			if err := trie.Search(mt.Trie, q.Seq, plan.Tau, ws.tower, start, trail, ws.cache); err != nil {
				return errors.Wrap(err, "cluster: search failed")
			}

			if ws.tower.Truncated() {
				log.Error.Printf("cluster: search truncated for query %q, skipping its pairs", q.Label())
			} else {
				for d := 1; d <= plan.Tau; d++ {
					for _, hit := range ws.tower.Hits[d].Items {
						match, ok := hit.(*seq.Seq)
						if !ok || match == nil {
							continue
						}
						if err := emit.Pair(q, match, d); err != nil {
							return errors.Wrap(err, "cluster: failed to write pair")
						}
					}
				}
			}
			ws.lastQuery = q
		}

		if job.Build {
			*slot = q
		}
	}
	return nil
}
