package cluster

import (
	"github.com/grailbio/base/traverse"
	"github.com/pkg/errors"

	"github.com/justlife/starcode/kmerfilter"
	"github.com/justlife/starcode/seq"
	"github.com/justlife/starcode/trie"
)

// Block is a contiguous range [Lo, Hi) of the sorted, deduplicated
// sequence slice.
type Block struct {
	Lo, Hi int
}

// Job is one (build?, query) unit of work against a single trie.
type Job struct {
	Range Block
	Build bool
}

// MtTrie is one trie and the resources private to it: its own arena (via
// the Trie itself), its own lookup filter, and the list of jobs that touch
// it. Per spec.md's ownership model, only the dispatcher goroutine running
// this trie's jobs ever mutates Trie or Filter, so neither needs its own
// lock.
type MtTrie struct {
	Trie     *trie.Trie
	Filter   *kmerfilter.Filter
	BlockIdx int
	Jobs     []Job
}

// Plan is the fully materialized schedule: N blocks, N tries, and each
// trie's (N+1)/2 jobs, ready for the scheduler to dispatch.
type Plan struct {
	N      int
	Blocks []Block
	Tries  []*MtTrie
	Seqs   []*seq.Seq
	Height int
	Tau    int

	// JobsDone counts completed jobs across the whole run. It only ever
	// increases (Testable Property 7); its final value equals
	// N*(N+1)/2, the total job count across all tries.
	JobsDone int64
}

// TotalJobs returns N*(N+1)/2, the number of jobs the schedule will run to
// completion.
func (p *Plan) TotalJobs() int64 {
	njobs := int64((p.N + 1) / 2)
	return int64(p.N) * njobs
}

// numTries picks an odd trie count from the thread budget, following
// plan_mt's ntries = 3*thrmax + (thrmax even).
func numTries(thrmax int) int {
	if thrmax < 1 {
		thrmax = 1
	}
	n := 3*thrmax + 1
	if thrmax%2 != 0 {
		n = 3 * thrmax
	}
	if n%2 == 0 {
		n++
	}
	return n
}

// blockBounds partitions m items into n contiguous, near-equal ranges,
// following bounds[i] = q*i + min(i, rem) where q = floor(m/n), the floor
// taken once up front rather than per i: computing floor(i*m/n) instead
// rounds differently whenever m is not a multiple of n and can push
// bounds[n] one past the end of the slice.
func blockBounds(m, n int) []int {
	bounds := make([]int, n+1)
	q := m / n
	rem := m % n
	for i := 0; i <= n; i++ {
		minIRem := i
		if minIRem > rem {
			minIRem = rem
		}
		bounds[i] = q*i + minIRem
	}
	return bounds
}

// BuildPlan partitions seqs (sorted and deduplicated, all of length
// height) into an odd number of blocks derived from thrmax, builds one
// trie and one lookup filter per block, and populates each trie's
// triangular job list. Per-trie resource allocation runs concurrently via
// traverse.Each, the same bounded fan-out pileup/snp/pileup.go uses for
// its own per-shard setup.
func BuildPlan(seqs []*seq.Seq, height, median, tau, kmerMax, thrmax int) (*Plan, error) {
	m := len(seqs)
	if m == 0 {
		return nil, errors.New("cluster: cannot build a plan from an empty sequence set")
	}

	n := numTries(thrmax)
	if n > m {
		n = m
		if n%2 == 0 {
			n--
		}
		if n < 1 {
			n = 1
		}
	}

	bounds := blockBounds(m, n)
	blocks := make([]Block, n)
	for i := 0; i < n; i++ {
		blocks[i] = Block{Lo: bounds[i], Hi: bounds[i+1]}
	}

	byteSeqs := make([][]byte, m)
	for i, r := range seqs {
		byteSeqs[i] = r.Seq
	}

	njobs := (n + 1) / 2
	tries := make([]*MtTrie, n)

	err := traverse.Each(n, func(i int) error {
		b := blocks[i]
		nnodes := trie.CountNodes(byteSeqs, b.Lo, b.Hi)
		mt := &MtTrie{
			Trie:     trie.New(height, nnodes),
			Filter:   kmerfilter.New(height, tau, kmerMax),
			BlockIdx: i,
			Jobs:     make([]Job, njobs),
		}
		for j := 0; j < njobs; j++ {
			mt.Jobs[j] = Job{
				Range: blocks[(i+j)%n],
				Build: j == 0,
			}
		}
		tries[i] = mt
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "cluster: failed to allocate per-trie resources")
	}

	return &Plan{N: n, Blocks: blocks, Tries: tries, Seqs: seqs, Height: height, Tau: tau}, nil
}
