// Package cluster implements the clustering engine proper: the plan
// builder, scheduler, worker, and top-level Run entry point that turn a
// deduplicated, padded sequence stack into a stream of close-pair matches.
package cluster

// Opts holds the tunable knobs of a clustering run, following fusion.Opts's
// pattern of a flat struct with per-field comments naming the CLI flag that
// sets it and its DefaultOpts companion.
type Opts struct {
	// Tau is the maximum edit distance to report. Negative means
	// auto-compute from the median sequence length (see seq.AutoTau).
	// Go: -dist
	Tau int

	// ThreadMax bounds the number of concurrently running worker jobs and
	// the depth of the nuke-sort fan-out.
	// Go: -threads
	ThreadMax int

	// KmerMax bounds the k-mer length the lookup filter will use per slot.
	// Go: -kmer-max
	KmerMax int

	// HitCapacity bounds how many matches a single query can report at a
	// single distance before the search is considered truncated.
	// Go: no flag, fixed to a generous default.
	HitCapacity int

	// Verbose enables progress reporting to stderr.
	// Go: -verbose
	Verbose bool
}

// DefaultOpts sets the default values for Opts.
var DefaultOpts = Opts{
	Tau:         -1,
	ThreadMax:   4,
	KmerMax:     12,
	HitCapacity: 1 << 16,
	Verbose:     false,
}
