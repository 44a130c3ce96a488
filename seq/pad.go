package seq

// MaxTau is the largest edit distance the engine will ever search at,
// regardless of what a particular run's Tau is set to. Paired-end input
// parsing joins mates with a run of MaxTau+1 dashes (see ioformat) so
// that no real alignment can bridge the two mates at any configured Tau,
// mirroring STARCODE_MAX_TAU's role in sizing the join separator ahead
// of knowing the run's actual tau.
const MaxTau = 8

// Pad right-aligns every record in the stack to the length of its longest
// member, filling the new leading bytes with spaces. It returns the common
// padded length (the trie height) and the median of the *pre-pad* lengths,
// used by the τ-auto rule. The k-mer filter is sized from the height, not
// from this median.
//
// Pad must run after ParallelSort: it assumes Stack holds only distinct
// records (the median computation divides by Stack.Len(), not by the sum of
// Count).
func Pad(s *Stack) (height, median int) {
	maxLen := 0
	counts := map[int]int{}
	for _, r := range s.Items {
		l := len(r.Seq)
		if l > maxLen {
			maxLen = l
		}
		counts[l]++
	}

	for _, r := range s.Items {
		l := len(r.Seq)
		if l == maxLen {
			continue
		}
		padded := make([]byte, maxLen)
		for i := 0; i < maxLen-l; i++ {
			padded[i] = ' '
		}
		copy(padded[maxLen-l:], r.Seq)
		r.Seq = padded
	}

	// Smallest L such that the cumulative count of records with length <= L
	// reaches at least half the stack.
	running := 0
	for l := 1; l <= maxLen; l++ {
		running += counts[l]
		if running >= s.Len()/2 {
			median = l
			break
		}
	}
	if median == 0 {
		median = maxLen
	}
	return maxLen, median
}

// Unpad strips leading-space padding from every record in the stack,
// in place. It is the inverse of Pad, used when the engine needs to recover
// original (non padded) sequences, e.g. for tests.
func Unpad(s *Stack) {
	for _, r := range s.Items {
		r.Seq = r.Unpadded()
	}
}

// AutoTau implements the τ-auto rule from spec.md §4.2: 8 if the median
// length exceeds 160, else 2 + median/30.
func AutoTau(median int) int {
	if median > 160 {
		return 8
	}
	return 2 + median/30
}
