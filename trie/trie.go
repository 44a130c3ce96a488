// Package trie implements the approximate-search trie the cluster package
// treats as an external collaborator: an arena-backed prefix tree over
// fixed-height padded sequences, with bulk insertion into a caller-sized
// node arena and a Levenshtein-bounded search that recomputes its DP rows
// from the root for every query (see SearchCache).
package trie

import "github.com/pkg/errors"

// alphabet maps a sequence byte to a child-edge index. Seven symbols:
// space (padding), A, C, G, T, N, and '-' (paired-end join separator).
const alphabetSize = 7

func symbol(b byte) int8 {
	switch b {
	case ' ':
		return 0
	case 'A', 'a':
		return 1
	case 'C', 'c':
		return 2
	case 'G', 'g':
		return 3
	case 'T', 't':
		return 4
	case 'N', 'n':
		return 5
	case '-':
		return 6
	default:
		return -1
	}
}

// node is one trie node: a row of child slots, each either 0 (absent,
// since the arena's index 0 is reserved for the root and never a valid
// child) or the arena index of the child. Leaf nodes additionally carry a
// pointer back to the owning record, nil until the worker fills it in
// (see InsertWithoutAlloc).
type node struct {
	children [alphabetSize]int32
	data     interface{}
}

// Trie is an arena-backed prefix tree of fixed height. The arena is a
// plain Go slice sized exactly by the caller (see CountNodes): unlike a
// genome-scale structure, a single trie's arena is filled by one build job
// and is never resized, so there is no need for unsafe
// pointer arithmetic or an mmap-backed allocator.
type Trie struct {
	height int
	arena  []node
	cursor int32 // next free arena slot; 0 is the root.
}

// New returns a Trie of the given height with an arena pre-sized to
// nnodes+1 slots (the +1 for the root).
func New(height, nnodes int) *Trie {
	t := &Trie{height: height, arena: make([]node, 1, nnodes+1)}
	t.cursor = 1
	return t
}

// Height returns the fixed sequence length this trie indexes.
func (t *Trie) Height() int {
	return t.height
}

// CountNodes estimates the exact number of non-root nodes required to
// insert sorted[lo:hi] into a fresh trie, following the original's node
// count formula: the first sequence contributes one node per character
// (minus the root edge), and every subsequent sequence contributes one
// node per character beyond its shared prefix with its predecessor.
//
// Returns 0 for an empty range (lo == hi); the original formula is
// undefined in that case (see spec's open question on count_trie_nodes).
func CountNodes(sorted [][]byte, lo, hi int) int {
	if hi <= lo {
		return 0
	}
	seqlen := len(sorted[lo])
	count := seqlen
	for i := lo + 1; i < hi; i++ {
		count += seqlen - SharedPrefix(sorted[i-1], sorted[i])
	}
	return count
}

// SharedPrefix returns the length of the common byte prefix of a and b.
func SharedPrefix(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// InsertWithoutAlloc inserts seq (length must equal t.Height()) into the
// trie, allocating nodes from the arena as needed, and returns a pointer
// to the leaf's data slot. The caller typically leaves the slot nil until
// after searching seq against the trie-so-far, then fills it in, so a
// build job's own query never matches itself (see cluster's worker).
func (t *Trie) InsertWithoutAlloc(seq []byte) (*interface{}, error) {
	if len(seq) != t.height {
		return nil, errors.Errorf("trie: sequence length %d does not match trie height %d", len(seq), t.height)
	}
	cur := int32(0)
	for _, b := range seq {
		s := symbol(b)
		if s < 0 {
			return nil, errors.Errorf("trie: invalid byte %q in sequence %q", b, seq)
		}
		child := t.arena[cur].children[s]
		if child == 0 {
			if int(t.cursor) >= cap(t.arena) {
				return nil, errors.New("trie: node arena exhausted")
			}
			t.arena = t.arena[:t.cursor+1]
			child = t.cursor
			t.arena[cur].children[s] = child
			t.cursor++
		}
		cur = child
	}
	return &t.arena[cur].data, nil
}
