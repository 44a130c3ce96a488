package kmerfilter

import "testing"

func TestSeqToID(t *testing.T) {
	if id := seqToID([]byte("AAAA"), 4); id != 0 {
		t.Fatalf("got %d, want 0", id)
	}
	if id := seqToID([]byte("C"), 1); id != 1 {
		t.Fatalf("got %d, want 1", id)
	}
	if id := seqToID([]byte("CG"), 2); id != (1<<2)|2 {
		t.Fatalf("got %d, want %d", id, (1<<2)|2)
	}
	if id := seqToID([]byte(" AAA"), 4); id != 0 {
		t.Fatalf("space should encode as A, got %d", id)
	}
	if id := seqToID([]byte("NNNN"), 4); id != -1 {
		t.Fatalf("N should be rejected, got %d", id)
	}
	if id := seqToID([]byte("AC"), 4); id != -1 {
		t.Fatalf("short input should be rejected, got %d", id)
	}
}

// TestFilterNoFalseNegatives asserts the filter's soundness property: any
// sequence that was Inserted must be found by Search against itself.
func TestFilterNoFalseNegatives(t *testing.T) {
	slen, tau := 20, 3
	f := New(slen, tau, DefaultMaxK)
	seqs := [][]byte{
		[]byte("ACGTACGTACGTACGTACGT"),
		[]byte("TTTTGGGGCCCCAAAATTTT"),
		[]byte("                ACGT"),
	}
	for _, s := range seqs {
		f.Insert(s)
	}
	for _, s := range seqs {
		if !f.Search(s) {
			t.Fatalf("Search missed an inserted sequence: %q", s)
		}
	}
}

func TestFilterRejectsUnrelatedSequence(t *testing.T) {
	slen, tau := 20, 1
	f := New(slen, tau, DefaultMaxK)
	f.Insert([]byte("AAAAAAAAAAAAAAAAAAAA"))
	if f.Search([]byte("TTTTTTTTTTTTTTTTTTTT")) {
		t.Fatal("filter should not match a completely disjoint sequence (this could legitimately fail on a bad hash, but homopolymer runs never collide here)")
	}
}

func TestNewSlotCountAndTotalLength(t *testing.T) {
	f := New(10, 2, DefaultMaxK) // kmers=3, k=3, rem=2-1=1
	if len(f.klen) != 3 {
		t.Fatalf("got %d slots, want 3", len(f.klen))
	}
	total := 0
	for _, kl := range f.klen {
		total += kl
	}
	if total > 10 {
		t.Fatalf("klen sum %d exceeds slen", total)
	}
}
