package seq

import "testing"

func TestParallelSortOrdersAndCoalesces(t *testing.T) {
	s := NewStack(0)
	for _, raw := range []string{"ACGT", "AC", "AC", "CA", "AAAA"} {
		s.Push(mustSeq(t, raw))
	}
	totalBefore := s.TotalCount()

	sorted := ParallelSort(s, 2)

	if sorted.TotalCount() != totalBefore {
		t.Fatalf("total count changed: got %d, want %d", sorted.TotalCount(), totalBefore)
	}
	if sorted.Len() != 4 {
		t.Fatalf("expected duplicates coalesced, got %d distinct records", sorted.Len())
	}
	for i := 1; i < sorted.Len(); i++ {
		if Less(sorted.Items[i], sorted.Items[i-1]) {
			t.Fatalf("not sorted at index %d: %q before %q", i, sorted.Items[i-1].Seq, sorted.Items[i].Seq)
		}
	}
	for _, r := range sorted.Items {
		if string(r.Seq) == "AC" && r.Count != 2 {
			t.Fatalf("expected AC count 2, got %d", r.Count)
		}
	}
}

func TestParallelSortHandlesSmallAndEmptyStacks(t *testing.T) {
	empty := NewStack(0)
	if got := ParallelSort(empty, 4); got.Len() != 0 {
		t.Fatalf("expected empty stack to stay empty, got %d", got.Len())
	}

	single := NewStack(0)
	single.Push(mustSeq(t, "ACGT"))
	if got := ParallelSort(single, 4); got.Len() != 1 {
		t.Fatalf("expected single-element stack to stay size 1, got %d", got.Len())
	}
}

func TestParallelSortSortsAtEveryDepth(t *testing.T) {
	raws := []string{"ACGT", "TTTT", "AC", "ACGTACGT", "A", "CA", "GATTACA", "AC", "GATTACA"}
	for _, depth := range []int{0, 1, 2, 4} {
		s := NewStack(0)
		for _, raw := range raws {
			s.Push(mustSeq(t, raw))
		}
		sorted := ParallelSort(s, depth)
		for i := 1; i < sorted.Len(); i++ {
			if Less(sorted.Items[i], sorted.Items[i-1]) {
				t.Fatalf("depth %d: not sorted at %d", depth, i)
			}
		}
	}
}
