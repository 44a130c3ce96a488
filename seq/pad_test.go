package seq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustSeq(t *testing.T, s string) *Seq {
	t.Helper()
	rec, err := New(1, []byte(s), "")
	require.NoError(t, err)
	return rec
}

func TestPadRightAligns(t *testing.T) {
	s := NewStack(0)
	s.Push(mustSeq(t, "AC"))
	s.Push(mustSeq(t, "ACGT"))

	height, _ := Pad(s)
	require.Equal(t, 4, height)
	require.Equal(t, "  AC", string(s.Items[0].Seq))
	require.Equal(t, "ACGT", string(s.Items[1].Seq))
}

func TestUnpadInverse(t *testing.T) {
	s := NewStack(0)
	s.Push(mustSeq(t, "AC"))
	s.Push(mustSeq(t, "ACGT"))
	Pad(s)
	Unpad(s)
	require.Equal(t, "AC", string(s.Items[0].Seq))
	require.Equal(t, "ACGT", string(s.Items[1].Seq))
}

func TestAutoTau(t *testing.T) {
	cases := []struct {
		median int
		want   int
	}{
		{30, 3},
		{90, 5},
		{161, 8},
		{300, 8},
	}
	for _, c := range cases {
		if got := AutoTau(c.median); got != c.want {
			t.Errorf("AutoTau(%d) = %d, want %d", c.median, got, c.want)
		}
	}
}
