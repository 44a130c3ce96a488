// Package seq implements the sequence store: the owned, padded record type
// that flows from input parsing through sorting, padding and clustering.
package seq

import (
	"bytes"

	"github.com/pkg/errors"
)

// alphabet is the set of bytes a raw (unpadded) sequence read from input
// may contain: ACGTN case-insensitively, plus space for padding.
var alphabet = [256]bool{
	'A': true, 'a': true,
	'C': true, 'c': true,
	'G': true, 'g': true,
	'T': true, 't': true,
	'N': true, 'n': true,
	' ': true,
}

// IsValidBase reports whether b is a valid raw DNA-alphabet byte. Input
// parsers call this on each mate of a read before joining mates into a
// combined paired-end record (see ioformat), since the join separator
// itself is not a valid base.
func IsValidBase(b byte) bool {
	return alphabet[b]
}

// MaxLen is the largest sequence this package will accept, matching
// MAXBRCDLEN in the original implementation.
const MaxLen = 1 << 16

// Seq is a single, owned sequence record: the Go analogue of starcode's
// useq_t. Count starts at 1 and accumulates as equal sequences are coalesced
// by ParallelSort. Info, when non-empty, is used in place of Seq for output
// (paired-end mode).
type Seq struct {
	Seq   []byte
	Count int
	Info  string
}

// New validates s and returns a new owned Seq with the given count and
// optional info string. The caller's s and info are copied.
func New(count int, s []byte, info string) (*Seq, error) {
	if len(s) == 0 {
		return nil, errors.New("seq: empty sequence")
	}
	if len(s) > MaxLen {
		return nil, errors.Errorf("seq: max sequence length exceeded (%d): %q", MaxLen, s)
	}
	for _, b := range s {
		if !alphabet[b] {
			return nil, errors.Errorf("seq: invalid base %q in sequence %q", b, s)
		}
	}
	cp := make([]byte, len(s))
	copy(cp, s)
	return &Seq{Seq: cp, Count: count, Info: info}, nil
}

// NewCombined builds an owned record from a sequence that already mixes
// validated mates with a join separator (see ioformat's paired-FASTQ
// scanner), skipping the per-byte alphabet scan New performs. Length is
// still capped at MaxLen.
func NewCombined(count int, s []byte, info string) (*Seq, error) {
	if len(s) == 0 {
		return nil, errors.New("seq: empty sequence")
	}
	if len(s) > MaxLen {
		return nil, errors.Errorf("seq: max sequence length exceeded (%d)", MaxLen)
	}
	cp := make([]byte, len(s))
	copy(cp, s)
	return &Seq{Seq: cp, Count: count, Info: info}, nil
}

// Unpadded returns the sequence with its leading space padding stripped.
func (s *Seq) Unpadded() []byte {
	i := 0
	for i < len(s.Seq) && s.Seq[i] == ' ' {
		i++
	}
	return s.Seq[i:]
}

// Label returns the string an emitted pair should print for this record:
// Info if paired-end mode populated it, otherwise the unpadded sequence.
func (s *Seq) Label() string {
	if s.Info != "" {
		return s.Info
	}
	return string(s.Unpadded())
}

// Equal reports whether two records carry byte-identical padded sequences,
// the equality nukesort coalesces on.
func (s *Seq) Equal(other *Seq) bool {
	return bytes.Equal(s.Seq, other.Seq)
}

// Less orders two records (length, then lexicographic), the order nukesort
// sorts by. It must be applied to the *unpadded* length exactly as the
// records were read, per spec.md's note that this is "the per-record
// length, not the padded length" (callers invoke this before Pad).
func Less(a, b *Seq) bool {
	if len(a.Seq) != len(b.Seq) {
		return len(a.Seq) < len(b.Seq)
	}
	return bytes.Compare(a.Seq, b.Seq) < 0
}

// Stack is an ordered collection of records, the Go analogue of gstack_t.
type Stack struct {
	Items []*Seq
}

// NewStack returns an empty stack with the given initial capacity hint.
func NewStack(capHint int) *Stack {
	return &Stack{Items: make([]*Seq, 0, capHint)}
}

// Push appends a record.
func (s *Stack) Push(rec *Seq) {
	s.Items = append(s.Items, rec)
}

// Len returns the number of records currently in the stack.
func (s *Stack) Len() int {
	return len(s.Items)
}

// TotalCount sums the Count field of every record in the stack; used by
// tests to assert nukesort preserves the grand total.
func (s *Stack) TotalCount() int {
	total := 0
	for _, r := range s.Items {
		total += r.Count
	}
	return total
}
