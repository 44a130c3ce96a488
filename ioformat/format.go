// Package ioformat auto-detects and parses the input formats this engine
// accepts (raw, FASTA, FASTQ, paired FASTQ), handing back seq.Seq records.
// Its scanners follow the same bufio.Scanner-wrapping, one-record-at-a-time
// shape as encoding/fastq's Scanner/PairScanner.
package ioformat

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/justlife/starcode/seq"
)

// Format identifies which scanner a given input requires.
type Format int

const (
	// Raw is one sequence per line, optionally followed by a tab and an
	// integer count.
	Raw Format = iota
	// FASTA is alternating header/sequence lines, '>' led.
	FASTA
	// FASTQ is 4-line records, '@' led.
	FASTQ
	// PairedFASTQ is two FASTQ streams read in lockstep.
	PairedFASTQ
)

// Detect inspects the first byte of a single input stream and returns the
// format it implies. Presence of a second input file overrides this and
// forces PairedFASTQ; callers check that before calling Detect.
func Detect(firstByte byte) Format {
	switch firstByte {
	case '>':
		return FASTA
	case '@':
		return FASTQ
	default:
		return Raw
	}
}

// Scanner reads one seq.Seq record at a time, mirroring fastq.Scanner's
// Scan/Err split.
type Scanner interface {
	Scan() (*seq.Seq, bool)
	Err() error
}

// rawScanner reads "SEQ" or "SEQ\tCOUNT" lines.
type rawScanner struct {
	b   *bufio.Scanner
	err error
}

// NewRawScanner returns a Scanner over raw-format lines.
func NewRawScanner(b *bufio.Scanner) Scanner {
	return &rawScanner{b: b}
}

func (s *rawScanner) Scan() (*seq.Seq, bool) {
	if s.err != nil {
		return nil, false
	}
	if !s.b.Scan() {
		s.err = s.b.Err()
		return nil, false
	}
	line := s.b.Text()
	count := 1
	raw := line
	if tab := strings.IndexByte(line, '\t'); tab >= 0 {
		if n, err := strconv.Atoi(line[tab+1:]); err == nil {
			raw = line[:tab]
			count = n
		}
	}
	rec, err := seq.New(count, []byte(raw), "")
	if err != nil {
		s.err = err
		return nil, false
	}
	return rec, true
}

func (s *rawScanner) Err() error { return s.err }

// fastaScanner reads alternating header/sequence line pairs, discarding
// the header.
type fastaScanner struct {
	b   *bufio.Scanner
	err error
}

// NewFastaScanner returns a Scanner over FASTA-format records.
func NewFastaScanner(b *bufio.Scanner) Scanner {
	return &fastaScanner{b: b}
}

func (s *fastaScanner) Scan() (*seq.Seq, bool) {
	if s.err != nil {
		return nil, false
	}
	if !s.b.Scan() { // header
		s.err = s.b.Err()
		return nil, false
	}
	if !s.b.Scan() { // sequence
		if s.err = s.b.Err(); s.err == nil {
			s.err = errors.New("ioformat: truncated FASTA record")
		}
		return nil, false
	}
	rec, err := seq.New(1, s.b.Bytes(), "")
	if err != nil {
		s.err = err
		return nil, false
	}
	return rec, true
}

func (s *fastaScanner) Err() error { return s.err }

// fastqScanner reads 4-line FASTQ records and keeps only the sequence
// line.
type fastqScanner struct {
	b   *bufio.Scanner
	err error
}

// NewFastqScanner returns a Scanner over single-end FASTQ records.
func NewFastqScanner(b *bufio.Scanner) Scanner {
	return &fastqScanner{b: b}
}

func (s *fastqScanner) rawSeqLine() ([]byte, bool) {
	if !s.b.Scan() { // @id
		s.err = s.b.Err()
		return nil, false
	}
	if !s.b.Scan() { // sequence
		if s.err = s.b.Err(); s.err == nil {
			s.err = errors.New("ioformat: truncated FASTQ record")
		}
		return nil, false
	}
	line := append([]byte(nil), s.b.Bytes()...)
	if !s.b.Scan() { // +
		if s.err = s.b.Err(); s.err == nil {
			s.err = errors.New("ioformat: truncated FASTQ record")
		}
		return nil, false
	}
	if !s.b.Scan() { // quality
		if s.err = s.b.Err(); s.err == nil {
			s.err = errors.New("ioformat: truncated FASTQ record")
		}
		return nil, false
	}
	return line, true
}

func (s *fastqScanner) Scan() (*seq.Seq, bool) {
	if s.err != nil {
		return nil, false
	}
	line, ok := s.rawSeqLine()
	if !ok {
		return nil, false
	}
	rec, err := seq.New(1, line, "")
	if err != nil {
		s.err = err
		return nil, false
	}
	return rec, true
}

func (s *fastqScanner) Err() error { return s.err }

// pairedFastqScanner reads two FASTQ streams in lockstep, validating each
// mate independently and joining them with a run of dashes sized to
// tolerate the configured maximum tau, following read_PE_fastq.
type pairedFastqScanner struct {
	r1, r2 *fastqScanner
	sep    []byte
	err    error
}

// NewPairedFastqScanner returns a Scanner that reads matched FASTQ records
// from b1 and b2, joining each pair with a separator of maxTau+1 dashes.
func NewPairedFastqScanner(b1, b2 *bufio.Scanner, maxTau int) Scanner {
	return &pairedFastqScanner{
		r1:  &fastqScanner{b: b1},
		r2:  &fastqScanner{b: b2},
		sep: []byte(strings.Repeat("-", maxTau+1)),
	}
}

func (s *pairedFastqScanner) Scan() (*seq.Seq, bool) {
	if s.err != nil {
		return nil, false
	}
	line1, ok1 := s.r1.rawSeqLine()
	line2, ok2 := s.r2.rawSeqLine()
	if !ok1 || !ok2 {
		if ok1 != ok2 {
			s.err = errors.New("ioformat: non-conformable paired-end fastq files")
			return nil, false
		}
		if s.err = s.r1.err; s.err == nil {
			s.err = s.r2.err
		}
		return nil, false
	}
	for _, b := range line1 {
		if !seq.IsValidBase(b) {
			s.err = errors.Errorf("ioformat: invalid base %q in sequence %q", b, line1)
			return nil, false
		}
	}
	for _, b := range line2 {
		if !seq.IsValidBase(b) {
			s.err = errors.Errorf("ioformat: invalid base %q in sequence %q", b, line2)
			return nil, false
		}
	}

	combined := make([]byte, 0, len(line1)+len(s.sep)+len(line2))
	combined = append(combined, line1...)
	combined = append(combined, s.sep...)
	combined = append(combined, line2...)
	info := string(line1) + "/" + string(line2)

	rec, err := seq.NewCombined(1, combined, info)
	if err != nil {
		s.err = err
		return nil, false
	}
	return rec, true
}

func (s *pairedFastqScanner) Err() error { return s.err }
