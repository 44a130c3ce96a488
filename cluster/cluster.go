package cluster

import (
	"bufio"
	"context"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"

	"github.com/justlife/starcode/ioformat"
	"github.com/justlife/starcode/seq"
)

// ErrEmptyInput is returned by Run when the input stream yields no
// records at all, distinct from every other failure mode so callers can
// map it to its own exit code.
var ErrEmptyInput = errors.New("cluster: input contains no sequences")

// sortDepth picks the nuke-sort fork-join depth from the thread budget,
// following ParallelSort's recommendation of floor(log2(thrmax)).
func sortDepth(thrmax int) int {
	depth := 0
	for thrmax > 1 {
		thrmax >>= 1
		depth++
	}
	return depth
}

// openScanner picks the record scanner for one or two input paths,
// following starcode.c's read_rawseq/read_fasta/read_fastq/read_PE_fastq
// dispatch: two paths always means paired FASTQ, otherwise the format is
// sniffed from the first byte of the single stream.
func openScanner(ctx context.Context, input1, input2 string, maxTau int) (ioformat.Scanner, func(), error) {
	f1, err := file.Open(ctx, input1)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "cluster: opening %s", input1)
	}
	if input2 != "" {
		f2, err := file.Open(ctx, input2)
		if err != nil {
			f1.Close(ctx) // nolint:errcheck
			return nil, nil, errors.Wrapf(err, "cluster: opening %s", input2)
		}
		b1 := bufio.NewScanner(f1.Reader(ctx))
		b1.Buffer(make([]byte, 64*1024), 1<<20)
		b2 := bufio.NewScanner(f2.Reader(ctx))
		b2.Buffer(make([]byte, 64*1024), 1<<20)
		closer := func() {
			f1.Close(ctx) // nolint:errcheck
			f2.Close(ctx) // nolint:errcheck
		}
		return ioformat.NewPairedFastqScanner(b1, b2, maxTau), closer, nil
	}

	br1 := bufio.NewReader(f1.Reader(ctx))
	peek, err := br1.Peek(1)
	if err != nil {
		closer := func() { f1.Close(ctx) } // nolint:errcheck
		return nil, closer, ErrEmptyInput
	}
	format := ioformat.Detect(peek[0])

	b1 := bufio.NewScanner(br1)
	b1.Buffer(make([]byte, 64*1024), 1<<20)

	var sc ioformat.Scanner
	switch format {
	case ioformat.FASTA:
		sc = ioformat.NewFastaScanner(b1)
	case ioformat.FASTQ:
		sc = ioformat.NewFastqScanner(b1)
	default:
		sc = ioformat.NewRawScanner(b1)
	}
	closer := func() { f1.Close(ctx) } // nolint:errcheck
	return sc, closer, nil
}

// Run executes one clustering pass end to end: parse input1 (and input2,
// for paired-end mode) into records, sort and coalesce them, pad them to
// a common height, plan and schedule the all-pairs trie search, and emit
// every close pair to output. It mirrors starcode.c's main(): read, sort,
// pad, build tries, search, unpad implicitly via Label.
func Run(ctx context.Context, opts Opts, input1, input2, outputPath string) error {
	if opts.ThreadMax < 1 {
		opts.ThreadMax = 1
	}

	sc, closeInput, err := openScanner(ctx, input1, input2, seq.MaxTau)
	if err != nil {
		return err
	}
	defer closeInput()

	stack := seq.NewStack(1 << 16)
	for {
		rec, ok := sc.Scan()
		if !ok {
			break
		}
		stack.Push(rec)
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(err, "cluster: failed to parse input")
	}
	if stack.Len() == 0 {
		return ErrEmptyInput
	}

	sorted := seq.ParallelSort(stack, sortDepth(opts.ThreadMax))

	height, median := seq.Pad(sorted)

	tau := opts.Tau
	if tau < 0 {
		tau = seq.AutoTau(median)
	}

	if opts.Verbose {
		log.Printf("cluster: %d distinct records, height %d, median %d, tau %d", sorted.Len(), height, median, tau)
	}

	plan, err := BuildPlan(sorted.Items, height, median, tau, opts.KmerMax, opts.ThreadMax)
	if err != nil {
		return err
	}

	out, err := file.Create(ctx, outputPath)
	if err != nil {
		return errors.Wrapf(err, "cluster: creating %s", outputPath)
	}
	w := bufio.NewWriter(out.Writer(ctx))
	emit := NewEmitter(w)

	if err := RunSchedule(ctx, plan, opts, emit); err != nil {
		out.Close(ctx) // nolint:errcheck
		return err
	}

	if err := emit.Flush(); err != nil {
		out.Close(ctx) // nolint:errcheck
		return errors.Wrap(err, "cluster: failed to flush output")
	}
	if err := out.Close(ctx); err != nil {
		return errors.Wrap(err, "cluster: failed to close output")
	}

	if opts.Verbose {
		log.Printf("cluster: completed %d/%d jobs", plan.JobsDone, plan.TotalJobs())
	}
	return nil
}
