// Command starcode clusters a set of short DNA-like sequences by mutual
// Levenshtein distance, following spec.md's re-architecture of the
// original starcode tool.
package main

import (
	"flag"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/justlife/starcode/cluster"
)

func main() {
	opts := cluster.DefaultOpts
	var input1, input2, output string

	flag.StringVar(&input1, "input1", "", "Path to the input file (or first-mate FASTQ in paired-end mode). Required.")
	flag.StringVar(&input2, "input2", "", "Path to the second-mate FASTQ file, for paired-end input.")
	flag.StringVar(&output, "output", "", "Path to the output file. Defaults to <input1>.starcode.")
	flag.IntVar(&opts.Tau, "dist", cluster.DefaultOpts.Tau, "Maximum Levenshtein distance to report. Negative means auto-compute from median sequence length.")
	flag.IntVar(&opts.ThreadMax, "threads", cluster.DefaultOpts.ThreadMax, "Number of concurrent worker goroutines.")
	flag.IntVar(&opts.KmerMax, "kmer-max", cluster.DefaultOpts.KmerMax, "Maximum k-mer length used by the lookup pre-filter.")
	flag.BoolVar(&opts.Verbose, "verbose", cluster.DefaultOpts.Verbose, "Report progress to stderr.")
	flag.Parse()

	cleanup := grail.Init()
	defer cleanup()

	if input1 == "" {
		log.Fatal("starcode: -input1 is required")
	}
	if output == "" {
		output = input1 + ".starcode"
	}

	ctx := vcontext.Background()
	if err := cluster.Run(ctx, opts, input1, input2, output); err != nil {
		if err == cluster.ErrEmptyInput {
			log.Fatalf("starcode: %v", err)
		}
		log.Fatalf("starcode: run failed: %v", err)
	}
	if opts.Verbose {
		log.Printf("starcode: wrote results to %s", output)
	}
}
