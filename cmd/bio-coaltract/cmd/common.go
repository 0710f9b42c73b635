package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/log"
	"github.com/grailbio/coaltract/interval"
	"github.com/grailbio/coaltract/treeseq"
)

// tsFlags are the flags shared by commands that read a tree sequence.
type tsFlags struct {
	seqLen *float64
}

func addTSFlags(fs *flag.FlagSet) tsFlags {
	return tsFlags{
		seqLen: fs.Float64("seqlen", 0, "Sequence length. By default, the largest edge right end"),
	}
}

func (f tsFlags) load(ctx context.Context, dir string) (*treeseq.TreeSequence, error) {
	ts, err := treeseq.Load(ctx, dir, treeseq.LoadOpts{SequenceLength: *f.seqLen})
	if err != nil {
		return nil, err
	}
	log.Printf("%s: %d populations, %d samples, length %v", dir, ts.Populations().Len(), len(ts.Samples()), ts.SequenceLength())
	return ts, nil
}

// bedFlags are the flags of commands that write tracts as BED.
type bedFlags struct {
	out   *string
	chrom *string
	merge *bool
}

func addBEDFlags(fs *flag.FlagSet, merge bool) bedFlags {
	f := bedFlags{
		out:   fs.String("out", "", "Output BED path; .gz suffix compresses. By default, write to stdout"),
		chrom: fs.String("chrom", "1", "Chromosome name of the BED lines"),
	}
	if merge {
		f.merge = fs.Bool("merge", false, "Merge overlapping and adjacent tracts before writing")
	} else {
		f.merge = new(bool)
	}
	return f
}

func (f bedFlags) write(ctx context.Context, stdout io.Writer, tracts []interval.Tract) error {
	if *f.merge {
		tracts = interval.NewUnion(tracts).Tracts()
	}
	log.Printf("%d tracts, total length %v", len(tracts), interval.FormatPos(interval.TotalLen(tracts)))
	if *f.out == "" {
		return interval.WriteBED(stdout, *f.chrom, tracts)
	}
	return interval.WriteBEDToPath(ctx, *f.out, *f.chrom, tracts)
}

// parseNodes parses a comma-separated list of n node ids.
func parseNodes(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expect %d comma-separated node ids, but got %q", n, s)
	}
	nodes := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("node id %q: %v", p, err)
		}
		nodes[i] = v
	}
	return nodes, nil
}
