package cmd

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/coaltract/interval"
	"github.com/grailbio/coaltract/stats"
	"github.com/grailbio/coaltract/tracts"
	"v.io/x/lib/cmdline"
)

func newCmdSummary() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "summary",
		Short: "Summarize the introgressed tracts of a migration event",
		Long: `Reports the number and total length of the migration tracts matching the
filter, the fraction of the sequence they cover, and the number of sites inside
them.  With -tracts, the tracts are read from a BED file instead (overlapping
BED lines are merged on reading).` + tsArgHelp,
		ArgsName: "tsdir",
	}
	ts := addTSFlags(&cmd.Flags)
	mf := addMigrationFilterFlags(cmd)
	bedPath := cmd.Flags.String("tracts", "", "BED file of tracts to summarize instead of the migration records")
	chrom := cmd.Flags.String("chrom", "1", "Chromosome of the -tracts BED lines to use")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("summary takes one tsdir argument, but got %v", argv)
		}
		ctx := context.Background()
		seq, err := ts.load(ctx, argv[0])
		if err != nil {
			return err
		}
		var migs []interval.Tract
		if *bedPath != "" {
			bed, err := interval.NewBEDUnionFromPath(ctx, *bedPath, interval.BEDOpts{})
			if err != nil {
				return err
			}
			migs = []interval.Tract{}
			if u := bed.Get(*chrom); u != nil {
				migs = u.Tracts()
			}
		} else if migs, err = tracts.MigrationTracts(seq.Migrations(), seq.Populations(), mf.filter()); err != nil {
			return err
		}
		if len(migs) == 0 {
			log.Printf("no migrated tracts were found")
		}
		s := stats.Summarize(seq, migs)
		if err := stats.WriteSummary(env.Stdout, s); err != nil {
			return err
		}
		l := stats.TractLengths(migs)
		fmt.Fprintf(env.Stdout, "mean_tract_length\t%s\nmin_tract_length\t%s\nmax_tract_length\t%s\n",
			stats.FormatFloat(l.Mean), stats.FormatFloat(l.Min), stats.FormatFloat(l.Max))
		return nil
	})
	return cmd
}

// tsArg is a tmrca positional argument, "tsdir" or "tsdir=param".
type tsArg struct {
	dir   string
	param float64
}

func parseTSArg(arg string) (tsArg, error) {
	i := strings.LastIndexByte(arg, '=')
	if i < 0 {
		return tsArg{dir: arg}, nil
	}
	v, err := strconv.ParseFloat(arg[i+1:], 64)
	if err != nil {
		return tsArg{}, errors.E(errors.Invalid, fmt.Sprintf("%s: parameter value: %v", arg, err))
	}
	return tsArg{dir: arg[:i], param: v}, nil
}

func newCmdTMRCA() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "tmrca",
		Short: "Sample TMRCA ratios of a sample triple at random positions",
		Long: `For each tree sequence, draws -n uniform random positions and writes, per
position, X = TMRCA(a, b), XY = TMRCA(a, c), Y = XY - X, X/XY and Y/XY as CSV.
Ratios with a zero XY are written as NA.

Each argument is a tree sequence directory, optionally followed by
"=<value>", the model parameter it was simulated with (e.g. the migration
rate); the value fills the -param column.` + tsArgHelp,
		ArgsName: "tsdir[=value]...",
	}
	ts := addTSFlags(&cmd.Flags)
	pops := cmd.Flags.String("pops", "A,B,C", "Comma-separated populations of a, b and c; the first sample of each is used")
	nodesFlag := cmd.Flags.String("nodes", "", "Comma-separated node ids of a, b and c. Overrides -pops")
	n := cmd.Flags.Int("n", 100, "Number of random positions per tree sequence")
	seed := cmd.Flags.Int64("seed", 1, "Random seed")
	param := cmd.Flags.String("param", "mig_rate", "Name of the parameter column")
	out := cmd.Flags.String("out", "", "Output CSV path. By default, write to stdout")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) == 0 {
			return fmt.Errorf("tmrca takes at least one tsdir argument")
		}
		ctx := context.Background()
		rng := rand.New(rand.NewSource(*seed))
		var rows []stats.TMRCARow
		for _, arg := range argv {
			a, err := parseTSArg(arg)
			if err != nil {
				return err
			}
			seq, err := ts.load(ctx, a.dir)
			if err != nil {
				return err
			}
			var triple stats.Triple
			if *nodesFlag != "" {
				nodes, err := parseNodes(*nodesFlag, 3)
				if err != nil {
					return err
				}
				triple = stats.Triple{A: nodes[0], B: nodes[1], C: nodes[2]}
			} else {
				names := strings.Split(*pops, ",")
				if len(names) != 3 {
					return fmt.Errorf("-pops: expect three populations, but got %q", *pops)
				}
				if triple, err = stats.TripleOf(seq, names[0], names[1], names[2]); err != nil {
					return err
				}
			}
			r, err := stats.SampleTMRCA(seq, triple, *n, rng)
			if err != nil {
				return err
			}
			for i := range r {
				r[i].Param = a.param
			}
			rows = append(rows, r...)
		}
		return writeOutput(ctx, *out, env.Stdout, func(w io.Writer) error {
			return stats.WriteTMRCACSV(w, *param, rows)
		})
	})
	return cmd
}

// writeOutput calls fn with stdout if path is empty, else with the created
// file.
func writeOutput(ctx context.Context, path string, stdout io.Writer, fn func(io.Writer) error) error {
	if path == "" {
		return fn(stdout)
	}
	out, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	e := errors.Once{}
	e.Set(fn(out.Writer(ctx)))
	e.Set(out.Close(ctx))
	if err := e.Err(); err != nil {
		return errors.E(err, "write", path)
	}
	log.Printf("wrote %s", path)
	return nil
}
