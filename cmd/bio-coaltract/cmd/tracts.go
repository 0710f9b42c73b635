package cmd

import (
	"context"
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/coaltract/tracts"
	"github.com/grailbio/coaltract/treeseq"
	"v.io/x/lib/cmdline"
)

const tsArgHelp = `
tsdir is a directory of tree sequence tables (nodes.tsv, edges.tsv,
populations.tsv, and optionally migrations.tsv, sites.tsv, mutations.tsv,
each possibly gzipped), as written by "bio-coaltract simulate".`

// migrationFilterFlags registers -source, -dest and -time.
type migrationFilterFlags struct {
	source, dest *string
	time         *float64
}

func addMigrationFilterFlags(cmd *cmdline.Command) migrationFilterFlags {
	return migrationFilterFlags{
		source: cmd.Flags.String("source", "", "Source population name of the migration records. Empty matches any"),
		dest:   cmd.Flags.String("dest", "", "Destination population name of the migration records. Empty matches any"),
		time:   cmd.Flags.Float64("time", -1, "Time of the migration records, e.g. of a pulse. Negative matches any"),
	}
}

func (f migrationFilterFlags) filter() tracts.MigrationFilter {
	return tracts.MigrationFilter{
		Source:  *f.source,
		Dest:    *f.dest,
		Time:    *f.time,
		HasTime: *f.time >= 0,
	}
}

func newCmdMigrating() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "migrating",
		Short:    "Write the tracts of the migration records matching a filter",
		Long:     "Writes one BED line per matching migration record, in record order." + tsArgHelp,
		ArgsName: "tsdir",
	}
	ts := addTSFlags(&cmd.Flags)
	bed := addBEDFlags(&cmd.Flags, true)
	mf := addMigrationFilterFlags(cmd)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("migrating takes one tsdir argument, but got %v", argv)
		}
		ctx := context.Background()
		seq, err := ts.load(ctx, argv[0])
		if err != nil {
			return err
		}
		out, err := tracts.MigrationTracts(seq.Migrations(), seq.Populations(), mf.filter())
		if err != nil {
			return err
		}
		return bed.write(ctx, env.Stdout, out)
	})
	return cmd
}

func newCmdCoalescing() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "coalescing",
		Short:    "Write the tracts where two samples coalesce in a population",
		Long:     "Writes the maximal tracts over which the MRCA of the two nodes lies in the population." + tsArgHelp,
		ArgsName: "tsdir",
	}
	ts := addTSFlags(&cmd.Flags)
	bed := addBEDFlags(&cmd.Flags, false)
	pop := cmd.Flags.String("pop", "", "Population name the MRCA must belong to")
	nodesFlag := cmd.Flags.String("nodes", "0,1", "Comma-separated pair of sample node ids")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("coalescing takes one tsdir argument, but got %v", argv)
		}
		if *pop == "" {
			return fmt.Errorf("-pop is required")
		}
		nodes, err := parseNodes(*nodesFlag, 2)
		if err != nil {
			return fmt.Errorf("-nodes: %v", err)
		}
		ctx := context.Background()
		seq, err := ts.load(ctx, argv[0])
		if err != nil {
			return err
		}
		pred, err := tracts.CoalescesIn(seq, seq.Populations(), *pop, nodes[0], nodes[1])
		if err != nil {
			return err
		}
		return scanAndWrite(ctx, env, bed, seq, pred)
	})
	return cmd
}

func newCmdPairwise() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "pairwise",
		Short:    "Write the tracts where two samples coalesce below the root",
		Long:     "Writes the maximal tracts over which the two nodes share an ancestor more recent than the root of the local tree." + tsArgHelp,
		ArgsName: "tsdir",
	}
	ts := addTSFlags(&cmd.Flags)
	bed := addBEDFlags(&cmd.Flags, false)
	nodesFlag := cmd.Flags.String("nodes", "0,1", "Comma-separated pair of sample node ids")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("pairwise takes one tsdir argument, but got %v", argv)
		}
		nodes, err := parseNodes(*nodesFlag, 2)
		if err != nil {
			return fmt.Errorf("-nodes: %v", err)
		}
		ctx := context.Background()
		seq, err := ts.load(ctx, argv[0])
		if err != nil {
			return err
		}
		pred, err := tracts.BelowRoot(seq, nodes[0], nodes[1])
		if err != nil {
			return err
		}
		return scanAndWrite(ctx, env, bed, seq, pred)
	})
	return cmd
}

func scanAndWrite(ctx context.Context, env *cmdline.Env, bed bedFlags, seq *treeseq.TreeSequence, pred tracts.TreePredicate) error {
	out, err := tracts.ScanTrees(seq, pred)
	if err != nil {
		return err
	}
	return bed.write(ctx, env.Stdout, out)
}
