package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/file"
	"github.com/grailbio/coaltract/samples"
	"v.io/x/lib/cmdline"
)

func newCmdLabels() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "labels",
		Short: "List the sampled individuals and their population labels",
		Long: `Writes one line per sampled individual: its "<pop>_<k>" label, its population,
and its sample nodes.  With -haplotypes, writes one "<pop>_<k>_<h>" line per
sample node instead.` + tsArgHelp,
		ArgsName: "tsdir",
	}
	ts := addTSFlags(&cmd.Flags)
	haps := cmd.Flags.Bool("haplotypes", false, "List haplotypes instead of individuals")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("labels takes one tsdir argument, but got %v", argv)
		}
		seq, err := ts.load(context.Background(), argv[0])
		if err != nil {
			return err
		}
		labels := samples.Labels(seq)
		if !*haps {
			return samples.WriteLabels(env.Stdout, seq.Populations(), labels)
		}
		for _, h := range samples.Haplotypes(labels) {
			if _, err := fmt.Fprintf(env.Stdout, "%s\t%d\n", h.Name, h.Node); err != nil {
				return err
			}
		}
		return nil
	})
	return cmd
}

func newCmdHapmig() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "hapmig",
		Short: "Write an ARGweaver-D migration-event file",
		Long: `Writes one line per haplotype declaring that it may carry sequence migrated
from -source into -recipient at -time.  Haplotype names are read from the
NAMES line of the -smc file, or generated from the tree sequence's samples.` + tsArgHelp,
		ArgsName: "tsdir",
	}
	ts := addTSFlags(&cmd.Flags)
	event := cmd.Flags.String("event", "mig", "Event name prefix")
	recipient := cmd.Flags.String("recipient", "", "Recipient population name")
	source := cmd.Flags.String("source", "", "Source population name")
	time := cmd.Flags.Float64("time", 0, "Migration time in generations")
	smc := cmd.Flags.String("smc", "", "ARGweaver .smc file listing the haplotypes")
	out := cmd.Flags.String("out", "", "Output path. By default, write to stdout")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("hapmig takes one tsdir argument, but got %v", argv)
		}
		if *recipient == "" || *source == "" {
			return fmt.Errorf("-recipient and -source are required")
		}
		ctx := context.Background()
		seq, err := ts.load(ctx, argv[0])
		if err != nil {
			return err
		}
		h := samples.Hapmig{Event: *event, Recipient: *recipient, Source: *source, Time: *time}
		if *smc != "" {
			if h.Haplotypes, err = readSMCNames(ctx, *smc); err != nil {
				return err
			}
		} else {
			for _, hap := range samples.Haplotypes(samples.Labels(seq)) {
				h.Haplotypes = append(h.Haplotypes, hap.Name)
			}
		}
		return writeOutput(ctx, *out, env.Stdout, func(w io.Writer) error {
			return samples.WriteHapmig(w, seq.Populations(), h)
		})
	})
	return cmd
}

func readSMCNames(ctx context.Context, path string) (names []string, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return samples.ReadSMCNames(in.Reader(ctx))
}
