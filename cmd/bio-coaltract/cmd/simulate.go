package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/grailbio/coaltract/demography"
	"github.com/grailbio/coaltract/simulate"
	"v.io/x/lib/cmdline"
)

const modelArgHelp = `
model is the path of a TOML model file, or "preset:<name>" for a built-in
model (see "bio-coaltract model -list").`

func newCmdSimulate() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "simulate",
		Short: "Simulate a tree sequence with msprime",
		Long: `Renders a Python driver for the model and runs it.  The driver writes
<prefix>.trees, <prefix>.vcf and the table directory <prefix>.tables, where
<prefix> encodes the run id and the model parameters.

With -rates, the continuous migration between the -rate-pair populations is
swept over the listed rates, one run per rate, with ids <id>_<k>.` + modelArgHelp,
		ArgsName: "model",
	}
	var opts simulate.Opts
	cmd.Flags.StringVar(&opts.Python, "python", simulate.DefaultPython, "Python interpreter with msprime installed")
	cmd.Flags.StringVar(&opts.OutDir, "out", ".", "Output directory")
	cmd.Flags.StringVar(&opts.ID, "id", "1", "Run identifier")
	cmd.Flags.BoolVar(&opts.DryRun, "dry-run", false, "Write the driver script without running it")
	rates := cmd.Flags.String("rates", "", "Comma-separated migration rates to sweep")
	pair := cmd.Flags.String("rate-pair", "B:A", "source:dest populations of the swept migration")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("simulate takes one model argument, but got %v", argv)
		}
		ctx := context.Background()
		m, err := demography.Load(ctx, argv[0])
		if err != nil {
			return err
		}
		if *rates == "" {
			res, err := simulate.Run(ctx, m, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(env.Stdout, res.TablesDir)
			return nil
		}
		pops := strings.Split(*pair, ":")
		if len(pops) != 2 {
			return fmt.Errorf("-rate-pair: expect source:dest, but got %q", *pair)
		}
		for k, s := range strings.Split(*rates, ",") {
			rate, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return fmt.Errorf("-rates: %v", err)
			}
			o := opts
			o.ID = fmt.Sprintf("%s_%d", opts.ID, k)
			log.Printf("simulate: run %s, %s->%s rate %v", o.ID, pops[0], pops[1], rate)
			res, err := simulate.Run(ctx, m.WithMigrationRate(pops[0], pops[1], rate), o)
			if err != nil {
				return err
			}
			// Feeds "bio-coaltract tmrca".
			fmt.Fprintf(env.Stdout, "%s=%v\n", res.TablesDir, rate)
		}
		return nil
	})
	return cmd
}

func newCmdModel() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "model",
		Short: "Validate and print a demographic model",
		Long: `Validates the model and prints it as TOML, followed by its demographic
events in time order and the output file prefix of run 1.` + modelArgHelp,
		ArgsName: "model",
	}
	list := cmd.Flags.Bool("list", false, "List the built-in models")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if *list {
			for _, name := range demography.PresetNames() {
				fmt.Fprintln(env.Stdout, "preset:"+name)
			}
			return nil
		}
		if len(argv) != 1 {
			return fmt.Errorf("model takes one model argument, but got %v", argv)
		}
		m, err := demography.Load(context.Background(), argv[0])
		if err != nil {
			return err
		}
		if err := m.Write(env.Stdout); err != nil {
			return err
		}
		fmt.Fprintln(env.Stdout)
		for _, e := range m.Events() {
			fmt.Fprintln(env.Stdout, "# event", e)
		}
		fmt.Fprintln(env.Stdout, "# prefix", m.FilePrefix("1"))
		return nil
	})
	return cmd
}
