package cmd

import (
	"context"
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"v.io/x/lib/cmdline"
)

func newCmdChecksum() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "checksum",
		Short: "Print a fingerprint of each tree sequence",
		Long: `Prints one "checksum tsdir" line per argument, tab-separated.  Reruns of a
model with a fixed random_seed produce the same checksum.  With -expect-equal,
the command fails at the first checksum that differs from the first one.` + tsArgHelp,
		ArgsName: "tsdir...",
	}
	ts := addTSFlags(&cmd.Flags)
	same := cmd.Flags.Bool("expect-equal", false, "Fail unless all checksums are equal")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) == 0 {
			return fmt.Errorf("checksum takes at least one tsdir argument")
		}
		ctx := context.Background()
		var first uint64
		for i, dir := range argv {
			seq, err := ts.load(ctx, dir)
			if err != nil {
				return err
			}
			sum := seq.Checksum()
			fmt.Fprintf(env.Stdout, "%016x\t%s\n", sum, dir)
			if i == 0 {
				first = sum
			} else if *same && sum != first {
				return fmt.Errorf("%s: checksum %016x differs from %s: %016x", dir, sum, argv[0], first)
			}
		}
		return nil
	})
	return cmd
}
