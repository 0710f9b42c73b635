package cmd

import (
	"v.io/x/lib/cmdline"
)

func newCmdRoot() *cmdline.Command {
	return &cmdline.Command{
		Name:     "bio-coaltract",
		Short:    "Tools for extracting coalescent tracts from simulated tree sequences",
		LookPath: false,
		Children: []*cmdline.Command{
			newCmdSimulate(),
			newCmdModel(),
			newCmdMigrating(),
			newCmdCoalescing(),
			newCmdPairwise(),
			newCmdSummary(),
			newCmdTMRCA(),
			newCmdLabels(),
			newCmdHapmig(),
			newCmdChecksum(),
		},
	}
}

// Run parses the command line and runs the selected subcommand.
func Run() {
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(newCmdRoot())
}
