package cli

import (
	"github.com/spf13/cobra"
)

func newPlanCommand(opts *options, deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show which queries a sync would push",
		Long: `Loads the manifest, selects targets and matches files exactly like sync,
but makes no calls to Dune. DUNE_API_KEY is not required.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.dryRun = true
			return runSync(cmd.Context(), cmd, opts, deps)
		},
	}
	addSelectionFlags(cmd, opts)
	return cmd
}
