package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "arcade",
		Short:         "Community engagement service for the game showcase",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return LoadSettings()
		},
		RunE: runServe,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP and gRPC servers with scheduled maintenance",
			RunE:  runServe,
		},
		newBackfillCommand(),
		newRepairCommand(),
	)
	return root
}
