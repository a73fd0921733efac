// Command camfleet runs the camera fleet administration API.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "camfleet",
		Short:         "Video-surveillance fleet administration API",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newInvokeCommand(),
		newWorkerCommand(),
	)
	return root
}
