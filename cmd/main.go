package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

const appName = "commandapi"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

// newRootCommand serves the API when no subcommand is given
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Command line cheat sheet API",
		Long:          "A JSON API storing how-to entries for command line invocations per platform.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newMigrateCommand())

	return cmd
}
