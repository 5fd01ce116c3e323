package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "sitecraft",
		Short:        "Multi-tenant marketing site builder",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCommand(), newSeedCommand(), newRenderCommand())
	return root
}
