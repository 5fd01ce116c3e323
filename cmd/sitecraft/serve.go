package main

import (
	"github.com/spf13/cobra"

	"github.com/AtRiskMedia/sitecraft-go/internal/application/startup"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return startup.Initialize()
		},
	}
}
