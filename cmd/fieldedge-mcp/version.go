package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fieldedge/internal/app"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fieldedge-mcp %s (%s)\n", app.Version, app.Build)
		},
	}
}
