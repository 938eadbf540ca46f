package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fieldedge/internal/domain"
	"fieldedge/internal/infra/tools"
)

func newToolsCmd(_ *cliOptions) *cobra.Command {
	var (
		format string
		group  string
	)
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Export the tool catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := tools.NewDefaultRegistry()
			if err != nil {
				return err
			}
			var defs []domain.ToolDefinition
			if group == "" {
				defs = registry.Definitions()
			} else {
				defs = registry.InGroup(group)
				if len(defs) == 0 {
					return fmt.Errorf("unknown group %q", group)
				}
			}
			return writeTools(cmd.OutOrStdout(), defs, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", formatJSON, "output format (json, yaml or toml)")
	cmd.Flags().StringVar(&group, "group", "", "only export one domain group")
	return cmd
}
