package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fieldedge/internal/app"
	"fieldedge/internal/infra/fieldedge"
	"fieldedge/internal/infra/gateway"
	"fieldedge/internal/infra/mcpcodec"
)

func newValidateCmd(root *cliOptions) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load configuration and check the tool catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := app.InitializeApplication(cmd.Context(), app.ServeConfig{ConfigPath: root.configPath}, app.LoggingConfig{Logger: root.logger})
			if err != nil {
				return err
			}
			summary, err := summarize(cmd.Context(), application)
			if err != nil {
				return err
			}
			root.logger.Info("configuration validated",
				zap.String("config", root.configPath),
				zap.Int("tools", summary.Tools),
			)
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), summary)
			}
			printValidationSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output JSON")
	return cmd
}

func summarize(ctx context.Context, application *app.Application) (validationSummary, error) {
	registry := application.Tools()
	cfg := application.Config()

	served, err := application.ServedTools(ctx)
	if err != nil {
		return validationSummary{}, fmt.Errorf("list served tools: %w", err)
	}
	if len(served) != registry.Len() {
		return validationSummary{}, fmt.Errorf("server advertises %d of %d tools", len(served), registry.Len())
	}

	toolsHash, err := mcpcodec.HashToolDefinitions(registry.Definitions())
	if err != nil {
		return validationSummary{}, err
	}
	resources := gateway.DashboardResources()
	resourcesHash, err := mcpcodec.HashResourceDefinitions(resources)
	if err != nil {
		return validationSummary{}, err
	}

	groups := make([]groupCount, 0, len(registry.Groups()))
	for _, name := range registry.Groups() {
		groups = append(groups, groupCount{Name: name, Tools: len(registry.InGroup(name))})
	}
	return validationSummary{
		Environment:   cfg.Client.Environment,
		BaseURL:       fieldedge.ResolveBaseURL(cfg.Client),
		Tools:         registry.Len(),
		ServedTools:   len(served),
		Groups:        groups,
		Resources:     len(resources),
		ToolsHash:     toolsHash,
		ResourcesHash: resourcesHash,
	}, nil
}
