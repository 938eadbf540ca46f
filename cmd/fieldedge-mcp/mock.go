package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"fieldedge/internal/domain"
	"fieldedge/internal/infra/mockapi"
)

func newMockUpstreamCmd(root *cliOptions) *cobra.Command {
	var (
		addr   string
		token  string
		prefix string
	)
	cmd := &cobra.Command{
		Use:   "mock-upstream",
		Short: "Serve an in-memory stand-in for the FieldEdge REST API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()

			server := mockapi.NewServer(mockapi.Options{
				Token:  token,
				Prefix: prefix,
				Logger: root.logger,
			})
			if err := server.ListenAndServe(ctx, addr); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", domain.DefaultMockListenAddress, "listen address")
	cmd.Flags().StringVar(&token, "token", "", "required bearer token (any token is accepted when empty)")
	cmd.Flags().StringVar(&prefix, "prefix", "/v1", "path prefix to strip, matching the API base URL")
	return cmd
}
