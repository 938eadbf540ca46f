package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fieldedge/internal/app"
)

func newCallCmd(root *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <tool> [json-args|-]",
		Short: "Dispatch one tool call and print the result",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			arguments, err := readArguments(cmd.InOrStdin(), args[1:])
			if err != nil {
				return err
			}

			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()

			application, err := app.InitializeApplication(ctx, app.ServeConfig{ConfigPath: root.configPath}, app.LoggingConfig{Logger: root.logger})
			if err != nil {
				return err
			}
			result, err := application.Call(ctx, args[0], arguments)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), result)
			if result.IsError {
				return exitSilent(1)
			}
			return nil
		},
	}
	return cmd
}

// readArguments returns the JSON argument object from argv, or stdin when given "-".
func readArguments(stdin io.Reader, rest []string) (json.RawMessage, error) {
	if len(rest) == 0 {
		return json.RawMessage("{}"), nil
	}
	raw := []byte(rest[0])
	if rest[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read arguments: %w", err)
		}
		raw = data
	}
	if !json.Valid(raw) {
		return nil, errors.New("arguments must be valid JSON")
	}
	return json.RawMessage(raw), nil
}
