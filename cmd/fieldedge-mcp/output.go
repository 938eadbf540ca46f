package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"fieldedge/internal/domain"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatTOML = "toml"
)

func writeJSON(w io.Writer, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// genericTools re-decodes definitions into plain maps so every encoder sees the MCP field names.
func genericTools(defs []domain.ToolDefinition) ([]any, error) {
	raw, err := json.Marshal(defs)
	if err != nil {
		return nil, err
	}
	var out []any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []any{}
	}
	return out, nil
}

func writeTools(w io.Writer, defs []domain.ToolDefinition, format string) error {
	switch strings.ToLower(format) {
	case formatJSON:
		return writeJSON(w, defs)
	case formatYAML:
		generic, err := genericTools(defs)
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(map[string]any{"tools": generic})
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case formatTOML:
		generic, err := genericTools(defs)
		if err != nil {
			return err
		}
		data, err := toml.Marshal(map[string]any{"tools": generic})
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported format %q (json, yaml or toml)", format)
	}
}

type groupCount struct {
	Name  string `json:"name"`
	Tools int    `json:"tools"`
}

type validationSummary struct {
	Environment   string       `json:"environment"`
	BaseURL       string       `json:"baseUrl"`
	Tools         int          `json:"tools"`
	ServedTools   int          `json:"servedTools"`
	Groups        []groupCount `json:"groups"`
	Resources     int          `json:"resources"`
	ToolsHash     string       `json:"toolsHash"`
	ResourcesHash string       `json:"resourcesHash"`
}

func printValidationSummary(w io.Writer, summary validationSummary) {
	ok := color.New(color.FgGreen, color.Bold)
	label := color.New(color.FgCyan)

	ok.Fprintln(w, "✓ configuration valid")
	label.Fprint(w, "environment  ")
	fmt.Fprintln(w, summary.Environment)
	label.Fprint(w, "base url     ")
	fmt.Fprintln(w, summary.BaseURL)
	label.Fprint(w, "tools        ")
	fmt.Fprintf(w, "%d in %d groups, %d served\n", summary.Tools, len(summary.Groups), summary.ServedTools)
	for _, group := range summary.Groups {
		fmt.Fprintf(w, "  %-20s %d\n", group.Name, group.Tools)
	}
	label.Fprint(w, "resources    ")
	fmt.Fprintln(w, summary.Resources)
	label.Fprint(w, "tools hash   ")
	fmt.Fprintln(w, summary.ToolsHash)
	label.Fprint(w, "res hash     ")
	fmt.Fprintln(w, summary.ResourcesHash)
}

func printResult(w, errW io.Writer, result domain.ToolResult) {
	if result.IsError {
		color.New(color.FgRed).Fprintln(errW, "tool call failed")
	}
	fmt.Fprintln(w, result.Text())
}
