package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"cxxbind/internal/emit"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest <file.manifest>",
	Short: "Print a binding manifest written by generate",
	Args:  cobra.ExactArgs(1),
	RunE:  runManifest,
}

func init() {
	manifestCmd.Flags().String("format", "yaml", "output format (yaml|json|table)")
}

// manifestView is the printable form of a manifest.
type manifestView struct {
	Module  string      `json:"module" yaml:"module"`
	Globals string      `json:"globals,omitempty" yaml:"globals,omitempty"`
	Entries []entryView `json:"entries" yaml:"entries"`
}

type entryView struct {
	Kind       string   `json:"kind" yaml:"kind"`
	Owner      string   `json:"owner,omitempty" yaml:"owner,omitempty"`
	Name       string   `json:"name" yaml:"name"`
	HostName   string   `json:"host_name" yaml:"host_name"`
	Native     string   `json:"native,omitempty" yaml:"native,omitempty"`
	Converters []string `json:"converters,omitempty" yaml:"converters,omitempty,flow"`
}

func viewOf(m *emit.Manifest) manifestView {
	v := manifestView{Module: m.Module, Globals: m.Globals, Entries: make([]entryView, 0, len(m.Entries))}
	for _, e := range m.Entries {
		v.Entries = append(v.Entries, entryView(e))
	}
	return v
}

func runManifest(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	m, err := emit.ReadManifest(args[0])
	if err != nil {
		return err
	}
	return renderManifest(cmd.OutOrStdout(), viewOf(m), format)
}

func renderManifest(out io.Writer, v manifestView, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "table":
		fmt.Fprintf(out, "module %s\n", v.Module)
		for _, e := range v.Entries {
			name := e.Name
			if e.Owner != "" {
				name = e.Owner + "." + e.Name
			}
			fmt.Fprintf(out, "  %-10s %-32s %s\n", e.Kind, name, e.HostName)
		}
		return nil
	}
	return fmt.Errorf("unsupported format %q (must be yaml, json or table)", format)
}
