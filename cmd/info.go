package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kilnbuild/kiln/pkg/manifest"
)

var infoFormat string

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the current project's configuration",
		Long: `Print the project configuration from the Kilnfile, including the
defaults kiln fills in for keys the manifest omits.`,
		Args: cobra.NoArgs,
		RunE: runInfo,
	}

	cmd.Flags().StringVar(&infoFormat, "format", "text", "Output format: text, json, or yaml")

	return cmd
}

// projectView is the machine-readable shape of a project configuration.
type projectView struct {
	Name        string   `json:"name" yaml:"name"`
	Version     string   `json:"version" yaml:"version"`
	Compiler    string   `json:"cc" yaml:"cc"`
	Flags       []string `json:"flags" yaml:"flags"`
	Standard    string   `json:"std" yaml:"std"`
	Type        string   `json:"type" yaml:"type"`
	Artifact    string   `json:"artifact" yaml:"artifact"`
	BuildScript string   `json:"buildscript,omitempty" yaml:"buildscript,omitempty"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	dir, err := projectDir()
	if err != nil {
		return err
	}

	p, err := manifest.Load(filepath.Join(dir, manifest.Filename))
	if err != nil {
		return err
	}

	out, err := renderProject(p, infoFormat)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func renderProject(p manifest.Project, format string) (string, error) {
	switch format {
	case "text":
		return p.String(), nil

	case "json":
		data, err := json.MarshalIndent(viewOf(p), "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil

	case "yaml":
		data, err := yaml.Marshal(viewOf(p))
		if err != nil {
			return "", fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	}

	return "", fmt.Errorf("unknown format `%s` (formats: text, json, yaml)", format)
}

func viewOf(p manifest.Project) projectView {
	return projectView{
		Name:        p.Name,
		Version:     p.Version,
		Compiler:    p.Compiler,
		Flags:       p.Flags,
		Standard:    p.Standard.String(),
		Type:        typeToken(p.Type),
		Artifact:    p.Artifact(),
		BuildScript: timingToken(p.Hook),
	}
}

// typeToken maps a project type back to its manifest spelling.
func typeToken(t manifest.ProjectType) string {
	switch t {
	case manifest.Shared:
		return "shared"
	case manifest.Static:
		return "static"
	}
	return "binary"
}

// timingToken maps a build script timing back to its manifest spelling.
// Projects without a build script yield the empty string.
func timingToken(t manifest.Timing) string {
	switch t {
	case manifest.Before:
		return "before"
	case manifest.Repeat:
		return "repeat"
	case manifest.After:
		return "after"
	}
	return ""
}
