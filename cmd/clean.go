package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilnbuild/kiln/pkg/builder"
	"github.com/kilnbuild/kiln/pkg/manifest"
)

func init() {
	rootCmd.AddCommand(newCleanCmd())
}

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove build outputs",
		Long:  "Remove the object directory and the linked artifact named by the Kilnfile.",
		Args:  cobra.NoArgs,
		RunE:  runClean,
	}
}

func runClean(cmd *cobra.Command, args []string) error {
	dir, err := projectDir()
	if err != nil {
		return err
	}

	p, err := manifest.Load(filepath.Join(dir, manifest.Filename))
	if err != nil {
		return err
	}

	var removed []string

	buildDir := filepath.Join(dir, builder.OutputDir)
	if _, err := os.Stat(buildDir); err == nil {
		if err := os.RemoveAll(buildDir); err != nil {
			return fmt.Errorf("failed to remove %s: %w", builder.OutputDir, err)
		}
		removed = append(removed, builder.OutputDir+string(os.PathSeparator))
	}

	artifact := p.Artifact()
	if _, err := os.Stat(filepath.Join(dir, artifact)); err == nil {
		if err := os.Remove(filepath.Join(dir, artifact)); err != nil {
			return fmt.Errorf("failed to remove %s: %w", artifact, err)
		}
		removed = append(removed, artifact)
	}

	out := cmd.OutOrStdout()
	if len(removed) == 0 {
		fmt.Fprintln(out, "Nothing to clean")
		return nil
	}
	fmt.Fprintf(out, "Removed %s\n", strings.Join(removed, ", "))
	return nil
}
