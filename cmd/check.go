package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/kilnbuild/kiln/pkg/manifest"
)

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the Kilnfile",
		Long: `Parse and validate the Kilnfile without building anything.

Manifest errors are reported the same way a build would report them.
A version that is not semantic versioning only warns; kiln does not
require semver, but the ecosystem around it usually expects it.`,
		Args: cobra.NoArgs,
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir, err := projectDir()
	if err != nil {
		return err
	}

	p, err := manifest.Load(filepath.Join(dir, manifest.Filename))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := semver.NewVersion(p.Version); err != nil {
		fmt.Fprintf(out, "%s version `%s` is not a semantic version\n",
			warningStyle.Render(iconWarning), p.Version)
	}

	fmt.Fprintf(out, "%s %s is valid (%s %s)\n",
		successStyle.Render(iconSuccess), manifest.Filename, p.Name, p.Version)
	return nil
}
