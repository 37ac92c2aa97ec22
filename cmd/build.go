package cmd

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilnbuild/kiln/pkg/builder"
	"github.com/kilnbuild/kiln/pkg/manifest"
)

var (
	buildRelease bool
	buildWatch   bool
)

func init() {
	rootCmd.AddCommand(newBuildCmd())
}

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile and link the current project",
		Long: `Compile every .c file under src/ and link the results.

The project type in the Kilnfile decides the link step: binaries are
linked with the configured compiler, static libraries are archived
with ar, and shared libraries are compiled with -fpic and linked with
-shared. Kiln echoes each command before running it and stops at the
first one that fails.

Examples:
  # Debug build of the project in the working directory
  kiln build

  # Optimized build
  kiln build --release

  # Rebuild whenever the Kilnfile or sources change
  kiln build --watch`,
		Args: cobra.NoArgs,
		RunE: runBuild,
	}

	cmd.Flags().BoolVarP(&buildRelease, "release", "r", false, "Build with optimizations (-O3)")
	cmd.Flags().BoolVarP(&buildWatch, "watch", "w", false, "Rebuild whenever the Kilnfile or sources change")

	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	dir, err := projectDir()
	if err != nil {
		return err
	}

	b := &builder.Builder{Dir: dir, Out: cmd.OutOrStdout(), Log: log}

	if buildWatch {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return b.Watch(ctx, buildRelease)
	}

	p, err := manifest.Load(filepath.Join(dir, manifest.Filename))
	if err != nil {
		return err
	}
	return b.Run(cmd.Context(), p, buildRelease)
}
