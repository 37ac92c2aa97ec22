package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilnbuild/kiln/pkg/fetch"
)

var (
	installRef  string
	installList bool
)

func init() {
	rootCmd.AddCommand(newInstallCmd())
}

func newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install <repository>",
		Short: "Vendor C sources from a hosted repository",
		Long: `Download a repository tarball and copy its C sources into src/.

Repositories are named owner/repo, with github.com assumed, or
host/owner/repo for gitlab.com and bitbucket.org. Installed files land
under src/<repo>/ and are recorded in ` + fetch.LockFilename + `, so later
builds compile them like any other source.

Examples:
  kiln install nothings/stb
  kiln install nothings/stb --ref v2.30
  kiln install --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInstall,
	}

	cmd.Flags().StringVar(&installRef, "ref", "", "Branch, tag or commit to download (default branch if unset)")
	cmd.Flags().BoolVar(&installList, "list", false, "List installed repositories instead of installing")

	return cmd
}

func runInstall(cmd *cobra.Command, args []string) error {
	dir, err := projectDir()
	if err != nil {
		return err
	}

	if installList {
		return runInstallList(cmd, dir)
	}
	if len(args) == 0 {
		return fmt.Errorf("a repository to install is required (or --list)")
	}

	src, err := fetch.ParseSource(args[0])
	if err != nil {
		return err
	}

	client := &fetch.Client{Dir: dir, Log: log}
	dep, err := client.Install(cmd.Context(), src, installRef)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Installed %s (%d files)\n",
		successStyle.Render(iconSuccess), src, dep.Files)
	return nil
}

func runInstallList(cmd *cobra.Command, dir string) error {
	lock, err := fetch.ReadLock(dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(lock.Deps) == 0 {
		fmt.Fprintln(out, "Nothing installed")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tREF\tFILES\tINSTALLED")
	for _, d := range lock.Deps {
		ref := d.Ref
		if ref == "" {
			ref = "HEAD"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", d.Source, ref, d.Files, d.InstalledAt.Format("2006-01-02"))
	}
	return w.Flush()
}
