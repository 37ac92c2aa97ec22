package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/kilnbuild/kiln/pkg/manifest"
	"github.com/kilnbuild/kiln/pkg/scaffold"
)

var (
	newType    string
	newStd     string
	newVersion string
	newNoGit   bool
	newBare    bool
)

func init() {
	rootCmd.AddCommand(newNewCmd())
}

func newNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Create a new C project",
		Long: `Create a project directory with a Kilnfile, a src/ tree and a
starter main.c.

In an interactive terminal, anything not settled by arguments, flags or
stored defaults is collected by a short prompt. Defaults for new
projects can be stored with 'kiln config set new.type shared' and
friends; --bare skips the prompt entirely.

Examples:
  kiln new hello
  kiln new libfoo --type static --std gnu11
  kiln new libfoo --bare`,
		Args: cobra.MaximumNArgs(1),
		RunE: runNew,
	}

	cmd.Flags().Var(newEnumValue(&newType, "binary", "shared", "static"),
		"type", "Project type: binary, shared, or static")
	cmd.Flags().Var(newEnumValue(&newStd, "ansi", "c89", "gnu89", "c99", "gnu99", "c11", "gnu11", "c17", "gnu17", "c23", "gnu23"),
		"std", "C standard, like c99 or gnu11")
	cmd.Flags().StringVar(&newVersion, "version", "", "Initial version (default 0.1.0)")
	cmd.Flags().BoolVar(&newNoGit, "no-git", false, "Skip git repository initialization")
	cmd.Flags().BoolVar(&newBare, "bare", false, "Never prompt; take everything from flags and settings")

	return cmd
}

func runNew(cmd *cobra.Command, args []string) error {
	opts := scaffold.Options{
		Version:  newVersion,
		Type:     newType,
		Standard: newStd,
	}
	if len(args) > 0 {
		opts.Name = args[0]
	}
	if opts.Type == "" {
		opts.Type = userSettings.New.Type
	}
	if opts.Standard == "" {
		opts.Standard = userSettings.New.Standard
	}
	if opts.Version == "" {
		opts.Version = userSettings.New.Version
	}

	interactive := !newBare && stdinIsTerminal()
	if interactive && (opts.Name == "" || opts.Type == "" || opts.Standard == "") {
		result, err := runNewPrompt(opts)
		if err != nil {
			return err
		}
		if !result.Confirmed {
			return fmt.Errorf("cancelled")
		}
		opts.Name = result.Name
		opts.Version = result.Version
		opts.Type = result.Type
		opts.Standard = result.Standard
	}
	if opts.Name == "" {
		return fmt.Errorf("a project name is required")
	}

	dir, err := projectDir()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Creating project '%s'...\n", opts.Name)

	p, err := scaffold.Create(dir, opts)
	if err != nil {
		return err
	}

	for _, f := range []string{manifest.Filename, "src/main.c", ".gitignore"} {
		fmt.Fprintf(out, "  %s\n", f)
	}

	if !newNoGit {
		initGit(filepath.Join(dir, opts.Name))
	}

	fmt.Fprintf(out, "\n%s Project created!\n", successStyle.Render(iconSuccess))
	fmt.Fprintf(out, "\ncd %s\nkiln build\n", p.Name)

	return nil
}

func stdinIsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// initGit creates a git repository with an initial commit in dir. The
// project is already on disk, so failures only warn.
func initGit(dir string) {
	if _, err := exec.LookPath("git"); err != nil {
		return
	}

	gitInit := exec.Command("git", "init")
	gitInit.Dir = dir
	if err := gitInit.Run(); err != nil {
		log.WithError(err).Warn("Failed to initialize git repository")
		return
	}

	gitAdd := exec.Command("git", "add", ".")
	gitAdd.Dir = dir
	gitAdd.Run()

	gitCommit := exec.Command("git", "commit", "-m", "Initial commit")
	gitCommit.Dir = dir
	gitCommit.Run()
}
