// Package builder turns a validated Project into a sequence of external
// compiler, archiver and interpreter invocations.
//
// The orchestration is deliberately single threaded: every process runs
// to completion before the next one starts, and the first failure aborts
// the whole build. A hung compiler therefore hangs the build; there is no
// timeout beyond whatever the caller puts in the context.
package builder

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/kilnbuild/kiln/pkg/manifest"
)

const (
	// SourceDir is the project-relative root searched for C sources.
	SourceDir = "src"
	// OutputDir is the project-relative directory objects are written to.
	OutputDir = "build"
	// archiver links static libraries.
	archiver = "ar"
)

// Builder drives one full compile and link of a project.
type Builder struct {
	// Dir is the project root. Empty means the current directory.
	Dir string
	// Out receives the progress banner and one echo line per command.
	// Defaults to os.Stdout.
	Out io.Writer
	// Runner launches external processes. Defaults to one backed by
	// os/exec with the standard streams passed through.
	Runner Runner
	// Log receives debug detail. Defaults to the logrus standard logger.
	Log *logrus.Logger
}

// Run compiles and links the project once.
//
// With release set, -O3 is appended to a working copy of the project's
// flags; the Project itself is never mutated. Sources are compiled in
// lexical depth-first path order, each to its own object file under
// OutputDir, then linked into the artifact named by the project type.
// The build script hook runs according to p.Hook: Before replaces the
// whole build, Repeat runs after each successful compile, After runs
// once after a successful link.
func (b *Builder) Run(ctx context.Context, p manifest.Project, release bool) error {
	flags := append([]string(nil), p.Flags...)
	if release {
		flags = append(flags, "-O3")
	}

	if p.Hook == manifest.Before {
		return b.runHook(ctx)
	}

	files, err := b.discover()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Join(b.dir(), OutputDir), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	b.banner(p, len(files))

	var objs []string
	for _, src := range files {
		obj := objectPath(src)

		args := make([]string, 0, len(flags)+6)
		args = append(args, flags...)
		if p.Type == manifest.Shared {
			args = append(args, "-fpic")
		}
		args = append(args, "-std="+p.Standard.String(), "-c", src, "-o", obj)

		if err := b.run(ctx, p.Compiler, args...); err != nil {
			return err
		}
		if p.Hook == manifest.Repeat {
			if err := b.runHook(ctx); err != nil {
				return err
			}
		}
		objs = append(objs, obj)
	}

	if err := b.link(ctx, p, objs); err != nil {
		return err
	}

	if p.Hook == manifest.After {
		return b.runHook(ctx)
	}
	return nil
}

// link produces the final artifact from the compiled objects. The link
// step never receives the compile flags.
func (b *Builder) link(ctx context.Context, p manifest.Project, objs []string) error {
	args := append([]string(nil), objs...)
	switch p.Type {
	case manifest.Static:
		args = append([]string{"rcs"}, append(args, p.Artifact())...)
		return b.run(ctx, archiver, args...)
	case manifest.Shared:
		args = append(args, "-shared", "-o", p.Artifact())
		return b.run(ctx, p.Compiler, args...)
	default:
		args = append(args, "-o", p.Artifact())
		return b.run(ctx, p.Compiler, args...)
	}
}

// discover walks the source tree and returns every .c file as a path
// relative to the project root, in lexical depth-first order.
func (b *Builder) discover() ([]string, error) {
	root := filepath.Join(b.dir(), SourceDir)

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".c") {
			return nil
		}
		rel, err := filepath.Rel(b.dir(), path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read source directory %s: %w", root, err)
	}

	b.log().Debugf("found %d source files under %s", len(files), root)
	return files, nil
}

// objectPath maps a project-relative source path to its object file. The
// source-root prefix is dropped and the remaining separators become
// underscores, so the output directory stays flat.
func objectPath(src string) string {
	rel := strings.TrimPrefix(src, SourceDir+string(filepath.Separator))
	flat := strings.ReplaceAll(rel, string(filepath.Separator), "_")
	return filepath.Join(OutputDir, strings.TrimSuffix(flat, ".c")+".o")
}

func (b *Builder) banner(p manifest.Project, files int) {
	star := lipgloss.NewRenderer(b.out()).NewStyle().Foreground(lipgloss.Color("2")).Render("*")
	fmt.Fprintf(b.out(), "%s Compiling %s::%s (%d files)...\n", star, p.Name, p.Version, files)
}

// run echoes the full command line, then executes it.
func (b *Builder) run(ctx context.Context, name string, args ...string) error {
	fmt.Fprintf(b.out(), "%s %s\n", name, strings.Join(args, " "))
	return b.runner().Run(ctx, name, args...)
}

func (b *Builder) dir() string {
	if b.Dir == "" {
		return "."
	}
	return b.Dir
}

func (b *Builder) out() io.Writer {
	if b.Out == nil {
		return os.Stdout
	}
	return b.Out
}

func (b *Builder) runner() Runner {
	if b.Runner == nil {
		return &execRunner{dir: b.Dir}
	}
	return b.Runner
}

func (b *Builder) log() *logrus.Logger {
	if b.Log == nil {
		return logrus.StandardLogger()
	}
	return b.Log
}
