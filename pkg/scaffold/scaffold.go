// Package scaffold creates new project skeletons.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/kilnbuild/kiln/pkg/builder"
	"github.com/kilnbuild/kiln/pkg/manifest"
	"github.com/kilnbuild/kiln/pkg/notation"
)

// starterSource is the main.c every new project begins with.
const starterSource = "#include <stdlib.h>\n\nint\nmain (void)\n{\n  return EXIT_SUCCESS;\n}\n"

// Options selects what kind of project Create builds. Zero values mean
// the manifest defaults: version 0.1.0, type binary, standard c99.
type Options struct {
	Name     string
	Version  string
	Type     string // manifest token: binary, shared or static
	Standard string // manifest token, e.g. c99 or gnu11
}

// Create makes a project skeleton under parent: the manifest, a src/ tree
// with a starter main.c, an empty output directory and a .gitignore. The
// generated manifest is validated before anything touches disk, and the
// resulting Project is returned.
func Create(parent string, o Options) (manifest.Project, error) {
	if err := checkName(o.Name); err != nil {
		return manifest.Project{}, err
	}

	version := o.Version
	if version == "" {
		version = "0.1.0"
	}
	if _, err := semver.NewVersion(version); err != nil {
		return manifest.Project{}, fmt.Errorf("`%s` is not a semantic version (like 0.1.0)", version)
	}

	content := kilnfile(o.Name, version, o.Standard, o.Type)
	forms, err := notation.Parse(content)
	if err != nil {
		return manifest.Project{}, err
	}
	p, err := manifest.FromForms(forms)
	if err != nil {
		return manifest.Project{}, err
	}

	root := filepath.Join(parent, o.Name)
	if _, err := os.Stat(filepath.Join(root, manifest.Filename)); err == nil {
		return manifest.Project{}, fmt.Errorf("%s already exists in %s", manifest.Filename, root)
	}

	for _, dir := range []string{builder.SourceDir, builder.OutputDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return manifest.Project{}, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	files := []struct {
		rel  string
		body string
	}{
		{manifest.Filename, content},
		{filepath.Join(builder.SourceDir, "main.c"), starterSource},
		{".gitignore", fmt.Sprintf("%s/\n%s\n", builder.OutputDir, p.Artifact())},
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(root, f.rel), []byte(f.body), 0o644); err != nil {
			return manifest.Project{}, fmt.Errorf("failed to create %s: %w", f.rel, err)
		}
	}

	return p, nil
}

func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("project name is required")
	}
	if strings.ContainsAny(name, " \t\r\n()/\\") {
		return fmt.Errorf("`%s` is not a usable project name (whitespace, parentheses and path separators are reserved)", name)
	}
	return nil
}

func kilnfile(name, version, standard, ptype string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "(name %s)\n(version %s)\n", name, version)
	if standard != "" {
		fmt.Fprintf(&b, "(standard %s)\n", standard)
	}
	if ptype != "" {
		fmt.Fprintf(&b, "(type %s)\n", ptype)
	}
	return b.String()
}
