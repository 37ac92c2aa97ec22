package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kilnbuild/kiln/pkg/manifest"
	"github.com/kilnbuild/kiln/pkg/notation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseForms(t *testing.T, src string) []notation.Value {
	t.Helper()
	forms, err := notation.Parse(src)
	require.NoError(t, err)
	return forms
}

func TestFromFormsDefaults(t *testing.T) {
	p, err := manifest.FromForms(parseForms(t, "(name demo)\n(version 0.1.0)"))
	require.NoError(t, err)

	assert.Equal(t, "demo", p.Name)
	assert.Equal(t, "0.1.0", p.Version)
	assert.Equal(t, "cc", p.Compiler)
	assert.Equal(t, []string{"-Wall", "-Wextra", "-Wwrite-strings", "-Werror=discarded-qualifiers"}, p.Flags)
	assert.Equal(t, "c99", p.Standard.String())
	assert.Equal(t, manifest.Binary, p.Type)
	assert.Equal(t, manifest.None, p.Hook)
}

func TestFromFormsFull(t *testing.T) {
	src := `(name scratch)
(version 2.3.1)
(standard gnu11)
(cc clang)
(flags -Wall -O2)
(type shared)
(buildscript after)`

	p, err := manifest.FromForms(parseForms(t, src))
	require.NoError(t, err)

	assert.Equal(t, "scratch", p.Name)
	assert.Equal(t, "2.3.1", p.Version)
	assert.Equal(t, manifest.Standard{Std: manifest.C11, GNU: true}, p.Standard)
	assert.Equal(t, "clang", p.Compiler)
	assert.Equal(t, []string{"-Wall", "-O2"}, p.Flags)
	assert.Equal(t, manifest.Shared, p.Type)
	assert.Equal(t, manifest.After, p.Hook)
}

func TestFromFormsRequiredKeys(t *testing.T) {
	t.Run("MissingName", func(t *testing.T) {
		_, err := manifest.FromForms(parseForms(t, "(version 0.1.0)"))
		var kerr *manifest.KeyError
		require.ErrorAs(t, err, &kerr)
		assert.Equal(t, "name", kerr.Key)
		assert.EqualError(t, err, "key `name` must be a single string")
	})

	t.Run("MissingVersion", func(t *testing.T) {
		_, err := manifest.FromForms(parseForms(t, "(name demo)"))
		var kerr *manifest.KeyError
		require.ErrorAs(t, err, &kerr)
		assert.Equal(t, "version", kerr.Key)
	})

	t.Run("TwoIdentifiers", func(t *testing.T) {
		_, err := manifest.FromForms(parseForms(t, "(name a b)\n(version 0.1.0)"))
		assert.EqualError(t, err, "key `name` must be a single string")
	})

	t.Run("NestedBody", func(t *testing.T) {
		_, err := manifest.FromForms(parseForms(t, "(name (inner x))\n(version 0.1.0)"))
		assert.EqualError(t, err, "key `name` must be a single string")
	})

	t.Run("EmptyBody", func(t *testing.T) {
		_, err := manifest.FromForms(parseForms(t, "(name)\n(version 0.1.0)"))
		assert.EqualError(t, err, "key `name` must be a single string")
	})
}

func TestFromFormsStandard(t *testing.T) {
	valid := map[string]string{
		"ansi":  "c89",
		"c89":   "c89",
		"gnu89": "gnu89",
		"c99":   "c99",
		"gnu99": "gnu99",
		"c11":   "c11",
		"gnu11": "gnu11",
		"c17":   "c17",
		"gnu17": "gnu17",
		"c23":   "c2x",
		"gnu23": "gnu2x",
	}
	for token, rendered := range valid {
		p, err := manifest.FromForms(parseForms(t, "(name d)\n(version 1)\n(standard "+token+")"))
		require.NoError(t, err, "token %q", token)
		assert.Equal(t, rendered, p.Standard.String(), "token %q", token)
	}

	t.Run("Unknown", func(t *testing.T) {
		_, err := manifest.FromForms(parseForms(t, "(name d)\n(version 1)\n(standard c42)"))
		require.Error(t, err)
		assert.EqualError(t, err, "`c42` is not a valid C standard (valid standards: ansi, c89, gnu89, c99, gnu99, c11, gnu11, c17, gnu17, c23, gnu23)")
	})

	t.Run("OutputSpellingRejected", func(t *testing.T) {
		_, err := manifest.FromForms(parseForms(t, "(name d)\n(version 1)\n(standard c2x)"))
		assert.ErrorContains(t, err, "`c2x` is not a valid C standard")
	})

	t.Run("WrongShape", func(t *testing.T) {
		_, err := manifest.FromForms(parseForms(t, "(name d)\n(version 1)\n(standard)"))
		assert.EqualError(t, err, "key `standard` must be a single string")
	})
}

func TestFromFormsFlags(t *testing.T) {
	t.Run("ReplaceDefaults", func(t *testing.T) {
		p, err := manifest.FromForms(parseForms(t, "(name d)\n(version 1)\n(flags -g -Og)"))
		require.NoError(t, err)
		assert.Equal(t, []string{"-g", "-Og"}, p.Flags)
	})

	t.Run("Empty", func(t *testing.T) {
		p, err := manifest.FromForms(parseForms(t, "(name d)\n(version 1)\n(flags)"))
		require.NoError(t, err)
		assert.Empty(t, p.Flags)
	})

	t.Run("DuplicatesPreserved", func(t *testing.T) {
		p, err := manifest.FromForms(parseForms(t, "(name d)\n(version 1)\n(flags -g -g)"))
		require.NoError(t, err)
		assert.Equal(t, []string{"-g", "-g"}, p.Flags)
	})

	t.Run("NestedElement", func(t *testing.T) {
		_, err := manifest.FromForms(parseForms(t, "(name d)\n(version 1)\n(flags -g (opt x))"))
		assert.EqualError(t, err, "each flag must be an identifier")
	})
}

func TestFromFormsType(t *testing.T) {
	cases := map[string]manifest.ProjectType{
		"binary": manifest.Binary,
		"shared": manifest.Shared,
		"static": manifest.Static,
	}
	for token, want := range cases {
		p, err := manifest.FromForms(parseForms(t, "(name d)\n(version 1)\n(type "+token+")"))
		require.NoError(t, err)
		assert.Equal(t, want, p.Type)
	}

	t.Run("Unknown", func(t *testing.T) {
		_, err := manifest.FromForms(parseForms(t, "(name d)\n(version 1)\n(type plugin)"))
		assert.EqualError(t, err, "`plugin` is not a valid project type (available types: binary, shared, static)")
	})
}

func TestFromFormsTiming(t *testing.T) {
	cases := map[string]manifest.Timing{
		"before": manifest.Before,
		"repeat": manifest.Repeat,
		"after":  manifest.After,
	}
	for token, want := range cases {
		p, err := manifest.FromForms(parseForms(t, "(name d)\n(version 1)\n(buildscript "+token+")"))
		require.NoError(t, err)
		assert.Equal(t, want, p.Hook)
	}

	t.Run("Unknown", func(t *testing.T) {
		_, err := manifest.FromForms(parseForms(t, "(name d)\n(version 1)\n(buildscript during)"))
		assert.EqualError(t, err, "`during` is not a valid build script timing (available timings: before, repeat, after)")
	})
}

func TestFromFormsFirstKeyWins(t *testing.T) {
	p, err := manifest.FromForms(parseForms(t, "(name first)\n(name second)\n(version 1)"))
	require.NoError(t, err)
	assert.Equal(t, "first", p.Name)
}

func TestProjectString(t *testing.T) {
	p, err := manifest.FromForms(parseForms(t, "(name demo)\n(version 0.1.0)"))
	require.NoError(t, err)

	want := "CC       cc\n" +
		"CFLAGS   -Wall -Wextra -Wwrite-strings -Werror=discarded-qualifiers -std=c99\n" +
		"TYPE     BIN\n" +
		"NAME     demo\n" +
		"VERSION  0.1.0"
	assert.Equal(t, want, p.String())

	t.Run("NoFlags", func(t *testing.T) {
		p, err := manifest.FromForms(parseForms(t, "(name demo)\n(version 0.1.0)\n(flags)\n(type static)"))
		require.NoError(t, err)
		assert.Contains(t, p.String(), "CFLAGS   -std=c99\n")
		assert.Contains(t, p.String(), "TYPE     STATIC\n")
	})
}

func TestProjectArtifact(t *testing.T) {
	base := "(name foo)\n(version 1)\n"
	cases := map[string]string{
		"":              "foo",
		"(type binary)": "foo",
		"(type static)": "libfoo.a",
		"(type shared)": "libfoo.so",
	}
	for extra, want := range cases {
		p, err := manifest.FromForms(parseForms(t, base+extra))
		require.NoError(t, err)
		assert.Equal(t, want, p.Artifact())
	}
}

func TestLoad(t *testing.T) {
	t.Run("FromFile", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, manifest.Filename)
		require.NoError(t, os.WriteFile(path, []byte("(name disk)\n(version 3.0.0)\n"), 0o644))

		p, err := manifest.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "disk", p.Name)
		assert.Equal(t, "3.0.0", p.Version)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := manifest.Load(filepath.Join(t.TempDir(), manifest.Filename))
		require.Error(t, err)
	})

	t.Run("SyntaxError", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, manifest.Filename)
		require.NoError(t, os.WriteFile(path, []byte("(name broken"), 0o644))

		_, err := manifest.Load(path)
		var serr *notation.SyntaxError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, 1, serr.Line)
	})
}
