package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kilnbuild/kiln/pkg/manifest"
)

func infoProject() manifest.Project {
	return manifest.Project{
		Name:     "demo",
		Version:  "0.1.0",
		Standard: manifest.Standard{Std: manifest.C99},
		Compiler: "cc",
		Flags:    []string{"-Wall", "-Wextra"},
		Type:     manifest.Shared,
		Hook:     manifest.Repeat,
	}
}

func TestRenderProject(t *testing.T) {
	t.Run("Text", func(t *testing.T) {
		out, err := renderProject(infoProject(), "text")
		require.NoError(t, err)
		assert.Equal(t, infoProject().String(), out)
		assert.Contains(t, out, "CC       cc")
	})

	t.Run("JSON", func(t *testing.T) {
		out, err := renderProject(infoProject(), "json")
		require.NoError(t, err)

		var v projectView
		require.NoError(t, json.Unmarshal([]byte(out), &v))
		assert.Equal(t, "demo", v.Name)
		assert.Equal(t, "shared", v.Type)
		assert.Equal(t, "c99", v.Standard)
		assert.Equal(t, "libdemo.so", v.Artifact)
		assert.Equal(t, "repeat", v.BuildScript)
	})

	t.Run("YAML", func(t *testing.T) {
		out, err := renderProject(infoProject(), "yaml")
		require.NoError(t, err)

		var v projectView
		require.NoError(t, yaml.Unmarshal([]byte(out), &v))
		assert.Equal(t, "demo", v.Name)
		assert.Equal(t, []string{"-Wall", "-Wextra"}, v.Flags)
	})

	t.Run("OmitsMissingBuildScript", func(t *testing.T) {
		p := infoProject()
		p.Hook = manifest.None
		out, err := renderProject(p, "json")
		require.NoError(t, err)
		assert.NotContains(t, out, "buildscript")
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		_, err := renderProject(infoProject(), "xml")
		assert.EqualError(t, err, "unknown format `xml` (formats: text, json, yaml)")
	})
}

func TestTokens(t *testing.T) {
	assert.Equal(t, "binary", typeToken(manifest.Binary))
	assert.Equal(t, "shared", typeToken(manifest.Shared))
	assert.Equal(t, "static", typeToken(manifest.Static))

	assert.Equal(t, "", timingToken(manifest.None))
	assert.Equal(t, "before", timingToken(manifest.Before))
	assert.Equal(t, "repeat", timingToken(manifest.Repeat))
	assert.Equal(t, "after", timingToken(manifest.After))
}
