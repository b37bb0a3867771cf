package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/litemake/internal/hcl"
	"github.com/vk/litemake/internal/toml"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	err := run(context.Background(), out, args)

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_NoProject(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &bytes.Buffer{}, []string{"-C", t.TempDir()})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no litemake.hcl")
}

func TestRun_ListsTOMLProject(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	files := map[string]string{
		toml.PackageFileName: "name = \"demo\"\n[version]\nmajor = 2\n",
		toml.TargetsFileName: "[app]\nsources = [\"*.c\"]\n\n[core]\nlibrary = true\nsources = [\"lib/*.c\"]\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, []string{"--list", "--format", "yaml", "-C", dir})

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), "package: demo-v2.0.0")
	assert.Contains(t, out.String(), "name: core")
}

func TestSelectLoader_PrefersHCL(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, hcl.FileName), nil, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, toml.PackageFileName), nil, 0o600))

	loader, err := selectLoader(dir)

	require.NoError(t, err)
	assert.IsType(t, &hcl.Loader{}, loader)
}
