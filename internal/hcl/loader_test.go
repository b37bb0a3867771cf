package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/litemake/internal/config"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func TestLoader_Load(t *testing.T) {
	// --- Arrange ---
	t.Setenv("LITEMAKE_TEST_CC", "CLANG")
	dir := writeProject(t, map[string]string{
		FileName: `
package "demo" {
  description = "demo project"
  author      = "someone"
  version {
    major = 1
    minor = 2
    label = "beta"
  }
}

settings {
  output   = "build-out"
  compiler = lower(env.LITEMAKE_TEST_CC)
}

target "build" {
  sources = ["main.c", "src/**/*.c"]
  include = ["include"]
}
`,
		"extra" + FragmentSuffix: `
target "core" {
  library = true
  sources = [format("%s/*.c", "lib")]
}
`,
		"ignored.hcl": `this is not part of the project {`,
	})

	// --- Act ---
	model, err := NewLoader().Load(context.Background(), dir)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, config.Package{
		Name:        "demo",
		Description: "demo project",
		Author:      "someone",
		Version:     config.Version{Major: 1, Minor: 2, Label: "beta"},
	}, model.Package)
	assert.Equal(t, config.Settings{Home: dir, Output: "build-out", Compiler: "clang"}, model.Settings)
	require.Len(t, model.Targets, 2)
	assert.Equal(t, &config.Target{Name: "build", Sources: []string{"main.c", "src/**/*.c"}, Includes: []string{"include"}}, model.Targets[0])
	assert.Equal(t, &config.Target{Name: "core", Library: true, Sources: []string{"lib/*.c"}}, model.Targets[1])
}

func TestLoader_Defaults(t *testing.T) {
	dir := writeProject(t, map[string]string{
		FileName: `
package "demo" {}
target "build" {
  sources = ["*.c"]
}
`,
	})

	model, err := NewLoader().Load(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, config.Settings{Home: dir, Output: config.DefaultOutput, Compiler: config.DefaultCompiler}, model.Settings)
	assert.Equal(t, config.Version{}, model.Package.Version)
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "missing project file",
			files:   map[string]string{"other.hcl": ``},
			wantErr: "no litemake.hcl found",
		},
		{
			name:    "syntax error",
			files:   map[string]string{FileName: `package "demo" {`},
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "missing required sources",
			files:   map[string]string{FileName: "package \"demo\" {}\ntarget \"build\" {}\n"},
			wantErr: "failed to decode HCL file",
		},
		{
			name:    "no package",
			files:   map[string]string{FileName: "target \"build\" {\n sources = [\"a.c\"]\n}\n"},
			wantErr: "no package block declared",
		},
		{
			name: "duplicate package",
			files: map[string]string{
				FileName:                   "package \"demo\" {}\ntarget \"build\" {\n sources = [\"a.c\"]\n}\n",
				"more" + FragmentSuffix: "package \"again\" {}\n",
			},
			wantErr: "package block already declared",
		},
		{
			name:    "invalid names",
			files:   map[string]string{FileName: "package \"x\" {}\ntarget \"build\" {\n sources = [\"a.c\"]\n}\n"},
			wantErr: "invalid configuration",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := writeProject(t, tc.files)

			_, err := NewLoader().Load(context.Background(), dir)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestDetect(t *testing.T) {
	assert.True(t, Detect(writeProject(t, map[string]string{FileName: ""})))
	assert.False(t, Detect(t.TempDir()))
}

func TestNewEvalContext(t *testing.T) {
	ctx := newEvalContext([]string{"A=1", "=skip", "NOEQUALS", "B=x=y"})

	env := ctx.Variables["env"].AsValueMap()
	assert.Len(t, env, 2)
	assert.Equal(t, "1", env["A"].AsString())
	assert.Equal(t, "x=y", env["B"].AsString())
	assert.Contains(t, ctx.Functions, "join")
}
