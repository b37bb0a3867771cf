// Package testutil runs litemake against throwaway projects for the
// integration tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/litemake/internal/app"
	"github.com/vk/litemake/internal/compiler"
	"github.com/vk/litemake/internal/config"
	"github.com/vk/litemake/internal/hcl"
	"github.com/vk/litemake/internal/notify"
	"github.com/vk/litemake/internal/toml"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	Events    []notify.Message
}

// WriteProject creates a temporary project directory. The keys of files are
// slash-separated paths relative to it.
func WriteProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}
	return dir
}

// Loader picks the configuration format of dir the way the CLI does.
func Loader(t *testing.T, dir string) config.Loader {
	t.Helper()
	switch {
	case hcl.Detect(dir):
		return hcl.NewLoader()
	case toml.Detect(dir):
		return toml.NewLoader()
	}
	t.Fatalf("no project configuration in %s", dir)
	return nil
}

// RunBuild runs the app in dir with rec standing in for the toolchain.
func RunBuild(t *testing.T, dir string, cfg app.Config, rec *compiler.Recorder) *HarnessResult {
	t.Helper()
	return RunBuildWithContext(context.Background(), t, dir, cfg, rec)
}

// RunBuildWithContext is RunBuild with a caller-provided context.
func RunBuildWithContext(ctx context.Context, t *testing.T, dir string, cfg app.Config, rec *compiler.Recorder) *HarnessResult {
	t.Helper()

	cfg.Dir = dir
	events := &notify.Memory{}
	testApp, out, logs := app.SetupAppTest(t, cfg, Loader(t, dir), app.WithRunner(rec), app.WithPublisher(events))
	err := testApp.Run(ctx)

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       err,
		Events:    events.Messages(),
	}
}
