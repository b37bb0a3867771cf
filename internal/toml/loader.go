// Package toml provides the TOML implementation of config.Loader for
// projects described by three files:
//
//	package.litemake.toml   name, description, author, [version]
//	targets.litemake.toml   one table per target, in declaration order
//	settings.litemake.toml  home, output, compiler (optional file)
package toml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml"
	"github.com/vk/litemake/internal/config"
	"github.com/vk/litemake/internal/ctxlog"
	"github.com/vk/litemake/internal/fsutil"
)

const (
	PackageFileName  = "package.litemake.toml"
	TargetsFileName  = "targets.litemake.toml"
	SettingsFileName = "settings.litemake.toml"
)

type packageFile struct {
	Name        string      `toml:"name"`
	Description string      `toml:"description"`
	Author      string      `toml:"author"`
	Version     versionFile `toml:"version"`
}

type versionFile struct {
	Major int    `toml:"major"`
	Minor int    `toml:"minor"`
	Patch int    `toml:"patch"`
	Label string `toml:"label"`
}

type settingsFile struct {
	Home     string `toml:"home"`
	Output   string `toml:"output"`
	Compiler string `toml:"compiler"`
}

type targetFile struct {
	Library bool     `toml:"library"`
	Sources []string `toml:"sources"`
	Include []string `toml:"include"`
}

// Loader is the TOML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new TOML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Detect reports whether dir holds a TOML project.
func Detect(dir string) bool {
	return fsutil.IsRegular(filepath.Join(dir, PackageFileName))
}

// Load reads the project files of dir into a validated model.
func (l *Loader) Load(ctx context.Context, dir string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("TOML loader started.", "dir", dir)

	var pkg packageFile
	if err := decodeFile(filepath.Join(dir, PackageFileName), &pkg); err != nil {
		return nil, err
	}

	var settings settingsFile
	settingsPath := filepath.Join(dir, SettingsFileName)
	if fsutil.Exists(settingsPath) {
		if err := decodeFile(settingsPath, &settings); err != nil {
			return nil, err
		}
	} else {
		logger.Debug("No settings file, using defaults.", "path", settingsPath)
	}

	targets, err := loadTargets(filepath.Join(dir, TargetsFileName))
	if err != nil {
		return nil, err
	}

	model := &config.Model{
		Package: config.Package{
			Name:        pkg.Name,
			Description: pkg.Description,
			Author:      pkg.Author,
			Version: config.Version{
				Major: pkg.Version.Major,
				Minor: pkg.Version.Minor,
				Patch: pkg.Version.Patch,
				Label: pkg.Version.Label,
			},
		},
		Settings: config.Settings{
			Home:     settings.Home,
			Output:   settings.Output,
			Compiler: settings.Compiler,
		},
		Targets: targets,
	}
	model.ApplyDefaults(dir)
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", dir, err)
	}

	logger.Debug("TOML loading complete.", "package", model.Package.Identifier(), "targets", len(model.Targets))
	return model, nil
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode TOML file %s: %w", path, err)
	}
	return nil
}

// loadTargets decodes every top-level table of the targets file, ordered by
// its position in the file.
func loadTargets(path string) ([]*config.Target, error) {
	tree, err := toml.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode TOML file %s: %w", path, err)
	}

	names := tree.Keys()
	sort.SliceStable(names, func(i, j int) bool {
		pi, pj := tree.GetPosition(names[i]), tree.GetPosition(names[j])
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		return pi.Col < pj.Col
	})

	targets := make([]*config.Target, 0, len(names))
	for _, name := range names {
		sub, ok := tree.Get(name).(*toml.Tree)
		if !ok {
			return nil, fmt.Errorf("%s: target %q must be a table", path, name)
		}
		var tf targetFile
		if err := sub.Unmarshal(&tf); err != nil {
			return nil, fmt.Errorf("%s: failed to decode target %q: %w", path, name, err)
		}
		targets = append(targets, &config.Target{
			Name:     name,
			Library:  tf.Library,
			Sources:  tf.Sources,
			Includes: tf.Include,
		})
	}
	return targets, nil
}
