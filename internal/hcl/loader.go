package hcl

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/litemake/internal/config"
	"github.com/vk/litemake/internal/ctxlog"
	"github.com/vk/litemake/internal/fsutil"
)

const (
	// FileName is the main project file.
	FileName = "litemake.hcl"
	// FragmentSuffix marks additional project files.
	FragmentSuffix = ".litemake.hcl"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	evalCtx *hcl.EvalContext
}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{evalCtx: processEvalContext()}
}

// Detect reports whether dir holds an HCL project.
func Detect(dir string) bool {
	return fsutil.IsRegular(filepath.Join(dir, FileName))
}

// Load parses every project file of dir into a validated model.
func (l *Loader) Load(ctx context.Context, dir string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "dir", dir)

	files, err := l.projectFiles(dir)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	model := &config.Model{}
	seen := &seenBlocks{}

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, l.evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if err := merge(model, &root, file, seen); err != nil {
			return nil, err
		}
	}

	if seen.pkg == "" {
		return nil, errors.New("no package block declared")
	}
	model.ApplyDefaults(dir)
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", dir, err)
	}

	logger.Debug("HCL loading complete.", "package", model.Package.Identifier(), "targets", len(model.Targets))
	return model, nil
}

// projectFiles returns litemake.hcl followed by the fragments in name order.
func (l *Loader) projectFiles(dir string) ([]string, error) {
	mainFile := filepath.Join(dir, FileName)
	if !fsutil.IsRegular(mainFile) {
		return nil, fmt.Errorf("no %s found in %s", FileName, dir)
	}

	all, err := fsutil.FindFilesByExtension(dir, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("error reading directory %s: %w", dir, err)
	}

	files := []string{mainFile}
	for _, f := range all {
		if strings.HasSuffix(filepath.Base(f), FragmentSuffix) {
			files = append(files, f)
		}
	}
	return files, nil
}
