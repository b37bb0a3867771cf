package hcl

import (
	"fmt"

	"github.com/vk/litemake/internal/config"
)

// merge folds one decoded file into the model. Package and settings may be
// declared once across all files.
func merge(model *config.Model, root *fileRoot, file string, seen *seenBlocks) error {
	if root.Package != nil {
		if seen.pkg != "" {
			return fmt.Errorf("%s: package block already declared in %s", file, seen.pkg)
		}
		seen.pkg = file
		model.Package = translatePackage(root.Package)
	}
	if root.Settings != nil {
		if seen.settings != "" {
			return fmt.Errorf("%s: settings block already declared in %s", file, seen.settings)
		}
		seen.settings = file
		model.Settings = config.Settings{
			Home:     root.Settings.Home,
			Output:   root.Settings.Output,
			Compiler: root.Settings.Compiler,
		}
	}
	for _, t := range root.Targets {
		model.Targets = append(model.Targets, &config.Target{
			Name:     t.Name,
			Library:  t.Library,
			Sources:  t.Sources,
			Includes: t.Include,
		})
	}
	return nil
}

type seenBlocks struct {
	pkg      string
	settings string
}

func translatePackage(p *packageBlock) config.Package {
	pkg := config.Package{
		Name:        p.Name,
		Description: p.Description,
		Author:      p.Author,
	}
	if p.Version != nil {
		pkg.Version = config.Version{
			Major: p.Version.Major,
			Minor: p.Version.Minor,
			Patch: p.Version.Patch,
			Label: p.Version.Label,
		}
	}
	return pkg
}
