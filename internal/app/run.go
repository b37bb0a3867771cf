package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vk/litemake/internal/builder"
	"github.com/vk/litemake/internal/compiler"
	"github.com/vk/litemake/internal/config"
	"github.com/vk/litemake/internal/ctxlog"
	"github.com/vk/litemake/internal/executor"
	"github.com/vk/litemake/internal/layout"
	"github.com/vk/litemake/internal/notify"
	"github.com/vk/litemake/internal/report"
)

// Run loads the project and builds the requested targets. It returns
// ErrBuildFailed when the build ran but something failed.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "dir", a.config.Dir)

	a.healthCheckServer(ctx)
	defer a.closeHealthCheckServer(ctx)

	dir, err := filepath.Abs(a.config.Dir)
	if err != nil {
		return fmt.Errorf("failed to resolve project directory: %w", err)
	}
	model, err := a.loader.Load(ctx, dir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.logger.Debug("Configuration loaded.", "package", model.Package.Identifier(), "targets", len(model.Targets))

	if a.config.List {
		return report.WriteTargets(a.outW, report.NewListing(model), a.config.Format)
	}

	targets, err := model.SelectTargets(a.config.Targets...)
	if err != nil {
		return err
	}

	backend, err := a.backend(model)
	if err != nil {
		return err
	}
	b := builder.New(layout.New(model.Settings.Home, model.Settings.Output), backend)

	publisher := a.publisher
	if publisher == nil {
		publisher = notify.Connect(ctx, a.config.EventsURL, notify.DefaultTimeout)
	}
	defer publisher.Close()

	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = t.Name
	}
	a.status.start(names)
	publisher.Publish(ctx, notify.BuildStarted, map[string]any{
		"package":  model.Package.Identifier(),
		"compiler": backend.Name(),
		"targets":  names,
	})

	var progress *report.Progress
	if a.config.Format == report.Text {
		progress = report.NewProgress(a.outW, model.Settings.Home)
	}

	a.logger.Info("🚀 Starting build.", "targets", names, "workers", a.config.Workers)
	summary := &report.Summary{Package: model.Package.Identifier()}
	for _, target := range targets {
		if err := a.buildTarget(ctx, b, model.Package, target, progress, publisher, summary); err != nil {
			return err
		}
	}
	a.status.finish()
	a.logger.Info("🏁 Build finished.", "passed", summary.Totals.Passed, "skipped", summary.Totals.Skipped, "failed", summary.Totals.Failed)

	publisher.Publish(ctx, notify.BuildFinished, map[string]any{
		"package": summary.Package,
		"failed":  summary.Failed(),
		"totals":  countsData(summary.Totals),
	})

	if err := report.WriteSummary(a.outW, summary, a.config.Format); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if summary.Failed() {
		return ErrBuildFailed
	}
	return nil
}

// buildTarget builds and drives the graph of one target. A target that
// cannot be turned into a graph is recorded as failed; only cancellation
// stops the remaining targets.
func (a *App) buildTarget(
	ctx context.Context,
	b *builder.Builder,
	pkg config.Package,
	target *config.Target,
	progress *report.Progress,
	publisher notify.Publisher,
	summary *report.Summary,
) error {
	logger := a.logger.With("target", target.Name)
	a.status.enter(target.Name)
	if progress != nil {
		progress.Banner(pkg, target)
	}

	g, root, err := b.Build(ctx, pkg, target)
	if err != nil {
		logger.Warn("Target graph could not be built.", "error", err)
		if progress != nil {
			progress.TargetError(target.Name, err)
		}
		summary.AddTarget(target.Name, nil, err)
		return nil
	}
	logger.Debug("Target graph built.", "nodes", g.Len())

	driver := executor.New(ctx, g, root, a.config.Workers)
	results, runErr := driver.Run(ctx, func(r executor.Result) {
		a.status.add(r)
		if progress != nil {
			progress.Node(r)
		}
		data := map[string]any{
			"target": target.Name,
			"kind":   r.Kind.String(),
			"dest":   r.Dest,
			"status": r.Status.String(),
		}
		if r.Err != nil {
			data["error"] = r.Err.Error()
		}
		publisher.Publish(ctx, notify.NodeResolved, data)
	})
	summary.AddTarget(target.Name, results, nil)
	if runErr != nil {
		return fmt.Errorf("build of target %q interrupted: %w", target.Name, runErr)
	}

	if len(results) == 0 && progress != nil {
		progress.UpToDate(target)
	}
	return nil
}

// backend selects the toolchain, preferring the command line over the
// project setting.
func (a *App) backend(model *config.Model) (*compiler.Toolchain, error) {
	name := model.Settings.Compiler
	if a.config.Compiler != "" {
		name = a.config.Compiler
	}

	runner := a.runner
	if runner == nil {
		r := &compiler.ExecRunner{}
		if a.config.Verbose {
			r.Echo = a.outW
		}
		runner = r
	}
	return compiler.New(name, compiler.WithRunner(runner))
}

func countsData(c executor.Counts) map[string]any {
	return map[string]any{"passed": c.Passed, "skipped": c.Skipped, "failed": c.Failed}
}
