package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vk/litemake/internal/app"
	"github.com/vk/litemake/internal/cli"
	"github.com/vk/litemake/internal/config"
	"github.com/vk/litemake/internal/hcl"
	"github.com/vk/litemake/internal/toml"
)

// main is the entrypoint for the litemake application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout, os.Args[1:])
	stop()

	if err != nil {
		var exitErr *cli.ExitError
		switch {
		case errors.As(err, &exitErr):
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		case errors.Is(err, app.ErrBuildFailed):
			// The summary already explains what failed.
			os.Exit(1)
		default:
			fmt.Fprintln(os.Stderr, "litemake:", err)
			os.Exit(1)
		}
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	loader, err := selectLoader(appConfig.Dir)
	if err != nil {
		return err
	}

	return app.NewApp(outW, appConfig, loader).Run(ctx)
}

// selectLoader picks the configuration format present in dir. HCL wins
// when both are present.
func selectLoader(dir string) (config.Loader, error) {
	switch {
	case hcl.Detect(dir):
		return hcl.NewLoader(), nil
	case toml.Detect(dir):
		return toml.NewLoader(), nil
	default:
		return nil, fmt.Errorf("no %s or %s found in %s", hcl.FileName, toml.PackageFileName, dir)
	}
}
