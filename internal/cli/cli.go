package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/litemake/internal/app"
	"github.com/vk/litemake/internal/compiler"
	"github.com/vk/litemake/internal/report"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Flags and target names may be interleaved.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("litemake", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprintf(output, `
litemake - an incremental build tool for C and C++ projects.

Usage:
  litemake [options] [TARGET...]

Arguments:
  TARGET
    Name of a declared target. Without any, the first declared target is built.

Compilers:
  %s

Options:
`, strings.Join(compiler.Names(), ", "))
		flagSet.PrintDefaults()
	}

	dirFlag := flagSet.String("dir", ".", "Project directory containing the litemake configuration.")
	cFlag := flagSet.String("C", "", "Project directory (shorthand).")
	compilerFlag := flagSet.String("compiler", "", "Override the compiler declared by the project.")
	workersFlag := flagSet.Int("workers", 1, "Number of concurrent toolchain invocations. 1 builds sequentially.")
	verboseFlag := flagSet.Bool("verbose", false, "Echo every toolchain command before it runs.")
	vFlag := flagSet.Bool("v", false, "Echo every toolchain command (shorthand).")
	listFlag := flagSet.Bool("list", false, "List the declared targets and exit.")
	formatFlag := flagSet.String("format", "text", "Output format of the summary and listing. Options: 'text', 'json' or 'yaml'.")
	eventsFlag := flagSet.String("events-url", "", "Socket.IO endpoint receiving build events, e.g. http://localhost:3000/socket.io/.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health and status server. 0 is disabled.")
	versionFlag := flagSet.Bool("version", false, "Print the version and exit.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	var targets []string
	rest := args
	for {
		if err := flagSet.Parse(rest); err != nil {
			if err == flag.ErrHelp {
				return nil, true, nil
			}
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		rest = flagSet.Args()
		if len(rest) == 0 {
			break
		}
		targets = append(targets, rest[0])
		rest = rest[1:]
	}
	slog.Debug("Arguments parsed successfully.", "targets", targets)

	if *versionFlag {
		fmt.Fprintf(output, "litemake %s\n", app.Version)
		return nil, true, nil
	}

	dir := *dirFlag
	if *cFlag != "" {
		dir = *cFlag
	}

	format, err := report.ParseFormat(*formatFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: "invalid format: must be 'text', 'json' or 'yaml'"}
	}

	if *compilerFlag != "" {
		if _, err := compiler.New(*compilerFlag); err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Dir:             dir,
		Targets:         targets,
		Compiler:        *compilerFlag,
		Workers:         *workersFlag,
		Verbose:         *verboseFlag || *vFlag,
		List:            *listFlag,
		Format:          format,
		EventsURL:       *eventsFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
