package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/litemake/internal/report"
)

// Version is the release label printed by --version. It is set at link time.
var Version = "dev"

// ErrBuildFailed is returned by Run when any node failed or any requested
// target could not be turned into a graph.
var ErrBuildFailed = errors.New("build failed")

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Dir     string   // project directory
	Targets []string // requested target names; empty selects the default target

	Compiler string // overrides the project's compiler setting
	Workers  int
	Verbose  bool
	List     bool
	Format   report.Format

	EventsURL       string
	HealthcheckPort int
	LogFormat       string
	LogLevel        string
}

// NewConfig validates cfg and fills defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	if cfg.Format == "" {
		cfg.Format = report.Text
	}
	if _, err := report.ParseFormat(string(cfg.Format)); err != nil {
		return nil, err
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("healthcheck-port out of range: %d", cfg.HealthcheckPort)
	}
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	return &cfg, nil
}
