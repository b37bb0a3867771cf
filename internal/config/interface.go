package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the project configuration found in dir, translates it into
	// the format-agnostic model and validates it.
	Load(ctx context.Context, dir string) (*Model, error)
}
