// Package config defines the format-agnostic project model (package
// identity, settings and the ordered list of targets) together with the
// Loader interface implemented by the HCL and TOML front ends.
//
// The Model is the single source of truth for the builder and the app.
// Loaders are expected to call Validate before returning a Model.
package config
