// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the build lifecycle: load the project,
// select targets, build one graph per target, drive each graph and report.
// It is decoupled from any specific entrypoint like a CLI.
package app
