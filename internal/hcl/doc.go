// Package hcl provides the HCL implementation of config.Loader.
//
// A project is described by litemake.hcl in the project directory, plus
// optional fragments named *.litemake.hcl which are read after it in name
// order. Targets keep their declaration order across files, so the first
// target of litemake.hcl is the default target.
//
//	package "demo" {
//	  version { major = 1 }
//	}
//	settings {
//	  compiler = lower(env.CC)
//	}
//	target "build" {
//	  sources = ["src/**/*.c"]
//	  include = ["include"]
//	}
//
// Expressions may read the process environment through the env object and
// call upper, lower, format, concat and join.
package hcl
