package config

import (
	"fmt"
	"strings"
)

// ValidationError reports a configuration value that breaks a rule.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// UnknownTargetError lists requested targets the configuration does not declare.
type UnknownTargetError struct {
	Names []string
}

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("unknown target(s): %s", strings.Join(e.Names, ", "))
}
