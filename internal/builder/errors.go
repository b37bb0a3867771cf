package builder

import (
	"fmt"
	"strings"
)

// NoSourcesError reports a target whose source globs matched no file.
type NoSourcesError struct {
	Target   string
	Patterns []string
}

func (e *NoSourcesError) Error() string {
	return fmt.Sprintf("target %q has no source files matching [%s]", e.Target, strings.Join(e.Patterns, ", "))
}
