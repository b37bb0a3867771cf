package node

import "fmt"

// Status is the resolution of a node within one build run. It is stored
// outside the graph, keyed by ID.
type Status int

const (
	// StatusPending means the node has not been resolved yet.
	StatusPending Status = iota
	// StatusPassed means the artifact was generated.
	StatusPassed
	// StatusSkipped means generation was not attempted because something below failed.
	StatusSkipped
	// StatusFailed means the toolchain call for the node failed.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusPassed:
		return "passed"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText renders the status by name in json and yaml output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Priority orders statuses when a group must be summarised by its worst
// member: Passed < Skipped < Failed.
func (s Status) Priority() int {
	switch s {
	case StatusPassed:
		return 0
	case StatusSkipped:
		return 128
	case StatusFailed:
		return 256
	default:
		return -1
	}
}

// Resolved reports whether s is terminal.
func (s Status) Resolved() bool {
	return s == StatusPassed || s == StatusSkipped || s == StatusFailed
}

// Worst returns the highest-priority status, or StatusPending for none.
func Worst(statuses ...Status) Status {
	worst := StatusPending
	for _, s := range statuses {
		if s.Priority() > worst.Priority() {
			worst = s
		}
	}
	return worst
}
