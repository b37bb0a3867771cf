package node

import "fmt"

// DestinationConflictError is returned when two nodes of different kinds
// claim the same destination.
type DestinationConflictError struct {
	Dest      string
	Existing  Kind
	Requested Kind
}

func (e *DestinationConflictError) Error() string {
	return fmt.Sprintf("destination %q is already used by an %s node, cannot add %s", e.Dest, e.Existing, e.Requested)
}

// SourceConflictError is returned when two different compilations would
// write the same object file.
type SourceConflictError struct {
	Dest      string
	Existing  string
	Requested string
}

func (e *SourceConflictError) Error() string {
	return fmt.Sprintf("object %q is already compiled from %s, cannot compile %s into it", e.Dest, e.Existing, e.Requested)
}

// InvalidEdgeError is returned for an edge the graph shape does not allow,
// such as an executable depending on a bare object.
type InvalidEdgeError struct {
	From Kind
	To   Kind
}

func (e *InvalidEdgeError) Error() string {
	return fmt.Sprintf("an %s node cannot depend on an %s node", e.From, e.To)
}

// CycleError is returned when an archive edge would close a cycle.
type CycleError struct {
	From string
	To   string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("adding %s -> %s would create a cycle", e.From, e.To)
}
