package graph

import "fmt"

// NodeNotFoundError is returned whenever an operation references a NodeID
// absent from the graph's node table.
type NodeNotFoundError struct {
	ID NodeID
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("graph: node %d not found", e.ID)
}

// NodeTypeMismatchError is returned by the typed accessors (GetVariable,
// GetLambda, ...) when a NodeID resolves but to a different Kind than
// requested.
type NodeTypeMismatchError struct {
	ID       NodeID
	Expected Kind
	Found    Kind
}

func (e *NodeTypeMismatchError) Error() string {
	return fmt.Sprintf("graph: node %d: expected %s, found %s", e.ID, e.Expected, e.Found)
}

// IntegrityError reports a structural invariant violation detected while
// mutating the graph (as opposed to the validator's read-only diagnostics,
// which report violations found in an already-built graph).
type IntegrityError struct {
	Msg string
}

func (e *IntegrityError) Error() string {
	return "graph: integrity violation: " + e.Msg
}
