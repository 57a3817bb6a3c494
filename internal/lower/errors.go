package lower

import (
	"fmt"

	"github.com/synapse-lang/synapsec/internal/graph"
)

// UnimplementedError is returned when a lowering rule is intentionally
// incomplete (see DESIGN.md's closure-lifting Open Question decision): the
// node is well-typed but this pass has no translation for it yet.
type UnimplementedError struct {
	NodeID graph.NodeID
	Reason string
}

func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("lower: node %d: unimplemented: %s", e.NodeID, e.Reason)
}

// UntypedNodeError is returned when Lower visits a node absent from the
// supplied TypeMap, meaning it was not reached by (or predates) a
// successful internal/check.Check run over the same graph.
type UntypedNodeError struct {
	NodeID graph.NodeID
}

func (e *UntypedNodeError) Error() string {
	return fmt.Sprintf("lower: node %d: no inferred type available", e.NodeID)
}
