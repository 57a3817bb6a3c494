package check

import (
	"fmt"

	"github.com/synapse-lang/synapsec/internal/checktypes"
	"github.com/synapse-lang/synapsec/internal/graph"
)

// UndefinedVariableError reports a Variable node whose definition does not
// resolve to a typing-context binding (the validator should normally catch
// this first, as a SCOPE diagnostic, but the checker does not assume it ran).
type UndefinedVariableError struct {
	NodeID graph.NodeID
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable at node %d", e.NodeID)
}

// ApplicationMismatchError reports a Deref/Assign whose target did not infer
// to a Ref, a TypeApp whose target did not infer to a ForAll, or a DataMatch
// whose scrutinee did not infer to an ADT. An Application whose callee does
// not unify with a Fn reports the unification error instead.
type ApplicationMismatchError struct {
	NodeID graph.NodeID
}

func (e *ApplicationMismatchError) Error() string {
	return fmt.Sprintf("application type mismatch at node %d", e.NodeID)
}

// NonExhaustiveMatchError reports a DataMatch missing a wildcard arm and at
// least one constructor of the scrutinee's ADT.
type NonExhaustiveMatchError struct {
	ADTName string
	Missing []string
}

func (e *NonExhaustiveMatchError) Error() string {
	return fmt.Sprintf("non-exhaustive match on %s: missing %v", e.ADTName, e.Missing)
}

// ConstructorArityMismatchError reports a DataCtor applied with a number of
// arguments that does not match its declaration.
type ConstructorArityMismatchError struct {
	CtorName string
	Expected int
	Got      int
}

func (e *ConstructorArityMismatchError) Error() string {
	return fmt.Sprintf("constructor %s expects %d argument(s), got %d", e.CtorName, e.Expected, e.Got)
}

// UnimplementedError reports a node kind the checker does not (yet) assign a
// type to, distinct from a well-formed but ill-typed node.
type UnimplementedError struct {
	NodeID graph.NodeID
	Reason string
}

func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("unimplemented at node %d: %s", e.NodeID, e.Reason)
}

// EffectNotAllowedError reports an EffectPerform label outside the caller's
// allowed-effects set.
type EffectNotAllowedError struct {
	Label string
}

func (e *EffectNotAllowedError) Error() string {
	return fmt.Sprintf("effect not allowed: %s", e.Label)
}

// wrapUnify adapts a checktypes unification error to include the node that
// triggered it, without losing the underlying error for errors.As callers.
func wrapUnify(nodeID graph.NodeID, err error) error {
	if err == nil {
		return nil
	}
	switch err.(type) {
	case *checktypes.UnificationFailError, *checktypes.OccursCheckError:
		return fmt.Errorf("node %d: %w", nodeID, err)
	default:
		return err
	}
}
