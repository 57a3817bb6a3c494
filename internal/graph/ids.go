package graph

// NodeID identifies a Node within a Graph. The zero value means "null / not
// set": free variables use it for Definition, unset TypeAnnot fields use it,
// and so on.
type NodeID uint64

// TypeVarID identifies a rank-1 universally quantified type parameter
// introduced by a TypeAbs node. Type variable ids live in their own
// namespace, distinct from NodeID. The checker uses a TypeVarID's value
// directly as a checktypes.Var, the same number space its fresh unification
// variables are drawn from.
type TypeVarID uint64

// IsZero reports whether id is the reserved null id.
func (id NodeID) IsZero() bool { return id == 0 }
