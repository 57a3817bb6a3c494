package check

import (
	"fmt"

	"github.com/synapse-lang/synapsec/internal/checktypes"
	"github.com/synapse-lang/synapsec/internal/graph"
)

// structuralToType converts a source-level TypeNode into the checker's
// internal Type representation. adtParams, when non-nil, supplies the
// checktypes.Type each StructuralVar index denotes — used while checking a
// DataCtor or DataMatch arm against a parameterized ADT's field types; a nil
// adtParams falls back to treating the VarID as a checktypes.Var directly,
// which is correct for a TypeAbs-scoped annotation.
func structuralToType(g *graph.Graph, id graph.NodeID, adtParams []*checktypes.Type) (*checktypes.Type, error) {
	n, err := g.MustGet(id)
	if err != nil {
		return nil, err
	}
	shape, ok := n.Payload.(graph.TypeNodePayload)
	if !ok {
		return nil, fmt.Errorf("node %d is not a TypeNode", id)
	}
	s := shape.Shape
	switch s.Tag {
	case graph.StructuralInt:
		return checktypes.Int(), nil
	case graph.StructuralBool:
		return checktypes.Bool(), nil
	case graph.StructuralUnit:
		return checktypes.Unit(), nil
	case graph.StructuralFn:
		param, err := structuralToType(g, s.Param, adtParams)
		if err != nil {
			return nil, err
		}
		result, err := structuralToType(g, s.Result, adtParams)
		if err != nil {
			return nil, err
		}
		return checktypes.Fn(param, result), nil
	case graph.StructuralRef:
		elem, err := structuralToType(g, s.Elem, adtParams)
		if err != nil {
			return nil, err
		}
		return checktypes.RefOf(elem), nil
	case graph.StructuralADT:
		args := make([]*checktypes.Type, len(s.ADTArgs))
		for i, a := range s.ADTArgs {
			t, err := structuralToType(g, a, adtParams)
			if err != nil {
				return nil, err
			}
			args[i] = t
		}
		return checktypes.ADT(s.ADTName, args), nil
	case graph.StructuralVar:
		if adtParams != nil {
			if int(s.VarID) < len(adtParams) {
				return adtParams[s.VarID], nil
			}
			return nil, fmt.Errorf("type parameter index %d out of range (%d params)", s.VarID, len(adtParams))
		}
		return checktypes.VarType(checktypes.Var(s.VarID)), nil
	default:
		return nil, fmt.Errorf("node %d has an invalid structural type tag", id)
	}
}
