package graph

// ReferencedIDs returns every non-zero NodeID mentioned by n's payload, in a
// stable order. The validator uses it to check referential integrity, and
// internal/lower's free-variable walk uses it to descend into node kinds it
// has no special case for. Variable's Definition is included, as an edge
// from use to binder, even though it is logically a back-reference.
func ReferencedIDs(n *Node) []NodeID {
	if n == nil {
		return nil
	}
	var ids []NodeID
	push := func(id NodeID) {
		if !id.IsZero() {
			ids = append(ids, id)
		}
	}
	switch p := n.Payload.(type) {
	case VariablePayload:
		push(p.Definition)
	case LambdaPayload:
		push(p.Binder)
		push(p.Body)
		push(p.TypeAnnot)
	case ApplicationPayload:
		push(p.Function)
		push(p.Argument)
	case LitIntPayload, LitBoolPayload:
		// no references
	case PrimOpPayload:
		for _, a := range p.Args {
			push(a)
		}
	case RefPayload:
		push(p.Init)
	case DerefPayload:
		push(p.Ref)
	case AssignPayload:
		push(p.Ref)
		push(p.Value)
	case EffectPerformPayload:
		push(p.Value)
	case TypeAbsPayload:
		push(p.Body)
	case TypeAppPayload:
		push(p.Abs)
		for _, a := range p.TypeArgs {
			push(a)
		}
	case DataDefPayload:
		for _, c := range p.Ctors {
			for _, f := range c.FieldTypes {
				push(f)
			}
		}
	case DataCtorPayload:
		for _, a := range p.Args {
			push(a)
		}
	case DataMatchPayload:
		push(p.Scrutinee)
		for _, arm := range p.Arms {
			for _, b := range arm.Binders {
				push(b)
			}
			push(arm.Body)
		}
	case TypeNodePayload:
		push(p.Shape.Param)
		push(p.Shape.Result)
		push(p.Shape.Elem)
		for _, a := range p.Shape.ADTArgs {
			push(a)
		}
	case MetadataPayload:
		push(p.Target)
		for _, a := range p.Annotations {
			push(a)
		}
	}
	return ids
}

// IsBinder reports whether n can serve as the target of a Variable's
// Definition field: a Lambda, a TypeAbs, or a Variable node used as a Match
// arm's pattern binder (recognized structurally — see DataMatchPayload).
func IsBinder(n *Node) bool {
	return n != nil && n.Kind().IsBinderCandidate()
}
