package lower

import (
	"fmt"

	"github.com/synapse-lang/synapsec/internal/checktypes"
	"github.com/synapse-lang/synapsec/internal/graph"
	"github.com/synapse-lang/synapsec/internal/upir"
)

// funcBuilder accumulates one function's (or one match arm's) straight-line
// block, memoizing each node's lowered value so a shared sub-expression is
// only emitted once within this block's scope.
type funcBuilder struct {
	lc *LoweringContext
	fn *upir.Function

	blocks []*upir.Block
	block  *upir.Block

	valueOf map[graph.NodeID]upir.ValueID
	typeOf  map[graph.NodeID]upir.TypeID
}

func (fb *funcBuilder) newValue() upir.ValueID {
	return fb.lc.nextValue()
}

func (fb *funcBuilder) emit(op *upir.Operation) {
	fb.block.Operations = append(fb.block.Operations, op)
}

func (fb *funcBuilder) flushBlock() {
	if fb.block != nil {
		fb.blocks = append(fb.blocks, fb.block)
		fb.block = nil
	}
}

// lowerExpr lowers id's value, memoizing by NodeID so a node reachable from
// two different parents in the content graph is computed at most once per
// block scope.
func (fb *funcBuilder) lowerExpr(id graph.NodeID) (upir.ValueID, upir.TypeID, error) {
	if v, ok := fb.valueOf[id]; ok {
		return v, fb.typeOf[id], nil
	}

	n, err := fb.lc.g.MustGet(id)
	if err != nil {
		return 0, 0, err
	}
	checkedTy, ok := fb.lc.types[id]
	if !ok {
		return 0, 0, &UntypedNodeError{NodeID: id}
	}

	var value upir.ValueID
	var typeID upir.TypeID

	switch p := n.Payload.(type) {
	case graph.LitIntPayload:
		typeID, err = fb.lc.typeTable.intern(checkedTy)
		if err != nil {
			return 0, 0, err
		}
		value = fb.newValue()
		fb.emit(&upir.Operation{
			Name: upir.OpConstant, Results: []upir.ValueID{value}, ResultTypes: []upir.TypeID{typeID},
			Attributes: map[string]upir.Attribute{upir.AttrValue: upir.IntAttr(p.Value)},
			EffectTags: fb.lc.effectsFor(id),
		})

	case graph.LitBoolPayload:
		typeID, err = fb.lc.typeTable.intern(checkedTy)
		if err != nil {
			return 0, 0, err
		}
		value = fb.newValue()
		fb.emit(&upir.Operation{
			Name: upir.OpConstant, Results: []upir.ValueID{value}, ResultTypes: []upir.TypeID{typeID},
			Attributes: map[string]upir.Attribute{upir.AttrValue: upir.BoolAttr(p.Value)},
			EffectTags: fb.lc.effectsFor(id),
		})

	case graph.VariablePayload:
		bound, ok := fb.lc.binderValue[p.Definition]
		if !ok {
			return 0, 0, &UnimplementedError{NodeID: id, Reason: "variable reference has no lowered binding in scope"}
		}
		value = bound
		typeID, err = fb.lc.typeTable.intern(checkedTy)
		if err != nil {
			return 0, 0, err
		}

	case graph.PrimOpPayload:
		value, typeID, err = fb.lowerPrimOp(id, p, checkedTy)
		if err != nil {
			return 0, 0, err
		}

	case graph.ApplicationPayload:
		value, typeID, err = fb.lowerApplication(id, p, checkedTy)
		if err != nil {
			return 0, 0, err
		}

	case graph.RefPayload:
		initVal, _, err := fb.lowerExpr(p.Init)
		if err != nil {
			return 0, 0, err
		}
		typeID, err = fb.lc.typeTable.intern(checkedTy)
		if err != nil {
			return 0, 0, err
		}
		value = fb.newValue()
		fb.emit(&upir.Operation{Name: upir.OpAlloc, Operands: []upir.ValueID{initVal}, Results: []upir.ValueID{value},
			ResultTypes: []upir.TypeID{typeID}, EffectTags: fb.lc.effectsFor(id)})

	case graph.DerefPayload:
		refVal, _, err := fb.lowerExpr(p.Ref)
		if err != nil {
			return 0, 0, err
		}
		typeID, err = fb.lc.typeTable.intern(checkedTy)
		if err != nil {
			return 0, 0, err
		}
		value = fb.newValue()
		fb.emit(&upir.Operation{Name: upir.OpLoad, Operands: []upir.ValueID{refVal}, Results: []upir.ValueID{value},
			ResultTypes: []upir.TypeID{typeID}, EffectTags: fb.lc.effectsFor(id)})

	case graph.AssignPayload:
		value, typeID, err = fb.lowerAssign(id, p)
		if err != nil {
			return 0, 0, err
		}

	case graph.EffectPerformPayload:
		if _, _, err := fb.lowerExpr(p.Value); err != nil {
			return 0, 0, err
		}
		typeID, err = fb.lc.typeTable.intern(checktypes.Unit())
		if err != nil {
			return 0, 0, err
		}
		value = fb.newValue()
		fb.emit(&upir.Operation{Name: upir.OpConstant, Results: []upir.ValueID{value}, ResultTypes: []upir.TypeID{typeID},
			Attributes: map[string]upir.Attribute{upir.AttrValue: upir.BoolAttr(false)}, EffectTags: fb.lc.effectsFor(id)})

	case graph.DataCtorPayload:
		value, typeID, err = fb.lowerDataCtor(id, p, checkedTy)
		if err != nil {
			return 0, 0, err
		}

	case graph.DataMatchPayload:
		value, typeID, err = fb.lowerDataMatch(id, p, checkedTy)
		if err != nil {
			return 0, 0, err
		}

	case graph.TypeAbsPayload:
		value, typeID, err = fb.lowerExpr(p.Body)
		if err != nil {
			return 0, 0, err
		}

	case graph.TypeAppPayload:
		value, typeID, err = fb.lowerExpr(p.Abs)
		if err != nil {
			return 0, 0, err
		}

	case graph.LambdaPayload:
		return 0, 0, &UnimplementedError{NodeID: id,
			Reason: "lambda used as a first-class value outside of a call target or function root is not implemented (no closure value representation)"}

	default:
		return 0, 0, &UnimplementedError{NodeID: id, Reason: fmt.Sprintf("no lowering rule for %s", n.Kind())}
	}

	fb.valueOf[id] = value
	fb.typeOf[id] = typeID
	return value, typeID, nil
}

func (fb *funcBuilder) lowerPrimOp(id graph.NodeID, p graph.PrimOpPayload, checkedTy *checktypes.Type) (upir.ValueID, upir.TypeID, error) {
	operands := make([]upir.ValueID, len(p.Args))
	for i, a := range p.Args {
		v, _, err := fb.lowerExpr(a)
		if err != nil {
			return 0, 0, err
		}
		operands[i] = v
	}
	typeID, err := fb.lc.typeTable.intern(checkedTy)
	if err != nil {
		return 0, 0, err
	}

	if p.OpName == "not" {
		trueTypeID, err := fb.lc.typeTable.intern(checktypes.Bool())
		if err != nil {
			return 0, 0, err
		}
		trueVal := fb.newValue()
		fb.emit(&upir.Operation{Name: upir.OpConstant, Results: []upir.ValueID{trueVal}, ResultTypes: []upir.TypeID{trueTypeID},
			Attributes: map[string]upir.Attribute{upir.AttrValue: upir.BoolAttr(true)}})
		value := fb.newValue()
		fb.emit(&upir.Operation{Name: upir.OpXor, Operands: append(operands, trueVal), Results: []upir.ValueID{value},
			ResultTypes: []upir.TypeID{typeID}, EffectTags: fb.lc.effectsFor(id)})
		return value, typeID, nil
	}

	opName, ok := primOpNames[p.OpName]
	if !ok {
		return 0, 0, &UnimplementedError{NodeID: id, Reason: fmt.Sprintf("no lowering for primop %q", p.OpName)}
	}
	op := &upir.Operation{Name: opName, Operands: operands, Results: []upir.ValueID{fb.newValue()},
		ResultTypes: []upir.TypeID{typeID}, EffectTags: fb.lc.effectsFor(id)}
	if opName == upir.OpCmp {
		pred, ok := cmpPredicates[p.OpName]
		if !ok {
			return 0, 0, &UnimplementedError{NodeID: id, Reason: fmt.Sprintf("no comparison predicate for %q", p.OpName)}
		}
		op.Attributes = map[string]upir.Attribute{upir.AttrPredicate: upir.StringAttr(pred)}
	}
	fb.emit(op)
	return op.Results[0], typeID, nil
}

// lowerApplication special-cases an immediately-applied lambda as an inline
// binding, mirroring internal/check's let-polymorphism rule exactly: no
// func.call is emitted, the argument's value is bound directly to the
// lambda's binder and its body is lowered in place.
func (fb *funcBuilder) lowerApplication(id graph.NodeID, p graph.ApplicationPayload, checkedTy *checktypes.Type) (upir.ValueID, upir.TypeID, error) {
	fnNode, err := fb.lc.g.MustGet(p.Function)
	if err != nil {
		return 0, 0, err
	}

	if lam, ok := fnNode.Payload.(graph.LambdaPayload); ok {
		argNode, err := fb.lc.g.MustGet(p.Argument)
		if err != nil {
			return 0, 0, err
		}
		if _, isLambda := argNode.Payload.(graph.LambdaPayload); isLambda {
			// The bound name is itself a function (let f = λx. ... in ...);
			// it has no runtime value in UPIR, only a callee name resolved
			// lazily through lambdaBinder when the body applies it.
			fb.lc.lambdaBinder[lam.Binder] = p.Argument
			return fb.lowerExpr(lam.Body)
		}
		argVal, _, err := fb.lowerExpr(p.Argument)
		if err != nil {
			return 0, 0, err
		}
		fb.lc.binderValue[lam.Binder] = argVal
		return fb.lowerExpr(lam.Body)
	}

	calleeName, ok, err := fb.lc.calleeNameFor(p.Function)
	if err != nil {
		return 0, 0, err
	}
	if !ok {
		return 0, 0, &UnimplementedError{NodeID: id,
			Reason: "indirect call target is not a statically known function (closures are not implemented)"}
	}
	argVal, _, err := fb.lowerExpr(p.Argument)
	if err != nil {
		return 0, 0, err
	}
	typeID, err := fb.lc.typeTable.intern(checkedTy)
	if err != nil {
		return 0, 0, err
	}
	value := fb.newValue()
	fb.emit(&upir.Operation{
		Name: upir.OpCall, Operands: []upir.ValueID{argVal}, Results: []upir.ValueID{value}, ResultTypes: []upir.TypeID{typeID},
		Attributes: map[string]upir.Attribute{upir.AttrCallee: upir.StringAttr(calleeName)},
		EffectTags: fb.lc.effectsFor(id),
	})
	return value, typeID, nil
}

func (fb *funcBuilder) lowerAssign(id graph.NodeID, p graph.AssignPayload) (upir.ValueID, upir.TypeID, error) {
	refVal, _, err := fb.lowerExpr(p.Ref)
	if err != nil {
		return 0, 0, err
	}
	valVal, _, err := fb.lowerExpr(p.Value)
	if err != nil {
		return 0, 0, err
	}
	fb.emit(&upir.Operation{Name: upir.OpStore, Operands: []upir.ValueID{refVal, valVal}, EffectTags: fb.lc.effectsFor(id)})

	unitType, err := fb.lc.typeTable.intern(checktypes.Unit())
	if err != nil {
		return 0, 0, err
	}
	value := fb.newValue()
	fb.emit(&upir.Operation{Name: upir.OpConstant, Results: []upir.ValueID{value}, ResultTypes: []upir.TypeID{unitType},
		Attributes: map[string]upir.Attribute{upir.AttrValue: upir.BoolAttr(false)}})
	return value, unitType, nil
}

// lowerDataCtor represents ADT construction as mem.alloc over the field
// values, tagged by a "value" attribute naming the constructor — the
// dialect has no dedicated construct op (spec.md §4.6 lists only mem.alloc/
// load/store for memory, nothing ADT-specific), so allocation is the
// closest existing primitive to "build a new tagged record".
func (fb *funcBuilder) lowerDataCtor(id graph.NodeID, p graph.DataCtorPayload, checkedTy *checktypes.Type) (upir.ValueID, upir.TypeID, error) {
	fieldValues := make([]upir.ValueID, len(p.Args))
	fieldTypeIDs := make([]upir.TypeID, len(p.Args))
	for i, a := range p.Args {
		v, t, err := fb.lowerExpr(a)
		if err != nil {
			return 0, 0, err
		}
		fieldValues[i] = v
		fieldTypeIDs[i] = t
	}
	typeID, err := fb.lc.typeTable.intern(checkedTy)
	if err != nil {
		return 0, 0, err
	}
	fb.lc.registerCtor(p.DataName, p.CtorName, fieldTypeIDs)

	value := fb.newValue()
	fb.emit(&upir.Operation{
		Name: upir.OpAlloc, Operands: fieldValues, Results: []upir.ValueID{value}, ResultTypes: []upir.TypeID{typeID},
		Attributes: map[string]upir.Attribute{upir.AttrValue: upir.StringAttr(p.CtorName)},
		EffectTags: fb.lc.effectsFor(id),
	})
	return value, typeID, nil
}

// lowerDataMatch emits one nested Region per arm. An arm's entry block
// declares one BlockArgument per constructor field binder; the arm's last
// operation's result is, by convention, the value the arm contributes to
// the match's overall result — there is no separate yield terminator,
// matching the dialect vocabulary spec.md §4.6 lists.
func (fb *funcBuilder) lowerDataMatch(id graph.NodeID, p graph.DataMatchPayload, checkedTy *checktypes.Type) (upir.ValueID, upir.TypeID, error) {
	scrVal, _, err := fb.lowerExpr(p.Scrutinee)
	if err != nil {
		return 0, 0, err
	}
	resultTypeID, err := fb.lc.typeTable.intern(checkedTy)
	if err != nil {
		return 0, 0, err
	}

	regions := make([]*upir.Region, len(p.Arms))
	arms := make([]upir.MatchArmInfo, len(p.Arms))
	for i, arm := range p.Arms {
		sub := &funcBuilder{
			lc: fb.lc, fn: fb.fn,
			valueOf: make(map[graph.NodeID]upir.ValueID),
			typeOf:  make(map[graph.NodeID]upir.TypeID),
			block:   &upir.Block{ID: fb.lc.nextBlock()},
		}

		binderValues := make([]upir.ValueID, len(arm.Binders))
		for j, binder := range arm.Binders {
			fieldTy, ok := fb.lc.binderFirstUse[binder]
			if !ok {
				return 0, 0, &UnimplementedError{NodeID: binder, Reason: "match binder type cannot be determined (binder is never referenced in its arm body)"}
			}
			fieldTypeID, err := fb.lc.typeTable.intern(fieldTy)
			if err != nil {
				return 0, 0, err
			}
			argVal := fb.lc.nextValue()
			sub.block.Args = append(sub.block.Args, upir.BlockArgument{Value: argVal, Type: fieldTypeID})
			binderValues[j] = argVal
			fb.lc.binderValue[binder] = argVal
		}

		if _, _, err := sub.lowerExpr(arm.Body); err != nil {
			return 0, 0, err
		}
		sub.flushBlock()
		regions[i] = &upir.Region{Blocks: sub.blocks}

		ctorName := arm.CtorName
		if arm.Wildcard {
			ctorName = "_"
		}
		arms[i] = upir.MatchArmInfo{CtorName: ctorName, BinderValues: binderValues}
	}

	value := fb.newValue()
	fb.emit(&upir.Operation{
		Name: upir.OpMatch, Operands: []upir.ValueID{scrVal}, Results: []upir.ValueID{value}, ResultTypes: []upir.TypeID{resultTypeID},
		Regions: regions, MatchArms: arms, EffectTags: fb.lc.effectsFor(id),
	})
	return value, resultTypeID, nil
}
