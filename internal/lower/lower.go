package lower

import (
	"fmt"

	"github.com/synapse-lang/synapsec/internal/check"
	"github.com/synapse-lang/synapsec/internal/checktypes"
	"github.com/synapse-lang/synapsec/internal/graph"
	"github.com/synapse-lang/synapsec/internal/upir"
)

// LoweringContext carries one Lower invocation's mutable state: the source
// graph and its checked types/effects, the module under construction, the
// type-interning table, and the counters that keep value/block ids unique
// within the module (mirrors asg_to_upir::LoweringContext's role, extended
// to cover every translation rule rather than just core.match).
type LoweringContext struct {
	g       *graph.Graph
	types   check.TypeMap
	effects check.EffectMap

	module    *upir.Module
	typeTable *typeTable

	// binderFirstUse records, for every binder NodeID, the type recovered
	// from its first referencing Variable node's checked type. Lambda and
	// match-arm binders are monomorphic at every use except a let-bound
	// binder generalized by internal/check's let-polymorphism special
	// case (SPEC_FULL.md §4.5.2); lowering picks the first instantiation
	// and reuses it at every use site, a documented simplification (see
	// DESIGN.md's monomorphization-at-lowering-boundary decision).
	binderFirstUse map[graph.NodeID]*checktypes.Type

	// binderValue holds the live SSA value a binder is currently bound to.
	// Keyed by the unique binder NodeID, so no explicit scope push/pop is
	// needed: distinct bindings never share a NodeID.
	binderValue map[graph.NodeID]upir.ValueID

	// lambdaBinder holds, for a let-bound binder whose argument is itself a
	// Lambda (let f = λx. ... in ... f(e) ...), the argument Lambda's NodeID.
	// inferApplication's let-polymorphism rule (internal/check) types this
	// exactly like any other let binding, but the argument is never lowered
	// to an SSA value here: it has no first-class representation in UPIR, so
	// the only legal use of such a binder is as a call target, resolved by
	// calleeNameFor through this map instead of through binderValue.
	lambdaBinder map[graph.NodeID]graph.NodeID

	lambdaName map[graph.NodeID]string
	pending    []pendingLambda

	valueSeq upir.ValueID
	blockSeq upir.BlockID
}

type pendingLambda struct {
	name string
	id   graph.NodeID
}

// Lower translates g, already processed by internal/check (types and
// effects supply every node's inferred type and effect set), into a UPIR
// module named "main". The graph's root becomes the module's entry
// function, also named "main"; nested lambdas used as direct call targets
// are lifted into their own top-level functions named "lambda_<nodeid>".
func Lower(g *graph.Graph, types check.TypeMap, effects check.EffectMap) (*upir.Module, error) {
	if g.Root().IsZero() {
		return nil, check.ErrNoRoot
	}

	lc := &LoweringContext{
		g:              g,
		types:          types,
		effects:        effects,
		module:         upir.NewModule("main"),
		binderFirstUse: make(map[graph.NodeID]*checktypes.Type),
		binderValue:    make(map[graph.NodeID]upir.ValueID),
		lambdaBinder:   make(map[graph.NodeID]graph.NodeID),
		lambdaName:     make(map[graph.NodeID]string),
	}
	lc.typeTable = newTypeTable(lc.module)

	for _, id := range g.NodeIDs() {
		n, ok := g.Get(id)
		if !ok {
			continue
		}
		v, ok := n.Payload.(graph.VariablePayload)
		if !ok || v.Definition.IsZero() {
			continue
		}
		if t, ok := types[id]; ok {
			if _, seen := lc.binderFirstUse[v.Definition]; !seen {
				lc.binderFirstUse[v.Definition] = t
			}
		}
	}

	if err := lc.lowerFunction("main", g.Root()); err != nil {
		return nil, err
	}
	for len(lc.pending) > 0 {
		next := lc.pending[0]
		lc.pending = lc.pending[1:]
		if err := lc.lowerFunction(next.name, next.id); err != nil {
			return nil, err
		}
	}
	return lc.module, nil
}

func (lc *LoweringContext) nextValue() upir.ValueID {
	lc.valueSeq++
	return lc.valueSeq
}

func (lc *LoweringContext) nextBlock() upir.BlockID {
	lc.blockSeq++
	return lc.blockSeq
}

func (lc *LoweringContext) effectsFor(id graph.NodeID) []string {
	return lc.effects[id]
}

// lowerFunction builds the top-level Function named name from the node id:
// when id names a Lambda directly, its binder becomes the sole function
// argument and its body the function's computation; otherwise id is lowered
// as a zero-argument function body (the graph root case when the root
// isn't itself a lambda).
func (lc *LoweringContext) lowerFunction(name string, id graph.NodeID) error {
	n, err := lc.g.MustGet(id)
	if err != nil {
		return err
	}

	fn := &upir.Function{Name: name}
	fb := &funcBuilder{
		lc:      lc,
		fn:      fn,
		valueOf: make(map[graph.NodeID]upir.ValueID),
		typeOf:  make(map[graph.NodeID]upir.TypeID),
		block:   &upir.Block{ID: lc.nextBlock()},
	}

	bodyID := id
	if lam, ok := n.Payload.(graph.LambdaPayload); ok {
		fnTy, ok := lc.types[id]
		if !ok || fnTy.Tag != checktypes.TFn {
			return &UntypedNodeError{NodeID: id}
		}
		argTypeID, err := lc.typeTable.intern(fnTy.Param)
		if err != nil {
			return err
		}
		argValue := lc.nextValue()
		fb.block.Args = append(fb.block.Args, upir.BlockArgument{Value: argValue, Type: argTypeID})
		fn.Signature.ArgTypes = append(fn.Signature.ArgTypes, argTypeID)
		lc.binderValue[lam.Binder] = argValue
		bodyID = lam.Body
	}

	resultValue, resultTypeID, err := fb.lowerExpr(bodyID)
	if err != nil {
		return err
	}
	fn.Signature.ResultTypes = []upir.TypeID{resultTypeID}
	fb.emit(&upir.Operation{Name: upir.OpReturn, Operands: []upir.ValueID{resultValue}})
	fb.flushBlock()
	fn.Regions = []*upir.Region{{Blocks: fb.blocks}}

	lc.module.Functions = append(lc.module.Functions, fn)
	return nil
}

// calleeNameFor resolves fnID to the name of a top-level function suitable
// as func.call's callee attribute: fnID may be a Lambda (lifted on demand)
// or a Variable chain terminating at one. Any other shape — most
// importantly, an expression that merely produces a function-typed value
// (a higher-order parameter, a returned closure) — isn't resolvable,
// because UPIR has no first-class function value representation yet.
func (lc *LoweringContext) calleeNameFor(fnID graph.NodeID) (string, bool, error) {
	if lamID, ok := lc.lambdaBinder[fnID]; ok {
		return lc.calleeNameFor(lamID)
	}
	n, err := lc.g.MustGet(fnID)
	if err != nil {
		return "", false, err
	}
	switch p := n.Payload.(type) {
	case graph.LambdaPayload:
		name, err := lc.liftLambda(fnID, p)
		if err != nil {
			return "", false, err
		}
		return name, true, nil
	case graph.VariablePayload:
		if p.Definition.IsZero() {
			return "", false, nil
		}
		return lc.calleeNameFor(p.Definition)
	default:
		return "", false, nil
	}
}

func (lc *LoweringContext) liftLambda(id graph.NodeID, lam graph.LambdaPayload) (string, error) {
	if name, ok := lc.lambdaName[id]; ok {
		return name, nil
	}
	if fv, found := lambdaFreeVariable(lc.g, lam.Binder, lam.Body); found {
		return "", &UnimplementedError{NodeID: fv,
			Reason: "closure environment capture is not implemented; the referenced binder is free in a lambda used as a call target"}
	}
	name := fmt.Sprintf("lambda_%d", id)
	lc.lambdaName[id] = name
	lc.pending = append(lc.pending, pendingLambda{name: name, id: id})
	return name, nil
}

// registerCtor records one constructor's field layout on first encounter so
// internal/upirtext can print a core.match's arms by field name instead of
// bare positional types.
func (lc *LoweringContext) registerCtor(dataName, ctorName string, fieldTypes []upir.TypeID) {
	for i, d := range lc.module.DatatypeDecls {
		if d.Name != dataName {
			continue
		}
		for _, c := range d.Ctors {
			if c.Name == ctorName {
				return
			}
		}
		lc.module.DatatypeDecls[i].Ctors = append(lc.module.DatatypeDecls[i].Ctors, upir.CtorSig{Name: ctorName, FieldTypes: fieldTypes})
		return
	}
	lc.module.DatatypeDecls = append(lc.module.DatatypeDecls, upir.DatatypeDecl{
		Name:  dataName,
		Ctors: []upir.CtorSig{{Name: ctorName, FieldTypes: fieldTypes}},
	})
}

// lambdaFreeVariable walks body looking for a Variable whose Definition is
// neither binder nor a name bound inside the walked subtree (a nested
// lambda's own binder, or a match arm's pattern binders). The first such
// reference is reported so the caller can produce a precise error instead
// of a blanket "closures unsupported".
func lambdaFreeVariable(g *graph.Graph, binder, body graph.NodeID) (graph.NodeID, bool) {
	bound := map[graph.NodeID]bool{binder: true}
	visited := map[graph.NodeID]bool{}

	var walk func(id graph.NodeID) (graph.NodeID, bool)
	walk = func(id graph.NodeID) (graph.NodeID, bool) {
		if id.IsZero() || visited[id] {
			return 0, false
		}
		visited[id] = true
		n, ok := g.Get(id)
		if !ok {
			return 0, false
		}
		switch p := n.Payload.(type) {
		case graph.VariablePayload:
			if !p.Definition.IsZero() && !bound[p.Definition] {
				return id, true
			}
			return 0, false
		case graph.LambdaPayload:
			bound[p.Binder] = true
			return walk(p.Body)
		case graph.DataMatchPayload:
			if fv, found := walk(p.Scrutinee); found {
				return fv, true
			}
			for _, arm := range p.Arms {
				for _, b := range arm.Binders {
					bound[b] = true
				}
				if fv, found := walk(arm.Body); found {
					return fv, true
				}
			}
			return 0, false
		default:
			for _, child := range graph.ReferencedIDs(n) {
				if fv, found := walk(child); found {
					return fv, true
				}
			}
			return 0, false
		}
	}
	return walk(body)
}
