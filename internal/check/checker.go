package check

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"

	"github.com/synapse-lang/synapsec/internal/checktypes"
	"github.com/synapse-lang/synapsec/internal/graph"
)

// ErrNoRoot is returned by Check when the graph has no root set.
var ErrNoRoot = errors.New("check: graph has no root")

// TypeMap is the checker's fully-resolved output: every node it visited,
// mapped to its inferred Type with every substitution applied.
type TypeMap map[graph.NodeID]*checktypes.Type

// EffectMap is the checker's effect-label output: every node it visited,
// mapped to the sorted, deduplicated set of effect labels reachable from it.
type EffectMap map[graph.NodeID][]string

type ctorInfo struct {
	dataName   string
	fieldTypes []graph.NodeID
}

// checker carries the mutable state of one Check invocation: it is not
// reused across calls, mirroring the teacher's "construct fresh per call"
// style for one-shot passes.
type checker struct {
	g       *graph.Graph
	fresh   checktypes.FreshCounter
	subst   checktypes.Subst
	env     map[graph.NodeID]checktypes.Scheme
	dataDefs map[string]graph.DataDefPayload
	ctors    map[string]ctorInfo

	rawTypes   map[graph.NodeID]*checktypes.Type
	rawEffects map[graph.NodeID]map[string]struct{}

	allowed map[string]struct{} // nil: no restriction
}

// Check runs the type-and-effect checker over g starting from its root. When
// allowedEffects is non-nil, any effect label outside it fails the check
// with EffectNotAllowedError.
func Check(g *graph.Graph, allowedEffects []string) (TypeMap, EffectMap, error) {
	if g.Root().IsZero() {
		return nil, nil, ErrNoRoot
	}

	c := &checker{
		g:          g,
		subst:      checktypes.Subst{},
		env:        make(map[graph.NodeID]checktypes.Scheme),
		dataDefs:   make(map[string]graph.DataDefPayload),
		ctors:      make(map[string]ctorInfo),
		rawTypes:   make(map[graph.NodeID]*checktypes.Type),
		rawEffects: make(map[graph.NodeID]map[string]struct{}),
	}
	if allowedEffects != nil {
		fold := cases.Fold()
		c.allowed = make(map[string]struct{}, len(allowedEffects))
		for _, e := range allowedEffects {
			c.allowed[fold.String(e)] = struct{}{}
		}
	}

	c.registerDataDefs()

	if _, err := c.infer(g.Root()); err != nil {
		return nil, nil, err
	}

	types := make(TypeMap, len(c.rawTypes))
	for id, t := range c.rawTypes {
		types[id] = c.subst.Apply(t)
	}
	effects := make(EffectMap, len(c.rawEffects))
	for id, set := range c.rawEffects {
		effects[id] = effectList(set)
	}
	return types, effects, nil
}

func (c *checker) registerDataDefs() {
	for _, id := range c.g.NodeIDs() {
		n, ok := c.g.Get(id)
		if !ok {
			continue
		}
		def, ok := n.Payload.(graph.DataDefPayload)
		if !ok {
			continue
		}
		c.dataDefs[def.Name] = def
		for _, ctor := range def.Ctors {
			c.ctors[ctor.Name] = ctorInfo{dataName: def.Name, fieldTypes: ctor.FieldTypes}
		}
	}
}

// envFreeVars computes the set of unification variables free in the current
// typing context, used to decide which variables Generalize may close over.
func (c *checker) envFreeVars() map[checktypes.Var]struct{} {
	out := make(map[checktypes.Var]struct{})
	for _, scheme := range c.env {
		free := checktypes.FreeVars(c.subst.Apply(scheme.Body))
		bound := make(map[checktypes.Var]struct{}, len(scheme.Vars))
		for _, v := range scheme.Vars {
			bound[v] = struct{}{}
		}
		for v := range free {
			if _, isBound := bound[v]; !isBound {
				out[v] = struct{}{}
			}
		}
	}
	return out
}

func (c *checker) recordEffects(id graph.NodeID, set map[string]struct{}) (map[string]struct{}, error) {
	if c.allowed != nil {
		fold := cases.Fold()
		for label := range set {
			if _, ok := c.allowed[fold.String(label)]; !ok {
				return nil, &EffectNotAllowedError{Label: label}
			}
		}
	}
	c.rawEffects[id] = set
	return set, nil
}

// infer returns the node's inferred type, memoizing across the DAG so a
// shared sub-expression is type-checked at most once (SPEC_FULL.md §4.5.4).
func (c *checker) infer(id graph.NodeID) (*checktypes.Type, error) {
	if t, ok := c.rawTypes[id]; ok {
		return t, nil
	}

	n, err := c.g.MustGet(id)
	if err != nil {
		return nil, err
	}

	var result *checktypes.Type
	var effects map[string]struct{}

	switch p := n.Payload.(type) {
	case graph.LitIntPayload:
		result, effects = checktypes.Int(), nil

	case graph.LitBoolPayload:
		result, effects = checktypes.Bool(), nil

	case graph.VariablePayload:
		scheme, ok := c.env[p.Definition]
		if !ok {
			return nil, &UndefinedVariableError{NodeID: id}
		}
		result = checktypes.Instantiate(scheme, &c.fresh)

	case graph.LambdaPayload:
		result, effects, err = c.inferLambda(id, p)
		if err != nil {
			return nil, err
		}

	case graph.ApplicationPayload:
		result, effects, err = c.inferApplication(id, p)
		if err != nil {
			return nil, err
		}

	case graph.PrimOpPayload:
		result, effects, err = c.inferPrimOp(id, p)
		if err != nil {
			return nil, err
		}

	case graph.RefPayload:
		inner, err := c.infer(p.Init)
		if err != nil {
			return nil, err
		}
		result = checktypes.RefOf(inner)
		effects = c.rawEffects[p.Init]

	case graph.DerefPayload:
		refTy, err := c.infer(p.Ref)
		if err != nil {
			return nil, err
		}
		elem := c.fresh.FreshType()
		if err := checktypes.Unify(refTy, checktypes.RefOf(elem), c.subst); err != nil {
			return nil, &ApplicationMismatchError{NodeID: id}
		}
		result = c.subst.Apply(elem)
		effects = c.rawEffects[p.Ref]

	case graph.AssignPayload:
		refTy, err := c.infer(p.Ref)
		if err != nil {
			return nil, err
		}
		valTy, err := c.infer(p.Value)
		if err != nil {
			return nil, err
		}
		elem := c.fresh.FreshType()
		if err := checktypes.Unify(refTy, checktypes.RefOf(elem), c.subst); err != nil {
			return nil, &ApplicationMismatchError{NodeID: id}
		}
		if err := checktypes.Unify(elem, valTy, c.subst); err != nil {
			return nil, wrapUnify(id, err)
		}
		result = checktypes.Unit()
		effects = effectUnion(c.rawEffects[p.Ref], c.rawEffects[p.Value])

	case graph.EffectPerformPayload:
		if _, err := c.infer(p.Value); err != nil {
			return nil, err
		}
		result = checktypes.Unit()
		effects = effectUnion(c.rawEffects[p.Value], map[string]struct{}{p.EffectName: {}})

	case graph.TypeAbsPayload:
		result, effects, err = c.inferTypeAbs(id, p)
		if err != nil {
			return nil, err
		}

	case graph.TypeAppPayload:
		result, effects, err = c.inferTypeApp(id, p)
		if err != nil {
			return nil, err
		}

	case graph.DataDefPayload:
		result, effects = checktypes.Unit(), nil

	case graph.DataCtorPayload:
		result, effects, err = c.inferDataCtor(id, p)
		if err != nil {
			return nil, err
		}

	case graph.DataMatchPayload:
		result, effects, err = c.inferDataMatch(id, p)
		if err != nil {
			return nil, err
		}

	default:
		return nil, &UnimplementedError{NodeID: id, Reason: fmt.Sprintf("unsupported node kind %s", n.Kind())}
	}

	if effects == nil {
		effects = map[string]struct{}{}
	}
	if _, err := c.recordEffects(id, effects); err != nil {
		return nil, err
	}
	c.rawTypes[id] = result
	return result, nil
}

func (c *checker) inferLambda(id graph.NodeID, p graph.LambdaPayload) (*checktypes.Type, map[string]struct{}, error) {
	param := c.fresh.FreshType()
	if !p.TypeAnnot.IsZero() {
		annot, err := structuralToType(c.g, p.TypeAnnot, nil)
		if err != nil {
			return nil, nil, err
		}
		if err := checktypes.Unify(param, annot, c.subst); err != nil {
			return nil, nil, wrapUnify(id, err)
		}
	}
	c.env[p.Binder] = checktypes.Monomorphic(param)
	bodyTy, err := c.infer(p.Body)
	if err != nil {
		return nil, nil, err
	}
	// The binder goes out of scope with the body; leaving it in env would
	// keep its type variables from ever being generalized.
	delete(c.env, p.Binder)
	result := checktypes.Fn(c.subst.Apply(param), bodyTy)
	return result, c.rawEffects[p.Body], nil
}

// inferApplication special-cases "immediately applied lambda" as let:
// (λx. body) e1 generalizes e1's type before binding x, giving
// let-polymorphism without a dedicated Let node kind (SPEC_FULL.md §4.5.2).
func (c *checker) inferApplication(id graph.NodeID, p graph.ApplicationPayload) (*checktypes.Type, map[string]struct{}, error) {
	fnNode, err := c.g.MustGet(p.Function)
	if err != nil {
		return nil, nil, err
	}
	if lam, ok := fnNode.Payload.(graph.LambdaPayload); ok {
		argTy, err := c.infer(p.Argument)
		if err != nil {
			return nil, nil, err
		}
		scheme := checktypes.Generalize(argTy, c.envFreeVars(), c.subst)
		c.env[lam.Binder] = scheme
		bodyTy, err := c.infer(lam.Body)
		if err != nil {
			return nil, nil, err
		}
		effects := effectUnion(c.rawEffects[p.Argument], c.rawEffects[lam.Body])
		c.rawTypes[p.Function] = checktypes.Fn(argTy, bodyTy)
		if _, err := c.recordEffects(p.Function, effects); err != nil {
			return nil, nil, err
		}
		return bodyTy, effects, nil
	}

	fnTy, err := c.infer(p.Function)
	if err != nil {
		return nil, nil, err
	}
	argTy, err := c.infer(p.Argument)
	if err != nil {
		return nil, nil, err
	}
	result := c.fresh.FreshType()
	if err := checktypes.Unify(fnTy, checktypes.Fn(argTy, result), c.subst); err != nil {
		return nil, nil, wrapUnify(id, err)
	}
	return c.subst.Apply(result), effectUnion(c.rawEffects[p.Function], c.rawEffects[p.Argument]), nil
}

func (c *checker) inferPrimOp(id graph.NodeID, p graph.PrimOpPayload) (*checktypes.Type, map[string]struct{}, error) {
	sig, ok := primOpSignatures[p.OpName]
	if !ok {
		return nil, nil, &UnimplementedError{NodeID: id, Reason: fmt.Sprintf("unknown primop %q", p.OpName)}
	}
	if len(p.Args) != sig.arity {
		return nil, nil, &ConstructorArityMismatchError{CtorName: p.OpName, Expected: sig.arity, Got: len(p.Args)}
	}

	argTypes := make([]*checktypes.Type, len(p.Args))
	effectSets := make([]map[string]struct{}, len(p.Args))
	for i, argID := range p.Args {
		t, err := c.infer(argID)
		if err != nil {
			return nil, nil, err
		}
		argTypes[i] = t
		effectSets[i] = c.rawEffects[argID]
	}

	switch {
	case sig.polymorphic:
		shared := c.fresh.FreshType()
		for _, t := range argTypes {
			if err := checktypes.Unify(shared, t, c.subst); err != nil {
				return nil, nil, wrapUnify(id, err)
			}
		}
	case sig.argsInt:
		for _, t := range argTypes {
			if err := checktypes.Unify(t, checktypes.Int(), c.subst); err != nil {
				return nil, nil, wrapUnify(id, err)
			}
		}
	case sig.argsBool:
		for _, t := range argTypes {
			if err := checktypes.Unify(t, checktypes.Bool(), c.subst); err != nil {
				return nil, nil, wrapUnify(id, err)
			}
		}
	}

	return sig.result(&c.fresh), effectUnion(effectSets...), nil
}

func (c *checker) inferTypeAbs(id graph.NodeID, p graph.TypeAbsPayload) (*checktypes.Type, map[string]struct{}, error) {
	params := make([]checktypes.Var, len(p.TypeParams))
	for i, tv := range p.TypeParams {
		params[i] = checktypes.Var(tv)
	}
	bodyTy, err := c.infer(p.Body)
	if err != nil {
		return nil, nil, err
	}
	return checktypes.ForAll(params, bodyTy), c.rawEffects[p.Body], nil
}

func (c *checker) inferTypeApp(id graph.NodeID, p graph.TypeAppPayload) (*checktypes.Type, map[string]struct{}, error) {
	absTy, err := c.infer(p.Abs)
	if err != nil {
		return nil, nil, err
	}
	absTy = c.subst.Apply(absTy)
	if absTy.Tag != checktypes.TForAll {
		return nil, nil, &ApplicationMismatchError{NodeID: id}
	}
	if len(absTy.Params) != len(p.TypeArgs) {
		return nil, nil, &checktypes.ArityMismatchError{Name: "type application", Expected: len(absTy.Params), Got: len(p.TypeArgs)}
	}

	argTypes := make([]*checktypes.Type, len(p.TypeArgs))
	for i, argID := range p.TypeArgs {
		t, err := structuralToType(c.g, argID, nil)
		if err != nil {
			return nil, nil, err
		}
		argTypes[i] = t
	}

	subst := make(checktypes.Subst, len(absTy.Params))
	for i, param := range absTy.Params {
		subst[param] = argTypes[i]
	}
	return subst.Apply(absTy.Body), c.rawEffects[p.Abs], nil
}

func (c *checker) inferDataCtor(id graph.NodeID, p graph.DataCtorPayload) (*checktypes.Type, map[string]struct{}, error) {
	ctor, ok := c.ctors[p.CtorName]
	if !ok || ctor.dataName != p.DataName {
		return nil, nil, &UndefinedVariableError{NodeID: id}
	}
	if len(p.Args) != len(ctor.fieldTypes) {
		return nil, nil, &ConstructorArityMismatchError{CtorName: p.CtorName, Expected: len(ctor.fieldTypes), Got: len(p.Args)}
	}

	def := c.dataDefs[p.DataName]
	paramTypes := make([]*checktypes.Type, len(def.ParamNames))
	for i := range def.ParamNames {
		paramTypes[i] = c.fresh.FreshType()
	}

	effectSets := make([]map[string]struct{}, 0, len(p.Args))
	for i, argID := range p.Args {
		argTy, err := c.infer(argID)
		if err != nil {
			return nil, nil, err
		}
		fieldTy, err := structuralToType(c.g, ctor.fieldTypes[i], paramTypes)
		if err != nil {
			return nil, nil, err
		}
		if err := checktypes.Unify(argTy, fieldTy, c.subst); err != nil {
			return nil, nil, wrapUnify(id, err)
		}
		effectSets = append(effectSets, c.rawEffects[argID])
	}

	resolvedParams := make([]*checktypes.Type, len(paramTypes))
	for i, t := range paramTypes {
		resolvedParams[i] = c.subst.Apply(t)
	}
	return checktypes.ADT(p.DataName, resolvedParams), effectUnion(effectSets...), nil
}

func (c *checker) inferDataMatch(id graph.NodeID, p graph.DataMatchPayload) (*checktypes.Type, map[string]struct{}, error) {
	scrTy, err := c.infer(p.Scrutinee)
	if err != nil {
		return nil, nil, err
	}
	scrTy = c.subst.Apply(scrTy)
	if scrTy.Tag != checktypes.TADT {
		return nil, nil, &ApplicationMismatchError{NodeID: id}
	}

	def, ok := c.dataDefs[scrTy.ADTName]
	if !ok {
		return nil, nil, &UndefinedVariableError{NodeID: id}
	}

	resultVar := c.fresh.FreshType()
	effectSets := []map[string]struct{}{c.rawEffects[p.Scrutinee]}
	usedCtors := make(map[string]struct{})
	hasWildcard := false

	for _, arm := range p.Arms {
		if arm.Wildcard {
			hasWildcard = true
			bodyTy, err := c.infer(arm.Body)
			if err != nil {
				return nil, nil, err
			}
			if err := checktypes.Unify(bodyTy, resultVar, c.subst); err != nil {
				return nil, nil, wrapUnify(arm.Body, err)
			}
			effectSets = append(effectSets, c.rawEffects[arm.Body])
			continue
		}

		ctor, ok := c.ctors[arm.CtorName]
		if !ok || ctor.dataName != scrTy.ADTName {
			return nil, nil, &UndefinedVariableError{NodeID: id}
		}
		if len(arm.Binders) != len(ctor.fieldTypes) {
			return nil, nil, &ConstructorArityMismatchError{CtorName: arm.CtorName, Expected: len(ctor.fieldTypes), Got: len(arm.Binders)}
		}
		usedCtors[arm.CtorName] = struct{}{}

		for i, binder := range arm.Binders {
			fieldTy, err := structuralToType(c.g, ctor.fieldTypes[i], scrTy.ADTArgs)
			if err != nil {
				return nil, nil, err
			}
			c.env[binder] = checktypes.Monomorphic(fieldTy)
		}
		bodyTy, err := c.infer(arm.Body)
		if err != nil {
			return nil, nil, err
		}
		if err := checktypes.Unify(bodyTy, resultVar, c.subst); err != nil {
			return nil, nil, wrapUnify(arm.Body, err)
		}
		effectSets = append(effectSets, c.rawEffects[arm.Body])
	}

	if !hasWildcard {
		var missing []string
		for _, ctor := range def.Ctors {
			if _, used := usedCtors[ctor.Name]; !used {
				missing = append(missing, ctor.Name)
			}
		}
		if len(missing) > 0 {
			return nil, nil, &NonExhaustiveMatchError{ADTName: scrTy.ADTName, Missing: missing}
		}
	}

	return c.subst.Apply(resultVar), effectUnion(effectSets...), nil
}
