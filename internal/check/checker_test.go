package check

import (
	"errors"
	"testing"

	"github.com/synapse-lang/synapsec/internal/checktypes"
	"github.com/synapse-lang/synapsec/internal/graph"
)

// buildIdentity builds λx:Int. x
func buildIdentity(t *testing.T) (*graph.Graph, graph.NodeID) {
	t.Helper()
	g := graph.New()
	intTy := g.Insert(graph.TypeNodePayload{Shape: graph.StructuralType{Tag: graph.StructuralInt}})
	binder := g.Insert(graph.VariablePayload{Name: "x"})
	body := g.Insert(graph.VariablePayload{Name: "x", Definition: binder})
	lam := g.Insert(graph.LambdaPayload{Binder: binder, Body: body, TypeAnnot: intTy})
	_ = g.SetRoot(lam)
	return g, lam
}

func TestCheckIdentityLambda(t *testing.T) {
	g, root := buildIdentity(t)
	types, _, err := Check(g, nil)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	want := checktypes.Fn(checktypes.Int(), checktypes.Int())
	if !types[root].Equal(want) {
		t.Errorf("root type = %s, want %s", types[root], want)
	}
}

// buildAddOne builds λx. +(x, 1); x is inferred as Int from the +.
func buildAddOne() (*graph.Graph, graph.NodeID) {
	g := graph.New()
	binder := g.Insert(graph.VariablePayload{Name: "x"})
	xRef := g.Insert(graph.VariablePayload{Name: "x", Definition: binder})
	one := g.Insert(graph.LitIntPayload{Value: 1})
	add := g.Insert(graph.PrimOpPayload{OpName: "+", Args: []graph.NodeID{xRef, one}})
	lam := g.Insert(graph.LambdaPayload{Binder: binder, Body: add})
	_ = g.SetRoot(lam)
	return g, lam
}

func TestCheckAddOne(t *testing.T) {
	g, root := buildAddOne()
	types, _, err := Check(g, nil)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	want := checktypes.Fn(checktypes.Int(), checktypes.Int())
	if !types[root].Equal(want) {
		t.Errorf("root type = %s, want %s", types[root], want)
	}
}

// buildApplication builds (λx:Int. +(x,1))(42)
func buildApplication() (*graph.Graph, graph.NodeID) {
	g, lam := buildAddOne()
	arg := g.Insert(graph.LitIntPayload{Value: 42})
	app := g.Insert(graph.ApplicationPayload{Function: lam, Argument: arg})
	_ = g.SetRoot(app)
	return g, app
}

func TestCheckApplicationResultIsInt(t *testing.T) {
	g, root := buildApplication()
	types, _, err := Check(g, nil)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !types[root].Equal(checktypes.Int()) {
		t.Errorf("root type = %s, want Int", types[root])
	}
}

func TestCheckTypeMismatch(t *testing.T) {
	g := graph.New()
	one := g.Insert(graph.LitIntPayload{Value: 1})
	tru := g.Insert(graph.LitBoolPayload{Value: true})
	add := g.Insert(graph.PrimOpPayload{OpName: "+", Args: []graph.NodeID{one, tru}})
	_ = g.SetRoot(add)

	_, _, err := Check(g, nil)
	var unifyErr *checktypes.UnificationFailError
	if !errors.As(err, &unifyErr) {
		t.Fatalf("Check error = %v, want *UnificationFailError", err)
	}
}

func buildOptionMatch(includeNone bool) *graph.Graph {
	g := graph.New()
	intTy := g.Insert(graph.TypeNodePayload{Shape: graph.StructuralType{Tag: graph.StructuralInt}})
	g.InsertWithID(100, graph.DataDefPayload{
		Name: "Option",
		Ctors: []graph.CtorDecl{
			{Name: "Some", FieldTypes: []graph.NodeID{intTy}},
			{Name: "None"},
		},
	})
	payload := g.Insert(graph.LitIntPayload{Value: 7})
	scrutinee := g.Insert(graph.DataCtorPayload{DataName: "Option", CtorName: "Some", Args: []graph.NodeID{payload}})

	binder := g.Insert(graph.VariablePayload{Name: "n"})
	someBody := g.Insert(graph.VariablePayload{Name: "n", Definition: binder})
	arms := []graph.MatchArm{
		{CtorName: "Some", Binders: []graph.NodeID{binder}, Body: someBody},
	}
	if includeNone {
		zero := g.Insert(graph.LitIntPayload{Value: 0})
		arms = append(arms, graph.MatchArm{CtorName: "None", Body: zero})
	}
	match := g.Insert(graph.DataMatchPayload{Scrutinee: scrutinee, Arms: arms})
	_ = g.SetRoot(match)
	return g
}

func TestCheckExhaustiveMatch(t *testing.T) {
	g := buildOptionMatch(true)
	types, _, err := Check(g, nil)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !types[g.Root()].Equal(checktypes.Int()) {
		t.Errorf("root type = %s, want Int", types[g.Root()])
	}
}

func TestCheckNonExhaustiveMatch(t *testing.T) {
	g := buildOptionMatch(false)
	_, _, err := Check(g, nil)
	var nonExhaustive *NonExhaustiveMatchError
	if !errors.As(err, &nonExhaustive) {
		t.Fatalf("Check error = %v, want *NonExhaustiveMatchError", err)
	}
	if nonExhaustive.ADTName != "Option" {
		t.Errorf("ADTName = %q, want Option", nonExhaustive.ADTName)
	}
}

func TestCheckEffectAllowed(t *testing.T) {
	g := graph.New()
	val := g.Insert(graph.LitIntPayload{Value: 42})
	perform := g.Insert(graph.EffectPerformPayload{EffectName: "IO", Value: val})
	_ = g.SetRoot(perform)

	_, effects, err := Check(g, []string{"IO"})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	found := false
	for _, e := range effects[perform] {
		if e == "IO" {
			found = true
		}
	}
	if !found {
		t.Errorf("effects[%d] = %v, want to contain IO", perform, effects[perform])
	}
}

func TestCheckEffectAllowedCaseInsensitive(t *testing.T) {
	g := graph.New()
	val := g.Insert(graph.LitIntPayload{Value: 42})
	perform := g.Insert(graph.EffectPerformPayload{EffectName: "IO", Value: val})
	_ = g.SetRoot(perform)

	_, _, err := Check(g, []string{"io"})
	if err != nil {
		t.Fatalf("Check: %v, want effect label comparison to fold case", err)
	}
}

func TestCheckEffectNotAllowed(t *testing.T) {
	g := graph.New()
	val := g.Insert(graph.LitIntPayload{Value: 42})
	perform := g.Insert(graph.EffectPerformPayload{EffectName: "IO", Value: val})
	_ = g.SetRoot(perform)

	_, _, err := Check(g, []string{"Pure"})
	var notAllowed *EffectNotAllowedError
	if !errors.As(err, &notAllowed) {
		t.Fatalf("Check error = %v, want *EffectNotAllowedError", err)
	}
}

func TestCheckLetPolymorphism(t *testing.T) {
	// let id = λy. y in (let _ = id true in id 1): the let-bound identity
	// function is used at Bool and then at Int in the same body, which only
	// checks if its parameter is generalized rather than unified
	// monomorphically with the first use's argument type.
	g := graph.New()
	idBinder := g.Insert(graph.VariablePayload{Name: "id"})
	idArgBinder := g.Insert(graph.VariablePayload{Name: "y"})
	idBody := g.Insert(graph.VariablePayload{Name: "y", Definition: idArgBinder})
	idLambda := g.Insert(graph.LambdaPayload{Binder: idArgBinder, Body: idBody})

	idRefForBool := g.Insert(graph.VariablePayload{Name: "id", Definition: idBinder})
	boolArg := g.Insert(graph.LitBoolPayload{Value: true})
	appBool := g.Insert(graph.ApplicationPayload{Function: idRefForBool, Argument: boolArg})

	idRefForInt := g.Insert(graph.VariablePayload{Name: "id", Definition: idBinder})
	intArg := g.Insert(graph.LitIntPayload{Value: 1})
	appInt := g.Insert(graph.ApplicationPayload{Function: idRefForInt, Argument: intArg})

	ignoreBinder := g.Insert(graph.VariablePayload{Name: "_"})
	seqLambda := g.Insert(graph.LambdaPayload{Binder: ignoreBinder, Body: appInt})
	seq := g.Insert(graph.ApplicationPayload{Function: seqLambda, Argument: appBool})

	letLambda := g.Insert(graph.LambdaPayload{Binder: idBinder, Body: seq})
	app := g.Insert(graph.ApplicationPayload{Function: letLambda, Argument: idLambda})
	_ = g.SetRoot(app)

	types, _, err := Check(g, nil)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !types[app].Equal(checktypes.Int()) {
		t.Errorf("root type = %s, want Int", types[app])
	}
}
