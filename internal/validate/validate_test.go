package validate

import (
	"testing"

	"github.com/synapse-lang/synapsec/internal/graph"
)

func hasCode(diags []Diagnostic, code Code) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestValidateCleanGraphHasNoDiagnostics(t *testing.T) {
	g := graph.New()
	binder := g.Insert(graph.VariablePayload{Name: "x"})
	body := g.Insert(graph.VariablePayload{Name: "x", Definition: binder})
	lam := g.Insert(graph.LambdaPayload{Binder: binder, Body: body})
	arg := g.Insert(graph.LitIntPayload{Value: 1})
	app := g.Insert(graph.ApplicationPayload{Function: lam, Argument: arg})
	_ = g.SetRoot(app)

	diags := Validate(g)
	if len(diags) != 0 {
		t.Errorf("Validate() = %v, want no diagnostics", diags)
	}
}

func TestValidateFlagsDanglingReference(t *testing.T) {
	g := graph.New()
	g.InsertWithID(1, graph.DerefPayload{Ref: 999})

	diags := Validate(g)
	if !hasCode(diags, Integrity) {
		t.Errorf("Validate() = %v, want an INTEGRITY diagnostic", diags)
	}
}

func TestValidateFlagsFreeVariable(t *testing.T) {
	g := graph.New()
	g.Insert(graph.VariablePayload{Name: "free"})

	diags := Validate(g)
	if !hasCode(diags, Scope) {
		t.Errorf("Validate() = %v, want a SCOPE diagnostic", diags)
	}
}

func TestValidateFlagsNonBinderDefinition(t *testing.T) {
	g := graph.New()
	notABinder := g.Insert(graph.LitIntPayload{Value: 1})
	g.Insert(graph.VariablePayload{Name: "x", Definition: notABinder})

	diags := Validate(g)
	if !hasCode(diags, Scope) {
		t.Errorf("Validate() = %v, want a SCOPE diagnostic", diags)
	}
}

func TestValidateFlagsApplicationOfLiteral(t *testing.T) {
	g := graph.New()
	lit := g.Insert(graph.LitIntPayload{Value: 1})
	arg := g.Insert(graph.LitIntPayload{Value: 2})
	g.Insert(graph.ApplicationPayload{Function: lit, Argument: arg})

	diags := Validate(g)
	if !hasCode(diags, Application) {
		t.Errorf("Validate() = %v, want an APPLICATION diagnostic", diags)
	}
}

func TestValidateFlagsAssignmentToLambda(t *testing.T) {
	g := graph.New()
	binder := g.Insert(graph.VariablePayload{Name: "x"})
	body := g.Insert(graph.VariablePayload{Name: "x", Definition: binder})
	lam := g.Insert(graph.LambdaPayload{Binder: binder, Body: body})
	value := g.Insert(graph.LitIntPayload{Value: 1})
	g.Insert(graph.AssignPayload{Ref: lam, Value: value})

	diags := Validate(g)
	if !hasCode(diags, Assignment) {
		t.Errorf("Validate() = %v, want an ASSIGNMENT diagnostic", diags)
	}
}

func TestValidateAttachesMetadataLocation(t *testing.T) {
	g := graph.New()
	lit := g.Insert(graph.LitIntPayload{Value: 1})
	arg := g.Insert(graph.LitIntPayload{Value: 2})
	app := g.Insert(graph.ApplicationPayload{Function: lit, Argument: arg})
	g.Insert(graph.MetadataPayload{
		Target:   app,
		Location: &graph.SourceLocation{File: "sample.syn", StartLine: 3, StartCol: 1},
	})

	diags := Validate(g)
	found := false
	for _, d := range diags {
		if d.NodeID == app && d.Code == Application {
			found = true
			if d.Location == nil || d.Location.StartLine != 3 {
				t.Errorf("diagnostic location = %v, want StartLine 3", d.Location)
			}
		}
	}
	if !found {
		t.Fatalf("expected an APPLICATION diagnostic on node %d", app)
	}
}
