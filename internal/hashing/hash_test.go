package hashing

import (
	"testing"

	"github.com/synapse-lang/synapsec/internal/graph"
)

func TestHashNodeDeterministic(t *testing.T) {
	n := &graph.Node{ID: 1, Payload: graph.LitIntPayload{Value: 42}}
	a := HashNode(n)
	b := HashNode(n)
	if a != b {
		t.Errorf("HashNode is not deterministic: %x vs %x", a, b)
	}
}

func TestHashNodeSensitiveToPayload(t *testing.T) {
	a := &graph.Node{ID: 1, Payload: graph.LitIntPayload{Value: 42}}
	b := &graph.Node{ID: 1, Payload: graph.LitIntPayload{Value: 43}}
	if HashNode(a) == HashNode(b) {
		t.Error("nodes with different LitInt values hashed identically")
	}
}

func TestHashNodeSensitiveToKind(t *testing.T) {
	a := &graph.Node{ID: 1, Payload: graph.LitBoolPayload{Value: true}}
	b := &graph.Node{ID: 1, Payload: graph.VariablePayload{Name: "x"}}
	if HashNode(a) == HashNode(b) {
		t.Error("nodes of different kinds hashed identically")
	}
}

func TestHashNodeIgnoresID(t *testing.T) {
	// The node's own ID is not part of its canonical digest: only
	// HashGraph's root id and the node's referenced ids matter.
	a := &graph.Node{ID: 1, Payload: graph.LitIntPayload{Value: 42}}
	b := &graph.Node{ID: 2, Payload: graph.LitIntPayload{Value: 42}}
	if HashNode(a) != HashNode(b) {
		t.Error("HashNode should be insensitive to a node's own id")
	}
}

func TestHashGraphSensitiveToRoot(t *testing.T) {
	g1 := graph.New()
	a := g1.Insert(graph.LitIntPayload{Value: 1})
	b := g1.Insert(graph.LitIntPayload{Value: 2})
	_ = g1.SetRoot(a)

	g2 := graph.New()
	g2.InsertWithID(a, graph.LitIntPayload{Value: 1})
	g2.InsertWithID(b, graph.LitIntPayload{Value: 2})
	_ = g2.SetRoot(b)

	if HashGraph(g1) == HashGraph(g2) {
		t.Error("graphs with different roots over the same nodes hashed identically")
	}
}

func TestHashGraphNotAlphaEquivalenceInsensitive(t *testing.T) {
	// Two lambdas that differ only in their bound variable's Name are
	// distinct graphs by construction, and must hash differently: canonical
	// hashing is over the graph's literal structure, not up to
	// alpha-equivalence.
	build := func(name string) *graph.Graph {
		g := graph.New()
		binder := g.Insert(graph.VariablePayload{Name: name})
		body := g.Insert(graph.VariablePayload{Name: name, Definition: binder})
		lam := g.Insert(graph.LambdaPayload{Binder: binder, Body: body})
		_ = g.SetRoot(lam)
		return g
	}

	if HashGraph(build("x")) == HashGraph(build("y")) {
		t.Error("alpha-varying graphs must not hash identically")
	}
}
