package serialize

import (
	"reflect"
	"testing"

	"github.com/synapse-lang/synapsec/internal/graph"
)

func buildSampleGraph() *graph.Graph {
	g := graph.New()
	binder := g.Insert(graph.VariablePayload{Name: "x"})
	body := g.Insert(graph.VariablePayload{Name: "x", Definition: binder})
	lam := g.Insert(graph.LambdaPayload{Binder: binder, Body: body})
	arg := g.Insert(graph.LitIntPayload{Value: 7})
	app := g.Insert(graph.ApplicationPayload{Function: lam, Argument: arg})
	_ = g.SetRoot(app)
	return g
}

func TestEncodeDecodeGraphRoundTrip(t *testing.T) {
	g := buildSampleGraph()
	data := EncodeGraph(g)

	decoded, err := DecodeGraph(data)
	if err != nil {
		t.Fatalf("DecodeGraph: %v", err)
	}
	if decoded.Root() != g.Root() {
		t.Fatalf("root = %d, want %d", decoded.Root(), g.Root())
	}
	if decoded.Len() != g.Len() {
		t.Fatalf("len = %d, want %d", decoded.Len(), g.Len())
	}
	for _, id := range g.NodeIDs() {
		want, _ := g.Get(id)
		got, ok := decoded.Get(id)
		if !ok {
			t.Fatalf("node %d missing after round trip", id)
		}
		if !reflect.DeepEqual(want.Payload, got.Payload) {
			t.Errorf("node %d payload = %#v, want %#v", id, got.Payload, want.Payload)
		}
	}
}

func TestEncodeGraphDeterministic(t *testing.T) {
	g := buildSampleGraph()
	a := EncodeGraph(g)
	b := EncodeGraph(g)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("EncodeGraph is not deterministic across calls")
	}
}

func TestDecodeGraphDropsUnresolvedRoot(t *testing.T) {
	g := graph.New()
	g.Insert(graph.LitIntPayload{Value: 1})
	data := EncodeGraph(g)

	// Corrupt by appending a second root field, which overrides the first,
	// naming an id that will never be inserted.
	buf := appendVarintField(data, fieldGraphRoot, 999)

	decoded, err := DecodeGraph(buf)
	if err != nil {
		t.Fatalf("DecodeGraph: %v", err)
	}
	if decoded.Root() != 0 {
		t.Errorf("Root() = %d, want 0 for an unresolved root id", decoded.Root())
	}
}

func TestDecodeNodePreservesUnknownFields(t *testing.T) {
	// A LitInt payload with an extra, unrecognized field number appended.
	var payload []byte
	payload = appendVarintField(payload, pfInt64, 42)
	payload = appendStringField(payload, 99, "future-field")

	var nodeBuf []byte
	nodeBuf = appendVarintField(nodeBuf, fieldNodeKind, uint64(graph.KindLitInt))
	nodeBuf = appendBytesField(nodeBuf, fieldNodePayload, payload)

	n, err := decodeNode(nodeBuf)
	if err != nil {
		t.Fatalf("decodeNode: %v", err)
	}
	if len(n.UnknownFields) != 1 {
		t.Fatalf("UnknownFields = %d entries, want 1", len(n.UnknownFields))
	}

	reencoded := encodePayload(n)
	n2, unknown2, err := decodePayload(graph.KindLitInt, reencoded)
	if err != nil {
		t.Fatalf("decodePayload after re-encode: %v", err)
	}
	if !reflect.DeepEqual(n2, n.Payload) {
		t.Errorf("payload changed across unknown-field round trip: %#v vs %#v", n2, n.Payload)
	}
	if len(unknown2) != 1 {
		t.Errorf("unknown field not preserved across second round trip: got %d", len(unknown2))
	}
}

func TestDataDefRoundTrip(t *testing.T) {
	g := graph.New()
	boolType := g.Insert(graph.TypeNodePayload{Shape: graph.StructuralType{Tag: graph.StructuralBool}})
	def := g.Insert(graph.DataDefPayload{
		Name:       "Option",
		ParamNames: []string{"a"},
		Ctors: []graph.CtorDecl{
			{Name: "None"},
			{Name: "Some", FieldTypes: []graph.NodeID{boolType}},
		},
	})
	_ = g.SetRoot(def)

	data := EncodeGraph(g)
	decoded, err := DecodeGraph(data)
	if err != nil {
		t.Fatalf("DecodeGraph: %v", err)
	}
	got, ok := decoded.Get(def)
	if !ok {
		t.Fatalf("DataDef node missing")
	}
	want, _ := g.Get(def)
	if !reflect.DeepEqual(got.Payload, want.Payload) {
		t.Errorf("DataDef payload = %#v, want %#v", got.Payload, want.Payload)
	}
}

func TestDataMatchRoundTrip(t *testing.T) {
	g := graph.New()
	scrutinee := g.Insert(graph.LitIntPayload{Value: 1})
	binder := g.Insert(graph.VariablePayload{Name: "n"})
	armBody := g.Insert(graph.VariablePayload{Name: "n", Definition: binder})
	wildBody := g.Insert(graph.LitIntPayload{Value: 0})
	match := g.Insert(graph.DataMatchPayload{
		Scrutinee: scrutinee,
		Arms: []graph.MatchArm{
			{CtorName: "Some", Binders: []graph.NodeID{binder}, Body: armBody},
			{Wildcard: true, Body: wildBody},
		},
	})
	_ = g.SetRoot(match)

	data := EncodeGraph(g)
	decoded, err := DecodeGraph(data)
	if err != nil {
		t.Fatalf("DecodeGraph: %v", err)
	}
	got, _ := decoded.Get(match)
	want, _ := g.Get(match)
	if !reflect.DeepEqual(got.Payload, want.Payload) {
		t.Errorf("DataMatch payload = %#v, want %#v", got.Payload, want.Payload)
	}
}
