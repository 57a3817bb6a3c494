package serialize

import (
	"reflect"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/synapse-lang/synapsec/internal/graph"
)

func TestEncodeDecodeGraphJSONRoundTrip(t *testing.T) {
	g := buildSampleGraph()

	data, err := EncodeGraphJSON(g)
	if err != nil {
		t.Fatalf("EncodeGraphJSON: %v", err)
	}

	decoded, err := DecodeGraphJSON(data)
	if err != nil {
		t.Fatalf("DecodeGraphJSON: %v", err)
	}
	if decoded.Root() != g.Root() {
		t.Fatalf("root = %d, want %d", decoded.Root(), g.Root())
	}
	for _, id := range g.NodeIDs() {
		want, _ := g.Get(id)
		got, ok := decoded.Get(id)
		if !ok {
			t.Fatalf("node %d missing after JSON round trip", id)
		}
		if !reflect.DeepEqual(want.Payload, got.Payload) {
			t.Errorf("node %d payload = %#v, want %#v", id, got.Payload, want.Payload)
		}
	}
}

func TestEncodeGraphJSONSnapshot(t *testing.T) {
	g := buildSampleGraph()
	data, err := EncodeGraphJSON(g)
	if err != nil {
		t.Fatalf("EncodeGraphJSON: %v", err)
	}
	snaps.MatchSnapshot(t, string(data))
}

func TestDecodeGraphJSONUnknownKindErrors(t *testing.T) {
	_, err := decodePayloadJSON(graph.KindInvalid, nil)
	if err == nil {
		t.Fatal("expected an error for an unrecognized kind")
	}
}

func TestEncodeGraphJSONWithMetadataLocation(t *testing.T) {
	g := graph.New()
	lit := g.Insert(graph.LitIntPayload{Value: 3})
	meta := g.Insert(graph.MetadataPayload{
		Target:   lit,
		Location: &graph.SourceLocation{File: "sample.syn", StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 2},
	})
	_ = g.SetRoot(meta)

	data, err := EncodeGraphJSON(g)
	if err != nil {
		t.Fatalf("EncodeGraphJSON: %v", err)
	}
	decoded, err := DecodeGraphJSON(data)
	if err != nil {
		t.Fatalf("DecodeGraphJSON: %v", err)
	}
	got, ok := decoded.Get(meta)
	if !ok {
		t.Fatalf("metadata node missing after round trip")
	}
	want, _ := g.Get(meta)
	if !reflect.DeepEqual(got.Payload, want.Payload) {
		t.Errorf("metadata payload = %#v, want %#v", got.Payload, want.Payload)
	}
}
