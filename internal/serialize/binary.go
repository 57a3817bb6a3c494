// Package serialize implements the authoritative binary encoding and the
// tooling-facing JSON encoding for a graph.Graph, per SPEC_FULL.md §4.3.1.
package serialize

import (
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/synapse-lang/synapsec/internal/graph"
)

// EncodeGraph renders g as a length-delimited GraphMessage: a repeated Node
// field followed by the root id, in the field order fixed by wire.go.
func EncodeGraph(g *graph.Graph) []byte {
	var buf []byte
	for _, id := range g.NodeIDs() {
		n, ok := g.Get(id)
		if !ok {
			continue
		}
		buf = appendBytesField(buf, fieldGraphNodes, encodeNode(n))
	}
	buf = appendVarintField(buf, fieldGraphRoot, uint64(g.Root()))
	return buf
}

// DecodeGraph parses data produced by EncodeGraph. A root id that does not
// resolve to any decoded node is dropped rather than rejected.
func DecodeGraph(data []byte) (*graph.Graph, error) {
	fields, err := consumeFields(data)
	if err != nil {
		return nil, err
	}

	g := graph.New()
	var root graph.NodeID
	for _, f := range fields {
		switch f.num {
		case fieldGraphNodes:
			n, err := decodeNode(fieldBytes(f))
			if err != nil {
				return nil, err
			}
			g.InsertWithID(n.ID, n.Payload)
			if stored, ok := g.Get(n.ID); ok {
				stored.UnknownFields = n.UnknownFields
			}
		case fieldGraphRoot:
			root = graph.NodeID(fieldVarint(f))
		}
	}
	if root != 0 {
		if _, ok := g.Get(root); ok {
			_ = g.SetRoot(root)
		}
	}
	return g, nil
}

// encodeNode renders one Node: its id (fixed64, per SPEC_FULL.md §4.3.1's
// `fixed64 node_id`), its kind, and its kind-dispatched payload bytes.
func encodeNode(n *graph.Node) []byte {
	var buf []byte
	buf = protowire.AppendTag(buf, fieldNodeID, protowire.Fixed64Type)
	buf = protowire.AppendFixed64(buf, uint64(n.ID))
	buf = appendVarintField(buf, fieldNodeKind, uint64(n.Kind()))
	buf = appendBytesField(buf, fieldNodePayload, encodePayload(n))
	return buf
}

func decodeNode(data []byte) (*graph.Node, error) {
	fields, err := consumeFields(data)
	if err != nil {
		return nil, err
	}

	var (
		id       graph.NodeID
		kind     graph.Kind
		haveKind bool
		payload  []byte
	)
	for _, f := range fields {
		switch f.num {
		case fieldNodeID:
			if f.typ != protowire.Fixed64Type {
				return nil, &DeserializationError{Msg: "node_id field has wrong wire type"}
			}
			v, _ := protowire.ConsumeFixed64(f.val)
			id = graph.NodeID(v)
		case fieldNodeKind:
			kind = graph.Kind(fieldVarint(f))
			haveKind = true
		case fieldNodePayload:
			payload = fieldBytes(f)
		}
	}
	if !haveKind {
		return nil, &DeserializationError{Msg: "node missing kind field"}
	}

	p, unknown, err := decodePayload(kind, payload)
	if err != nil {
		return nil, err
	}
	return &graph.Node{ID: id, Payload: p, UnknownFields: unknown}, nil
}
