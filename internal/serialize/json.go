package serialize

import (
	"encoding/json"

	"github.com/synapse-lang/synapsec/internal/graph"
)

// jsonGraph is the on-disk tooling format: a flat node list (so diffing a
// checked-in fixture shows one line per changed node) plus the root id.
type jsonGraph struct {
	Nodes []jsonNode  `json:"nodes"`
	Root  graph.NodeID `json:"root,omitempty"`
}

type jsonNode struct {
	ID      graph.NodeID    `json:"id"`
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

type jsonCtorDecl struct {
	Name       string         `json:"name"`
	FieldTypes []graph.NodeID `json:"fieldTypes,omitempty"`
}

type jsonMatchArm struct {
	CtorName string         `json:"ctorName,omitempty"`
	Binders  []graph.NodeID `json:"binders,omitempty"`
	Wildcard bool           `json:"wildcard,omitempty"`
	Body     graph.NodeID   `json:"body"`
}

type jsonStructuralType struct {
	Tag     graph.StructuralTypeTag `json:"tag"`
	Param   graph.NodeID            `json:"param,omitempty"`
	Result  graph.NodeID            `json:"result,omitempty"`
	Elem    graph.NodeID            `json:"elem,omitempty"`
	ADTName string                  `json:"adtName,omitempty"`
	ADTArgs []graph.NodeID          `json:"adtArgs,omitempty"`
	VarID   graph.TypeVarID         `json:"varId,omitempty"`
}

// EncodeGraphJSON renders g as the tagged-union JSON format described in
// SPEC_FULL.md §4.3. Unlike EncodeGraph, it is a tooling convenience and is
// not guaranteed to be byte-stable across versions.
func EncodeGraphJSON(g *graph.Graph) ([]byte, error) {
	out := jsonGraph{Root: g.Root()}
	for _, id := range g.NodeIDs() {
		n, ok := g.Get(id)
		if !ok {
			continue
		}
		payload, err := encodePayloadJSON(n.Payload)
		if err != nil {
			return nil, &SerializationError{Msg: err.Error()}
		}
		out.Nodes = append(out.Nodes, jsonNode{ID: id, Kind: n.Kind().String(), Payload: payload})
	}
	return json.MarshalIndent(out, "", "  ")
}

// DecodeGraphJSON parses data produced by EncodeGraphJSON.
func DecodeGraphJSON(data []byte) (*graph.Graph, error) {
	var in jsonGraph
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, &DeserializationError{Msg: err.Error()}
	}

	g := graph.New()
	for _, n := range in.Nodes {
		kind := kindFromName(n.Kind)
		payload, err := decodePayloadJSON(kind, n.Payload)
		if err != nil {
			return nil, &DeserializationError{Msg: err.Error()}
		}
		g.InsertWithID(n.ID, payload)
	}
	if in.Root != 0 {
		if _, ok := g.Get(in.Root); ok {
			_ = g.SetRoot(in.Root)
		}
	}
	return g, nil
}

var jsonKindNames = map[graph.Kind]string{
	graph.KindVariable:      "Variable",
	graph.KindLambda:        "Lambda",
	graph.KindApplication:   "Application",
	graph.KindLitInt:        "LitInt",
	graph.KindLitBool:       "LitBool",
	graph.KindPrimOp:        "PrimOp",
	graph.KindRef:           "Ref",
	graph.KindDeref:         "Deref",
	graph.KindAssign:        "Assign",
	graph.KindEffectPerform: "EffectPerform",
	graph.KindTypeAbs:       "TypeAbs",
	graph.KindTypeApp:       "TypeApp",
	graph.KindDataDef:       "DataDef",
	graph.KindDataCtor:      "DataCtor",
	graph.KindDataMatch:     "DataMatch",
	graph.KindTypeNode:      "TypeNode",
	graph.KindMetadata:      "Metadata",
}

func kindFromName(name string) graph.Kind {
	for k, n := range jsonKindNames {
		if n == name {
			return k
		}
	}
	return graph.KindInvalid
}

func encodePayloadJSON(p graph.Payload) (json.RawMessage, error) {
	switch v := p.(type) {
	case graph.VariablePayload:
		return json.Marshal(v)
	case graph.LambdaPayload:
		return json.Marshal(v)
	case graph.ApplicationPayload:
		return json.Marshal(v)
	case graph.LitIntPayload:
		return json.Marshal(v)
	case graph.LitBoolPayload:
		return json.Marshal(v)
	case graph.PrimOpPayload:
		return json.Marshal(v)
	case graph.RefPayload:
		return json.Marshal(v)
	case graph.DerefPayload:
		return json.Marshal(v)
	case graph.AssignPayload:
		return json.Marshal(v)
	case graph.EffectPerformPayload:
		return json.Marshal(v)
	case graph.TypeAbsPayload:
		return json.Marshal(v)
	case graph.TypeAppPayload:
		return json.Marshal(v)
	case graph.DataDefPayload:
		ctors := make([]jsonCtorDecl, len(v.Ctors))
		for i, c := range v.Ctors {
			ctors[i] = jsonCtorDecl{Name: c.Name, FieldTypes: c.FieldTypes}
		}
		return json.Marshal(struct {
			Name       string         `json:"name"`
			ParamNames []string       `json:"paramNames,omitempty"`
			Ctors      []jsonCtorDecl `json:"ctors,omitempty"`
		}{v.Name, v.ParamNames, ctors})
	case graph.DataCtorPayload:
		return json.Marshal(v)
	case graph.DataMatchPayload:
		arms := make([]jsonMatchArm, len(v.Arms))
		for i, a := range v.Arms {
			arms[i] = jsonMatchArm{CtorName: a.CtorName, Binders: a.Binders, Wildcard: a.Wildcard, Body: a.Body}
		}
		return json.Marshal(struct {
			Scrutinee graph.NodeID   `json:"scrutinee"`
			Arms      []jsonMatchArm `json:"arms,omitempty"`
		}{v.Scrutinee, arms})
	case graph.TypeNodePayload:
		s := v.Shape
		return json.Marshal(struct {
			Shape jsonStructuralType `json:"shape"`
		}{jsonStructuralType{
			Tag: s.Tag, Param: s.Param, Result: s.Result, Elem: s.Elem,
			ADTName: s.ADTName, ADTArgs: s.ADTArgs, VarID: s.VarID,
		}})
	case graph.MetadataPayload:
		return json.Marshal(struct {
			Target      graph.NodeID          `json:"target"`
			Location    *graph.SourceLocation `json:"location,omitempty"`
			Annotations []graph.NodeID        `json:"annotations,omitempty"`
		}{v.Target, v.Location, v.Annotations})
	default:
		return nil, &SerializationError{Msg: "unknown payload type for JSON encoding"}
	}
}

func decodePayloadJSON(kind graph.Kind, raw json.RawMessage) (graph.Payload, error) {
	switch kind {
	case graph.KindVariable:
		var v graph.VariablePayload
		err := json.Unmarshal(raw, &v)
		return v, err
	case graph.KindLambda:
		var v graph.LambdaPayload
		err := json.Unmarshal(raw, &v)
		return v, err
	case graph.KindApplication:
		var v graph.ApplicationPayload
		err := json.Unmarshal(raw, &v)
		return v, err
	case graph.KindLitInt:
		var v graph.LitIntPayload
		err := json.Unmarshal(raw, &v)
		return v, err
	case graph.KindLitBool:
		var v graph.LitBoolPayload
		err := json.Unmarshal(raw, &v)
		return v, err
	case graph.KindPrimOp:
		var v graph.PrimOpPayload
		err := json.Unmarshal(raw, &v)
		return v, err
	case graph.KindRef:
		var v graph.RefPayload
		err := json.Unmarshal(raw, &v)
		return v, err
	case graph.KindDeref:
		var v graph.DerefPayload
		err := json.Unmarshal(raw, &v)
		return v, err
	case graph.KindAssign:
		var v graph.AssignPayload
		err := json.Unmarshal(raw, &v)
		return v, err
	case graph.KindEffectPerform:
		var v graph.EffectPerformPayload
		err := json.Unmarshal(raw, &v)
		return v, err
	case graph.KindTypeAbs:
		var v graph.TypeAbsPayload
		err := json.Unmarshal(raw, &v)
		return v, err
	case graph.KindTypeApp:
		var v graph.TypeAppPayload
		err := json.Unmarshal(raw, &v)
		return v, err
	case graph.KindDataDef:
		var in struct {
			Name       string         `json:"name"`
			ParamNames []string       `json:"paramNames"`
			Ctors      []jsonCtorDecl `json:"ctors"`
		}
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}
		ctors := make([]graph.CtorDecl, len(in.Ctors))
		for i, c := range in.Ctors {
			ctors[i] = graph.CtorDecl{Name: c.Name, FieldTypes: c.FieldTypes}
		}
		return graph.DataDefPayload{Name: in.Name, ParamNames: in.ParamNames, Ctors: ctors}, nil
	case graph.KindDataCtor:
		var v graph.DataCtorPayload
		err := json.Unmarshal(raw, &v)
		return v, err
	case graph.KindDataMatch:
		var in struct {
			Scrutinee graph.NodeID   `json:"scrutinee"`
			Arms      []jsonMatchArm `json:"arms"`
		}
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}
		arms := make([]graph.MatchArm, len(in.Arms))
		for i, a := range in.Arms {
			arms[i] = graph.MatchArm{CtorName: a.CtorName, Binders: a.Binders, Wildcard: a.Wildcard, Body: a.Body}
		}
		return graph.DataMatchPayload{Scrutinee: in.Scrutinee, Arms: arms}, nil
	case graph.KindTypeNode:
		var in struct {
			Shape jsonStructuralType `json:"shape"`
		}
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}
		s := in.Shape
		return graph.TypeNodePayload{Shape: graph.StructuralType{
			Tag: s.Tag, Param: s.Param, Result: s.Result, Elem: s.Elem,
			ADTName: s.ADTName, ADTArgs: s.ADTArgs, VarID: s.VarID,
		}}, nil
	case graph.KindMetadata:
		var in struct {
			Target      graph.NodeID          `json:"target"`
			Location    *graph.SourceLocation `json:"location"`
			Annotations []graph.NodeID        `json:"annotations"`
		}
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}
		return graph.MetadataPayload{Target: in.Target, Location: in.Location, Annotations: in.Annotations}, nil
	default:
		return nil, &DeserializationError{Msg: "unknown kind name in JSON graph"}
	}
}
