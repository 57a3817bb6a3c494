package serialize

import (
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/synapse-lang/synapsec/internal/graph"
)

func encodeNodeIDList(buf []byte, num protowire.Number, ids []graph.NodeID) []byte {
	for _, id := range ids {
		buf = appendNodeIDField(buf, num, id)
	}
	return buf
}

func encodeTypeVarList(buf []byte, num protowire.Number, vs []graph.TypeVarID) []byte {
	for _, v := range vs {
		buf = appendVarintField(buf, num, uint64(v))
	}
	return buf
}

func encodeStringList(buf []byte, num protowire.Number, ss []string) []byte {
	for _, s := range ss {
		buf = appendStringField(buf, num, s)
	}
	return buf
}

// encodeCtorDecl/decodeCtorDecl handle DataDefPayload.Ctors entries.
func encodeCtorDecl(c graph.CtorDecl) []byte {
	var buf []byte
	buf = appendStringField(buf, pfStrA, c.Name)
	buf = encodeNodeIDList(buf, pfNodeList, c.FieldTypes)
	return buf
}

func decodeCtorDecl(data []byte) (graph.CtorDecl, error) {
	fields, err := consumeFields(data)
	if err != nil {
		return graph.CtorDecl{}, err
	}
	var c graph.CtorDecl
	for _, f := range fields {
		switch f.num {
		case pfStrA:
			c.Name = fieldString(f)
		case pfNodeList:
			c.FieldTypes = append(c.FieldTypes, fieldNodeID(f))
		}
	}
	return c, nil
}

// encodeMatchArm/decodeMatchArm handle DataMatchPayload.Arms entries.
func encodeMatchArm(a graph.MatchArm) []byte {
	var buf []byte
	buf = appendStringField(buf, pfStrA, a.CtorName)
	buf = appendBoolField(buf, pfWildcard, a.Wildcard)
	buf = encodeNodeIDList(buf, pfNodeList, a.Binders)
	buf = appendNodeIDField(buf, pfNodeA, a.Body)
	return buf
}

func decodeMatchArm(data []byte) (graph.MatchArm, error) {
	fields, err := consumeFields(data)
	if err != nil {
		return graph.MatchArm{}, err
	}
	var a graph.MatchArm
	for _, f := range fields {
		switch f.num {
		case pfStrA:
			a.CtorName = fieldString(f)
		case pfWildcard:
			a.Wildcard = fieldVarint(f) != 0
		case pfNodeList:
			a.Binders = append(a.Binders, fieldNodeID(f))
		case pfNodeA:
			a.Body = fieldNodeID(f)
		}
	}
	return a, nil
}

func encodeLocation(loc *graph.SourceLocation) []byte {
	if loc == nil {
		return nil
	}
	var buf []byte
	buf = appendStringField(buf, pfStrA, loc.File)
	buf = appendVarintField(buf, pfNodeA, uint64(loc.StartLine))
	buf = appendVarintField(buf, pfNodeB, uint64(loc.StartCol))
	buf = appendVarintField(buf, pfNodeC, uint64(loc.EndLine))
	buf = appendVarintField(buf, pfByte, uint64(loc.EndCol))
	return buf
}

func decodeLocation(data []byte) (*graph.SourceLocation, error) {
	fields, err := consumeFields(data)
	if err != nil {
		return nil, err
	}
	loc := &graph.SourceLocation{}
	for _, f := range fields {
		switch f.num {
		case pfStrA:
			loc.File = fieldString(f)
		case pfNodeA:
			loc.StartLine = int(fieldVarint(f))
		case pfNodeB:
			loc.StartCol = int(fieldVarint(f))
		case pfNodeC:
			loc.EndLine = int(fieldVarint(f))
		case pfByte:
			loc.EndCol = int(fieldVarint(f))
		}
	}
	return loc, nil
}

// encodePayload renders the kind-specific payload body. Field slot numbers
// are defined in wire.go and are stable per kind.
func encodePayload(n *graph.Node) []byte {
	var buf []byte
	switch p := n.Payload.(type) {
	case graph.VariablePayload:
		buf = appendStringField(buf, pfStrA, p.Name)
		buf = appendNodeIDField(buf, pfNodeA, p.Definition)
	case graph.LambdaPayload:
		buf = appendNodeIDField(buf, pfNodeA, p.Binder)
		buf = appendNodeIDField(buf, pfNodeB, p.Body)
		buf = appendNodeIDField(buf, pfNodeC, p.TypeAnnot)
	case graph.ApplicationPayload:
		buf = appendNodeIDField(buf, pfNodeA, p.Function)
		buf = appendNodeIDField(buf, pfNodeB, p.Argument)
	case graph.LitIntPayload:
		buf = appendVarintField(buf, pfInt64, uint64(p.Value))
	case graph.LitBoolPayload:
		buf = appendBoolField(buf, pfBool, p.Value)
	case graph.PrimOpPayload:
		buf = appendStringField(buf, pfStrA, p.OpName)
		buf = encodeNodeIDList(buf, pfNodeList, p.Args)
	case graph.RefPayload:
		buf = appendNodeIDField(buf, pfNodeA, p.Init)
	case graph.DerefPayload:
		buf = appendNodeIDField(buf, pfNodeA, p.Ref)
	case graph.AssignPayload:
		buf = appendNodeIDField(buf, pfNodeA, p.Ref)
		buf = appendNodeIDField(buf, pfNodeB, p.Value)
	case graph.EffectPerformPayload:
		buf = appendStringField(buf, pfStrA, p.EffectName)
		buf = appendNodeIDField(buf, pfNodeA, p.Value)
	case graph.TypeAbsPayload:
		buf = encodeTypeVarList(buf, pfVarList, p.TypeParams)
		buf = appendNodeIDField(buf, pfNodeA, p.Body)
	case graph.TypeAppPayload:
		buf = appendNodeIDField(buf, pfNodeA, p.Abs)
		buf = encodeNodeIDList(buf, pfNodeList, p.TypeArgs)
	case graph.DataDefPayload:
		buf = appendStringField(buf, pfStrA, p.Name)
		buf = encodeStringList(buf, pfStrList, p.ParamNames)
		for _, c := range p.Ctors {
			buf = appendBytesField(buf, pfNested, encodeCtorDecl(c))
		}
	case graph.DataCtorPayload:
		buf = appendStringField(buf, pfStrA, p.DataName)
		buf = appendStringField(buf, pfStrB, p.CtorName)
		buf = encodeNodeIDList(buf, pfNodeList, p.Args)
	case graph.DataMatchPayload:
		buf = appendNodeIDField(buf, pfNodeA, p.Scrutinee)
		for _, arm := range p.Arms {
			buf = appendBytesField(buf, pfNested, encodeMatchArm(arm))
		}
	case graph.TypeNodePayload:
		buf = appendVarintField(buf, pfByte, uint64(p.Shape.Tag))
		buf = appendNodeIDField(buf, pfNodeA, p.Shape.Param)
		buf = appendNodeIDField(buf, pfNodeB, p.Shape.Result)
		buf = appendNodeIDField(buf, pfNodeC, p.Shape.Elem)
		buf = appendStringField(buf, pfStrA, p.Shape.ADTName)
		buf = encodeNodeIDList(buf, pfNodeList, p.Shape.ADTArgs)
		buf = appendVarintField(buf, pfInt64, uint64(p.Shape.VarID))
	case graph.MetadataPayload:
		buf = appendNodeIDField(buf, pfNodeA, p.Target)
		if p.Location != nil {
			buf = appendBytesField(buf, pfLocation, encodeLocation(p.Location))
		}
		buf = encodeNodeIDList(buf, pfNodeList, p.Annotations)
	}
	// Re-append any unknown fields captured on a prior decode, preserving
	// them verbatim across a decode→encode round trip.
	for _, raw := range n.UnknownFields {
		buf = append(buf, raw...)
	}
	return buf
}

// decodePayload parses data into the payload for kind, capturing any field
// numbers the kind does not recognize as raw unknown-field bytes.
func decodePayload(kind graph.Kind, data []byte) (graph.Payload, [][]byte, error) {
	fields, err := consumeFields(data)
	if err != nil {
		return nil, nil, err
	}

	var unknown [][]byte
	unrecognized := func(f rawField) { unknown = append(unknown, f.full) }

	switch kind {
	case graph.KindVariable:
		var p graph.VariablePayload
		for _, f := range fields {
			switch f.num {
			case pfStrA:
				p.Name = fieldString(f)
			case pfNodeA:
				p.Definition = fieldNodeID(f)
			default:
				unrecognized(f)
			}
		}
		return p, unknown, nil
	case graph.KindLambda:
		var p graph.LambdaPayload
		for _, f := range fields {
			switch f.num {
			case pfNodeA:
				p.Binder = fieldNodeID(f)
			case pfNodeB:
				p.Body = fieldNodeID(f)
			case pfNodeC:
				p.TypeAnnot = fieldNodeID(f)
			default:
				unrecognized(f)
			}
		}
		return p, unknown, nil
	case graph.KindApplication:
		var p graph.ApplicationPayload
		for _, f := range fields {
			switch f.num {
			case pfNodeA:
				p.Function = fieldNodeID(f)
			case pfNodeB:
				p.Argument = fieldNodeID(f)
			default:
				unrecognized(f)
			}
		}
		return p, unknown, nil
	case graph.KindLitInt:
		var p graph.LitIntPayload
		for _, f := range fields {
			switch f.num {
			case pfInt64:
				p.Value = int64(fieldVarint(f))
			default:
				unrecognized(f)
			}
		}
		return p, unknown, nil
	case graph.KindLitBool:
		var p graph.LitBoolPayload
		for _, f := range fields {
			switch f.num {
			case pfBool:
				p.Value = fieldVarint(f) != 0
			default:
				unrecognized(f)
			}
		}
		return p, unknown, nil
	case graph.KindPrimOp:
		var p graph.PrimOpPayload
		for _, f := range fields {
			switch f.num {
			case pfStrA:
				p.OpName = fieldString(f)
			case pfNodeList:
				p.Args = append(p.Args, fieldNodeID(f))
			default:
				unrecognized(f)
			}
		}
		return p, unknown, nil
	case graph.KindRef:
		var p graph.RefPayload
		for _, f := range fields {
			switch f.num {
			case pfNodeA:
				p.Init = fieldNodeID(f)
			default:
				unrecognized(f)
			}
		}
		return p, unknown, nil
	case graph.KindDeref:
		var p graph.DerefPayload
		for _, f := range fields {
			switch f.num {
			case pfNodeA:
				p.Ref = fieldNodeID(f)
			default:
				unrecognized(f)
			}
		}
		return p, unknown, nil
	case graph.KindAssign:
		var p graph.AssignPayload
		for _, f := range fields {
			switch f.num {
			case pfNodeA:
				p.Ref = fieldNodeID(f)
			case pfNodeB:
				p.Value = fieldNodeID(f)
			default:
				unrecognized(f)
			}
		}
		return p, unknown, nil
	case graph.KindEffectPerform:
		var p graph.EffectPerformPayload
		for _, f := range fields {
			switch f.num {
			case pfStrA:
				p.EffectName = fieldString(f)
			case pfNodeA:
				p.Value = fieldNodeID(f)
			default:
				unrecognized(f)
			}
		}
		return p, unknown, nil
	case graph.KindTypeAbs:
		var p graph.TypeAbsPayload
		for _, f := range fields {
			switch f.num {
			case pfVarList:
				p.TypeParams = append(p.TypeParams, graph.TypeVarID(fieldVarint(f)))
			case pfNodeA:
				p.Body = fieldNodeID(f)
			default:
				unrecognized(f)
			}
		}
		return p, unknown, nil
	case graph.KindTypeApp:
		var p graph.TypeAppPayload
		for _, f := range fields {
			switch f.num {
			case pfNodeA:
				p.Abs = fieldNodeID(f)
			case pfNodeList:
				p.TypeArgs = append(p.TypeArgs, fieldNodeID(f))
			default:
				unrecognized(f)
			}
		}
		return p, unknown, nil
	case graph.KindDataDef:
		var p graph.DataDefPayload
		for _, f := range fields {
			switch f.num {
			case pfStrA:
				p.Name = fieldString(f)
			case pfStrList:
				p.ParamNames = append(p.ParamNames, fieldString(f))
			case pfNested:
				c, err := decodeCtorDecl(fieldBytes(f))
				if err != nil {
					return nil, nil, err
				}
				p.Ctors = append(p.Ctors, c)
			default:
				unrecognized(f)
			}
		}
		return p, unknown, nil
	case graph.KindDataCtor:
		var p graph.DataCtorPayload
		for _, f := range fields {
			switch f.num {
			case pfStrA:
				p.DataName = fieldString(f)
			case pfStrB:
				p.CtorName = fieldString(f)
			case pfNodeList:
				p.Args = append(p.Args, fieldNodeID(f))
			default:
				unrecognized(f)
			}
		}
		return p, unknown, nil
	case graph.KindDataMatch:
		var p graph.DataMatchPayload
		for _, f := range fields {
			switch f.num {
			case pfNodeA:
				p.Scrutinee = fieldNodeID(f)
			case pfNested:
				arm, err := decodeMatchArm(fieldBytes(f))
				if err != nil {
					return nil, nil, err
				}
				p.Arms = append(p.Arms, arm)
			default:
				unrecognized(f)
			}
		}
		return p, unknown, nil
	case graph.KindTypeNode:
		var p graph.TypeNodePayload
		for _, f := range fields {
			switch f.num {
			case pfByte:
				p.Shape.Tag = graph.StructuralTypeTag(fieldVarint(f))
			case pfNodeA:
				p.Shape.Param = fieldNodeID(f)
			case pfNodeB:
				p.Shape.Result = fieldNodeID(f)
			case pfNodeC:
				p.Shape.Elem = fieldNodeID(f)
			case pfStrA:
				p.Shape.ADTName = fieldString(f)
			case pfNodeList:
				p.Shape.ADTArgs = append(p.Shape.ADTArgs, fieldNodeID(f))
			case pfInt64:
				p.Shape.VarID = graph.TypeVarID(fieldVarint(f))
			default:
				unrecognized(f)
			}
		}
		return p, unknown, nil
	case graph.KindMetadata:
		var p graph.MetadataPayload
		for _, f := range fields {
			switch f.num {
			case pfNodeA:
				p.Target = fieldNodeID(f)
			case pfLocation:
				loc, err := decodeLocation(fieldBytes(f))
				if err != nil {
					return nil, nil, err
				}
				p.Location = loc
			case pfNodeList:
				p.Annotations = append(p.Annotations, fieldNodeID(f))
			default:
				unrecognized(f)
			}
		}
		return p, unknown, nil
	default:
		return nil, nil, &DeserializationError{Msg: "unknown node kind in wire data"}
	}
}
