package serialize

import (
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/synapse-lang/synapsec/internal/graph"
)

// Wire field numbers for the top-level GraphMessage, per SPEC_FULL.md §4.3.1.
const (
	fieldGraphNodes = protowire.Number(1)
	fieldGraphRoot  = protowire.Number(2)
)

// Wire field numbers within an encoded Node.
const (
	fieldNodeID      = protowire.Number(1)
	fieldNodeKind    = protowire.Number(2)
	fieldNodePayload = protowire.Number(3)
)

// Generic payload field slots, reused across node kinds. Which slot carries
// which logical field is determined by the kind, matching a hand-written
// (non-protoc-generated) wire-compatible encoding: the field numbers are the
// stable contract, not a shared .proto schema.
const (
	pfStrA      = protowire.Number(1) // Name / OpName / EffectName / DataName / CtorName
	pfStrB      = protowire.Number(2) // second string (e.g. CtorName when DataName is pfStrA)
	pfNodeA     = protowire.Number(3)
	pfNodeB     = protowire.Number(4)
	pfNodeC     = protowire.Number(5)
	pfNodeList  = protowire.Number(6) // repeated NodeID, unpacked (one tag per element)
	pfInt64     = protowire.Number(7)
	pfBool      = protowire.Number(8)
	pfVarList   = protowire.Number(9)  // repeated TypeVarID
	pfStrList   = protowire.Number(10) // repeated string
	pfNested    = protowire.Number(11) // repeated nested sub-message (Ctors / Arms)
	pfByte      = protowire.Number(12)
	pfLocation  = protowire.Number(13) // nested SourceLocation
	pfWildcard  = protowire.Number(14)
)

func appendVarintField(buf []byte, num protowire.Number, v uint64) []byte {
	buf = protowire.AppendTag(buf, num, protowire.VarintType)
	return protowire.AppendVarint(buf, v)
}

func appendBytesField(buf []byte, num protowire.Number, v []byte) []byte {
	buf = protowire.AppendTag(buf, num, protowire.BytesType)
	return protowire.AppendBytes(buf, v)
}

func appendStringField(buf []byte, num protowire.Number, s string) []byte {
	return appendBytesField(buf, num, []byte(s))
}

func appendNodeIDField(buf []byte, num protowire.Number, id graph.NodeID) []byte {
	return appendVarintField(buf, num, uint64(id))
}

func appendBoolField(buf []byte, num protowire.Number, b bool) []byte {
	v := uint64(0)
	if b {
		v = 1
	}
	return appendVarintField(buf, num, v)
}

// rawField is one decoded (tag, raw-value-bytes-including-tag) pair, used
// both for dispatch and for preserving fields a given kind's decoder does
// not recognize.
type rawField struct {
	num  protowire.Number
	typ  protowire.Type
	full []byte // tag + value, as it appeared on the wire
	val  []byte // value only (meaning depends on typ)
}

func consumeFields(b []byte) ([]rawField, error) {
	var fields []rawField
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, &DeserializationError{Msg: "malformed field tag"}
		}
		tagLen := n
		var valLen int
		switch typ {
		case protowire.VarintType:
			_, valLen = protowire.ConsumeVarint(b[tagLen:])
		case protowire.Fixed64Type:
			_, valLen = protowire.ConsumeFixed64(b[tagLen:])
		case protowire.Fixed32Type:
			_, valLen = protowire.ConsumeFixed32(b[tagLen:])
		case protowire.BytesType:
			_, valLen = protowire.ConsumeBytes(b[tagLen:])
		default:
			return nil, &DeserializationError{Msg: "unsupported wire type"}
		}
		if valLen < 0 {
			return nil, &DeserializationError{Msg: "malformed field value"}
		}
		total := tagLen + valLen
		fields = append(fields, rawField{
			num:  num,
			typ:  typ,
			full: b[:total],
			val:  b[tagLen:total],
		})
		b = b[total:]
	}
	return fields, nil
}

func fieldVarint(f rawField) uint64 {
	v, _ := protowire.ConsumeVarint(f.val)
	return v
}

func fieldBytes(f rawField) []byte {
	v, _ := protowire.ConsumeBytes(f.val)
	return v
}

func fieldString(f rawField) string { return string(fieldBytes(f)) }

func fieldNodeID(f rawField) graph.NodeID { return graph.NodeID(fieldVarint(f)) }
