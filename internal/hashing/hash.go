package hashing

import (
	"encoding/binary"

	"lukechampine.com/blake3"

	"github.com/synapse-lang/synapsec/internal/graph"
)

// Digest is a 32-byte BLAKE3 fingerprint.
type Digest [32]byte

// HashNode computes the canonical digest of a single node.
func HashNode(n *graph.Node) Digest {
	return blake3.Sum256(canonicalizeNode(n))
}

// HashGraph computes the canonical digest of an entire graph: every node's
// digest, concatenated in ascending NodeID order, followed by the
// little-endian root id.
func HashGraph(g *graph.Graph) Digest {
	var buf []byte
	for _, id := range g.NodeIDs() {
		n, _ := g.Get(id)
		d := HashNode(n)
		buf = append(buf, d[:]...)
	}
	var rootBytes [8]byte
	binary.LittleEndian.PutUint64(rootBytes[:], uint64(g.Root()))
	buf = append(buf, rootBytes[:]...)
	return blake3.Sum256(buf)
}

func appendU64(buf []byte, v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return append(buf, b[:]...)
}

func appendNodeID(buf []byte, id graph.NodeID) []byte {
	return appendU64(buf, uint64(id))
}

func appendBool(buf []byte, b bool) []byte {
	if b {
		return append(buf, 1)
	}
	return append(buf, 0)
}

// canonicalizeNode produces the fixed-order byte encoding hashed for a
// single node: a tag byte (the Kind discriminator), a constant ASCII variant
// marker, then variant-specific fields in declaration order. Strings are
// encoded as raw UTF-8 bytes with no length prefix — the fixed field order
// that follows disambiguates them.
func canonicalizeNode(n *graph.Node) []byte {
	buf := []byte{byte(n.Kind())}

	switch p := n.Payload.(type) {
	case graph.VariablePayload:
		buf = append(buf, "Variable"...)
		buf = append(buf, p.Name...)
		buf = appendNodeID(buf, p.Definition)
	case graph.LambdaPayload:
		buf = append(buf, "Lambda"...)
		buf = appendNodeID(buf, p.Binder)
		buf = appendNodeID(buf, p.Body)
		buf = appendNodeID(buf, p.TypeAnnot)
	case graph.ApplicationPayload:
		buf = append(buf, "Application"...)
		buf = appendNodeID(buf, p.Function)
		buf = appendNodeID(buf, p.Argument)
	case graph.LitIntPayload:
		buf = append(buf, "LitInt"...)
		buf = appendU64(buf, uint64(p.Value))
	case graph.LitBoolPayload:
		buf = append(buf, "LitBool"...)
		buf = appendBool(buf, p.Value)
	case graph.PrimOpPayload:
		buf = append(buf, "PrimOp"...)
		buf = append(buf, p.OpName...)
		for _, a := range p.Args {
			buf = appendNodeID(buf, a)
		}
	case graph.RefPayload:
		buf = append(buf, "Ref"...)
		buf = appendNodeID(buf, p.Init)
	case graph.DerefPayload:
		buf = append(buf, "Deref"...)
		buf = appendNodeID(buf, p.Ref)
	case graph.AssignPayload:
		buf = append(buf, "Assign"...)
		buf = appendNodeID(buf, p.Ref)
		buf = appendNodeID(buf, p.Value)
	case graph.EffectPerformPayload:
		buf = append(buf, "EffectPerform"...)
		buf = append(buf, p.EffectName...)
		buf = appendNodeID(buf, p.Value)
	case graph.TypeAbsPayload:
		buf = append(buf, "TypeAbs"...)
		for _, v := range p.TypeParams {
			buf = appendU64(buf, uint64(v))
		}
		buf = appendNodeID(buf, p.Body)
	case graph.TypeAppPayload:
		buf = append(buf, "TypeApp"...)
		buf = appendNodeID(buf, p.Abs)
		for _, a := range p.TypeArgs {
			buf = appendNodeID(buf, a)
		}
	case graph.DataDefPayload:
		buf = append(buf, "DataDef"...)
		buf = append(buf, p.Name...)
		for _, pn := range p.ParamNames {
			buf = append(buf, pn...)
		}
		for _, c := range p.Ctors {
			buf = append(buf, c.Name...)
			for _, f := range c.FieldTypes {
				buf = appendNodeID(buf, f)
			}
		}
	case graph.DataCtorPayload:
		buf = append(buf, "DataCtor"...)
		buf = append(buf, p.DataName...)
		buf = append(buf, p.CtorName...)
		for _, a := range p.Args {
			buf = appendNodeID(buf, a)
		}
	case graph.DataMatchPayload:
		buf = append(buf, "DataMatch"...)
		buf = appendNodeID(buf, p.Scrutinee)
		for _, arm := range p.Arms {
			buf = append(buf, arm.CtorName...)
			buf = appendBool(buf, arm.Wildcard)
			for _, b := range arm.Binders {
				buf = appendNodeID(buf, b)
			}
			buf = appendNodeID(buf, arm.Body)
		}
	case graph.TypeNodePayload:
		buf = append(buf, "TypeNode"...)
		buf = append(buf, byte(p.Shape.Tag))
		buf = appendNodeID(buf, p.Shape.Param)
		buf = appendNodeID(buf, p.Shape.Result)
		buf = appendNodeID(buf, p.Shape.Elem)
		buf = append(buf, p.Shape.ADTName...)
		for _, a := range p.Shape.ADTArgs {
			buf = appendNodeID(buf, a)
		}
		buf = appendU64(buf, uint64(p.Shape.VarID))
	case graph.MetadataPayload:
		buf = append(buf, "Metadata"...)
		buf = appendNodeID(buf, p.Target)
		if p.Location != nil {
			buf = append(buf, p.Location.File...)
			buf = appendU64(buf, uint64(p.Location.StartLine))
			buf = appendU64(buf, uint64(p.Location.StartCol))
			buf = appendU64(buf, uint64(p.Location.EndLine))
			buf = appendU64(buf, uint64(p.Location.EndCol))
		}
		for _, a := range p.Annotations {
			buf = appendNodeID(buf, a)
		}
	}
	return buf
}
