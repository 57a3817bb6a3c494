package graph

// Kind tags the variant payload carried by a Node. It is the "kind" field
// referenced throughout the specification and the single byte used as the
// canonical hash's tag byte (see internal/hashing).
type Kind uint8

const (
	// KindInvalid never appears in a well-formed graph; it is the zero value
	// so that an uninitialized Node is recognizably invalid rather than
	// silently aliasing a real kind.
	KindInvalid Kind = iota
	KindVariable
	KindLambda
	KindApplication
	KindLitInt
	KindLitBool
	KindPrimOp
	KindRef
	KindDeref
	KindAssign
	KindEffectPerform
	KindTypeAbs
	KindTypeApp
	KindDataDef
	KindDataCtor
	KindDataMatch
	KindTypeNode
	KindMetadata
)

var kindNames = map[Kind]string{
	KindInvalid:       "Invalid",
	KindVariable:      "Variable",
	KindLambda:        "Lambda",
	KindApplication:   "Application",
	KindLitInt:        "LitInt",
	KindLitBool:       "LitBool",
	KindPrimOp:        "PrimOp",
	KindRef:           "Ref",
	KindDeref:         "Deref",
	KindAssign:        "Assign",
	KindEffectPerform: "EffectPerform",
	KindTypeAbs:       "TypeAbs",
	KindTypeApp:       "TypeApp",
	KindDataDef:       "DataDef",
	KindDataCtor:      "DataCtor",
	KindDataMatch:     "DataMatch",
	KindTypeNode:      "TypeNode",
	KindMetadata:      "Metadata",
}

// String implements fmt.Stringer for diagnostics and the canonical hash's
// ASCII variant marker.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsBinderCandidate reports whether a node of this kind can be the target of
// a Variable's Definition field. Lambda and TypeAbs are binders directly;
// Variable nodes are also binder candidates because a Match arm's pattern
// variables are themselves plain Variable nodes with Definition left unset.
func (k Kind) IsBinderCandidate() bool {
	switch k {
	case KindLambda, KindTypeAbs, KindVariable:
		return true
	default:
		return false
	}
}
