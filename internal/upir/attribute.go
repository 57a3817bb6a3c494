package upir

// AttrKind tags the variant held by an Attribute.
type AttrKind uint8

const (
	AttrString AttrKind = iota
	AttrInt
	AttrBool
	AttrTypeRef
)

// Attribute is a small tagged union attached to an Operation: a string, a
// 64-bit signed integer, a bool, or a reference to an interned TypeID. Op
// definitions document which attribute names they expect and which kind
// each holds (e.g. core.cmp's "predicate" is AttrString).
type Attribute struct {
	Kind   AttrKind
	Str    string
	Int    int64
	Bool   bool
	TypeID TypeID
}

func StringAttr(s string) Attribute { return Attribute{Kind: AttrString, Str: s} }
func IntAttr(i int64) Attribute     { return Attribute{Kind: AttrInt, Int: i} }
func BoolAttr(b bool) Attribute     { return Attribute{Kind: AttrBool, Bool: b} }
func TypeAttr(t TypeID) Attribute   { return Attribute{Kind: AttrTypeRef, TypeID: t} }
