package upir

// TypeKind tags the variant held by a TypeDesc.
type TypeKind uint8

const (
	TyInt TypeKind = iota
	TyBool
	TyUnit
	TyFn
	TyRef
	TyADT
)

// TypeDesc is the IR-level description of an interned TypeID: a fully
// monomorphic shape, stripped of the unification metadata that
// internal/checktypes carries. The type table lives on Module so
// internal/upirtext can print every operand/result type by name.
type TypeDesc struct {
	Kind    TypeKind
	Param   TypeID
	Result  TypeID
	Elem    TypeID
	ADTName string
	ADTArgs []TypeID
}

// DatatypeDecl records one ADT's constructor layout for core.match lowering
// and for upirtext to print match arm field binders.
type DatatypeDecl struct {
	Name  string
	Ctors []CtorSig
}

// CtorSig is one constructor of a DatatypeDecl.
type CtorSig struct {
	Name       string
	FieldTypes []TypeID
}

// BlockArgument is a typed SSA value bound at block entry.
type BlockArgument struct {
	Value ValueID
	Type  TypeID
}

// Block is a basic block: an ordered argument list and an ordered operation
// list. The last operation of a block is expected to be a terminator
// (cf.br, cf.cond_br, or func.return) except for a function's sole block
// when the function body is a single straight-line region.
type Block struct {
	ID         BlockID
	Args       []BlockArgument
	Operations []*Operation
}

// Region is an ordered list of blocks; the first is the entry block. A
// function's body is one region; each arm of a core.match operation is a
// nested region attached to that operation.
type Region struct {
	Blocks []*Block
}

// MatchArmInfo names the constructor and bound field values for one region
// of a core.match operation, in the same order as Operation.Regions.
type MatchArmInfo struct {
	CtorName     string
	BinderValues []ValueID
}

// Operation is one dialect-qualified instruction (e.g. "core.add",
// "mem.load", "func.call"). Operand values must be defined earlier in the
// same block or bound by a dominating block argument; Results are fresh
// values this operation introduces, with ResultTypes the parallel type ids.
type Operation struct {
	Name        string
	Operands    []ValueID
	Results     []ValueID
	ResultTypes []TypeID
	Attributes  map[string]Attribute
	Regions     []*Region
	MatchArms   []MatchArmInfo
	EffectTags  []string
}

// FunctionSignature is a function's argument and result type list.
type FunctionSignature struct {
	ArgTypes    []TypeID
	ResultTypes []TypeID
}

// Function is a top-level named operation with a signature and a body
// region. TypeParams records the type variables a polymorphic function was
// generalized over (from a source TypeAbs); a monomorphic function has none.
type Function struct {
	Name       string
	Signature  FunctionSignature
	TypeParams []TypeID
	Regions    []*Region
}

// Module is the root of a UPIR program: its function list plus every
// declaration the functions' type ids and match operations reference.
type Module struct {
	Name          string
	Functions     []*Function
	DatatypeDecls []DatatypeDecl
	TypeTable     map[TypeID]TypeDesc
	EffectDecls   []string
}

// NewModule returns an empty Module ready for a lowering pass to populate.
func NewModule(name string) *Module {
	return &Module{
		Name:      name,
		TypeTable: make(map[TypeID]TypeDesc),
	}
}
