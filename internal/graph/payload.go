package graph

// Payload is implemented by every node variant's content struct. Exactly one
// Payload value is carried by each Node; Kind() identifies which one.
type Payload interface {
	Kind() Kind
}

// VariablePayload is a reference to a binder. Definition is 0 for a free or
// not-yet-resolved variable (the parser leaves it unresolved; the validator
// flags it as SCOPE).
type VariablePayload struct {
	Name       string
	Definition NodeID
}

func (VariablePayload) Kind() Kind { return KindVariable }

// LambdaPayload introduces Binder in its Body's scope. TypeAnnot is 0 when
// the source carried no explicit annotation.
type LambdaPayload struct {
	Binder    NodeID
	Body      NodeID
	TypeAnnot NodeID
}

func (LambdaPayload) Kind() Kind { return KindLambda }

// ApplicationPayload applies Function to Argument.
type ApplicationPayload struct {
	Function NodeID
	Argument NodeID
}

func (ApplicationPayload) Kind() Kind { return KindApplication }

// LitIntPayload is an integer literal.
type LitIntPayload struct {
	Value int64
}

func (LitIntPayload) Kind() Kind { return KindLitInt }

// LitBoolPayload is a boolean literal.
type LitBoolPayload struct {
	Value bool
}

func (LitBoolPayload) Kind() Kind { return KindLitBool }

// PrimOpPayload applies a fixed-arity primitive operation by name.
type PrimOpPayload struct {
	OpName string
	Args   []NodeID
}

func (PrimOpPayload) Kind() Kind { return KindPrimOp }

// RefPayload allocates a reference cell initialized to the value of Init.
type RefPayload struct {
	Init NodeID
}

func (RefPayload) Kind() Kind { return KindRef }

// DerefPayload reads the current value of a reference cell.
type DerefPayload struct {
	Ref NodeID
}

func (DerefPayload) Kind() Kind { return KindDeref }

// AssignPayload stores Value into the cell referenced by Ref.
type AssignPayload struct {
	Ref   NodeID
	Value NodeID
}

func (AssignPayload) Kind() Kind { return KindAssign }

// EffectPerformPayload performs the named effect, threading Value through as
// the performed computation's argument.
type EffectPerformPayload struct {
	EffectName string
	Value      NodeID
}

func (EffectPerformPayload) Kind() Kind { return KindEffectPerform }

// TypeAbsPayload is a rank-1 type abstraction (∀ TypeParams. Body).
type TypeAbsPayload struct {
	TypeParams []TypeVarID
	Body       NodeID
}

func (TypeAbsPayload) Kind() Kind { return KindTypeAbs }

// TypeAppPayload instantiates a TypeAbs with concrete type arguments. The
// TypeArgs reference TypeNode nodes.
type TypeAppPayload struct {
	Abs      NodeID
	TypeArgs []NodeID
}

func (TypeAppPayload) Kind() Kind { return KindTypeApp }

// CtorDecl is one constructor of a DataDef: a name and the NodeIDs of its
// field TypeNodes, in declaration order.
type CtorDecl struct {
	Name       string
	FieldTypes []NodeID
}

// DataDefPayload declares an algebraic data type. It contributes no type to
// the node that carries it; it registers the type and its constructors in
// the checker's environment.
type DataDefPayload struct {
	Name       string
	ParamNames []string
	Ctors      []CtorDecl
}

func (DataDefPayload) Kind() Kind { return KindDataDef }

// DataCtorPayload constructs a value of an ADT by applying the named
// constructor (looked up by name against the DataDef registry) to Args.
type DataCtorPayload struct {
	DataName string
	CtorName string
	Args     []NodeID
}

func (DataCtorPayload) Kind() Kind { return KindDataCtor }

// MatchArm is one arm of a DataMatch: either a concrete constructor pattern
// (CtorName set, Binders one plain Variable node per field in declaration
// order, each a binder per Kind.IsBinderCandidate) or a wildcard arm
// (Wildcard true, CtorName empty, no Binders).
type MatchArm struct {
	CtorName string
	Binders  []NodeID
	Wildcard bool
	Body     NodeID
}

// DataMatchPayload eliminates an ADT value by dispatching on its
// constructor.
type DataMatchPayload struct {
	Scrutinee NodeID
	Arms      []MatchArm
}

func (DataMatchPayload) Kind() Kind { return KindDataMatch }

// StructuralTypeTag distinguishes the shapes a TypeNode can carry.
type StructuralTypeTag uint8

const (
	StructuralInvalid StructuralTypeTag = iota
	StructuralInt
	StructuralBool
	StructuralUnit
	StructuralFn
	StructuralRef
	StructuralADT
	StructuralVar
)

// TypeNodePayload is a structural type appearing in source (e.g. a Lambda's
// TypeAnnot or a DataCtor field type), as opposed to checktypes.Type, which
// is the checker's internal unification representation built while
// inferring.
type TypeNodePayload struct {
	Shape StructuralType
}

// StructuralType is the structural shape of a TypeNode. Only the fields
// matching Tag are meaningful.
type StructuralType struct {
	Tag StructuralTypeTag

	// StructuralFn
	Param  NodeID
	Result NodeID

	// StructuralRef
	Elem NodeID

	// StructuralADT
	ADTName string
	ADTArgs []NodeID

	// StructuralVar (a reference to an enclosing TypeAbs's parameter)
	VarID TypeVarID
}

func (TypeNodePayload) Kind() Kind { return KindTypeNode }

// MetadataPayload attaches diagnostic information to Target: an optional
// source location and a list of further annotation NodeIDs (reserved for
// future annotation kinds; the core does not interpret them).
type MetadataPayload struct {
	Target      NodeID
	Location    *SourceLocation
	Annotations []NodeID
}

func (MetadataPayload) Kind() Kind { return KindMetadata }
