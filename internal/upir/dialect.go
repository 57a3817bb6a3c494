package upir

// Operation name constants for the dialects a lowering pass emits. Names
// are dialect-qualified ("<dialect>.<op>") so a printer or verifier can
// group by prefix without parsing.
const (
	OpConstant = "core.constant"
	OpAdd      = "core.add"
	OpSub      = "core.sub"
	OpMul      = "core.mul"
	OpDivS     = "core.div_s"
	OpDivU     = "core.div_u"
	OpRemS     = "core.rem_s"
	OpRemU     = "core.rem_u"
	OpAnd      = "core.and"
	OpOr       = "core.or"
	OpXor      = "core.xor"
	OpCmp      = "core.cmp"   // attribute "predicate": one of the Predicate* strings below
	OpMatch    = "core.match" // one nested region per arm; see Operation.MatchArms

	OpAlloc = "mem.alloc"
	OpLoad  = "mem.load"
	OpStore = "mem.store"

	OpBr     = "cf.br"
	OpCondBr = "cf.cond_br"

	OpCall   = "func.call"
	OpReturn = "func.return"
)

// Predicate values for the "predicate" attribute of core.cmp.
const (
	PredicateEq = "eq"
	PredicateNe = "ne"
	PredicateLt = "lt"
	PredicateLe = "le"
	PredicateGt = "gt"
	PredicateGe = "ge"
)

// AttrPredicate is the conventional attribute name core.cmp keys its
// predicate attribute under.
const AttrPredicate = "predicate"

// AttrCallee is the conventional attribute name func.call keys the callee
// function name under.
const AttrCallee = "callee"

// AttrValue is the conventional attribute name core.constant keys its
// literal value under (an Int or Bool attribute).
const AttrValue = "value"
