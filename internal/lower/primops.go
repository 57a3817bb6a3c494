package lower

import "github.com/synapse-lang/synapsec/internal/upir"

// primOpNames maps a PrimOpPayload.OpName to its core dialect op. Comparison
// operators all lower to core.cmp with a "predicate" attribute instead of
// getting one op each.
var primOpNames = map[string]string{
	"+":   upir.OpAdd,
	"-":   upir.OpSub,
	"*":   upir.OpMul,
	"/":   upir.OpDivS,
	"rem": upir.OpRemS,
	"&&":  upir.OpAnd,
	"||":  upir.OpOr,
	// "not" has no dedicated op in the dialect; see lowerPrimOp in expr.go,
	// which synthesizes xor(x, true).
	"<": upir.OpCmp,
	">":   upir.OpCmp,
	"<=":  upir.OpCmp,
	">=":  upir.OpCmp,
	"==":  upir.OpCmp,
	"!=":  upir.OpCmp,
}

var cmpPredicates = map[string]string{
	"<":  upir.PredicateLt,
	">":  upir.PredicateGt,
	"<=": upir.PredicateLe,
	">=": upir.PredicateGe,
	"==": upir.PredicateEq,
	"!=": upir.PredicateNe,
}
