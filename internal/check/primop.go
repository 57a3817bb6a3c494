package check

import (
	"sort"

	"github.com/synapse-lang/synapsec/internal/checktypes"
)

// primOpSignature is a primitive's fixed arity and argument/result shape,
// applied as if the primop were sugar for nested Applications (SPEC_FULL.md
// §4.5.2). polymorphic signatures (e.g. "==") unify both arguments against a
// shared fresh variable instead of a fixed type.
type primOpSignature struct {
	arity       int
	argsInt     bool // fixed Int arguments
	argsBool    bool // fixed Bool arguments
	polymorphic bool // both arguments share one fresh type variable
	result      func(fresh *checktypes.FreshCounter) *checktypes.Type
}

var primOpSignatures = map[string]primOpSignature{
	"+":   {arity: 2, argsInt: true, result: constResult(checktypes.Int())},
	"-":   {arity: 2, argsInt: true, result: constResult(checktypes.Int())},
	"*":   {arity: 2, argsInt: true, result: constResult(checktypes.Int())},
	"/":   {arity: 2, argsInt: true, result: constResult(checktypes.Int())},
	"rem": {arity: 2, argsInt: true, result: constResult(checktypes.Int())},
	"<":   {arity: 2, argsInt: true, result: constResult(checktypes.Bool())},
	">":   {arity: 2, argsInt: true, result: constResult(checktypes.Bool())},
	"<=":  {arity: 2, argsInt: true, result: constResult(checktypes.Bool())},
	">=":  {arity: 2, argsInt: true, result: constResult(checktypes.Bool())},
	"&&":  {arity: 2, argsBool: true, result: constResult(checktypes.Bool())},
	"||":  {arity: 2, argsBool: true, result: constResult(checktypes.Bool())},
	"not": {arity: 1, argsBool: true, result: constResult(checktypes.Bool())},
	"==":  {arity: 2, polymorphic: true, result: constResult(checktypes.Bool())},
	"!=":  {arity: 2, polymorphic: true, result: constResult(checktypes.Bool())},
}

func constResult(t *checktypes.Type) func(*checktypes.FreshCounter) *checktypes.Type {
	return func(*checktypes.FreshCounter) *checktypes.Type { return t }
}

func effectUnion(sets ...map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for _, s := range sets {
		for e := range s {
			out[e] = struct{}{}
		}
	}
	return out
}

func effectList(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for e := range set {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}
