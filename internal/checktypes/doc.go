// Package checktypes implements the checker's internal type representation:
// a Hindley-Milner core extended with Ref, rank-1 ForAll (System-F style
// type abstraction), and named ADTs, plus Robinson unification with an
// occurs-check. It is distinct from graph.StructuralType, which is the
// structural shape a TypeNode carries in source before inference runs.
package checktypes
