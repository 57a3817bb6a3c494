// Package check drives Algorithm W type-and-effect inference over a
// graph.Graph: a single post-order traversal from the root that produces a
// TypeMap, an EffectMap, and either nil or the first TypeError/EffectError
// encountered. It is the union of type_checker_l1's Hindley-Milner core and
// type_checker_l2's System-F and ADT extensions, described together in
// SPEC_FULL.md §4.5.
package check
