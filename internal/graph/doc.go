// Package graph implements the Abstract Semantic Graph (ASG): the
// content-addressed, id-keyed program representation consumed by the
// validator, the type-and-effect checker, and the lowerer.
//
// A Graph is a map from NodeID to Node plus an optional root NodeID. Id 0 is
// reserved for "null / not set". Ids are monotonically allocated and never
// reused, including across deserialization (the id counter is advanced past
// the maximum loaded id). The graph is a rooted DAG by construction but may
// contain intentional back-references — most notably a Variable node's
// Definition field, which points at the binder (Lambda, TypeAbs, or a Match
// arm's pattern variable) that introduces it.
//
// The Graph owns every Node exclusively; NodeID references between nodes are
// relational lookups, never ownership. Node content may be freely read by
// every pass; only the owning Graph mutates the node table, and a node's Kind
// and ID are immutable once inserted.
package graph
