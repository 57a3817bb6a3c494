// Package hashing computes deterministic BLAKE3 fingerprints of ASG nodes
// and graphs, per spec.md §4.2: a fixed canonical byte encoding (tag byte +
// ASCII variant marker + little-endian integers + raw UTF-8 strings) so that
// two graphs with the same id→node mapping and root hash identically
// regardless of insertion order, while two graphs differing only in which
// ids are assigned to which nodes hash differently — node identity is part
// of a graph's identity because cross-references use it.
//
// The hash is intentionally not α-equivalence-insensitive: two structurally
// equal lambdas with differently numbered binders hash differently, matching
// the original implementation's documented behavior.
package hashing
