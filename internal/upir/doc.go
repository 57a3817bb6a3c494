// Package upir defines the middle intermediate representation: an
// MLIR-inspired SSA form with typed block arguments, dialect-qualified
// operation names, and a tagged-union attribute value. It is produced by
// internal/lower and consumed by internal/upirtext for diagnostics and by
// the (out-of-scope) native backend.
package upir
