// Package upirtext renders and re-parses the MLIR-inspired diagnostic text
// form of a upir.Module described in spec.md §6.4. It exists for tests and
// human-facing diagnostics only; nothing in the compiler depends on this
// textual form as an interchange format (internal/serialize covers that).
package upirtext
