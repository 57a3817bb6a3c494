// Package validate implements the structural linter: a single-pass,
// read-only check over a graph.Graph that flags referential-integrity,
// scoping, and shape problems before the type checker runs. It never
// mutates the graph and never infers types.
package validate
