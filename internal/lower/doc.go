// Package lower translates a type-and-effect-checked graph into the UPIR
// middle IR (internal/upir), one top-level Function per root or
// lambda-lifted closure.
package lower
