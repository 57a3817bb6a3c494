package validate

import (
	"fmt"

	"github.com/synapse-lang/synapsec/internal/graph"
)

// Code identifies the category of a Diagnostic.
type Code string

const (
	// Integrity flags a referenced NodeID that is absent from the graph.
	Integrity Code = "INTEGRITY"
	// Scope flags a Variable whose Definition does not resolve, or resolves
	// to a node that is not a binder.
	Scope Code = "SCOPE"
	// Application flags an Application whose Function is obviously not
	// callable.
	Application Code = "APPLICATION"
	// Assignment flags an Assign whose Ref is obviously not a reference
	// cell.
	Assignment Code = "ASSIGNMENT"
)

// Diagnostic is one non-fatal finding. Location is nil unless a Metadata
// node in the graph targets NodeID.
type Diagnostic struct {
	Code     Code
	Message  string
	NodeID   graph.NodeID
	Location *graph.SourceLocation
}

func (d Diagnostic) String() string {
	if d.Location != nil {
		return fmt.Sprintf("%s: %s (node %d, %s)", d.Code, d.Message, d.NodeID, d.Location)
	}
	return fmt.Sprintf("%s: %s (node %d)", d.Code, d.Message, d.NodeID)
}
