package graph

import "fmt"

// SourceLocation is carried by Metadata node payloads and surfaced by
// diagnostics and type errors whenever a Metadata node targets the
// responsible NodeID. Absence of a Metadata node is not an error; passes
// simply omit the location.
type SourceLocation struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// String renders "file:startLine:startCol" for compact diagnostic output.
func (l SourceLocation) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.StartLine, l.StartCol)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.StartLine, l.StartCol)
}
