package upirtext

import "fmt"

// ParseError reports a lexical or syntactic problem at a specific position.
type ParseError struct {
	Line, Col int
	Message   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("upirtext: %d:%d: %s", e.Line, e.Col, e.Message)
}
