package lang

import "fmt"

// Position is a location in source text, 1-indexed for Line and Column.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ParseError is the single externally visible error kind produced by Parse.
// Parsing is all-or-nothing: a ParseError means no statements were produced.
type ParseError struct {
	Message  string
	Position Position
}

func (e ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.Position, e.Message)
}
