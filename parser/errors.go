package parser

import (
	"fmt"

	"github.com/granadev/grana/ast"
)

// LexError is an unrecognized or malformed byte run in the source.
// The lexer skips the offending span and continues.
type LexError struct {
	Span    ast.Span
	Message string
}

func (e *LexError) Error() string {
	return e.Message
}

// GetSpan returns the byte range the error covers.
func (e *LexError) GetSpan() ast.Span {
	return e.Span
}

// ParseError is a token sequence that matched no statement grammar, an
// account exceeding its segment cap, or a calendar-invalid date. The parser
// records it and resumes at the next statement boundary.
type ParseError struct {
	Span    ast.Span
	Line    int
	Message string

	// Expected and Found carry the grammar's expectation and the offending
	// token text when known; either may be empty.
	Expected string
	Found    string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// GetSpan returns the byte range the error covers.
func (e *ParseError) GetSpan() ast.Span {
	return e.Span
}
