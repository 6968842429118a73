// errors.go: diagnostic types and their exact-format renderings. Each is a
// named type carrying Line/Col (or, for a runtime error, the enclosing
// function name), rendered by a dedicated Error() method rather than a
// shared caret-snippet formatter, since the diagnostic text itself is
// contractual and must not vary with surrounding source.
package bc

import "fmt"

// SyntaxError is raised when the parser cannot match a production. Col is
// the column of the offending token's first character.
type SyntaxError struct {
	Message string
	Lexeme  string
	Line    int
	Col     int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("\n%s \"%s\" at line %d, column %d\n", e.Message, e.Lexeme, e.Line, e.Col)
}

// SemanticError is raised by the semantic checker.
type SemanticError struct {
	Message string
	Line    int
	Col     int
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("\nsemantic error: %s at line %d, column %d.\n", e.Message, e.Line, e.Col)
}

// RuntimeErr is raised during evaluation. Func is the name of the
// currently executing function, or "(main)" at the top level.
type RuntimeErr struct {
	Func    string
	Message string
}

func (e *RuntimeErr) Error() string {
	return fmt.Sprintf("\nruntime error in function %s: %s.\n", e.Func, e.Message)
}

// IllegalCharError reports a byte the tokenizer could not classify.
type IllegalCharError struct {
	Rendered string
	Line     int
	Col      int
}

func (e *IllegalCharError) Error() string {
	return fmt.Sprintf("\nillegal character: %s at line %d column %d\n", e.Rendered, e.Line, e.Col)
}

// errNeedMoreInput is a sentinel the parser returns when the token stream
// ran out in the middle of a construct that is still syntactically valid so
// far (an unmatched '{', a "define" header with no body yet, and so on).
// It is not a diagnostic — the REPL driver catches it and asks for another
// line of input rather than reporting an error.
type needMoreInputErr struct{}

func (needMoreInputErr) Error() string { return "bc: need more input" }

var errNeedMoreInput error = needMoreInputErr{}

// IsNeedMoreInput reports whether err is the need-more-input sentinel.
func IsNeedMoreInput(err error) bool {
	_, ok := err.(needMoreInputErr)
	return ok
}
