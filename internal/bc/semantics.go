// semantics.go: the per-command semantic checker. Runs interleaved with
// parsing — each check is invoked at the point the parser recognizes the
// construct it governs, with that construct's token position, so
// diagnostics carry the right line/column without a separate AST walk.
package bc

// Checker tracks the structural state needed to validate one command:
// whether we're inside a function body, how many while-loops we're
// lexically nested in, and the names declared so far as parameters/autos
// of the function currently being defined (nil outside a definition).
type Checker struct {
	inFunction    bool
	loopDepth     int
	declared      map[string]bool // params ∪ autos of the function being defined
	err           error           // first semantic error seen this command, if any
}

// Reset clears all state for the next command.
func (c *Checker) Reset() {
	c.inFunction = false
	c.loopDepth = 0
	c.declared = nil
	c.err = nil
}

// Err returns the first semantic error recorded this command, or nil.
func (c *Checker) Err() error { return c.err }

func (c *Checker) fail(tok Token, msg string) {
	if c.err == nil {
		c.err = &SemanticError{Message: msg, Line: tok.Line, Col: tok.Col}
	}
}

// EnterFunction marks the start of a "define" body.
func (c *Checker) EnterFunction() {
	c.inFunction = true
	c.declared = map[string]bool{}
}

// ExitFunction marks the end of a "define" body.
func (c *Checker) ExitFunction() {
	c.inFunction = false
}

// EnterLoop marks having parsed a "while" head; ExitLoop its matching close.
func (c *Checker) EnterLoop() { c.loopDepth++ }
func (c *Checker) ExitLoop()  { c.loopDepth-- }

// CheckBreak validates a break at tok's position.
func (c *Checker) CheckBreak(tok Token) {
	if c.loopDepth == 0 {
		c.fail(tok, "break outside while")
	}
}

// CheckContinue validates a continue at tok's position.
func (c *Checker) CheckContinue(tok Token) {
	if c.loopDepth == 0 {
		c.fail(tok, "continue outside while")
	}
}

// CheckReturn validates a return at tok's position.
func (c *Checker) CheckReturn(tok Token) {
	if !c.inFunction {
		c.fail(tok, "return outside function definition")
	}
}

// CheckParamName records a new parameter name and rejects a repeat of an
// earlier parameter.
func (c *Checker) CheckParamName(name string, tok Token) {
	if c.declared[name] {
		c.fail(tok, "duplicate name in parameter or auto variable list")
	}
	c.declared[name] = true
}

// CheckAutoName records a new auto name and rejects a repeat of an earlier
// auto or any parameter.
func (c *Checker) CheckAutoName(name string, tok Token) {
	if c.declared[name] {
		c.fail(tok, "duplicate name in parameter or auto variable list")
	}
	c.declared[name] = true
}
