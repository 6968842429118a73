// parser.go: the recursive-descent / operator-precedence parser. A single
// struct wraps the token source plus one token of lookahead; each grammar
// production gets its own parseX method returning (value, error).
//
// Every node is pushed onto an AllocTracker the instant it is built and
// popped back off the instant it is adopted by a parent (see tracker.go),
// so a failed parse can discard exactly the fragments that were in flight.
package bc

// Parser turns a token stream into one Command at a time.
type Parser struct {
	lex     *Lexer
	tracker AllocTracker
	checker Checker

	tok  Token // current token
	have bool  // whether tok has been fetched yet
}

// NewParser returns a parser reading tokens from lex.
func NewParser(lex *Lexer) *Parser {
	return &Parser{lex: lex}
}

// ---- token stream helpers -------------------------------------------------

func (p *Parser) peek() Token {
	if !p.have {
		p.tok = p.lex.Next()
		p.have = true
	}
	return p.tok
}

func (p *Parser) advance() Token {
	t := p.peek()
	p.have = false
	return t
}

func (p *Parser) at(k Kind) bool { return p.peek().Kind == k }

func (p *Parser) expect(k Kind, what string) (Token, error) {
	t := p.peek()
	if t.Kind == EOF {
		return Token{}, errNeedMoreInput
	}
	if t.Kind != k {
		return Token{}, p.syntaxErr(what, t)
	}
	return p.advance(), nil
}

func (p *Parser) syntaxErr(expected string, got Token) error {
	if got.Kind == ILLEGAL {
		return &IllegalCharError{Rendered: got.Lexeme, Line: got.Line, Col: got.Col}
	}
	return &SyntaxError{Message: "expected " + expected + " but got", Lexeme: got.Lexeme, Line: got.Line, Col: got.Col}
}

func (p *Parser) skipNewlines() {
	for p.at(NEWLINE) {
		p.advance()
	}
}

// ---- tracker helpers -------------------------------------------------------

func (p *Parser) trackExpr(e Expr) Expr {
	p.tracker.Push(e)
	return e
}

func (p *Parser) trackStmt(s Stmt) Stmt {
	p.tracker.Push(s)
	return s
}

func (p *Parser) combine(n int, parent any) {
	p.tracker.PopAndPush(n, parent)
}

// ---- entry point -----------------------------------------------------------

// Command parses one top-level command: a function definition or a
// sequence of statements terminated by a newline. Returns errNeedMoreInput
// if the stream ran out mid-construct, a *SyntaxError / *SemanticError on a
// genuine diagnostic (in which case the tracker has already been drained),
// or (cmd, nil) on success (in which case the tracker is empty again).
func (p *Parser) Command() (*Command, error) {
	p.checker.Reset()

	for p.at(NEWLINE) {
		p.advance()
	}
	if p.at(EOF) {
		return nil, errNeedMoreInput
	}

	var cmd *Command
	var err error
	if p.at(DEFINE) {
		cmd, err = p.parseDefineCommand()
	} else {
		cmd, err = p.parseStmtListCommand()
	}
	if err != nil {
		p.tracker.ReleaseAll()
		return nil, err
	}
	if semErr := p.checker.Err(); semErr != nil {
		p.tracker.ReleaseAll()
		return nil, semErr
	}
	// The command's root (its Block or FunctionDefinition) is the one
	// fragment still tracked; it leaves the tracker with the returned value.
	p.tracker.Pop(1)
	return cmd, nil
}

func (p *Parser) parseDefineCommand() (*Command, error) {
	p.advance() // DEFINE
	p.checker.EnterFunction()
	defer p.checker.ExitFunction()

	nameTok, err := p.expect(IDENT, "a function name")
	if err != nil {
		return nil, err
	}
	name := nameTok.Lexeme

	if _, err := p.expect(LPAREN, "'('"); err != nil {
		return nil, err
	}
	params, err := p.parseNameList(RPAREN)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN, "')'"); err != nil {
		return nil, err
	}

	var autos []string
	if p.at(AUTO) {
		p.advance()
		autos, err = p.parseAutoList()
		if err != nil {
			return nil, err
		}
	}

	p.skipNewlines()
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	fd := &FunctionDefinition{Name: name, Params: params, Autos: autos, Body: body}
	p.combine(1, fd) // adopts body, which was pushed by parseBlock

	p.skipNewlines()

	return &Command{Def: fd}, nil
}

// parseNameList reads a comma-separated list of identifiers up to (not
// consuming) the closing token, enforcing CheckParamName on each.
func (p *Parser) parseNameList(closing Kind) ([]string, error) {
	var names []string
	if p.at(closing) {
		return names, nil
	}
	for {
		tok, err := p.expect(IDENT, "a parameter name")
		if err != nil {
			return nil, err
		}
		h := p.tracker.NoteString(tok.Lexeme)
		p.checker.CheckParamName(tok.Lexeme, tok)
		names = append(names, p.tracker.ConsumeString(h))
		if p.at(COMMA) {
			p.advance()
			continue
		}
		break
	}
	return names, nil
}

func (p *Parser) parseAutoList() ([]string, error) {
	var names []string
	for {
		tok, err := p.expect(IDENT, "an auto variable name")
		if err != nil {
			return nil, err
		}
		h := p.tracker.NoteString(tok.Lexeme)
		p.checker.CheckAutoName(tok.Lexeme, tok)
		names = append(names, p.tracker.ConsumeString(h))
		if p.at(COMMA) {
			p.advance()
			continue
		}
		break
	}
	return names, nil
}

// parseStmtListCommand parses the top-level sequence of ';'-separated
// statements that ends at a newline (or EOF) not nested inside any '{'/
// '(' — ';' separates statements here as it does in a braced block, but a
// newline ends the command instead of separating statements.
func (p *Parser) parseStmtListCommand() (*Command, error) {
	var stmts []Stmt
	for {
		if p.at(NEWLINE) || p.at(EOF) {
			if p.at(NEWLINE) {
				p.advance()
			}
			break
		}
		st, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)

		consumed := false
		for p.at(SEMICOLON) {
			p.advance()
			consumed = true
		}
		if !consumed && !p.at(NEWLINE) && !p.at(EOF) {
			t := p.peek()
			return nil, p.syntaxErr("';' or newline", t)
		}
	}
	block := &Block{Stmts: stmts}
	p.combine(len(stmts), block)
	return &Command{Stmts: block}, nil
}

// ---- statements -------------------------------------------------------------

func (p *Parser) parseBlock() (*Block, error) {
	if _, err := p.expect(LBRACE, "'{'"); err != nil {
		return nil, err
	}
	p.skipNewlines()

	var stmts []Stmt
	for !p.at(RBRACE) {
		if p.at(EOF) {
			return nil, errNeedMoreInput
		}
		st, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
		for p.at(SEMICOLON) || p.at(NEWLINE) {
			p.advance()
		}
	}
	p.advance() // RBRACE

	block := &Block{Stmts: stmts}
	p.combine(len(stmts), block)
	return block, nil
}

func (p *Parser) parseStatement() (Stmt, error) {
	switch p.peek().Kind {
	case LBRACE:
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return b, nil
	case IF:
		return p.parseIf()
	case WHILE:
		return p.parseWhile()
	case BREAK:
		tok := p.advance()
		p.checker.CheckBreak(tok)
		return p.trackStmt(&Break{}), nil
	case CONTINUE:
		tok := p.advance()
		p.checker.CheckContinue(tok)
		return p.trackStmt(&Continue{}), nil
	case HALT:
		p.advance()
		return p.trackStmt(&Halt{}), nil
	case RETURN:
		return p.parseReturn()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseExprStmt() (Stmt, error) {
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	st := &ExprStmt{Expr: e}
	p.combine(1, st)
	return st, nil
}

func (p *Parser) parseReturn() (Stmt, error) {
	tok := p.advance() // RETURN
	p.checker.CheckReturn(tok)

	if p.at(NEWLINE) || p.at(SEMICOLON) || p.at(RBRACE) || p.at(EOF) {
		ret := &Return{}
		p.tracker.Push(ret)
		return ret, nil
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	ret := &Return{Expr: e}
	p.combine(1, ret)
	return ret, nil
}

func (p *Parser) parseIf() (Stmt, error) {
	p.advance() // IF
	if _, err := p.expect(LPAREN, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN, "')'"); err != nil {
		return nil, err
	}
	p.skipNewlines()

	thenStmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	elseStmt, hasElse, err := p.tryParseElse()
	if err != nil {
		return nil, err
	}

	n := 2
	stmt := &If{Cond: cond, Then: thenStmt}
	if hasElse {
		stmt.Else = elseStmt
		n = 3
	}
	p.combine(n, stmt)
	return stmt, nil
}

// tryParseElse looks past an optional ';' and any newlines for an "else"
// attached to the if just parsed, rolling back if it finds something else —
// that ';' belongs to the enclosing statement list, not to this if.
func (p *Parser) tryParseElse() (Stmt, bool, error) {
	save := *p.lex
	saveTok, saveHave := p.tok, p.have

	if p.at(SEMICOLON) {
		p.advance()
	}
	p.skipNewlines()
	if !p.at(ELSE) {
		*p.lex = save
		p.tok, p.have = saveTok, saveHave
		return nil, false, nil
	}
	p.advance() // ELSE
	p.skipNewlines()
	st, err := p.parseStatement()
	if err != nil {
		return nil, false, err
	}
	return st, true, nil
}

func (p *Parser) parseWhile() (Stmt, error) {
	p.advance() // WHILE
	if _, err := p.expect(LPAREN, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN, "')'"); err != nil {
		return nil, err
	}
	p.skipNewlines()

	p.checker.EnterLoop()
	body, err := p.parseStatement()
	p.checker.ExitLoop()
	if err != nil {
		return nil, err
	}

	stmt := &While{Cond: cond, Body: body}
	p.combine(2, stmt)
	return stmt, nil
}

// ---- expressions: precedence climb ----------------------------------------
//
//	1 ||            (lowest, loosest)
//	2 &&
//	3 ! (prefix)
//	4 < <= > >= == !=      (left-associative; chained comparisons stay left)
//	5 = += -= *= /= %= ^=  (right-associative; LHS must be a bare identifier)
//	6 + -
//	7 * / %
//	8 ^             (left-associative, despite Pow's usual
//	                 right-associativity in other languages)
//	9 unary -
//	10 ++ --        (highest, tightest; apply only to identifiers)

func (p *Parser) parseExpr() (Expr, error) { return p.parseOr() }

func (p *Parser) parseOr() (Expr, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.at(OR) {
		p.advance()
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		node := &Cmp{Lhs: lhs, Rhs: rhs, Op: OpOr}
		p.combine(2, node)
		lhs = node
	}
	return lhs, nil
}

func (p *Parser) parseAnd() (Expr, error) {
	lhs, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.at(AND) {
		p.advance()
		rhs, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		node := &Cmp{Lhs: lhs, Rhs: rhs, Op: OpAnd}
		p.combine(2, node)
		lhs = node
	}
	return lhs, nil
}

func (p *Parser) parseNot() (Expr, error) {
	if p.at(NOT) {
		p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		e := &Not{Operand: operand}
		p.combine(1, e)
		return e, nil
	}
	return p.parseCmp()
}

var cmpOps = map[Kind]CmpOp{LT: OpLt, LE: OpLe, GT: OpGt, GE: OpGe, EQ: OpEq, NE: OpNe}

func (p *Parser) parseCmp() (Expr, error) {
	lhs, err := p.parseAssign()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := cmpOps[p.peek().Kind]
		if !ok {
			return lhs, nil
		}
		p.advance()
		rhs, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		node := &Cmp{Lhs: lhs, Rhs: rhs, Op: op}
		p.combine(2, node)
		lhs = node
	}
}

var compoundOps = map[Kind]ArithOp{
	PLUS_ASSIGN: OpPlus, MINUS_ASSIGN: OpMinus, MUL_ASSIGN: OpMul,
	DIV_ASSIGN: OpDiv, MOD_ASSIGN: OpMod, POW_ASSIGN: OpPow,
}

// parseAssign implements "= and friends bind tighter than comparisons but
// looser than +/-", and only accepts a bare identifier as the assignment
// target — "(a)=3" or "1=3" are syntax errors, not parsed as assignments.
func (p *Parser) parseAssign() (Expr, error) {
	if p.at(IDENT) {
		save := *p.lex
		saveTok, saveHave := p.tok, p.have
		identTok := p.advance()

		if p.at(ASSIGN) {
			p.advance()
			rhs, err := p.parseAssign()
			if err != nil {
				return nil, err
			}
			e := &Assign{Name: identTok.Lexeme, Expr: rhs}
			p.combine(1, e)
			return e, nil
		}
		if op, ok := compoundOps[p.peek().Kind]; ok {
			p.advance()
			rhs, err := p.parseAssign()
			if err != nil {
				return nil, err
			}
			e := &CompoundAssign{Name: identTok.Lexeme, Op: op, Expr: rhs}
			p.combine(1, e)
			return e, nil
		}

		// Not actually an assignment: rewind and let the additive level
		// (and everything below it) parse this identifier normally,
		// including postfix ++/-- and calls.
		*p.lex = save
		p.tok, p.have = saveTok, saveHave
	}
	return p.parseAdditive()
}

var additiveOps = map[Kind]ArithOp{PLUS: OpPlus, MINUS: OpMinus}

func (p *Parser) parseAdditive() (Expr, error) {
	lhs, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := additiveOps[p.peek().Kind]
		if !ok {
			return lhs, nil
		}
		p.advance()
		rhs, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		node := &Arith{Lhs: lhs, Rhs: rhs, Op: op}
		p.combine(2, node)
		lhs = node
	}
}

var mulOps = map[Kind]ArithOp{MUL: OpMul, DIV: OpDiv, MOD: OpMod}

func (p *Parser) parseMul() (Expr, error) {
	lhs, err := p.parsePow()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := mulOps[p.peek().Kind]
		if !ok {
			return lhs, nil
		}
		p.advance()
		rhs, err := p.parsePow()
		if err != nil {
			return nil, err
		}
		node := &Arith{Lhs: lhs, Rhs: rhs, Op: op}
		p.combine(2, node)
		lhs = node
	}
}

func (p *Parser) parsePow() (Expr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.at(POW) {
		p.advance()
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		node := &Arith{Lhs: lhs, Rhs: rhs, Op: OpPow}
		p.combine(2, node)
		lhs = node
	}
	return lhs, nil
}

func (p *Parser) parseUnary() (Expr, error) {
	if p.at(MINUS) {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		e := &Neg{Operand: operand}
		p.combine(1, e)
		return e, nil
	}
	return p.parseIncDec()
}

func (p *Parser) parseIncDec() (Expr, error) {
	switch p.peek().Kind {
	case INCR, DECR:
		op := OpIncr
		if p.peek().Kind == DECR {
			op = OpDecr
		}
		p.advance()
		nameTok, err := p.expect(IDENT, "a variable name")
		if err != nil {
			return nil, err
		}
		e := &PreOp{Name: nameTok.Lexeme, Op: op}
		return p.trackExpr(e), nil
	}

	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if v, ok := e.(*Var); ok {
		switch p.peek().Kind {
		case INCR:
			p.advance()
			post := &PostOp{Name: v.Name, Op: OpIncr}
			p.combine(1, post)
			return post, nil
		case DECR:
			p.advance()
			post := &PostOp{Name: v.Name, Op: OpDecr}
			p.combine(1, post)
			return post, nil
		}
	}
	return e, nil
}

func (p *Parser) parsePrimary() (Expr, error) {
	t := p.peek()
	switch t.Kind {
	case NUMBER:
		p.advance()
		return p.trackExpr(&Const{Value: parseNumberLiteral(t.Lexeme)}), nil
	case LPAREN:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN, "')'"); err != nil {
			return nil, err
		}
		return e, nil
	case IDENT:
		p.advance()
		if p.at(LPAREN) {
			return p.parseCallArgs(t.Lexeme)
		}
		return p.trackExpr(&Var{Name: t.Lexeme}), nil
	case EOF:
		return nil, errNeedMoreInput
	default:
		return nil, p.syntaxErr("an expression", t)
	}
}

func (p *Parser) parseCallArgs(name string) (Expr, error) {
	p.advance() // LPAREN
	var args []Expr
	if !p.at(RPAREN) {
		for {
			a, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.at(COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expect(RPAREN, "')'"); err != nil {
		return nil, err
	}
	call := &Call{Name: name, Args: args}
	p.combine(len(args), call)
	return call, nil
}

// parseNumberLiteral converts a NUMBER lexeme (already validated by the
// token regex: digits, an optional single '.', at least one digit on one
// side of it) into its float64 value by hand rather than via strconv —
// the grammar already guarantees the shape, so there is nothing for
// strconv's broader float syntax (exponents, signs, inf/nan) to reject.
func parseNumberLiteral(s string) float64 {
	var intPart, fracPart float64
	var fracDiv float64 = 1
	seenDot := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '.' {
			seenDot = true
			continue
		}
		d := float64(c - '0')
		if seenDot {
			fracDiv *= 10
			fracPart += d / fracDiv
		} else {
			intPart = intPart*10 + d
		}
	}
	return intPart + fracPart
}
