// printer.go: an AST pretty-printer whose sole job is to support the
// parse → print → parse round trip the test suite checks. It always
// parenthesizes every non-atomic subexpression rather than reconstructing
// minimal precedence-aware source — the goal here is a structurally-equal
// AST on re-parse, not human-readable output, and full parenthesization
// sidesteps the precedence table entirely rather than having to invert it.
package bc

import (
	"strconv"
	"strings"
)

// PrintCommand renders cmd as source text that re-parses to a
// structurally equal Command.
func PrintCommand(cmd *Command) string {
	if cmd.Def != nil {
		return printDefine(cmd.Def) + "\n"
	}
	parts := make([]string, len(cmd.Stmts.Stmts))
	for i, s := range cmd.Stmts.Stmts {
		parts[i] = printStmt(s)
	}
	return strings.Join(parts, "; ") + "\n"
}

func printDefine(fd *FunctionDefinition) string {
	var b strings.Builder
	b.WriteString("define ")
	b.WriteString(fd.Name)
	b.WriteByte('(')
	b.WriteString(strings.Join(fd.Params, ", "))
	b.WriteByte(')')
	if len(fd.Autos) > 0 {
		b.WriteString(" auto ")
		b.WriteString(strings.Join(fd.Autos, ", "))
	}
	b.WriteByte(' ')
	b.WriteString(printStmt(fd.Body))
	return b.String()
}

// printStmt renders s with no trailing separator; callers choose how to
// join sibling statements (";" inside blocks and at top level).
func printStmt(s Stmt) string {
	switch st := s.(type) {
	case *ExprStmt:
		return printExpr(st.Expr)
	case *Block:
		parts := make([]string, len(st.Stmts))
		for i, inner := range st.Stmts {
			parts[i] = printStmt(inner)
		}
		return "{" + strings.Join(parts, "; ") + "}"
	case *If:
		s2 := "if (" + printExpr(st.Cond) + ") " + printStmt(st.Then)
		if st.Else != nil {
			s2 += " else " + printStmt(st.Else)
		}
		return s2
	case *While:
		return "while (" + printExpr(st.Cond) + ") " + printStmt(st.Body)
	case *Break:
		return "break"
	case *Continue:
		return "continue"
	case *Halt:
		return "halt"
	case *Return:
		if st.Expr == nil {
			return "return"
		}
		return "return " + printExpr(st.Expr)
	}
	return ""
}

var arithSym = map[ArithOp]string{
	OpPlus: "+", OpMinus: "-", OpMul: "*", OpDiv: "/", OpMod: "%", OpPow: "^",
}

var cmpSym = map[CmpOp]string{
	OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=", OpEq: "==", OpNe: "!=",
	OpAnd: "&&", OpOr: "||",
}

func printExpr(e Expr) string {
	switch ex := e.(type) {
	case *Const:
		// Fixed notation, not formatNumber's 6-significant-digit display
		// form: a literal must re-lex as NUMBER, whose grammar has no
		// exponent syntax, so scientific notation would break the round
		// trip for large or tiny values.
		return strconv.FormatFloat(ex.Value, 'f', -1, 64)
	case *Var:
		return ex.Name
	case *PreOp:
		if ex.Op == OpIncr {
			return "++" + ex.Name
		}
		return "--" + ex.Name
	case *PostOp:
		if ex.Op == OpIncr {
			return ex.Name + "++"
		}
		return ex.Name + "--"
	case *Arith:
		return "(" + printExpr(ex.Lhs) + arithSym[ex.Op] + printExpr(ex.Rhs) + ")"
	case *Cmp:
		return "(" + printExpr(ex.Lhs) + cmpSym[ex.Op] + printExpr(ex.Rhs) + ")"
	case *Not:
		return "!(" + printExpr(ex.Operand) + ")"
	case *Neg:
		return "-(" + printExpr(ex.Operand) + ")"
	case *Assign:
		return "(" + ex.Name + "=" + printExpr(ex.Expr) + ")"
	case *CompoundAssign:
		return "(" + ex.Name + arithSym[ex.Op] + "=" + printExpr(ex.Expr) + ")"
	case *Call:
		args := make([]string, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = printExpr(a)
		}
		return ex.Name + "(" + strings.Join(args, ", ") + ")"
	}
	return ""
}
