package bc

import (
	"reflect"
	"testing"
)

func roundTrip(t *testing.T, src string) {
	t.Helper()
	first := mustParseCommand(t, src)
	printed := PrintCommand(first)
	second := mustParseCommand(t, printed)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("round trip mismatch\nsource:  %q\nprinted: %q\nfirst:   %#v\nsecond:  %#v", src, printed, first, second)
	}
}

func TestPrinter_RoundTrip_Arithmetic(t *testing.T) {
	roundTrip(t, "1+2*3-4/2\n")
}

func TestPrinter_RoundTrip_Comparisons(t *testing.T) {
	roundTrip(t, "a<b&&c>=d||!e\n")
}

func TestPrinter_RoundTrip_Assignment(t *testing.T) {
	roundTrip(t, "x=1\n")
}

func TestPrinter_RoundTrip_CompoundAssignment(t *testing.T) {
	roundTrip(t, "x+=y*2\n")
}

func TestPrinter_RoundTrip_IncDec(t *testing.T) {
	roundTrip(t, "++x; y--; z\n")
}

func TestPrinter_RoundTrip_Call(t *testing.T) {
	roundTrip(t, "f(1, 2+3, g(4))\n")
}

func TestPrinter_RoundTrip_IfElse(t *testing.T) {
	roundTrip(t, "if (x) y; else z\n")
}

func TestPrinter_RoundTrip_NestedIfNoElse(t *testing.T) {
	roundTrip(t, "if (x) if (y) z\n")
}

func TestPrinter_RoundTrip_WhileWithBlock(t *testing.T) {
	roundTrip(t, "while (i<3) { i; i=i+1; }\n")
}

func TestPrinter_RoundTrip_BreakContinueHalt(t *testing.T) {
	roundTrip(t, "while (1) { break; }\n")
	roundTrip(t, "while (1) { continue; }\n")
	roundTrip(t, "halt\n")
}

func TestPrinter_RoundTrip_FunctionDefinition(t *testing.T) {
	roundTrip(t, "define f(n) { if (n<=1) return 1; return n*f(n-1); }\n")
}

func TestPrinter_RoundTrip_FunctionDefinitionWithAutos(t *testing.T) {
	roundTrip(t, "define f(n) auto a, b { a=n; b=a+1; return b; }\n")
}

func TestPrinter_RoundTrip_NegationAndNot(t *testing.T) {
	roundTrip(t, "!(-(1+2))\n")
}

func TestPrinter_RoundTrip_MultipleTopLevelStatements(t *testing.T) {
	roundTrip(t, "a=1; b=2; a+b\n")
}

func TestPrinter_RoundTrip_FractionalLiteral(t *testing.T) {
	roundTrip(t, "3.14+0.5\n")
}
