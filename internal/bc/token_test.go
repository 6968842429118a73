package bc

import (
	"reflect"
	"testing"
)

func kinds(t *testing.T, src string) []Kind {
	t.Helper()
	l := NewLexer(src)
	var got []Kind
	for {
		tok := l.Next()
		if tok.Kind == EOF {
			break
		}
		got = append(got, tok.Kind)
	}
	return got
}

func wantKinds(t *testing.T, src string, want []Kind) {
	t.Helper()
	got := kinds(t, src)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("source %q:\n want %v\n got  %v", src, want, got)
	}
}

func TestLexer_Operators(t *testing.T) {
	wantKinds(t, "<= >= == != < > && ||",
		[]Kind{LE, GE, EQ, NE, LT, GT, AND, OR})
}

func TestLexer_AssignmentForms(t *testing.T) {
	wantKinds(t, "= += -= *= /= %= ^=",
		[]Kind{ASSIGN, PLUS_ASSIGN, MINUS_ASSIGN, MUL_ASSIGN, DIV_ASSIGN, MOD_ASSIGN, POW_ASSIGN})
}

func TestLexer_PreferTwoCharOverOneChar(t *testing.T) {
	// "<=" must not lex as LT followed by an illegal "=" handling mistake.
	wantKinds(t, "<=3", []Kind{LE, NUMBER})
}

func TestLexer_IncrDecrVsPlusMinus(t *testing.T) {
	wantKinds(t, "++x+-y--", []Kind{INCR, IDENT, PLUS, MINUS, IDENT, DECR})
}

func TestLexer_Keywords(t *testing.T) {
	wantKinds(t, "if else while break continue define auto return halt",
		[]Kind{IF, ELSE, WHILE, BREAK, CONTINUE, DEFINE, AUTO, RETURN, HALT})
}

func TestLexer_Numbers(t *testing.T) {
	l := NewLexer("3 3.14 .5 5.")
	var got []string
	for {
		tok := l.Next()
		if tok.Kind == EOF {
			break
		}
		if tok.Kind != NUMBER {
			t.Fatalf("expected NUMBER, got %v %q", tok.Kind, tok.Lexeme)
		}
		got = append(got, tok.Lexeme)
	}
	want := []string{"3", "3.14", ".5", "5."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestLexer_LineAndBlockComments(t *testing.T) {
	wantKinds(t, "1 # trailing comment\n2 /* inline\nblock */ 3",
		[]Kind{NUMBER, NEWLINE, NUMBER, NUMBER})
}

func TestLexer_LineColumnTracking(t *testing.T) {
	l := NewLexer("ab\ncd")
	first := l.Next()
	if first.Line != 1 || first.Col != 1 {
		t.Fatalf("got line %d col %d", first.Line, first.Col)
	}
	nl := l.Next()
	if nl.Kind != NEWLINE {
		t.Fatalf("expected NEWLINE, got %v", nl.Kind)
	}
	second := l.Next()
	if second.Line != 2 || second.Col != 1 {
		t.Fatalf("got line %d col %d", second.Line, second.Col)
	}
}

func TestLexer_IllegalCharacter(t *testing.T) {
	tok := NewLexer("@").Next()
	if tok.Kind != ILLEGAL || tok.Lexeme != "@" {
		t.Fatalf("got %v %q", tok.Kind, tok.Lexeme)
	}
}

func TestRenderByte_ControlAndHighBytes(t *testing.T) {
	cases := []struct {
		b    byte
		want string
	}{
		{'a', "a"},
		{0x7f, "^?"},
		{0x01, "^A"},
		{0x80, `\200`},
		{0xff, `\377`},
	}
	for _, c := range cases {
		if got := renderByte(c.b); got != c.want {
			t.Errorf("renderByte(%#x) = %q, want %q", c.b, got, c.want)
		}
	}
}
