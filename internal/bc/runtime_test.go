package bc

import "testing"

func TestRuntimeContext_UnboundVariableReadsZero(t *testing.T) {
	ctx := NewRuntimeContext()
	if got := ctx.GetVar("x"); got != 0 {
		t.Fatalf("got %v", got)
	}
}

func TestRuntimeContext_AssignToUnboundCreatesGlobalBinding(t *testing.T) {
	ctx := NewRuntimeContext()
	ctx.SetVar("x", 5)
	if got := ctx.GetVar("x"); got != 5 {
		t.Fatalf("got %v", got)
	}
	if depth := len(ctx.vars["x"]); depth != 1 {
		t.Fatalf("expected a single binding, got depth %d", depth)
	}
}

func TestRuntimeContext_PushScopeShadowsOuterBinding(t *testing.T) {
	ctx := NewRuntimeContext()
	ctx.SetVar("a", 1)
	ctx.pushScope("a", 99)
	if got := ctx.GetVar("a"); got != 99 {
		t.Fatalf("expected inner binding to shadow, got %v", got)
	}
	ctx.popScope("a")
	if got := ctx.GetVar("a"); got != 1 {
		t.Fatalf("expected outer binding restored, got %v", got)
	}
}

func TestRuntimeContext_CurrentFuncDefaultsToMain(t *testing.T) {
	ctx := NewRuntimeContext()
	if got := ctx.currentFunc(); got != "(main)" {
		t.Fatalf("got %q", got)
	}
	ctx.enterCall("f")
	if got := ctx.currentFunc(); got != "f" {
		t.Fatalf("got %q", got)
	}
	ctx.exitCall()
	if got := ctx.currentFunc(); got != "(main)" {
		t.Fatalf("got %q", got)
	}
}

func TestRuntimeContext_RedefinitionReplaces(t *testing.T) {
	ctx := NewRuntimeContext()
	ctx.DefineFunction(&FunctionDefinition{Name: "f", Body: &Block{}})
	first := ctx.Lookup("f")
	ctx.DefineFunction(&FunctionDefinition{Name: "f", Params: []string{"x"}, Body: &Block{}})
	second := ctx.Lookup("f")
	if first == second {
		t.Fatalf("expected a new definition object")
	}
	if len(ctx.Lookup("f").Params) != 1 {
		t.Fatalf("expected the latest definition to be active")
	}
}
