package symtab

import "testing"

func TestResolveFallsBackToGlobal(t *testing.T) {
	tab := New()
	res := tab.Resolve("undeclared")
	if res.Kind != Global {
		t.Fatalf("Resolve of an unbound name = %v, want Global", res.Kind)
	}
}

func TestResolveLocalInSameBlock(t *testing.T) {
	tab := New()
	tab.DefineLocal("x", 3)
	res := tab.Resolve("x")
	if res.Kind != Local || res.Reg != 3 {
		t.Fatalf("Resolve(x) = %+v, want Local reg 3", res)
	}
}

func TestInnerBlockShadowsOuter(t *testing.T) {
	tab := New()
	tab.DefineLocal("x", 1)
	tab.EnterBlock()
	tab.DefineLocal("x", 2)
	if res := tab.Resolve("x"); res.Reg != 2 {
		t.Fatalf("inner block should shadow: Resolve(x).Reg = %d, want 2", res.Reg)
	}
	tab.LeaveBlock()
	if res := tab.Resolve("x"); res.Reg != 1 {
		t.Fatalf("after LeaveBlock, Resolve(x).Reg = %d, want 1 (outer binding restored)", res.Reg)
	}
}

func TestResolveCrossesFunctionBoundaryAsUpValue(t *testing.T) {
	tab := New()
	tab.DefineLocal("x", 4)
	tab.EnterFunction()
	res := tab.Resolve("x")
	if res.Kind != UpValue || res.Depth != 1 || res.Reg != 4 {
		t.Fatalf("Resolve(x) from nested function = %+v, want UpValue depth 1 reg 4", res)
	}
	tab.LeaveFunction()
	if res := tab.Resolve("x"); res.Kind != Local {
		t.Fatalf("after LeaveFunction, Resolve(x) = %v, want Local again", res.Kind)
	}
}

func TestResolveDepthCountsEveryNestingLevel(t *testing.T) {
	tab := New()
	tab.DefineLocal("x", 0)
	tab.EnterFunction()
	tab.EnterFunction()
	res := tab.Resolve("x")
	if res.Kind != UpValue || res.Depth != 2 {
		t.Fatalf("Resolve(x) two functions deep = %+v, want UpValue depth 2", res)
	}
}

func TestLocalDefinedInNestedFunctionDoesNotLeakOutward(t *testing.T) {
	tab := New()
	tab.EnterFunction()
	tab.DefineLocal("y", 0)
	tab.LeaveFunction()
	if res := tab.Resolve("y"); res.Kind != Global {
		t.Fatalf("a local defined inside a nested function leaked to the enclosing scope: %v", res.Kind)
	}
}
