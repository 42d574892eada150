package parser

import (
	"testing"

	"rua/internal/ast"
	"rua/internal/lexer"
)

func parseString(input string) (*ast.Block, error) {
	tokens := lexer.NewScanner(input).ScanTokens()
	return NewParser(tokens).Parse()
}

func assertParseSuccess(t *testing.T, input, description string) *ast.Block {
	t.Helper()
	block, err := parseString(input)
	if err != nil {
		t.Fatalf("%s: parsing failed: %v", description, err)
	}
	if block == nil {
		t.Fatalf("%s: parsing returned a nil block", description)
	}
	return block
}

func assertParseFailure(t *testing.T, input, description string) {
	t.Helper()
	if _, err := parseString(input); err == nil {
		t.Fatalf("%s: expected a parse error, got none", description)
	}
}

func TestGlobalAssignment(t *testing.T) {
	block := assertParseSuccess(t, "a, b = 2.5, 2 * 4\n", "global multi-assign")
	if len(block.Stats) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(block.Stats))
	}
	assign, ok := block.Stats[0].(ast.Assign)
	if !ok {
		t.Fatalf("expected ast.Assign, got %T", block.Stats[0])
	}
	if len(assign.Targets) != 2 || len(assign.Values) != 2 {
		t.Fatalf("expected 2 targets and 2 values, got %d/%d", len(assign.Targets), len(assign.Values))
	}
}

func TestLocalDeclaration(t *testing.T) {
	block := assertParseSuccess(t, "local c = (1 + 2) / 10.5\n", "local declaration")
	if _, ok := block.Stats[0].(ast.AssignLocal); !ok {
		t.Fatalf("expected ast.AssignLocal, got %T", block.Stats[0])
	}
}

func TestFunctionDefAndCall(t *testing.T) {
	block := assertParseSuccess(t, `
		local a = 2
		func = function(para)
			return a + para, 0
		end
		local b, c = func(1, 2)
	`, "function definition and call")
	if len(block.Stats) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(block.Stats))
	}
}

func TestBooleanExpression(t *testing.T) {
	assertParseSuccess(t, "local c = not (2 <= 3 or a == b)\n", "boolean expression")
}

func TestIfWhileForParseButAreNotRejectedHere(t *testing.T) {
	assertParseSuccess(t, `
		if a then
			local b = 1
		elseif c then
			local d = 2
		else
			local e = 3
		end
	`, "if/elseif/else chain")
	assertParseSuccess(t, "while a do local b = 1 end\n", "while loop")
	assertParseSuccess(t, "for i = 1, 10 do local b = i end\n", "numeric for loop")
}

func TestMissingAssignIsSyntaxError(t *testing.T) {
	assertParseFailure(t, "a b\n", "missing '=' between names")
}

func TestUnterminatedFunctionIsSyntaxError(t *testing.T) {
	assertParseFailure(t, "func = function()\n  return 1\n", "function body missing 'end'")
}
