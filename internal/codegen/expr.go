package codegen

import (
	"rua/internal/ast"
	"rua/internal/chunk"
	"rua/internal/compileerr"
	"rua/internal/label"
	"rua/internal/opcode"
)

// compileExpr lowers one expression, returning which register holds the
// result and whether the caller may treat that register as a disposable
// temporary. expect lets the caller pin the result to a specific register
// (e.g. when feeding call arguments into consecutive slots); when expect
// carries no register, the expression is free to land wherever is
// convenient, which is what lets purely-temporary chains (like a left-
// associative arithmetic expression) reuse a single scratch register
// instead of allocating one per subexpression.
func (g *Generator) compileExpr(expr ast.Expr, funcIdx int, sink *label.Sink, expect Expect) (exprResult, error) {
	ra := g.arena.Frame(funcIdx)

	switch e := expr.(type) {
	case ast.Num:
		constPos := ra.Const.Push(chunk.Number(e.Value))
		reg := regOrAlloc(expect, ra)
		sink.Emit(opcode.NewABx(opcode.LOADK, reg, constPos))
		return exprResult{isTemp: true, reg: reg}, nil

	case ast.Boole:
		reg := regOrAlloc(expect, ra)
		sink.Emit(opcode.NewABC(opcode.LOADBOOL, reg, boolToUint(e.Value), 0))
		return exprResult{isTemp: true, reg: reg}, nil

	case ast.BinOp:
		if op, ok := opcode.LookupBinOp(e.Op); ok {
			left, err := g.compileExpr(e.Left, funcIdx, sink, NoExpect())
			if err != nil {
				return exprResult{}, err
			}
			right, err := g.compileExpr(e.Right, funcIdx, sink, NoExpect())
			if err != nil {
				return exprResult{}, err
			}

			var resultTemp bool
			var resultReg uint32
			if expect.Has {
				resultReg = expect.Reg
			} else if left.isTemp {
				// Destructive reuse: a left-associative chain of temporaries
				// folds into the same register instead of growing the stack.
				resultTemp = true
				resultReg = left.reg
			} else {
				resultTemp = true
				resultReg = ra.Reg.Push("")
			}
			sink.Emit(opcode.NewABC(op, resultReg, left.reg, right.reg))
			return exprResult{isTemp: resultTemp, reg: resultReg}, nil
		}
		return g.compileLogicArith(expr, funcIdx, sink, expect)

	case ast.Var:
		return g.compileVar(e.Var, funcIdx, sink, expect)

	case ast.FunctionDef:
		g.sym.EnterFunction()
		fc, upvalues, err := g.compileFunction(e.Body, funcIdx, e.Params, e.Variadic)
		g.sym.LeaveFunction()
		if err != nil {
			return exprResult{}, err
		}
		funcPos := ra.Function.Push(fc)
		reg := regOrAlloc(expect, ra)
		sink.Emit(opcode.NewABx(opcode.CLOSURE, reg, funcPos))
		// Virtual move/getupval pairs immediately following CLOSURE hand the
		// new closure its captured values, in upvalue-table order.
		for _, uv := range upvalues {
			if uv.Immediate {
				sink.Emit(opcode.NewABx(opcode.MOVE, uv.ClosureSlot, uv.SourceSlot))
			} else {
				sink.Emit(opcode.NewABx(opcode.GETUPVAL, uv.ClosureSlot, uv.SourceSlot))
			}
		}
		return exprResult{isTemp: true, reg: reg}, nil

	case ast.FunctionCall:
		reg, err := g.compileFunctionCall(e.Callee, e.Args, funcIdx, sink, RetNum(1))
		if err != nil {
			return exprResult{}, err
		}
		if expect.Has && expect.Reg != reg {
			sink.Emit(opcode.NewABx(opcode.MOVE, expect.Reg, reg))
			reg = expect.Reg
		}
		return exprResult{isTemp: true, reg: reg}, nil

	case ast.UnaryOp:
		switch e.Op {
		case "-":
			return exprResult{}, compileerr.New(compileerr.Unimplemented, "unary minus is not compiled")
		case "+":
			return g.compileExpr(e.Operand, funcIdx, sink, expect)
		default:
			return g.compileLogicArith(expr, funcIdx, sink, expect)
		}

	default:
		return exprResult{}, compileerr.Newf(compileerr.Unimplemented, "expression type %T is not compiled", expr)
	}
}

// compileExprList lowers every expression of a list in order, aborting on
// the first failure rather than silently dropping the expressions that
// didn't compile (an earlier version of this algorithm filtered out
// errors and only checked the resulting list's length, which masked the
// first real error behind a generic length mismatch).
func (g *Generator) compileExprList(exprs []ast.Expr, funcIdx int, sink *label.Sink) ([]exprResult, error) {
	results := make([]exprResult, 0, len(exprs))
	for _, e := range exprs {
		r, err := g.compileExpr(e, funcIdx, sink, NoExpect())
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}
