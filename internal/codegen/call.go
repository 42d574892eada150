package codegen

import (
	"rua/internal/ast"
	"rua/internal/label"
	"rua/internal/opcode"
)

// RetExpect tells compileFunctionCall how many results the caller wants:
// a fixed count, or Indeterminate when the call sits in a position (the
// last argument of another call) where it should spread however many
// results it actually produces.
type RetExpect struct {
	Num           uint32
	Indeterminate bool
}

// RetNum requests exactly n results.
func RetNum(n uint32) RetExpect { return RetExpect{Num: n} }

// RetIndeterminate requests that the call spread all of its results.
func RetIndeterminate() RetExpect { return RetExpect{Indeterminate: true} }

// compileFunctionCall lowers a call expression: the callee lands in a
// fresh register (func_pos), arguments are compiled into the consecutive
// registers following it, and CALL's B/C fields encode the argument and
// result counts — 0 in either field means "as many as the stack currently
// holds", the indeterminate-arity convention a tail call (a call used as
// the final argument of another call) relies on to spread its results
// into the outer call's argument list without either side knowing the
// count in advance.
func (g *Generator) compileFunctionCall(callee ast.Expr, args []ast.Expr, funcIdx int, sink *label.Sink, expectRet RetExpect) (uint32, error) {
	ra := g.arena.Frame(funcIdx)

	funcPos := ra.Reg.Push("")
	if _, err := g.compileExpr(callee, funcIdx, sink, ExpectReg(funcPos)); err != nil {
		return 0, err
	}

	var retField uint32
	if expectRet.Indeterminate {
		retField = 0
	} else {
		for i := uint32(0); i < expectRet.Num; i++ {
			ra.Reg.Push("")
		}
		retField = expectRet.Num + 1
	}

	var argField uint32
	if len(args) == 0 {
		argField = 1
	} else {
		argsReg := funcPos + 1
		last := args[len(args)-1]
		if lastCall, ok := last.(ast.FunctionCall); ok {
			for i := 0; i < len(args)-1; i++ {
				if _, err := g.compileExpr(args[i], funcIdx, sink, ExpectReg(argsReg)); err != nil {
					return 0, err
				}
				argsReg++
			}
			if _, err := g.compileFunctionCall(lastCall.Callee, lastCall.Args, funcIdx, sink, RetIndeterminate()); err != nil {
				return 0, err
			}
			argField = 0
		} else {
			for _, a := range args {
				if _, err := g.compileExpr(a, funcIdx, sink, ExpectReg(argsReg)); err != nil {
					return 0, err
				}
				argsReg++
			}
			argField = uint32(len(args)) + 1
		}
	}

	sink.Emit(opcode.NewABC(opcode.CALL, funcPos, argField, retField))
	return funcPos, nil
}

// adjustList reconciles a binding-target list (variable names or lvalues)
// against a value-expression list of possibly different length, the way a
// Lua-family multiple-assignment does: equal lengths pass through
// unchanged; extra expressions are dropped before they are compiled, so
// they are never evaluated (truncation); a call that is the only
// expression spreads its results across every target; otherwise missing
// values are padded with a single LOADNIL run sized to cover the shortfall.
//
// keys is generic so both internal/ast's []VarNode (plain assignment) and
// []Name (local declaration) can share this one reconciliation algorithm —
// neither side's element type matters to it, only the lengths.
func adjustList[T any](g *Generator, keys []T, exprs []ast.Expr, funcIdx int, sink *label.Sink) ([]T, []ast.Expr, error) {
	ra := g.arena.Frame(funcIdx)

	if len(keys) == len(exprs) {
		return keys, exprs, nil
	}

	if len(keys) < len(exprs) {
		return keys, exprs[:len(keys)], nil
	}

	// len(keys) > len(exprs): either a single trailing call spreads to
	// fill the gap, or the gap is padded with nils.
	if len(exprs) == 1 {
		if call, ok := exprs[0].(ast.FunctionCall); ok {
			centralReg, err := g.compileFunctionCall(call.Callee, call.Args, funcIdx, sink, RetNum(uint32(len(keys))))
			if err != nil {
				return nil, nil, err
			}
			spread := make([]ast.Expr, len(keys))
			for i := range spread {
				spread[i] = ast.Var{Var: ast.RegVar{Reg: centralReg + uint32(i)}}
			}
			return keys, spread, nil
		}
	}

	shortfall := len(keys) - len(exprs)
	startReg := ra.Reg.Push("")
	extended := make([]ast.Expr, len(exprs), len(keys))
	copy(extended, exprs)
	extended = append(extended, ast.Var{Var: ast.RegVar{Reg: startReg}})
	for i := 1; i < shortfall; i++ {
		reg := ra.Reg.Push("")
		extended = append(extended, ast.Var{Var: ast.RegVar{Reg: reg}})
	}
	sink.Emit(opcode.NewABx(opcode.LOADNIL, startReg, uint32(shortfall-1)))
	return keys, extended, nil
}
