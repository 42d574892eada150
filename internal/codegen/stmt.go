package codegen

import (
	"rua/internal/ast"
	"rua/internal/chunk"
	"rua/internal/compileerr"
	"rua/internal/label"
	"rua/internal/opcode"
	"rua/internal/symtab"
)

// compileStat lowers one statement. if/while/for/break are recognized
// shapes in the tree but are never lowered to instructions — a function
// containing one fails to compile with an Unimplemented error rather than
// silently miscompiling.
func (g *Generator) compileStat(stat ast.Stat, funcIdx int, sink *label.Sink) error {
	ra := g.arena.Frame(funcIdx)

	switch s := stat.(type) {
	case ast.EmptyStat:
		return nil

	case ast.Assign:
		targets, exprs, err := adjustList(g, s.Targets, s.Values, funcIdx, sink)
		if err != nil {
			return err
		}
		results, err := g.compileExprList(exprs, funcIdx, sink)
		if err != nil {
			return err
		}
		for i, target := range targets {
			res := results[i]
			name, ok := target.(ast.NameVar)
			if !ok {
				return compileerr.Newf(compileerr.Unimplemented, "assignment target %T is not compiled", target)
			}
			resolved := g.sym.Resolve(name.Name)
			switch resolved.Kind {
			case symtab.Global:
				constPos := ra.Const.Push(chunk.String(name.Name))
				g.sym.DefineGlobal(name.Name)
				sink.Emit(opcode.NewABx(opcode.SETGLOBAL, res.reg, constPos))
			case symtab.Local:
				sink.Emit(opcode.NewABx(opcode.MOVE, resolved.Reg, res.reg))
			case symtab.UpValue:
				return compileerr.New(compileerr.Unimplemented, "assigning to a captured upvalue is not compiled")
			}
		}
		return nil

	case ast.AssignLocal:
		names, exprs, err := adjustList(g, s.Names, s.Values, funcIdx, sink)
		if err != nil {
			return err
		}
		results, err := g.compileExprList(exprs, funcIdx, sink)
		if err != nil {
			return err
		}
		for i, name := range names {
			res := results[i]
			if res.isTemp {
				// The value already sits in a fresh temporary: rename that
				// register to the local instead of copying it.
				ra.Reg.PushSet(name, res.reg)
				g.sym.DefineLocal(name, res.reg)
			} else {
				pos := ra.Reg.Push(name)
				g.sym.DefineLocal(name, pos)
				sink.Emit(opcode.NewABx(opcode.MOVE, pos, res.reg))
			}
		}
		return nil

	case ast.RetStat:
		regs := make([]uint32, len(s.Values))
		for i := range s.Values {
			regs[i] = ra.Reg.Push("")
		}
		retNum := len(regs)
		var startReg uint32
		if retNum > 0 {
			startReg = regs[0]
		}
		for i, e := range s.Values {
			if _, err := g.compileExpr(e, funcIdx, sink, ExpectReg(regs[i])); err != nil {
				return err
			}
		}
		sink.Emit(opcode.NewABx(opcode.RETURN, startReg, uint32(retNum+1)))
		return nil

	case ast.BreakStat:
		return compileerr.New(compileerr.Unimplemented, "break is parsed but not compiled")
	case ast.IfElse:
		return compileerr.New(compileerr.Unimplemented, "if/else is parsed but not compiled")
	case ast.While:
		return compileerr.New(compileerr.Unimplemented, "while is parsed but not compiled")
	case ast.ForRange:
		return compileerr.New(compileerr.Unimplemented, "numeric for is parsed but not compiled")

	default:
		return compileerr.Newf(compileerr.Unimplemented, "statement type %T is not compiled", stat)
	}
}
