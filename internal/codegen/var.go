package codegen

import (
	"rua/internal/ast"
	"rua/internal/chunk"
	"rua/internal/compileerr"
	"rua/internal/label"
	"rua/internal/opcode"
	"rua/internal/resource"
	"rua/internal/symtab"
)

// compileVar lowers a variable reference. A name resolving to nothing in
// the symbol table is treated as a global read, not an error — only
// assignment ever needs to distinguish "known global" from "undefined",
// and even there every unresolved name is accepted as an implicit global
// declaration.
func (g *Generator) compileVar(v ast.VarNode, funcIdx int, sink *label.Sink, expect Expect) (exprResult, error) {
	ra := g.arena.Frame(funcIdx)

	switch vn := v.(type) {
	case ast.RegVar:
		return exprResult{isTemp: true, reg: vn.Reg}, nil

	case ast.PrefixVar:
		return exprResult{}, compileerr.New(compileerr.Unimplemented, "prefix-expression variables are not compiled")

	case ast.NameVar:
		resolved := g.sym.Resolve(vn.Name)
		switch resolved.Kind {
		case symtab.Global:
			constPos := ra.Const.Push(chunk.String(vn.Name))
			reg := regOrAlloc(expect, ra)
			sink.Emit(opcode.NewABx(opcode.GETGLOBAL, reg, constPos))
			return exprResult{isTemp: true, reg: reg}, nil

		case symtab.UpValue:
			slot := resource.PropagateUpvalue(g.arena, funcIdx, vn.Name, resolved.Reg, resolved.Depth)
			reg := regOrAlloc(expect, ra)
			sink.Emit(opcode.NewABx(opcode.GETUPVAL, reg, slot))
			return exprResult{isTemp: true, reg: reg}, nil

		case symtab.Local:
			if expect.Has {
				if expect.Reg != resolved.Reg {
					sink.Emit(opcode.NewABx(opcode.MOVE, expect.Reg, resolved.Reg))
					return exprResult{isTemp: false, reg: expect.Reg}, nil
				}
				return exprResult{isTemp: false, reg: expect.Reg}, nil
			}
			return exprResult{isTemp: false, reg: resolved.Reg}, nil

		default:
			return exprResult{}, compileerr.Newf(compileerr.UndefinedSymbol, "%q did not resolve to a known scope", vn.Name)
		}

	default:
		return exprResult{}, compileerr.Newf(compileerr.Unimplemented, "variable form %T is not compiled", v)
	}
}
