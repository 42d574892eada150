package codegen

import (
	"rua/internal/ast"
	"rua/internal/chunk"
	"rua/internal/label"
	"rua/internal/opcode"
)

// compileFunction compiles one function body end to end: it opens a fresh
// resource frame as a child of parent (-1 for the top-level chunk), binds
// parameters to the first registers, compiles the body, appends an
// implicit bare return (every function falls off the end into one, a
// redundant but harmless RETURN when the body already returned explicitly
// on every path), and resolves the function's labels into their final
// instruction form.
//
// It returns the compiled chunk and the upvalue descriptors the *caller*
// needs in order to emit the CLOSURE binding sequence that follows a
// closure literal — the descriptors are not part of FunctionChunk itself
// since they describe how the enclosing function feeds this one, not
// anything this function's own instructions reference.
func (g *Generator) compileFunction(body *ast.Block, parent int, params []ast.Name, vararg bool) (*chunk.FunctionChunk, []chunk.UpvalueDescriptor, error) {
	funcIdx, ra := g.arena.New(parent)
	sink := label.NewSink()

	for _, name := range params {
		pos := ra.Reg.Push(name)
		g.sym.DefineLocal(name, pos)
	}

	if err := g.compileBlock(body, funcIdx, sink); err != nil {
		return nil, nil, err
	}

	// Every function falls through to an implicit "return nothing" if
	// control reaches the end of its body without an explicit return.
	sink.Emit(opcode.NewABx(opcode.RETURN, 0, 1))

	instrs, err := sink.Resolve()
	if err != nil {
		return nil, nil, err
	}

	fc := &chunk.FunctionChunk{
		Instructions: instrs,
		Constants:    ra.Const.Dump(),
		Prototypes:   ra.Function.Prototypes(),
		UpvalueCount: ra.Upvalue.Size(),
		ParamCount:   uint32(len(params)),
		IsVararg:     vararg,
		MaxStackSize: ra.Reg.Size(),
	}
	return fc, ra.Upvalue.List(), nil
}

// compileBlock compiles every statement of a block in order, then its
// trailing return statement if one is present.
func (g *Generator) compileBlock(block *ast.Block, funcIdx int, sink *label.Sink) error {
	for _, stat := range block.Stats {
		if err := g.compileStat(stat, funcIdx, sink); err != nil {
			return err
		}
	}
	if block.Ret != nil {
		if err := g.compileStat(*block.Ret, funcIdx, sink); err != nil {
			return err
		}
	}
	return nil
}
