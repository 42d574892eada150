// Package codegen implements the single-pass register-based code
// generator: it walks a syntax tree once and emits Lua 5.1-style
// instructions directly, with no separate optimization or rewrite pass.
// Branch targets are the one exception — they are emitted as symbolic
// labels and resolved in a single pass per function by internal/label,
// once the function's full instruction stream is known.
//
// The algorithm is grounded on the original compiler's visit_* family:
// visit_unit/visit_function/visit_block/visit_stat/visit_expr map
// directly onto Compile/compileFunction/compileBlock/compileStat/
// compileExpr here, one function per visit_* function so the two can be
// read side by side.
package codegen

import (
	"rua/internal/ast"
	"rua/internal/chunk"
	"rua/internal/resource"
	"rua/internal/symtab"
)

// Generator holds the state threaded through an entire compilation: the
// symbol table (spans every function, since upvalue resolution needs to
// see past function boundaries) and the arena of per-function resource
// pools.
type Generator struct {
	arena *resource.Arena
	sym   *symtab.Table
}

// New creates a generator ready to compile one top-level chunk.
func New() *Generator {
	return &Generator{
		arena: resource.NewArena(),
		sym:   symtab.New(),
	}
}

// Compile lowers a top-level block into its function chunk. The root
// chunk is always treated as a vararg function taking no parameters,
// matching how a Lua-family source file is itself the implicit outermost
// function.
func (g *Generator) Compile(root *ast.Block) (*chunk.FunctionChunk, error) {
	fc, _, err := g.compileFunction(root, -1, nil, true)
	return fc, err
}

// exprResult is the outcome of compiling an expression: which register
// holds its value, and whether that register is a throwaway temporary the
// caller is free to reuse as a destination (as opposed to a named local).
// When the caller pinned the destination with ExpectReg, isTemp is not
// consulted and its value depends on the kind of expression.
type exprResult struct {
	isTemp bool
	reg    uint32
}

// Expect tells an expression compiler where its result should land: a
// caller-chosen destination register, or "wherever is convenient" when
// Has is false.
type Expect struct {
	Reg uint32
	Has bool
}

// NoExpect requests no particular destination register.
func NoExpect() Expect { return Expect{} }

// ExpectReg requests that the result land in reg.
func ExpectReg(reg uint32) Expect { return Expect{Reg: reg, Has: true} }

// regOrAlloc resolves an Expect to a concrete register, allocating a fresh
// temporary when the caller didn't ask for a specific one.
func regOrAlloc(expect Expect, ra *resource.ResourceAlloc) uint32 {
	if expect.Has {
		return expect.Reg
	}
	return ra.Reg.Push("")
}

func boolToUint(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
