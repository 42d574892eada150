// Package disasm renders a compiled chunk.FunctionChunk as human-readable
// text, the way a command-line front end inspects what the generator
// produced without a VM around to run it.
package disasm

import (
	"fmt"
	"strings"

	"rua/internal/chunk"
	"rua/internal/opcode"
)

// Chunk renders fc and every nested prototype, indenting each nesting
// level so a closure's body is visually contained within its definer.
func Chunk(fc *chunk.FunctionChunk) string {
	var b strings.Builder
	writeChunk(&b, fc, 0, "main")
	return b.String()
}

func writeChunk(b *strings.Builder, fc *chunk.FunctionChunk, depth int, label string) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%sfunction <%s> params=%d vararg=%t maxstack=%d upvalues=%d\n",
		indent, label, fc.ParamCount, fc.IsVararg, fc.MaxStackSize, fc.UpvalueCount)

	for i, instr := range fc.Instructions {
		fmt.Fprintf(b, "%s  [%3d] %s\n", indent, i, formatInstruction(instr))
	}

	for i, c := range fc.Constants {
		fmt.Fprintf(b, "%s  const[%d] = %s\n", indent, i, formatConst(c))
	}

	for i, proto := range fc.Prototypes {
		writeChunk(b, proto, depth+1, fmt.Sprintf("%s:%d", label, i))
	}
}

func formatInstruction(i opcode.Instruction) string {
	op := i.Op()
	switch op {
	// These all carry a single wide second operand packed via NewABx (the
	// generator never splits them into separate B/C fields), so they must
	// be decoded back out through Bx(), not B()/C().
	case opcode.LOADK, opcode.GETGLOBAL, opcode.SETGLOBAL, opcode.CLOSURE,
		opcode.MOVE, opcode.GETUPVAL, opcode.SETUPVAL, opcode.LOADNIL, opcode.RETURN:
		return fmt.Sprintf("%-9s A=%d B=%d", op, i.A(), i.Bx())
	case opcode.JMP:
		return fmt.Sprintf("%-9s sBx=%d", op, i.SBx())
	case opcode.TEST:
		return fmt.Sprintf("%-9s A=%d C=%d", op, i.A(), i.C())
	default:
		return fmt.Sprintf("%-9s A=%d B=%d C=%d", op, i.A(), i.B(), i.C())
	}
}

func formatConst(c chunk.ConstValue) string {
	switch c.Kind {
	case chunk.ConstNil:
		return "nil"
	case chunk.ConstBool:
		return fmt.Sprintf("%t", c.Bool)
	case chunk.ConstNumber:
		return fmt.Sprintf("%g", c.Number)
	case chunk.ConstString:
		return fmt.Sprintf("%q", c.Str)
	default:
		return "<?>"
	}
}
