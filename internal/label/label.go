// Package label resolves the symbolic branch targets the code generator
// emits during a single forward pass into the PC-relative sBx displacements
// Lua-style JMP instructions actually encode.
//
// The generator never knows, at the point it emits a forward jump, how many
// instructions will separate it from its target — the target may not exist
// yet (an "if" body hasn't been compiled) or may move as later statements
// are appended. Rather than backpatch each JMP in place the moment its
// target becomes known (compregister.patchJump's approach), this package
// takes the whole-function view: the generator records where each
// resource.Label was defined, leaves a placeholder sBx in every JMP that
// targets it, and a single resolution pass at the end of the function
// rewrites every placeholder to its real displacement.
package label

import (
	"fmt"

	"rua/internal/opcode"
	"rua/internal/resource"
)

// Sink accumulates one function's instruction stream plus the label marks
// and pending jump-patch sites the generator records along the way.
type Sink struct {
	instrs []opcode.Instruction
	marks  map[resource.Label]int // label -> instruction index it marks
	jumps  []jumpSite
}

type jumpSite struct {
	instrIndex int
	target     resource.Label
}

// NewSink creates an empty instruction sink for one function body.
func NewSink() *Sink {
	return &Sink{marks: make(map[resource.Label]int)}
}

// Emit appends an already-complete instruction (no pending label) and
// returns its index.
func (s *Sink) Emit(instr opcode.Instruction) int {
	idx := len(s.instrs)
	s.instrs = append(s.instrs, instr)
	return idx
}

// EmitJump appends a JMP (or TEST-adjacent conditional jump) whose sBx is
// not yet known, targeting target, and records the site for resolution.
// op and a are the instruction's opcode and A field; the sBx placeholder is
// filled in by Resolve.
func (s *Sink) EmitJump(op opcode.OpCode, a uint32, target resource.Label) int {
	idx := len(s.instrs)
	s.instrs = append(s.instrs, opcode.NewAsBx(op, a, 0))
	s.jumps = append(s.jumps, jumpSite{instrIndex: idx, target: target})
	return idx
}

// Mark records that label names the instruction about to be emitted next
// (i.e. the current end of the stream).
func (s *Sink) Mark(l resource.Label) {
	s.marks[l] = len(s.instrs)
}

// MarkAt records that label names an instruction index already emitted.
func (s *Sink) MarkAt(l resource.Label, idx int) {
	s.marks[l] = idx
}

// Len reports the number of instructions emitted so far, used by callers
// that need to mark "the next instruction" without calling Mark up front.
func (s *Sink) Len() int {
	return len(s.instrs)
}

// Resolve rewrites every pending jump's sBx to the PC-relative displacement
// implied by its recorded mark, and returns the finished instruction
// stream. It is an error for a jump to target a label that was never
// marked within this function.
func (s *Sink) Resolve() ([]opcode.Instruction, error) {
	for _, j := range s.jumps {
		targetIdx, ok := s.marks[j.target]
		if !ok {
			return nil, fmt.Errorf("label %d targeted by jump at instruction %d was never marked", j.target, j.instrIndex)
		}
		// Lua's PC-relative convention: sBx is added to the PC *after* it
		// has already been incremented past the jump instruction itself.
		displacement := targetIdx - (j.instrIndex + 1)
		op := s.instrs[j.instrIndex].Op()
		a := s.instrs[j.instrIndex].A()
		s.instrs[j.instrIndex] = opcode.NewAsBx(op, a, int32(displacement))
	}
	return s.instrs, nil
}
