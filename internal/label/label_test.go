package label

import (
	"testing"

	"rua/internal/opcode"
	"rua/internal/resource"
)

func TestResolveForwardJump(t *testing.T) {
	s := NewSink()
	target := resource.Label(0)

	s.EmitJump(opcode.JMP, 0, target) // idx 0
	s.Emit(opcode.NewABC(opcode.LOADBOOL, 0, 0, 0)) // idx 1, skipped over
	s.Mark(target)                                  // idx 2
	s.Emit(opcode.NewABC(opcode.LOADBOOL, 0, 1, 0)) // idx 2

	instrs, err := s.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got := instrs[0].SBx(); got != 1 {
		t.Fatalf("forward jump sBx = %d, want 1 (skip exactly the LOADBOOL at idx 1)", got)
	}
}

func TestResolveBackwardJump(t *testing.T) {
	s := NewSink()
	top := resource.Label(0)

	s.Mark(top)                                     // idx 0
	s.Emit(opcode.NewABC(opcode.LOADBOOL, 0, 0, 0))  // idx 0
	s.EmitJump(opcode.JMP, 0, top)                   // idx 1

	instrs, err := s.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got := instrs[1].SBx(); got != -2 {
		t.Fatalf("backward jump sBx = %d, want -2", got)
	}
}

func TestResolveUnmarkedLabelIsAnError(t *testing.T) {
	s := NewSink()
	s.EmitJump(opcode.JMP, 0, resource.Label(99))
	if _, err := s.Resolve(); err == nil {
		t.Fatalf("expected an error resolving a jump to a never-marked label")
	}
}

func TestMultipleLabelsResolveIndependently(t *testing.T) {
	s := NewSink()
	l1 := resource.Label(0)
	l2 := resource.Label(1)

	s.EmitJump(opcode.JMP, 0, l1) // idx 0
	s.EmitJump(opcode.JMP, 0, l2) // idx 1
	s.Mark(l1)                   // idx 2
	s.Emit(opcode.NewABC(opcode.LOADBOOL, 0, 0, 0)) // idx 2
	s.Mark(l2)                   // idx 3
	s.Emit(opcode.NewABC(opcode.LOADBOOL, 0, 1, 0)) // idx 3

	instrs, err := s.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if instrs[0].SBx() != 1 {
		t.Fatalf("jump to l1 sBx = %d, want 1", instrs[0].SBx())
	}
	if instrs[1].SBx() != 1 {
		t.Fatalf("jump to l2 sBx = %d, want 1", instrs[1].SBx())
	}
}
