package resource

import (
	"testing"

	"rua/internal/chunk"
)

func TestRegisterAllocGrowsMonotonically(t *testing.T) {
	r := NewRegisterAlloc()
	a := r.Push("a")
	b := r.Push("b")
	if a != 0 || b != 1 {
		t.Fatalf("got a=%d b=%d, want 0,1", a, b)
	}
	if r.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", r.Size())
	}
	// Pushing a third register never reuses 'a', even though nothing
	// references it anymore - this allocator has no free list.
	c := r.Push("")
	if c != 2 {
		t.Fatalf("Push() = %d, want 2 (monotonic, no reuse)", c)
	}
}

func TestRegisterAllocPushSetRenamesWithoutGrowing(t *testing.T) {
	r := NewRegisterAlloc()
	tmp := r.Push("")
	r.PushSet("x", tmp)
	if r.Size() != 1 {
		t.Fatalf("Size() = %d after PushSet, want 1 (no growth)", r.Size())
	}
	if r.NameAt(tmp) != "x" {
		t.Fatalf("NameAt(%d) = %q, want \"x\"", tmp, r.NameAt(tmp))
	}
}

func TestConstAllocDeduplicates(t *testing.T) {
	c := NewConstAlloc()
	i1 := c.Push(chunk.Number(1))
	i2 := c.Push(chunk.String("a"))
	i3 := c.Push(chunk.Number(1))
	if i1 != i3 {
		t.Fatalf("duplicate Number(1) got distinct indices %d and %d", i1, i3)
	}
	if i2 == i1 {
		t.Fatalf("distinct constants collapsed to the same index")
	}
	if len(c.Dump()) != 2 {
		t.Fatalf("Dump() has %d entries, want 2", len(c.Dump()))
	}
}

func TestUpvalueAllocDeduplicatesByName(t *testing.T) {
	u := NewUpvalueAlloc()
	s1 := u.LookupOrAdd("x", true, 4)
	s2 := u.LookupOrAdd("x", true, 4)
	if s1 != s2 {
		t.Fatalf("repeated LookupOrAdd(\"x\", ...) returned distinct slots %d, %d", s1, s2)
	}
	u.LookupOrAdd("y", false, 9)
	if u.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", u.Size())
	}
	descs := u.List()
	if descs[0].Name != "x" || descs[1].Name != "y" {
		t.Fatalf("descriptor order not append-stable: %+v", descs)
	}
}

func TestPropagateUpvalueImmediateCapture(t *testing.T) {
	arena := NewArena()
	parentIdx, _ := arena.New(-1)
	childIdx, _ := arena.New(parentIdx)

	slot := PropagateUpvalue(arena, childIdx, "x", 5, 1)

	descs := arena.Frame(childIdx).Upvalue.List()
	if len(descs) != 1 {
		t.Fatalf("expected 1 upvalue descriptor in the child, got %d", len(descs))
	}
	if !descs[0].Immediate || descs[0].SourceSlot != 5 || descs[0].ClosureSlot != slot {
		t.Fatalf("unexpected descriptor: %+v", descs[0])
	}
}

func TestPropagateUpvalueRelaysThroughIntermediateFrames(t *testing.T) {
	arena := NewArena()
	grandparentIdx, _ := arena.New(-1)
	parentIdx, _ := arena.New(grandparentIdx)
	childIdx, _ := arena.New(parentIdx)

	slot := PropagateUpvalue(arena, childIdx, "x", 3, 2)

	parentDescs := arena.Frame(parentIdx).Upvalue.List()
	if len(parentDescs) != 1 || !parentDescs[0].Immediate || parentDescs[0].SourceSlot != 3 {
		t.Fatalf("parent frame should capture x immediately from the grandparent's register 3: %+v", parentDescs)
	}

	childDescs := arena.Frame(childIdx).Upvalue.List()
	if len(childDescs) != 1 {
		t.Fatalf("expected 1 upvalue descriptor in the child, got %d", len(childDescs))
	}
	if childDescs[0].Immediate {
		t.Fatalf("child should relay x from the parent's upvalue table, not capture it immediately")
	}
	if childDescs[0].SourceSlot != parentDescs[0].ClosureSlot {
		t.Fatalf("child's SourceSlot (%d) should match the parent's own upvalue slot (%d)",
			childDescs[0].SourceSlot, parentDescs[0].ClosureSlot)
	}
	if childDescs[0].ClosureSlot != slot {
		t.Fatalf("PropagateUpvalue returned %d but child descriptor's ClosureSlot is %d", slot, childDescs[0].ClosureSlot)
	}
}

func TestPropagateUpvalueIsIdempotentAcrossCalls(t *testing.T) {
	arena := NewArena()
	parentIdx, _ := arena.New(-1)
	childIdx, _ := arena.New(parentIdx)

	first := PropagateUpvalue(arena, childIdx, "x", 2, 1)
	second := PropagateUpvalue(arena, childIdx, "x", 2, 1)
	if first != second {
		t.Fatalf("propagating the same name twice produced distinct slots: %d, %d", first, second)
	}
	if arena.Frame(childIdx).Upvalue.Size() != 1 {
		t.Fatalf("expected exactly 1 upvalue descriptor after repeated propagation, got %d",
			arena.Frame(childIdx).Upvalue.Size())
	}
}

func TestLabelAllocVendsDistinctLabels(t *testing.T) {
	l := NewLabelAlloc()
	a := l.New()
	b := l.New()
	if a == b {
		t.Fatalf("two calls to New() returned the same label")
	}
}
