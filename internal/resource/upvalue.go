package resource

import "rua/internal/chunk"

// UpvalueAlloc is a function's append-only, ordered upvalue table.
// Re-requesting the same name yields the slot already assigned to it,
// matching spec.md's invariant that a function's upvalue table gains at
// most one entry per captured name.
type UpvalueAlloc struct {
	descs []chunk.UpvalueDescriptor
	index map[string]uint32
}

// NewUpvalueAlloc creates an empty upvalue table.
func NewUpvalueAlloc() *UpvalueAlloc {
	return &UpvalueAlloc{index: make(map[string]uint32)}
}

// LookupOrAdd returns the slot for name, inserting a new descriptor only if
// this is the first capture of name within this function.
func (u *UpvalueAlloc) LookupOrAdd(name string, immediate bool, sourceSlot uint32) uint32 {
	if slot, ok := u.index[name]; ok {
		return slot
	}
	slot := uint32(len(u.descs))
	u.descs = append(u.descs, chunk.UpvalueDescriptor{
		Name:        name,
		Immediate:   immediate,
		SourceSlot:  sourceSlot,
		ClosureSlot: slot,
	})
	u.index[name] = slot
	return slot
}

// Size reports the number of distinct upvalues captured so far.
func (u *UpvalueAlloc) Size() uint32 {
	return uint32(len(u.descs))
}

// List returns the upvalue descriptors in first-capture order.
func (u *UpvalueAlloc) List() []chunk.UpvalueDescriptor {
	return u.descs
}
