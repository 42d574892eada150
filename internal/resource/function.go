package resource

import "rua/internal/chunk"

// FunctionAlloc is a function's nested-prototype vector: every closure
// literal compiled inside this function is Push'd here in source-text
// order and later installed as chunk.FunctionChunk.Prototypes.
type FunctionAlloc struct {
	prototypes []*chunk.FunctionChunk
}

// NewFunctionAlloc creates an empty nested-prototype vector.
func NewFunctionAlloc() *FunctionAlloc {
	return &FunctionAlloc{}
}

// Push appends a compiled child prototype and returns its index, the
// operand CLOSURE's Bx field addresses.
func (f *FunctionAlloc) Push(c *chunk.FunctionChunk) uint32 {
	idx := uint32(len(f.prototypes))
	f.prototypes = append(f.prototypes, c)
	return idx
}

// Size reports how many nested prototypes have been registered.
func (f *FunctionAlloc) Size() uint32 {
	return uint32(len(f.prototypes))
}

// Prototypes returns the nested-prototype vector in source-text order.
func (f *FunctionAlloc) Prototypes() []*chunk.FunctionChunk {
	return f.prototypes
}
