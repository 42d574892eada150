package resource

// RegisterAlloc is a monotonic high-water-mark register vendor: Push always
// grows the stack (or returns the next free slot), registers are never
// freed mid-function (the VM reuses them between activations, not within
// one), and Size reports the prototype's maxstacksize.
//
// Unlike compregister.RegisterAllocator (the teacher's version, which keeps
// a free-list for reuse), spec.md explicitly rules out register-liveness
// reuse as a non-goal: the allocator here only ever grows.
type RegisterAlloc struct {
	names []string // names[i] is the name currently bound to register i, "" if anonymous
}

// NewRegisterAlloc creates an empty register allocator for a fresh function.
func NewRegisterAlloc() *RegisterAlloc {
	return &RegisterAlloc{}
}

// Push grows the stack by one register, optionally binding a name to it for
// debugging/reflection, and returns its index.
func (r *RegisterAlloc) Push(name string) uint32 {
	reg := uint32(len(r.names))
	r.names = append(r.names, name)
	return reg
}

// PushSet re-binds an already-allocated register to a new name without
// growing the stack. Used by local declarations that rename a temporary
// register instead of copying into a fresh one (the local-rename law).
func (r *RegisterAlloc) PushSet(name string, reg uint32) {
	if int(reg) < len(r.names) {
		r.names[reg] = name
	}
}

// Size reports the high-water mark: the prototype's maxstacksize.
func (r *RegisterAlloc) Size() uint32 {
	return uint32(len(r.names))
}

// NameAt returns the name bound to a register, if any (debugging/reflection only).
func (r *RegisterAlloc) NameAt(reg uint32) string {
	if int(reg) < len(r.names) {
		return r.names[reg]
	}
	return ""
}
