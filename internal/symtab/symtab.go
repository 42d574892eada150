// Package symtab implements the lexically-scoped symbol table the code
// generator consults to resolve every variable reference to a Local,
// UpValue, or Global access. It is organized the way compregister.Scope
// organizes locals (a parent-linked chain of name->register maps), but
// adds an outer layer of per-function frames so a name lookup can walk
// past a function boundary and report how many boundaries it crossed —
// the piece compregister never needed because it has no upvalue capture.
package symtab

// Kind is the resolution a lookup produces.
type Kind int

const (
	Global Kind = iota
	Local
	UpValue
)

// Resolution is the answer to a name lookup: where a name lives and, for
// UpValue results, how many function boundaries separate the reference
// from the frame that owns the local.
type Resolution struct {
	Kind  Kind
	Reg   uint32 // valid for Local: the register holding the value
	Depth int    // valid for UpValue: number of function boundaries crossed
}

// block is one lexical scope: a braces-delimited region within a function.
type block struct {
	parent *block
	locals map[string]uint32
}

// frame is one function's chain of blocks, plus a link to the lexically
// enclosing function's frame (nil for the outermost function).
type frame struct {
	parent *frame
	block  *block
}

// Table is the scoped symbol table for an entire compilation: a stack of
// frames (function boundaries), each holding a stack of blocks (lexical
// scopes within that function), plus the set of names known to have been
// assigned as globals.
type Table struct {
	top     *frame
	globals map[string]bool
}

// New creates a symbol table with a single, empty outermost frame.
func New() *Table {
	t := &Table{globals: make(map[string]bool)}
	t.top = &frame{block: &block{locals: make(map[string]uint32)}}
	return t
}

// EnterFunction pushes a new function frame, used when the generator
// begins compiling a nested function body.
func (t *Table) EnterFunction() {
	t.top = &frame{
		parent: t.top,
		block:  &block{locals: make(map[string]uint32)},
	}
}

// LeaveFunction pops the current function frame, returning control to the
// enclosing function's symbol table state.
func (t *Table) LeaveFunction() {
	t.top = t.top.parent
}

// EnterBlock pushes a new lexical scope within the current function.
func (t *Table) EnterBlock() {
	t.top.block = &block{parent: t.top.block, locals: make(map[string]uint32)}
}

// LeaveBlock pops the current lexical scope.
func (t *Table) LeaveBlock() {
	t.top.block = t.top.block.parent
}

// DefineLocal binds name to reg in the current (innermost) block of the
// current function. A redefinition in the same block shadows the prior
// binding, matching ordinary lexical-scoping shadowing rules.
func (t *Table) DefineLocal(name string, reg uint32) {
	t.top.block.locals[name] = reg
}

// DefineGlobal marks name as a known global — one the generator has seen
// assigned before, as opposed to an implicit first reference. Lookup
// still reports Global for any unrecognized name either way; this only
// lets the generator recognize a previously-assigned global as such.
func (t *Table) DefineGlobal(name string) {
	t.globals[name] = true
}

// IsGlobalDefined reports whether name was previously passed to DefineGlobal.
func (t *Table) IsGlobalDefined(name string) bool {
	return t.globals[name]
}

// Resolve looks up name starting from the innermost block of the current
// function, walking outward through enclosing blocks, then enclosing
// functions. It reports Global if no frame defines the name.
func (t *Table) Resolve(name string) Resolution {
	if reg, ok := lookupInFrame(t.top, name); ok {
		return Resolution{Kind: Local, Reg: reg}
	}

	depth := 0
	for f := t.top.parent; f != nil; f = f.parent {
		depth++
		if reg, ok := lookupInFrame(f, name); ok {
			return Resolution{Kind: UpValue, Reg: reg, Depth: depth}
		}
	}

	return Resolution{Kind: Global}
}

// lookupInFrame walks a frame's block chain from innermost outward.
func lookupInFrame(f *frame, name string) (uint32, bool) {
	for b := f.block; b != nil; b = b.parent {
		if reg, ok := b.locals[name]; ok {
			return reg, true
		}
	}
	return 0, false
}
