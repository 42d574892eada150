package resource

// Label is an opaque, fresh branch target allocated by LabelAlloc. It
// carries no runtime cost and is removed by the label-resolution pass
// (internal/label) before a function's instruction stream is finalized.
type Label uint32

// LabelAlloc vends fresh monotonic label identifiers for one function.
type LabelAlloc struct {
	next Label
}

// NewLabelAlloc creates a label allocator with no labels issued yet.
func NewLabelAlloc() *LabelAlloc {
	return &LabelAlloc{}
}

// New returns a fresh label distinct from every label issued so far.
func (l *LabelAlloc) New() Label {
	id := l.next
	l.next++
	return id
}
