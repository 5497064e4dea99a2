package tmpl

import (
	"cppbind/internal/ast"
	"cppbind/internal/source"
)

// Key identifies one instantiation: the template's qualified name plus the
// encoded argument list.
type Key struct {
	Sym  string
	Args string
}

// Instantiation is the record kept for one expanded template.
type Instantiation struct {
	Name    string // template name
	SymName string // target-language name, "" for anonymous requests
	Args    string // encoded argument list
	Node    *ast.Node
	Uses    []source.Span
}

// Recorder tracks which instantiations have been produced, in request
// order. Repeated requests for the same key collapse onto the first record
// and only accumulate use sites.
type Recorder struct {
	seen  map[Key]*Instantiation
	order []Key
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{seen: make(map[Key]*Instantiation)}
}

// Record registers an instantiation. The first record for a key wins; later
// calls only append the use site. Reports whether the key was new.
func (r *Recorder) Record(key Key, inst Instantiation, use source.Span) bool {
	if prev, ok := r.seen[key]; ok {
		prev.Uses = append(prev.Uses, use)
		return false
	}
	inst.Uses = append(inst.Uses, use)
	r.seen[key] = &inst
	r.order = append(r.order, key)
	return true
}

// Lookup returns the record for key, or nil.
func (r *Recorder) Lookup(key Key) *Instantiation {
	return r.seen[key]
}

// Len reports how many distinct instantiations were recorded.
func (r *Recorder) Len() int { return len(r.order) }

// All returns the records in request order.
func (r *Recorder) All() []*Instantiation {
	out := make([]*Instantiation, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.seen[k])
	}
	return out
}
