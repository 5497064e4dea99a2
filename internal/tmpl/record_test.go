package tmpl

import (
	"testing"

	"cppbind/internal/ast"
	"cppbind/internal/source"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	key := Key{Sym: "Vec", Args: "int"}
	node := ast.New(ast.KindClass)

	first := r.Record(key, Instantiation{Name: "Vec", SymName: "VecInt", Args: "int", Node: node},
		source.Span{File: 1, Start: 10, End: 20})
	if !first {
		t.Fatalf("first record reported as duplicate")
	}
	again := r.Record(key, Instantiation{Name: "Vec", SymName: "Other", Args: "int"},
		source.Span{File: 2, Start: 5, End: 8})
	if again {
		t.Fatalf("repeated record reported as new")
	}
	if r.Len() != 1 {
		t.Fatalf("recorder length = %d, want 1", r.Len())
	}
	inst := r.Lookup(key)
	if inst == nil || inst.SymName != "VecInt" {
		t.Fatalf("first record did not win")
	}
	if len(inst.Uses) != 2 {
		t.Fatalf("use sites = %d, want 2", len(inst.Uses))
	}

	r.Record(Key{Sym: "Map", Args: "int,char"}, Instantiation{Name: "Map"}, source.Span{})
	all := r.All()
	if len(all) != 2 || all[0].Name != "Vec" || all[1].Name != "Map" {
		t.Fatalf("records out of request order")
	}
}
