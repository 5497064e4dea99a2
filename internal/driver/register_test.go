package driver

import (
	"testing"

	"cppbind/internal/ast"
	"cppbind/internal/diag"
	"cppbind/internal/lexer"
	"cppbind/internal/parser"
	"cppbind/internal/source"
	"cppbind/internal/symbols"
)

func registerSetup(t *testing.T, src string) (*symbols.Symtab, *parser.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.i", []byte(src))
	bag, err := diag.NewBag(16)
	if err != nil {
		t.Fatalf("NewBag: %v", err)
	}
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), rep)
	f := parser.New(lx, rep).Parse()
	if bag.HasErrors() {
		t.Fatalf("unexpected parse diagnostics: %v", bag.Items())
	}
	tab := symbols.NewSymtab()
	RegisterDecls(tab, f.Root, rep)
	return tab, f, bag
}

func TestRegisterPrimaryAndPartial(t *testing.T) {
	tab, _, bag := registerSetup(t, `
template<class T> struct Vec {};
template<class T> struct Vec<T*> {};
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	primary := tab.Lookup("Vec")
	if primary == nil || primary.Kind != ast.KindTemplate {
		t.Fatalf("primary not registered")
	}
	if len(primary.Partials) != 1 {
		t.Fatalf("partials = %d, want 1", len(primary.Partials))
	}
	partial := primary.Partials[0]
	if partial.TemplCSymName == "" {
		t.Fatalf("partial lookup name missing")
	}
	if tab.Lookup(partial.TemplCSymName) != partial {
		t.Fatalf("partial not registered under %q", partial.TemplCSymName)
	}
}

func TestRegisterExplicitSpecialization(t *testing.T) {
	tab, _, _ := registerSetup(t, `
template<class T> struct Vec {};
template<> struct Vec<int> {};
`)
	spec := tab.Lookup("Vec<(int)>")
	if spec == nil || spec.Kind != ast.KindTemplate {
		t.Fatalf("explicit specialization not registered under its full name")
	}
	if spec == tab.Lookup("Vec") {
		t.Fatalf("specialization shadowed the primary")
	}
}

func TestRegisterPartialWithoutPrimary(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.i", []byte(`template<class T> struct Vec<T*> {};`))
	bag, err := diag.NewBag(16)
	if err != nil {
		t.Fatalf("NewBag: %v", err)
	}
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), rep)
	f := parser.New(lx, rep).Parse()
	tab := symbols.NewSymtab()
	RegisterDecls(tab, f.Root, rep)

	if !bag.HasErrors() {
		t.Fatalf("missing primary not reported")
	}
	if !bagHas(bag, diag.TmplUndefined) {
		t.Fatalf("wrong diagnostic: %v", bag.Items())
	}
	if n := f.Root.FirstChild; n == nil || !n.InError {
		t.Fatalf("orphaned partial not marked in error")
	}
}

func TestRegisterNamespaceScopes(t *testing.T) {
	tab, _, _ := registerSetup(t, `
namespace outer {
    typedef int word;
    template<class T> struct Box {};
    class Plain {};
}
`)
	outer := tab.InnerScope("outer")
	if outer == nil {
		t.Fatalf("namespace scope missing")
	}
	if outer.Lookup("Box") == nil {
		t.Fatalf("template not registered inside its namespace")
	}
	plain := outer.Lookup("Plain")
	if plain == nil {
		t.Fatalf("class not registered inside its namespace")
	}
	if _, ok := plain.Scope.(*symbols.Symtab); !ok {
		t.Fatalf("class scope not opened")
	}
	if got := outer.TypedefReduce("word"); got != "int" {
		t.Fatalf("typedef reduce = %q, want int", got)
	}
	if tab.Lookup("Box") != nil {
		t.Fatalf("namespaced template leaked into the global scope")
	}
}

func TestRegisterFunctionOverloads(t *testing.T) {
	tab, _, _ := registerSetup(t, `
template<class T> T max(T a, T b);
template<class T, class U> T max(T a, U b);
`)
	head := tab.Lookup("max")
	if head == nil {
		t.Fatalf("function template not registered")
	}
	if head.SymNext == nil || head.SymNext.SymNext != nil {
		t.Fatalf("overloads not chained under one name")
	}
}
