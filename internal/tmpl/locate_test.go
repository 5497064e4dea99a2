package tmpl

import (
	"testing"

	"cppbind/internal/ast"
	"cppbind/internal/diag"
	"cppbind/internal/symbols"
	"cppbind/internal/typestr"
)

func locateFixture(t *testing.T) (*symbols.Symtab, *diag.Bag, Context) {
	t.Helper()
	tab := symbols.NewSymtab()
	bag, err := diag.NewBag(16)
	if err != nil {
		t.Fatalf("NewBag: %v", err)
	}
	return tab, bag, Context{Syms: tab, Rep: diag.BagReporter{Bag: bag}}
}

func onlyCode(t *testing.T, bag *diag.Bag, want diag.Code) {
	t.Helper()
	if bag.Len() != 1 {
		t.Fatalf("diagnostic count = %d, want 1", bag.Len())
	}
	if got := bag.Items()[0].Code; got != want {
		t.Fatalf("diagnostic code = %s, want %s", got.ID(), want.ID())
	}
}

func TestLocateUndefined(t *testing.T) {
	_, bag, ctx := locateFixture(t)
	if n := Locate(ctx, "Nope", typestr.ParmsFromTypes([]string{"int"}), "N"); n != nil {
		t.Fatalf("undefined template resolved to %v", n.Kind)
	}
	onlyCode(t, bag, diag.TmplUndefined)
}

func TestLocateClassPrimary(t *testing.T) {
	tab, bag, ctx := locateFixture(t)
	tmpl := classTemplate("Vec", link(tparm("T", "class", "")))
	tab.Add("Vec", tmpl)

	n := Locate(ctx, "Vec", typestr.ParmsFromTypes([]string{"int"}), "VecInt")
	if n != tmpl {
		t.Fatalf("primary lookup returned the wrong node")
	}
	if !n.Instantiate {
		t.Fatalf("located template not marked for instantiation")
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", bag.Len())
	}
}

func TestLocateArity(t *testing.T) {
	tab, bag, ctx := locateFixture(t)
	tmpl := classTemplate("Pair", link(
		tparm("A", "class", ""),
		tparm("B", "class", ""),
	))
	tab.Add("Pair", tmpl)

	if n := Locate(ctx, "Pair", typestr.ParmsFromTypes([]string{"int", "char", "long"}), "P"); n != nil {
		t.Fatalf("over-long argument list was accepted")
	}
	onlyCode(t, bag, diag.TmplTooManyParms)

	tab2, bag2, ctx2 := locateFixture(t)
	tab2.Add("Pair", classTemplate("Pair", link(
		tparm("A", "class", ""),
		tparm("B", "class", ""),
	)))
	if n := Locate(ctx2, "Pair", typestr.ParmsFromTypes([]string{"int"}), "P"); n != nil {
		t.Fatalf("short argument list was accepted")
	}
	onlyCode(t, bag2, diag.TmplNotEnoughParms)
}

func TestLocateDefaultsSatisfyArity(t *testing.T) {
	tab, bag, ctx := locateFixture(t)
	tmpl := classTemplate("Set", link(
		tparm("K", "class", ""),
		tparm("C", "class", "Less<(K)>"),
	))
	tab.Add("Set", tmpl)

	if n := Locate(ctx, "Set", typestr.ParmsFromTypes([]string{"int"}), "SetInt"); n != tmpl {
		t.Fatalf("defaulted parameter rejected")
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", bag.Len())
	}
}

func TestLocateDuplicateInstantiation(t *testing.T) {
	tab, bag, ctx := locateFixture(t)
	tmpl := classTemplate("Vec", link(tparm("T", "class", "")))
	tab.Add("Vec", tmpl)

	inst := ast.New(ast.KindClass)
	inst.Template = tmpl
	inst.SymName = ast.NewStr("VecInt")
	tab.Add("Vec<(int)>", inst)

	if n := Locate(ctx, "Vec", typestr.ParmsFromTypes([]string{"int"}), "Other"); n != nil {
		t.Fatalf("duplicate instantiation was not suppressed")
	}
	onlyCode(t, bag, diag.TmplTypeRedefined)
	if sev := bag.Items()[0].Severity; sev != diag.SevWarning {
		t.Fatalf("duplicate reported as %v, want warning", sev)
	}
}

func TestLocateDuplicateAnonymous(t *testing.T) {
	tab, bag, ctx := locateFixture(t)
	tmpl := classTemplate("Vec", link(tparm("T", "class", "")))
	tab.Add("Vec", tmpl)

	inst := ast.New(ast.KindClass)
	inst.Template = tmpl
	inst.SymName = ast.NewStr("VecInt")
	tab.Add("Vec<(int)>", inst)

	if n := Locate(ctx, "Vec", typestr.ParmsFromTypes([]string{"int"}), ""); n != nil {
		t.Fatalf("anonymous duplicate produced a node")
	}
	if bag.Len() != 0 {
		t.Fatalf("anonymous duplicate produced diagnostics: %d", bag.Len())
	}
}

func TestLocatePartialPreferred(t *testing.T) {
	tab, bag, ctx := locateFixture(t)
	tmpl := classTemplate("Vec", link(tparm("T", "class", "")))
	partial := classTemplate("Vec<(p.$1)>", link(tparm("$1", "class", "")))
	partial.PartialParms = typestr.ParmsFromTypes([]string{"p.$1"})
	partial.PartialArgs = typestr.ParmsFromTypes([]string{"p.$1"})
	partial.TemplCSymName = "Vec<(p.$1)>"
	tmpl.Partials = []*ast.Node{partial}
	tab.Add("Vec", tmpl)

	n := Locate(ctx, "Vec", typestr.ParmsFromTypes([]string{"p.int"}), "VecIntPtr")
	if n != partial {
		t.Fatalf("pointer argument did not select the partial specialization")
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", bag.Len())
	}

	// A non-pointer argument still resolves to the primary.
	if n := Locate(ctx, "Vec", typestr.ParmsFromTypes([]string{"int"}), "VecInt"); n != tmpl {
		t.Fatalf("plain argument did not select the primary")
	}
}

func TestLocateAmbiguousPartials(t *testing.T) {
	tab, bag, ctx := locateFixture(t)
	tmpl := classTemplate("Map", link(tparm("A", "class", ""), tparm("B", "class", "")))
	a := classTemplate("Map<(p.$1,$2)>", link(tparm("$1", "class", ""), tparm("$2", "class", "")))
	a.PartialParms = typestr.ParmsFromTypes([]string{"p.$1", "$2"})
	b := classTemplate("Map<($1,p.$2)>", link(tparm("$1", "class", ""), tparm("$2", "class", "")))
	b.PartialParms = typestr.ParmsFromTypes([]string{"$1", "p.$2"})
	tmpl.Partials = []*ast.Node{a, b}
	tab.Add("Map", tmpl)

	n := Locate(ctx, "Map", typestr.ParmsFromTypes([]string{"p.int", "p.int"}), "M")
	if n == nil {
		t.Fatalf("ambiguous instantiation produced no node")
	}
	onlyCode(t, bag, diag.TmplAmbiguous)
}

func TestLocateFunctionOverloads(t *testing.T) {
	tab, bag, ctx := locateFixture(t)
	one := ast.New(ast.KindTemplate)
	one.TemplateType = ast.KindCDecl
	one.Name = ast.NewStr("max")
	one.TemplateParms = link(tparm("T", "class", ""))
	two := ast.New(ast.KindTemplate)
	two.TemplateType = ast.KindCDecl
	two.Name = ast.NewStr("max")
	two.TemplateParms = link(tparm("T", "class", ""), tparm("U", "class", ""))
	tab.Add("max", one)
	tab.Add("max", two)

	n := Locate(ctx, "max", typestr.ParmsFromTypes([]string{"int", "char"}), "maxic")
	if n != two {
		t.Fatalf("two-argument request matched the wrong overload")
	}
	if !two.Instantiate || one.Instantiate {
		t.Fatalf("instantiation marks wrong: one=%v two=%v", one.Instantiate, two.Instantiate)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", bag.Len())
	}
}

func TestLocateFunctionVariadicFallback(t *testing.T) {
	tab, bag, ctx := locateFixture(t)
	fixed := ast.New(ast.KindTemplate)
	fixed.TemplateType = ast.KindCDecl
	fixed.Name = ast.NewStr("call")
	fixed.TemplateParms = link(tparm("T", "class", ""))
	pack := ast.New(ast.KindTemplate)
	pack.TemplateType = ast.KindCDecl
	pack.Name = ast.NewStr("call")
	pack.TemplateParms = link(tparm("R", "class", ""), tparm("A", "v.class", ""))
	tab.Add("call", fixed)
	tab.Add("call", pack)

	n := Locate(ctx, "call", typestr.ParmsFromTypes([]string{"int", "char", "long"}), "call3")
	if n != pack {
		t.Fatalf("three-argument request did not fall back to the pack overload")
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", bag.Len())
	}
}
