package tmpl

import (
	"testing"

	"cppbind/internal/ast"
	"cppbind/internal/symbols"
	"cppbind/internal/typestr"
)

func TestExpandClassTemplate(t *testing.T) {
	n := classTemplate("Box", link(tparm("T", "class", "")))
	n.BaseList = []*ast.Str{ast.NewStr("Base<(T)>")}

	ctor := ast.New(ast.KindConstructor)
	ctor.Name = ast.NewStr("Box")
	ctor.SymName = ast.NewStr("Box")
	ctor.Decl = ast.NewStr("f(r.q(const).T).")
	ctor.Parms = link(tparm("v", "r.q(const).T", ""))

	dtor := ast.New(ast.KindDestructor)
	dtor.Name = ast.NewStr("~Box")
	dtor.SymName = ast.NewStr("~Box")

	get := ast.New(ast.KindCDecl)
	get.Name = ast.NewStr("get")
	get.SymName = ast.NewStr("get")
	get.Type = ast.NewStr("T")
	get.Decl = ast.NewStr("f(void).")

	data := ast.New(ast.KindCDecl)
	data.Name = ast.NewStr("data")
	data.SymName = ast.NewStr("data")
	data.Type = ast.NewStr("p.T")
	data.Decl = ast.NewStr("f(int).")

	n.AppendChild(ctor)
	n.AppendChild(dtor)
	n.AppendChild(get)
	n.AppendChild(data)

	tscope := symbols.NewSymtab()
	Expand(n, "BoxInt", typestr.ParmsFromTypes([]string{"int"}), tscope)

	if n.Kind != ast.KindClass {
		t.Fatalf("node kind = %v, want class", n.Kind)
	}
	if got := n.Name.String(); got != "Box<(int)>" {
		t.Fatalf("name = %q, want %q", got, "Box<(int)>")
	}
	if got := n.BaseList[0].String(); got != "Base<(int)>" {
		t.Fatalf("base = %q, want %q", got, "Base<(int)>")
	}
	if got := ctor.Name.String(); got != "Box<(int)>" {
		t.Fatalf("constructor name = %q", got)
	}
	if got := ctor.SymName.String(); got != "BoxInt" {
		t.Fatalf("constructor sym name = %q, want BoxInt", got)
	}
	if got := ctor.Parms.Type.String(); got != "r.q(const).int" {
		t.Fatalf("constructor parameter = %q", got)
	}
	if got := dtor.Name.String(); got != "~Box<(int)>" {
		t.Fatalf("destructor name = %q", got)
	}
	if got := dtor.SymName.String(); got != "~BoxInt" {
		t.Fatalf("destructor sym name = %q", got)
	}
	if got := get.Type.String(); got != "int" {
		t.Fatalf("get return type = %q, want int", got)
	}
	if got := data.Type.String(); got != "int" {
		t.Fatalf("data return type = %q, want int", got)
	}
	if got := data.Decl.String(); got != "f(int).p." {
		t.Fatalf("data declarator = %q, want %q", got, "f(int).p.")
	}
}

func TestExpandKeepsMemberTemplates(t *testing.T) {
	n := classTemplate("Box", link(tparm("T", "class", "")))

	member := ast.New(ast.KindTemplate)
	member.TemplateType = ast.KindCDecl
	member.Name = ast.NewStr("convert")
	member.TemplateParms = link(tparm("U", "class", ""))
	member.Type = ast.NewStr("U")
	member.Decl = ast.NewStr("f(T,U).")
	n.AppendChild(member)

	Expand(n, "BoxInt", typestr.ParmsFromTypes([]string{"int"}), symbols.NewSymtab())

	if member.Kind != ast.KindTemplate {
		t.Fatalf("member template re-tagged to %v", member.Kind)
	}
	if got := member.Decl.String(); got != "f(int,U)." {
		t.Fatalf("member declarator = %q, want %q", got, "f(int,U).")
	}
	if got := member.Type.String(); got != "U" {
		t.Fatalf("member type = %q, want U", got)
	}
}

func TestExpandVariadicBases(t *testing.T) {
	n := classTemplate("Tuple", link(tparm("T", "v.class", "")))
	n.BaseList = []*ast.Str{ast.NewStr("v.Wrap<(T)>")}

	ctor := ast.New(ast.KindConstructor)
	ctor.Name = ast.NewStr("Tuple")
	ctor.SymName = ast.NewStr("Tuple")
	ctor.Parms = link(tparm("tt", "v.r.T", ""))
	n.AppendChild(ctor)

	Expand(n, "TupleID", typestr.ParmsFromTypes([]string{"int", "double"}), symbols.NewSymtab())

	if got := n.Name.String(); got != "Tuple<(int,double)>" {
		t.Fatalf("name = %q", got)
	}
	wantBases := []string{"Wrap<(int)>", "Wrap<(double)>"}
	if len(n.BaseList) != len(wantBases) {
		t.Fatalf("base list length = %d, want %d", len(n.BaseList), len(wantBases))
	}
	for i, want := range wantBases {
		if got := n.BaseList[i].String(); got != want {
			t.Fatalf("base %d = %q, want %q", i, got, want)
		}
	}
	var gotParms []string
	for p := ctor.Parms; p != nil; p = p.Next {
		gotParms = append(gotParms, p.Type.String())
	}
	wantParms := []string{"r.int", "r.double"}
	if len(gotParms) != len(wantParms) {
		t.Fatalf("constructor parameters = %v, want %v", gotParms, wantParms)
	}
	for i := range wantParms {
		if gotParms[i] != wantParms[i] {
			t.Fatalf("constructor parameter %d = %q, want %q", i, gotParms[i], wantParms[i])
		}
	}
}

func TestExpandPartialSpecialization(t *testing.T) {
	n := classTemplate("Vec<(p.$1)>", link(tparm("T", "class", "")))
	n.PartialArgs = typestr.ParmsFromTypes([]string{"p.$1"})

	deref := ast.New(ast.KindCDecl)
	deref.Name = ast.NewStr("at")
	deref.Type = ast.NewStr("r.T")
	deref.Decl = ast.NewStr("f(int).")
	n.AppendChild(deref)

	// The request carries the full argument; the pattern prefix is
	// stripped, binding T to the pointee.
	Expand(n, "VecIntPtr", typestr.ParmsFromTypes([]string{"p.int"}), symbols.NewSymtab())

	if got := deref.Type.String(); got != "int" {
		t.Fatalf("member type = %q, want int", got)
	}
	if got := deref.Decl.String(); got != "f(int).r." {
		t.Fatalf("member declarator = %q, want %q", got, "f(int).r.")
	}
}

func TestFixFunctionDecl(t *testing.T) {
	tests := []struct {
		decl, typ         string
		wantDecl, wantTyp string
	}{
		{"f(void).", "p.q(const).char", "f(void).p.", "q(const).char"},
		{"f(int).", "p.p.int", "f(int).p.p.", "int"},
		{"f(void).", "int", "f(void).", "int"},
		{"f(void).", "q(const).int", "f(void).", "q(const).int"},
	}
	for _, tt := range tests {
		decl := ast.NewStr(tt.decl)
		typ := ast.NewStr(tt.typ)
		fixFunctionDecl(decl, typ)
		if decl.String() != tt.wantDecl || typ.String() != tt.wantTyp {
			t.Fatalf("fixFunctionDecl(%q, %q) = %q, %q; want %q, %q",
				tt.decl, tt.typ, decl.String(), typ.String(), tt.wantDecl, tt.wantTyp)
		}
	}
}
