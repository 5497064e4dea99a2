package driver

import (
	"testing"

	"cppbind/internal/ast"
	"cppbind/internal/diag"
)

func processSrc(t *testing.T, src string) *ProcessResult {
	t.Helper()
	res, err := ProcessBytes("test.i", []byte(src), 32)
	if err != nil {
		t.Fatalf("ProcessBytes: %v", err)
	}
	return res
}

func processClean(t *testing.T, src string) *ProcessResult {
	t.Helper()
	res := processSrc(t, src)
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	return res
}

func lastChild(t *testing.T, n *ast.Node) *ast.Node {
	t.Helper()
	if n.LastChild == nil {
		t.Fatalf("node has no children")
	}
	return n.LastChild
}

func findMember(n *ast.Node, name string) *ast.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Name.String() == name {
			return c
		}
	}
	return nil
}

func bagHas(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestProcessSimpleClassTemplate(t *testing.T) {
	res := processClean(t, `
template<class T> struct Box {
    T x;
    Box(const T& v);
};
%template(IntBox) Box<int>;
`)
	inst := lastChild(t, res.Tree.Root)
	if inst.Kind != ast.KindClass {
		t.Fatalf("instantiation kind = %v, want class", inst.Kind)
	}
	if got := inst.Name.String(); got != "Box<(int)>" {
		t.Fatalf("instantiation name = %q, want %q", got, "Box<(int)>")
	}
	if got := inst.SymName.String(); got != "IntBox" {
		t.Fatalf("instantiation sym name = %q, want IntBox", got)
	}
	if inst.Hidden {
		t.Fatalf("named instantiation must not be hidden")
	}

	x := findMember(inst, "x")
	if x == nil || x.Kind != ast.KindCDecl {
		t.Fatalf("member x missing")
	}
	if got := x.Type.String(); got != "int" {
		t.Fatalf("x type = %q, want int", got)
	}

	ctor := findMember(inst, "Box<(int)>")
	if ctor == nil || ctor.Kind != ast.KindConstructor {
		t.Fatalf("constructor missing")
	}
	if got := ctor.SymName.String(); got != "IntBox" {
		t.Fatalf("constructor sym name = %q, want IntBox", got)
	}
	if ctor.Parms.Len() != 1 {
		t.Fatalf("constructor parameters = %d, want 1", ctor.Parms.Len())
	}
	if got := ctor.Parms.Type.String(); got != "r.q(const).int" {
		t.Fatalf("constructor parameter = %q, want r.q(const).int", got)
	}

	if res.Syms.Lookup("IntBox") != inst {
		t.Fatalf("IntBox not registered in the request scope")
	}
	if res.Syms.Lookup("Box<(int)>") != inst {
		t.Fatalf("Box<(int)> not registered in the template scope")
	}
	if res.Recorder.Len() != 1 {
		t.Fatalf("recorded instantiations = %d, want 1", res.Recorder.Len())
	}
}

func TestProcessVariadicPack(t *testing.T) {
	res := processClean(t, `
template<class... T> struct Tup {
    Tup(T&... t);
};
%template(TupAB) Tup<A,B>;
`)
	inst := lastChild(t, res.Tree.Root)
	if got := inst.Name.String(); got != "Tup<(A,B)>" {
		t.Fatalf("instantiation name = %q", got)
	}
	ctor := inst.FirstChild
	if ctor == nil || ctor.Kind != ast.KindConstructor {
		t.Fatalf("constructor missing")
	}
	if ctor.Parms.Len() != 2 {
		t.Fatalf("constructor parameters = %d, want 2", ctor.Parms.Len())
	}
	if got := ctor.Parms.Type.String(); got != "r.A" {
		t.Fatalf("first parameter = %q, want r.A", got)
	}
	if got := ctor.Parms.Next.Type.String(); got != "r.B" {
		t.Fatalf("second parameter = %q, want r.B", got)
	}
}

func TestProcessPartialSpecializationSelection(t *testing.T) {
	res := processClean(t, `
template<class T> struct X { int primary; };
template<class T> struct X<T*> { int a; };
template<class T> struct X<const T*> { int b; };
%template(Xcp) X<const int*>;
`)
	inst := lastChild(t, res.Tree.Root)
	if findMember(inst, "b") == nil {
		t.Fatalf("const-pointer partial not chosen, members: %v", inst.Children())
	}
	if findMember(inst, "a") != nil || findMember(inst, "primary") != nil {
		t.Fatalf("wrong declaration expanded")
	}
	if bagHas(res.Bag, diag.TmplAmbiguous) {
		t.Fatalf("selection reported as ambiguous")
	}
}

func TestProcessAmbiguousPartials(t *testing.T) {
	res := processSrc(t, `
template<class T1, class T2> struct X {};
template<class T1> struct X<T1, double*> { int a; };
template<class T2> struct X<int*, T2> { int b; };
%template(Xid) X<int*, double*>;
`)
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Bag.Items())
	}
	if !bagHas(res.Bag, diag.TmplAmbiguous) {
		t.Fatalf("ambiguity not reported: %v", res.Bag.Items())
	}
	inst := lastChild(t, res.Tree.Root)
	if findMember(inst, "a") == nil {
		t.Fatalf("first-declared candidate not chosen, members: %v", inst.Children())
	}
}

func TestProcessDefaultArgumentBackReference(t *testing.T) {
	res := processClean(t, `
template<class K, class C = Less<K> > struct Map {};
%template(IntMap) Map<int>;
`)
	inst := lastChild(t, res.Tree.Root)
	if got := inst.Name.String(); got != "Map<(int,Less<(int)>)>" {
		t.Fatalf("instantiation name = %q", got)
	}
	recs := res.Recorder.All()
	if len(recs) != 1 {
		t.Fatalf("recorded instantiations = %d, want 1", len(recs))
	}
	if got := recs[0].Args; got != "int,Less<(int)>" {
		t.Fatalf("recorded arguments = %q, want %q", got, "int,Less<(int)>")
	}
}

func TestProcessDuplicateInstantiation(t *testing.T) {
	res := processSrc(t, `
template<class T> struct Box {};
%template(IntBox) Box<int>;
%template(IntBox) Box<int>;
`)
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Bag.Items())
	}
	if !bagHas(res.Bag, diag.TmplTypeRedefined) {
		t.Fatalf("duplicate not reported: %v", res.Bag.Items())
	}
	if res.Recorder.Len() != 1 {
		t.Fatalf("recorded instantiations = %d, want 1", res.Recorder.Len())
	}
	rec := res.Recorder.All()[0]
	if len(rec.Uses) != 2 {
		t.Fatalf("use sites = %d, want 2", len(rec.Uses))
	}
	if got := rec.SymName; got != "IntBox" {
		t.Fatalf("surviving instantiation = %q, want IntBox", got)
	}
}

func TestProcessAnonymousRequest(t *testing.T) {
	res := processClean(t, `
template<class T> struct Box {};
%template() Box<int>;
`)
	inst := lastChild(t, res.Tree.Root)
	if !inst.Hidden {
		t.Fatalf("anonymous instantiation must be hidden")
	}
	if got := inst.SymName.String(); got != "__anon_1" {
		t.Fatalf("placeholder sym name = %q", got)
	}
	if res.Syms.Lookup("__anon_1") != nil {
		t.Fatalf("placeholder name leaked into the request scope")
	}
	if res.Syms.Lookup("Box<(int)>") != inst {
		t.Fatalf("anonymous instantiation not registered under its full name")
	}
}

func TestProcessAnonymousThenNamed(t *testing.T) {
	res := processClean(t, `
template<class T> struct Box {};
%template() Box<int>;
%template(IntBox) Box<int>;
`)
	anon := res.Syms.Lookup("Box<(int)>")
	if anon == nil || !anon.Hidden {
		t.Fatalf("anonymous instantiation missing")
	}
	named := res.Syms.Lookup("IntBox")
	if named == nil {
		t.Fatalf("named instantiation missing")
	}
	if anon.CSymNext != named {
		t.Fatalf("named instantiation not linked to the hidden one")
	}
	if res.Recorder.Len() != 2 {
		t.Fatalf("recorded instantiations = %d, want 2", res.Recorder.Len())
	}
}

func TestProcessUndefinedTemplate(t *testing.T) {
	res := processSrc(t, `%template(Nope) Missing<int>;`)
	if !res.Bag.HasErrors() {
		t.Fatalf("undefined template not reported")
	}
	if !bagHas(res.Bag, diag.TmplUndefined) {
		t.Fatalf("wrong diagnostic: %v", res.Bag.Items())
	}
	if res.Recorder.Len() != 0 {
		t.Fatalf("recorded instantiations = %d, want 0", res.Recorder.Len())
	}
}

func TestProcessArityMismatch(t *testing.T) {
	res := processSrc(t, `
template<class T> struct Box {};
%template(Bad) Box<int,double>;
`)
	if !bagHas(res.Bag, diag.TmplTooManyParms) {
		t.Fatalf("arity error not reported: %v", res.Bag.Items())
	}
	if res.Recorder.Len() != 0 {
		t.Fatalf("recorded instantiations = %d, want 0", res.Recorder.Len())
	}
}

func TestProcessExplicitSpecializationWins(t *testing.T) {
	res := processClean(t, `
template<class T> struct Box { int generic; };
template<> struct Box<int> { int special; };
%template(IntBox) Box<int>;
`)
	inst := lastChild(t, res.Tree.Root)
	if findMember(inst, "special") == nil {
		t.Fatalf("explicit specialization not chosen, members: %v", inst.Children())
	}
}

func TestProcessNamespacedTemplate(t *testing.T) {
	res := processClean(t, `
namespace acme {
    template<class T> struct Vec { T* data; };
}
%template(IntVec) acme::Vec<int>;
`)
	inst := lastChild(t, res.Tree.Root)
	if got := inst.Name.String(); got != "Vec<(int)>" {
		t.Fatalf("instantiation name = %q", got)
	}
	if res.Syms.Lookup("IntVec") != inst {
		t.Fatalf("IntVec not registered in the request scope")
	}
	acme := res.Syms.InnerScope("acme")
	if acme == nil || acme.Lookup("Vec<(int)>") != inst {
		t.Fatalf("instantiation not registered in the template's scope")
	}
	data := findMember(inst, "data")
	if data == nil {
		t.Fatalf("member data missing")
	}
	if got := data.Type.String(); got != "p.int" {
		t.Fatalf("data type = %q, want p.int", got)
	}
}
