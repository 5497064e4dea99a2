package tmpl

import (
	"cppbind/internal/ast"
	"cppbind/internal/typestr"
)

// postprocess repairs declarations whose substituted return type carries
// declarator layers. Substituting T=char* into "T f();" leaves the pointer
// on the type; it belongs on the declarator, after the function element.
func postprocess(n *ast.Node) {
	if n == nil || n.InError {
		return
	}
	if n.Kind == ast.KindCDecl && typestr.IsFunction(n.Decl.String()) && !n.Type.Empty() {
		fixFunctionDecl(n.Decl, n.Type)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		postprocess(c)
	}
}

// fixFunctionDecl moves declarator layers from the return type onto the
// declarator. The qualifier and array layers next to the base stay on the
// type; every layer outside them moves: for
// decl "f()." and type "p.q(const).char" the result is decl "f().p." and
// type "q(const).char".
func fixFunctionDecl(decl, typ *ast.Str) {
	prefix := typestr.Prefix(typ.String())
	for prefix != "" {
		last := typestr.Last(prefix)
		if !typestr.IsQualifier(last) && !typestr.IsArray(last) {
			break
		}
		prefix = prefix[:len(prefix)-len(last)]
	}
	if prefix == "" {
		return
	}
	decl.Append(prefix)
	typ.Set(typ.String()[len(prefix):])
}
