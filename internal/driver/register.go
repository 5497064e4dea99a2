package driver

import (
	"fmt"
	"strings"

	"cppbind/internal/ast"
	"cppbind/internal/diag"
	"cppbind/internal/symbols"
	"cppbind/internal/typestr"
)

// RegisterDecls records a parsed declaration tree in the symbol table.
// Primary templates land under their bare name, partial specializations
// under their placeholder-shaped lookup name and on the primary's partial
// list, explicit specializations under the full argument list. Namespaces
// and classes open scopes so qualified lookups resolve.
func RegisterDecls(tab *symbols.Symtab, root *ast.Node, rep diag.Reporter) {
	for n := root.FirstChild; n != nil; n = n.NextSibling {
		registerDecl(tab, n, rep)
	}
}

func registerDecl(tab *symbols.Symtab, n *ast.Node, rep diag.Reporter) {
	switch n.Kind {
	case ast.KindNamespace:
		name := n.Name.String()
		scope := tab.InnerScope(name)
		if scope == nil {
			scope = tab.NewScope(name)
		}
		n.Scope = scope
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			registerDecl(scope, c, rep)
		}

	case ast.KindTypedef:
		tab.AddTypedef(n.Name.String(), n.Type.String())

	case ast.KindClass:
		name := n.Name.String()
		tab.Add(name, n)
		n.Scope = tab.NewScope(name)

	case ast.KindTemplate:
		registerTemplate(tab, n, rep)

	case ast.KindCDecl:
		tab.Add(n.Name.String(), n)
	}
}

func registerTemplate(tab *symbols.Symtab, n *ast.Node, rep diag.Reporter) {
	name := n.Name.String()
	switch {
	case n.TemplCSymName != "":
		// Partial specialization: attach to the primary, which must have
		// been declared first.
		base := typestr.TemplatePrefix(name)
		primary := tab.Lookup(base)
		if primary == nil || primary.Kind != ast.KindTemplate {
			diag.ReportError(rep, diag.TmplUndefined, n.Span,
				fmt.Sprintf("Template '%s' undefined.", base)).Emit()
			n.InError = true
			return
		}
		primary.Partials = append(primary.Partials, n)
		tab.Add(n.TemplCSymName, n)
		n.Scope = tab

	case strings.Contains(name, "<"):
		// Explicit specialization: registered under the full argument list
		// so instantiation lookups find it before the primary.
		tab.Add(name, n)
		n.Scope = tab

	default:
		tab.Add(name, n)
		n.Scope = tab
	}
}
