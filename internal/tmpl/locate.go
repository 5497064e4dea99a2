package tmpl

import (
	"fmt"

	"cppbind/internal/ast"
	"cppbind/internal/diag"
	"cppbind/internal/source"
	"cppbind/internal/symbols"
	"cppbind/internal/typestr"
)

// Context carries everything a lookup needs: the scope the instantiation
// request appears in, the diagnostic sink, and the request's source span.
type Context struct {
	Syms *symbols.Symtab
	Rep  diag.Reporter
	Span source.Span
}

// templateLocate finds the template declaration an instantiation request
// resolves to. The search order is the usual one: an explicit
// specialization registered under the full argument list first, then the
// best-ranked partial specialization, then the primary. symname is the
// target-language name of the request; a named request for an argument list
// that already has a named instantiation triggers a duplicate warning,
// whatever the earlier name, and an anonymous one is dropped silently.
func templateLocate(ctx Context, name string, instantiatedParms *ast.Parm, symname string) *ast.Node {
	templ := ctx.Syms.Clookup(name)
	if templ == nil {
		diag.ReportError(ctx.Rep, diag.TmplUndefined, ctx.Span,
			fmt.Sprintf("Template '%s' undefined.", name)).Emit()
		return nil
	}

	primaryScope := ctx.Syms
	if ts, ok := templ.Scope.(*symbols.Symtab); ok && ts != nil {
		primaryScope = ts
	}

	parms := instantiatedParms.Copy()
	expandedparms := ctx.Syms.TemplateDefargs(parms, templ.TemplateParms)
	for p := expandedparms; p != nil; p = p.Next {
		if !p.Type.Empty() {
			p.Type.Set(ctx.Syms.TypeQualify(p.Type.String()))
		}
	}
	tname := typestr.AddTemplate(name, expandedparms)

	// Explicit specializations and earlier instantiations are both
	// registered under the full argument list.
	nfound := primaryScope.ClookupLocal(symbols.ScopenameLast(tname))
	if nfound == nil {
		rname := ctx.Syms.TypedefReduce(tname)
		if rname != tname {
			nfound = primaryScope.ClookupLocal(symbols.ScopenameLast(rname))
		}
	}
	n := nfound
	if n != nil {
		if n.Kind == ast.KindTemplate {
			return n
		}
		if tn := n.Template; tn != nil {
			prev := n
			if n.Hidden {
				prev = n.CSymNext
			}
			if symname == "" {
				// An anonymous request for an already instantiated
				// argument list is simply satisfied by the earlier one.
				return nil
			}
			if prev != nil {
				pretty := typestr.NameStr(tname)
				diag.ReportWarning(ctx.Rep, diag.TmplTypeRedefined, ctx.Span,
					fmt.Sprintf("Duplicate template instantiation of '%s' with name '%s' ignored,", pretty, symname)).
					WithNote(prev.Span,
						fmt.Sprintf("previous instantiation of '%s' with name '%s'.", pretty, prev.SymName.String())).
					Emit()
				return nil
			}
			return tn
		}
		diag.ReportError(ctx.Rep, diag.TmplNotATemplate, ctx.Span,
			fmt.Sprintf("'%s' is not defined as a template. (%s)", name, n.Kind)).Emit()
		return nil
	}

	if len(templ.Partials) > 0 {
		matches := matchPartials(templ.Partials, expandedparms, ctx.Syms)
		chosen := reduceMatches(matches, expandedparms.Len())
		if len(chosen) > 0 {
			best := chosen[0].node
			n = primaryScope.ClookupLocal(best.TemplCSymName)
			if n == nil {
				n = best
			}
			if len(chosen) > 1 {
				b := diag.ReportWarning(ctx.Rep, diag.TmplAmbiguous, ctx.Span,
					fmt.Sprintf("Instantiation of template '%s' is ambiguous,", typestr.NameStr(tname))).
					WithNote(best.Span, fmt.Sprintf("instantiation '%s' used,", typestr.NameStr(best.Name.String())))
				for _, m := range chosen[1:] {
					b.WithNote(m.node.Span, fmt.Sprintf("instantiation '%s' ignored.", typestr.NameStr(m.node.Name.String())))
				}
				b.Emit()
			}
		}
	}
	if n == nil {
		n = templ
	}
	if n.Kind != ast.KindTemplate {
		diag.ReportError(ctx.Rep, diag.TmplNotATemplate, ctx.Span,
			fmt.Sprintf("'%s' is not defined as a template. (%s)", name, n.Kind)).Emit()
		return nil
	}
	return n
}

// Locate resolves an instantiation request to the template node to expand,
// checking arity along the way. Class templates resolve to exactly one
// declaration; function templates walk the overload chain and mark every
// overload whose parameter count fits. A request with the wrong number of
// arguments resolves to nothing.
func Locate(ctx Context, name string, instantiatedParms *ast.Parm, symname string) *ast.Node {
	n := templateLocate(ctx, name, instantiatedParms, symname)
	if n == nil {
		return nil
	}
	if n.TemplateType == ast.KindClass {
		tparms := n.TemplateParms
		if n.PartialParms != nil {
			// A partial specialization is checked against the arity of its
			// primary template.
			if primary := ctx.Syms.Clookup(name); primary != nil {
				tparms = primary.TemplateParms
			}
		}
		specialized := tparms == nil
		variadic := typestr.VariadicParm(tparms) != nil
		if !specialized {
			alen := instantiatedParms.Len()
			if !variadic && alen > tparms.Len() {
				diag.ReportError(ctx.Rep, diag.TmplTooManyParms, ctx.Span,
					fmt.Sprintf("Too many template parameters. Maximum of %d.", tparms.Len())).Emit()
				return nil
			}
			required := tparms.NumRequired()
			if variadic {
				required--
			}
			if alen < required {
				diag.ReportError(ctx.Rep, diag.TmplNotEnoughParms, ctx.Span,
					fmt.Sprintf("Not enough template parameters specified. %d required.", required)).Emit()
				return nil
			}
		}
		n.Instantiate = true
		return n
	}

	// Function templates: every overload with a matching parameter count
	// takes part in the instantiation. Exact arity wins over a trailing
	// pack.
	alen := instantiatedParms.Len()
	firstn := ctx.Syms.ClookupLocal(symbols.ScopenameLast(name))
	if firstn == nil {
		firstn = n
	}
	var match *ast.Node
	for n2 := firstn; n2 != nil; n2 = n2.SymNext {
		if n2.Kind != ast.KindTemplate {
			continue
		}
		if typestr.VariadicParm(n2.TemplateParms) != nil {
			continue
		}
		if alen == n2.TemplateParms.Len() {
			n2.Instantiate = true
			if match == nil {
				match = n2
			}
		}
	}
	if match == nil {
		for n2 := firstn; n2 != nil; n2 = n2.SymNext {
			if n2.Kind != ast.KindTemplate {
				continue
			}
			tparms := n2.TemplateParms
			if typestr.VariadicParm(tparms) == nil {
				continue
			}
			if alen >= tparms.Len()-1 {
				n2.Instantiate = true
				if match == nil {
					match = n2
				}
			}
		}
	}
	if match == nil {
		diag.ReportError(ctx.Rep, diag.TmplUndefined, ctx.Span,
			fmt.Sprintf("Template '%s' undefined.", name)).Emit()
		return nil
	}
	return match
}
