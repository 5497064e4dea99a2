package tmpl

import (
	"strings"

	"cppbind/internal/ast"
	"cppbind/internal/symbols"
	"cppbind/internal/typestr"
)

// expander collects substitution targets during a tree walk. Cells land in
// one of three lists depending on how their content is rewritten:
//
//	patch   plain identifier replacement (names, values)
//	types   encoded type strings, rewritten element-wise
//	cpatch  verbatim code text, parameters become their C rendering
type expander struct {
	tname        string // template declaration name, possibly with pattern suffix
	rname        string // target-language name of the instantiation
	tbase        string // last scope segment of tname
	templateargs string // "<(...)>" suffix of the concrete arguments
	packName     string // name of the trailing parameter pack, if any
	expandedPack *ast.Parm

	patch  []*ast.Str
	types  []*ast.Str
	cpatch []*ast.Str
}

// Expand specializes the cloned template tree n in place for the concrete
// argument list tparms. rname is the target-language name of the
// instantiation; tscope is the scope of the template declaration, in which
// default template arguments, the same-name guard and the base list
// resolve. After the
// call every occurrence of a template parameter inside names, types,
// declarators, values and code bodies is replaced with the corresponding
// argument, and the node is re-tagged as the kind it declares.
func Expand(n *ast.Node, rname string, tparms *ast.Parm, tscope *symbols.Symtab) {
	e := &expander{rname: rname}
	e.templateargs = typestr.AddTemplate("", tparms)
	e.tname = n.Name.String()
	e.tbase = symbols.ScopenameLast(e.tname)

	// Partial specializations deduce their parameters through a pattern:
	// matching "p.$1" against "p.int" binds the parameter to "int", so the
	// pattern prefix is stripped off the supplied argument first.
	if n.PartialArgs != nil {
		for pa, tp := n.PartialArgs, tparms; pa != nil && tp != nil; pa, tp = pa.Next, tp.Next {
			if tp.Type != nil {
				tp.Type.Set(partialArg(tp.Type.String(), pa.Type.String()))
			}
		}
	}

	if unexpanded := typestr.VariadicParm(n.TemplateParms); unexpanded != nil {
		e.packName = unexpanded.Name
		e.expandedPack = tparms.Nth(n.TemplateParms.Len() - 1)
	}
	var expandedTypes []string
	for ep := e.expandedPack; ep != nil; ep = ep.Next {
		expandedTypes = append(expandedTypes, ep.Type.String())
	}

	e.walk(n, n, false)

	// Specialization names already carry an argument pattern; the
	// instantiated name is always base plus the concrete arguments.
	n.Name.Set(typestr.TemplatePrefix(e.tname) + e.templateargs)
	iname := n.Name.String()

	tp := n.TemplateParms
	p := tparms
	if p != nil && tp != nil {
		tsdecl, _ := n.Scope.(*symbols.Symtab)
		if tsdecl == nil {
			tsdecl = tscope
		}
		tsname := n.SymName.String()
		for p != nil && tp != nil {
			name := tp.Name
			if name != "" {
				value := p.Value.String()
				if value == "" {
					value = p.Type.String()
				}
				qvalue := tsdecl.TypedefReduce(value)
				dvalue := tsdecl.TypeQualify(qvalue)
				if typestr.IsTemplate(dvalue) {
					dvalue = tscope.TemplateDeftype(dvalue)
				}
				valuestr := typestr.Str(dvalue, "")

				// Later arguments may reference this parameter in their
				// default values.
				for rp := p.Next; rp != nil; rp = rp.Next {
					if !rp.Value.Empty() {
						s, _ := typestr.ReplaceID(rp.Value.String(), name, dvalue)
						rp.Value.Set(s)
					}
				}
				for _, cell := range e.patch {
					s, _ := typestr.ReplaceID(cell.String(), name, dvalue)
					cell.Set(s)
				}
				for _, cell := range e.types {
					s := cell.String()
					if e.packName != "" {
						s = typestr.VariadicReplace(s, e.packName, expandedTypes)
					}
					if replaceInType(s, tscope, tsname) {
						s = typestr.TypenameReplace(s, name, dvalue)
						s = typestr.TypenameReplace(s, e.tbase, iname)
					}
					cell.Set(s)
				}
				for _, cell := range e.cpatch {
					s, _ := typestr.ReplaceID(cell.String(), "#"+name, "\""+valuestr+"\"")
					s, _ = typestr.ReplaceID(s, name, valuestr)
					cell.Set(s)
				}
			}
			p = p.Next
			tp = tp.Next
			if p == nil {
				p = tp
			}
		}
	} else {
		for _, cell := range e.types {
			s := cell.String()
			if e.packName != "" {
				s = typestr.VariadicReplace(s, e.packName, expandedTypes)
			}
			cell.Set(typestr.TypenameReplace(s, e.tbase, iname))
		}
	}

	postprocess(n)

	for _, cell := range n.BaseList {
		cell.Set(tscope.TypeQualify(cell.String()))
	}
}

// partialArg strips the non-placeholder prefix of pattern p off s:
// pattern "p.q(const).$1" applied to "p.q(const).int" yields "int".
func partialArg(s, p string) string {
	idx := strings.IndexByte(p, '$')
	if idx < 0 {
		return s
	}
	return strings.Replace(s, p[:idx], "", 1)
}

// replaceInType reports whether parameter substitution may run on the type
// string ty. It is suppressed when ty resolves to a non-template node whose
// symbol name equals the template's own symbol name tsname.
func replaceInType(ty string, tscope *symbols.Symtab, tsname string) bool {
	tynode := tscope.Clookup(ty)
	if tynode == nil {
		return true
	}
	tyname := tynode.SymName.String()
	if tyname == "" || tsname == "" || tyname != tsname {
		return true
	}
	return tynode.TemplateType != ast.KindNone
}

func (e *expander) addPatch(cells ...*ast.Str) {
	for _, c := range cells {
		if c != nil {
			e.patch = append(e.patch, c)
		}
	}
}

func (e *expander) addTypes(cells ...*ast.Str) {
	for _, c := range cells {
		if c != nil {
			e.types = append(e.types, c)
		}
	}
}

func (e *expander) addCPatch(cells ...*ast.Str) {
	for _, c := range cells {
		if c != nil {
			e.cpatch = append(e.cpatch, c)
		}
	}
}

// expandParms expands a trailing parameter pack and registers every
// parameter type and value for substitution.
func (e *expander) expandParms(p *ast.Parm) *ast.Parm {
	p = expandVariadicParms(p, e.packName, e.expandedPack)
	for q := p; q != nil; q = q.Next {
		e.addTypes(q.Type, q.Value)
	}
	return p
}

// expandBases rewrites one inheritance list. A pack-typed base entry turns
// into one entry per pack argument; everything else is registered for
// substitution unchanged.
func (e *expander) expandBases(list []*ast.Str) []*ast.Str {
	var out []*ast.Str
	for _, b := range list {
		s := b.String()
		if e.packName != "" && typestr.IsVariadic(s) {
			chain := typestr.DelVariadic(s)
			for ep := e.expandedPack; ep != nil; ep = ep.Next {
				t, _ := typestr.ReplaceID(chain, e.packName, ep.Type.String())
				cell := ast.NewStr(t)
				out = append(out, cell)
				e.addTypes(cell)
			}
		} else {
			out = append(out, b)
			e.addTypes(b)
		}
	}
	return out
}

// walk gathers substitution targets across the cloned tree. outer marks a
// nested template node whose kind must be restored after processing; the
// top node stays re-tagged as what it declares.
func (e *expander) walk(root, n *ast.Node, outer bool) {
	if n == nil || n.InError {
		return
	}
	switch n.Kind {
	case ast.KindTemplate:
		n.Kind = n.TemplateType
		e.walk(root, n, true)
		if outer {
			n.Kind = ast.KindTemplate
		}
		return

	case ast.KindCDecl:
		e.addTypes(n.Type, n.Decl)
		e.addPatch(n.Value)
		e.addCPatch(n.Code)
		if n.ConversionOperator {
			e.addCPatch(n.Name, n.SymName)
		}
		if n.Storage == "friend" {
			if !n.SymName.Empty() {
				n.SymName.Set(typestr.TemplatePrefix(n.SymName.String()))
			}
			e.addTypes(n.Name)
		}
		n.Parms = e.expandParms(n.Parms)
		n.Throws = e.expandParms(n.Throws)

	case ast.KindClass:
		n.BaseList = e.expandBases(n.BaseList)
		n.ProtectedBaseList = e.expandBases(n.ProtectedBaseList)
		n.PrivateBaseList = e.expandBases(n.PrivateBaseList)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			e.walk(root, c, outer)
		}

	case ast.KindConstructor:
		if n.TemplateType == ast.KindNone {
			if !n.Name.Empty() {
				stripped := typestr.TemplatePrefix(n.Name.String())
				if strings.Contains(e.tname, stripped) {
					s, _ := typestr.ReplaceID(n.Name.String(), stripped, e.tname)
					n.Name.Set(s)
				}
				if n.Name.Contains("<") {
					e.addPatch(n.Name)
				} else {
					n.Name.Append(e.templateargs)
				}
			}
			if !n.SymName.Empty() {
				if n.SymName.Contains("<") {
					n.SymName.Set(e.rname)
				} else {
					n.SymName.Set(strings.ReplaceAll(n.SymName.String(), e.tname, e.rname))
				}
			}
		}
		e.addCPatch(n.Code)
		e.addTypes(n.Decl)
		n.Parms = e.expandParms(n.Parms)
		n.Throws = e.expandParms(n.Throws)

	case ast.KindDestructor:
		// Destructors count only in the class itself or an extend block
		// directly under it.
		inClass := n.Parent == root ||
			(n.Parent != nil && n.Parent.Parent == root && n.Parent.Kind == ast.KindExtend)
		if inClass {
			if n.Name.Contains("<") {
				e.addPatch(n.Name)
			} else {
				n.Name.Append(e.templateargs)
			}
			if !n.SymName.Empty() {
				if n.SymName.Contains("<") {
					n.SymName.Set(e.tname)
				} else {
					n.SymName.Set(strings.ReplaceAll(n.SymName.String(), e.tname, e.rname))
				}
			}
		}
		e.addCPatch(n.Code)

	case ast.KindUsing:
		if n.UName != nil && n.UName.Contains("<") {
			e.addPatch(n.UName)
		}

	default:
		e.addCPatch(n.Code)
		e.addTypes(n.Type, n.Decl)
		n.Parms = e.expandParms(n.Parms)
		n.KwArgs = e.expandParms(n.KwArgs)
		n.Pattern = e.expandParms(n.Pattern)
		n.Throws = e.expandParms(n.Throws)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			e.walk(root, c, outer)
		}
	}
}
