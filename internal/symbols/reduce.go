package symbols

import (
	"strings"

	"cppbind/internal/ast"
	"cppbind/internal/typestr"
)

// typedefLookup resolves the typedef value of a possibly qualified name,
// searching the parent chain for unqualified ones.
func (st *Symtab) typedefLookup(name string) (string, bool) {
	if i := lastScopeSep(name); i >= 0 {
		scope := st.resolveScope(name[:i])
		if scope == nil {
			return "", false
		}
		v, ok := scope.typedefs[name[i+2:]]
		return v, ok
	}
	for s := st; s != nil; s = s.parent {
		if v, ok := s.typedefs[name]; ok {
			return v, true
		}
	}
	return "", false
}

// TypedefReduce unfolds typedef aliases in ty to a fixed point. The base
// name is reduced repeatedly; template arguments are reduced in place.
// Cyclic typedefs stop at the first repeated form.
func (st *Symtab) TypedefReduce(ty string) string {
	seen := map[string]bool{}
	cur := ty
	for !seen[cur] {
		seen[cur] = true
		prefix := typestr.Prefix(cur)
		base := typestr.Base(cur)
		if name, args, tail, ok := splitTemplateBase(base); ok {
			for i, a := range args {
				args[i] = st.TypedefReduce(a)
			}
			cur = prefix + name + "<(" + strings.Join(args, ",") + ")>" + tail
			base = typestr.Base(cur)
		}
		v, ok := st.typedefLookup(base)
		if !ok {
			break
		}
		cur = prefix + v
	}
	return cur
}

// TypeQualify rewrites every resolvable name in ty to its fully qualified
// form. Names that resolve nowhere, primitive types included, pass through
// unchanged.
func (st *Symtab) TypeQualify(ty string) string {
	var b strings.Builder
	rest := ty
	for rest != "" {
		element, r := typestr.Pop(rest)
		rest = r
		switch {
		case typestr.IsFunction(element):
			parms := typestr.FunctionParms(element)
			for i := range parms {
				parms[i] = st.TypeQualify(parms[i])
			}
			b.WriteString("f(" + strings.Join(parms, ",") + ").")
		case element == "p." || element == "r." || element == "v." ||
			typestr.IsQualifier(element) || typestr.IsArray(element):
			b.WriteString(element)
		default:
			b.WriteString(st.qualifyBase(element))
		}
	}
	return b.String()
}

func (st *Symtab) qualifyBase(base string) string {
	if name, args, tail, ok := splitTemplateBase(base); ok {
		for i := range args {
			args[i] = st.TypeQualify(args[i])
		}
		return st.qualifyName(name) + "<(" + strings.Join(args, ",") + ")>" + tail
	}
	return st.qualifyName(base)
}

// qualifyName maps a name to scope::name when some visible scope defines
// it. Already qualified names are normalized against their resolved scope.
func (st *Symtab) qualifyName(name string) string {
	if i := lastScopeSep(name); i >= 0 {
		scope := st.resolveScope(name[:i])
		last := name[i+2:]
		if scope != nil && scope.defines(last) {
			return joinScope(scope.FullName(), last)
		}
		return name
	}
	for s := st; s != nil; s = s.parent {
		if s.defines(name) {
			return joinScope(s.FullName(), name)
		}
	}
	return name
}

func (st *Symtab) defines(name string) bool {
	if st.symbols[name] != nil || st.children[name] != nil {
		return true
	}
	_, ok := st.typedefs[name]
	return ok
}

// TemplateDeftype appends missing default arguments to every template base
// inside ty, resolving each default against the arguments already supplied.
func (st *Symtab) TemplateDeftype(ty string) string {
	var b strings.Builder
	rest := ty
	for rest != "" {
		element, r := typestr.Pop(rest)
		rest = r
		switch {
		case typestr.IsFunction(element):
			parms := typestr.FunctionParms(element)
			for i := range parms {
				parms[i] = st.TemplateDeftype(parms[i])
			}
			b.WriteString("f(" + strings.Join(parms, ",") + ").")
		case element == "p." || element == "r." || element == "v." ||
			typestr.IsQualifier(element) || typestr.IsArray(element):
			b.WriteString(element)
		default:
			b.WriteString(st.deftypeBase(element))
		}
	}
	return b.String()
}

func (st *Symtab) deftypeBase(base string) string {
	name, args, tail, ok := splitTemplateBase(base)
	if !ok {
		return base
	}
	for i := range args {
		args[i] = st.TemplateDeftype(args[i])
	}
	primary := st.Clookup(name)
	if primary != nil && primary.Kind == ast.KindTemplate && primary.TemplateParms != nil {
		args = st.appendDefaults(args, primary.TemplateParms)
	}
	return name + "<(" + strings.Join(args, ",") + ")>" + tail
}

func (st *Symtab) appendDefaults(args []string, tparms *ast.Parm) []string {
	for p, idx := tparms.Nth(len(args)), len(args); p != nil; p, idx = p.Next, idx+1 {
		def := p.Value.String()
		if def == "" {
			break
		}
		q := tparms
		for i := 0; i < idx && q != nil; i, q = i+1, q.Next {
			if q.Name != "" {
				def, _ = typestr.ReplaceID(def, q.Name, args[i])
			}
		}
		args = append(args, st.TypedefReduce(def))
	}
	return args
}

// TemplateDefargs appends missing default arguments of tparms to the
// argument list args and returns the (possibly new) head.
func (st *Symtab) TemplateDefargs(args, tparms *ast.Parm) *ast.Parm {
	supplied := make([]string, 0, args.Len())
	for a := args; a != nil; a = a.Next {
		supplied = append(supplied, argText(a))
	}
	filled := st.appendDefaults(supplied, tparms)
	for _, t := range filled[args.Len():] {
		args = args.Join(ast.NewParm(t, ""))
	}
	return args
}

func argText(p *ast.Parm) string {
	if !p.Value.Empty() {
		return p.Value.String()
	}
	return p.Type.String()
}

// splitTemplateBase cuts a template base into name, argument list and the
// trailing ::-member text after the suffix. ok is false for plain names.
func splitTemplateBase(base string) (name string, args []string, tail string, ok bool) {
	i := strings.Index(base, "<(")
	if i < 0 {
		return "", nil, "", false
	}
	j := strings.LastIndex(base, ")>")
	if j < i {
		return "", nil, "", false
	}
	return base[:i], typestr.TemplateArgs(base), base[j+2:], true
}
