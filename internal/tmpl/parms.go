// Package tmpl implements the template instantiation core: locating the
// best-matching declaration for an instantiation request and specializing a
// cloned template tree for a concrete argument list.
package tmpl

import (
	"cppbind/internal/ast"
	"cppbind/internal/typestr"
)

// ParmsExpand expands the arguments passed to an instantiation request
// against the primary template: parameter names and missing types are taken
// from the primary, and for non-variadic class templates the primary's
// trailing defaults are appended (marked Default) and resolved against the
// supplied arguments.
func ParmsExpand(instantiated *ast.Parm, primary *ast.Node) *ast.Parm {
	tparms := primary.TemplateParms
	expanded := instantiated.Copy()
	if primary.TemplateType == ast.KindClass {
		variadic := mergeParameters(expanded, tparms)
		if !variadic {
			if start := tparms.Nth(instantiated.Len()); start != nil {
				defaults := start.Copy()
				markDefaults(defaults)
				expanded = expanded.Join(defaults)
				expandDefaults(expanded)
			}
		}
	} else {
		// Default template parameters on function templates are not
		// expanded here.
		mergeParameters(expanded, tparms)
	}
	return expanded
}

// mergeParameters copies parameter names, and types where missing, from the
// template parameter list onto the argument list. Non-type arguments arrive
// without a type. Reports whether the template is variadic.
func mergeParameters(args, tparms *ast.Parm) bool {
	p := args
	tp := tparms
	for p != nil && tp != nil {
		p.Name = tp.Name
		if p.Type.Empty() {
			p.Type = tp.Type.Copy()
		}
		p = p.Next
		tp = tp.Next
	}
	return typestr.VariadicParm(tparms) != nil
}

// markDefaults flags every parameter as expanded from a primary default.
func markDefaults(defaults *ast.Parm) {
	for tp := defaults; tp != nil; tp = tp.Next {
		tp.Default = true
	}
}

// expandDefaults resolves parameter references inside default values:
// "int K,class C=Less<(K)>" with K bound to int becomes "class C=Less<(int)>".
func expandDefaults(list *ast.Parm) {
	for tp := list; tp != nil; tp = tp.Next {
		tv := tp.Value
		if tv.Empty() {
			tv = tp.Type
		}
		if tv == nil {
			continue
		}
		for p := list; p != nil; p = p.Next {
			if p.Name == "" {
				continue
			}
			s, _ := typestr.ReplaceID(tv.String(), p.Name, argText(p))
			tv.Set(s)
		}
	}
}

// argText returns the substitution text of an argument: the value when one
// is present, the type otherwise.
func argText(p *ast.Parm) string {
	if !p.Value.Empty() {
		return p.Value.String()
	}
	return p.Type.String()
}
