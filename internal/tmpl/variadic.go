package tmpl

import (
	"cppbind/internal/ast"
	"cppbind/internal/typestr"
)

// expandVariadicParms replaces a trailing pack parameter with one parameter
// per pack argument. For
//
//	template <typename... T> struct X { X(T&... tt); };
//	with X<A,B,C>
//
// a parameter list "v.r.T tt" becomes "r.A,r.B,r.C". The expanded
// parameters carry no names. Lists without a pack parameter pass through
// unchanged, as does everything when the template itself is not variadic.
func expandVariadicParms(p *ast.Parm, packName string, pack *ast.Parm) *ast.Parm {
	if packName == "" {
		return p
	}
	variadic := typestr.VariadicParm(p)
	if variadic == nil {
		return p
	}
	expanded := pack.Copy()
	for ep := expanded; ep != nil; ep = ep.Next {
		t := typestr.DelVariadic(variadic.Type.String())
		t, _ = typestr.ReplaceID(t, packName, ep.Type.String())
		if ep.Type == nil {
			ep.Type = ast.NewStr(t)
		} else {
			ep.Type.Set(t)
		}
		ep.Name = ""
	}
	return p.ReplaceLast(expanded)
}
