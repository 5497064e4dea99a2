// Package typestr implements the compact string encoding of C++ types used
// throughout the front end, and the operations the instantiation core needs
// on it.
//
// A type is a chain of dot-separated elements read left to right, outermost
// first, ending in a base name:
//
//	p.              pointer
//	r.              reference
//	q(const).       qualifier
//	a(10).          array
//	f(int,p.char).  function taking encoded parameter types
//	v.              variadic pack marker
//	int             base name, possibly A::B qualified
//	Box<(int,p.A)>  base name with an encoded template suffix
//
// Examples: "r.q(const).int" is `const int &`, "p.f(int).void" is a pointer
// to `void (int)`.
package typestr

import (
	"strings"

	"cppbind/internal/ast"
)

// IsPointer reports whether ty's outermost element is a pointer.
func IsPointer(ty string) bool { return strings.HasPrefix(ty, "p.") }

// IsReference reports whether ty's outermost element is a reference.
func IsReference(ty string) bool { return strings.HasPrefix(ty, "r.") }

// IsQualifier reports whether ty's outermost element is a qualifier.
func IsQualifier(ty string) bool { return strings.HasPrefix(ty, "q(") }

// IsArray reports whether ty's outermost element is an array.
func IsArray(ty string) bool { return strings.HasPrefix(ty, "a(") }

// IsFunction reports whether ty's outermost element is a function.
func IsFunction(ty string) bool { return strings.HasPrefix(ty, "f(") }

// IsVariadic reports whether ty carries the pack marker.
func IsVariadic(ty string) bool { return strings.HasPrefix(ty, "v.") }

// DelVariadic strips the leading pack marker.
func DelVariadic(ty string) string { return strings.TrimPrefix(ty, "v.") }

// IsTemplate reports whether ty's base carries a template suffix.
func IsTemplate(ty string) bool { return strings.Contains(Base(ty), "<(") }

// Base returns the terminal element of ty: the rightmost dot-separated
// element at nesting depth zero. For a declarator chain with no base (such
// as "f(int).") it returns "".
func Base(ty string) string {
	i := lastDot(ty)
	if i < 0 {
		return ty
	}
	return ty[i+1:]
}

// Prefix returns everything before the base, trailing dot included.
func Prefix(ty string) string {
	i := lastDot(ty)
	if i < 0 {
		return ""
	}
	return ty[:i+1]
}

// Last returns the final element of a prefix chain, trailing dot included,
// or "" when the chain is empty. Last("r.q(const).p.") is "p.".
func Last(chain string) string {
	if chain == "" {
		return ""
	}
	trimmed := strings.TrimSuffix(chain, ".")
	i := lastDot(trimmed)
	if i < 0 {
		return chain
	}
	return chain[i+1:]
}

// Pop splits ty into its outermost element (trailing dot included, when it
// has one) and the remainder.
func Pop(ty string) (element, rest string) {
	depth := 0
	for i := 0; i < len(ty); i++ {
		switch ty[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '.':
			if depth == 0 {
				return ty[:i+1], ty[i+1:]
			}
		}
	}
	return ty, ""
}

// AddTemplate appends an encoded template suffix built from parms to name.
func AddTemplate(name string, parms *ast.Parm) string {
	return name + "<(" + parms.ArgString() + ")>"
}

// TemplatePrefix strips the template suffix from a name:
// TemplatePrefix("Box<(int)>") is "Box". Names without a suffix come back
// unchanged.
func TemplatePrefix(name string) string {
	if i := strings.Index(name, "<("); i >= 0 {
		return name[:i]
	}
	return name
}

// TemplateArgs returns the encoded arguments of a template base, split at
// top-level commas, or nil when the base has no template suffix.
func TemplateArgs(base string) []string {
	i := strings.Index(base, "<(")
	if i < 0 {
		return nil
	}
	j := strings.LastIndex(base, ")>")
	if j < i {
		return nil
	}
	return splitArgs(base[i+2 : j])
}

// FunctionParms returns the encoded parameter types of a function element
// such as "f(int,p.char).".
func FunctionParms(ty string) []string {
	if !IsFunction(ty) {
		return nil
	}
	element, _ := Pop(ty)
	element = strings.TrimSuffix(element, ".")
	inner := strings.TrimSuffix(strings.TrimPrefix(element, "f("), ")")
	if inner == "" {
		return nil
	}
	return splitArgs(inner)
}

// ParmsFromTypes builds a parameter list out of bare encoded types.
func ParmsFromTypes(types []string) *ast.Parm {
	var head, tail *ast.Parm
	for _, t := range types {
		p := ast.NewParm(t, "")
		if head == nil {
			head = p
		} else {
			tail.Next = p
		}
		tail = p
	}
	return head
}

// VariadicParm returns the trailing parameter of the list when it is a
// pack, nil otherwise. A parameter is variadic only in last position.
func VariadicParm(p *ast.Parm) *ast.Parm {
	last := p.Last()
	if last != nil && IsVariadic(last.Type.String()) {
		return last
	}
	return nil
}

// lastDot finds the last dot at nesting depth zero, or -1.
func lastDot(s string) int {
	depth := 0
	last := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '.':
			if depth == 0 {
				last = i
			}
		}
	}
	return last
}

// splitArgs splits a comma-separated list at nesting depth zero.
func splitArgs(s string) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '<':
			depth++
		case ')', '>':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}
