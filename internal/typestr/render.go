package typestr

import "strings"

// Str renders ty as C++ source text with id as the declared name, for
// diagnostics. Str("p.q(const).char", "s") is "const char *s".
func Str(ty, id string) string {
	result := id
	variadic := false
	qual := ""
	rest := ty
	for rest != "" {
		element, r := Pop(rest)
		rest = r
		switch {
		case element == "p.":
			result = "*" + result
		case element == "r.":
			result = "&" + result
		case element == "v.":
			variadic = true
		case IsQualifier(element) && rest != "" && lastDot(rest) < 0:
			// A qualifier directly on the base reads before it: "const char".
			qual = payload(element)
		case IsQualifier(element):
			if result == "" {
				result = payload(element)
			} else {
				result = payload(element) + " " + result
			}
		case IsArray(element):
			if needsParens(result) {
				result = "(" + result + ")"
			}
			result += "[" + payload(element) + "]"
		case IsFunction(element):
			if needsParens(result) {
				result = "(" + result + ")"
			}
			parms := FunctionParms(element)
			rendered := make([]string, len(parms))
			for i, p := range parms {
				rendered[i] = Str(p, "")
			}
			result += "(" + strings.Join(rendered, ",") + ")"
		default:
			base := NameStr(element)
			if qual != "" {
				base = qual + " " + base
			}
			if result == "" {
				result = base
			} else {
				result = base + " " + result
			}
		}
	}
	if variadic {
		result += "..."
	}
	return result
}

// NameStr rewrites the encoded template suffix of a name into C++ angle
// bracket form: NameStr("Box<(int,p.A)>") is "Box< int,A * >". Names
// without a suffix come back unchanged.
func NameStr(name string) string {
	i := strings.Index(name, "<(")
	if i < 0 {
		return name
	}
	j := strings.LastIndex(name, ")>")
	if j < i {
		return name
	}
	args := splitArgs(name[i+2 : j])
	for k, a := range args {
		args[k] = Str(a, "")
	}
	tail := name[j+2:]
	if tail != "" {
		tail = NameStr(tail)
	}
	return name[:i] + "< " + strings.Join(args, ",") + " >" + tail
}

func payload(element string) string {
	open := strings.IndexByte(element, '(')
	closing := strings.LastIndexByte(element, ')')
	return element[open+1 : closing]
}

func needsParens(result string) bool {
	return strings.HasPrefix(result, "*") || strings.HasPrefix(result, "&")
}
