package typestr

import (
	"strings"
)

func isIdentChar(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// ReplaceID replaces whole-identifier occurrences of id in s with rep and
// returns the rewritten string together with the number of replacements.
// Occurrences embedded in a longer identifier are left alone.
func ReplaceID(s, id, rep string) (string, int) {
	if id == "" || s == "" {
		return s, 0
	}
	var b strings.Builder
	count := 0
	i := 0
	for {
		j := strings.Index(s[i:], id)
		if j < 0 {
			b.WriteString(s[i:])
			break
		}
		j += i
		end := j + len(id)
		beforeOK := j == 0 || !isIdentChar(s[j-1])
		afterOK := end == len(s) || !isIdentChar(s[end])
		if beforeOK && afterOK {
			b.WriteString(s[i:j])
			b.WriteString(rep)
			count++
			i = end
		} else {
			b.WriteString(s[i : j+1])
			i = j + 1
		}
	}
	return b.String(), count
}

// TypenameReplace rewrites every occurrence of the typename pat inside ty
// with rep: base names (including A::B segments), template argument lists,
// function parameter lists, and the payloads of qualifier and array
// elements are all visited.
func TypenameReplace(ty, pat, rep string) string {
	if pat == "" || ty == "" {
		return ty
	}
	var b strings.Builder
	rest := ty
	for rest != "" {
		element, r := Pop(rest)
		b.WriteString(replaceElement(element, pat, rep))
		rest = r
	}
	return b.String()
}

func replaceElement(element, pat, rep string) string {
	switch {
	case element == "p." || element == "r." || element == "v.":
		return element
	case IsFunction(element):
		inner := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSuffix(element, "."), "f("), ")")
		args := []string{}
		if inner != "" {
			args = splitArgs(inner)
		}
		for i, a := range args {
			args[i] = TypenameReplace(a, pat, rep)
		}
		return "f(" + strings.Join(args, ",") + ")."
	case IsQualifier(element) || IsArray(element):
		open := strings.IndexByte(element, '(')
		closing := strings.LastIndexByte(element, ')')
		payload, _ := ReplaceID(element[open+1:closing], pat, rep)
		return element[:open+1] + payload + element[closing:]
	default:
		return replaceBase(element, pat, rep)
	}
}

func replaceBase(base, pat, rep string) string {
	if base == pat {
		return rep
	}
	i := strings.Index(base, "<(")
	if i < 0 {
		return replaceQualified(base, pat, rep)
	}
	j := strings.LastIndex(base, ")>")
	if j < i {
		return replaceQualified(base, pat, rep)
	}
	name := replaceQualified(base[:i], pat, rep)
	args := splitArgs(base[i+2 : j])
	for k, a := range args {
		args[k] = TypenameReplace(a, pat, rep)
	}
	tail := base[j+2:]
	if tail != "" {
		tail = replaceQualified(tail, pat, rep)
	}
	return name + "<(" + strings.Join(args, ",") + ")>" + tail
}

// replaceQualified replaces whole :: segments of a possibly qualified name.
func replaceQualified(name, pat, rep string) string {
	if name == pat {
		return rep
	}
	if !strings.Contains(name, "::") {
		return name
	}
	segs := strings.Split(name, "::")
	for i, s := range segs {
		if s == pat {
			segs[i] = rep
		}
	}
	return strings.Join(segs, "::")
}

// VariadicReplace expands any remaining pack fragments inside ty: within
// function parameter lists and template argument lists, a parameter of the
// shape "v.<chain>" is replaced by one parameter per expanded type, each
// produced by substituting packName in the chain. An empty expansion drops
// the fragment.
func VariadicReplace(ty, packName string, expanded []string) string {
	if packName == "" {
		return ty
	}
	var b strings.Builder
	rest := ty
	for rest != "" {
		element, r := Pop(rest)
		b.WriteString(variadicElement(element, packName, expanded))
		rest = r
	}
	return b.String()
}

func variadicElement(element, packName string, expanded []string) string {
	switch {
	case IsFunction(element):
		inner := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSuffix(element, "."), "f("), ")")
		args := []string{}
		if inner != "" {
			args = splitArgs(inner)
		}
		return "f(" + strings.Join(expandPack(args, packName, expanded), ",") + ")."
	default:
		i := strings.Index(element, "<(")
		if i < 0 {
			return element
		}
		j := strings.LastIndex(element, ")>")
		if j < i {
			return element
		}
		args := splitArgs(element[i+2 : j])
		return element[:i] + "<(" + strings.Join(expandPack(args, packName, expanded), ",") + ")>" + element[j+2:]
	}
}

func expandPack(args []string, packName string, expanded []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if !IsVariadic(a) {
			out = append(out, VariadicReplace(a, packName, expanded))
			continue
		}
		chain := DelVariadic(a)
		for _, t := range expanded {
			subst, _ := ReplaceID(chain, packName, t)
			out = append(out, subst)
		}
	}
	return out
}
