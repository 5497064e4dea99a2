package tmpl

import (
	"fmt"
	"strings"

	"cppbind/internal/ast"
	"cppbind/internal/symbols"
	"cppbind/internal/typestr"
)

type matchKind int8

const (
	exactNoMatch   matchKind = -2
	deducedNoMatch matchKind = -1
	deducedMatch   matchKind = 1
	exactMatch     matchKind = 2
)

// exactMatchPriority outranks every deduced match; deduced priorities are
// type-string prefix lengths, which stay far below this.
const exactMatchPriority = 99999

// doesParmMatch checks one instantiation argument type against one partially
// specialized parameter type. placeholder is the deduction token of the
// parameter position ("$1", "$2", ...). The priority is only meaningful for
// a match: exact matches get exactMatchPriority, deduced matches the length
// of the specialization prefix, so "r.q(const).p." beats "p.".
//
// All of the following can match type "r.q(const).p.int":
//
//	r.$1            deduced, priority 2
//	r.q(const).$1   deduced, priority 11
//	r.q(const).p.$1 deduced, priority 13
func doesParmMatch(ty, partialType, placeholder string, tscope *symbols.Symtab) (matchKind, int) {
	reduced := tscope.TypedefReduce(ty)
	base := typestr.Base(reduced)
	substituted, substitutions := typestr.ReplaceID(partialType, placeholder, base)
	if substitutions == 1 {
		prefix, _ := typestr.ReplaceID(partialType, placeholder, "")
		if strings.HasPrefix(reduced, prefix) {
			return deducedMatch, len(prefix)
		}
		return deducedNoMatch, -1
	}
	if reduced == substituted {
		return exactMatch, exactMatchPriority
	}
	return exactNoMatch, -1
}

// partialMatch is one surviving partial specialization candidate with its
// per-parameter priority row.
type partialMatch struct {
	node       *ast.Node
	priorities []int
}

// matchPartials ranks every partial specialization of the primary against
// the instantiation arguments. Only candidates of the same arity are
// considered; a candidate survives when every parameter matches.
func matchPartials(partials []*ast.Node, parms *ast.Parm, tscope *symbols.Symtab) []partialMatch {
	plen := parms.Len()
	var out []partialMatch
	for _, part := range partials {
		pp := part.PartialParms
		if pp.Len() != plen {
			continue
		}
		row := make([]int, 0, plen)
		ok := true
		i := 1
		for p, q := parms, pp; p != nil && q != nil; p, q = p.Next, q.Next {
			t := p.Type.String()
			if t == "" {
				t = p.Value.String()
			}
			prio := 0
			if t != "" {
				var kind matchKind
				kind, prio = doesParmMatch(t, q.Type.String(), fmt.Sprintf("$%d", i), tscope)
				if kind < deducedMatch {
					ok = false
					break
				}
			}
			row = append(row, prio)
			i++
		}
		if ok {
			out = append(out, partialMatch{node: part, priorities: row})
		}
	}
	return out
}

// reduceMatches narrows surviving candidates to the ones that are
// column-best on every parameter. Exact matches rank highest, then deduced
// parameters by how specialized they are: matching const int *, the ranking
// from highest to lowest is
//
//	const int *   (exact)
//	const T *
//	T *
//	T
//
// When several candidates remain they are genuinely ambiguous; when none
// dominates every column the full survivor set comes back unchanged.
func reduceMatches(matches []partialMatch, plen int) []partialMatch {
	if len(matches) <= 1 {
		return matches
	}
	flagged := make([][]bool, len(matches))
	for i := range flagged {
		flagged[i] = make([]bool, plen)
	}
	for col := 0; col < plen; col++ {
		maxpriority := -1
		for _, m := range matches {
			if m.priorities[col] > maxpriority {
				maxpriority = m.priorities[col]
			}
		}
		for row, m := range matches {
			flagged[row][col] = m.priorities[col] >= maxpriority
		}
	}
	var chosen []partialMatch
	for row, m := range matches {
		all := true
		for col := 0; col < plen; col++ {
			if !flagged[row][col] {
				all = false
				break
			}
		}
		if all {
			chosen = append(chosen, m)
		}
	}
	if len(chosen) > 0 {
		return chosen
	}
	return matches
}
