package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"cppbind/internal/ast"
)

// DumpTree writes an indented rendering of a declaration tree, one node
// per line with the attributes that are set.
func DumpTree(w io.Writer, root *ast.Node) error {
	for n := root.FirstChild; n != nil; n = n.NextSibling {
		if err := dumpNode(w, n, 0); err != nil {
			return err
		}
	}
	return nil
}

func dumpNode(w io.Writer, n *ast.Node, depth int) error {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Kind.String())
	if !n.Name.Empty() {
		fmt.Fprintf(&b, " %s", n.Name.String())
	}
	if !n.Type.Empty() {
		fmt.Fprintf(&b, " type=%s", n.Type.String())
	}
	if !n.Decl.Empty() {
		fmt.Fprintf(&b, " decl=%s", n.Decl.String())
	}
	if n.Kind == ast.KindTemplate && n.TemplateParms != nil {
		fmt.Fprintf(&b, " parms=%s", n.TemplateParms.ArgString())
	}
	if n.Storage != "" {
		fmt.Fprintf(&b, " storage=%s", n.Storage)
	}
	if _, err := fmt.Fprintln(w, b.String()); err != nil {
		return err
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := dumpNode(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
