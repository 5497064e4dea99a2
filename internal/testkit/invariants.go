// Package testkit holds shared checks for tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"cppbind/internal/ast"
	"cppbind/internal/source"
)

// CheckTreeInvariants runs structural invariants over a declaration tree:
// 1) every span is well-formed and within the file's content bounds
// 2) every child points back at its parent
// 3) the last-child link closes each sibling chain
func CheckTreeInvariants(root *ast.Node, sf *source.File) error {
	if root == nil || sf == nil {
		return fmt.Errorf("nil root or file")
	}
	limit, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("content length overflow: %w", err)
	}
	return checkNode(root, limit)
}

func checkNode(n *ast.Node, limit uint32) error {
	if n.Span.Start > n.Span.End {
		return fmt.Errorf("inverted span %v on %s node", n.Span, n.Kind)
	}
	if n.Span.End > limit {
		return fmt.Errorf("span %v on %s node is beyond content end %d", n.Span, n.Kind, limit)
	}
	var last *ast.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Parent != n {
			return fmt.Errorf("%s child of %s node has a stale parent link", c.Kind, n.Kind)
		}
		if err := checkNode(c, limit); err != nil {
			return err
		}
		last = c
	}
	if last != n.LastChild {
		return fmt.Errorf("%s node's last-child link does not close its sibling chain", n.Kind)
	}
	return nil
}
