package ast

import (
	"cppbind/internal/source"
)

// Kind tags a declaration node.
type Kind uint8

const (
	KindNone Kind = iota
	KindTemplate
	KindClass
	KindCDecl
	KindConstructor
	KindDestructor
	KindUsing
	KindExtend
	KindNamespace
	KindTypedef
	KindAccess
)

func (k Kind) String() string {
	switch k {
	case KindTemplate:
		return "template"
	case KindClass:
		return "class"
	case KindCDecl:
		return "cdecl"
	case KindConstructor:
		return "constructor"
	case KindDestructor:
		return "destructor"
	case KindUsing:
		return "using"
	case KindExtend:
		return "extend"
	case KindNamespace:
		return "namespace"
	case KindTypedef:
		return "typedef"
	case KindAccess:
		return "access"
	default:
		return "none"
	}
}

// Node is one declaration in the parsed tree. Different kinds populate
// different subsets of the fields; substitutable string attributes are
// interior-mutable cells so patch lists can reference them across a walk.
type Node struct {
	Kind Kind
	Span source.Span

	Name    *Str // declaration name; templates may carry a <(...)> suffix
	SymName *Str // target-language symbol name
	Type    *Str // encoded type
	Decl    *Str // encoded declarator (function/pointer/array layers)
	Value   *Str // initializer or default value
	Code    *Str // verbatim body text
	UName   *Str // aliased name of a using declaration

	Storage            string
	Namespace          string
	ConversionOperator bool

	// Template bookkeeping.
	TemplateType  Kind  // node kind a template node re-tags to on expansion
	TemplateParms *Parm // parameters of a primary or partial template
	Partials      []*Node
	PartialParms  *Parm  // placeholder-typed parameters of a partial
	PartialArgs   *Parm  // partial argument pattern ($1-shaped types)
	TemplCSymName string // mangled lookup name of a partial

	BaseList          []*Str
	ProtectedBaseList []*Str
	PrivateBaseList   []*Str

	Parms   *Parm
	Throws  *Parm
	KwArgs  *Parm
	Pattern *Parm

	Hidden      bool // symbol-table entry is a placeholder name
	InError     bool // node failed an earlier phase; traversals skip it
	Instantiate bool

	// Template links the concrete node produced by an instantiation back to
	// the template declaration it came from.
	Template *Node

	// Scope holds a *symbols.Symtab: the one a namespace or class opens, or
	// for a template the one it is declared in. Typed as any to keep the
	// package dependency one-way.
	Scope any

	Parent      *Node
	FirstChild  *Node
	LastChild   *Node
	NextSibling *Node

	SymNext  *Node // next overload under the same symbol name
	CSymNext *Node // next instantiation record under the same C symbol
}

// New allocates a node of the given kind.
func New(kind Kind) *Node {
	return &Node{Kind: kind}
}

// AppendChild links child at the end of n's child list.
func (n *Node) AppendChild(child *Node) {
	if child == nil {
		return
	}
	child.Parent = n
	if n.LastChild == nil {
		n.FirstChild = child
		n.LastChild = child
		return
	}
	n.LastChild.NextSibling = child
	n.LastChild = child
}

// Children returns the child list as a slice, for callers that want to
// range rather than chase sibling links.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// Copy deep-copies the node: attribute cells, parameter lists, base lists
// and children are duplicated, sibling/symbol links are reset. The Scope
// and Template references are shared, not cloned.
func (n *Node) Copy() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		Kind:               n.Kind,
		Span:               n.Span,
		Name:               n.Name.Copy(),
		SymName:            n.SymName.Copy(),
		Type:               n.Type.Copy(),
		Decl:               n.Decl.Copy(),
		Value:              n.Value.Copy(),
		Code:               n.Code.Copy(),
		UName:              n.UName.Copy(),
		Storage:            n.Storage,
		Namespace:          n.Namespace,
		ConversionOperator: n.ConversionOperator,
		TemplateType:       n.TemplateType,
		TemplateParms:      n.TemplateParms.Copy(),
		PartialParms:       n.PartialParms.Copy(),
		PartialArgs:        n.PartialArgs.Copy(),
		TemplCSymName:      n.TemplCSymName,
		BaseList:           copyStrList(n.BaseList),
		ProtectedBaseList:  copyStrList(n.ProtectedBaseList),
		PrivateBaseList:    copyStrList(n.PrivateBaseList),
		Parms:              n.Parms.Copy(),
		Throws:             n.Throws.Copy(),
		KwArgs:             n.KwArgs.Copy(),
		Pattern:            n.Pattern.Copy(),
		Hidden:             n.Hidden,
		InError:            n.InError,
		Template:           n.Template,
		Scope:              n.Scope,
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(child.Copy())
	}
	return c
}

func copyStrList(in []*Str) []*Str {
	if in == nil {
		return nil
	}
	out := make([]*Str, len(in))
	for i, s := range in {
		out[i] = s.Copy()
	}
	return out
}
