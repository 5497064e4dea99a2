package parser

import (
	"fmt"
	"strings"

	"cppbind/internal/ast"
	"cppbind/internal/diag"
	"cppbind/internal/token"
	"cppbind/internal/typestr"
)

// parseTemplate parses a template declaration: the parameter header, then
// the declared class or function. The declared entity's kind moves into
// TemplateType and the wrapper node becomes the template.
func (p *Parser) parseTemplate() *ast.Node {
	sp := p.tok.Span
	p.accept(token.KwTemplate)
	if !p.expect(token.Lt, diag.SynBadTemplateHeader) {
		p.syncDecl()
		return nil
	}
	var tparms *ast.Parm
	if !p.accept(token.Gt) {
		tparms = p.parseTemplateParms()
		if tparms == nil {
			p.syncDecl()
			return nil
		}
	}
	var n *ast.Node
	switch {
	case p.at(token.KwClass), p.at(token.KwStruct):
		n = p.parseClass(tparms)
	case p.atTypeStart():
		n = p.parseCDecl()
	default:
		p.errorAt(diag.SynBadTemplateHeader, p.tok.Span, fmt.Sprintf(
			"expected class or function after template header, found '%s'",
			p.describe()))
		p.syncDecl()
		return nil
	}
	if n == nil {
		return nil
	}
	n.TemplateType = n.Kind
	n.Kind = ast.KindTemplate
	n.TemplateParms = tparms
	n.Span = sp
	return n
}

// parseTemplateParms parses the comma-separated parameter list of a
// template header; the caller has consumed '<'.
func (p *Parser) parseTemplateParms() *ast.Parm {
	var head, tail *ast.Parm
	for {
		parm := p.parseTemplateParm()
		if parm == nil {
			return nil
		}
		if head == nil {
			head = parm
		} else {
			tail.Next = parm
		}
		tail = parm
		if p.accept(token.Comma) {
			if strings.HasPrefix(parm.Type.String(), "v.") {
				p.errorAt(diag.SynVariadicMustBeLast, p.tok.Span,
					"parameter pack must be the last template parameter")
			}
			continue
		}
		if p.accept(token.Gt) {
			return head
		}
		p.errorAt(diag.SynExpectAngleClose, p.tok.Span,
			"expected '>' closing template parameter list")
		return nil
	}
}

// parseTemplateParm parses one template parameter. Type parameters keep
// "class"/"typename" as their type text, packs get the "v." prefix, and
// defaults are captured in encoded form.
func (p *Parser) parseTemplateParm() *ast.Parm {
	if p.at(token.KwClass) || p.at(token.KwTypename) {
		ty := p.tok.Text
		p.advance()
		if p.accept(token.Ellipsis) {
			ty = "v." + ty
		}
		name := ""
		if p.at(token.Ident) {
			name = p.tok.Text
			p.advance()
		}
		parm := ast.NewParm(ty, name)
		if p.accept(token.Assign) {
			def, ok := p.parseTemplateArg()
			if !ok {
				p.errorAt(diag.SynExpectType, p.tok.Span,
					"expected default template argument")
				return nil
			}
			parm.Value = ast.NewStr(def)
		}
		return parm
	}

	// Non-type parameter: a value of some type.
	ty, ok := p.parseType()
	if !ok {
		p.errorAt(diag.SynBadTemplateHeader, p.tok.Span, fmt.Sprintf(
			"expected template parameter, found '%s'", p.describe()))
		return nil
	}
	name := ""
	if p.at(token.Ident) {
		name = p.tok.Text
		p.advance()
	}
	parm := ast.NewParm(ty, name)
	if p.accept(token.Assign) {
		parm.Value = ast.NewStr(p.captureValue(stopTemplateParm))
	}
	return parm
}

// specializeName folds a parsed argument list into the class name of a
// specialization. For a partial specialization the template parameter
// names in the i-th argument are rewritten to the placeholder "$i", so that
// "Vec<T*>" declared under template<class T> records the pattern
// "Vec<(p.$1)>" and "X<int*, T2>" records "X<(p.int,$2)>".
func (p *Parser) specializeName(n *ast.Node, name string, args []string, tparms *ast.Parm) {
	if tparms == nil {
		// Explicit specialization: the arguments are concrete.
		n.Name.Set(typestr.AddTemplate(name, typestr.ParmsFromTypes(args)))
		return
	}
	dollar := make([]string, len(args))
	for i, arg := range args {
		placeholder := fmt.Sprintf("$%d", i+1)
		for tp := tparms; tp != nil; tp = tp.Next {
			if tp.Name != "" {
				arg, _ = typestr.ReplaceID(arg, tp.Name, placeholder)
			}
		}
		dollar[i] = arg
	}
	pname := typestr.AddTemplate(name, typestr.ParmsFromTypes(dollar))
	n.Name.Set(pname)
	n.TemplCSymName = pname
	n.PartialParms = typestr.ParmsFromTypes(dollar)
	n.PartialArgs = typestr.ParmsFromTypes(dollar)
}
