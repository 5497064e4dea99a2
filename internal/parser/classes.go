package parser

import (
	"fmt"
	"strings"

	"cppbind/internal/ast"
	"cppbind/internal/diag"
	"cppbind/internal/token"
)

// parseClass parses a class or struct declaration, including any
// specialization argument list, base clause and member body. tparms is
// non-nil when the class sits under a template header and is needed to
// detect partial specializations.
func (p *Parser) parseClass(tparms *ast.Parm) *ast.Node {
	n := ast.New(ast.KindClass)
	n.Span = p.tok.Span
	p.advance()

	name := p.expectIdent()
	if name == "" {
		p.syncDecl()
		return nil
	}
	n.Name = ast.NewStr(name)
	n.SymName = ast.NewStr(name)

	if p.at(token.Lt) {
		args, ok := p.parseTemplateArgs()
		if !ok {
			p.syncDecl()
			return nil
		}
		p.specializeName(n, name, args, tparms)
	}

	if p.accept(token.Colon) {
		p.parseBaseClause(n)
	}

	if p.accept(token.LBrace) {
		p.parseMembers(n, name)
		p.expect(token.RBrace, diag.SynUnexpectedToken)
	}
	p.expectSemi()
	return n
}

// parseBaseClause parses the base specifier list after ':'. Bases land in
// the list matching their access; a base without an access specifier is
// public, in a class as well as in a struct.
func (p *Parser) parseBaseClause(n *ast.Node) {
	for {
		access := "public"
		for {
			switch {
			case p.accept(token.KwPublic):
				access = "public"
				continue
			case p.accept(token.KwProtected):
				access = "protected"
				continue
			case p.accept(token.KwPrivate):
				access = "private"
				continue
			case p.accept(token.KwVirtual):
				continue
			}
			break
		}
		base, ok := p.parseType()
		if !ok {
			p.errorAt(diag.SynExpectType, p.tok.Span,
				"expected base class name")
			return
		}
		cell := ast.NewStr(base)
		switch access {
		case "protected":
			n.ProtectedBaseList = append(n.ProtectedBaseList, cell)
		case "private":
			n.PrivateBaseList = append(n.PrivateBaseList, cell)
		default:
			n.BaseList = append(n.BaseList, cell)
		}
		if !p.accept(token.Comma) {
			return
		}
	}
}

// parseMembers parses the class body up to the closing brace. className is
// the unsuffixed class name, used to recognize constructors.
func (p *Parser) parseMembers(class *ast.Node, className string) {
	for !p.at(token.RBrace) && p.tok.Kind != token.EOF {
		switch {
		case p.at(token.KwPublic), p.at(token.KwProtected), p.at(token.KwPrivate):
			a := ast.New(ast.KindAccess)
			a.Span = p.tok.Span
			a.Name = ast.NewStr(p.tok.Text)
			p.advance()
			p.expect(token.Colon, diag.SynUnexpectedToken)
			class.AppendChild(a)

		case p.at(token.KwTemplate):
			if m := p.parseTemplate(); m != nil {
				class.AppendChild(m)
			}

		case p.at(token.KwUsing):
			if m := p.parseUsing(); m != nil {
				class.AppendChild(m)
			}

		case p.at(token.KwFriend):
			p.advance()
			if m := p.parseCDecl(); m != nil {
				m.Storage = "friend"
				class.AppendChild(m)
			}

		case p.at(token.Tilde):
			if m := p.parseDestructor(className); m != nil {
				class.AppendChild(m)
			}

		case p.at(token.KwOperator):
			if m := p.parseConversionOperator(); m != nil {
				class.AppendChild(m)
			}

		case p.at(token.Ident) && p.tok.Text == className && p.peekIs(token.LParen):
			if m := p.parseConstructor(className); m != nil {
				class.AppendChild(m)
			}

		default:
			if m := p.parseCDecl(); m != nil {
				class.AppendChild(m)
			} else {
				p.syncDecl()
			}
		}
	}
}

func (p *Parser) peekIs(kind token.Kind) bool {
	return p.lx.Peek().Kind == kind
}

// parseConstructor parses "Name(parms) [throw(...)] body-or-;".
func (p *Parser) parseConstructor(className string) *ast.Node {
	n := ast.New(ast.KindConstructor)
	n.Span = p.tok.Span
	n.Name = ast.NewStr(className)
	n.SymName = ast.NewStr(className)
	p.advance()
	p.expect(token.LParen, diag.SynUnexpectedToken)
	n.Parms = p.parseParmList()
	p.parseThrowSpec(n)
	p.parseBodyOrSemi(n)
	return n
}

// parseDestructor parses "~Name() body-or-;".
func (p *Parser) parseDestructor(className string) *ast.Node {
	n := ast.New(ast.KindDestructor)
	n.Span = p.tok.Span
	p.advance()
	name := p.expectIdent()
	if name == "" {
		p.syncDecl()
		return nil
	}
	if name != className {
		p.errorAt(diag.SynUnexpectedToken, n.Span, fmt.Sprintf(
			"destructor name '~%s' does not match class '%s'", name, className))
	}
	n.Name = ast.NewStr("~" + name)
	n.SymName = ast.NewStr("~" + name)
	p.expect(token.LParen, diag.SynUnexpectedToken)
	p.expect(token.RParen, diag.SynUnexpectedToken)
	p.parseBodyOrSemi(n)
	return n
}

// parseConversionOperator parses "operator type() const body-or-;". The
// operator's name records the target type.
func (p *Parser) parseConversionOperator() *ast.Node {
	n := ast.New(ast.KindCDecl)
	n.Span = p.tok.Span
	n.ConversionOperator = true
	p.advance()
	ty, ok := p.parseType()
	if !ok {
		p.errorAt(diag.SynExpectType, p.tok.Span,
			"expected type after 'operator'")
		p.syncDecl()
		return nil
	}
	n.Type = ast.NewStr(ty)
	n.Name = ast.NewStr("operator " + ty)
	n.SymName = ast.NewStr("operator " + ty)
	p.expect(token.LParen, diag.SynUnexpectedToken)
	n.Parms = p.parseParmList()
	n.Decl = ast.NewStr(declOf(n.Parms))
	p.accept(token.KwConst)
	p.parseThrowSpec(n)
	p.parseBodyOrSemi(n)
	return n
}

// parseUsing parses "using a::b;" or "using alias = type;".
func (p *Parser) parseUsing() *ast.Node {
	n := ast.New(ast.KindUsing)
	n.Span = p.tok.Span
	p.advance()
	name, ok := p.parseQualifiedType()
	if !ok {
		p.syncDecl()
		return nil
	}
	n.Name = ast.NewStr(name)
	if p.accept(token.Assign) {
		ty, ok := p.parseType()
		if !ok {
			p.errorAt(diag.SynExpectType, p.tok.Span,
				"expected type after '='")
			p.syncDecl()
			return nil
		}
		n.UName = ast.NewStr(ty)
	} else {
		n.UName = ast.NewStr(name)
	}
	p.expectSemi()
	return n
}

// parseThrowSpec consumes an optional "throw(type, ...)" clause into
// n.Throws.
func (p *Parser) parseThrowSpec(n *ast.Node) {
	if !p.accept(token.KwThrow) {
		return
	}
	p.expect(token.LParen, diag.SynUnexpectedToken)
	n.Throws = p.parseParmList()
}

// parseBodyOrSemi finishes a function-shaped declaration: an inline body
// captured verbatim, a pure-virtual "= 0;", or a plain ';'.
func (p *Parser) parseBodyOrSemi(n *ast.Node) {
	switch {
	case p.at(token.LBrace):
		p.pushbackBody(n)
	case p.accept(token.Assign):
		if p.at(token.IntLit) && p.tok.Text == "0" {
			p.advance()
		} else {
			p.errorAt(diag.SynUnexpectedToken, p.tok.Span,
				"expected '0' after '='")
		}
		p.expectSemi()
	default:
		p.expectSemi()
	}
}

// pushbackBody hands the pending '{' back to the lexer's brace scanner and
// records the verbatim body text.
func (p *Parser) pushbackBody(n *ast.Node) {
	p.lx.Unread(p.tok)
	body, _, ok := p.lx.CodeBody()
	if ok {
		n.Code = ast.NewStr(body)
	}
	p.advance()
}

// declOf renders the function declarator element for a parameter list.
func declOf(parms *ast.Parm) string {
	if parms == nil {
		return "f()."
	}
	var types []string
	for q := parms; q != nil; q = q.Next {
		types = append(types, q.Type.String())
	}
	return "f(" + strings.Join(types, ",") + ")."
}
