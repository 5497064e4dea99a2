package parser

import (
	"fmt"

	"cppbind/internal/ast"
	"cppbind/internal/diag"
	"cppbind/internal/token"
)

// parseTop dispatches one top-level declaration and appends it to parent.
// Instantiation directives land in f instead of the tree.
func (p *Parser) parseTop(f *File, parent *ast.Node) {
	switch p.tok.Kind {
	case token.KwNamespace:
		if n := p.parseNamespace(f); n != nil {
			parent.AppendChild(n)
		}
	case token.KwTypedef:
		if n := p.parseTypedef(); n != nil {
			parent.AppendChild(n)
		}
	case token.KwTemplate:
		if n := p.parseTemplate(); n != nil {
			parent.AppendChild(n)
		}
	case token.KwClass, token.KwStruct:
		if n := p.parseClass(nil); n != nil {
			parent.AppendChild(n)
		}
	case token.KwUsing:
		if n := p.parseUsing(); n != nil {
			parent.AppendChild(n)
		}
	case token.DirTemplate:
		if d, ok := p.parseDirective(); ok {
			f.Directives = append(f.Directives, d)
		}
	case token.DirExtend:
		if n := p.parseExtend(); n != nil {
			parent.AppendChild(n)
		}
	case token.Semicolon:
		p.advance()
	case token.Invalid:
		p.advance()
	default:
		if p.atDeclStart() {
			if n := p.parseCDecl(); n != nil {
				parent.AppendChild(n)
			}
			return
		}
		p.errorAt(diag.SynUnexpectedTopLevel, p.tok.Span, fmt.Sprintf(
			"unexpected '%s' at top level", p.describe()))
		p.syncDecl()
	}
}

func (p *Parser) atDeclStart() bool {
	return p.atTypeStart() || p.at(token.KwStatic) || p.at(token.KwVirtual) ||
		p.at(token.KwInline) || p.at(token.KwExtern)
}

// parseNamespace parses "namespace N { decls }".
func (p *Parser) parseNamespace(f *File) *ast.Node {
	n := ast.New(ast.KindNamespace)
	n.Span = p.tok.Span
	p.advance()
	name := p.expectIdent()
	if name == "" {
		p.syncDecl()
		return nil
	}
	n.Name = ast.NewStr(name)
	n.SymName = ast.NewStr(name)
	if !p.expect(token.LBrace, diag.SynUnexpectedToken) {
		p.syncDecl()
		return nil
	}
	for !p.at(token.RBrace) && p.tok.Kind != token.EOF {
		p.parseTop(f, n)
	}
	p.expect(token.RBrace, diag.SynUnexpectedToken)
	p.accept(token.Semicolon)
	return n
}

// parseTypedef parses "typedef type name [arrays];".
func (p *Parser) parseTypedef() *ast.Node {
	n := ast.New(ast.KindTypedef)
	n.Span = p.tok.Span
	p.advance()
	ty, ok := p.parseType()
	if !ok {
		p.errorAt(diag.SynExpectType, p.tok.Span,
			"expected type after 'typedef'")
		p.syncDecl()
		return nil
	}
	n.Type = ast.NewStr(ty)
	name := p.expectIdent()
	if name == "" {
		p.syncDecl()
		return nil
	}
	n.Name = ast.NewStr(name)
	n.SymName = ast.NewStr(name)
	n.Decl = ast.NewStr(p.parseArraySuffix())
	p.expectSemi()
	return n
}

// parseExtend parses "%extend Name { members }": member declarations
// grafted onto a class from outside its body.
func (p *Parser) parseExtend() *ast.Node {
	n := ast.New(ast.KindExtend)
	n.Span = p.tok.Span
	p.advance()
	name, ok := p.parseQualifiedType()
	if !ok {
		p.syncDecl()
		return nil
	}
	n.Name = ast.NewStr(name)
	if !p.expect(token.LBrace, diag.SynUnexpectedToken) {
		p.syncDecl()
		return nil
	}
	p.parseMembers(n, name)
	p.expect(token.RBrace, diag.SynUnexpectedToken)
	p.accept(token.Semicolon)
	return n
}

// parseCDecl parses a function or variable declaration. The same shape
// serves top-level declarations and class members; constructors and
// destructors have their own parsers.
func (p *Parser) parseCDecl() *ast.Node {
	n := ast.New(ast.KindCDecl)
	n.Span = p.tok.Span
	for p.at(token.KwStatic) || p.at(token.KwVirtual) || p.at(token.KwInline) ||
		p.at(token.KwExtern) {
		if n.Storage == "" {
			n.Storage = p.tok.Text
		}
		p.advance()
	}
	ty, ok := p.parseType()
	if !ok {
		p.errorAt(diag.SynExpectType, p.tok.Span, fmt.Sprintf(
			"expected type, found '%s'", p.describe()))
		p.syncDecl()
		return nil
	}
	n.Type = ast.NewStr(ty)
	name := p.expectIdent()
	if name == "" {
		p.syncDecl()
		return nil
	}
	n.Name = ast.NewStr(name)
	n.SymName = ast.NewStr(name)

	if p.accept(token.LParen) {
		n.Parms = p.parseParmList()
		n.Decl = ast.NewStr(declOf(n.Parms))
		p.accept(token.KwConst)
		p.parseThrowSpec(n)
		p.parseBodyOrSemi(n)
		return n
	}

	n.Decl = ast.NewStr(p.parseArraySuffix())
	if p.accept(token.Assign) {
		n.Value = ast.NewStr(p.captureValue(stopField))
	}
	p.expectSemi()
	return n
}
