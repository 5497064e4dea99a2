package parser

import (
	"strings"

	"cppbind/internal/diag"
	"cppbind/internal/token"
	"cppbind/internal/typestr"
)

// parseDirective parses "%template(Sym) Name<args>;". The symbol name may
// be empty, which requests an unnamed instantiation.
func (p *Parser) parseDirective() (Directive, bool) {
	d := Directive{Span: p.tok.Span}
	p.advance()
	if !p.expect(token.LParen, diag.SynUnexpectedToken) {
		p.syncDecl()
		return d, false
	}
	if p.at(token.Ident) {
		d.SymName = p.tok.Text
		p.advance()
	}
	if !p.expect(token.RParen, diag.SynUnexpectedToken) {
		p.syncDecl()
		return d, false
	}

	var b strings.Builder
	if p.accept(token.ColonColon) {
		b.WriteString("::")
	}
	for {
		name := p.expectIdent()
		if name == "" {
			p.syncDecl()
			return d, false
		}
		b.WriteString(name)
		if p.accept(token.ColonColon) {
			b.WriteString("::")
			continue
		}
		break
	}
	d.Name = b.String()

	if p.at(token.Lt) {
		args, ok := p.parseTemplateArgs()
		if !ok {
			p.syncDecl()
			return d, false
		}
		d.Parms = typestr.ParmsFromTypes(args)
	}
	p.expectSemi()
	return d, true
}
