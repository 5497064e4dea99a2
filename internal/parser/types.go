package parser

import (
	"strings"

	"cppbind/internal/ast"
	"cppbind/internal/diag"
	"cppbind/internal/token"
)

// atTypeStart reports whether the current token can begin a type.
func (p *Parser) atTypeStart() bool {
	return p.tok.IsBuiltinType() || p.at(token.KwConst) || p.at(token.KwTypename) ||
		p.at(token.Ident) || p.at(token.ColonColon)
}

// parseType parses a type and returns its encoded form, outermost element
// first: `const T&` becomes "r.q(const).T", `int* const` becomes
// "q(const).p.int".
func (p *Parser) parseType() (string, bool) {
	leadingConst := false
	for p.accept(token.KwConst) {
		leadingConst = true
	}

	var base string
	switch {
	case p.tok.IsBuiltinType():
		base = p.parseBuiltin()
	case p.at(token.Ident) || p.at(token.ColonColon) || p.at(token.KwTypename):
		p.accept(token.KwTypename)
		b, ok := p.parseQualifiedType()
		if !ok {
			return "", false
		}
		base = b
	default:
		if leadingConst {
			p.errorAt(diag.SynExpectType, p.tok.Span,
				"expected type after 'const'")
		}
		return "", false
	}

	enc := base
	if leadingConst || p.accept(token.KwConst) {
		enc = "q(const)." + enc
	}
	for {
		switch {
		case p.accept(token.Star):
			enc = "p." + enc
		case p.accept(token.Amp), p.accept(token.AmpAmp):
			enc = "r." + enc
		case p.accept(token.KwConst):
			enc = "q(const)." + enc
		default:
			return enc, true
		}
	}
}

// parseBuiltin consumes a run of builtin type keywords ("unsigned long",
// "long long") into one base name.
func (p *Parser) parseBuiltin() string {
	parts := []string{p.tok.Text}
	p.advance()
	for p.tok.IsBuiltinType() {
		parts = append(parts, p.tok.Text)
		p.advance()
	}
	return strings.Join(parts, " ")
}

// parseQualifiedType parses a possibly ::-qualified name with template
// argument lists on any segment: "A::Box<int>::iterator" becomes
// "A::Box<(int)>::iterator".
func (p *Parser) parseQualifiedType() (string, bool) {
	var b strings.Builder
	if p.accept(token.ColonColon) {
		b.WriteString("::")
	}
	for {
		name := p.expectIdent()
		if name == "" {
			return "", false
		}
		b.WriteString(name)
		if p.at(token.Lt) {
			args, ok := p.parseTemplateArgs()
			if !ok {
				return "", false
			}
			b.WriteString("<(" + strings.Join(args, ",") + ")>")
		}
		if p.accept(token.ColonColon) {
			b.WriteString("::")
			continue
		}
		return b.String(), true
	}
}

// parseTemplateArgs parses "<...>" into encoded argument strings. Nested
// closes arrive as separate '>' tokens, so ">>" needs no special casing.
func (p *Parser) parseTemplateArgs() ([]string, bool) {
	if !p.expect(token.Lt, diag.SynUnexpectedToken) {
		return nil, false
	}
	var args []string
	if p.accept(token.Gt) {
		return args, true
	}
	for {
		arg, ok := p.parseTemplateArg()
		if !ok {
			p.errorAt(diag.SynExpectType, p.tok.Span,
				"expected template argument")
			return nil, false
		}
		args = append(args, arg)
		if p.accept(token.Comma) {
			continue
		}
		if p.accept(token.Gt) {
			return args, true
		}
		p.errorAt(diag.SynExpectAngleClose, p.tok.Span,
			"expected '>' closing template argument list")
		return nil, false
	}
}

// parseTemplateArg parses one template argument: a type, or a literal
// value for non-type parameters.
func (p *Parser) parseTemplateArg() (string, bool) {
	if p.tok.IsLiteral() {
		t := p.tok.Text
		p.advance()
		return t, true
	}
	if p.accept(token.Minus) {
		if p.at(token.IntLit) || p.at(token.FloatLit) {
			t := "-" + p.tok.Text
			p.advance()
			return t, true
		}
		return "", false
	}
	return p.parseType()
}

// parseArraySuffix consumes "[N][M]..." into the encoded chain
// "a(N).a(M).". Empty brackets yield "a().".
func (p *Parser) parseArraySuffix() string {
	var b strings.Builder
	for p.accept(token.LBracket) {
		dim := ""
		if p.at(token.IntLit) || p.at(token.Ident) {
			dim = p.tok.Text
			p.advance()
		}
		p.expect(token.RBracket, diag.SynUnexpectedToken)
		b.WriteString("a(" + dim + ").")
	}
	return b.String()
}

// parseParmList parses a parenthesized parameter list; the caller has
// consumed '('. Packs are marked with the "v." prefix, array suffixes fold
// into the parameter type.
func (p *Parser) parseParmList() *ast.Parm {
	if p.accept(token.RParen) {
		return nil
	}
	var head, tail *ast.Parm
	for {
		ty, ok := p.parseType()
		if !ok {
			p.errorAt(diag.SynExpectType, p.tok.Span,
				"expected parameter type")
			p.skipToCloseParen()
			return head
		}
		if p.accept(token.Ellipsis) {
			ty = "v." + ty
		}
		name := ""
		if p.at(token.Ident) {
			name = p.tok.Text
			p.advance()
		}
		if arr := p.parseArraySuffix(); arr != "" {
			ty = arr + ty
		}
		parm := ast.NewParm(ty, name)
		if p.accept(token.Assign) {
			parm.Value = ast.NewStr(p.captureValue(stopParm))
		}
		if head == nil {
			head = parm
		} else {
			tail.Next = parm
		}
		tail = parm
		if p.accept(token.Comma) {
			continue
		}
		p.expect(token.RParen, diag.SynUnexpectedToken)
		return head
	}
}

func (p *Parser) skipToCloseParen() {
	depth := 0
	for p.tok.Kind != token.EOF {
		switch p.tok.Kind {
		case token.LParen:
			depth++
		case token.RParen:
			if depth == 0 {
				p.advance()
				return
			}
			depth--
		case token.Semicolon:
			return
		}
		p.advance()
	}
}

// Stop predicates for captureValue.
func stopParm(k token.Kind, depth int) bool {
	return depth == 0 && (k == token.Comma || k == token.RParen)
}

func stopTemplateParm(k token.Kind, depth int) bool {
	return depth == 0 && (k == token.Comma || k == token.Gt)
}

func stopField(k token.Kind, depth int) bool {
	return depth == 0 && k == token.Semicolon
}

// captureValue records the raw token text of an initializer or default
// value up to the stop token, tracking paren, angle and bracket nesting.
func (p *Parser) captureValue(stop func(token.Kind, int) bool) string {
	var b strings.Builder
	var prev token.Token
	depth := 0
	for p.tok.Kind != token.EOF {
		if stop(p.tok.Kind, depth) {
			break
		}
		switch p.tok.Kind {
		case token.LParen, token.Lt, token.LBracket:
			depth++
		case token.RParen, token.Gt, token.RBracket:
			depth--
		}
		if b.Len() > 0 && needSpace(prev, p.tok) {
			b.WriteByte(' ')
		}
		b.WriteString(p.tok.Text)
		prev = p.tok
		p.advance()
	}
	return b.String()
}

func needSpace(prev, cur token.Token) bool {
	wordy := func(t token.Token) bool {
		return t.IsIdent() || t.IsKeyword() || t.IsLiteral()
	}
	return wordy(prev) && wordy(cur)
}
