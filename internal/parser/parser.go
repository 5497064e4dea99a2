// Package parser builds declaration trees from interface files. It is a
// recursive descent parser over the C++ declaration subset; template
// semantics live elsewhere, the parser only records what was written.
package parser

import (
	"fmt"

	"cppbind/internal/ast"
	"cppbind/internal/diag"
	"cppbind/internal/lexer"
	"cppbind/internal/source"
	"cppbind/internal/token"
)

// Directive is one %template request: instantiate template Name with the
// encoded arguments under the target-language name SymName.
type Directive struct {
	SymName string
	Name    string
	Parms   *ast.Parm
	Span    source.Span
}

// File is the parse result: the declaration tree plus the instantiation
// requests in source order.
type File struct {
	Root       *ast.Node
	Directives []Directive
}

type Parser struct {
	lx  *lexer.Lexer
	rep diag.Reporter
	tok token.Token
}

func New(lx *lexer.Lexer, rep diag.Reporter) *Parser {
	if rep == nil {
		rep = diag.NopReporter{}
	}
	p := &Parser{lx: lx, rep: rep}
	p.advance()
	return p
}

// Parse consumes the whole file.
func (p *Parser) Parse() *File {
	f := &File{Root: ast.New(ast.KindNone)}
	for p.tok.Kind != token.EOF {
		p.parseTop(f, f.Root)
	}
	return f
}

func (p *Parser) advance() {
	p.tok = p.lx.Next()
}

func (p *Parser) at(kind token.Kind) bool { return p.tok.Kind == kind }

// accept consumes the current token when it has the given kind.
func (p *Parser) accept(kind token.Kind) bool {
	if p.tok.Kind != kind {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) expect(kind token.Kind, code diag.Code) bool {
	if p.accept(kind) {
		return true
	}
	diag.ReportError(p.rep, code, p.tok.Span,
		fmt.Sprintf("expected '%s', found '%s'", kind, p.describe())).Emit()
	return false
}

func (p *Parser) describe() string {
	if p.tok.Text != "" {
		return p.tok.Text
	}
	return p.tok.Kind.String()
}

func (p *Parser) errorAt(code diag.Code, sp source.Span, msg string) {
	diag.ReportError(p.rep, code, sp, msg).Emit()
}

// expectIdent consumes an identifier and returns its text, "" on failure.
func (p *Parser) expectIdent() string {
	if p.at(token.Ident) {
		name := p.tok.Text
		p.advance()
		return name
	}
	p.errorAt(diag.SynExpectIdentifier, p.tok.Span,
		fmt.Sprintf("expected identifier, found '%s'", p.describe()))
	return ""
}

// expectSemi consumes the terminating semicolon of a declaration.
func (p *Parser) expectSemi() {
	if !p.accept(token.Semicolon) {
		p.errorAt(diag.SynExpectSemicolon, p.tok.Span,
			fmt.Sprintf("expected ';', found '%s'", p.describe()))
		p.syncDecl()
	}
}

// syncDecl skips forward to the next plausible declaration start after a
// parse error: just past a semicolon or closing brace at nesting depth
// zero.
func (p *Parser) syncDecl() {
	depth := 0
	for p.tok.Kind != token.EOF {
		switch p.tok.Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth == 0 {
				p.advance()
				return
			}
			depth--
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}
