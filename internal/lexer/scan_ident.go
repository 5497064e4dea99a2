package lexer

import (
	"cppbind/internal/token"
)

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cur.Off
	for isIdentContinue(lx.cur.Peek()) {
		lx.cur.Bump()
	}
	text := lx.cur.Slice(start)
	kind := token.Ident
	if k, ok := token.LookupKeyword(text); ok {
		kind = k
	}
	return token.Token{Kind: kind, Span: lx.span(start), Text: text}
}
