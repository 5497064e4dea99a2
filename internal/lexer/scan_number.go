package lexer

import (
	"cppbind/internal/diag"
	"cppbind/internal/token"
)

func isHex(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// scanNumber reads a decimal or hexadecimal integer, or a decimal float
// with optional exponent. Unsigned/long suffixes are consumed; any other
// trailing identifier text is a malformed literal.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cur.Off
	kind := token.IntLit

	if lx.cur.Peek() == '0' && (lx.cur.PeekAt(1) == 'x' || lx.cur.PeekAt(1) == 'X') {
		lx.cur.Bump()
		lx.cur.Bump()
		if !isHex(lx.cur.Peek()) {
			return lx.badNumber(start)
		}
		for isHex(lx.cur.Peek()) {
			lx.cur.Bump()
		}
	} else {
		for isDec(lx.cur.Peek()) {
			lx.cur.Bump()
		}
		if lx.cur.Peek() == '.' && isDec(lx.cur.PeekAt(1)) {
			kind = token.FloatLit
			lx.cur.Bump()
			for isDec(lx.cur.Peek()) {
				lx.cur.Bump()
			}
		}
		if p := lx.cur.Peek(); p == 'e' || p == 'E' {
			next := lx.cur.PeekAt(1)
			if isDec(next) || ((next == '+' || next == '-') && isDec(lx.cur.PeekAt(2))) {
				kind = token.FloatLit
				lx.cur.Bump()
				lx.cur.Bump()
				for isDec(lx.cur.Peek()) {
					lx.cur.Bump()
				}
			}
		}
	}

	for {
		p := lx.cur.Peek()
		if p == 'u' || p == 'U' || p == 'l' || p == 'L' ||
			(kind == token.FloatLit && (p == 'f' || p == 'F')) {
			lx.cur.Bump()
			continue
		}
		break
	}
	if isIdentContinue(lx.cur.Peek()) {
		for isIdentContinue(lx.cur.Peek()) {
			lx.cur.Bump()
		}
		return lx.badNumber(start)
	}
	return token.Token{Kind: kind, Span: lx.span(start), Text: lx.cur.Slice(start)}
}

func (lx *Lexer) badNumber(start uint32) token.Token {
	sp := lx.span(start)
	text := lx.cur.Slice(start)
	diag.ReportError(lx.rep, diag.LexBadNumber, sp,
		"malformed numeric literal '"+text+"'").Emit()
	return token.Token{Kind: token.Invalid, Span: sp, Text: text}
}
