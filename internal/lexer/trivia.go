package lexer

import (
	"cppbind/internal/diag"
)

// skipTrivia consumes whitespace, line comments and block comments.
func (lx *Lexer) skipTrivia() {
	for !lx.cur.EOF() {
		switch lx.cur.Peek() {
		case ' ', '\t', '\n', '\r':
			lx.cur.Bump()
		case '/':
			switch lx.cur.PeekAt(1) {
			case '/':
				lx.skipLineComment()
			case '*':
				start := lx.cur.Off
				lx.cur.Bump()
				lx.cur.Bump()
				lx.skipBlockComment(start)
			default:
				return
			}
		default:
			return
		}
	}
}

// skipLineComment consumes up to, not including, the newline.
func (lx *Lexer) skipLineComment() {
	for !lx.cur.EOF() && lx.cur.Peek() != '\n' {
		lx.cur.Bump()
	}
}

// skipBlockComment consumes up to and including the closing marker. start
// is the offset of the opening marker, used for the diagnostic when the
// comment never closes.
func (lx *Lexer) skipBlockComment(start uint32) {
	for !lx.cur.EOF() {
		if lx.cur.Bump() == '*' && lx.cur.Peek() == '/' {
			lx.cur.Bump()
			return
		}
	}
	diag.ReportError(lx.rep, diag.LexUnterminatedBlockComment, lx.span(start),
		"unterminated block comment").Emit()
}
