package lexer

import (
	"lifeline/internal/diag"
	"lifeline/internal/token"
)

// Integers only: 0, 1_000, 0b1010, 0o17, 0xff, with an optional suffix (10u8).
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	digit := isDec
	prefixed := false
	if lx.cursor.Peek() == '0' {
		prefixed = true
		switch lx.cursor.PeekAt(1) {
		case 'b', 'B':
			digit = func(b byte) bool { return b == '0' || b == '1' }
		case 'o', 'O':
			digit = func(b byte) bool { return b >= '0' && b <= '7' }
		case 'x', 'X':
			digit = isHex
		default:
			prefixed = false
		}
	}
	if prefixed {
		lx.cursor.Bump()
		lx.cursor.Bump()
	}

	n := 0
	for digit(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		if lx.cursor.Peek() != '_' {
			n++
		}
		lx.cursor.Bump()
	}
	if prefixed && n == 0 {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "expected digits after base prefix")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}

	// суффикс типа: u8, i64, usize
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.IntLit, Span: sp, Text: lx.text(sp)}
}
