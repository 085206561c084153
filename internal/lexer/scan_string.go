package lexer

import (
	"lifeline/internal/diag"
	"lifeline/internal/token"
)

// scanString reads "..." with backslash escapes. Strings may span lines.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case '"':
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		case '\\':
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanQuote disambiguates a lifetime ('a, 'static) from a char literal ('a', '\n').
func (lx *Lexer) scanQuote() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\''

	if lx.cursor.Peek() == '\\' {
		lx.cursor.Bump()
		lx.cursor.Bump()
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\'' && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump() // \u{...}, \x41
		}
		return lx.finishChar(start)
	}

	afterQuote := lx.cursor.Mark()
	if lx.scanIdentBody() {
		if lx.cursor.Peek() == '\'' {
			// 'a' is a char literal only when exactly one rune sits between the quotes
			if runes := []rune(string(lx.file.Content[afterQuote:lx.cursor.Off])); len(runes) == 1 {
				return lx.finishChar(start)
			}
		}
		sp := lx.cursor.SpanFrom(start)
		name := normalizeIdent(lx.file.Content[afterQuote:sp.End])
		return token.Token{Kind: token.Lifetime, Span: sp, Text: "'" + name}
	}

	if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadLifetime, sp, "expected lifetime name or character after '")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	lx.bumpRune()
	return lx.finishChar(start)
}

func (lx *Lexer) finishChar(start Mark) token.Token {
	if !lx.cursor.Eat('\'') {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.CharLit, Span: sp, Text: lx.text(sp)}
}
