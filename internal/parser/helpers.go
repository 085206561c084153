package parser

import (
	"lifeline/internal/diag"
	"lifeline/internal/source"
	"lifeline/internal/token"
)

// advance — съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// eat consumes the next token when it has kind k.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// getDiagnosticSpan — лучший span для диагностики.
// At EOF the position right after the last consumed token reads better.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect — ожидаем конкретный токен. Если нет — репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.getDiagnosticSpan()
	p.report(code, diag.SevError, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

// expectClose consumes a closing delimiter, pointing the note at its opener.
func (p *Parser) expectClose(k token.Kind, open source.Span, code diag.Code) bool {
	if p.eat(k) {
		return true
	}
	sp := p.getDiagnosticSpan()
	if p.opts.Reporter != nil && p.count() {
		diag.ReportError(p.opts.Reporter, code, sp, "expected '"+k.String()+"', found "+describe(p.peek())).
			WithNote(open, "unclosed delimiter opened here").
			Emit()
	}
	return false
}

// expectGt closes a generic list. A '>=' token is split so that the
// trailing '=' stays in the stream: Foo<T>= x.
func (p *Parser) expectGt(open source.Span) bool {
	if p.at(token.GtEq) {
		tok := p.peek()
		p.lastSpan = source.Span{File: tok.Span.File, Start: tok.Span.Start, End: tok.Span.Start + 1}
		p.toks[p.pos] = token.Token{
			Kind: token.Assign,
			Span: source.Span{File: tok.Span.File, Start: tok.Span.Start + 1, End: tok.Span.End},
			Text: "=",
		}
		return true
	}
	return p.expectClose(token.Gt, open, diag.SynUnclosedAngleBracket)
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter == nil {
		return false
	}
	if sev == diag.SevError && !p.count() {
		return false // достигли максимального количества ошибок
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
	return true
}

// count registers one error and reports whether it may still be emitted.
func (p *Parser) count() bool {
	p.opts.CurrentErrors++
	return p.opts.MaxErrors == 0 || p.opts.CurrentErrors <= p.opts.MaxErrors
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident, token.Lifetime, token.IntLit, token.StringLit, token.CharLit:
		return tok.Kind.String() + " '" + tok.Text + "'"
	}
	return "'" + tok.Kind.String() + "'"
}

// spanFrom covers start..last consumed token.
func (p *Parser) spanFrom(start source.Span) source.Span {
	if p.lastSpan.End < start.Start {
		return start
	}
	return start.Cover(p.lastSpan)
}

func (p *Parser) intern(tok token.Token) source.StringID {
	return p.b.Intern(tok.Text)
}

// parseIdent consumes an identifier and interns it. On failure it returns
// NoStringID after reporting.
func (p *Parser) parseIdent(what string) (token.Token, source.StringID, bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected "+what+", found "+describe(p.peek()))
	if !ok {
		return tok, source.NoStringID, false
	}
	return tok, p.intern(tok), true
}
