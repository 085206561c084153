package parser

import (
	"lifeline/internal/ast"
	"lifeline/internal/diag"
	"lifeline/internal/token"
)

// parseFnSignature parses (params) [-> Ty]. A leading self receiver is
// returned separately; callers outside methods report it.
func (p *Parser) parseFnSignature() (*ast.SelfParam, *ast.FnDecl) {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' to start parameter list, found "+describe(p.peek()))
	decl := &ast.FnDecl{}
	if !ok {
		decl.Span = open.Span
		return nil, decl
	}
	var self *ast.SelfParam
	if p.atSelfParam() {
		self = p.parseSelfParam()
		if !p.eat(token.Comma) && !p.at(token.RParen) {
			p.err(diag.SynUnexpectedToken, "expected ',' or ')' after self parameter")
		}
	}
	for !p.at(token.RParen) && !p.at(token.EOF) {
		param := p.parseParam()
		if param == nil {
			p.skipToParamEnd()
		} else {
			decl.Inputs = append(decl.Inputs, param)
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expectClose(token.RParen, open.Span, diag.SynUnclosedParen)
	if p.eat(token.Arrow) {
		decl.Output = p.parseType()
	}
	decl.Span = p.spanFrom(open.Span)
	return self, decl
}

func (p *Parser) skipToParamEnd() {
	for !p.atAny(token.Comma, token.RParen, token.LBrace, token.EOF) {
		p.advance()
	}
}

// atSelfParam: self | mut self | &self | &mut self | &'a self | &'a mut self
func (p *Parser) atSelfParam() bool {
	i := 0
	if p.peekN(i).Kind == token.Amp {
		i++
		if p.peekN(i).Kind == token.Lifetime {
			i++
		}
	}
	if p.peekN(i).Kind == token.KwMut {
		i++
	}
	return p.peekN(i).Kind == token.KwSelfValue && p.peekN(i+1).Kind != token.ColonColon
}

func (p *Parser) parseSelfParam() *ast.SelfParam {
	start := p.peek().Span
	sp := &ast.SelfParam{Kind: ast.SelfValue}
	if p.eat(token.Amp) {
		sp.Kind = ast.SelfRef
		if p.at(token.Lifetime) {
			sp.Lifetime = p.parseLifetime()
		}
	}
	sp.Mut = p.eat(token.KwMut)
	p.advance() // self
	if sp.Kind == ast.SelfValue && p.eat(token.Colon) {
		sp.Kind = ast.SelfExplicit
		sp.Ty = p.parseType()
	}
	sp.NodeBase = p.b.Base(ast.KindSelfParam, p.spanFrom(start))
	return sp
}

// parseParam: pat: Ty
func (p *Parser) parseParam() *ast.Param {
	start := p.peek().Span
	pat := p.parsePat()
	if pat == nil {
		return nil
	}
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after parameter name, found "+describe(p.peek())); !ok {
		return nil
	}
	ty := p.parseType()
	if ty == nil {
		return nil
	}
	return &ast.Param{NodeBase: p.b.Base(ast.KindParam, p.spanFrom(start)), Pat: pat, Ty: ty}
}
