package parser

import (
	"lifeline/internal/ast"
	"lifeline/internal/diag"
	"lifeline/internal/token"
)

// parseBlock: { stmt* [tail] }
func (p *Parser) parseBlock() *ast.Block {
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{', found "+describe(p.peek()))
	if !ok {
		return nil
	}
	blk := &ast.Block{}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.pos
		switch {
		case p.eat(token.Semicolon):
		case p.at(token.KwLet):
			if s := p.parseLet(); s != nil {
				blk.Stmts = append(blk.Stmts, s)
			} else {
				p.resyncStmt()
			}
		case p.peek().IsItemStart() || p.atMacroStart():
			if item, ok := p.parseItem(); ok {
				blk.Stmts = append(blk.Stmts, &ast.ItemStmt{Item: item})
			} else {
				p.resyncStmt()
			}
		default:
			start := p.peek().Span
			x := p.parseExpr()
			if x == nil {
				p.resyncStmt()
				break
			}
			switch {
			case p.eat(token.Semicolon):
				blk.Stmts = append(blk.Stmts, &ast.ExprStmt{NodeBase: p.b.Base(ast.KindStmt, p.spanFrom(start)), X: x, Semi: true})
			case p.at(token.RBrace):
				blk.Tail = x
			default:
				if _, isBlock := x.(*ast.Block); !isBlock {
					p.err(diag.SynExpectSemicolon, "expected ';' or '}' after expression, found "+describe(p.peek()))
				}
				blk.Stmts = append(blk.Stmts, &ast.ExprStmt{NodeBase: p.b.Base(ast.KindStmt, p.spanFrom(start)), X: x})
			}
		}
		if p.pos == before {
			p.advance()
		}
	}
	if !p.expectClose(token.RBrace, open.Span, diag.SynUnclosedBrace) {
		return nil
	}
	blk.NodeBase = p.b.Base(ast.KindBlock, p.spanFrom(open.Span))
	return blk
}

// resyncStmt skips to the end of the current statement: past ';', or up to
// the '}' closing the enclosing block.
func (p *Parser) resyncStmt() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.LBrace, token.LParen, token.LBracket:
			depth++
		case token.RBrace, token.RParen, token.RBracket:
			if depth == 0 {
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

// parseLet: let pat [: Ty] [= expr];
func (p *Parser) parseLet() *ast.LetStmt {
	start := p.advance().Span // let
	s := &ast.LetStmt{Pat: p.parsePat()}
	if s.Pat == nil {
		return nil
	}
	if p.eat(token.Colon) {
		if s.Ty = p.parseType(); s.Ty == nil {
			return nil
		}
	}
	if p.eat(token.Assign) {
		if s.Init = p.parseExpr(); s.Init == nil {
			return nil
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after let statement, found "+describe(p.peek())); !ok {
		return nil
	}
	s.NodeBase = p.b.Base(ast.KindStmt, p.spanFrom(start))
	return s
}

// parsePat: [mut] name | _ | (pat, ...)
func (p *Parser) parsePat() *ast.Pat {
	start := p.peek().Span
	switch {
	case p.eat(token.Underscore):
		return &ast.Pat{NodeBase: p.b.Base(ast.KindPat, start), Kind: ast.PatWild}
	case p.at(token.LParen):
		open := p.advance()
		pat := &ast.Pat{Kind: ast.PatTuple}
		for !p.at(token.RParen) && !p.at(token.EOF) {
			elem := p.parsePat()
			if elem == nil {
				return nil
			}
			pat.Elems = append(pat.Elems, elem)
			if !p.eat(token.Comma) {
				break
			}
		}
		if !p.expectClose(token.RParen, open.Span, diag.SynUnclosedParen) {
			return nil
		}
		pat.NodeBase = p.b.Base(ast.KindPat, p.spanFrom(start))
		return pat
	}
	mut := p.eat(token.KwMut)
	_, name, ok := p.parseIdent("pattern")
	if !ok {
		return nil
	}
	return &ast.Pat{NodeBase: p.b.Base(ast.KindPat, p.spanFrom(start)), Kind: ast.PatIdent, Mut: mut, Name: name}
}
