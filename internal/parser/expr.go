package parser

import (
	"lifeline/internal/ast"
	"lifeline/internal/diag"
	"lifeline/internal/source"
	"lifeline/internal/token"
)

// binaryPrec returns the binding power of a binary operator; 0 means "not binary".
func binaryPrec(k token.Kind) int {
	switch k {
	case token.Assign:
		return 1
	case token.OrOr:
		return 2
	case token.AndAnd:
		return 3
	case token.EqEq, token.BangEq, token.Lt, token.Gt, token.LtEq, token.GtEq:
		return 4
	case token.Plus, token.Minus:
		return 5
	case token.Star, token.Slash, token.Percent:
		return 6
	}
	return 0
}

func (p *Parser) exprBase(start source.Span) ast.NodeBase {
	return p.b.Base(ast.KindExpr, p.spanFrom(start))
}

func (p *Parser) parseExpr() ast.Expr {
	return p.parseBinary(1)
}

// parseBinary is precedence climbing; '=' is right-associative.
func (p *Parser) parseBinary(minPrec int) ast.Expr {
	start := p.peek().Span
	left := p.parseCast()
	if left == nil {
		return nil
	}
	for {
		op := p.peek().Kind
		prec := binaryPrec(op)
		if prec == 0 || prec < minPrec {
			return left
		}
		p.advance()
		next := prec + 1
		if op == token.Assign {
			next = prec
		}
		right := p.parseBinary(next)
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{NodeBase: p.exprBase(start), Op: op, L: left, R: right}
	}
}

// parseCast: unary (as Ty)*
func (p *Parser) parseCast() ast.Expr {
	start := p.peek().Span
	x := p.parseUnary()
	for x != nil && p.eat(token.KwAs) {
		ty := p.parseType()
		if ty == nil {
			return nil
		}
		x = &ast.CastExpr{NodeBase: p.exprBase(start), X: x, Ty: ty}
	}
	return x
}

func (p *Parser) parseUnary() ast.Expr {
	start := p.peek().Span
	switch p.peek().Kind {
	case token.Minus, token.Bang, token.Star:
		op := p.advance().Kind
		x := p.parseUnary()
		if x == nil {
			return nil
		}
		return &ast.UnaryExpr{NodeBase: p.exprBase(start), Op: op, X: x}
	case token.Amp:
		p.advance()
		mut := p.eat(token.KwMut)
		x := p.parseUnary()
		if x == nil {
			return nil
		}
		return &ast.RefExpr{NodeBase: p.exprBase(start), Mut: mut, X: x}
	case token.AndAnd:
		p.advance()
		mut := p.eat(token.KwMut)
		x := p.parseUnary()
		if x == nil {
			return nil
		}
		inner := &ast.RefExpr{NodeBase: p.exprBase(start), Mut: mut, X: x}
		return &ast.RefExpr{NodeBase: p.exprBase(start), X: inner}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expr {
	start := p.peek().Span
	x := p.parsePrimary()
	for x != nil {
		switch p.peek().Kind {
		case token.LParen:
			args, ok := p.parseCallArgs()
			if !ok {
				return nil
			}
			x = &ast.CallExpr{NodeBase: p.exprBase(start), Fn: x, Args: args}
		case token.Dot:
			p.advance()
			nameTok := p.peek()
			if nameTok.Kind != token.Ident && nameTok.Kind != token.IntLit {
				p.err(diag.SynExpectIdentifier, "expected field or method name after '.', found "+describe(nameTok))
				return nil
			}
			p.advance()
			var turbofish *ast.GenericArgs
			if p.at(token.ColonColon) && p.peekN(1).Kind == token.Lt {
				p.advance()
				turbofish = p.parseGenericArgs()
			}
			if p.at(token.LParen) {
				args, ok := p.parseCallArgs()
				if !ok {
					return nil
				}
				x = &ast.MethodCallExpr{NodeBase: p.exprBase(start), Recv: x, Name: p.intern(nameTok), Turbofish: turbofish, Args: args}
				continue
			}
			if turbofish != nil {
				p.err(diag.SynUnexpectedToken, "expected '(' after method turbofish")
			}
			x = &ast.FieldExpr{NodeBase: p.exprBase(start), X: x, Name: p.intern(nameTok)}
		case token.Question:
			p.advance()
			x = &ast.UnaryExpr{NodeBase: p.exprBase(start), Op: token.Question, X: x}
		default:
			return x
		}
	}
	return nil
}

func (p *Parser) parseCallArgs() ([]ast.Expr, bool) {
	open := p.advance() // (
	var args []ast.Expr
	for !p.at(token.RParen) && !p.at(token.EOF) {
		arg := p.parseExpr()
		if arg == nil {
			return nil, false
		}
		args = append(args, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	return args, p.expectClose(token.RParen, open.Span, diag.SynUnclosedParen)
}

func (p *Parser) parsePrimary() ast.Expr {
	start := p.peek().Span
	switch p.peek().Kind {
	case token.IntLit, token.StringLit, token.CharLit, token.KwTrue, token.KwFalse:
		tok := p.advance()
		return &ast.LitExpr{NodeBase: p.exprBase(start), Kind: tok.Kind, Text: tok.Text}
	case token.Ident, token.KwSelfValue, token.KwSelfType, token.KwSuper, token.KwCrate, token.ColonColon:
		path := p.parseExprPath()
		if path == nil {
			return nil
		}
		return &ast.PathExpr{NodeBase: p.exprBase(start), Path: path}
	case token.LParen:
		open := p.advance()
		var elems []ast.Expr
		trailingComma := false
		for !p.at(token.RParen) && !p.at(token.EOF) {
			x := p.parseExpr()
			if x == nil {
				return nil
			}
			elems = append(elems, x)
			if trailingComma = p.eat(token.Comma); !trailingComma {
				break
			}
		}
		if !p.expectClose(token.RParen, open.Span, diag.SynUnclosedParen) {
			return nil
		}
		if len(elems) == 1 && !trailingComma {
			return elems[0]
		}
		return &ast.TupleExpr{NodeBase: p.exprBase(start), Elems: elems}
	case token.LBrace:
		if blk := p.parseBlock(); blk != nil {
			return blk
		}
		return nil
	case token.Pipe, token.OrOr:
		return p.parseClosureExpr()
	case token.KwReturn:
		p.advance()
		ret := &ast.ReturnExpr{}
		if !p.atAny(token.Semicolon, token.RBrace, token.RParen, token.Comma, token.EOF) {
			if ret.X = p.parseExpr(); ret.X == nil {
				return nil
			}
		}
		ret.NodeBase = p.exprBase(start)
		return ret
	}
	p.err(diag.SynExpectExpression, "expected expression, found "+describe(p.peek()))
	return nil
}

// parseExprPath: seg (:: seg)* where generic args need a turbofish: f::<'a, T>.
func (p *Parser) parseExprPath() *ast.Path {
	start := p.peek().Span
	p.eat(token.ColonColon)
	path := &ast.Path{}
	for {
		tok := p.peek()
		if !p.isPathSegmentKind(tok.Kind) {
			p.err(diag.SynExpectIdentifier, "expected path segment, found "+describe(tok))
			return nil
		}
		p.advance()
		seg := &ast.PathSegment{Span: tok.Span, Name: p.intern(tok)}
		path.Segments = append(path.Segments, seg)
		if !p.at(token.ColonColon) {
			break
		}
		switch next := p.peekN(1).Kind; {
		case next == token.Lt:
			p.advance()
			seg.Args = p.parseGenericArgs()
			seg.Span = p.spanFrom(tok.Span)
			if p.at(token.ColonColon) && p.isPathSegmentKind(p.peekN(1).Kind) {
				p.advance()
				continue
			}
		case p.isPathSegmentKind(next):
			p.advance()
			continue
		}
		break
	}
	path.NodeBase = p.b.Base(ast.KindPath, p.spanFrom(start))
	return path
}

// parseClosureExpr: |a, b: T| [-> R] body
func (p *Parser) parseClosureExpr() ast.Expr {
	start := p.peek().Span
	open := p.advance()
	c := &ast.ClosureExpr{}
	if open.Kind == token.Pipe {
		for !p.at(token.Pipe) && !p.at(token.EOF) {
			pstart := p.peek().Span
			pat := p.parsePat()
			if pat == nil {
				return nil
			}
			var ty ast.Type
			if p.eat(token.Colon) {
				if ty = p.parseType(); ty == nil {
					return nil
				}
			}
			c.Params = append(c.Params, &ast.Param{NodeBase: p.b.Base(ast.KindParam, p.spanFrom(pstart)), Pat: pat, Ty: ty})
			if !p.eat(token.Comma) {
				break
			}
		}
		if !p.expectClose(token.Pipe, open.Span, diag.SynUnclosedPipe) {
			return nil
		}
	}
	if p.eat(token.Arrow) {
		if c.Output = p.parseType(); c.Output == nil {
			return nil
		}
		if !p.at(token.LBrace) {
			p.err(diag.SynUnexpectedToken, "expected block body after closure return type")
			return nil
		}
	}
	if c.Body = p.parseExpr(); c.Body == nil {
		return nil
	}
	c.NodeBase = p.exprBase(start)
	return c
}
