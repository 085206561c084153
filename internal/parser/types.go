package parser

import (
	"lifeline/internal/ast"
	"lifeline/internal/diag"
	"lifeline/internal/source"
	"lifeline/internal/token"
)

func (p *Parser) typeBase(start source.Span) ast.NodeBase {
	return p.b.Base(ast.KindType, p.spanFrom(start))
}

// parseTypeSum parses a type optionally followed by '+ Bounds', used where
// an object type may carry extra bounds: Box<Trait + 'a>, &'a (Trait + Send).
func (p *Parser) parseTypeSum() ast.Type {
	start := p.peek().Span
	ty := p.parseType()
	if ty == nil || !p.at(token.Plus) {
		return ty
	}
	p.advance()
	bounds := p.parseBounds()
	return &ast.ObjectSumType{NodeBase: p.typeBase(start), Base: ty, Bounds: bounds}
}

func (p *Parser) parseType() ast.Type {
	start := p.peek().Span
	switch p.peek().Kind {
	case token.Amp:
		p.advance()
		return p.parseRefTail(start)
	case token.AndAnd:
		// && is two references; the inner one starts one byte later.
		p.advance()
		innerStart := source.Span{File: start.File, Start: start.Start + 1, End: start.End}
		inner := p.parseRefTail(innerStart)
		if inner == nil {
			return nil
		}
		return &ast.RefType{NodeBase: p.typeBase(start), Elem: inner}
	case token.Star:
		p.advance()
		mut := false
		switch {
		case p.eat(token.KwMut):
			mut = true
		case p.eat(token.KwConst):
		default:
			p.err(diag.SynExpectType, "expected 'const' or 'mut' after '*' in pointer type")
		}
		elem := p.parseType()
		if elem == nil {
			return nil
		}
		return &ast.PtrType{NodeBase: p.typeBase(start), Mut: mut, Elem: elem}
	case token.LBracket:
		open := p.advance()
		elem := p.parseType()
		if elem == nil {
			return nil
		}
		if p.eat(token.Semicolon) {
			n := p.parseExpr()
			p.expectClose(token.RBracket, open.Span, diag.SynUnclosedBracket)
			return &ast.ArrayType{NodeBase: p.typeBase(start), Elem: elem, Len: n}
		}
		p.expectClose(token.RBracket, open.Span, diag.SynUnclosedBracket)
		return &ast.SliceType{NodeBase: p.typeBase(start), Elem: elem}
	case token.LParen:
		return p.parseParenType()
	case token.Underscore:
		p.advance()
		return &ast.InferType{NodeBase: p.typeBase(start)}
	case token.KwFn:
		return p.parseBareFnType(start, nil)
	case token.Pipe, token.OrOr:
		return p.parseClosureType(start, nil)
	case token.KwFor:
		lifetimes := p.parseForLifetimes()
		switch {
		case p.at(token.KwFn):
			return p.parseBareFnType(start, lifetimes)
		case p.atAny(token.Pipe, token.OrOr):
			return p.parseClosureType(start, lifetimes)
		}
		p.err(diag.SynExpectType, "expected 'fn' or closure type after 'for<...>', found "+describe(p.peek()))
		return nil
	case token.Ident, token.KwSelfType, token.KwSelfValue, token.KwSuper, token.KwCrate, token.ColonColon:
		path := p.parseTypePath()
		if path == nil {
			return nil
		}
		return &ast.PathType{NodeBase: p.typeBase(start), Path: path}
	}
	p.err(diag.SynExpectType, "expected type, found "+describe(p.peek()))
	return nil
}

// parseRefTail parses ['a] [mut] Ty after '&'.
func (p *Parser) parseRefTail(start source.Span) ast.Type {
	var lt *ast.Lifetime
	if p.at(token.Lifetime) {
		lt = p.parseLifetime()
	}
	mut := p.eat(token.KwMut)
	elem := p.parseType()
	if elem == nil {
		return nil
	}
	return &ast.RefType{NodeBase: p.typeBase(start), Lifetime: lt, Mut: mut, Elem: elem}
}

// parseParenType: () | (T) | (T + 'a) | (A, B, ...)
func (p *Parser) parseParenType() ast.Type {
	open := p.advance()
	var elems []ast.Type
	trailingComma := false
	for !p.at(token.RParen) && !p.at(token.EOF) {
		ty := p.parseTypeSum()
		if ty == nil {
			break
		}
		elems = append(elems, ty)
		trailingComma = p.eat(token.Comma)
		if !trailingComma {
			break
		}
	}
	p.expectClose(token.RParen, open.Span, diag.SynUnclosedParen)
	if len(elems) == 1 && !trailingComma {
		return elems[0]
	}
	return &ast.TupleType{NodeBase: p.typeBase(open.Span), Elems: elems}
}

// parseTypePath: [::] seg[<args>] (:: seg[<args>])*; '::<' is accepted too.
func (p *Parser) parseTypePath() *ast.Path {
	start := p.peek().Span
	p.eat(token.ColonColon)
	path := &ast.Path{}
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.Ident, token.KwSelfType, token.KwSelfValue, token.KwSuper, token.KwCrate:
			p.advance()
		default:
			p.err(diag.SynExpectIdentifier, "expected path segment, found "+describe(tok))
			return nil
		}
		seg := &ast.PathSegment{Span: tok.Span, Name: p.intern(tok)}
		if p.at(token.ColonColon) && p.peekN(1).Kind == token.Lt {
			p.advance()
		}
		if p.at(token.Lt) {
			seg.Args = p.parseGenericArgs()
			seg.Span = p.spanFrom(tok.Span)
		}
		path.Segments = append(path.Segments, seg)
		if !p.at(token.ColonColon) || !p.isPathSegmentKind(p.peekN(1).Kind) {
			break
		}
		p.advance()
	}
	path.NodeBase = p.b.Base(ast.KindPath, p.spanFrom(start))
	return path
}

func (p *Parser) isPathSegmentKind(k token.Kind) bool {
	switch k {
	case token.Ident, token.KwSelfType, token.KwSelfValue, token.KwSuper, token.KwCrate:
		return true
	}
	return false
}

// parseBareFnType: fn(A, name: B) -> R
func (p *Parser) parseBareFnType(start source.Span, lifetimes []*ast.LifetimeDef) ast.Type {
	p.advance() // fn
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'fn' in function type")
	if !ok {
		return nil
	}
	decl := &ast.FnDecl{}
	for !p.at(token.RParen) && !p.at(token.EOF) {
		param := p.parseTypeParam()
		if param == nil {
			break
		}
		decl.Inputs = append(decl.Inputs, param)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expectClose(token.RParen, open.Span, diag.SynUnclosedParen)
	if p.eat(token.Arrow) {
		decl.Output = p.parseType()
	}
	decl.Span = p.spanFrom(open.Span)
	return &ast.BareFnType{NodeBase: p.typeBase(start), Lifetimes: lifetimes, Decl: decl}
}

// parseTypeParam parses a parameter of a fn or closure type: Ty or name: Ty.
func (p *Parser) parseTypeParam() *ast.Param {
	start := p.peek().Span
	var pat *ast.Pat
	if (p.at(token.Ident) || p.at(token.Underscore)) && p.peekN(1).Kind == token.Colon {
		pat = p.parsePat()
		p.advance() // :
	}
	ty := p.parseType()
	if ty == nil {
		return nil
	}
	return &ast.Param{NodeBase: p.b.Base(ast.KindParam, p.spanFrom(start)), Pat: pat, Ty: ty}
}

// parseClosureType: |A, B|: Bounds -> R  (|| for no parameters)
func (p *Parser) parseClosureType(start source.Span, lifetimes []*ast.LifetimeDef) ast.Type {
	open := p.advance()
	decl := &ast.FnDecl{}
	if open.Kind == token.Pipe {
		for !p.at(token.Pipe) && !p.at(token.EOF) {
			param := p.parseTypeParam()
			if param == nil {
				break
			}
			decl.Inputs = append(decl.Inputs, param)
			if !p.eat(token.Comma) {
				break
			}
		}
		p.expectClose(token.Pipe, open.Span, diag.SynUnclosedPipe)
	}
	var bounds []ast.Bound
	if p.eat(token.Colon) {
		bounds = p.parseBounds()
	}
	if p.eat(token.Arrow) {
		decl.Output = p.parseType()
	}
	decl.Span = p.spanFrom(open.Span)
	return &ast.ClosureType{NodeBase: p.typeBase(start), Lifetimes: lifetimes, Bounds: bounds, Decl: decl}
}
