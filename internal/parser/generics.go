package parser

import (
	"lifeline/internal/ast"
	"lifeline/internal/diag"
	"lifeline/internal/token"
)

func (p *Parser) parseLifetime() *ast.Lifetime {
	tok, ok := p.expect(token.Lifetime, diag.SynExpectLifetime, "expected lifetime, found "+describe(p.peek()))
	if !ok {
		return nil
	}
	return &ast.Lifetime{NodeBase: p.b.Base(ast.KindLifetime, tok.Span), Name: p.intern(tok)}
}

// parseLifetimeDef: 'a [: 'b + 'c]
func (p *Parser) parseLifetimeDef() *ast.LifetimeDef {
	lt := p.parseLifetime()
	if lt == nil {
		return nil
	}
	def := &ast.LifetimeDef{Lifetime: lt}
	if p.eat(token.Colon) {
		for {
			b := p.parseLifetime()
			if b == nil {
				break
			}
			def.Bounds = append(def.Bounds, b)
			if !p.eat(token.Plus) {
				break
			}
		}
	}
	return def
}

// parseGenericsOpt: <'a, 'b: 'a, T: Bound + 'a = Default>. Returns nil when absent.
func (p *Parser) parseGenericsOpt() *ast.Generics {
	if !p.at(token.Lt) {
		return nil
	}
	open := p.advance()
	g := &ast.Generics{}
	for !p.at(token.Gt) && !p.at(token.GtEq) && !p.at(token.EOF) {
		switch {
		case p.at(token.Lifetime):
			if len(g.TyParams) > 0 {
				p.err(diag.SynGenericsOrder, "lifetime parameters must be declared before type parameters")
			}
			if def := p.parseLifetimeDef(); def != nil {
				g.Lifetimes = append(g.Lifetimes, def)
			}
		case p.at(token.Ident):
			if tp := p.parseTyParam(); tp != nil {
				g.TyParams = append(g.TyParams, tp)
			}
		default:
			p.err(diag.SynExpectIdentifier, "expected lifetime or type parameter, found "+describe(p.peek()))
			p.skipToGenericsEnd()
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expectGt(open.Span)
	g.Span = p.spanFrom(open.Span)
	return g
}

func (p *Parser) skipToGenericsEnd() {
	for !p.atAny(token.Gt, token.GtEq, token.Comma, token.LParen, token.LBrace, token.Semicolon, token.EOF) {
		p.advance()
	}
}

func (p *Parser) parseTyParam() *ast.TyParam {
	nameTok := p.advance()
	tp := &ast.TyParam{Name: p.intern(nameTok)}
	if p.eat(token.Colon) {
		tp.Bounds = p.parseBounds()
	}
	if p.eat(token.Assign) {
		tp.Default = p.parseType()
	}
	tp.NodeBase = p.b.Base(ast.KindTyParam, p.spanFrom(nameTok.Span))
	return tp
}

// parseBounds: Bound (+ Bound)*. An empty list is allowed (T:).
func (p *Parser) parseBounds() []ast.Bound {
	var bounds []ast.Bound
	for p.atBoundStart() {
		if b := p.parseBound(); b != nil {
			bounds = append(bounds, b)
		} else {
			break
		}
		if !p.eat(token.Plus) {
			break
		}
	}
	return bounds
}

func (p *Parser) atBoundStart() bool {
	return p.atAny(token.Lifetime, token.Question, token.KwFor, token.Ident,
		token.KwSelfType, token.KwSelfValue, token.KwSuper, token.KwCrate, token.ColonColon)
}

// parseBound: 'a | [?] [for<'a, ...>] Path
func (p *Parser) parseBound() ast.Bound {
	if p.at(token.Lifetime) {
		return &ast.RegionBound{Lifetime: p.parseLifetime()}
	}
	start := p.peek().Span
	tb := &ast.TraitBound{Maybe: p.eat(token.Question)}
	if p.at(token.KwFor) {
		tb.BoundLifetimes = p.parseForLifetimes()
	}
	tb.Path = p.parseTypePath()
	if tb.Path == nil {
		return nil
	}
	tb.NodeBase = p.b.Base(ast.KindTraitBound, p.spanFrom(start))
	return tb
}

// parseForLifetimes: for<'a, 'b: 'a>
func (p *Parser) parseForLifetimes() []*ast.LifetimeDef {
	p.advance() // for
	open, ok := p.expect(token.Lt, diag.SynUnexpectedToken, "expected '<' after 'for'")
	if !ok {
		return nil
	}
	var defs []*ast.LifetimeDef
	for p.at(token.Lifetime) {
		if def := p.parseLifetimeDef(); def != nil {
			defs = append(defs, def)
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expectGt(open.Span)
	return defs
}

// parseWhereOpt attaches where-clause predicates to g, allocating g when needed.
func (p *Parser) parseWhereOpt(g *ast.Generics) *ast.Generics {
	if !p.at(token.KwWhere) {
		return g
	}
	whereTok := p.advance()
	if g == nil {
		g = &ast.Generics{Span: whereTok.Span}
	}
	for !p.atAny(token.LBrace, token.Semicolon, token.Assign, token.EOF) {
		start := p.peek().Span
		ty := p.parseType()
		if ty == nil {
			break
		}
		switch {
		case p.eat(token.Colon):
			bounds := p.parseBounds()
			g.Where = append(g.Where, &ast.WhereBoundPredicate{
				NodeBase: p.b.Base(ast.KindWherePredicate, p.spanFrom(start)),
				Bounded:  ty,
				Bounds:   bounds,
			})
		case p.at(token.Assign):
			p.advance()
			pt, ok := ty.(*ast.PathType)
			if !ok {
				p.report(diag.SynUnexpectedToken, diag.SevError, ty.Loc(), "expected a path on the left of '=' in where clause")
			}
			rhs := p.parseType()
			if ok {
				g.Where = append(g.Where, &ast.WhereEqPredicate{
					NodeBase: p.b.Base(ast.KindWherePredicate, p.spanFrom(start)),
					Path:     pt.Path,
					Ty:       rhs,
				})
			}
		default:
			p.err(diag.SynUnexpectedToken, "expected ':' or '=' in where clause, found "+describe(p.peek()))
			return g
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	g.Span = g.Span.Cover(p.lastSpan)
	return g
}

// parseGenericArgs: <'a, T, Assoc = U>. The opening '<' is current.
func (p *Parser) parseGenericArgs() *ast.GenericArgs {
	open := p.advance() // <
	args := &ast.GenericArgs{}
	for !p.at(token.Gt) && !p.at(token.GtEq) && !p.at(token.EOF) {
		switch {
		case p.at(token.Lifetime):
			if len(args.Types) > 0 || len(args.Bindings) > 0 {
				p.err(diag.SynGenericsOrder, "lifetime arguments must come before type arguments")
			}
			if lt := p.parseLifetime(); lt != nil {
				args.Lifetimes = append(args.Lifetimes, lt)
			}
		case p.at(token.Ident) && p.peekN(1).Kind == token.Assign:
			nameTok := p.advance()
			p.advance() // =
			ty := p.parseTypeSum()
			args.Bindings = append(args.Bindings, &ast.TypeBinding{
				NodeBase: p.b.Base(ast.KindTypeBinding, p.spanFrom(nameTok.Span)),
				Name:     p.intern(nameTok),
				Ty:       ty,
			})
		default:
			ty := p.parseTypeSum()
			if ty == nil {
				p.skipToGenericsEnd()
				break
			}
			args.Types = append(args.Types, ty)
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expectGt(open.Span)
	args.Span = p.spanFrom(open.Span)
	return args
}
