package parser

import (
	"lifeline/internal/ast"
	"lifeline/internal/diag"
	"lifeline/internal/source"
	"lifeline/internal/token"
)

func (p *Parser) atMacroStart() bool {
	return p.at(token.Ident) && p.peekN(1).Kind == token.Bang
}

// parseItem выбирает по первому токену нужный распознаватель item.
func (p *Parser) parseItem() (ast.Item, bool) {
	start := p.peek().Span
	if p.atMacroStart() {
		return p.parseMacroItem()
	}
	pub := p.eat(token.KwPub)
	hdr := func(name source.StringID) ast.ItemBase {
		return ast.ItemBase{Pub: pub, Name: name}
	}

	var item ast.Item
	switch p.peek().Kind {
	case token.KwFn:
		item = p.parseFnItem(hdr)
	case token.KwStruct:
		item = p.parseStructItem(hdr)
	case token.KwEnum:
		item = p.parseEnumItem(hdr)
	case token.KwType:
		item = p.parseTypeAliasItem(hdr)
	case token.KwTrait:
		item = p.parseTraitItem(hdr)
	case token.KwImpl:
		item = p.parseImplItem(hdr)
	case token.KwMod:
		item = p.parseModItem(hdr)
	case token.KwStatic:
		item = p.parseStaticItem(hdr)
	case token.KwConst:
		item = p.parseConstItem(hdr)
	case token.KwExtern:
		if p.peekN(1).Kind == token.KwFn || (p.peekN(1).Kind == token.StringLit && p.peekN(2).Kind == token.KwFn) {
			p.advance()
			p.eat(token.StringLit)
			item = p.parseFnItem(hdr)
		} else {
			item = p.parseForeignMod(hdr)
		}
	default:
		p.report(diag.SynUnexpectedTopLevel, diag.SevError, p.getDiagnosticSpan(),
			"expected item, found "+describe(p.peek()))
		return nil, false
	}
	if item == nil {
		return nil, false
	}
	h := item.Header()
	h.Span = p.spanFrom(start)
	p.b.Nodes.Get(h.ID).Span = h.Span
	return item, true
}

// itemBase finalises an item header once the item is complete.
func (p *Parser) itemBase(hdr ast.ItemBase, start source.Span) ast.ItemBase {
	base := p.b.Base(ast.KindItem, p.spanFrom(start))
	hdr.NodeBase = base
	return hdr
}

// parseMacroItem: name! { ... } | name!(...); | name! ident { ... }
func (p *Parser) parseMacroItem() (ast.Item, bool) {
	start := p.peek().Span
	nameTok := p.advance()
	p.advance() // '!'
	p.eat(token.Ident)
	var closer token.Kind
	switch p.peek().Kind {
	case token.LBrace:
		closer = token.RBrace
	case token.LParen:
		closer = token.RParen
	case token.LBracket:
		closer = token.RBracket
	default:
		p.err(diag.SynUnexpectedToken, "expected '(', '[' or '{' after macro name, found "+describe(p.peek()))
		return nil, false
	}
	if !p.skipDelimited() {
		return nil, false
	}
	if closer != token.RBrace {
		p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after macro invocation")
	}
	return &ast.MacroItem{ItemBase: p.itemBase(ast.ItemBase{Name: p.intern(nameTok)}, start)}, true
}

// skipDelimited consumes a balanced token tree starting at an open delimiter.
func (p *Parser) skipDelimited() bool {
	open := p.advance()
	stack := []token.Token{open}
	for len(stack) > 0 {
		tok := p.peek()
		switch tok.Kind {
		case token.EOF:
			p.expectClose(closerOf(stack[len(stack)-1].Kind), stack[len(stack)-1].Span, unclosedCode(stack[len(stack)-1].Kind))
			return false
		case token.LParen, token.LBrace, token.LBracket:
			stack = append(stack, tok)
		case token.RParen, token.RBrace, token.RBracket:
			top := stack[len(stack)-1]
			if closerOf(top.Kind) != tok.Kind {
				p.expectClose(closerOf(top.Kind), top.Span, unclosedCode(top.Kind))
				return false
			}
			stack = stack[:len(stack)-1]
		}
		p.advance()
	}
	return true
}

func closerOf(k token.Kind) token.Kind {
	switch k {
	case token.LParen:
		return token.RParen
	case token.LBracket:
		return token.RBracket
	}
	return token.RBrace
}

func unclosedCode(k token.Kind) diag.Code {
	switch k {
	case token.LParen:
		return diag.SynUnclosedParen
	case token.LBracket:
		return diag.SynUnclosedBracket
	}
	return diag.SynUnclosedBrace
}

func (p *Parser) parseFnItem(hdr func(source.StringID) ast.ItemBase) ast.Item {
	start := p.advance().Span // fn
	_, name, ok := p.parseIdent("function name")
	if !ok {
		return nil
	}
	generics := p.parseGenericsOpt()
	self, decl := p.parseFnSignature()
	if self != nil {
		p.report(diag.SynBadSelfParam, diag.SevError, self.Span, "self parameter is only allowed in methods")
	}
	generics = p.parseWhereOpt(generics)
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return &ast.FnItem{ItemBase: p.itemBase(hdr(name), start), Generics: generics, Decl: decl, Body: body}
}

func (p *Parser) parseStructItem(hdr func(source.StringID) ast.ItemBase) ast.Item {
	start := p.advance().Span // struct
	_, name, ok := p.parseIdent("struct name")
	if !ok {
		return nil
	}
	generics := p.parseGenericsOpt()
	it := &ast.StructItem{Generics: generics}
	switch {
	case p.at(token.LParen):
		it.Kind = ast.StructTuple
		it.Fields = p.parseTupleFields()
		it.Generics = p.parseWhereOpt(it.Generics)
		p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after tuple struct")
	default:
		it.Generics = p.parseWhereOpt(it.Generics)
		if p.eat(token.Semicolon) {
			it.Kind = ast.StructUnit
			break
		}
		it.Kind = ast.StructNamed
		fields, ok := p.parseNamedFields()
		if !ok {
			return nil
		}
		it.Fields = fields
	}
	it.ItemBase = p.itemBase(hdr(name), start)
	return it
}

// parseNamedFields: { [pub] name: Ty, ... }
func (p *Parser) parseNamedFields() ([]*ast.Field, bool) {
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{', found "+describe(p.peek()))
	if !ok {
		return nil, false
	}
	var fields []*ast.Field
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		start := p.peek().Span
		pub := p.eat(token.KwPub)
		_, name, ok := p.parseIdent("field name")
		if !ok {
			return nil, false
		}
		p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after field name")
		ty := p.parseType()
		fields = append(fields, &ast.Field{NodeBase: p.b.Base(ast.KindField, p.spanFrom(start)), Pub: pub, Name: name, Ty: ty})
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.expectClose(token.RBrace, open.Span, diag.SynUnclosedBrace) {
		return nil, false
	}
	return fields, true
}

// parseTupleFields: ([pub] Ty, ...)
func (p *Parser) parseTupleFields() []*ast.Field {
	open := p.advance()
	var fields []*ast.Field
	for !p.at(token.RParen) && !p.at(token.EOF) {
		start := p.peek().Span
		pub := p.eat(token.KwPub)
		ty := p.parseType()
		if ty == nil {
			break
		}
		fields = append(fields, &ast.Field{NodeBase: p.b.Base(ast.KindField, p.spanFrom(start)), Pub: pub, Ty: ty})
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expectClose(token.RParen, open.Span, diag.SynUnclosedParen)
	return fields
}

func (p *Parser) parseEnumItem(hdr func(source.StringID) ast.ItemBase) ast.Item {
	start := p.advance().Span // enum
	_, name, ok := p.parseIdent("enum name")
	if !ok {
		return nil
	}
	generics := p.parseWhereOpt(p.parseGenericsOpt())
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after enum name")
	if !ok {
		return nil
	}
	it := &ast.EnumItem{Generics: generics}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		vstart := p.peek().Span
		_, vname, ok := p.parseIdent("variant name")
		if !ok {
			return nil
		}
		v := &ast.Variant{Name: vname, Kind: ast.StructUnit}
		switch {
		case p.at(token.LParen):
			v.Kind = ast.StructTuple
			v.Fields = p.parseTupleFields()
		case p.at(token.LBrace):
			v.Kind = ast.StructNamed
			if v.Fields, ok = p.parseNamedFields(); !ok {
				return nil
			}
		}
		v.NodeBase = p.b.Base(ast.KindVariant, p.spanFrom(vstart))
		it.Variants = append(it.Variants, v)
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.expectClose(token.RBrace, open.Span, diag.SynUnclosedBrace) {
		return nil
	}
	it.ItemBase = p.itemBase(hdr(name), start)
	return it
}

func (p *Parser) parseTypeAliasItem(hdr func(source.StringID) ast.ItemBase) ast.Item {
	start := p.advance().Span // type
	_, name, ok := p.parseIdent("type name")
	if !ok {
		return nil
	}
	generics := p.parseWhereOpt(p.parseGenericsOpt())
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in type alias"); !ok {
		return nil
	}
	ty := p.parseTypeSum()
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after type alias")
	return &ast.TypeAliasItem{ItemBase: p.itemBase(hdr(name), start), Generics: generics, Ty: ty}
}

func (p *Parser) parseTraitItem(hdr func(source.StringID) ast.ItemBase) ast.Item {
	start := p.advance().Span // trait
	_, name, ok := p.parseIdent("trait name")
	if !ok {
		return nil
	}
	it := &ast.TraitItem{Generics: p.parseGenericsOpt()}
	if p.eat(token.Colon) {
		it.Supertraits = p.parseBounds()
	}
	it.Generics = p.parseWhereOpt(it.Generics)
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after trait header")
	if !ok {
		return nil
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.pos
		switch {
		case p.at(token.KwType):
			if m := p.parseAssocType(); m != nil {
				it.Members = append(it.Members, m)
			}
		case p.at(token.KwFn):
			if m := p.parseMethod(false, true); m != nil {
				it.Members = append(it.Members, m)
			}
		default:
			p.err(diag.SynItemNotAllowed, "expected 'fn' or 'type' in trait body, found "+describe(p.peek()))
		}
		if p.pos == before {
			p.resyncTop(token.RBrace, before)
		}
	}
	if !p.expectClose(token.RBrace, open.Span, diag.SynUnclosedBrace) {
		return nil
	}
	it.ItemBase = p.itemBase(hdr(name), start)
	return it
}

func (p *Parser) parseAssocType() *ast.AssocType {
	start := p.advance().Span // type
	_, name, ok := p.parseIdent("associated type name")
	if !ok {
		return nil
	}
	var bounds []ast.Bound
	if p.eat(token.Colon) {
		bounds = p.parseBounds()
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after associated type")
	return &ast.AssocType{NodeBase: p.b.Base(ast.KindTraitMember, p.spanFrom(start)), Name: name, Bounds: bounds}
}

// parseMethod parses fn items inside traits and impls. Trait methods may
// end with ';' instead of a body.
func (p *Parser) parseMethod(pub, inTrait bool) *ast.Method {
	start := p.advance().Span // fn
	_, name, ok := p.parseIdent("method name")
	if !ok {
		return nil
	}
	m := &ast.Method{Pub: pub, Name: name, Generics: p.parseGenericsOpt()}
	m.Self, m.Decl = p.parseFnSignature()
	m.Generics = p.parseWhereOpt(m.Generics)
	if inTrait && p.eat(token.Semicolon) {
		m.NodeBase = p.b.Base(ast.KindTraitMember, p.spanFrom(start))
		return m
	}
	if m.Body = p.parseBlock(); m.Body == nil {
		return nil
	}
	kind := ast.KindImplMember
	if inTrait {
		kind = ast.KindTraitMember
	}
	m.NodeBase = p.b.Base(kind, p.spanFrom(start))
	return m
}

func (p *Parser) parseImplItem(hdr func(source.StringID) ast.ItemBase) ast.Item {
	start := p.advance().Span // impl
	it := &ast.ImplItem{Generics: p.parseGenericsOpt()}
	first := p.parseType()
	if first == nil {
		return nil
	}
	if p.eat(token.KwFor) {
		pt, ok := first.(*ast.PathType)
		if !ok {
			p.report(diag.SynUnexpectedToken, diag.SevError, first.Loc(), "expected a trait path before 'for'")
			return nil
		}
		it.Trait = &ast.TraitBound{NodeBase: p.b.Base(ast.KindTraitBound, pt.Span), Path: pt.Path}
		it.SelfTy = p.parseType()
	} else {
		it.SelfTy = first
	}
	it.Generics = p.parseWhereOpt(it.Generics)
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after impl header")
	if !ok {
		return nil
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.pos
		pub := p.eat(token.KwPub)
		switch {
		case p.at(token.KwFn):
			if m := p.parseMethod(pub, false); m != nil {
				it.Members = append(it.Members, m)
			}
		case p.at(token.KwType):
			if d := p.parseAssocTypeDef(); d != nil {
				it.Members = append(it.Members, d)
			}
		default:
			p.err(diag.SynItemNotAllowed, "expected 'fn' or 'type' in impl body, found "+describe(p.peek()))
		}
		if p.pos == before {
			p.resyncTop(token.RBrace, before)
		}
	}
	if !p.expectClose(token.RBrace, open.Span, diag.SynUnclosedBrace) {
		return nil
	}
	it.ItemBase = p.itemBase(hdr(source.NoStringID), start)
	return it
}

func (p *Parser) parseAssocTypeDef() *ast.AssocTypeDef {
	start := p.advance().Span // type
	_, name, ok := p.parseIdent("associated type name")
	if !ok {
		return nil
	}
	p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in associated type definition")
	ty := p.parseTypeSum()
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after associated type")
	return &ast.AssocTypeDef{NodeBase: p.b.Base(ast.KindImplMember, p.spanFrom(start)), Name: name, Ty: ty}
}

func (p *Parser) parseModItem(hdr func(source.StringID) ast.ItemBase) ast.Item {
	start := p.advance().Span // mod
	_, name, ok := p.parseIdent("module name")
	if !ok {
		return nil
	}
	it := &ast.ModItem{}
	if !p.eat(token.Semicolon) {
		open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' or ';' after module name")
		if !ok {
			return nil
		}
		it.Items = p.parseItems(token.RBrace)
		if !p.expectClose(token.RBrace, open.Span, diag.SynUnclosedBrace) {
			return nil
		}
	}
	it.ItemBase = p.itemBase(hdr(name), start)
	return it
}

func (p *Parser) parseStaticItem(hdr func(source.StringID) ast.ItemBase) ast.Item {
	start := p.advance().Span // static
	mut := p.eat(token.KwMut)
	_, name, ok := p.parseIdent("static name")
	if !ok {
		return nil
	}
	p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after static name")
	ty := p.parseType()
	p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in static item")
	value := p.parseExpr()
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after static item")
	return &ast.StaticItem{ItemBase: p.itemBase(hdr(name), start), Mut: mut, Ty: ty, Value: value}
}

func (p *Parser) parseConstItem(hdr func(source.StringID) ast.ItemBase) ast.Item {
	start := p.advance().Span // const
	_, name, ok := p.parseIdent("constant name")
	if !ok {
		return nil
	}
	p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after constant name")
	ty := p.parseType()
	p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in const item")
	value := p.parseExpr()
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after const item")
	return &ast.ConstItem{ItemBase: p.itemBase(hdr(name), start), Ty: ty, Value: value}
}

// parseForeignMod: extern ["abi"] { [pub] fn ...; [pub] static [mut] x: T; }
func (p *Parser) parseForeignMod(hdr func(source.StringID) ast.ItemBase) ast.Item {
	start := p.advance().Span // extern
	it := &ast.ForeignModItem{}
	if p.at(token.StringLit) {
		text := p.advance().Text
		it.ABI = text[1 : len(text)-1]
	}
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after extern")
	if !ok {
		return nil
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.pos
		istart := p.peek().Span
		p.eat(token.KwPub)
		switch {
		case p.at(token.KwFn):
			p.advance()
			_, name, ok := p.parseIdent("function name")
			if !ok {
				break
			}
			fn := &ast.ForeignFn{Name: name, Generics: p.parseGenericsOpt()}
			self, decl := p.parseFnSignature()
			if self != nil {
				p.report(diag.SynBadSelfParam, diag.SevError, self.Span, "self parameter is only allowed in methods")
			}
			fn.Decl = decl
			fn.Generics = p.parseWhereOpt(fn.Generics)
			p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after foreign function")
			fn.NodeBase = p.b.Base(ast.KindForeignItem, p.spanFrom(istart))
			it.Items = append(it.Items, fn)
		case p.at(token.KwStatic):
			p.advance()
			mut := p.eat(token.KwMut)
			_, name, ok := p.parseIdent("static name")
			if !ok {
				break
			}
			p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after static name")
			ty := p.parseType()
			p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after foreign static")
			it.Items = append(it.Items, &ast.ForeignStatic{
				NodeBase: p.b.Base(ast.KindForeignItem, p.spanFrom(istart)), Name: name, Mut: mut, Ty: ty,
			})
		default:
			p.err(diag.SynItemNotAllowed, "expected 'fn' or 'static' in extern block, found "+describe(p.peek()))
		}
		if p.pos == before {
			p.resyncTop(token.RBrace, before)
		}
	}
	if !p.expectClose(token.RBrace, open.Span, diag.SynUnclosedBrace) {
		return nil
	}
	it.ItemBase = p.itemBase(hdr(source.NoStringID), start)
	return it
}
