package parser

import (
	"slices"

	"lifeline/internal/ast"
	"lifeline/internal/diag"
	"lifeline/internal/lexer"
	"lifeline/internal/source"
	"lifeline/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File   *ast.File
	Errors uint
}

// Parser — состояние парсера на один файл
type Parser struct {
	toks     []token.Token
	pos      int
	b        *ast.Builder
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile drains lx and builds the tree for one file. Every node of the
// result carries a fresh NodeID allocated from b.
func ParseFile(lx *lexer.Lexer, b *ast.Builder, opts Options) Result {
	p := Parser{
		toks: lx.All(),
		b:    b,
		opts: opts,
	}
	start := p.peek().Span
	items := p.parseItems(token.EOF)
	file := b.Finish(start.Cover(p.peek().Span), items)
	return Result{File: file, Errors: p.opts.CurrentErrors}
}

func (p *Parser) peek() token.Token {
	return p.peekN(0)
}

// peekN looks n tokens past the current one. The stream always ends with EOF.
func (p *Parser) peekN(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// parseItems reads items until the closing token (EOF or '}').
func (p *Parser) parseItems(until token.Kind) []ast.Item {
	var items []ast.Item
	for !p.at(until) && !p.at(token.EOF) {
		before := p.pos
		item, ok := p.parseItem()
		if ok {
			items = append(items, item)
			continue
		}
		p.resyncTop(until, before)
	}
	return items
}

// resyncTop — восстановление после ошибки на уровне items:
// прокручиваем до стартового токена следующего item на той же глубине скобок.
func (p *Parser) resyncTop(until token.Kind, before int) {
	if p.pos == before {
		p.advance()
	}
	depth := 0
	for !p.at(token.EOF) {
		tok := p.peek()
		switch tok.Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth == 0 {
				if until == token.RBrace {
					return
				}
				p.advance()
				continue
			}
			depth--
			if depth == 0 {
				p.advance()
				return
			}
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
		default:
			if depth == 0 && (tok.IsItemStart() || p.atMacroStart()) {
				return
			}
		}
		p.advance()
	}
}

// ParseSource registers src as a virtual file in fs and parses it. Lexical
// and syntax errors both go to opts.Reporter.
func ParseSource(fs *source.FileSet, name string, src []byte, strings *source.Interner, opts Options) (Result, *source.File) {
	file := fs.Get(fs.AddVirtual(name, src))
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	return ParseFile(lx, ast.NewBuilder(strings, 0), opts), file
}
