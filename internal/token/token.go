package token

import "lifeline/internal/source"

// Token is a significant token; comments and whitespace are dropped by the lexer.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwFn && t.Kind <= KwFalse
}

// IsItemStart reports whether the token can begin an item.
// Parser error recovery resynchronises on these.
func (t Token) IsItemStart() bool {
	switch t.Kind {
	case KwFn, KwStruct, KwEnum, KwType, KwTrait, KwImpl, KwMod,
		KwStatic, KwConst, KwExtern, KwPub:
		return true
	}
	return false
}
