package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident
	// Lifetime is a quote-prefixed name such as 'a or 'static.
	Lifetime
	IntLit
	StringLit
	CharLit

	KwFn
	KwStruct
	KwEnum
	KwType
	KwTrait
	KwImpl
	KwFor
	KwMod
	KwStatic
	KwConst
	KwExtern
	KwPub
	KwLet
	KwMut
	KwSelfValue // self
	KwSelfType  // Self
	KwWhere
	KwAs
	KwCrate
	KwSuper
	KwReturn
	KwTrue
	KwFalse

	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Lt
	Gt
	LtEq
	GtEq
	Comma
	Semicolon
	Colon
	ColonColon
	Arrow    // ->
	FatArrow // =>
	Dot
	Assign
	EqEq
	BangEq
	Plus
	Minus
	Star
	Slash
	Percent
	Amp
	AndAnd
	Pipe
	OrOr
	Bang
	Question
	Hash
	Underscore
)

var kindNames = [...]string{
	Invalid:     "invalid",
	EOF:         "end of file",
	Ident:       "identifier",
	Lifetime:    "lifetime",
	IntLit:      "integer literal",
	StringLit:   "string literal",
	CharLit:     "character literal",
	KwFn:        "fn",
	KwStruct:    "struct",
	KwEnum:      "enum",
	KwType:      "type",
	KwTrait:     "trait",
	KwImpl:      "impl",
	KwFor:       "for",
	KwMod:       "mod",
	KwStatic:    "static",
	KwConst:     "const",
	KwExtern:    "extern",
	KwPub:       "pub",
	KwLet:       "let",
	KwMut:       "mut",
	KwSelfValue: "self",
	KwSelfType:  "Self",
	KwWhere:     "where",
	KwAs:        "as",
	KwCrate:     "crate",
	KwSuper:     "super",
	KwReturn:    "return",
	KwTrue:      "true",
	KwFalse:     "false",
	LParen:      "(",
	RParen:      ")",
	LBrace:      "{",
	RBrace:      "}",
	LBracket:    "[",
	RBracket:    "]",
	Lt:          "<",
	Gt:          ">",
	LtEq:        "<=",
	GtEq:        ">=",
	Comma:       ",",
	Semicolon:   ";",
	Colon:       ":",
	ColonColon:  "::",
	Arrow:       "->",
	FatArrow:    "=>",
	Dot:         ".",
	Assign:      "=",
	EqEq:        "==",
	BangEq:      "!=",
	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	Slash:       "/",
	Percent:     "%",
	Amp:         "&",
	AndAnd:      "&&",
	Pipe:        "|",
	OrOr:        "||",
	Bang:        "!",
	Question:    "?",
	Hash:        "#",
	Underscore:  "_",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}
