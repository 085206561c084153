package token

var keywords = map[string]Kind{
	"fn":     KwFn,
	"struct": KwStruct,
	"enum":   KwEnum,
	"type":   KwType,
	"trait":  KwTrait,
	"impl":   KwImpl,
	"for":    KwFor,
	"mod":    KwMod,
	"static": KwStatic,
	"const":  KwConst,
	"extern": KwExtern,
	"pub":    KwPub,
	"let":    KwLet,
	"mut":    KwMut,
	"self":   KwSelfValue,
	"Self":   KwSelfType,
	"where":  KwWhere,
	"as":     KwAs,
	"crate":  KwCrate,
	"super":  KwSuper,
	"return": KwReturn,
	"true":   KwTrue,
	"false":  KwFalse,
}

// LookupKeyword reports whether ident is a reserved word. Case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
