package symbols

// DefaultPreludeTraits are the trait names visible everywhere unless the
// project configuration overrides the list.
var DefaultPreludeTraits = []string{
	"Send", "Sync", "Copy", "Clone", "Sized", "Fn", "FnMut", "FnOnce",
}

var primitiveTypes = []string{
	"bool", "char", "str",
	"u8", "u16", "u32", "u64", "usize",
	"i8", "i16", "i32", "i64", "isize",
	"f32", "f64",
}

// newPrelude allocates the prelude scope with primitives and traits.
func newPrelude(t *Table, traits []string) ScopeID {
	scope := t.NewScope(ScopePrelude, NoScopeID, NoScopeID, zeroSpan)
	for _, name := range primitiveTypes {
		id := t.Strings.Intern(name)
		t.Declare(scope, id, t.NewDef(Def{Kind: DefPrimitive, Name: id, Flags: DefFlagBuiltin}))
	}
	for _, name := range traits {
		id := t.Strings.Intern(name)
		t.Declare(scope, id, t.NewDef(Def{Kind: DefTrait, Name: id, Flags: DefFlagBuiltin}))
	}
	return scope
}
