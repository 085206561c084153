package ast

import "lifeline/internal/source"

type Item interface {
	Node
	itemNode()
	Header() *ItemBase
}

// ItemBase carries what every item has. Name is NoStringID for impls and
// extern blocks.
type ItemBase struct {
	NodeBase
	Pub  bool
	Name source.StringID
}

func (b *ItemBase) Header() *ItemBase { return b }

type FnItem struct {
	ItemBase
	Generics *Generics
	Decl     *FnDecl
	Body     *Block
}

type StructKind uint8

const (
	StructNamed StructKind = iota
	StructTuple
	StructUnit
)

type StructItem struct {
	ItemBase
	Generics *Generics
	Kind     StructKind
	Fields   []*Field
}

// Field is a named or positional field. Name is NoStringID for tuple fields.
type Field struct {
	NodeBase
	Pub  bool
	Name source.StringID
	Ty   Type
}

type EnumItem struct {
	ItemBase
	Generics *Generics
	Variants []*Variant
}

type Variant struct {
	NodeBase
	Name   source.StringID
	Kind   StructKind
	Fields []*Field
}

type TypeAliasItem struct {
	ItemBase
	Generics *Generics
	Ty       Type
}

type TraitItem struct {
	ItemBase
	Generics    *Generics
	Supertraits []Bound
	Members     []TraitMember
}

type TraitMember interface {
	Node
	traitMember()
}

// Method is a fn inside a trait or impl. Body is nil for a required trait method.
type Method struct {
	NodeBase
	Pub      bool
	Name     source.StringID
	Generics *Generics
	Self     *SelfParam
	Decl     *FnDecl
	Body     *Block
}

// AssocType declares an associated type in a trait: type A: Bounds;
type AssocType struct {
	NodeBase
	Name   source.StringID
	Bounds []Bound
}

func (*Method) traitMember()    {}
func (*AssocType) traitMember() {}

type ImplItem struct {
	ItemBase
	Generics *Generics
	Trait    *TraitBound // nil for inherent impls
	SelfTy   Type
	Members  []ImplMember
}

type ImplMember interface {
	Node
	implMember()
}

// AssocTypeDef defines an associated type in an impl: type A = Ty;
type AssocTypeDef struct {
	NodeBase
	Name source.StringID
	Ty   Type
}

func (*Method) implMember()       {}
func (*AssocTypeDef) implMember() {}

type ModItem struct {
	ItemBase
	Items []Item
}

// MacroItem is an item-position macro invocation; its body is not parsed.
type MacroItem struct {
	ItemBase
}

type ForeignModItem struct {
	ItemBase
	ABI   string
	Items []ForeignItem
}

type ForeignItem interface {
	Node
	foreignItem()
}

type ForeignFn struct {
	NodeBase
	Name     source.StringID
	Generics *Generics
	Decl     *FnDecl
}

type ForeignStatic struct {
	NodeBase
	Name source.StringID
	Mut  bool
	Ty   Type
}

func (*ForeignFn) foreignItem()     {}
func (*ForeignStatic) foreignItem() {}

type StaticItem struct {
	ItemBase
	Mut   bool
	Ty    Type
	Value Expr
}

type ConstItem struct {
	ItemBase
	Ty    Type
	Value Expr
}

func (*FnItem) itemNode()         {}
func (*StructItem) itemNode()     {}
func (*EnumItem) itemNode()       {}
func (*TypeAliasItem) itemNode()  {}
func (*TraitItem) itemNode()      {}
func (*ImplItem) itemNode()       {}
func (*ModItem) itemNode()        {}
func (*MacroItem) itemNode()      {}
func (*ForeignModItem) itemNode() {}
func (*StaticItem) itemNode()     {}
func (*ConstItem) itemNode()      {}

// ItemGenerics returns the generics clause of it, or nil when the item kind has none.
func ItemGenerics(it Item) *Generics {
	switch it := it.(type) {
	case *FnItem:
		return it.Generics
	case *StructItem:
		return it.Generics
	case *EnumItem:
		return it.Generics
	case *TypeAliasItem:
		return it.Generics
	case *TraitItem:
		return it.Generics
	case *ImplItem:
		return it.Generics
	}
	return nil
}
