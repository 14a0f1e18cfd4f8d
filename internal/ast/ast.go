// Package ast defines the syntax tree shared by every front-end phase.
//
// Each node is generic over four type parameters that together describe a
// phase:
//
//	X  extra data attached to every node constructor
//	N  how names are represented
//	P  how paths are represented
//	T  how type annotations are represented
//
// A phase is a set of concrete choices for those parameters (see the syntax,
// resolved and typed subpackages). Moving a tree to a later phase means
// building a new tree of the same shape with an Upgrader; node definitions
// are never duplicated per phase.
package ast

import "github.com/opal-lang/opalc/internal/span"

// Phase names a choice of representations. Node kinds carry it in their
// marker methods, so a kind built for one phase cannot be placed in a tree of
// another.
type Phase[X, N, P, T any] struct{}

// Mutability qualifies bindings, parameters and references.
type Mutability int

const (
	Immutable Mutability = iota
	Mutable
)

func (m Mutability) String() string {
	if m == Mutable {
		return "mut"
	}
	return ""
}

// LiteralKind distinguishes literal values.
type LiteralKind int

const (
	IntegerLiteral LiteralKind = iota
	StringLiteral
	CharacterLiteral
	BooleanLiteral
	UnitLiteral
)

// Literal is a literal value as written in source. Only the field matching
// Kind is meaningful.
type Literal struct {
	Kind LiteralKind
	Int  uint32
	Text string
	Char rune
	Bool bool
}

// Geode is the root of a parsed compilation unit.
type Geode[X, N, P, T any] struct {
	Name  N
	Items []Item[X, N, P, T]
	Extra X
}

// Item is a positioned top-level or module-level declaration.
type Item[X, N, P, T any] struct {
	span.Spanned[ItemKind[X, N, P, T]]
}

// ItemKind is implemented by every item constructor.
type ItemKind[X, N, P, T any] interface {
	itemKind(Phase[X, N, P, T])
}

// ModuleItem is `mod name { items }`, or `mod name;` when Inline is false.
type ModuleItem[X, N, P, T any] struct {
	Name   N
	Inline bool
	Items  []Item[X, N, P, T]
	Extra  X
}

// UseItem is `use tree;`.
type UseItem[X, N, P, T any] struct {
	Tree  UseTree[X, N, P, T]
	Extra X
}

// UseTreeKind distinguishes the shapes of a use tree.
type UseTreeKind int

const (
	// UseSimple imports Path, optionally renamed to Alias.
	UseSimple UseTreeKind = iota
	// UseGlob imports everything below Path.
	UseGlob
	// UseNested imports each of Children relative to Path.
	UseNested
)

// UseTree is one node of an import tree such as `a::{b as c, d::*}`.
type UseTree[X, N, P, T any] struct {
	Kind     UseTreeKind
	Path     P
	Alias    *N
	Children []UseTree[X, N, P, T]
	Span     span.Span
	Extra    X
}

// FunctionItem is `fn name(params) -> ret { body }`.
type FunctionItem[X, N, P, T any] struct {
	Name       N
	Parameters []Parameter[X, N, P, T]
	ReturnType *T
	Body       Block[X, N, P, T]
	Extra      X
}

// Parameter is `[mut] name: Type`.
type Parameter[X, N, P, T any] struct {
	Mutability Mutability
	Name       N
	Type       T
	Span       span.Span
	Extra      X
}

// TypeAliasItem is `type Name = Type;`.
type TypeAliasItem[X, N, P, T any] struct {
	Name  N
	Type  T
	Extra X
}

// StructItem is `struct Name { fields }`.
type StructItem[X, N, P, T any] struct {
	Name   N
	Fields []Field[X, N, P, T]
	Extra  X
}

// Field is `name: Type` inside a struct or a struct-like variant.
type Field[X, N, P, T any] struct {
	Name  N
	Type  T
	Span  span.Span
	Extra X
}

// EnumItem is `enum Name { variants }`.
type EnumItem[X, N, P, T any] struct {
	Name     N
	Variants []Variant[X, N, P, T]
	Extra    X
}

// VariantKind distinguishes enum variant shapes.
type VariantKind int

const (
	UnitVariant VariantKind = iota
	TupleVariant
	StructVariant
)

// Variant is an enum variant. Tuple variants use Types, struct variants use
// Fields.
type Variant[X, N, P, T any] struct {
	Kind   VariantKind
	Name   N
	Types  []T
	Fields []Field[X, N, P, T]
	Span   span.Span
	Extra  X
}

// ConstItem is `const name: Type = value;`.
type ConstItem[X, N, P, T any] struct {
	Name  N
	Type  T
	Value Expression[X, N, P, T]
	Extra X
}

// StaticItem is `static name: Type = value;`.
type StaticItem[X, N, P, T any] struct {
	Name  N
	Type  T
	Value Expression[X, N, P, T]
	Extra X
}

func (ModuleItem[X, N, P, T]) itemKind(Phase[X, N, P, T])    {}
func (UseItem[X, N, P, T]) itemKind(Phase[X, N, P, T])       {}
func (FunctionItem[X, N, P, T]) itemKind(Phase[X, N, P, T])  {}
func (TypeAliasItem[X, N, P, T]) itemKind(Phase[X, N, P, T]) {}
func (StructItem[X, N, P, T]) itemKind(Phase[X, N, P, T])    {}
func (EnumItem[X, N, P, T]) itemKind(Phase[X, N, P, T])      {}
func (ConstItem[X, N, P, T]) itemKind(Phase[X, N, P, T])     {}
func (StaticItem[X, N, P, T]) itemKind(Phase[X, N, P, T])    {}
