// Package typed is the phase after type checking: every node carries its
// reified type, and annotations are replaced by the types they denote.
package typed

import (
	"fmt"
	"strings"

	"github.com/opal-lang/opalc/internal/ast"
	"github.com/opal-lang/opalc/internal/ast/resolved"
	"github.com/opal-lang/opalc/internal/ast/syntax"
)

// Type is a reified type.
type Type interface {
	fmt.Stringer
	reified()
}

// Primitive is a built-in scalar type.
type Primitive struct {
	Primitive syntax.Primitive
}

// Array is a fixed-length array type.
type Array struct {
	Element Type
	Length  uint32
}

// Reference is a shared or mutable reference.
type Reference struct {
	Mutable  bool
	Referent Type
}

// Function is the type of a function item.
type Function struct {
	Parameters []Type
	Return     Type
}

// Named is a user-defined struct, enum or alias target.
type Named struct {
	Symbol resolved.Symbol
}

// Never is the type of expressions that do not produce a value, such as
// `return` and `break`.
type Never struct{}

func (Primitive) reified() {}
func (Array) reified()     {}
func (Reference) reified() {}
func (Function) reified()  {}
func (Named) reified()     {}
func (Never) reified()     {}

func (t Primitive) String() string { return string(t.Primitive) }
func (t Array) String() string     { return fmt.Sprintf("[%v; %d]", t.Element, t.Length) }
func (t Named) String() string     { return t.Symbol.Name }
func (Never) String() string       { return "!" }

func (t Reference) String() string {
	if t.Mutable {
		return fmt.Sprintf("&mut %v", t.Referent)
	}
	return fmt.Sprintf("&%v", t.Referent)
}

func (t Function) String() string {
	params := make([]string, len(t.Parameters))
	for i, p := range t.Parameters {
		params[i] = p.String()
	}
	return fmt.Sprintf("fn(%s) -> %v", strings.Join(params, ", "), t.Return)
}

// Unit is the type of expressions evaluated only for their effect.
var Unit Type = Primitive{Primitive: syntax.Unit}

// FromSyntax reifies a type annotation. Paths are looked up with resolve;
// parentheses are dropped.
func FromSyntax(t syntax.Type, resolve func(syntax.Path) (resolved.Symbol, error)) (Type, error) {
	switch k := t.Item.(type) {
	case syntax.PrimitiveType:
		return Primitive{Primitive: k.Primitive}, nil
	case syntax.ArrayType:
		el, err := FromSyntax(*k.Element, resolve)
		if err != nil {
			return nil, err
		}
		return Array{Element: el, Length: k.Length}, nil
	case syntax.ReferenceType:
		ref, err := FromSyntax(*k.Referent, resolve)
		if err != nil {
			return nil, err
		}
		return Reference{Mutable: k.Mutability == ast.Mutable, Referent: ref}, nil
	case syntax.ParenType:
		return FromSyntax(*k.Inner, resolve)
	case syntax.PathType:
		sym, err := resolve(k.Path)
		if err != nil {
			return nil, err
		}
		return Named{Symbol: sym}, nil
	}
	return nil, fmt.Errorf("unknown type annotation %T", t.Item)
}

type (
	Extra = Type
	Name  = resolved.Symbol
	Path  = resolved.Symbol
)

type (
	Phase      = ast.Phase[Extra, Name, Path, Type]
	Geode      = ast.Geode[Extra, Name, Path, Type]
	Item       = ast.Item[Extra, Name, Path, Type]
	Expression = ast.Expression[Extra, Name, Path, Type]
	Statement  = ast.Statement[Extra, Name, Path, Type]
	Pattern    = ast.Pattern[Extra, Name, Path, Type]
	Block      = ast.Block[Extra, Name, Path, Type]
)

// Upgrader converts resolved trees into typed trees.
type Upgrader = ast.Upgrader[
	resolved.Extra, resolved.Name, resolved.Path, resolved.Type,
	Extra, Name, Path, Type,
]
