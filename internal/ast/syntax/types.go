package syntax

import (
	"fmt"

	"github.com/opal-lang/opalc/internal/ast"
	"github.com/opal-lang/opalc/internal/span"
)

// Type is a positioned type annotation.
type Type struct {
	span.Spanned[TypeKind]
}

// TypeKind is implemented by every type annotation constructor.
type TypeKind interface {
	typeKind()
	fmt.Stringer
}

// Primitive is one of the built-in scalar types.
type Primitive string

const (
	U8   Primitive = "u8"
	I8   Primitive = "i8"
	U16  Primitive = "u16"
	I16  Primitive = "i16"
	U32  Primitive = "u32"
	I32  Primitive = "i32"
	Bool Primitive = "bool"
	Char Primitive = "char"
	Str  Primitive = "str"
	Unit Primitive = "Unit"
)

// PrimitiveType is a built-in type.
type PrimitiveType struct {
	Primitive Primitive
}

// ArrayType is `[Element; Length]`.
type ArrayType struct {
	Element *Type
	Length  uint32
}

// ReferenceType is `&T` or `&mut T`.
type ReferenceType struct {
	Mutability ast.Mutability
	Referent   *Type
}

// ParenType is `(T)`.
type ParenType struct {
	Inner *Type
}

// PathType names a user-defined type.
type PathType struct {
	Path Path
}

func (PrimitiveType) typeKind() {}
func (ArrayType) typeKind()     {}
func (ReferenceType) typeKind() {}
func (ParenType) typeKind()     {}
func (PathType) typeKind()      {}

func (t PrimitiveType) String() string { return string(t.Primitive) }
func (t ArrayType) String() string     { return fmt.Sprintf("[%v; %d]", t.Element, t.Length) }
func (t ParenType) String() string     { return fmt.Sprintf("(%v)", t.Inner) }
func (t PathType) String() string      { return t.Path.String() }

func (t ReferenceType) String() string {
	if t.Mutability == ast.Mutable {
		return fmt.Sprintf("&mut %v", t.Referent)
	}
	return fmt.Sprintf("&%v", t.Referent)
}
