// Package syntax is the phase produced by the parser: no extra data, names
// and paths exactly as written, and type annotations as parsed.
package syntax

import (
	"strings"

	"github.com/opal-lang/opalc/internal/ast"
	"github.com/opal-lang/opalc/internal/span"
)

// Extra is empty in the syntax phase.
type Extra = struct{}

// Name is an identifier as written.
type Name = span.Spanned[string]

// Path is a possibly global, `::`-separated sequence of names.
type Path struct {
	Global   bool
	Segments []Name
	Span     span.Span
}

func (p Path) String() string {
	parts := make([]string, len(p.Segments))
	for i, s := range p.Segments {
		parts[i] = s.Item
	}
	joined := strings.Join(parts, "::")
	if p.Global {
		return "::" + joined
	}
	return joined
}

type (
	Phase          = ast.Phase[Extra, Name, Path, Type]
	Geode          = ast.Geode[Extra, Name, Path, Type]
	Item           = ast.Item[Extra, Name, Path, Type]
	ItemKind       = ast.ItemKind[Extra, Name, Path, Type]
	Expression     = ast.Expression[Extra, Name, Path, Type]
	ExpressionKind = ast.ExpressionKind[Extra, Name, Path, Type]
	Statement      = ast.Statement[Extra, Name, Path, Type]
	StatementKind  = ast.StatementKind[Extra, Name, Path, Type]
	Pattern        = ast.Pattern[Extra, Name, Path, Type]
	PatternKind    = ast.PatternKind[Extra, Name, Path, Type]
	Block          = ast.Block[Extra, Name, Path, Type]
	UseTree        = ast.UseTree[Extra, Name, Path, Type]
	Parameter      = ast.Parameter[Extra, Name, Path, Type]
	Field          = ast.Field[Extra, Name, Path, Type]
	Variant        = ast.Variant[Extra, Name, Path, Type]
	Arm            = ast.Arm[Extra, Name, Path, Type]
)

// Item kinds.
type (
	ModuleItem    = ast.ModuleItem[Extra, Name, Path, Type]
	UseItem       = ast.UseItem[Extra, Name, Path, Type]
	FunctionItem  = ast.FunctionItem[Extra, Name, Path, Type]
	TypeAliasItem = ast.TypeAliasItem[Extra, Name, Path, Type]
	StructItem    = ast.StructItem[Extra, Name, Path, Type]
	EnumItem      = ast.EnumItem[Extra, Name, Path, Type]
	ConstItem     = ast.ConstItem[Extra, Name, Path, Type]
	StaticItem    = ast.StaticItem[Extra, Name, Path, Type]
)

// Expression kinds.
type (
	LiteralExpr             = ast.LiteralExpr[Extra, Name, Path, Type]
	PathExpr                = ast.PathExpr[Extra, Name, Path, Type]
	PrefixExpr              = ast.PrefixExpr[Extra, Name, Path, Type]
	ArithmeticOrLogicalExpr = ast.ArithmeticOrLogicalExpr[Extra, Name, Path, Type]
	ComparisonExpr          = ast.ComparisonExpr[Extra, Name, Path, Type]
	LazyBooleanExpr         = ast.LazyBooleanExpr[Extra, Name, Path, Type]
	AssignmentExpr          = ast.AssignmentExpr[Extra, Name, Path, Type]
	ErrorPropagationExpr    = ast.ErrorPropagationExpr[Extra, Name, Path, Type]
	CallExpr                = ast.CallExpr[Extra, Name, Path, Type]
	IndexExpr               = ast.IndexExpr[Extra, Name, Path, Type]
	FieldExpr               = ast.FieldExpr[Extra, Name, Path, Type]
	GroupExpr               = ast.GroupExpr[Extra, Name, Path, Type]
	ArrayExpr               = ast.ArrayExpr[Extra, Name, Path, Type]
	ReturnExpr              = ast.ReturnExpr[Extra, Name, Path, Type]
	BreakExpr               = ast.BreakExpr[Extra, Name, Path, Type]
	ContinueExpr            = ast.ContinueExpr[Extra, Name, Path, Type]
	IfExpr                  = ast.IfExpr[Extra, Name, Path, Type]
	WhenExpr                = ast.WhenExpr[Extra, Name, Path, Type]
	ForExpr                 = ast.ForExpr[Extra, Name, Path, Type]
	WhileExpr               = ast.WhileExpr[Extra, Name, Path, Type]
)

// Statement kinds.
type (
	LetStmt        = ast.LetStmt[Extra, Name, Path, Type]
	ExpressionStmt = ast.ExpressionStmt[Extra, Name, Path, Type]
	EmptyStmt      = ast.EmptyStmt[Extra, Name, Path, Type]
)

// Pattern kinds.
type (
	WildcardPattern    = ast.WildcardPattern[Extra, Name, Path, Type]
	LiteralPattern     = ast.LiteralPattern[Extra, Name, Path, Type]
	BindingPattern     = ast.BindingPattern[Extra, Name, Path, Type]
	PathPattern        = ast.PathPattern[Extra, Name, Path, Type]
	TupleStructPattern = ast.TupleStructPattern[Extra, Name, Path, Type]
)
