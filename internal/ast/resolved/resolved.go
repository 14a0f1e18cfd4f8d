// Package resolved is the phase after name resolution: every node carries
// the identity of the symbol it defines or refers to, and names and paths are
// replaced by symbols. Type annotations are still as written.
package resolved

import (
	"fmt"

	"github.com/opal-lang/opalc/internal/ast"
	"github.com/opal-lang/opalc/internal/ast/syntax"
	"github.com/opal-lang/opalc/internal/span"
)

// SymbolID identifies a declaration. The zero value means "no symbol".
type SymbolID uint32

// Symbol is a resolved reference to a declaration.
type Symbol struct {
	ID   SymbolID
	Name string
	// Span is where the symbol was referenced, not where it was declared.
	Span span.Span
}

func (s Symbol) String() string {
	return fmt.Sprintf("%s#%d", s.Name, s.ID)
}

type (
	Extra = SymbolID
	Name  = Symbol
	Path  = Symbol
	Type  = syntax.Type
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

// Upgrader converts syntax trees into resolved trees.
type Upgrader = ast.Upgrader[
	syntax.Extra, syntax.Name, syntax.Path, syntax.Type,
	Extra, Name, Path, Type,
]
