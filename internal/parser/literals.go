package parser

import (
	"github.com/opal-lang/opalc/internal/ast"
	"github.com/opal-lang/opalc/internal/token"
)

// literalOf converts a literal token, or one of the keywords True, False and
// Unit, into an AST literal.
func literalOf(tok token.Token) (ast.Literal, bool) {
	switch tok.Kind {
	case token.KindLiteral:
		switch tok.Literal {
		case token.IntegerLiteral:
			return ast.Literal{Kind: ast.IntegerLiteral, Int: tok.Int}, true
		case token.StringLiteral:
			return ast.Literal{Kind: ast.StringLiteral, Text: tok.Text}, true
		case token.CharacterLiteral:
			return ast.Literal{Kind: ast.CharacterLiteral, Char: tok.Char}, true
		}
	case token.KindKeyword:
		switch tok.Keyword {
		case token.TRUE:
			return ast.Literal{Kind: ast.BooleanLiteral, Bool: true}, true
		case token.FALSE:
			return ast.Literal{Kind: ast.BooleanLiteral, Bool: false}, true
		case token.UNIT:
			return ast.Literal{Kind: ast.UnitLiteral}, true
		}
	}
	return ast.Literal{}, false
}
