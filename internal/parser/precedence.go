package parser

import (
	"github.com/opal-lang/opalc/internal/ast"
	"github.com/opal-lang/opalc/internal/token"
)

// Precedence orders how tightly operators bind. Higher binds tighter.
type Precedence int

const (
	Minimum Precedence = iota
	Return
	Assignment
	LazyOr
	LazyAnd
	Comparison
	BitOr
	BitXor
	BitAnd
	Shift
	Additive
	Multiplicative
	Unary
	ErrorPropagation
	FunctionCall
	FieldAccess
	Path
)

// RightAssociative returns the level an operator at p parses its right
// operand at so that a second operator of the same level nests to the right.
func (p Precedence) RightAssociative() Precedence {
	return p - 1
}

var precedences = map[token.Basic]Precedence{
	token.ASSIGN:           Assignment,
	token.PLUS_ASSIGN:      Assignment,
	token.MINUS_ASSIGN:     Assignment,
	token.ASTERISK_ASSIGN:  Assignment,
	token.SLASH_ASSIGN:     Assignment,
	token.AMPERSAND_ASSIGN: Assignment,
	token.PIPE_ASSIGN:      Assignment,
	token.CARET_ASSIGN:     Assignment,
	token.SHL_ASSIGN:       Assignment,
	token.SHR_ASSIGN:       Assignment,
	token.OR:               LazyOr,
	token.AND:              LazyAnd,
	token.EQ:               Comparison,
	token.NOT_EQ:           Comparison,
	token.LT:               Comparison,
	token.LE:               Comparison,
	token.GT:               Comparison,
	token.GE:               Comparison,
	token.PIPE:             BitOr,
	token.CARET:            BitXor,
	token.AMPERSAND:        BitAnd,
	token.SHL:              Shift,
	token.SHR:              Shift,
	token.PLUS:             Additive,
	token.MINUS:            Additive,
	token.ASTERISK:         Multiplicative,
	token.SLASH:            Multiplicative,
	token.QUESTION:         ErrorPropagation,
	token.LPAREN:           FunctionCall,
	token.LBRACKET:         FunctionCall,
	token.DOT:              FieldAccess,
}

var arithmeticOps = map[token.Basic]ast.ArithmeticOrLogicalOperator{
	token.PLUS:      ast.Plus,
	token.MINUS:     ast.Minus,
	token.ASTERISK:  ast.Times,
	token.SLASH:     ast.Divide,
	token.AMPERSAND: ast.And,
	token.PIPE:      ast.Or,
	token.CARET:     ast.Xor,
	token.SHL:       ast.LShift,
	token.SHR:       ast.RShift,
}

var comparisonOps = map[token.Basic]ast.ComparisonOperator{
	token.EQ:     ast.Eq,
	token.NOT_EQ: ast.Ne,
	token.GT:     ast.Gt,
	token.LT:     ast.Lt,
	token.GE:     ast.Ge,
	token.LE:     ast.Le,
}

var lazyBooleanOps = map[token.Basic]ast.LazyBooleanOperator{
	token.AND: ast.LazyAnd,
	token.OR:  ast.LazyOr,
}

var assignmentOps = map[token.Basic]ast.AssignmentOperator{
	token.ASSIGN:           ast.Equal,
	token.PLUS_ASSIGN:      ast.PlusEqual,
	token.MINUS_ASSIGN:     ast.MinusEqual,
	token.ASTERISK_ASSIGN:  ast.TimesEqual,
	token.SLASH_ASSIGN:     ast.DivideEqual,
	token.AMPERSAND_ASSIGN: ast.AndEqual,
	token.PIPE_ASSIGN:      ast.OrEqual,
	token.CARET_ASSIGN:     ast.XorEqual,
	token.SHL_ASSIGN:       ast.LShiftEqual,
	token.SHR_ASSIGN:       ast.RShiftEqual,
}
