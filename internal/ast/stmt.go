package ast

import "github.com/opal-lang/opalc/internal/span"

// Statement is a positioned statement inside a block.
type Statement[X, N, P, T any] struct {
	span.Spanned[StatementKind[X, N, P, T]]
}

// StatementKind is implemented by every statement constructor.
type StatementKind[X, N, P, T any] interface {
	statementKind(Phase[X, N, P, T])
}

// LetStmt is `let [mut] name [: Type] [= value];`.
type LetStmt[X, N, P, T any] struct {
	Mutability Mutability
	Name       N
	Type       *T
	Value      *Expression[X, N, P, T]
	Extra      X
}

// ExpressionStmt is an expression evaluated for its effect. Semicolon is
// false only for block-like expressions written without one.
type ExpressionStmt[X, N, P, T any] struct {
	Expression Expression[X, N, P, T]
	Semicolon  bool
	Extra      X
}

// EmptyStmt is a lone `;`.
type EmptyStmt[X, N, P, T any] struct {
	Extra X
}

func (LetStmt[X, N, P, T]) statementKind(Phase[X, N, P, T])        {}
func (ExpressionStmt[X, N, P, T]) statementKind(Phase[X, N, P, T]) {}
func (EmptyStmt[X, N, P, T]) statementKind(Phase[X, N, P, T])      {}

// Block is `{ statements [tail] }`. The tail expression, if any, is the
// value of the block.
type Block[X, N, P, T any] struct {
	Statements []Statement[X, N, P, T]
	Tail       *Expression[X, N, P, T]
	Span       span.Span
	Extra      X
}
