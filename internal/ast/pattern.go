package ast

import "github.com/opal-lang/opalc/internal/span"

// Pattern is a positioned pattern, as used by `if .. is` and `when` arms.
type Pattern[X, N, P, T any] struct {
	span.Spanned[PatternKind[X, N, P, T]]
}

// PatternKind is implemented by every pattern constructor.
type PatternKind[X, N, P, T any] interface {
	patternKind(Phase[X, N, P, T])
}

// WildcardPattern is `_`.
type WildcardPattern[X, N, P, T any] struct {
	Extra X
}

type LiteralPattern[X, N, P, T any] struct {
	Literal Literal
	Extra   X
}

// BindingPattern binds the matched value to Name.
type BindingPattern[X, N, P, T any] struct {
	Mutability Mutability
	Name       N
	Extra      X
}

// PathPattern matches a unit variant or constant such as `Option::None`.
type PathPattern[X, N, P, T any] struct {
	Path  P
	Extra X
}

// TupleStructPattern is `Path(p, ..)`.
type TupleStructPattern[X, N, P, T any] struct {
	Path     P
	Elements []Pattern[X, N, P, T]
	Extra    X
}

func (WildcardPattern[X, N, P, T]) patternKind(Phase[X, N, P, T])    {}
func (LiteralPattern[X, N, P, T]) patternKind(Phase[X, N, P, T])     {}
func (BindingPattern[X, N, P, T]) patternKind(Phase[X, N, P, T])     {}
func (PathPattern[X, N, P, T]) patternKind(Phase[X, N, P, T])        {}
func (TupleStructPattern[X, N, P, T]) patternKind(Phase[X, N, P, T]) {}
