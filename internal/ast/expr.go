package ast

import "github.com/opal-lang/opalc/internal/span"

// Expression is a positioned expression.
type Expression[X, N, P, T any] struct {
	span.Spanned[ExpressionKind[X, N, P, T]]
}

// ExpressionKind is implemented by every expression constructor.
type ExpressionKind[X, N, P, T any] interface {
	expressionKind(Phase[X, N, P, T])
}

// ArithmeticOrLogicalOperator is a binary operator producing a value of its
// operands' type.
type ArithmeticOrLogicalOperator string

const (
	Plus   ArithmeticOrLogicalOperator = "+"
	Minus  ArithmeticOrLogicalOperator = "-"
	Times  ArithmeticOrLogicalOperator = "*"
	Divide ArithmeticOrLogicalOperator = "/"
	And    ArithmeticOrLogicalOperator = "&"
	Or     ArithmeticOrLogicalOperator = "|"
	Xor    ArithmeticOrLogicalOperator = "^"
	LShift ArithmeticOrLogicalOperator = "<<"
	RShift ArithmeticOrLogicalOperator = ">>"
)

// ComparisonOperator is a binary operator producing a boolean.
type ComparisonOperator string

const (
	Eq ComparisonOperator = "=="
	Ne ComparisonOperator = "!="
	Gt ComparisonOperator = ">"
	Lt ComparisonOperator = "<"
	Ge ComparisonOperator = ">="
	Le ComparisonOperator = "<="
)

// LazyBooleanOperator is a short-circuiting boolean operator.
type LazyBooleanOperator string

const (
	LazyAnd LazyBooleanOperator = "&&"
	LazyOr  LazyBooleanOperator = "||"
)

// AssignmentOperator is plain or compound assignment.
type AssignmentOperator string

const (
	Equal       AssignmentOperator = "="
	PlusEqual   AssignmentOperator = "+="
	MinusEqual  AssignmentOperator = "-="
	TimesEqual  AssignmentOperator = "*="
	DivideEqual AssignmentOperator = "/="
	AndEqual    AssignmentOperator = "&="
	OrEqual     AssignmentOperator = "|="
	XorEqual    AssignmentOperator = "^="
	LShiftEqual AssignmentOperator = "<<="
	RShiftEqual AssignmentOperator = ">>="
)

// PrefixOperator is a unary operator written before its operand.
type PrefixOperator string

const (
	Negate        PrefixOperator = "-"
	Not           PrefixOperator = "!"
	Borrow        PrefixOperator = "&"
	MutableBorrow PrefixOperator = "&mut"
	Dereference   PrefixOperator = "*"
)

type LiteralExpr[X, N, P, T any] struct {
	Literal Literal
	Extra   X
}

type PathExpr[X, N, P, T any] struct {
	Path  P
	Extra X
}

type PrefixExpr[X, N, P, T any] struct {
	Op      PrefixOperator
	Operand *Expression[X, N, P, T]
	Extra   X
}

type ArithmeticOrLogicalExpr[X, N, P, T any] struct {
	Left  *Expression[X, N, P, T]
	Op    ArithmeticOrLogicalOperator
	Right *Expression[X, N, P, T]
	Extra X
}

type ComparisonExpr[X, N, P, T any] struct {
	Left  *Expression[X, N, P, T]
	Op    ComparisonOperator
	Right *Expression[X, N, P, T]
	Extra X
}

type LazyBooleanExpr[X, N, P, T any] struct {
	Left  *Expression[X, N, P, T]
	Op    LazyBooleanOperator
	Right *Expression[X, N, P, T]
	Extra X
}

type AssignmentExpr[X, N, P, T any] struct {
	Target *Expression[X, N, P, T]
	Op     AssignmentOperator
	Value  *Expression[X, N, P, T]
	Extra  X
}

// ErrorPropagationExpr is the postfix `expr?`.
type ErrorPropagationExpr[X, N, P, T any] struct {
	Operand *Expression[X, N, P, T]
	Extra   X
}

type CallExpr[X, N, P, T any] struct {
	Callee    *Expression[X, N, P, T]
	Arguments []Expression[X, N, P, T]
	Extra     X
}

type IndexExpr[X, N, P, T any] struct {
	Target *Expression[X, N, P, T]
	Index  *Expression[X, N, P, T]
	Extra  X
}

type FieldExpr[X, N, P, T any] struct {
	Target *Expression[X, N, P, T]
	Field  N
	Extra  X
}

// GroupExpr is a parenthesized expression. It is kept in the tree so spans
// cover the parentheses.
type GroupExpr[X, N, P, T any] struct {
	Inner *Expression[X, N, P, T]
	Extra X
}

type ArrayExpr[X, N, P, T any] struct {
	Elements []Expression[X, N, P, T]
	Extra    X
}

// ReturnExpr is `return` with an optional value.
type ReturnExpr[X, N, P, T any] struct {
	Value *Expression[X, N, P, T]
	Extra X
}

// BreakExpr is `break` with an optional value.
type BreakExpr[X, N, P, T any] struct {
	Value *Expression[X, N, P, T]
	Extra X
}

type ContinueExpr[X, N, P, T any] struct {
	Extra X
}

// IfExpr is `if cond { .. } else ..`. When Pattern is set the condition is
// `cond is Pattern` and the pattern's bindings are in scope in Then. Else,
// when present, holds a Block or another IfExpr.
type IfExpr[X, N, P, T any] struct {
	Condition *Expression[X, N, P, T]
	Pattern   *Pattern[X, N, P, T]
	Then      Block[X, N, P, T]
	Else      *Expression[X, N, P, T]
	Extra     X
}

// WhenExpr matches Subject against each arm in order.
type WhenExpr[X, N, P, T any] struct {
	Subject *Expression[X, N, P, T]
	Arms    []Arm[X, N, P, T]
	Extra   X
}

// Arm is `pattern [if guard] => body`.
type Arm[X, N, P, T any] struct {
	Pattern Pattern[X, N, P, T]
	Guard   *Expression[X, N, P, T]
	Body    Expression[X, N, P, T]
	Span    span.Span
	Extra   X
}

// ForExpr is `for binding in iterable { body }`.
type ForExpr[X, N, P, T any] struct {
	Binding  N
	Iterable *Expression[X, N, P, T]
	Body     Block[X, N, P, T]
	Extra    X
}

type WhileExpr[X, N, P, T any] struct {
	Condition *Expression[X, N, P, T]
	Body      Block[X, N, P, T]
	Extra     X
}

func (LiteralExpr[X, N, P, T]) expressionKind(Phase[X, N, P, T])             {}
func (PathExpr[X, N, P, T]) expressionKind(Phase[X, N, P, T])                {}
func (PrefixExpr[X, N, P, T]) expressionKind(Phase[X, N, P, T])              {}
func (ArithmeticOrLogicalExpr[X, N, P, T]) expressionKind(Phase[X, N, P, T]) {}
func (ComparisonExpr[X, N, P, T]) expressionKind(Phase[X, N, P, T])          {}
func (LazyBooleanExpr[X, N, P, T]) expressionKind(Phase[X, N, P, T])         {}
func (AssignmentExpr[X, N, P, T]) expressionKind(Phase[X, N, P, T])          {}
func (ErrorPropagationExpr[X, N, P, T]) expressionKind(Phase[X, N, P, T])    {}
func (CallExpr[X, N, P, T]) expressionKind(Phase[X, N, P, T])                {}
func (IndexExpr[X, N, P, T]) expressionKind(Phase[X, N, P, T])               {}
func (FieldExpr[X, N, P, T]) expressionKind(Phase[X, N, P, T])               {}
func (GroupExpr[X, N, P, T]) expressionKind(Phase[X, N, P, T])               {}
func (ArrayExpr[X, N, P, T]) expressionKind(Phase[X, N, P, T])               {}
func (ReturnExpr[X, N, P, T]) expressionKind(Phase[X, N, P, T])              {}
func (BreakExpr[X, N, P, T]) expressionKind(Phase[X, N, P, T])               {}
func (ContinueExpr[X, N, P, T]) expressionKind(Phase[X, N, P, T])            {}
func (Block[X, N, P, T]) expressionKind(Phase[X, N, P, T])                   {}
func (IfExpr[X, N, P, T]) expressionKind(Phase[X, N, P, T])                  {}
func (WhenExpr[X, N, P, T]) expressionKind(Phase[X, N, P, T])                {}
func (ForExpr[X, N, P, T]) expressionKind(Phase[X, N, P, T])                 {}
func (WhileExpr[X, N, P, T]) expressionKind(Phase[X, N, P, T])               {}

// IsBlockLike reports whether kind ends in a block, which lets it stand as a
// statement without a trailing semicolon.
func IsBlockLike[X, N, P, T any](kind ExpressionKind[X, N, P, T]) bool {
	switch kind.(type) {
	case Block[X, N, P, T], IfExpr[X, N, P, T], WhenExpr[X, N, P, T], ForExpr[X, N, P, T], WhileExpr[X, N, P, T]:
		return true
	}
	return false
}
