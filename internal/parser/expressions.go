package parser

import (
	"github.com/opal-lang/opalc/internal/ast"
	"github.com/opal-lang/opalc/internal/ast/syntax"
	"github.com/opal-lang/opalc/internal/diag"
	"github.com/opal-lang/opalc/internal/span"
	"github.com/opal-lang/opalc/internal/token"
)

func newExpr(kind syntax.ExpressionKind, sp span.Span) syntax.Expression {
	return syntax.Expression{Spanned: span.Wrap(kind, sp)}
}

func ptr[T any](v T) *T {
	return &v
}

// ParseExpression parses an expression at the lowest precedence.
func (p *Parser) ParseExpression() (syntax.Expression, error) {
	return p.parseExpression(Minimum)
}

// parseExpression is the Pratt loop. It keeps folding infix and postfix
// operators into left while they bind tighter than precedence.
func (p *Parser) parseExpression(precedence Precedence) (syntax.Expression, error) {
	if err := p.enter(); err != nil {
		return syntax.Expression{}, err
	}
	defer p.leave()

	left, err := p.parsePrefix()
	if err != nil {
		return syntax.Expression{}, err
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixFns[p.tokens.Peek().Basic]
		if left, err = infix(left); err != nil {
			return syntax.Expression{}, err
		}
	}
	return left, nil
}

func (p *Parser) peekPrecedence() Precedence {
	tok := p.tokens.Peek()
	if tok.Kind != token.KindBasic {
		return Minimum
	}
	return precedences[tok.Basic]
}

// parsePrefix parses everything that can begin an expression.
func (p *Parser) parsePrefix() (syntax.Expression, error) {
	tok := p.tokens.PeekSpanned()

	if lit, ok := literalOf(tok.Item); ok {
		p.tokens.Pop()
		return newExpr(syntax.LiteralExpr{Literal: lit}, tok.Span), nil
	}

	switch tok.Item.Kind {
	case token.KindIdentifier:
		return p.parsePathExpr()
	case token.KindKeyword:
		switch tok.Item.Keyword {
		case token.RETURN:
			return p.parseReturnExpr()
		case token.BREAK:
			return p.parseBreakExpr()
		case token.CONTINUE:
			p.tokens.Pop()
			return newExpr(syntax.ContinueExpr{}, tok.Span), nil
		case token.IF:
			return p.parseIfExpr()
		case token.WHEN:
			return p.parseWhenExpr()
		case token.FOR:
			return p.parseForExpr()
		case token.WHILE:
			return p.parseWhileExpr()
		}
	case token.KindBasic:
		switch tok.Item.Basic {
		case token.LPAREN:
			return p.parseGroupedExpr()
		case token.MINUS:
			return p.parsePrefixExpr(ast.Negate)
		case token.BANG:
			return p.parsePrefixExpr(ast.Not)
		case token.ASTERISK:
			return p.parsePrefixExpr(ast.Dereference)
		case token.AMPERSAND:
			return p.parseBorrowExpr()
		case token.LBRACKET:
			return p.parseArrayExpr()
		case token.DOUBLE_COLON:
			return p.parsePathExpr()
		case token.LBRACE:
			return p.parseBlockExpr()
		}
	}
	return syntax.Expression{}, p.unexpected(diag.CodeParserExpectedExpression, "an expression")
}

// canStartExpression reports whether tok may begin an expression. It decides
// whether `return` and `break` carry a value.
func canStartExpression(tok token.Token) bool {
	if _, ok := literalOf(tok); ok {
		return true
	}
	switch tok.Kind {
	case token.KindIdentifier:
		return true
	case token.KindKeyword:
		switch tok.Keyword {
		case token.RETURN, token.BREAK, token.CONTINUE, token.IF, token.WHEN, token.FOR, token.WHILE:
			return true
		}
	case token.KindBasic:
		switch tok.Basic {
		case token.LPAREN, token.MINUS, token.BANG, token.ASTERISK, token.AMPERSAND, token.LBRACKET, token.DOUBLE_COLON, token.LBRACE:
			return true
		}
	}
	return false
}

func (p *Parser) parsePathExpr() (syntax.Expression, error) {
	path, err := p.parsePath()
	if err != nil {
		return syntax.Expression{}, err
	}
	return newExpr(syntax.PathExpr{Path: path}, path.Span), nil
}

// parseGroupedExpr parses `( expr )`, or `()` which is the unit value.
func (p *Parser) parseGroupedExpr() (syntax.Expression, error) {
	open := p.tokens.PeekSpan()
	p.tokens.Pop()

	if closing, ok := p.tokens.AcceptBasic(token.RPAREN); ok {
		lit := ast.Literal{Kind: ast.UnitLiteral}
		return newExpr(syntax.LiteralExpr{Literal: lit}, span.Between(open, closing)), nil
	}

	inner, err := p.parseExpression(Minimum)
	if err != nil {
		return syntax.Expression{}, err
	}
	closing, err := p.tokens.ExpectBasic(token.RPAREN, "to close the parenthesized expression")
	if err != nil {
		return syntax.Expression{}, err
	}
	return newExpr(syntax.GroupExpr{Inner: &inner}, span.Between(open, closing)), nil
}

func (p *Parser) parsePrefixExpr(op ast.PrefixOperator) (syntax.Expression, error) {
	start := p.tokens.PeekSpan()
	p.tokens.Pop()

	operand, err := p.parseExpression(Unary)
	if err != nil {
		return syntax.Expression{}, err
	}
	return newExpr(syntax.PrefixExpr{Op: op, Operand: &operand}, span.Between(start, operand.Span)), nil
}

// parseBorrowExpr parses `&expr` and `&mut expr`.
func (p *Parser) parseBorrowExpr() (syntax.Expression, error) {
	start := p.tokens.PeekSpan()
	p.tokens.Pop()

	op := ast.Borrow
	if _, ok := p.tokens.AcceptKeyword(token.MUT); ok {
		op = ast.MutableBorrow
	}
	operand, err := p.parseExpression(Unary)
	if err != nil {
		return syntax.Expression{}, err
	}
	return newExpr(syntax.PrefixExpr{Op: op, Operand: &operand}, span.Between(start, operand.Span)), nil
}

func (p *Parser) parseArrayExpr() (syntax.Expression, error) {
	open := p.tokens.PeekSpan()
	p.tokens.Pop()

	elements, closing, err := parseDelimited(p, delimitedConfig{
		Closing: token.RBRACKET,
		Context: "to close the array",
	}, p.ParseExpression)
	if err != nil {
		return syntax.Expression{}, err
	}
	return newExpr(syntax.ArrayExpr{Elements: elements}, span.Between(open, closing)), nil
}

func (p *Parser) parseBlockExpr() (syntax.Expression, error) {
	block, err := p.ParseBlock()
	if err != nil {
		return syntax.Expression{}, err
	}
	return newExpr(block, block.Span), nil
}

// parseJumpValue parses the optional value after `return` or `break`.
func (p *Parser) parseJumpValue() (*syntax.Expression, error) {
	if !canStartExpression(p.tokens.Peek()) {
		return nil, nil
	}
	value, err := p.parseExpression(Return)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func (p *Parser) parseReturnExpr() (syntax.Expression, error) {
	sp := p.tokens.PeekSpan()
	p.tokens.Pop()

	value, err := p.parseJumpValue()
	if err != nil {
		return syntax.Expression{}, err
	}
	if value != nil {
		sp = span.Between(sp, value.Span)
	}
	return newExpr(syntax.ReturnExpr{Value: value}, sp), nil
}

func (p *Parser) parseBreakExpr() (syntax.Expression, error) {
	sp := p.tokens.PeekSpan()
	p.tokens.Pop()

	value, err := p.parseJumpValue()
	if err != nil {
		return syntax.Expression{}, err
	}
	if value != nil {
		sp = span.Between(sp, value.Span)
	}
	return newExpr(syntax.BreakExpr{Value: value}, sp), nil
}

// parseOperand consumes a binary operator and parses its right operand at
// precedence.
func (p *Parser) parseOperand(precedence Precedence) (token.Basic, syntax.Expression, error) {
	op := p.tokens.Pop().Item.Basic
	right, err := p.parseExpression(precedence)
	return op, right, err
}

func (p *Parser) parseArithmeticExpr(left syntax.Expression) (syntax.Expression, error) {
	op, right, err := p.parseOperand(p.peekPrecedence())
	if err != nil {
		return syntax.Expression{}, err
	}
	kind := syntax.ArithmeticOrLogicalExpr{Left: &left, Op: arithmeticOps[op], Right: &right}
	return newExpr(kind, span.Between(left.Span, right.Span)), nil
}

func (p *Parser) parseComparisonExpr(left syntax.Expression) (syntax.Expression, error) {
	op, right, err := p.parseOperand(Comparison)
	if err != nil {
		return syntax.Expression{}, err
	}
	kind := syntax.ComparisonExpr{Left: &left, Op: comparisonOps[op], Right: &right}
	return newExpr(kind, span.Between(left.Span, right.Span)), nil
}

func (p *Parser) parseLazyBooleanExpr(left syntax.Expression) (syntax.Expression, error) {
	op, right, err := p.parseOperand(p.peekPrecedence())
	if err != nil {
		return syntax.Expression{}, err
	}
	kind := syntax.LazyBooleanExpr{Left: &left, Op: lazyBooleanOps[op], Right: &right}
	return newExpr(kind, span.Between(left.Span, right.Span)), nil
}

// parseAssignmentExpr parses the value one level below Assignment so that
// `a = b = c` groups as `a = (b = c)`.
func (p *Parser) parseAssignmentExpr(left syntax.Expression) (syntax.Expression, error) {
	op, right, err := p.parseOperand(Assignment.RightAssociative())
	if err != nil {
		return syntax.Expression{}, err
	}
	kind := syntax.AssignmentExpr{Target: &left, Op: assignmentOps[op], Value: &right}
	return newExpr(kind, span.Between(left.Span, right.Span)), nil
}

func (p *Parser) parseErrorPropagationExpr(left syntax.Expression) (syntax.Expression, error) {
	question := p.tokens.PeekSpan()
	p.tokens.Pop()
	return newExpr(syntax.ErrorPropagationExpr{Operand: &left}, span.Between(left.Span, question)), nil
}

func (p *Parser) parseCallExpr(left syntax.Expression) (syntax.Expression, error) {
	p.tokens.Pop()

	args, closing, err := parseDelimited(p, delimitedConfig{
		Closing: token.RPAREN,
		Context: "to close the argument list",
	}, p.ParseExpression)
	if err != nil {
		return syntax.Expression{}, err
	}
	return newExpr(syntax.CallExpr{Callee: &left, Arguments: args}, span.Between(left.Span, closing)), nil
}

func (p *Parser) parseIndexExpr(left syntax.Expression) (syntax.Expression, error) {
	p.tokens.Pop()

	index, err := p.parseExpression(Minimum)
	if err != nil {
		return syntax.Expression{}, err
	}
	closing, err := p.tokens.ExpectBasic(token.RBRACKET, "to close the index")
	if err != nil {
		return syntax.Expression{}, err
	}
	return newExpr(syntax.IndexExpr{Target: &left, Index: &index}, span.Between(left.Span, closing)), nil
}

func (p *Parser) parseFieldExpr(left syntax.Expression) (syntax.Expression, error) {
	p.tokens.Pop()

	field, err := p.tokens.ExpectIdentifier("after `.`")
	if err != nil {
		return syntax.Expression{}, err
	}
	return newExpr(syntax.FieldExpr{Target: &left, Field: field}, span.Between(left.Span, field.Span)), nil
}
