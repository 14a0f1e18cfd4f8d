package parser

import (
	"github.com/opal-lang/opalc/internal/ast/syntax"
	"github.com/opal-lang/opalc/internal/span"
	"github.com/opal-lang/opalc/internal/token"
)

// parseIfExpr parses `if cond [is pattern] { .. } [else (if .. | { .. })]`.
func (p *Parser) parseIfExpr() (syntax.Expression, error) {
	start := p.tokens.PeekSpan()
	p.tokens.Pop()

	cond, err := p.parseExpression(Minimum)
	if err != nil {
		return syntax.Expression{}, err
	}

	var pattern *syntax.Pattern
	if _, ok := p.tokens.AcceptKeyword(token.IS); ok {
		pat, err := p.ParsePattern()
		if err != nil {
			return syntax.Expression{}, err
		}
		pattern = &pat
	}

	then, err := p.ParseBlock()
	if err != nil {
		return syntax.Expression{}, err
	}
	sp := span.Between(start, then.Span)

	var alt *syntax.Expression
	if _, ok := p.tokens.AcceptKeyword(token.ELSE); ok {
		var e syntax.Expression
		if p.peekKeyword(token.IF) {
			e, err = p.parseElseIf()
		} else {
			e, err = p.parseBlockExpr()
		}
		if err != nil {
			return syntax.Expression{}, err
		}
		alt = &e
		sp = span.Between(start, e.Span)
	}

	kind := syntax.IfExpr{Condition: &cond, Pattern: pattern, Then: then, Else: alt}
	return newExpr(kind, sp), nil
}

// parseElseIf parses the `if` after an `else`. Each link of an else-if chain
// nests one level deeper in the tree, so it counts against the depth limit.
func (p *Parser) parseElseIf() (syntax.Expression, error) {
	if err := p.enter(); err != nil {
		return syntax.Expression{}, err
	}
	defer p.leave()

	return p.parseIfExpr()
}

// parseWhenExpr parses `when subject { arm, .. }`.
func (p *Parser) parseWhenExpr() (syntax.Expression, error) {
	start := p.tokens.PeekSpan()
	p.tokens.Pop()

	subject, err := p.parseExpression(Minimum)
	if err != nil {
		return syntax.Expression{}, err
	}
	if _, err := p.tokens.ExpectBasic(token.LBRACE, "to start the `when` arms"); err != nil {
		return syntax.Expression{}, err
	}

	arms, closing, err := parseDelimited(p, delimitedConfig{
		Closing: token.RBRACE,
		Context: "to close the `when` arms",
	}, p.parseArm)
	if err != nil {
		return syntax.Expression{}, err
	}
	return newExpr(syntax.WhenExpr{Subject: &subject, Arms: arms}, span.Between(start, closing)), nil
}

func (p *Parser) parseArm() (syntax.Arm, error) {
	pattern, err := p.ParsePattern()
	if err != nil {
		return syntax.Arm{}, err
	}

	var guard *syntax.Expression
	if _, ok := p.tokens.AcceptKeyword(token.IF); ok {
		g, err := p.parseExpression(Minimum)
		if err != nil {
			return syntax.Arm{}, err
		}
		guard = &g
	}

	if _, err := p.tokens.ExpectBasic(token.FATARROW, "after the arm pattern"); err != nil {
		return syntax.Arm{}, err
	}
	body, err := p.parseExpression(Minimum)
	if err != nil {
		return syntax.Arm{}, err
	}
	return syntax.Arm{
		Pattern: pattern,
		Guard:   guard,
		Body:    body,
		Span:    span.Between(pattern.Span, body.Span),
	}, nil
}

// parseForExpr parses `for name in iterable { .. }`.
func (p *Parser) parseForExpr() (syntax.Expression, error) {
	start := p.tokens.PeekSpan()
	p.tokens.Pop()

	binding, err := p.tokens.ExpectIdentifier("to name the loop variable")
	if err != nil {
		return syntax.Expression{}, err
	}
	if _, err := p.tokens.ExpectKeyword(token.IN, "after the loop variable"); err != nil {
		return syntax.Expression{}, err
	}
	iterable, err := p.parseExpression(Minimum)
	if err != nil {
		return syntax.Expression{}, err
	}
	body, err := p.ParseBlock()
	if err != nil {
		return syntax.Expression{}, err
	}

	kind := syntax.ForExpr{Binding: binding, Iterable: &iterable, Body: body}
	return newExpr(kind, span.Between(start, body.Span)), nil
}

func (p *Parser) parseWhileExpr() (syntax.Expression, error) {
	start := p.tokens.PeekSpan()
	p.tokens.Pop()

	cond, err := p.parseExpression(Minimum)
	if err != nil {
		return syntax.Expression{}, err
	}
	body, err := p.ParseBlock()
	if err != nil {
		return syntax.Expression{}, err
	}
	return newExpr(syntax.WhileExpr{Condition: &cond, Body: body}, span.Between(start, body.Span)), nil
}
