package parser

import (
	"github.com/opal-lang/opalc/internal/ast"
	"github.com/opal-lang/opalc/internal/ast/syntax"
	"github.com/opal-lang/opalc/internal/diag"
	"github.com/opal-lang/opalc/internal/span"
	"github.com/opal-lang/opalc/internal/token"
)

func newStmt(kind syntax.StatementKind, sp span.Span) syntax.Statement {
	return syntax.Statement{Spanned: span.Wrap(kind, sp)}
}

// ParseBlock parses `{ statement* [tail] }`.
func (p *Parser) ParseBlock() (syntax.Block, error) {
	if err := p.enter(); err != nil {
		return syntax.Block{}, err
	}
	defer p.leave()

	open, err := p.tokens.ExpectBasic(token.LBRACE, "to start a block")
	if err != nil {
		return syntax.Block{}, err
	}

	var block syntax.Block
	for {
		if closing, ok := p.tokens.AcceptBasic(token.RBRACE); ok {
			block.Span = span.Between(open, closing)
			return block, nil
		}

		stmt, tail, err := p.parseStatementOrTail()
		if err != nil {
			return syntax.Block{}, err
		}
		if tail != nil {
			block.Tail = tail
			continue
		}
		block.Statements = append(block.Statements, stmt)
	}
}

// ParseStatement parses a single statement. An expression statement needs a
// trailing `;` unless the expression is block-like.
func (p *Parser) ParseStatement() (syntax.Statement, error) {
	stmt, tail, err := p.parseStatementOrTail()
	if err != nil {
		return syntax.Statement{}, err
	}
	if tail != nil {
		return syntax.Statement{}, p.unexpected(diag.CodeParserUnexpectedToken, "`;` to end the statement")
	}
	return stmt, nil
}

// parseStatementOrTail parses one statement. An expression directly followed
// by `}` is returned as the tail of the enclosing block instead.
func (p *Parser) parseStatementOrTail() (syntax.Statement, *syntax.Expression, error) {
	tok := p.tokens.PeekSpanned()
	switch {
	case tok.Item.IsKeyword(token.LET):
		stmt, err := p.parseLetStmt()
		return stmt, nil, err
	case tok.Item.IsBasic(token.SEMICOLON):
		p.tokens.Pop()
		return newStmt(syntax.EmptyStmt{}, tok.Span), nil, nil
	}

	// A block-like expression at the start of a statement ends there, so
	// `if a {} -1` is two statements rather than a subtraction.
	var expr syntax.Expression
	var err error
	if isBlockLikeStart(tok.Item) {
		expr, err = p.parseBlockLikeExpr()
	} else {
		expr, err = p.parseExpression(Minimum)
	}
	if err != nil {
		return syntax.Statement{}, nil, err
	}

	if semi, ok := p.tokens.AcceptBasic(token.SEMICOLON); ok {
		kind := syntax.ExpressionStmt{Expression: expr, Semicolon: true}
		return newStmt(kind, span.Between(expr.Span, semi)), nil, nil
	}
	if p.peekIs(token.RBRACE) {
		return syntax.Statement{}, &expr, nil
	}
	if ast.IsBlockLike(expr.Item) {
		return newStmt(syntax.ExpressionStmt{Expression: expr}, expr.Span), nil, nil
	}
	return syntax.Statement{}, nil, p.unexpected(diag.CodeParserUnexpectedToken, "`;` to end the statement")
}

func isBlockLikeStart(tok token.Token) bool {
	if tok.IsBasic(token.LBRACE) {
		return true
	}
	switch {
	case tok.IsKeyword(token.IF), tok.IsKeyword(token.WHEN), tok.IsKeyword(token.FOR), tok.IsKeyword(token.WHILE):
		return true
	}
	return false
}

func (p *Parser) parseBlockLikeExpr() (syntax.Expression, error) {
	if err := p.enter(); err != nil {
		return syntax.Expression{}, err
	}
	defer p.leave()

	tok := p.tokens.Peek()
	switch {
	case tok.IsKeyword(token.IF):
		return p.parseIfExpr()
	case tok.IsKeyword(token.WHEN):
		return p.parseWhenExpr()
	case tok.IsKeyword(token.FOR):
		return p.parseForExpr()
	case tok.IsKeyword(token.WHILE):
		return p.parseWhileExpr()
	}
	return p.parseBlockExpr()
}

// parseLetStmt parses `let [mut] name [: Type] [= value];`.
func (p *Parser) parseLetStmt() (syntax.Statement, error) {
	start := p.tokens.PeekSpan()
	p.tokens.Pop()

	_, mut := p.tokens.AcceptKeyword(token.MUT)
	name, err := p.tokens.ExpectIdentifier("to name the binding")
	if err != nil {
		return syntax.Statement{}, err
	}

	let := syntax.LetStmt{Mutability: mutability(mut), Name: name}
	if _, ok := p.tokens.AcceptBasic(token.COLON); ok {
		typ, err := p.ParseType()
		if err != nil {
			return syntax.Statement{}, err
		}
		let.Type = &typ
	}
	if _, ok := p.tokens.AcceptBasic(token.ASSIGN); ok {
		value, err := p.parseExpression(Minimum)
		if err != nil {
			return syntax.Statement{}, err
		}
		let.Value = ptr(value)
	}

	semi, err := p.tokens.ExpectBasic(token.SEMICOLON, "to end the `let` statement")
	if err != nil {
		return syntax.Statement{}, err
	}
	return newStmt(let, span.Between(start, semi)), nil
}
