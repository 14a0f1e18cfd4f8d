package parser

import (
	"github.com/opal-lang/opalc/internal/ast"
	"github.com/opal-lang/opalc/internal/ast/syntax"
	"github.com/opal-lang/opalc/internal/diag"
	"github.com/opal-lang/opalc/internal/span"
	"github.com/opal-lang/opalc/internal/token"
)

func newPattern(kind syntax.PatternKind, sp span.Span) syntax.Pattern {
	return syntax.Pattern{Spanned: span.Wrap(kind, sp)}
}

// ParsePattern parses a pattern. A lone identifier is a binding; a path of
// more than one segment, or a global path, names a constant or variant.
func (p *Parser) ParsePattern() (syntax.Pattern, error) {
	if err := p.enter(); err != nil {
		return syntax.Pattern{}, err
	}
	defer p.leave()

	tok := p.tokens.PeekSpanned()
	if lit, ok := literalOf(tok.Item); ok {
		p.tokens.Pop()
		return newPattern(syntax.LiteralPattern{Literal: lit}, tok.Span), nil
	}

	switch {
	case tok.Item.IsIdentifier() && tok.Item.Text == "_":
		p.tokens.Pop()
		return newPattern(syntax.WildcardPattern{}, tok.Span), nil
	case tok.Item.IsKeyword(token.MUT):
		p.tokens.Pop()
		name, err := p.tokens.ExpectIdentifier("to name the binding")
		if err != nil {
			return syntax.Pattern{}, err
		}
		kind := syntax.BindingPattern{Mutability: ast.Mutable, Name: name}
		return newPattern(kind, span.Between(tok.Span, name.Span)), nil
	case tok.Item.IsIdentifier(), tok.Item.IsBasic(token.DOUBLE_COLON):
		return p.parsePathPattern()
	}
	return syntax.Pattern{}, p.unexpected(diag.CodeParserExpectedPattern, "a pattern")
}

func (p *Parser) parsePathPattern() (syntax.Pattern, error) {
	path, err := p.parsePath()
	if err != nil {
		return syntax.Pattern{}, err
	}

	if p.peekIs(token.LPAREN) {
		p.tokens.Pop()
		elements, closing, err := parseDelimited(p, delimitedConfig{
			Closing: token.RPAREN,
			Context: "to close the pattern",
		}, p.ParsePattern)
		if err != nil {
			return syntax.Pattern{}, err
		}
		kind := syntax.TupleStructPattern{Path: path, Elements: elements}
		return newPattern(kind, span.Between(path.Span, closing)), nil
	}

	if !path.Global && len(path.Segments) == 1 {
		kind := syntax.BindingPattern{Mutability: ast.Immutable, Name: path.Segments[0]}
		return newPattern(kind, path.Span), nil
	}
	return newPattern(syntax.PathPattern{Path: path}, path.Span), nil
}
