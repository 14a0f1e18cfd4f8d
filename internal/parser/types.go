package parser

import (
	"github.com/opal-lang/opalc/internal/ast/syntax"
	"github.com/opal-lang/opalc/internal/diag"
	"github.com/opal-lang/opalc/internal/span"
	"github.com/opal-lang/opalc/internal/token"
)

var primitiveTypes = map[token.Keyword]syntax.Primitive{
	token.U8:   syntax.U8,
	token.I8:   syntax.I8,
	token.U16:  syntax.U16,
	token.I16:  syntax.I16,
	token.U32:  syntax.U32,
	token.I32:  syntax.I32,
	token.BOOL: syntax.Bool,
	token.CHAR: syntax.Char,
	token.STR:  syntax.Str,
	token.UNIT: syntax.Unit,
}

func newType(kind syntax.TypeKind, sp span.Span) syntax.Type {
	return syntax.Type{Spanned: span.Wrap(kind, sp)}
}

// ParseType parses a type annotation.
func (p *Parser) ParseType() (syntax.Type, error) {
	if err := p.enter(); err != nil {
		return syntax.Type{}, err
	}
	defer p.leave()

	tok := p.tokens.PeekSpanned()
	switch tok.Item.Kind {
	case token.KindKeyword:
		if prim, ok := primitiveTypes[tok.Item.Keyword]; ok {
			p.tokens.Pop()
			return newType(syntax.PrimitiveType{Primitive: prim}, tok.Span), nil
		}
	case token.KindIdentifier:
		return p.parsePathType()
	case token.KindBasic:
		switch tok.Item.Basic {
		case token.DOUBLE_COLON:
			return p.parsePathType()
		case token.LBRACKET:
			return p.parseArrayType()
		case token.AMPERSAND:
			return p.parseReferenceType()
		case token.LPAREN:
			return p.parseParenType()
		}
	}
	return syntax.Type{}, p.unexpected(diag.CodeParserExpectedType, "a type")
}

func (p *Parser) parsePathType() (syntax.Type, error) {
	path, err := p.parsePath()
	if err != nil {
		return syntax.Type{}, err
	}
	return newType(syntax.PathType{Path: path}, path.Span), nil
}

// parseArrayType parses `[Element; Length]`.
func (p *Parser) parseArrayType() (syntax.Type, error) {
	open := p.tokens.PeekSpan()
	p.tokens.Pop()

	elem, err := p.ParseType()
	if err != nil {
		return syntax.Type{}, err
	}
	if _, err := p.tokens.ExpectBasic(token.SEMICOLON, "between the array element type and its length"); err != nil {
		return syntax.Type{}, err
	}
	length, err := p.tokens.ExpectInteger("for the array length")
	if err != nil {
		return syntax.Type{}, err
	}
	closing, err := p.tokens.ExpectBasic(token.RBRACKET, "to close the array type")
	if err != nil {
		return syntax.Type{}, err
	}
	return newType(syntax.ArrayType{Element: &elem, Length: length.Item}, span.Between(open, closing)), nil
}

// parseReferenceType parses `&T` and `&mut T`.
func (p *Parser) parseReferenceType() (syntax.Type, error) {
	start := p.tokens.PeekSpan()
	p.tokens.Pop()

	_, mut := p.tokens.AcceptKeyword(token.MUT)
	referent, err := p.ParseType()
	if err != nil {
		return syntax.Type{}, err
	}
	kind := syntax.ReferenceType{Mutability: mutability(mut), Referent: &referent}
	return newType(kind, span.Between(start, referent.Span)), nil
}

func (p *Parser) parseParenType() (syntax.Type, error) {
	open := p.tokens.PeekSpan()
	p.tokens.Pop()

	if closing, ok := p.tokens.AcceptBasic(token.RPAREN); ok {
		return newType(syntax.PrimitiveType{Primitive: syntax.Unit}, span.Between(open, closing)), nil
	}
	inner, err := p.ParseType()
	if err != nil {
		return syntax.Type{}, err
	}
	closing, err := p.tokens.ExpectBasic(token.RPAREN, "to close the parenthesized type")
	if err != nil {
		return syntax.Type{}, err
	}
	return newType(syntax.ParenType{Inner: &inner}, span.Between(open, closing)), nil
}
