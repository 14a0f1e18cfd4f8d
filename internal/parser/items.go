package parser

import (
	"github.com/opal-lang/opalc/internal/ast"
	"github.com/opal-lang/opalc/internal/ast/syntax"
	"github.com/opal-lang/opalc/internal/diag"
	"github.com/opal-lang/opalc/internal/span"
	"github.com/opal-lang/opalc/internal/token"
)

func newItem(kind syntax.ItemKind, sp span.Span) syntax.Item {
	return syntax.Item{Spanned: span.Wrap(kind, sp)}
}

// ParseUnit parses items until the end of input. The unit name is not part
// of the source, so it carries an empty span.
func (p *Parser) ParseUnit(name string) (syntax.Geode, error) {
	geode := syntax.Geode{Name: span.Wrap(name, span.Span{})}
	for !p.tokens.Peek().IsEnd() {
		item, err := p.ParseItem()
		if err != nil {
			return syntax.Geode{}, err
		}
		geode.Items = append(geode.Items, item)
	}
	return geode, nil
}

// ParseItem parses one declaration.
func (p *Parser) ParseItem() (syntax.Item, error) {
	tok := p.tokens.Peek()
	if tok.Kind == token.KindKeyword {
		switch tok.Keyword {
		case token.MOD:
			return p.parseModuleItem()
		case token.USE:
			return p.parseUseItem()
		case token.FN:
			return p.parseFunctionItem()
		case token.TYPE:
			return p.parseTypeAliasItem()
		case token.STRUCT:
			return p.parseStructItem()
		case token.ENUM:
			return p.parseEnumItem()
		case token.CONST:
			return p.parseConstItem()
		case token.STATIC:
			return p.parseStaticItem()
		}
	}
	return syntax.Item{}, p.unexpected(diag.CodeParserExpectedItem, "an item")
}

// parseModuleItem parses `mod name;` and `mod name { items }`.
func (p *Parser) parseModuleItem() (syntax.Item, error) {
	start := p.tokens.PeekSpan()
	p.tokens.Pop()

	name, err := p.tokens.ExpectIdentifier("to name the module")
	if err != nil {
		return syntax.Item{}, err
	}
	if semi, ok := p.tokens.AcceptBasic(token.SEMICOLON); ok {
		return newItem(syntax.ModuleItem{Name: name}, span.Between(start, semi)), nil
	}

	if _, err := p.tokens.ExpectBasic(token.LBRACE, "to start the module body"); err != nil {
		return syntax.Item{}, err
	}
	if err := p.enter(); err != nil {
		return syntax.Item{}, err
	}
	defer p.leave()

	module := syntax.ModuleItem{Name: name, Inline: true}
	for {
		if closing, ok := p.tokens.AcceptBasic(token.RBRACE); ok {
			return newItem(module, span.Between(start, closing)), nil
		}
		item, err := p.ParseItem()
		if err != nil {
			return syntax.Item{}, err
		}
		module.Items = append(module.Items, item)
	}
}

func (p *Parser) parseUseItem() (syntax.Item, error) {
	start := p.tokens.PeekSpan()
	p.tokens.Pop()

	tree, err := p.parseUseTree()
	if err != nil {
		return syntax.Item{}, err
	}
	semi, err := p.tokens.ExpectBasic(token.SEMICOLON, "to end the `use` item")
	if err != nil {
		return syntax.Item{}, err
	}
	return newItem(syntax.UseItem{Tree: tree}, span.Between(start, semi)), nil
}

// parseUseTree parses `[::] a::b [as c]`, `a::*` and `a::{tree, ..}`.
func (p *Parser) parseUseTree() (syntax.UseTree, error) {
	if err := p.enter(); err != nil {
		return syntax.UseTree{}, err
	}
	defer p.leave()

	start := p.tokens.PeekSpan()
	path := syntax.Path{Span: span.New(start.Start, start.Start)}
	if _, ok := p.tokens.AcceptBasic(token.DOUBLE_COLON); ok {
		path.Global = true
		path.Span = start
	}

	for {
		tok := p.tokens.PeekSpanned()
		switch {
		case tok.Item.IsBasic(token.ASTERISK):
			p.tokens.Pop()
			return syntax.UseTree{Kind: ast.UseGlob, Path: path, Span: span.Between(start, tok.Span)}, nil
		case tok.Item.IsBasic(token.LBRACE):
			p.tokens.Pop()
			children, closing, err := parseDelimited(p, delimitedConfig{
				Closing: token.RBRACE,
				Context: "to close the `use` list",
			}, p.parseUseTree)
			if err != nil {
				return syntax.UseTree{}, err
			}
			return syntax.UseTree{Kind: ast.UseNested, Path: path, Children: children, Span: span.Between(start, closing)}, nil
		}

		seg, err := p.tokens.ExpectIdentifier("in the `use` path")
		if err != nil {
			return syntax.UseTree{}, err
		}
		path.Segments = append(path.Segments, seg)
		path.Span = span.Between(start, seg.Span)

		if _, ok := p.tokens.AcceptBasic(token.DOUBLE_COLON); !ok {
			break
		}
	}

	tree := syntax.UseTree{Kind: ast.UseSimple, Path: path, Span: path.Span}
	if _, ok := p.tokens.AcceptKeyword(token.AS); ok {
		alias, err := p.tokens.ExpectIdentifier("after `as`")
		if err != nil {
			return syntax.UseTree{}, err
		}
		tree.Alias = &alias
		tree.Span = span.Between(start, alias.Span)
	}
	return tree, nil
}

// parseFunctionItem parses `fn name(params) [-> Type] { body }`.
func (p *Parser) parseFunctionItem() (syntax.Item, error) {
	start := p.tokens.PeekSpan()
	p.tokens.Pop()

	name, err := p.tokens.ExpectIdentifier("to name the function")
	if err != nil {
		return syntax.Item{}, err
	}
	if _, err := p.tokens.ExpectBasic(token.LPAREN, "to start the parameter list"); err != nil {
		return syntax.Item{}, err
	}
	params, _, err := parseDelimited(p, delimitedConfig{
		Closing: token.RPAREN,
		Context: "to close the parameter list",
	}, p.parseParameter)
	if err != nil {
		return syntax.Item{}, err
	}

	fn := syntax.FunctionItem{Name: name, Parameters: params}
	if _, ok := p.tokens.AcceptBasic(token.ARROW); ok {
		ret, err := p.ParseType()
		if err != nil {
			return syntax.Item{}, err
		}
		fn.ReturnType = &ret
	}

	if fn.Body, err = p.ParseBlock(); err != nil {
		return syntax.Item{}, err
	}
	return newItem(fn, span.Between(start, fn.Body.Span)), nil
}

func (p *Parser) parseParameter() (syntax.Parameter, error) {
	start := p.tokens.PeekSpan()
	_, mut := p.tokens.AcceptKeyword(token.MUT)

	name, err := p.tokens.ExpectIdentifier("to name the parameter")
	if err != nil {
		return syntax.Parameter{}, err
	}
	if _, err := p.tokens.ExpectBasic(token.COLON, "after the parameter name"); err != nil {
		return syntax.Parameter{}, err
	}
	typ, err := p.ParseType()
	if err != nil {
		return syntax.Parameter{}, err
	}
	return syntax.Parameter{
		Mutability: mutability(mut),
		Name:       name,
		Type:       typ,
		Span:       span.Between(start, typ.Span),
	}, nil
}

// parseTypeAliasItem parses `type Name = Type;`.
func (p *Parser) parseTypeAliasItem() (syntax.Item, error) {
	start := p.tokens.PeekSpan()
	p.tokens.Pop()

	name, err := p.tokens.ExpectIdentifier("to name the type")
	if err != nil {
		return syntax.Item{}, err
	}
	if _, err := p.tokens.ExpectBasic(token.ASSIGN, "after the type name"); err != nil {
		return syntax.Item{}, err
	}
	typ, err := p.ParseType()
	if err != nil {
		return syntax.Item{}, err
	}
	semi, err := p.tokens.ExpectBasic(token.SEMICOLON, "to end the type alias")
	if err != nil {
		return syntax.Item{}, err
	}
	return newItem(syntax.TypeAliasItem{Name: name, Type: typ}, span.Between(start, semi)), nil
}

func (p *Parser) parseStructItem() (syntax.Item, error) {
	start := p.tokens.PeekSpan()
	p.tokens.Pop()

	name, err := p.tokens.ExpectIdentifier("to name the struct")
	if err != nil {
		return syntax.Item{}, err
	}
	if _, err := p.tokens.ExpectBasic(token.LBRACE, "to start the struct fields"); err != nil {
		return syntax.Item{}, err
	}
	fields, closing, err := parseDelimited(p, delimitedConfig{
		Closing: token.RBRACE,
		Context: "to close the struct fields",
	}, p.parseField)
	if err != nil {
		return syntax.Item{}, err
	}
	return newItem(syntax.StructItem{Name: name, Fields: fields}, span.Between(start, closing)), nil
}

func (p *Parser) parseField() (syntax.Field, error) {
	name, err := p.tokens.ExpectIdentifier("to name the field")
	if err != nil {
		return syntax.Field{}, err
	}
	if _, err := p.tokens.ExpectBasic(token.COLON, "after the field name"); err != nil {
		return syntax.Field{}, err
	}
	typ, err := p.ParseType()
	if err != nil {
		return syntax.Field{}, err
	}
	return syntax.Field{Name: name, Type: typ, Span: span.Between(name.Span, typ.Span)}, nil
}

func (p *Parser) parseEnumItem() (syntax.Item, error) {
	start := p.tokens.PeekSpan()
	p.tokens.Pop()

	name, err := p.tokens.ExpectIdentifier("to name the enum")
	if err != nil {
		return syntax.Item{}, err
	}
	if _, err := p.tokens.ExpectBasic(token.LBRACE, "to start the enum variants"); err != nil {
		return syntax.Item{}, err
	}
	variants, closing, err := parseDelimited(p, delimitedConfig{
		Closing: token.RBRACE,
		Context: "to close the enum variants",
	}, p.parseVariant)
	if err != nil {
		return syntax.Item{}, err
	}
	return newItem(syntax.EnumItem{Name: name, Variants: variants}, span.Between(start, closing)), nil
}

// parseVariant parses `Name`, `Name(T, ..)` or `Name { field: T, .. }`.
func (p *Parser) parseVariant() (syntax.Variant, error) {
	name, err := p.tokens.ExpectIdentifier("to name the variant")
	if err != nil {
		return syntax.Variant{}, err
	}
	variant := syntax.Variant{Kind: ast.UnitVariant, Name: name, Span: name.Span}

	switch {
	case p.peekIs(token.LPAREN):
		p.tokens.Pop()
		types, closing, err := parseDelimited(p, delimitedConfig{
			Closing: token.RPAREN,
			Context: "to close the variant types",
		}, p.ParseType)
		if err != nil {
			return syntax.Variant{}, err
		}
		variant.Kind = ast.TupleVariant
		variant.Types = types
		variant.Span = span.Between(name.Span, closing)
	case p.peekIs(token.LBRACE):
		p.tokens.Pop()
		fields, closing, err := parseDelimited(p, delimitedConfig{
			Closing: token.RBRACE,
			Context: "to close the variant fields",
		}, p.parseField)
		if err != nil {
			return syntax.Variant{}, err
		}
		variant.Kind = ast.StructVariant
		variant.Fields = fields
		variant.Span = span.Between(name.Span, closing)
	}
	return variant, nil
}

// parseBinding parses the `name: Type = value;` shared by const and static
// items, after the keyword.
func (p *Parser) parseBinding(what string) (syntax.Name, syntax.Type, syntax.Expression, span.Span, error) {
	var (
		typ   syntax.Type
		value syntax.Expression
	)
	name, err := p.tokens.ExpectIdentifier("to name the " + what)
	if err != nil {
		return name, typ, value, span.Span{}, err
	}
	if _, err := p.tokens.ExpectBasic(token.COLON, "after the "+what+" name"); err != nil {
		return name, typ, value, span.Span{}, err
	}
	if typ, err = p.ParseType(); err != nil {
		return name, typ, value, span.Span{}, err
	}
	if _, err := p.tokens.ExpectBasic(token.ASSIGN, "to give the "+what+" a value"); err != nil {
		return name, typ, value, span.Span{}, err
	}
	if value, err = p.parseExpression(Minimum); err != nil {
		return name, typ, value, span.Span{}, err
	}
	semi, err := p.tokens.ExpectBasic(token.SEMICOLON, "to end the "+what)
	return name, typ, value, semi, err
}

func (p *Parser) parseConstItem() (syntax.Item, error) {
	start := p.tokens.PeekSpan()
	p.tokens.Pop()

	name, typ, value, semi, err := p.parseBinding("constant")
	if err != nil {
		return syntax.Item{}, err
	}
	return newItem(syntax.ConstItem{Name: name, Type: typ, Value: value}, span.Between(start, semi)), nil
}

func (p *Parser) parseStaticItem() (syntax.Item, error) {
	start := p.tokens.PeekSpan()
	p.tokens.Pop()

	name, typ, value, semi, err := p.parseBinding("static")
	if err != nil {
		return syntax.Item{}, err
	}
	return newItem(syntax.StaticItem{Name: name, Type: typ, Value: value}, span.Between(start, semi)), nil
}
