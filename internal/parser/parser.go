package parser

import (
	"github.com/opal-lang/opalc/internal/ast"
	"github.com/opal-lang/opalc/internal/ast/syntax"
	"github.com/opal-lang/opalc/internal/diag"
	"github.com/opal-lang/opalc/internal/lexer"
	"github.com/opal-lang/opalc/internal/span"
	"github.com/opal-lang/opalc/internal/token"
)

type infixParseFn func(left syntax.Expression) (syntax.Expression, error)

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth bounds how deeply expressions, blocks, types and patterns may
// nest. Exceeding it fails with CodeParserNestingTooDeep instead of growing
// the Go stack without limit. Zero means unbounded.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		p.maxDepth = n
	}
}

// DefaultMaxDepth is the nesting bound used when no option overrides it.
const DefaultMaxDepth = 256

// Parser is a recursive descent parser for Opal with a Pratt loop for
// expressions.
// Invariants:
//   - Lookahead: the parser only inspects tokens through its stream. Expect
//     never consumes on failure, so the error always points at the offending
//     token.
//   - Errors: parsing stops at the first error, which is always a *diag.Error
//     from the parser stage.
//   - Spans: every node's span runs from its first token to its last, built
//     with span.Between from the spans of its children and delimiters.
type Parser struct {
	tokens *token.Stream

	depth    int
	maxDepth int

	infixFns map[token.Basic]infixParseFn
}

// New returns a parser reading from tokens.
func New(tokens *token.Stream, opts ...Option) *Parser {
	p := &Parser{
		tokens:   tokens,
		maxDepth: DefaultMaxDepth,
		infixFns: make(map[token.Basic]infixParseFn),
	}
	for _, opt := range opts {
		opt(p)
	}

	for _, b := range []token.Basic{token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.AMPERSAND, token.PIPE, token.CARET, token.SHL, token.SHR} {
		p.registerInfix(b, p.parseArithmeticExpr)
	}
	for _, b := range []token.Basic{token.EQ, token.NOT_EQ, token.LT, token.LE, token.GT, token.GE} {
		p.registerInfix(b, p.parseComparisonExpr)
	}
	p.registerInfix(token.AND, p.parseLazyBooleanExpr)
	p.registerInfix(token.OR, p.parseLazyBooleanExpr)
	for b := range assignmentOps {
		p.registerInfix(b, p.parseAssignmentExpr)
	}
	p.registerInfix(token.QUESTION, p.parseErrorPropagationExpr)
	p.registerInfix(token.LPAREN, p.parseCallExpr)
	p.registerInfix(token.LBRACKET, p.parseIndexExpr)
	p.registerInfix(token.DOT, p.parseFieldExpr)

	return p
}

func (p *Parser) registerInfix(b token.Basic, fn infixParseFn) {
	p.infixFns[b] = fn
}

// ParseSource lexes and parses a whole compilation unit.
func ParseSource(name, source string, opts ...Option) (syntax.Geode, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return syntax.Geode{}, err
	}
	return ParseUnit(name, tokens, opts...)
}

// ParseUnit parses tokens as a compilation unit called name.
func ParseUnit(name string, tokens *token.Stream, opts ...Option) (syntax.Geode, error) {
	return New(tokens, opts...).ParseUnit(name)
}

// ParseExpression parses one expression from the front of tokens.
func ParseExpression(tokens *token.Stream, opts ...Option) (syntax.Expression, error) {
	return New(tokens, opts...).ParseExpression()
}

// ParseStatement parses one statement from the front of tokens.
func ParseStatement(tokens *token.Stream, opts ...Option) (syntax.Statement, error) {
	return New(tokens, opts...).ParseStatement()
}

// ParseBlock parses one `{ .. }` block from the front of tokens.
func ParseBlock(tokens *token.Stream, opts ...Option) (syntax.Block, error) {
	return New(tokens, opts...).ParseBlock()
}

// ParseItem parses one item from the front of tokens.
func ParseItem(tokens *token.Stream, opts ...Option) (syntax.Item, error) {
	return New(tokens, opts...).ParseItem()
}

// ParseType parses one type from the front of tokens.
func ParseType(tokens *token.Stream, opts ...Option) (syntax.Type, error) {
	return New(tokens, opts...).ParseType()
}

// ParsePattern parses one pattern from the front of tokens.
func ParsePattern(tokens *token.Stream, opts ...Option) (syntax.Pattern, error) {
	return New(tokens, opts...).ParsePattern()
}

// enter records one more level of nesting. Callers defer leave only when
// enter succeeds.
func (p *Parser) enter() error {
	if p.maxDepth > 0 && p.depth >= p.maxDepth {
		return diag.Syntax(diag.CodeParserNestingTooDeep, p.tokens.PeekSpan(),
			"Expected to find at most %d levels of nesting, but found deeper nesting instead", p.maxDepth)
	}
	p.depth++
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// unexpected reports that the next token cannot start what was wanted.
func (p *Parser) unexpected(code diag.Code, wanted string) error {
	tok := p.tokens.PeekSpanned()
	return diag.Expected(diag.StageParser, code, tok.Span, diag.Description(wanted), tok.Item)
}

func (p *Parser) peekIs(b token.Basic) bool {
	return p.tokens.Peek().IsBasic(b)
}

func (p *Parser) peekKeyword(k token.Keyword) bool {
	return p.tokens.Peek().IsKeyword(k)
}

// parsePath parses `[::] ident (:: ident)*`.
func (p *Parser) parsePath() (syntax.Path, error) {
	start := p.tokens.PeekSpan()
	var path syntax.Path
	if _, ok := p.tokens.AcceptBasic(token.DOUBLE_COLON); ok {
		path.Global = true
	}
	for {
		seg, err := p.tokens.ExpectIdentifier("in the path")
		if err != nil {
			return syntax.Path{}, err
		}
		path.Segments = append(path.Segments, seg)
		path.Span = span.Between(start, seg.Span)

		if !p.peekIs(token.DOUBLE_COLON) {
			return path, nil
		}
		p.tokens.Pop()
	}
}

func mutability(mut bool) ast.Mutability {
	if mut {
		return ast.Mutable
	}
	return ast.Immutable
}
