package token

import (
	"github.com/opal-lang/opalc/internal/diag"
	"github.com/opal-lang/opalc/internal/span"
	"github.com/opal-lang/opalc/internal/stream"
)

// Stream is a token stream terminated by EndOfInput.
type Stream struct {
	*stream.Stream[Token]
}

// NewStream wraps tokens, which normally end with an EndOfInput token.
func NewStream(tokens []span.Spanned[Token]) *Stream {
	return &Stream{stream.New(tokens, EndOfInput)}
}

// Query selects a class of tokens and extracts a result R from a match.
type Query[R any] interface {
	Match(tok span.Spanned[Token]) (R, bool)
	String() string
}

// Match implements Query for a specific operator or punctuation token.
func (b Basic) Match(tok span.Spanned[Token]) (span.Span, bool) {
	return tok.Span, tok.Item.IsBasic(b)
}

// Match implements Query for a specific keyword.
func (k Keyword) Match(tok span.Spanned[Token]) (span.Span, bool) {
	return tok.Span, tok.Item.IsKeyword(k)
}

// Identifier matches any identifier and yields its name.
type Identifier struct{}

func (Identifier) Match(tok span.Spanned[Token]) (span.Spanned[string], bool) {
	if !tok.Item.IsIdentifier() {
		return span.Spanned[string]{}, false
	}
	return span.Wrap(tok.Item.Text, tok.Span), true
}

func (Identifier) String() string { return "identifier" }

// Integer matches an integer literal and yields its value.
type Integer struct{}

func (Integer) Match(tok span.Spanned[Token]) (span.Spanned[uint32], bool) {
	if tok.Item.Kind != KindLiteral || tok.Item.Literal != IntegerLiteral {
		return span.Spanned[uint32]{}, false
	}
	return span.Wrap(tok.Item.Int, tok.Span), true
}

func (Integer) String() string { return "integer literal" }

// Expect consumes the current token if it matches q. Otherwise nothing is
// consumed and the error points at the offending token; context, when set,
// is appended to the description of what was expected.
func Expect[R any](s *Stream, q Query[R], context string) (R, error) {
	tok := s.PeekSpanned()
	if r, ok := q.Match(tok); ok {
		s.Pop()
		return r, nil
	}
	var zero R
	expected := q.String()
	if context != "" {
		expected += " " + context
	}
	return zero, diag.Expected(diag.StageParser, diag.CodeParserUnexpectedToken, tok.Span, diag.Description(expected), tok.Item)
}

// Accept consumes the current token if it matches q and reports whether it
// did.
func Accept[R any](s *Stream, q Query[R]) (R, bool) {
	r, ok := q.Match(s.PeekSpanned())
	if ok {
		s.Pop()
	}
	return r, ok
}

// ExpectBasic consumes the operator or punctuation b.
func (s *Stream) ExpectBasic(b Basic, context string) (span.Span, error) {
	return Expect[span.Span](s, b, context)
}

// ExpectKeyword consumes the keyword k.
func (s *Stream) ExpectKeyword(k Keyword, context string) (span.Span, error) {
	return Expect[span.Span](s, k, context)
}

// ExpectIdentifier consumes an identifier and returns its name.
func (s *Stream) ExpectIdentifier(context string) (span.Spanned[string], error) {
	return Expect[span.Spanned[string]](s, Identifier{}, context)
}

// ExpectInteger consumes an integer literal and returns its value.
func (s *Stream) ExpectInteger(context string) (span.Spanned[uint32], error) {
	return Expect[span.Spanned[uint32]](s, Integer{}, context)
}

// AcceptBasic consumes b if it is next.
func (s *Stream) AcceptBasic(b Basic) (span.Span, bool) {
	return Accept[span.Span](s, b)
}

// AcceptKeyword consumes k if it is next.
func (s *Stream) AcceptKeyword(k Keyword) (span.Span, bool) {
	return Accept[span.Span](s, k)
}
