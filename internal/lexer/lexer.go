package lexer

import (
	"fmt"
	"strconv"

	"github.com/opal-lang/opalc/internal/diag"
	"github.com/opal-lang/opalc/internal/span"
	"github.com/opal-lang/opalc/internal/stream"
	"github.com/opal-lang/opalc/internal/token"
)

// Lexer turns a stream of positioned characters into tokens.
type Lexer struct {
	chars *stream.Stream[rune]
}

// New creates a new lexer for the given input.
func New(input string) *Lexer {
	return &Lexer{chars: stream.FromString(input)}
}

// Tokenize lexes the whole input. The returned stream always ends with an
// EndOfInput token placed one past the last character.
func Tokenize(input string) (*token.Stream, error) {
	l := New(input)
	var tokens []span.Spanned[token.Token]
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Item.IsEnd() {
			return token.NewStream(tokens), nil
		}
	}
}

// NextToken scans the next token, skipping whitespace and comments. Once the
// input is exhausted it keeps returning EndOfInput.
func (l *Lexer) NextToken() (span.Spanned[token.Token], error) {
	l.skipTrivia()

	if l.atEnd() {
		return span.Wrap(token.EndOfInput, l.chars.PeekSpan()), nil
	}

	ch := l.chars.Peek()
	switch {
	case isDigit(ch):
		return l.readNumber()
	case isLetter(ch):
		return l.readIdentifier(), nil
	case ch == '\'':
		return l.readCharacter()
	case ch == '"':
		return l.readString()
	default:
		return l.readOperator()
	}
}

// atEnd distinguishes the sentinel from a NUL character written in the source.
func (l *Lexer) atEnd() bool {
	return l.chars.Len() == 0
}

func (l *Lexer) skipTrivia() {
	for !l.atEnd() {
		switch l.chars.Peek() {
		case ' ', '\n', '\t', '\r':
			l.chars.Pop()
		case '#':
			for !l.atEnd() && l.chars.Peek() != '\n' {
				l.chars.Pop()
			}
		default:
			return
		}
	}
}

func (l *Lexer) readNumber() (span.Spanned[token.Token], error) {
	first := l.chars.Pop()

	if first.Item == '0' {
		switch next := l.chars.Peek(); {
		case next == 'x':
			l.chars.Pop()
			return l.readRadix(first.Span, 16, "hexadecimal", isHexDigit)
		case next == 'b':
			l.chars.Pop()
			return l.readRadix(first.Span, 2, "binary", isBinaryDigit)
		case isDigit(next):
			return span.Spanned[token.Token]{}, diag.Lexical(
				diag.CodeLexerLeadingZero, l.chars.PeekSpan(),
				"Expected to find the end of the integer literal, but found `%c` instead", next,
			).WithDetails("decimal integer literals cannot start with `0`")
		}
		if err := l.checkLiteralEnd("decimal"); err != nil {
			return span.Spanned[token.Token]{}, err
		}
		return span.Wrap(token.NewInteger(0), first.Span), nil
	}

	digits := []rune{first.Item}
	last := first.Span
	for isDigit(l.chars.Peek()) {
		c := l.chars.Pop()
		digits = append(digits, c.Item)
		last = c.Span
	}
	return l.finishInteger(string(digits), 10, "decimal", span.Between(first.Span, last))
}

// readRadix scans the digits following a 0x or 0b prefix.
func (l *Lexer) readRadix(start span.Span, base int, name string, valid func(rune) bool) (span.Spanned[token.Token], error) {
	if !valid(l.chars.Peek()) {
		return span.Spanned[token.Token]{}, l.invalidDigit(name)
	}

	var digits []rune
	last := start
	for valid(l.chars.Peek()) {
		c := l.chars.Pop()
		digits = append(digits, c.Item)
		last = c.Span
	}
	return l.finishInteger(string(digits), base, name, span.Between(start, last))
}

func (l *Lexer) finishInteger(digits string, base int, name string, sp span.Span) (span.Spanned[token.Token], error) {
	if err := l.checkLiteralEnd(name); err != nil {
		return span.Spanned[token.Token]{}, err
	}
	n, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return span.Spanned[token.Token]{}, diag.Lexical(
			diag.CodeLexerIntegerOverflow, sp,
			"Expected to find an integer literal that fits in 32 bits, but found `%s` instead", digits,
		).WithDetails(fmt.Sprintf("%s literal: %v", name, err))
	}
	return span.Wrap(token.NewInteger(uint32(n)), sp), nil
}

// checkLiteralEnd rejects integer literals running straight into a letter or
// a digit of the wrong radix, such as 0b102 or 12abc.
func (l *Lexer) checkLiteralEnd(name string) error {
	if l.atEnd() || !isIdentContinue(l.chars.Peek()) {
		return nil
	}
	return l.invalidDigit(name)
}

func (l *Lexer) invalidDigit(name string) *diag.Error {
	found := "end of input"
	if !l.atEnd() {
		found = fmt.Sprintf("`%c`", l.chars.Peek())
	}
	return diag.Lexical(diag.CodeLexerInvalidDigit, l.chars.PeekSpan(),
		"Expected to find a %s digit, but found %s instead", name, found)
}

func (l *Lexer) readIdentifier() span.Spanned[token.Token] {
	first := l.chars.Pop()
	text := []rune{first.Item}
	last := first.Span
	for !l.atEnd() && isIdentContinue(l.chars.Peek()) {
		c := l.chars.Pop()
		text = append(text, c.Item)
		last = c.Span
	}

	sp := span.Between(first.Span, last)
	if kw, ok := token.LookupKeyword(string(text)); ok {
		return span.Wrap(token.NewKeyword(kw), sp)
	}
	return span.Wrap(token.NewIdentifier(string(text)), sp)
}

func (l *Lexer) readCharacter() (span.Spanned[token.Token], error) {
	open := l.chars.Pop()

	if l.atEnd() {
		return span.Spanned[token.Token]{}, diag.Lexical(diag.CodeLexerUnterminatedChar,
			span.Between(open.Span, l.chars.PeekSpan()),
			"Expected to find a character, but found end of input instead")
	}
	if l.chars.Peek() == '\'' {
		closing := l.chars.Pop()
		return span.Spanned[token.Token]{}, diag.Lexical(diag.CodeLexerEmptyCharacter,
			span.Between(open.Span, closing.Span),
			"Expected to find a character, but found `''` instead").
			WithDetails("character literals must contain exactly one character")
	}

	ch, err := l.readChar()
	if err != nil {
		return span.Spanned[token.Token]{}, err
	}

	if l.atEnd() || l.chars.Peek() != '\'' {
		return span.Spanned[token.Token]{}, diag.Lexical(diag.CodeLexerUnterminatedChar,
			span.Between(open.Span, l.chars.PeekSpan()),
			"Expected to find `'` to close the character literal, but found %s instead", l.describeNext())
	}
	closing := l.chars.Pop()
	return span.Wrap(token.NewCharacter(ch), span.Between(open.Span, closing.Span)), nil
}

func (l *Lexer) readString() (span.Spanned[token.Token], error) {
	open := l.chars.Pop()

	var text []rune
	for {
		if l.atEnd() {
			return span.Spanned[token.Token]{}, diag.Lexical(diag.CodeLexerUnterminatedString,
				span.Between(open.Span, l.chars.PeekSpan()),
				"Expected to find `\"` to close the string literal, but found end of input instead")
		}
		if l.chars.Peek() == '"' {
			closing := l.chars.Pop()
			return span.Wrap(token.NewString(string(text)), span.Between(open.Span, closing.Span)), nil
		}
		ch, err := l.readChar()
		if err != nil {
			return span.Spanned[token.Token]{}, err
		}
		text = append(text, ch)
	}
}

// readChar reads one logical character of a literal, decoding escapes.
// The caller guarantees the input is not exhausted.
func (l *Lexer) readChar() (rune, error) {
	c := l.chars.Pop()
	if c.Item != '\\' {
		return c.Item, nil
	}

	if l.atEnd() {
		return 0, diag.Lexical(diag.CodeLexerIllegalEscape, span.Between(c.Span, l.chars.PeekSpan()),
			"Expected to find an escape sequence, but found end of input instead")
	}
	e := l.chars.Pop()
	switch e.Item {
	case '0':
		return 0, nil
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case '\\', '\'', '"':
		return e.Item, nil
	}
	return 0, diag.Lexical(diag.CodeLexerIllegalEscape, span.Between(c.Span, e.Span),
		"Expected to find an escape sequence, but found `\\%c` instead", e.Item).
		WithDetails("valid escapes are \\0 \\n \\t \\\\ \\' and \\\"")
}

// readOperator scans punctuation with maximal munch. Every prefix of a
// multi-character operator is itself an operator, so extending greedily
// while the text stays valid yields the longest match.
func (l *Lexer) readOperator() (span.Spanned[token.Token], error) {
	first := l.chars.Pop()
	op, ok := token.LookupBasic(string(first.Item))
	if !ok {
		return span.Spanned[token.Token]{}, diag.Lexical(diag.CodeLexerIllegalRune, first.Span,
			"Expected to find a token, but found unexpected character %s instead", strconv.QuoteRune(first.Item))
	}

	last := first.Span
	for !l.atEnd() {
		longer, ok := token.LookupBasic(string(op) + string(l.chars.Peek()))
		if !ok {
			break
		}
		op = longer
		last = l.chars.Pop().Span
	}
	return span.Wrap(token.NewBasic(op), span.Between(first.Span, last)), nil
}

func (l *Lexer) describeNext() string {
	if l.atEnd() {
		return "end of input"
	}
	return strconv.QuoteRune(l.chars.Peek())
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}

func isBinaryDigit(ch rune) bool {
	return ch == '0' || ch == '1'
}

func isIdentContinue(ch rune) bool {
	return isLetter(ch) || isDigit(ch)
}
